package handler

import (
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/internal/domain"
)

// errorBody is the JSON envelope of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestError is a client mistake caught by the handler before any service
// call, such as malformed JSON or an id that is not a UUID.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error { return &requestError{msg: msg} }

// sentinelStatus maps each domain sentinel to its HTTP status and code.
// Order matters: ErrInvalidCredentials wraps ErrUnauthorized.
var sentinelStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrValidation, http.StatusBadRequest, "validation_error"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
}

// respondError translates err into a status and {code, message} body.
// Unexpected errors are logged with the request id and hidden from the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "bad_request", Message: reqErr.msg})
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Code: "request_too_large", Message: "request body too large"})
		return
	}

	for _, m := range sentinelStatus {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, errorBody{Code: m.code, Message: unwrapMessage(err, m.err)})
			return
		}
	}

	s.log.ErrorContext(r.Context(), "unhandled error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, errorBody{Code: "internal_error", Message: "internal server error"})
}

// unwrapMessage extracts the human-readable part that follows sentinel in a
// wrapped error chain.
// e.g. "service.TripService.Get: not found: trip not found" → "trip not found"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && i+len(marker) < len(msg) {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
