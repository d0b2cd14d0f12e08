package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// messageBody is the {"message"} response of mutations that return nothing else.
type messageBody struct {
	Message string `json:"message"`
}

// decodeJSON reads the request body into dst. An empty body, malformed JSON,
// and trailing data are request errors; an oversized body surfaces as
// *http.MaxBytesError.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return err
		case errors.Is(err, io.EOF):
			return badRequest("request body is required")
		default:
			return badRequest("malformed JSON body")
		}
	}
	if dec.More() {
		return badRequest("malformed JSON body")
	}
	return nil
}

// hasBody reports whether the request carries a body to decode. DELETE
// requests may pass their ids either in a JSON body or in the query string.
func hasBody(r *http.Request) bool {
	return r.ContentLength > 0 || (r.ContentLength < 0 && r.Body != nil && r.Body != http.NoBody)
}

// isForm reports whether the request body is an HTML form.
func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}

// pathID parses the {name} URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return parseID(chi.URLParam(r, name), name)
}

// parseID parses raw as a UUID. An empty string yields uuid.Nil so the
// service layer can report the field as missing.
func parseID(raw, field string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, badRequest(field + " is not a valid id")
	}
	return id, nil
}

// idParser parses a sequence of ids, keeping the first error.
type idParser struct {
	err error
}

func (p *idParser) parse(raw, field string) uuid.UUID {
	if p.err != nil {
		return uuid.Nil
	}
	id, err := parseID(raw, field)
	p.err = err
	return id
}

// requiredQueryID parses a mandatory UUID query parameter.
func requiredQueryID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return uuid.Nil, badRequest(name + " is required")
	}
	return parseID(raw, name)
}
