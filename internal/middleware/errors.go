package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the API's standard {"code","message"} error body.
// It mirrors the handler package's envelope so middleware rejections look
// the same to clients.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}
