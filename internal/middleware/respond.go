package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the API's standard JSON error envelope. Middleware runs
// before any handler, so it renders errors itself.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
