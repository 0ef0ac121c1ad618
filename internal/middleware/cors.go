// Package middleware provides the HTTP middleware chain of the TripWeaver API:
// CORS, request logging, rate limiting, body caps and bearer-token auth.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler allows browser clients served from allowedOrigins (full
// origins, no trailing slash) to call the API with a bearer token. Paged
// listings report their total in X-Total-Count, which is exposed along with
// the request id and the limiter's Retry-After.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Total-Count", "X-Request-Id", "Retry-After"},
		MaxAge:         600,
	}).Handler
}
