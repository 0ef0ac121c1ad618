package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewSlogLogger returns a middleware that logs each request as a structured
// JSON line via the provided slog.Logger. It captures method, path, HTTP
// status, duration, the request ID set by chi's RequestID middleware, and the
// authenticated user when there is one. Server errors log at error level.
//
// Wire it after chimiddleware.RequestID so the request ID is available, and
// before the authenticator so the user is read from the final request.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// The authenticator stores the user on a derived request, so the
			// logger hands down a holder it can read back afterwards.
			var user User
			r = r.WithContext(withUserSink(r.Context(), &user))

			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			}
			if user.ID != "" {
				attrs = append(attrs, "user_id", user.ID)
			}
			log.Log(r.Context(), level, "request", attrs...)
		})
	}
}
