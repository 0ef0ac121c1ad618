package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/tripweaver/internal/middleware"
)

// okHandler always returns 200.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

const devOrigin = "http://localhost:5173"

func TestCORSHandler(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		origin  string
		headers map[string]string

		wantAllowOrigin string
		wantHeader      string // header that must be non-empty
	}{
		{
			name:            "simple GET from allowed origin",
			method:          http.MethodGet,
			origin:          devOrigin,
			wantAllowOrigin: devOrigin,
			wantHeader:      "Access-Control-Expose-Headers",
		},
		{
			name:   "GET from other origin gets no grant",
			method: http.MethodGet,
			origin: "http://evil.example.com",
		},
		{
			// Browsers lowercase Access-Control-Request-Headers; rs/cors
			// compares against its lowercased allow list.
			name:   "preflight for authorized PUT",
			method: http.MethodOptions,
			origin: devOrigin,
			headers: map[string]string{
				"Access-Control-Request-Method":  http.MethodPut,
				"Access-Control-Request-Headers": "authorization,content-type",
			},
			wantAllowOrigin: devOrigin,
			wantHeader:      "Access-Control-Allow-Methods",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := middleware.NewCORSHandler([]string{devOrigin})(okHandler)

			req := httptest.NewRequest(tt.method, "/trips/123/days/1/morning/slots/0", nil)
			req.Header.Set("Origin", tt.origin)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Less(t, rec.Code, 300)
			assert.Equal(t, tt.wantAllowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantHeader != "" {
				assert.NotEmpty(t, rec.Header().Get(tt.wantHeader))
			}
		})
	}
}

func TestCORSHandler_ExposesListingAndLimiterHeaders(t *testing.T) {
	h := middleware.NewCORSHandler([]string{devOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Origin", devOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	exposed := rec.Header().Get("Access-Control-Expose-Headers")
	assert.Contains(t, exposed, "X-Total-Count")
	assert.Contains(t, exposed, "Retry-After")
}
