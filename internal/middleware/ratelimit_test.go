package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/tripweaver/internal/middleware"
)

func hit(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/attractions", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	// A near-zero refill rate makes the outcome independent of wall time.
	h := middleware.NewRateLimiter(0.0001, 2).Handler(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5678"), "port does not split the budget")
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:9999"))
}

func TestRateLimiter_PerClient(t *testing.T) {
	h := middleware.NewRateLimiter(0.0001, 1).Handler(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1"))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1"), "another client has its own bucket")
}

func TestRateLimiter_RejectionHeaders(t *testing.T) {
	h := middleware.NewRateLimiter(0.0001, 1).Handler(okHandler)
	hit(h, "10.0.0.3:1")

	req := httptest.NewRequest(http.MethodGet, "/attractions", nil)
	req.RemoteAddr = "10.0.0.3:1"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"rate_limited"`)
}
