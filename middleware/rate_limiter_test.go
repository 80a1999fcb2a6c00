package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(e *echo.Echo, limiter *RateLimiter, path, ip string) int {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	handler := limiter.RateLimit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestRateLimitLoginBurst(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter()

	// Login allows a burst of five, then throttles.
	for i := 0; i < 5; i++ {
		code := doRequest(e, limiter, "/api/user/login", "10.0.0.1")
		require.Equal(t, http.StatusOK, code, "request %d should pass", i+1)
	}

	code := doRequest(e, limiter, "/api/user/login", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestRateLimitPerIP(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter()

	for i := 0; i < 5; i++ {
		doRequest(e, limiter, "/api/user/login", "10.0.0.1")
	}
	require.Equal(t, http.StatusTooManyRequests, doRequest(e, limiter, "/api/user/login", "10.0.0.1"))

	// A different client is unaffected.
	assert.Equal(t, http.StatusOK, doRequest(e, limiter, "/api/user/login", "10.0.0.2"))
}

func TestRateLimitPerPath(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter()

	for i := 0; i < 5; i++ {
		doRequest(e, limiter, "/api/user/login", "10.0.0.1")
	}
	require.Equal(t, http.StatusTooManyRequests, doRequest(e, limiter, "/api/user/login", "10.0.0.1"))

	// Exhausting login does not block other endpoints for the same client.
	assert.Equal(t, http.StatusOK, doRequest(e, limiter, "/api/category", "10.0.0.1"))
}

func TestRateLimitDefaultBurst(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter()

	for i := 0; i < 20; i++ {
		code := doRequest(e, limiter, "/api/category", "10.0.0.3")
		require.Equal(t, http.StatusOK, code, "request %d should pass", i+1)
	}

	assert.Equal(t, http.StatusTooManyRequests, doRequest(e, limiter, "/api/category", "10.0.0.3"))
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter()

	for i := 0; i < 1000; i++ {
		doRequest(e, limiter, "/api/category", fmt.Sprintf("10.1.%d.%d", i/256, i%256))
	}

	limiter.mu.Lock()
	require.Len(t, limiter.ips, 1000)
	limiter.mu.Unlock()

	// Nothing is idle yet.
	limiter.evictIdle(time.Now())
	limiter.mu.Lock()
	assert.Len(t, limiter.ips, 1000)
	limiter.mu.Unlock()

	// Once clients go quiet their entries are dropped.
	limiter.evictIdle(time.Now().Add(limiter.maxIdle + time.Minute))
	limiter.mu.Lock()
	assert.Empty(t, limiter.ips)
	limiter.mu.Unlock()
}

func TestRateLimitEvictKeepsActiveClients(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter()

	doRequest(e, limiter, "/api/category", "10.0.0.4")
	doRequest(e, limiter, "/api/category", "10.0.0.5")

	staleKey := "10.0.0.4/api/category"
	limiter.mu.Lock()
	require.Contains(t, limiter.ips, staleKey)
	limiter.ips[staleKey].lastSeen = time.Now().Add(-limiter.maxIdle - time.Minute)
	limiter.mu.Unlock()

	limiter.evictIdle(time.Now())

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.ips, staleKey)
	assert.Contains(t, limiter.ips, "10.0.0.5/api/category")
}
