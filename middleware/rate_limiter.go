// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/Vignesh3161/righttouch-backend/models"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies per-IP request limits with stricter overrides on the
// credential endpoints.
type RateLimiter struct {
	ips            map[string]*clientLimiter
	mu             sync.Mutex
	defaultLimit   rate.Limit
	defaultBurst   int
	maxIdle        time.Duration
	endpointLimits map[string]endpointLimit
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		ips:            make(map[string]*clientLimiter),
		defaultLimit:   rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:   20,
		maxIdle:        10 * time.Minute,
		endpointLimits: make(map[string]endpointLimit),
	}

	// Slow down brute-force attempts on the credential endpoints.
	limiter.endpointLimits["/api/user/login"] = endpointLimit{
		limit: rate.Every(2 * time.Second),
		burst: 5,
	}
	limiter.endpointLimits["/api/user/signup"] = endpointLimit{
		limit: rate.Every(500 * time.Millisecond),
		burst: 5,
	}

	// Start cleanup routine
	go limiter.cleanupIdleClients()

	return limiter
}

func (r *RateLimiter) cleanupIdleClients() {
	for {
		time.Sleep(1 * time.Minute)
		r.evictIdle(time.Now())
	}
}

// evictIdle drops limiter entries that have not been used within maxIdle,
// so the per-client map does not grow without bound.
func (r *RateLimiter) evictIdle(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, client := range r.ips {
		if now.Sub(client.lastSeen) > r.maxIdle {
			delete(r.ips, key)
		}
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limit := r.defaultLimit
			burst := r.defaultBurst
			if override, ok := r.endpointLimits[c.Path()]; ok {
				limit = override.limit
				burst = override.burst
			}

			limiter := r.getLimiter(c.RealIP()+c.Path(), limit, burst)
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, models.Response{
					Success: false,
					Message: "Too many requests",
				})
			}

			return next(c)
		}
	}
}

func (r *RateLimiter) getLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, exists := r.ips[key]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(limit, burst)}
		r.ips[key] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}
