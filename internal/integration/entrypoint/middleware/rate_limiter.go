// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/fluyt/budget-service/internal/domain/error"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/dto"
)

const (
	// defaultSaveLimit is the number of saves allowed per session per window.
	defaultSaveLimit = 5
	// defaultSaveWindow is the length of the throttling window.
	defaultSaveWindow = 1 * time.Minute
)

// saveWindow counts attempts for one key within the current window.
type saveWindow struct {
	count   int
	started time.Time
}

// RateLimiter throttles the save endpoint. Each save creates a budget
// header on the ERP backend, so a stuck client retry loop would mint
// duplicate headers; the in-flight guard in the save use case only
// covers overlapping calls, not rapid sequential ones. Attempts are
// counted per session id (the unit a save operates on), falling back to
// the client IP when the request carries no session.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*saveWindow
	limit   int
	window  time.Duration
}

// NewRateLimiter creates a rate limiter with the default save budget.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultSaveLimit, defaultSaveWindow)
}

// NewRateLimiterWithConfig creates a rate limiter with a custom limit
// and window.
func NewRateLimiterWithConfig(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*saveWindow),
		limit:   limit,
		window:  window,
	}
}

// Middleware returns a Gin handler enforcing the save throttle. It runs
// after RequireSessionID, so the session key is normally present.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in E2E mode or test environment
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key, ok := GetSessionIDFromContext(c)
		if !ok || key == "" {
			key = c.ClientIP()
		}

		if !rl.allow(key, time.Now()) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many save attempts. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow counts one attempt for key and reports whether it fits the
// current window. Expired windows restart; stale keys are pruned in
// passing so the map does not grow with abandoned sessions.
func (rl *RateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.prune(now)

	current, ok := rl.windows[key]
	if !ok || now.Sub(current.started) >= rl.window {
		rl.windows[key] = &saveWindow{count: 1, started: now}
		return true
	}

	if current.count >= rl.limit {
		return false
	}
	current.count++
	return true
}

// prune assumes the lock is held.
func (rl *RateLimiter) prune(now time.Time) {
	for key, w := range rl.windows {
		if now.Sub(w.started) >= rl.window {
			delete(rl.windows, key)
		}
	}
}
