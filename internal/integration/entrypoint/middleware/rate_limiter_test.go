// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/fluyt/budget-service/internal/domain/error"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Now()

	t.Run("counts attempts per key within the window", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(3, time.Minute)

		for i := 0; i < 3; i++ {
			if !limiter.allow("tab-1", now) {
				t.Fatalf("expected attempt %d to be allowed", i+1)
			}
		}
		if limiter.allow("tab-1", now) {
			t.Error("expected the attempt over the limit to be rejected")
		}
	})

	t.Run("keys are throttled independently", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(1, time.Minute)

		if !limiter.allow("tab-1", now) {
			t.Fatal("expected the first attempt to be allowed")
		}
		if limiter.allow("tab-1", now) {
			t.Error("expected tab-1 to be exhausted")
		}
		if !limiter.allow("tab-2", now) {
			t.Error("expected tab-2 to have its own budget")
		}
	})

	t.Run("an expired window restarts", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(1, time.Minute)

		if !limiter.allow("tab-1", now) {
			t.Fatal("expected the first attempt to be allowed")
		}
		if limiter.allow("tab-1", now.Add(30*time.Second)) {
			t.Error("expected the attempt inside the window to be rejected")
		}
		if !limiter.allow("tab-1", now.Add(time.Minute)) {
			t.Error("expected a fresh window after expiry")
		}
	})

	t.Run("expired keys are pruned", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(1, time.Minute)

		limiter.allow("tab-1", now)
		limiter.allow("tab-2", now)
		limiter.allow("tab-3", now.Add(2*time.Minute))

		if len(limiter.windows) != 1 {
			t.Errorf("expected only the live window to remain, got %d", len(limiter.windows))
		}
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "development")
	t.Setenv("E2E_MODE", "")

	newSaveRouter := func(limiter *RateLimiter) *gin.Engine {
		engine := gin.New()
		engine.POST("/save", RequireSessionID(), limiter.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})
		return engine
	}

	save := func(engine *gin.Engine, sessionID string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/save", nil)
		request.Header.Set(SessionIDHeader, sessionID)
		engine.ServeHTTP(recorder, request)
		return recorder
	}

	t.Run("throttles a session that saves too often", func(t *testing.T) {
		engine := newSaveRouter(NewRateLimiterWithConfig(2, time.Minute))

		for i := 0; i < 2; i++ {
			if recorder := save(engine, "tab-1"); recorder.Code != http.StatusCreated {
				t.Fatalf("expected save %d to pass, got %d", i+1, recorder.Code)
			}
		}

		recorder := save(engine, "tab-1")
		if recorder.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", recorder.Code)
		}
		response := decodeError(t, recorder)
		if response.Code != string(domainerror.ErrCodeRateLimited) {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeRateLimited, response.Code)
		}
	})

	t.Run("another session is not affected", func(t *testing.T) {
		engine := newSaveRouter(NewRateLimiterWithConfig(1, time.Minute))

		if recorder := save(engine, "tab-1"); recorder.Code != http.StatusCreated {
			t.Fatalf("expected the first save to pass, got %d", recorder.Code)
		}
		if recorder := save(engine, "tab-1"); recorder.Code != http.StatusTooManyRequests {
			t.Fatalf("expected tab-1 to be throttled, got %d", recorder.Code)
		}
		if recorder := save(engine, "tab-2"); recorder.Code != http.StatusCreated {
			t.Errorf("expected tab-2 to save freely, got %d", recorder.Code)
		}
	})

	t.Run("test environment bypasses the throttle", func(t *testing.T) {
		t.Setenv("ENV", "test")
		engine := newSaveRouter(NewRateLimiterWithConfig(1, time.Minute))

		for i := 0; i < 3; i++ {
			if recorder := save(engine, "tab-1"); recorder.Code != http.StatusCreated {
				t.Fatalf("expected save %d to bypass the throttle, got %d", i+1, recorder.Code)
			}
		}
	})
}
