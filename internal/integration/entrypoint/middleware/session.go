// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/fluyt/budget-service/internal/domain/error"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/dto"
)

// SessionIDHeader carries the client-chosen session identifier. Each
// browser tab holds its own session, so the id comes from the client
// rather than from the token.
const SessionIDHeader = "X-Session-ID"

// SessionIDKey is the context key for the session identifier.
const SessionIDKey ContextKey = "session_id"

// RequireSessionID returns a Gin middleware handler that extracts the
// session id header and rejects requests without one.
func RequireSessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "X-Session-ID header is required",
				Code:  string(domainerror.ErrCodeSessionIDRequired),
			})
			c.Abort()
			return
		}

		c.Set(string(SessionIDKey), sessionID)
		c.Next()
	}
}

// GetSessionIDFromContext extracts the session id from the Gin context.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(string(SessionIDKey))
	if !exists {
		return "", false
	}
	sessionID, ok := value.(string)
	return sessionID, ok
}
