// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerror "github.com/fluyt/budget-service/internal/domain/error"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// SalespersonIDKey is the context key for the authenticated salesperson's ID.
	SalespersonIDKey ContextKey = "salesperson_id"
	// StoreIDKey is the context key for the salesperson's store.
	StoreIDKey ContextKey = "store_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
	// UserNameKey is the context key for the authenticated user's display name.
	UserNameKey ContextKey = "user_name"
	// BearerTokenKey is the context key for the raw bearer token. The token
	// is forwarded as-is to the ERP backend on every gateway call.
	BearerTokenKey ContextKey = "bearer_token"
)

// tokenClaims are the claims the external auth subsystem puts in its tokens.
type tokenClaims struct {
	SalespersonID string `json:"vendedor_id"`
	StoreID       string `json:"loja_id"`
	Email         string `json:"email"`
	Name          string `json:"nome"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates bearer tokens issued by the external
// authentication subsystem. The service never mints tokens itself.
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(secret),
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		claims, err := m.validate(token)
		if err != nil {
			code := domainerror.ErrCodeInvalidToken
			if errors.Is(err, domainerror.ErrExpiredToken) {
				code = domainerror.ErrCodeExpiredToken
			}
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(code),
			})
			c.Abort()
			return
		}

		salespersonID, err := uuid.Parse(claims.SalespersonID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token carries no valid salesperson identity",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set(string(SalespersonIDKey), salespersonID)
		if storeID, err := uuid.Parse(claims.StoreID); err == nil {
			c.Set(string(StoreIDKey), storeID)
		}
		c.Set(string(UserEmailKey), claims.Email)
		c.Set(string(UserNameKey), claims.Name)
		c.Set(string(BearerTokenKey), token)

		c.Next()
	}
}

// validate parses and verifies the token signature and expiry.
func (m *AuthMiddleware) validate(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domainerror.ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, domainerror.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, domainerror.ErrInvalidToken
	}
	return claims, nil
}

// GetSalespersonIDFromContext extracts the salesperson ID from the Gin context.
func GetSalespersonIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(string(SalespersonIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetStoreIDFromContext extracts the store ID from the Gin context.
func GetStoreIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(string(StoreIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}

// GetUserNameFromContext extracts the user display name from the Gin context.
func GetUserNameFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(string(UserNameKey))
	if !exists {
		return "", false
	}
	name, ok := value.(string)
	return name, ok
}

// GetBearerTokenFromContext extracts the raw bearer token from the Gin context.
func GetBearerTokenFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(string(BearerTokenKey))
	if !exists {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
