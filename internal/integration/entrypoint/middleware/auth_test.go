// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerror "github.com/fluyt/budget-service/internal/domain/error"
	"github.com/fluyt/budget-service/internal/integration/entrypoint/dto"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func validClaims(salespersonID, storeID uuid.UUID) jwt.MapClaims {
	return jwt.MapClaims{
		"vendedor_id": salespersonID.String(),
		"loja_id":     storeID.String(),
		"email":       "carlos@fluyt.com.br",
		"nome":        "Carlos",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
}

func authRequest(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *gin.Context, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	var captured *gin.Context
	reached := false

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(testSecret).Authenticate(), func(c *gin.Context) {
		captured = c
		reached = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(recorder, req)

	return recorder, captured, reached
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var response dto.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return response
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Run("valid token populates the request context", func(t *testing.T) {
		salespersonID := uuid.New()
		storeID := uuid.New()
		token := signToken(t, testSecret, validClaims(salespersonID, storeID))

		recorder, c, reached := authRequest(t, "Bearer "+token)
		if !reached {
			t.Fatalf("expected the handler to run, got status %d", recorder.Code)
		}

		if got, ok := GetSalespersonIDFromContext(c); !ok || got != salespersonID {
			t.Errorf("expected salesperson id %s, got %s (ok=%v)", salespersonID, got, ok)
		}
		if got, ok := GetStoreIDFromContext(c); !ok || got != storeID {
			t.Errorf("expected store id %s, got %s (ok=%v)", storeID, got, ok)
		}
		if got, ok := GetUserEmailFromContext(c); !ok || got != "carlos@fluyt.com.br" {
			t.Errorf("unexpected email: %s (ok=%v)", got, ok)
		}
		if got, ok := GetBearerTokenFromContext(c); !ok || got != token {
			t.Error("expected the raw token to be forwarded in the context")
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		recorder, _, reached := authRequest(t, "")
		if reached {
			t.Fatal("expected the handler to be skipped")
		}
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", recorder.Code)
		}
		if response := decodeError(t, recorder); response.Code != string(domainerror.ErrCodeMissingToken) {
			t.Errorf("unexpected error code: %s", response.Code)
		}
	})

	t.Run("non-bearer header is rejected", func(t *testing.T) {
		recorder, _, reached := authRequest(t, "Basic dXNlcjpwYXNz")
		if reached {
			t.Fatal("expected the handler to be skipped")
		}
		if response := decodeError(t, recorder); response.Code != string(domainerror.ErrCodeInvalidToken) {
			t.Errorf("unexpected error code: %s", response.Code)
		}
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		token := signToken(t, "other-secret", validClaims(uuid.New(), uuid.New()))

		recorder, _, reached := authRequest(t, "Bearer "+token)
		if reached {
			t.Fatal("expected the handler to be skipped")
		}
		if response := decodeError(t, recorder); response.Code != string(domainerror.ErrCodeInvalidToken) {
			t.Errorf("unexpected error code: %s", response.Code)
		}
	})

	t.Run("expired token gets its own code", func(t *testing.T) {
		claims := validClaims(uuid.New(), uuid.New())
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		token := signToken(t, testSecret, claims)

		recorder, _, reached := authRequest(t, "Bearer "+token)
		if reached {
			t.Fatal("expected the handler to be skipped")
		}
		if response := decodeError(t, recorder); response.Code != string(domainerror.ErrCodeExpiredToken) {
			t.Errorf("unexpected error code: %s", response.Code)
		}
	})

	t.Run("token without a salesperson identity is rejected", func(t *testing.T) {
		claims := validClaims(uuid.New(), uuid.New())
		claims["vendedor_id"] = "not-a-uuid"
		token := signToken(t, testSecret, claims)

		recorder, _, reached := authRequest(t, "Bearer "+token)
		if reached {
			t.Fatal("expected the handler to be skipped")
		}
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", recorder.Code)
		}
	})
}

func TestRequireSessionID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(captured **gin.Context) *gin.Engine {
		router := gin.New()
		router.GET("/session", RequireSessionID(), func(c *gin.Context) {
			*captured = c
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("header is forwarded in the context", func(t *testing.T) {
		var c *gin.Context
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		req.Header.Set(SessionIDHeader, "tab-1")

		newRouter(&c).ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		if got, ok := GetSessionIDFromContext(c); !ok || got != "tab-1" {
			t.Errorf("expected session id tab-1, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		var c *gin.Context
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/session", nil)

		newRouter(&c).ServeHTTP(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", recorder.Code)
		}
		if response := decodeError(t, recorder); response.Code != string(domainerror.ErrCodeSessionIDRequired) {
			t.Errorf("unexpected error code: %s", response.Code)
		}
	})
}
