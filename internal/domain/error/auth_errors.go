// Package error defines domain-specific errors for the Fluyt budget service.
package error

import "errors"

// Authentication errors. The service never mints tokens; it only validates
// bearer tokens issued by the external authentication subsystem before
// forwarding them to the ERP backend.
var (
	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// Throttling errors (04XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-040001"
)
