// Package error defines domain-specific errors for the Fluyt budget service.
package error

import "errors"

// Session domain errors.
var (
	// ErrSaveInProgress is returned when a save is triggered while another
	// save for the same session is still in flight.
	ErrSaveInProgress = errors.New("a save is already in progress for this session")

	// ErrSessionIDRequired is returned when a request does not identify a session.
	ErrSessionIDRequired = errors.New("session id is required")
)

// SessionErrorCode defines error codes for session errors.
// Format: SES-XXYYYY where XX is category and YYYY is specific error.
type SessionErrorCode string

const (
	ErrCodeSessionIDRequired SessionErrorCode = "SES-010001"
	ErrCodeSessionSaveBusy   SessionErrorCode = "SES-010002"
)
