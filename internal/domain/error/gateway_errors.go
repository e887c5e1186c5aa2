// Package error defines domain-specific errors for the Fluyt budget service.
package error

import (
	"fmt"

	"github.com/google/uuid"
)

// Gateway error codes.
// Format: ERP-XXYYYY where XX is category and YYYY is specific error.
type GatewayErrorCode string

const (
	// Connectivity errors (01XXXX)
	ErrCodeNetworkUnavailable GatewayErrorCode = "ERP-010001"

	// Remote rejection errors (02XXXX)
	ErrCodeRemoteRejected GatewayErrorCode = "ERP-020001"

	// Orchestration errors (03XXXX)
	ErrCodePartialSaveFailure GatewayErrorCode = "ERP-030001"
	ErrCodeSaveInProgress     GatewayErrorCode = "ERP-030002"
)

// NetworkUnavailableError signals that the ERP backend could not be
// reached at all (connection failure or client-side timeout). It is a
// retryable condition, distinct from a rejection with a response body.
type NetworkUnavailableError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *NetworkUnavailableError) Error() string {
	return fmt.Sprintf("backend unreachable during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkUnavailableError) Unwrap() error {
	return e.Err
}

// NewNetworkUnavailableError creates a NetworkUnavailableError for the given operation.
func NewNetworkUnavailableError(operation string, err error) *NetworkUnavailableError {
	return &NetworkUnavailableError{Operation: operation, Err: err}
}

// RemoteRejectedError signals that the ERP backend answered with a
// non-success status. Message carries the backend's own error payload
// where available, else a generic message keyed by the HTTP status.
type RemoteRejectedError struct {
	Operation  string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("backend rejected %s (status %d): %s", e.Operation, e.StatusCode, e.Message)
}

// NewRemoteRejectedError creates a RemoteRejectedError for the given operation.
func NewRemoteRejectedError(operation string, statusCode int, message string) *RemoteRejectedError {
	if message == "" {
		message = genericStatusMessage(statusCode)
	}
	return &RemoteRejectedError{Operation: operation, StatusCode: statusCode, Message: message}
}

func genericStatusMessage(statusCode int) string {
	switch {
	case statusCode == 404:
		return "resource not found"
	case statusCode == 409:
		return "conflict with existing resource"
	case statusCode == 422:
		return "request rejected by validation"
	case statusCode >= 400 && statusCode < 500:
		return "request rejected by the backend"
	case statusCode >= 500:
		return "backend internal error"
	}
	return "unexpected backend response"
}

// PartialSaveFailureError signals that the budget header was persisted but
// one or more payment entries failed afterwards. The header is NOT rolled
// back; the caller can diff CreatedEntryIDs against the local plan and
// retry only the missing entries.
type PartialSaveFailureError struct {
	BudgetID        uuid.UUID
	BudgetNumber    string
	CreatedEntryIDs []uuid.UUID
	FailedEntryID   uuid.UUID
	Err             error
}

// Error implements the error interface.
func (e *PartialSaveFailureError) Error() string {
	return fmt.Sprintf(
		"budget %s saved but payment entry %s failed (%d of %d entries created): %v",
		e.BudgetID, e.FailedEntryID, len(e.CreatedEntryIDs), len(e.CreatedEntryIDs)+1, e.Err,
	)
}

// Unwrap returns the error that aborted entry creation.
func (e *PartialSaveFailureError) Unwrap() error {
	return e.Err
}
