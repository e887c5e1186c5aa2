// Package error defines domain-specific errors for the Fluyt budget service.
package error

import "errors"

// Budget validation errors. Validation failures never mutate the
// aggregate: the prior state is retained and the error is surfaced for
// user display.
var (
	// ErrDiscountOutOfRange is returned when a discount percentage is outside [0,100].
	ErrDiscountOutOfRange = errors.New("discount percent must be between 0 and 100")

	// ErrInvalidEnvironmentList is returned when the environment list contains an
	// invalid entry. The whole list is rejected, not partially applied.
	ErrInvalidEnvironmentList = errors.New("environment list contains invalid entries")

	// ErrInvalidPaymentKind is returned when a payment entry carries an unknown kind.
	ErrInvalidPaymentKind = errors.New("invalid payment kind")

	// ErrNegativePaymentValue is returned when a payment entry carries a negative value.
	ErrNegativePaymentValue = errors.New("payment values must not be negative")

	// ErrPresentExceedsNominal is returned when present value exceeds nominal value.
	ErrPresentExceedsNominal = errors.New("present value must not exceed nominal value")

	// ErrInvalidInstallments is returned when the installment count is below 1.
	ErrInvalidInstallments = errors.New("installment count must be at least 1")

	// ErrPaymentEntryNotFound is returned when a payment entry is not in the plan.
	ErrPaymentEntryNotFound = errors.New("payment entry not found")

	// ErrPaymentEntryLocked is returned when attempting to modify a locked entry.
	ErrPaymentEntryLocked = errors.New("payment entry is locked")

	// ErrClientRequired is returned when saving a budget without a client.
	ErrClientRequired = errors.New("client is required before saving")

	// ErrEnvironmentsRequired is returned when saving a budget without environments.
	ErrEnvironmentsRequired = errors.New("at least one environment is required before saving")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeDiscountOutOfRange     BudgetErrorCode = "BUD-010001"
	ErrCodeInvalidEnvironmentList BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidPaymentEntry    BudgetErrorCode = "BUD-010003"
	ErrCodePaymentEntryNotFound   BudgetErrorCode = "BUD-010004"
	ErrCodePaymentEntryLocked     BudgetErrorCode = "BUD-010005"
	ErrCodeClientRequired         BudgetErrorCode = "BUD-010006"
	ErrCodeEnvironmentsRequired   BudgetErrorCode = "BUD-010007"
	ErrCodeMissingBudgetFields    BudgetErrorCode = "BUD-010008"
)

// BudgetError represents a budget validation error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
