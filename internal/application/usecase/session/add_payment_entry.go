// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
)

// AddPaymentEntryInput represents the input for adding a payment-plan entry.
type AddPaymentEntryInput struct {
	SessionID    string
	Kind         entity.PaymentKind
	NominalValue decimal.Decimal
	PresentValue decimal.Decimal
	Installments int
	Details      map[string]interface{}
	Locked       bool
}

// AddPaymentEntryOutput represents the output of adding an entry.
type AddPaymentEntryOutput struct {
	Result
	Entry entity.PaymentEntry
}

// AddPaymentEntryUseCase appends an entry to the payment plan and
// recomputes the allocation totals. Over-allocating is allowed; the
// resulting negative remaining value is the UI's cue to warn.
type AddPaymentEntryUseCase struct {
	sessions *session.Manager
}

// NewAddPaymentEntryUseCase creates a new AddPaymentEntryUseCase instance.
func NewAddPaymentEntryUseCase(sessions *session.Manager) *AddPaymentEntryUseCase {
	return &AddPaymentEntryUseCase{sessions: sessions}
}

// Execute performs the entry addition.
func (uc *AddPaymentEntryUseCase) Execute(ctx context.Context, input AddPaymentEntryInput) (*AddPaymentEntryOutput, error) {
	entry := entity.NewPaymentEntry(
		input.Kind,
		input.NominalValue,
		input.PresentValue,
		input.Installments,
		input.Details,
	)
	entry.Locked = input.Locked

	budget, totals, err := uc.sessions.Mutate(ctx, input.SessionID, func(b *entity.Budget) error {
		return b.AddPaymentEntry(*entry)
	})
	if err != nil {
		return nil, err
	}

	return &AddPaymentEntryOutput{
		Result: newResult(budget, totals),
		Entry:  *entry,
	}, nil
}
