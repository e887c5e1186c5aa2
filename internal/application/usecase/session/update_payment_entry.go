// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
)

// UpdatePaymentEntryInput represents the input for adjusting an existing entry.
type UpdatePaymentEntryInput struct {
	SessionID    string
	EntryID      uuid.UUID
	Kind         entity.PaymentKind
	NominalValue decimal.Decimal
	PresentValue decimal.Decimal
	Installments int
	Details      map[string]interface{}
	Locked       bool
}

// UpdatePaymentEntryOutput represents the output of adjusting an entry.
type UpdatePaymentEntryOutput struct {
	Result
}

// UpdatePaymentEntryUseCase replaces an unlocked entry's values. Locked
// entries are rejected without being touched.
type UpdatePaymentEntryUseCase struct {
	sessions *session.Manager
}

// NewUpdatePaymentEntryUseCase creates a new UpdatePaymentEntryUseCase instance.
func NewUpdatePaymentEntryUseCase(sessions *session.Manager) *UpdatePaymentEntryUseCase {
	return &UpdatePaymentEntryUseCase{sessions: sessions}
}

// Execute performs the entry update.
func (uc *UpdatePaymentEntryUseCase) Execute(ctx context.Context, input UpdatePaymentEntryInput) (*UpdatePaymentEntryOutput, error) {
	budget, totals, err := uc.sessions.Mutate(ctx, input.SessionID, func(b *entity.Budget) error {
		return b.UpdatePaymentEntry(entity.PaymentEntry{
			ID:           input.EntryID,
			Kind:         input.Kind,
			NominalValue: input.NominalValue,
			PresentValue: input.PresentValue,
			Installments: input.Installments,
			Details:      input.Details,
			Locked:       input.Locked,
		})
	})
	if err != nil {
		return nil, err
	}

	return &UpdatePaymentEntryOutput{Result: newResult(budget, totals)}, nil
}
