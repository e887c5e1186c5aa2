// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
)

// RemovePaymentEntryInput represents the input for removing a payment entry.
type RemovePaymentEntryInput struct {
	SessionID string
	EntryID   uuid.UUID
}

// RemovePaymentEntryOutput represents the output of removing an entry.
type RemovePaymentEntryOutput struct {
	Result
}

// RemovePaymentEntryUseCase removes an entry from the payment plan and
// recomputes the allocation totals.
type RemovePaymentEntryUseCase struct {
	sessions *session.Manager
}

// NewRemovePaymentEntryUseCase creates a new RemovePaymentEntryUseCase instance.
func NewRemovePaymentEntryUseCase(sessions *session.Manager) *RemovePaymentEntryUseCase {
	return &RemovePaymentEntryUseCase{sessions: sessions}
}

// Execute performs the entry removal.
func (uc *RemovePaymentEntryUseCase) Execute(ctx context.Context, input RemovePaymentEntryInput) (*RemovePaymentEntryOutput, error) {
	budget, totals, err := uc.sessions.Mutate(ctx, input.SessionID, func(b *entity.Budget) error {
		return b.RemovePaymentEntry(input.EntryID)
	})
	if err != nil {
		return nil, err
	}

	return &RemovePaymentEntryOutput{Result: newResult(budget, totals)}, nil
}
