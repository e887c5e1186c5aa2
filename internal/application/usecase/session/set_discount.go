// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
)

// SetDiscountInput represents the input for applying a discount percentage.
type SetDiscountInput struct {
	SessionID string
	Percent   decimal.Decimal
}

// SetDiscountOutput represents the output of applying the discount.
type SetDiscountOutput struct {
	Result
}

// SetDiscountUseCase validates and applies a discount percentage in
// [0,100]. Out-of-range input is rejected and the previous value kept.
type SetDiscountUseCase struct {
	sessions *session.Manager
}

// NewSetDiscountUseCase creates a new SetDiscountUseCase instance.
func NewSetDiscountUseCase(sessions *session.Manager) *SetDiscountUseCase {
	return &SetDiscountUseCase{sessions: sessions}
}

// Execute performs the discount change.
func (uc *SetDiscountUseCase) Execute(ctx context.Context, input SetDiscountInput) (*SetDiscountOutput, error) {
	budget, totals, err := uc.sessions.Mutate(ctx, input.SessionID, func(b *entity.Budget) error {
		return b.SetDiscount(input.Percent)
	})
	if err != nil {
		return nil, err
	}

	return &SetDiscountOutput{Result: newResult(budget, totals)}, nil
}
