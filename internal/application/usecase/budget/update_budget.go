// Package budget contains use cases that talk to the ERP backend.
package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/application/adapter"
	domainerror "github.com/fluyt/budget-service/internal/domain/error"
)

// UpdateBudgetInput represents the input for a partial header update.
type UpdateBudgetInput struct {
	Token    string
	BudgetID uuid.UUID
	Update   adapter.BudgetHeaderUpdate
}

// UpdateBudgetUseCase applies a partial header update to a persisted budget.
type UpdateBudgetUseCase struct {
	gateway adapter.ERPGateway
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(gateway adapter.ERPGateway) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{gateway: gateway}
}

// Execute performs the update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) error {
	update := input.Update
	if update.DiscountPercent != nil {
		if update.DiscountPercent.IsNegative() || update.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeDiscountOutOfRange,
				"discount percent must be between 0 and 100",
				domainerror.ErrDiscountOutOfRange,
			)
		}
	}

	return uc.gateway.UpdateBudget(ctx, input.Token, input.BudgetID, update)
}
