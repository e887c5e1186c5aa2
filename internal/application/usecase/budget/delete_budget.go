// Package budget contains use cases that talk to the ERP backend.
package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/fluyt/budget-service/internal/application/adapter"
)

// DeleteBudgetInput represents the input for deleting a persisted budget.
type DeleteBudgetInput struct {
	Token    string
	BudgetID uuid.UUID
}

// DeleteBudgetUseCase deletes a budget on the backend. Deleting an
// already-deleted id is treated as success (the gateway maps the
// backend's 404 accordingly), so the operation is idempotent for callers.
type DeleteBudgetUseCase struct {
	gateway adapter.ERPGateway
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(gateway adapter.ERPGateway) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{gateway: gateway}
}

// Execute performs the deletion.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) error {
	return uc.gateway.DeleteBudget(ctx, input.Token, input.BudgetID)
}
