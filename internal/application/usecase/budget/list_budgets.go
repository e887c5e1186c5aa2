// Package budget contains use cases that talk to the ERP backend.
package budget

import (
	"context"

	"github.com/fluyt/budget-service/internal/application/adapter"
)

// ListBudgetsInput represents the input for listing persisted budgets.
type ListBudgetsInput struct {
	Token   string
	Filters adapter.BudgetFilters
}

// ListBudgetsOutput represents a paginated budget listing.
type ListBudgetsOutput struct {
	Page *adapter.BudgetPage
}

// ListBudgetsUseCase fetches a filtered, paginated budget listing from
// the backend.
type ListBudgetsUseCase struct {
	gateway adapter.ERPGateway
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(gateway adapter.ERPGateway) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{gateway: gateway}
}

// Execute performs the listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	filters := input.Filters
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}

	page, err := uc.gateway.ListBudgets(ctx, input.Token, filters)
	if err != nil {
		return nil, err
	}

	return &ListBudgetsOutput{Page: page}, nil
}
