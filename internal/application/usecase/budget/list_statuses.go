// Package budget contains use cases that talk to the ERP backend.
package budget

import (
	"context"
	"sort"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/domain/entity"
)

// ListStatusesInput represents the input for fetching the status taxonomy.
type ListStatusesInput struct {
	Token string
}

// ListStatusesOutput represents the status taxonomy.
type ListStatusesOutput struct {
	Statuses []entity.BudgetStatus
}

// ListStatusesUseCase fetches the budget status taxonomy from the
// backend, returning active entries in display order.
type ListStatusesUseCase struct {
	gateway adapter.ERPGateway
}

// NewListStatusesUseCase creates a new ListStatusesUseCase instance.
func NewListStatusesUseCase(gateway adapter.ERPGateway) *ListStatusesUseCase {
	return &ListStatusesUseCase{gateway: gateway}
}

// Execute performs the fetch.
func (uc *ListStatusesUseCase) Execute(ctx context.Context, input ListStatusesInput) (*ListStatusesOutput, error) {
	statuses, err := uc.gateway.ListStatuses(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	active := make([]entity.BudgetStatus, 0, len(statuses))
	for _, status := range statuses {
		if status.Active {
			active = append(active, status)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Order < active[j].Order })

	return &ListStatusesOutput{Statuses: active}, nil
}
