// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/domain/entity"
)

// CreateBudgetInput carries the budget header fields for creation on the
// ERP backend. Payment entries are NOT part of the header call.
type CreateBudgetInput struct {
	ClientID        uuid.UUID
	StoreID         uuid.UUID
	SalespersonID   uuid.UUID
	GrossValue      decimal.Decimal
	DiscountPercent decimal.Decimal
	FinalValue      decimal.Decimal
	Observations    string
}

// CreatedBudget is the server-assigned identity of a persisted budget.
type CreatedBudget struct {
	ID     uuid.UUID
	Number string
}

// LoadedBudget is a budget fetched from the backend. The environments list
// is not re-derived on load (the backend only returns the aggregated
// value), so EnvironmentsRehydrated is always false until an explicit
// re-population step exists.
type LoadedBudget struct {
	Budget                 *entity.Budget
	GrossValue             decimal.Decimal
	EnvironmentsRehydrated bool
}

// BudgetFilters are the optional list filters accepted by the backend.
type BudgetFilters struct {
	Number   string
	StatusID *uuid.UUID
	ClientID *uuid.UUID
	Page     int
	Limit    int
}

// BudgetSummary is one row of a paginated budget listing.
type BudgetSummary struct {
	ID         uuid.UUID
	Number     string
	ClientID   uuid.UUID
	ClientName string
	StatusID   *uuid.UUID
	FinalValue decimal.Decimal
	CreatedAt  time.Time
}

// BudgetPage is a paginated budget listing.
type BudgetPage struct {
	Items []BudgetSummary
	Total int64
	Page  int
	Limit int
	Pages int
}

// BudgetHeaderUpdate is a partial update of the budget header. Nil fields
// are left unchanged.
type BudgetHeaderUpdate struct {
	DiscountPercent *decimal.Decimal
	FinalValue      *decimal.Decimal
	Observations    *string
	StatusID        *uuid.UUID
}

// ERPGateway translates between the local budget aggregate and the ERP
// backend's REST contract. The bearer token of the calling user is passed
// through on every operation. Implementations distinguish
// NetworkUnavailableError (unreachable/timeout) from RemoteRejectedError
// (non-success response with a body).
type ERPGateway interface {
	// CreateBudget persists the budget header and returns its server identity.
	CreateBudget(ctx context.Context, token string, input CreateBudgetInput) (*CreatedBudget, error)

	// CreatePaymentEntry persists a single payment entry scoped to an
	// already-created budget and returns the persisted entry.
	CreatePaymentEntry(ctx context.Context, token string, budgetID uuid.UUID, entry entity.PaymentEntry) (*entity.PaymentEntry, error)

	// GetBudget fetches a budget by id.
	GetBudget(ctx context.Context, token string, id uuid.UUID) (*LoadedBudget, error)

	// ListBudgets fetches a filtered, paginated budget listing.
	ListBudgets(ctx context.Context, token string, filters BudgetFilters) (*BudgetPage, error)

	// UpdateBudget applies a partial header update.
	UpdateBudget(ctx context.Context, token string, id uuid.UUID, update BudgetHeaderUpdate) error

	// DeleteBudget deletes a budget. Deleting an already-deleted id is not
	// treated as a failure.
	DeleteBudget(ctx context.Context, token string, id uuid.UUID) error

	// ListStatuses fetches the budget status taxonomy.
	ListStatuses(ctx context.Context, token string) ([]entity.BudgetStatus, error)
}
