// Package budget contains use cases that talk to the ERP backend.
package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/domain/valueobject"
)

// LoadBudgetInput represents the input for loading a persisted budget.
type LoadBudgetInput struct {
	SessionID string
	Token     string
	BudgetID  uuid.UUID
}

// LoadBudgetOutput represents the re-hydrated session state.
type LoadBudgetOutput struct {
	Budget                 *entity.Budget
	Totals                 valueobject.Totals
	GrossValue             decimal.Decimal
	EnvironmentsRehydrated bool
}

// LoadBudgetUseCase fetches a budget by id from the backend and replaces
// the session aggregate with it. The environments list is NOT re-derived
// (the backend only returns the aggregated environment value), so a
// loaded budget reports CanSave false until environments are set again.
type LoadBudgetUseCase struct {
	sessions *session.Manager
	gateway  adapter.ERPGateway
}

// NewLoadBudgetUseCase creates a new LoadBudgetUseCase instance.
func NewLoadBudgetUseCase(sessions *session.Manager, gateway adapter.ERPGateway) *LoadBudgetUseCase {
	return &LoadBudgetUseCase{sessions: sessions, gateway: gateway}
}

// Execute performs the load. Loading a budget supersedes whatever the
// session held before.
func (uc *LoadBudgetUseCase) Execute(ctx context.Context, input LoadBudgetInput) (*LoadBudgetOutput, error) {
	loaded, err := uc.gateway.GetBudget(ctx, input.Token, input.BudgetID)
	if err != nil {
		return nil, err
	}

	uc.sessions.Replace(ctx, input.SessionID, loaded.Budget)

	return &LoadBudgetOutput{
		Budget:                 loaded.Budget,
		Totals:                 valueobject.ComputeTotals(loaded.Budget),
		GrossValue:             loaded.GrossValue,
		EnvironmentsRehydrated: loaded.EnvironmentsRehydrated,
	}, nil
}
