// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"context"

	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
)

// SetObservationsInput represents the input for replacing the observations text.
type SetObservationsInput struct {
	SessionID    string
	Observations string
}

// SetObservationsOutput represents the output of replacing the observations.
type SetObservationsOutput struct {
	Result
}

// SetObservationsUseCase replaces the budget's free-text observations.
type SetObservationsUseCase struct {
	sessions *session.Manager
}

// NewSetObservationsUseCase creates a new SetObservationsUseCase instance.
func NewSetObservationsUseCase(sessions *session.Manager) *SetObservationsUseCase {
	return &SetObservationsUseCase{sessions: sessions}
}

// Execute performs the observations change. It always succeeds.
func (uc *SetObservationsUseCase) Execute(ctx context.Context, input SetObservationsInput) (*SetObservationsOutput, error) {
	budget, totals, err := uc.sessions.Mutate(ctx, input.SessionID, func(b *entity.Budget) error {
		b.SetObservations(input.Observations)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SetObservationsOutput{Result: newResult(budget, totals)}, nil
}
