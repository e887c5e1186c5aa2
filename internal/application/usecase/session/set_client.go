// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
)

// SetClientInput represents the input for replacing the session's client.
type SetClientInput struct {
	SessionID  string
	ClientID   uuid.UUID
	ClientName string
}

// SetClientOutput represents the output of replacing the client.
type SetClientOutput struct {
	Result
}

// SetClientUseCase replaces the client reference of the session's budget.
// Environments and the payment plan are untouched.
type SetClientUseCase struct {
	sessions *session.Manager
}

// NewSetClientUseCase creates a new SetClientUseCase instance.
func NewSetClientUseCase(sessions *session.Manager) *SetClientUseCase {
	return &SetClientUseCase{sessions: sessions}
}

// Execute performs the client replacement. It always succeeds.
func (uc *SetClientUseCase) Execute(ctx context.Context, input SetClientInput) (*SetClientOutput, error) {
	budget, totals, err := uc.sessions.Mutate(ctx, input.SessionID, func(b *entity.Budget) error {
		b.SetClient(&entity.Client{ID: input.ClientID, Name: input.ClientName})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SetClientOutput{Result: newResult(budget, totals)}, nil
}
