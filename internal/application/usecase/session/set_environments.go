// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"context"

	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/entity"
)

// SetEnvironmentsInput represents the input for replacing the environment list.
type SetEnvironmentsInput struct {
	SessionID    string
	Environments []entity.Environment
}

// SetEnvironmentsOutput represents the output of replacing the environments.
type SetEnvironmentsOutput struct {
	Result
}

// SetEnvironmentsUseCase replaces the environment list wholesale and
// recomputes the derived totals. A single invalid entry rejects the whole
// list.
type SetEnvironmentsUseCase struct {
	sessions *session.Manager
}

// NewSetEnvironmentsUseCase creates a new SetEnvironmentsUseCase instance.
func NewSetEnvironmentsUseCase(sessions *session.Manager) *SetEnvironmentsUseCase {
	return &SetEnvironmentsUseCase{sessions: sessions}
}

// Execute performs the environment list replacement.
func (uc *SetEnvironmentsUseCase) Execute(ctx context.Context, input SetEnvironmentsInput) (*SetEnvironmentsOutput, error) {
	budget, totals, err := uc.sessions.Mutate(ctx, input.SessionID, func(b *entity.Budget) error {
		return b.SetEnvironments(input.Environments)
	})
	if err != nil {
		return nil, err
	}

	return &SetEnvironmentsOutput{Result: newResult(budget, totals)}, nil
}
