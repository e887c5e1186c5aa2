// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"context"

	"github.com/fluyt/budget-service/internal/application/session"
	"github.com/fluyt/budget-service/internal/domain/valueobject"
)

// GetSessionInput represents the input for reading the session state.
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput represents the current session state.
type GetSessionOutput struct {
	Result
}

// GetSessionUseCase reads the session's aggregate and derived totals
// without mutating anything.
type GetSessionUseCase struct {
	sessions *session.Manager
}

// NewGetSessionUseCase creates a new GetSessionUseCase instance.
func NewGetSessionUseCase(sessions *session.Manager) *GetSessionUseCase {
	return &GetSessionUseCase{sessions: sessions}
}

// Execute reads the session state.
func (uc *GetSessionUseCase) Execute(ctx context.Context, input GetSessionInput) (*GetSessionOutput, error) {
	budget := uc.sessions.Get(ctx, input.SessionID)
	return &GetSessionOutput{
		Result: newResult(budget, valueobject.ComputeTotals(budget)),
	}, nil
}
