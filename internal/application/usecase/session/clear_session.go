// Package session contains use cases mutating the in-progress budget session.
package session

import (
	"context"

	"github.com/fluyt/budget-service/internal/application/session"
)

// ClearSessionInput represents the input for clearing a session.
type ClearSessionInput struct {
	SessionID string
}

// ClearSessionUseCase resets the session to the empty budget state and
// removes the persisted mirror.
type ClearSessionUseCase struct {
	sessions *session.Manager
}

// NewClearSessionUseCase creates a new ClearSessionUseCase instance.
func NewClearSessionUseCase(sessions *session.Manager) *ClearSessionUseCase {
	return &ClearSessionUseCase{sessions: sessions}
}

// Execute performs the session reset.
func (uc *ClearSessionUseCase) Execute(ctx context.Context, input ClearSessionInput) error {
	uc.sessions.Clear(ctx, input.SessionID)
	return nil
}
