package persistence

import (
	"context"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/domain/entity"
)

// noopSessionRepository is a mirror that stores nothing. It backs the
// session manager when no Redis is configured: sessions then live purely
// in process memory.
type noopSessionRepository struct{}

// NewNoopSessionRepository creates a session repository that never persists.
func NewNoopSessionRepository() adapter.SessionRepository {
	return noopSessionRepository{}
}

func (noopSessionRepository) Load(ctx context.Context, sessionID string) (*entity.Budget, bool) {
	return nil, false
}

func (noopSessionRepository) Save(ctx context.Context, sessionID string, budget *entity.Budget) bool {
	return true
}

func (noopSessionRepository) Delete(ctx context.Context, sessionID string) {}
