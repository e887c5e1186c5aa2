// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/fluyt/budget-service/internal/domain/entity"
)

// SessionRepository mirrors the in-memory budget aggregate to durable
// storage so an in-progress session survives a restart. All operations are
// best-effort: the in-memory copy stays authoritative, so storage
// unavailability is reported through return values, never as an error.
type SessionRepository interface {
	// Load retrieves the stored aggregate for a session. It returns
	// (nil, false) when nothing is stored or storage is unavailable.
	Load(ctx context.Context, sessionID string) (*entity.Budget, bool)

	// Save mirrors the aggregate and reports whether the write succeeded.
	Save(ctx context.Context, sessionID string, budget *entity.Budget) bool

	// Delete removes the stored aggregate for a session.
	Delete(ctx context.Context, sessionID string)
}
