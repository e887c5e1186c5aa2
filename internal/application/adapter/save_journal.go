// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/fluyt/budget-service/internal/domain/entity"
)

// SaveJournal records the outcome of every budget save attempt. Partial
// outcomes keep the list of entries that reached the backend, which is
// what a caller needs to retry only the missing ones.
type SaveJournal interface {
	// Record appends a save attempt to the journal.
	Record(ctx context.Context, attempt *entity.SaveAttempt) error

	// FindBySession retrieves the attempts recorded for a session, newest first.
	FindBySession(ctx context.Context, sessionID string) ([]*entity.SaveAttempt, error)
}
