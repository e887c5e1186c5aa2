// Package session holds the in-memory budget session store.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/domain/valueobject"
)

// Manager is the authoritative store for in-progress budget aggregates,
// keyed by session ID. Every mutation goes through Mutate, which applies
// the change under lock and mirrors the result to the session repository
// write-through. Mirror failures are logged, never surfaced: the
// in-memory copy stays authoritative for the process lifetime.
//
// A Manager is constructed explicitly and injected; there is no
// package-level instance, so tests can run isolated managers.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entity.Budget
	repo     adapter.SessionRepository
}

// NewManager creates a session manager backed by the given repository.
func NewManager(repo adapter.SessionRepository) *Manager {
	return &Manager{
		sessions: make(map[string]*entity.Budget),
		repo:     repo,
	}
}

// Get returns a snapshot of the session's aggregate, rehydrating from
// the repository on an in-memory miss. When nothing is stored (or
// storage is unavailable) it returns a fresh empty budget. The snapshot
// is a deep copy: gin handlers run concurrently, so the live aggregate
// never leaves the lock.
func (m *Manager) Get(ctx context.Context, sessionID string) *entity.Budget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(ctx, sessionID).Clone()
}

// Mutate applies fn to the session's aggregate under lock. When fn
// returns an error the aggregate is left as fn left it (mutating methods
// on the aggregate reject invalid input without touching state) and
// nothing is persisted. On success the aggregate is mirrored and a
// snapshot is returned together with its freshly computed totals.
func (m *Manager) Mutate(ctx context.Context, sessionID string, fn func(*entity.Budget) error) (*entity.Budget, valueobject.Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	budget := m.get(ctx, sessionID)
	if err := fn(budget); err != nil {
		return nil, valueobject.Totals{}, err
	}

	m.persist(ctx, sessionID, budget)
	return budget.Clone(), valueobject.ComputeTotals(budget), nil
}

// Replace substitutes the session's aggregate wholesale, e.g. after a
// budget is loaded by id from the backend. The stored copy is cloned so
// the caller's pointer stays private to the caller.
func (m *Manager) Replace(ctx context.Context, sessionID string, budget *entity.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := budget.Clone()
	m.sessions[sessionID] = stored
	m.persist(ctx, sessionID, stored)
}

// Clear resets the session to the empty budget and removes the mirror.
func (m *Manager) Clear(ctx context.Context, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	m.repo.Delete(ctx, sessionID)
}

// get assumes the lock is held.
func (m *Manager) get(ctx context.Context, sessionID string) *entity.Budget {
	if budget, ok := m.sessions[sessionID]; ok {
		return budget
	}

	if budget, ok := m.repo.Load(ctx, sessionID); ok {
		m.sessions[sessionID] = budget
		return budget
	}

	budget := entity.NewBudget()
	m.sessions[sessionID] = budget
	return budget
}

// persist assumes the lock is held.
func (m *Manager) persist(ctx context.Context, sessionID string, budget *entity.Budget) {
	if !m.repo.Save(ctx, sessionID, budget) {
		slog.Warn("Session mirror write failed, in-memory state remains authoritative",
			"session_id", sessionID,
		)
	}
}
