// Package persistence contains the storage implementations backing the
// application adapters.
package persistence

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/integration/persistence/model"
)

const sessionKeyPrefix = "fluyt:budget-session:"

// RedisSessionRepository mirrors budget sessions to Redis. The in-memory
// session manager stays authoritative; every method here is best effort
// and signals failure through its return value instead of an error so
// that a Redis outage never interrupts an editing session.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository creates a new RedisSessionRepository instance.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, ttl: ttl}
}

// Load fetches the mirrored session document. It returns (nil, false)
// when the key is missing, the payload cannot be decoded, or Redis is
// unreachable. Callers fall back to a fresh session in all three cases.
func (r *RedisSessionRepository) Load(ctx context.Context, sessionID string) (*entity.Budget, bool) {
	payload, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("session mirror read failed", "session_id", sessionID, "error", err)
		}
		return nil, false
	}

	var doc model.SessionDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		slog.Warn("session mirror document corrupt", "session_id", sessionID, "error", err)
		return nil, false
	}
	if doc.Version != model.SessionSchemaVersion {
		slog.Warn("session mirror schema version mismatch",
			"session_id", sessionID, "version", doc.Version)
		return nil, false
	}

	budget, err := doc.ToEntity()
	if err != nil {
		slog.Warn("session mirror document invalid", "session_id", sessionID, "error", err)
		return nil, false
	}
	return budget, true
}

// Save writes the session document with the configured TTL. It reports
// whether the write succeeded; failures are logged and swallowed.
func (r *RedisSessionRepository) Save(ctx context.Context, sessionID string, budget *entity.Budget) bool {
	payload, err := json.Marshal(model.SessionDocumentFromEntity(budget))
	if err != nil {
		slog.Warn("session mirror marshal failed", "session_id", sessionID, "error", err)
		return false
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+sessionID, payload, r.ttl).Err(); err != nil {
		slog.Warn("session mirror write failed", "session_id", sessionID, "error", err)
		return false
	}
	return true
}

// Delete removes the mirrored document. Failures are logged only; the
// TTL will reap the key eventually either way.
func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) {
	if err := r.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		slog.Warn("session mirror delete failed", "session_id", sessionID, "error", err)
	}
}
