// Package db provides database connection and management functionality.
package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fluyt/budget-service/config"
)

// Redis wraps the Redis client used for the session mirror.
type Redis struct {
	client *redis.Client
}

// NewRedisConnection creates a new Redis connection. Unlike the database
// connection, an unreachable Redis is not fatal: the session manager
// keeps working from memory and the mirror reconnects on demand.
func NewRedisConnection(cfg *config.RedisConfig) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable at startup, session mirror degraded", "addr", cfg.Addr, "error", err)
	} else {
		slog.Info("Redis connection established", "addr", cfg.Addr)
	}

	return &Redis{client: client}
}

// Client returns the underlying Redis client.
func (r *Redis) Client() *redis.Client {
	return r.client
}

// HealthCheck performs a health check on the Redis connection.
func (r *Redis) HealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		slog.Error("Redis health check failed", "error", err)
		return false
	}
	return true
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
