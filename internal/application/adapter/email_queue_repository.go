// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/fluyt/budget-service/internal/domain/entity"
)

// EmailQueueRepository defines the interface for the email queue.
type EmailQueueRepository interface {
	// Enqueue adds a new email job to the queue.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs retrieves pending jobs that are due, oldest first.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update persists changes to an email job.
	Update(ctx context.Context, job *entity.EmailJob) error
}
