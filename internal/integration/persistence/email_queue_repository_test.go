package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/integration/persistence/model"
)

func newAlertJob(email string) *entity.EmailJob {
	return entity.NewEmailJob(
		entity.TemplatePartialSaveAlert,
		email,
		"Carlos",
		"Orcamento ORC-0042 salvo parcialmente - Fluyt",
		map[string]interface{}{
			"budget_number":   "ORC-0042",
			"created_entries": 2,
			"total_entries":   4,
		},
	)
}

func TestEmailQueueRepository_Enqueue(t *testing.T) {
	db := newTestDB(t, &model.EmailQueueModel{})
	repo := NewEmailQueueRepository(db)
	ctx := context.Background()

	job := newAlertJob("vendedor@fluyt.com.br")
	if err := repo.Enqueue(ctx, job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	jobs, err := repo.GetPendingJobs(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 pending job, got %d", len(jobs))
	}

	got := jobs[0]
	if got.TemplateType != entity.TemplatePartialSaveAlert {
		t.Errorf("unexpected template type: %s", got.TemplateType)
	}
	if got.RecipientEmail != "vendedor@fluyt.com.br" {
		t.Errorf("unexpected recipient: %s", got.RecipientEmail)
	}
	if got.TemplateData["budget_number"] != "ORC-0042" {
		t.Error("expected template data to survive the round trip")
	}
	if got.Status != entity.EmailStatusPending || got.MaxAttempts != 3 {
		t.Errorf("unexpected defaults: status=%s max_attempts=%d", got.Status, got.MaxAttempts)
	}
}

func TestEmailQueueRepository_GetPendingJobs(t *testing.T) {
	db := newTestDB(t, &model.EmailQueueModel{})
	repo := NewEmailQueueRepository(db)
	ctx := context.Background()

	ready := newAlertJob("ready@fluyt.com.br")
	ready.ScheduledAt = time.Now().UTC().Add(-time.Minute)

	future := newAlertJob("future@fluyt.com.br")
	future.ScheduledAt = time.Now().UTC().Add(time.Hour)

	sent := newAlertJob("sent@fluyt.com.br")
	sent.MarkSent("re_123")

	for _, job := range []*entity.EmailJob{ready, future, sent} {
		if err := repo.Enqueue(ctx, job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	jobs, err := repo.GetPendingJobs(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(jobs) != 1 {
		t.Fatalf("expected only the ready job, got %d", len(jobs))
	}
	if jobs[0].RecipientEmail != "ready@fluyt.com.br" {
		t.Errorf("unexpected job: %s", jobs[0].RecipientEmail)
	}
}

func TestEmailQueueRepository_Update(t *testing.T) {
	db := newTestDB(t, &model.EmailQueueModel{})
	repo := NewEmailQueueRepository(db)
	ctx := context.Background()

	job := newAlertJob("vendedor@fluyt.com.br")
	if err := repo.Enqueue(ctx, job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("retry is rescheduled", func(t *testing.T) {
		job.MarkFailed(errors.New("rate limited"), false)
		if err := repo.Update(ctx, job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Backed off into the future, so not pending yet.
		jobs, err := repo.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(jobs) != 0 {
			t.Fatalf("expected no pending jobs before the backoff elapses, got %d", len(jobs))
		}
	})

	t.Run("sent job leaves the queue", func(t *testing.T) {
		job.MarkSent("re_456")
		if err := repo.Update(ctx, job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		job.ScheduledAt = time.Now().UTC().Add(-time.Minute)
		if err := repo.Update(ctx, job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		jobs, err := repo.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(jobs) != 0 {
			t.Fatalf("expected no pending jobs after send, got %d", len(jobs))
		}
	})
}
