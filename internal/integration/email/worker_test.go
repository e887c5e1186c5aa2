// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/integration/email/templates"
)

// memoryQueue is an in-memory EmailQueueRepository for worker tests.
type memoryQueue struct {
	jobs map[string]*entity.EmailJob
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: make(map[string]*entity.EmailJob)}
}

func (q *memoryQueue) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID.String()] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	now := time.Now().UTC()
	pending := make([]*entity.EmailJob, 0)
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			pending = append(pending, job)
			if len(pending) == limit {
				break
			}
		}
	}
	return pending, nil
}

func (q *memoryQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID.String()] = job
	return nil
}

func newTestWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func queueAlert(t *testing.T, service *Service) {
	t.Helper()
	err := service.QueuePartialSaveAlertEmail(context.Background(), adapter.QueuePartialSaveAlertInput{
		RecipientEmail: "vendedor@fluyt.com.br",
		RecipientName:  "Carlos",
		BudgetID:       "b2f4d6a8-0000-0000-0000-000000000000",
		BudgetNumber:   "ORC-0042",
		ClientName:     "Maria Souza",
		CreatedEntries: 2,
		TotalEntries:   4,
		FailureReason:  "backend rejected entry",
	})
	if err != nil {
		t.Fatalf("failed to queue alert: %v", err)
	}
}

func TestWorker_ProcessNow(t *testing.T) {
	ctx := context.Background()

	t.Run("sends a queued partial-save alert", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		queueAlert(t, NewService(queue))

		worker := newTestWorker(t, queue, sender)
		worker.ProcessNow(ctx)

		if len(sender.SentEmails) != 1 {
			t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
		}

		sent := sender.SentEmails[0]
		if sent.To != "vendedor@fluyt.com.br" {
			t.Errorf("unexpected recipient: %s", sent.To)
		}
		if !strings.Contains(sent.Subject, "ORC-0042") {
			t.Errorf("expected the subject to name the budget, got %q", sent.Subject)
		}
		if !strings.Contains(sent.HTML, "Maria Souza") || !strings.Contains(sent.Text, "Maria Souza") {
			t.Error("expected both bodies to name the client")
		}
		if !strings.Contains(sent.Text, "2 de 4") {
			t.Errorf("expected the text body to state the progress, got %q", sent.Text)
		}

		for _, job := range queue.jobs {
			if job.Status != entity.EmailStatusSent {
				t.Errorf("expected job to be marked sent, got %s", job.Status)
			}
			if job.ResendID == "" {
				t.Error("expected the resend id to be recorded")
			}
		}
	})

	t.Run("temporary failure is rescheduled", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("rate limited"), false)
		queueAlert(t, NewService(queue))

		worker := newTestWorker(t, queue, sender)
		worker.ProcessNow(ctx)

		for _, job := range queue.jobs {
			if job.Status != entity.EmailStatusPending {
				t.Errorf("expected job to stay pending for retry, got %s", job.Status)
			}
			if job.Attempts != 1 {
				t.Errorf("expected 1 attempt, got %d", job.Attempts)
			}
			if !job.ScheduledAt.After(time.Now().UTC()) {
				t.Error("expected the retry to be scheduled in the future")
			}
		}

		// The backoff keeps it out of the next batch.
		worker.ProcessNow(ctx)
		for _, job := range queue.jobs {
			if job.Attempts != 1 {
				t.Errorf("expected no second attempt before the backoff, got %d", job.Attempts)
			}
		}
	})

	t.Run("permanent failure stops retrying", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("invalid recipient"), true)
		queueAlert(t, NewService(queue))

		worker := newTestWorker(t, queue, sender)
		worker.ProcessNow(ctx)

		for _, job := range queue.jobs {
			if job.Status != entity.EmailStatusFailed {
				t.Errorf("expected job to fail permanently, got %s", job.Status)
			}
			if job.ProcessedAt == nil {
				t.Error("expected a processed timestamp on permanent failure")
			}
		}
	})
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{"nil error", nil, false},
		{"unauthorized", errors.New("401 unauthorized"), true},
		{"validation", errors.New("validation_error: missing to"), true},
		{"rate limit", errors.New("429 too many requests"), false},
		{"server error", errors.New("500 internal server error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanentError(tt.err); got != tt.permanent {
				t.Errorf("expected %v, got %v", tt.permanent, got)
			}
		})
	}
}
