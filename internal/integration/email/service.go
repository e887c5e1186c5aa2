// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/domain/entity"
	domainerror "github.com/fluyt/budget-service/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// QueuePartialSaveAlertEmail queues an alert telling the salesperson that
// a budget was saved with an incomplete payment plan.
func (s *Service) QueuePartialSaveAlertEmail(ctx context.Context, input adapter.QueuePartialSaveAlertInput) error {
	subject := fmt.Sprintf("Orcamento %s salvo parcialmente - Fluyt", input.BudgetNumber)

	templateData := map[string]interface{}{
		"budget_id":       input.BudgetID,
		"budget_number":   input.BudgetNumber,
		"client_name":     input.ClientName,
		"created_entries": input.CreatedEntries,
		"total_entries":   input.TotalEntries,
		"failure_reason":  input.FailureReason,
	}

	job := entity.NewEmailJob(
		entity.TemplatePartialSaveAlert,
		input.RecipientEmail,
		input.RecipientName,
		subject,
		templateData,
	)

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue partial save alert email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
