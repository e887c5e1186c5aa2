// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// QueuePartialSaveAlertInput represents the input for queueing a
// partial-save alert for the salesperson.
type QueuePartialSaveAlertInput struct {
	RecipientEmail string
	RecipientName  string
	BudgetID       string
	BudgetNumber   string
	ClientName     string
	CreatedEntries int
	TotalEntries   int
	FailureReason  string
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueuePartialSaveAlertEmail queues an alert about a partially saved budget.
	QueuePartialSaveAlertEmail(ctx context.Context, input QueuePartialSaveAlertInput) error
}
