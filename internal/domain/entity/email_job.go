// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the status of an email job in the queue.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType represents the type of email template.
type EmailTemplateType string

const (
	// TemplatePartialSaveAlert notifies a salesperson that a budget was
	// saved with an incomplete payment plan.
	TemplatePartialSaveAlert EmailTemplateType = "partial_save_alert"
)

// EmailJob represents an email in the queue waiting to be sent.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a new EmailJob with default values.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		Attempts:       0,
		MaxAttempts:    3,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing marks the email job as currently being processed.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent marks the email job as successfully sent.
func (e *EmailJob) MarkSent(resendID string) {
	e.Status = EmailStatusSent
	e.ResendID = resendID
	now := time.Now().UTC()
	e.ProcessedAt = &now
}

// MarkFailed marks the email job as failed and schedules a retry if
// attempts remain and the failure is not permanent.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		now := time.Now().UTC()
		e.ProcessedAt = &now
		return
	}

	// Exponential backoff: 1m, 4m, 9m, ...
	backoff := time.Duration(e.Attempts*e.Attempts) * time.Minute
	e.Status = EmailStatusPending
	e.ScheduledAt = time.Now().UTC().Add(backoff)
}
