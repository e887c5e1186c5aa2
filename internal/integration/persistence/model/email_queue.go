package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fluyt/budget-service/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table: the outbox for
// salesperson alerts, today only the partial-save notification. The
// worker polls by status and scheduled_at, hence the composite index.
type EmailQueueModel struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TemplateType   string       `gorm:"type:varchar(50);not null"`
	RecipientEmail string       `gorm:"type:varchar(255);not null"`
	RecipientName  string       `gorm:"type:varchar(255)"`
	Subject        string       `gorm:"type:varchar(500);not null"`
	TemplateData   string       `gorm:"type:jsonb;not null;default:'{}'"`
	Status         string       `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_pending"`
	Attempts       int          `gorm:"not null;default:0"`
	MaxAttempts    int          `gorm:"not null;default:3"`
	LastError      string       `gorm:"type:text"`
	ResendID       string       `gorm:"type:varchar(100)"`
	CreatedAt      time.Time    `gorm:"not null"`
	ScheduledAt    time.Time    `gorm:"not null;index:idx_email_queue_pending"`
	ProcessedAt    sql.NullTime `gorm:"type:timestamptz"`
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts the row to a domain EmailJob. Malformed template
// data degrades to an empty payload rather than blocking the queue.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	templateData := make(map[string]interface{})
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &templateData); err != nil {
			slog.Warn("Discarding malformed email template data", "error", err, "id", m.ID)
			templateData = make(map[string]interface{})
		}
	}

	job := &entity.EmailJob{
		ID:             m.ID,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		TemplateData:   templateData,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ResendID:       m.ResendID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
	}
	if m.ProcessedAt.Valid {
		processedAt := m.ProcessedAt.Time
		job.ProcessedAt = &processedAt
	}
	return job
}

// EmailQueueModelFromEntity creates an EmailQueueModel from a domain
// EmailJob.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	templateDataJSON, err := json.Marshal(job.TemplateData)
	if err != nil {
		slog.Error("Failed to marshal email template data", "error", err, "job_id", job.ID)
		templateDataJSON = []byte("{}")
	}

	row := &EmailQueueModel{
		ID:             job.ID,
		TemplateType:   string(job.TemplateType),
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		TemplateData:   string(templateDataJSON),
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ResendID:       job.ResendID,
		CreatedAt:      job.CreatedAt,
		ScheduledAt:    job.ScheduledAt,
	}
	if job.ProcessedAt != nil {
		row.ProcessedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}
	return row
}
