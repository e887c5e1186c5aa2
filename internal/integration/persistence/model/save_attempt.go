package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fluyt/budget-service/internal/domain/entity"
)

// SaveAttemptModel represents the save_attempts table in the database.
type SaveAttemptModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionID       string         `gorm:"type:varchar(255);not null;index"`
	BudgetID        *uuid.UUID     `gorm:"type:uuid"`
	BudgetNumber    string         `gorm:"type:varchar(50)"`
	Outcome         string         `gorm:"type:varchar(20);not null"`
	CreatedEntryIDs pq.StringArray `gorm:"type:text[]"`
	FailedEntryID   *uuid.UUID     `gorm:"type:uuid"`
	ErrorText       string         `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for the SaveAttemptModel.
func (SaveAttemptModel) TableName() string {
	return "save_attempts"
}

// ToEntity converts a SaveAttemptModel to a domain SaveAttempt entity.
// Entry ids that fail to parse are skipped; the journal is advisory and
// a malformed row must not break the retry flow.
func (m *SaveAttemptModel) ToEntity() *entity.SaveAttempt {
	entryIDs := make([]uuid.UUID, 0, len(m.CreatedEntryIDs))
	for _, raw := range m.CreatedEntryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		entryIDs = append(entryIDs, id)
	}

	return &entity.SaveAttempt{
		ID:              m.ID,
		SessionID:       m.SessionID,
		BudgetID:        m.BudgetID,
		BudgetNumber:    m.BudgetNumber,
		Outcome:         entity.SaveOutcome(m.Outcome),
		CreatedEntryIDs: entryIDs,
		FailedEntryID:   m.FailedEntryID,
		ErrorText:       m.ErrorText,
		CreatedAt:       m.CreatedAt,
	}
}

// SaveAttemptModelFromEntity creates a SaveAttemptModel from a domain SaveAttempt entity.
func SaveAttemptModelFromEntity(attempt *entity.SaveAttempt) *SaveAttemptModel {
	entryIDs := make(pq.StringArray, 0, len(attempt.CreatedEntryIDs))
	for _, id := range attempt.CreatedEntryIDs {
		entryIDs = append(entryIDs, id.String())
	}

	return &SaveAttemptModel{
		ID:              attempt.ID,
		SessionID:       attempt.SessionID,
		BudgetID:        attempt.BudgetID,
		BudgetNumber:    attempt.BudgetNumber,
		Outcome:         string(attempt.Outcome),
		CreatedEntryIDs: entryIDs,
		FailedEntryID:   attempt.FailedEntryID,
		ErrorText:       attempt.ErrorText,
		CreatedAt:       attempt.CreatedAt,
	}
}
