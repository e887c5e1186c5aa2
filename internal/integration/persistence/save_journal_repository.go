package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/fluyt/budget-service/internal/application/adapter"
	"github.com/fluyt/budget-service/internal/domain/entity"
	"github.com/fluyt/budget-service/internal/integration/persistence/model"
)

// saveJournalRepository implements the adapter.SaveJournal interface.
type saveJournalRepository struct {
	db *gorm.DB
}

// NewSaveJournalRepository creates a new save journal repository instance.
func NewSaveJournalRepository(db *gorm.DB) adapter.SaveJournal {
	return &saveJournalRepository{
		db: db,
	}
}

// Record appends a save attempt to the journal.
func (r *saveJournalRepository) Record(ctx context.Context, attempt *entity.SaveAttempt) error {
	attemptModel := model.SaveAttemptModelFromEntity(attempt)
	result := r.db.WithContext(ctx).Create(attemptModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindBySession retrieves the attempts recorded for a session, newest first.
func (r *saveJournalRepository) FindBySession(ctx context.Context, sessionID string) ([]*entity.SaveAttempt, error) {
	var models []model.SaveAttemptModel

	result := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	attempts := make([]*entity.SaveAttempt, len(models))
	for i, m := range models {
		attempts[i] = m.ToEntity()
	}

	return attempts, nil
}
