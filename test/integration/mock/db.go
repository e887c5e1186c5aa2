package mock

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fluyt/budget-service/internal/integration/persistence/model"
)

// NewDb opens a fresh in-memory SQLite database with the service's
// tables migrated. Each scenario gets its own database so the save
// journal and email queue start empty.
func NewDb() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	if err := db.AutoMigrate(&model.SaveAttemptModel{}, &model.EmailQueueModel{}); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return db
}
