package database

import (
	"gorm.io/gorm"

	"github.com/mquintal/aitutor/internal/models"
)

// AutoMigrate creates the schema for every entity table if absent. It is
// additive-only and safe to run on every process start; existing rows are
// never dropped or altered. Parents migrate before children so foreign keys
// resolve.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.InviteLink{},
		&models.Quiz{},
		&models.Question{},
		&models.QuizAttempt{},
		&models.QuestionResponse{},
		&models.ProgressReport{},
	)
}
