package models

import "time"

// QuizAttempt records one run through a quiz. CompletedAt, Score and
// MaxScore stay unset until completion and are written together.
type QuizAttempt struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	QuizID uint `gorm:"not null;index" json:"quiz_id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	StartedAt   time.Time  `gorm:"not null;index" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Score       *float64   `json:"score,omitempty"`
	MaxScore    *int       `json:"max_score,omitempty"`

	Quiz *Quiz `gorm:"foreignKey:QuizID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`

	Responses []QuestionResponse `gorm:"foreignKey:AttemptID" json:"responses,omitempty"`
}
