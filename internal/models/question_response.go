package models

// QuestionResponse is an append-only record of a single answer within an
// attempt. Multiple responses to the same (attempt, question) pair are
// permitted; each produces a new row.
type QuestionResponse struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	AttemptID  uint `gorm:"not null;index" json:"attempt_id"`
	QuestionID uint `gorm:"not null;index" json:"question_id"`

	UserResponse string `gorm:"type:text" json:"user_response"`
	IsCorrect    bool   `gorm:"not null" json:"is_correct"`

	Attempt  *QuizAttempt `gorm:"foreignKey:AttemptID" json:"-"`
	Question *Question    `gorm:"foreignKey:QuestionID" json:"-"`
}
