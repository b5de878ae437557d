package models

import "gorm.io/datatypes"

// Question types supported by the quiz generator.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeShortAnswer    = "short_answer"
)

// Question belongs to a quiz. Options is populated only for multiple-choice
// questions and round-trips in insertion order.
type Question struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	QuizID        uint   `gorm:"not null;index" json:"quiz_id"`
	QuestionText  string `gorm:"type:text;not null" json:"question_text"`
	QuestionType  string `gorm:"not null" json:"question_type"`
	CorrectAnswer string `gorm:"type:text" json:"correct_answer"`

	Options datatypes.JSONSlice[string] `json:"options,omitempty"`

	Quiz *Quiz `gorm:"foreignKey:QuizID" json:"-"`
}
