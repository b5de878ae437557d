package models

import "time"

// Quiz groups generated questions over a piece of source material. CreatedBy
// is absent for system-generated quizzes.
type Quiz struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Title          string `gorm:"not null" json:"title"`
	SourceMaterial string `gorm:"type:text" json:"source_material"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy *uint     `json:"created_by,omitempty"`

	Creator   *User      `gorm:"foreignKey:CreatedBy" json:"-"`
	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}
