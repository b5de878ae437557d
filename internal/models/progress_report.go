package models

import "time"

// ProgressReport points at a rendered report file for a user. EmailedTo and
// EmailedAt are set together on delivery; re-delivery overwrites both.
type ProgressReport struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Title       string    `gorm:"not null" json:"title"`
	GeneratedAt time.Time `gorm:"not null;index" json:"generated_at"`
	ReportPath  string    `json:"report_path"`

	EmailedTo *string    `json:"emailed_to,omitempty"`
	EmailedAt *time.Time `json:"emailed_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
