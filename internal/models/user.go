package models

import "time"

// User describes a platform account. The password hash is an opaque blob
// supplied by the caller; the store never inspects or verifies it.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Email        *string `gorm:"uniqueIndex" json:"email,omitempty"`

	SubscriptionActive  bool       `gorm:"default:false" json:"subscription_active"`
	SubscriptionExpires *time.Time `json:"subscription_expires,omitempty"`
	IsAdmin             bool       `gorm:"default:false" json:"is_admin"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
