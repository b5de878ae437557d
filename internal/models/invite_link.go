package models

import "time"

// InviteLink represents a time-limited invitation token. A link transitions
// used=false to used=true at most once; used_by and used_at are set together
// in that transition and never cleared.
type InviteLink struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Token string  `gorm:"uniqueIndex;not null" json:"-"`
	Email *string `json:"email,omitempty"`

	CreatedBy uint      `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`

	Used   bool       `gorm:"not null;default:false" json:"used"`
	UsedBy *uint      `json:"used_by,omitempty"`
	UsedAt *time.Time `json:"used_at,omitempty"`

	Creator  *User `gorm:"foreignKey:CreatedBy" json:"-"`
	Redeemer *User `gorm:"foreignKey:UsedBy" json:"-"`
}
