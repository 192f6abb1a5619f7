package models

import "time"

// Session stores admin login sessions (for logout, invalidation, audit).
type Session struct {
	Token     string    `gorm:"primaryKey;size:64"` // opaque UUID
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
