package models

import "time"

// ContactMessage is a single public inquiry submitted through the contact
// form. Rows are append-only: never updated or deleted by this system.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Company   string    `gorm:"size:128" json:"company,omitempty"`
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
