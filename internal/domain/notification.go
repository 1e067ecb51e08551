package domain

import "time"

// Notification is a per-user record created by event handlers and marked read
// in bulk by its owner. Never deleted in the normal flow.
type Notification struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string    `json:"userId" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Read        bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
}
