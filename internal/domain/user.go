package domain

import "time"

// User represents a registered account. Sellers and buyers share the same
// record; ownership of catalog entries is tracked per product.
type User struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash      string    `json:"-" gorm:"not null"`
	Name              string    `json:"name"`
	PasswordChangedAt time.Time `json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
