package domain

import "time"

// Product is a catalog entry owned by a seller. Availability is derived from
// inventory unless toggled explicitly; the expired flag is set exactly once by
// the expiry sweeper and never cleared.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	SellerID    string    `json:"sellerId" gorm:"type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price" gorm:"not null"`
	Image       string    `json:"image,omitempty"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	Available   bool      `json:"available" gorm:"not null;default:true"`
	ExpiryDate  time.Time `json:"expiryDate"`
	Expired     bool      `json:"expired" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
