package domain

import "time"

// Collection groups a seller's products for presentation.
type Collection struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	SellerID    string    `json:"sellerId" gorm:"type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description,omitempty"`
	Products    []Product `json:"products,omitempty" gorm:"many2many:collection_products"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
