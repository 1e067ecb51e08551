package domain

import "time"

// Cart is the single active cart for a user. Total is a cached value that is
// recomputed from the items on every mutation; the record survives Clear.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string     `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Total     float64    `json:"total" gorm:"not null;default:0"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is one line of a cart. Name, Price and Image are snapshots of the
// product at add time; Price is refreshed on quantity updates.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CartID    string    `json:"cartId" gorm:"type:uuid;index;not null"`
	ProductID string    `json:"productId" gorm:"type:uuid;index;not null"`
	Name      string    `json:"name"`
	Price     float64   `json:"price" gorm:"not null"`
	Image     string    `json:"image,omitempty"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecomputeTotal returns Σ(price × quantity) over the items.
func (c *Cart) RecomputeTotal() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
