package domain

import "time"

// OrderStatus is the lifecycle state of an order. Transitions are forward-only
// along pending → paid → processing → shipped → delivered; on_hold and
// cancelled are reachable from any non-terminal state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPaid       OrderStatus = "paid"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderOnHold     OrderStatus = "on_hold"
	OrderCancelled  OrderStatus = "cancelled"
)

var orderStatusRank = map[OrderStatus]int{
	OrderPending:    0,
	OrderPaid:       1,
	OrderProcessing: 2,
	OrderShipped:    3,
	OrderDelivered:  4,
}

// CanTransition reports whether moving from s to next is legal.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s == OrderDelivered || s == OrderCancelled {
		return false
	}
	if next == OrderOnHold || next == OrderCancelled {
		return true
	}
	from, okFrom := orderStatusRank[s]
	to, okTo := orderStatusRank[next]
	if s == OrderOnHold {
		// Resuming from hold re-enters the forward chain anywhere.
		return okTo
	}
	return okFrom && okTo && to > from
}

// Order is an immutable purchase snapshot. TotalAmount is in minor currency
// units, fixed at creation from the cart total and never recomputed.
type Order struct {
	ID                   string      `json:"id" gorm:"primaryKey;type:uuid"`
	BuyerID              string      `json:"buyerId" gorm:"type:uuid;index;not null"`
	DeliveryAddress      string      `json:"deliveryAddress" gorm:"not null"`
	PaymentMethod        string      `json:"paymentMethod" gorm:"not null"`
	Items                []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount          int64       `json:"totalAmount" gorm:"not null"`
	Status               OrderStatus `json:"status" gorm:"not null;default:pending"`
	PaymentIntentID      string      `json:"paymentIntentId,omitempty"`
	ExpectedDeliveryDate *time.Time  `json:"expectedDeliveryDate,omitempty"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// OrderItem is one ordered line. UnitPrice is in minor currency units.
type OrderItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID   string `json:"orderId" gorm:"type:uuid;index;not null"`
	ProductID string `json:"productId" gorm:"type:uuid;not null"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice" gorm:"not null"`
	Quantity  int    `json:"quantity" gorm:"not null"`
}
