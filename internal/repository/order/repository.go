package order

import (
	"context"

	"marketplace-api/internal/domain"
)

// Reservation is one inventory decrement required by a new order.
type Reservation struct {
	ProductID string
	Quantity  int
}

type Repository interface {
	// CreateWithReservation atomically reserves inventory for every line,
	// inserts the order and its items, and clears the buyer's cart. If any
	// single reservation cannot be satisfied the whole transaction rolls back
	// and an InsufficientInventoryError is returned.
	CreateWithReservation(ctx context.Context, o domain.Order, reservations []Reservation, cartID string) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
}
