package cart

import (
	"context"

	"marketplace-api/internal/domain"
)

type Repository interface {
	// GetByUser returns the user's cart with its items, or ErrCartNotFound.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Create(ctx context.Context, userID string) (*domain.Cart, error)
	// SaveItem inserts or updates one line item.
	SaveItem(ctx context.Context, item *domain.CartItem) error
	DeleteItem(ctx context.Context, cartID, productID string) error
	// SetTotal persists the recomputed cached total.
	SetTotal(ctx context.Context, cartID string, total float64) error
	// Clear removes all items and zeroes the total; the cart row persists.
	Clear(ctx context.Context, cartID string) error
}
