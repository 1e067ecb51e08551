package product

import (
	"context"
	"time"

	"marketplace-api/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// ListExpiring returns products whose expiry date is before now and whose
	// expired flag is still false.
	ListExpiring(ctx context.Context, now time.Time) ([]domain.Product, error)
	MarkExpired(ctx context.Context, id string) error
}
