package collection

import (
	"context"

	"marketplace-api/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Collection) (*domain.Collection, error)
	GetByID(ctx context.Context, id string) (*domain.Collection, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Collection, error)
	AddProduct(ctx context.Context, collectionID, productID string) error
	RemoveProduct(ctx context.Context, collectionID, productID string) error
	Delete(ctx context.Context, id string) error
}
