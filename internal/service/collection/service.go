package collection

import (
	"context"
	"strings"

	"marketplace-api/internal/authz"
	"marketplace-api/internal/domain"
	collectionrepo "marketplace-api/internal/repository/collection"
)

// Service manages seller collections. Products can only be grouped into
// collections by the seller who owns both.
type Service struct {
	repo     collectionrepo.Repository
	products productRepo
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo collectionrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) Create(ctx context.Context, sellerID string, in CreateInput) (*domain.Collection, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ValidationError("name required")
	}
	return s.repo.Create(ctx, domain.Collection{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Collection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListBySeller(ctx context.Context, sellerID string) ([]domain.Collection, error) {
	cols, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if cols == nil {
		cols = []domain.Collection{}
	}
	return cols, nil
}

// AddProduct attaches one of the seller's own products to their collection.
func (s *Service) AddProduct(ctx context.Context, actorID, collectionID, productID string) (*domain.Collection, error) {
	c, err := s.repo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actorID, c.SellerID, authz.ActionUpdate); err != nil {
		return nil, err
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actorID, p.SellerID, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if err := s.repo.AddProduct(ctx, collectionID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, collectionID)
}

func (s *Service) RemoveProduct(ctx context.Context, actorID, collectionID, productID string) (*domain.Collection, error) {
	c, err := s.repo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actorID, c.SellerID, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveProduct(ctx, collectionID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, collectionID)
}

func (s *Service) Delete(ctx context.Context, actorID, collectionID string) error {
	c, err := s.repo.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(actorID, c.SellerID, authz.ActionDelete); err != nil {
		return err
	}
	return s.repo.Delete(ctx, collectionID)
}
