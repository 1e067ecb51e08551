package product

import (
	"context"
	"strings"
	"time"

	"marketplace-api/internal/authz"
	"marketplace-api/internal/bus"
	"marketplace-api/internal/domain"
	productrepo "marketplace-api/internal/repository/product"
)

// Service handles seller-facing catalog operations and publishes the
// corresponding domain events.
type Service struct {
	repo productrepo.Repository
	bus  bus.Publisher
}

func New(repo productrepo.Repository, publisher bus.Publisher) *Service {
	return &Service{repo: repo, bus: publisher}
}

type CreateInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Quantity    int       `json:"quantity"`
	ExpiryDate  time.Time `json:"expiryDate"`
}

type UpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Quantity    *int     `json:"quantity"`
}

// Create registers a product for the seller. Duplicate names per seller are a
// conflict. Publishes productCreated.
func (s *Service) Create(ctx context.Context, sellerID string, in CreateInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ValidationError("name required")
	}
	if in.Price <= 0 {
		return nil, domain.ValidationError("price must be positive")
	}
	if in.Quantity < 0 {
		return nil, domain.ValidationError("quantity must not be negative")
	}

	p, err := s.repo.Create(ctx, domain.Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Quantity:    in.Quantity,
		Available:   in.Quantity > 0,
		ExpiryDate:  in.ExpiryDate,
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, domain.ProductCreated{Product: *p})
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *Service) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	products, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Update applies partial changes. Only the owning seller may update; inventory
// reaching zero flips availability off, restocking flips it back on.
func (s *Service) Update(ctx context.Context, actorID, productID string, in UpdateInput) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actorID, p.SellerID, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ValidationError("name required")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, domain.ValidationError("price must be positive")
		}
		p.Price = *in.Price
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ValidationError("quantity must not be negative")
		}
		p.Quantity = *in.Quantity
		p.Available = *in.Quantity > 0 && !p.Expired
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product (owner only) and publishes productDeleted.
func (s *Service) Delete(ctx context.Context, actorID, productID string) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(actorID, p.SellerID, authz.ActionDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}

	s.bus.Publish(ctx, domain.ProductDeleted{Product: *p})
	return nil
}
