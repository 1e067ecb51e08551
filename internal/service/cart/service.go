package cart

import (
	"context"
	"errors"
	"fmt"

	"marketplace-api/internal/domain"
	cartrepo "marketplace-api/internal/repository/cart"
)

// Service owns the cart lifecycle: one active cart per user, line items with
// product snapshots, and a cached total recomputed on every mutation.
type Service struct {
	carts    cartrepo.Repository
	products productRepo
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(carts cartrepo.Repository, products productRepo) *Service {
	return &Service{carts: carts, products: products}
}

// AddItem puts quantity units of a product into the user's cart, creating the
// cart on first use. Adding a product already in the cart increments the
// existing line instead of appending a second one.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ValidationError("quantity must be a positive integer")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		c, err = s.carts.Create(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	item := findItem(c.Items, productID)
	if item != nil {
		item.Quantity += quantity
	} else {
		item = &domain.CartItem{
			CartID:    c.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  quantity,
		}
		c.Items = append(c.Items, *item)
		item = &c.Items[len(c.Items)-1]
	}
	if err := s.carts.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	return s.persistTotal(ctx, c)
}

// UpdateItem overwrites the quantity of an existing line, refreshing the line
// price from the current product record.
func (s *Service) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ValidationError("quantity must be a positive integer")
	}

	c, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := findItem(c.Items, productID)
	if item == nil {
		return nil, domain.ErrCartItemNotFound
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.Price = product.Price
	item.Name = product.Name
	item.Image = product.Image
	if err := s.carts.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	return s.persistTotal(ctx, c)
}

// RemoveItem drops a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	c, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if findItem(c.Items, productID) == nil {
		return nil, domain.ErrCartItemNotFound
	}
	if err := s.carts.DeleteItem(ctx, c.ID, productID); err != nil {
		return nil, err
	}

	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.Items = kept

	return s.persistTotal(ctx, c)
}

// Clear empties the cart and zeroes its total. A user without a cart is a
// no-op reported as false, not an error.
func (s *Service) Clear(ctx context.Context, userID string) (bool, error) {
	c, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.carts.Clear(ctx, c.ID); err != nil {
		return false, err
	}
	return true, nil
}

// View returns the cart with each line enriched with live product details. A
// missing cart views as empty, never as an error.
func (s *Service) View(ctx context.Context, userID string) (*domain.Cart, error) {
	c, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}, Total: 0}, nil
	}
	if err != nil {
		return nil, err
	}

	for i := range c.Items {
		product, err := s.products.GetByID(ctx, c.Items[i].ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Product deleted since it was added; keep the snapshot.
				continue
			}
			return nil, err
		}
		c.Items[i].Name = product.Name
		c.Items[i].Price = product.Price
		c.Items[i].Image = product.Image
	}
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	return c, nil
}

// persistTotal recomputes the cached total from the items and stores it. A
// line without a resolvable price is a data bug, not a user error.
func (s *Service) persistTotal(ctx context.Context, c *domain.Cart) (*domain.Cart, error) {
	for _, it := range c.Items {
		if it.Price <= 0 {
			return nil, domain.Internal(fmt.Errorf("cart %s line %s has no resolvable price", c.ID, it.ProductID))
		}
	}
	c.Total = c.RecomputeTotal()
	if err := s.carts.SetTotal(ctx, c.ID, c.Total); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	return c, nil
}

func findItem(items []domain.CartItem, productID string) *domain.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i]
		}
	}
	return nil
}
