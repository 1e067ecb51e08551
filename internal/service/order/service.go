package order

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"marketplace-api/internal/authz"
	"marketplace-api/internal/domain"
	orderrepo "marketplace-api/internal/repository/order"
)

var (
	// ErrInvalidTransition is returned for status updates that move backwards
	// or out of a terminal state.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// deliveryLeadTime is stamped onto the order when it enters processing.
const deliveryLeadTime = 5 * 24 * time.Hour

// Service turns a non-empty cart into an immutable order: reserve inventory,
// snapshot the lines and total, clear the cart. The reservation is
// all-or-nothing inside one transaction.
type Service struct {
	orders orderrepo.Repository
	carts  cartRepo
	now    func() time.Time
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
}

func New(orders orderrepo.Repository, carts cartRepo) *Service {
	return &Service{orders: orders, carts: carts, now: time.Now}
}

// Create builds an order from the buyer's cart. The order total is the cart
// total converted to minor units at this moment; later product price changes
// never touch it.
func (s *Service) Create(ctx context.Context, buyerID, deliveryAddress, paymentMethod string) (*domain.Order, error) {
	if strings.TrimSpace(deliveryAddress) == "" {
		return nil, domain.ValidationError("delivery address required")
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return nil, domain.ValidationError("payment method required")
	}

	c, err := s.carts.GetByUser(ctx, buyerID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return nil, domain.ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(c.Items))
	reservations := make([]orderrepo.Reservation, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: toMinorUnits(line.Price),
			Quantity:  line.Quantity,
		})
		reservations = append(reservations, orderrepo.Reservation{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	o := domain.Order{
		BuyerID:         buyerID,
		DeliveryAddress: deliveryAddress,
		PaymentMethod:   paymentMethod,
		Items:           items,
		TotalAmount:     toMinorUnits(c.Total),
		Status:          domain.OrderPending,
	}

	return s.orders.CreateWithReservation(ctx, o, reservations, c.ID)
}

// Get returns an order to its buyer only.
func (s *Service) Get(ctx context.Context, actorID, orderID string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actorID, o.BuyerID, authz.ActionRead); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// UpdateStatus applies a forward-only transition on the actor's own order.
// Entering processing stamps the expected delivery date.
func (s *Service) UpdateStatus(ctx context.Context, actorID, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actorID, o.BuyerID, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}

	o.Status = next
	if next == domain.OrderProcessing && o.ExpectedDeliveryDate == nil {
		eta := s.now().Add(deliveryLeadTime)
		o.ExpectedDeliveryDate = &eta
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// toMinorUnits converts a float major-unit amount to integer minor units.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
