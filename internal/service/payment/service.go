package payment

import (
	"context"
	"fmt"

	"marketplace-api/internal/authz"
	"marketplace-api/internal/domain"
	"marketplace-api/internal/payment"
	orderrepo "marketplace-api/internal/repository/order"
)

// Confirmation is returned to the buyer after a successful charge.
type Confirmation struct {
	OrderID         string             `json:"orderId"`
	Status          domain.OrderStatus `json:"status"`
	TotalAmount     int64              `json:"totalAmount"`
	PaymentIntentID string             `json:"paymentIntentId"`
}

// Service charges an order through the external gateway and reconciles the
// order status. No retries here: a failed charge is final for this call, and
// retry policy belongs to the caller.
type Service struct {
	orders   orderrepo.Repository
	gateway  payment.Gateway
	currency string
}

func New(orders orderrepo.Repository, gateway payment.Gateway, currency string) *Service {
	return &Service{orders: orders, gateway: gateway, currency: currency}
}

// Process charges order.TotalAmount (minor units) against the given payment
// method and marks the order paid on success.
func (s *Service) Process(ctx context.Context, buyerID, orderID, methodToken string) (*Confirmation, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(buyerID, o.BuyerID, authz.ActionPay); err != nil {
		return nil, err
	}

	res, err := s.gateway.Charge(ctx, o.TotalAmount, s.currency, methodToken)
	if err != nil || !res.Succeeded {
		if err == nil {
			err = fmt.Errorf("gateway reported non-success")
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}

	o.Status = domain.OrderPaid
	o.PaymentIntentID = res.ChargeID
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	return &Confirmation{
		OrderID:         o.ID,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		PaymentIntentID: o.PaymentIntentID,
	}, nil
}
