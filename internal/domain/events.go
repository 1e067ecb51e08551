package domain

// Event is an ephemeral (name, payload) pair carried by the in-process bus.
// Events are not persisted; delivery is best-effort.
type Event interface {
	Name() string
}

const (
	ProductCreatedEvent  = "product.created"
	ProductExpiredEvent  = "product.expired"
	ProductDeletedEvent  = "product.deleted"
	ProductBoughtEvent   = "product.bought"
	PasswordUpdatedEvent = "password.updated"
)

type ProductCreated struct {
	Product Product
}

func (ProductCreated) Name() string { return ProductCreatedEvent }

type ProductExpired struct {
	Product Product
}

func (ProductExpired) Name() string { return ProductExpiredEvent }

type ProductDeleted struct {
	Product Product
}

func (ProductDeleted) Name() string { return ProductDeletedEvent }

// ProductBought is published once per distinct seller of a completed checkout.
type ProductBought struct {
	SellerID        string
	DeliveryAddress string
}

func (ProductBought) Name() string { return ProductBoughtEvent }

type PasswordUpdated struct {
	UserID string
}

func (PasswordUpdated) Name() string { return PasswordUpdatedEvent }
