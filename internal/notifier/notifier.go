// Package notifier holds the asynchronous side effects fanned out by the
// event bus: seller emails and notification records. Handlers return errors
// to the bus, which logs and counts them; nothing here reaches a request path.
package notifier

import (
	"context"
	"fmt"
	"time"

	"marketplace-api/internal/bus"
	"marketplace-api/internal/domain"
	"marketplace-api/internal/mailer"
	notificationrepo "marketplace-api/internal/repository/notification"
	userrepo "marketplace-api/internal/repository/user"
)

type Notifier struct {
	users         userrepo.Repository
	notifications notificationrepo.Repository
	mail          mailer.Sender
	now           func() time.Time
}

func New(users userrepo.Repository, notifications notificationrepo.Repository, mail mailer.Sender) *Notifier {
	return &Notifier{users: users, notifications: notifications, mail: mail, now: time.Now}
}

// Register wires every handler onto the bus. Done once at startup; there is
// deliberately no implicit registration at package load.
func (n *Notifier) Register(b *bus.Bus) {
	b.Subscribe(domain.ProductCreatedEvent, bus.HandlerFunc(n.HandleProductCreated))
	b.Subscribe(domain.ProductExpiredEvent, bus.HandlerFunc(n.HandleProductExpired))
	b.Subscribe(domain.ProductDeletedEvent, bus.HandlerFunc(n.HandleProductDeleted))
	b.Subscribe(domain.ProductBoughtEvent, bus.HandlerFunc(n.HandleProductBought))
	b.Subscribe(domain.PasswordUpdatedEvent, bus.HandlerFunc(n.HandlePasswordUpdated))
}

func (n *Notifier) HandleProductCreated(ctx context.Context, evt domain.Event) error {
	e, ok := evt.(domain.ProductCreated)
	if !ok {
		return fmt.Errorf("unexpected payload %T", evt)
	}
	return n.notifySeller(ctx, e.Product.SellerID,
		"Product added",
		fmt.Sprintf("Your product %q is now listed.", e.Product.Name),
		fmt.Sprintf("Your product %q was added to the marketplace.", e.Product.Name))
}

func (n *Notifier) HandleProductExpired(ctx context.Context, evt domain.Event) error {
	e, ok := evt.(domain.ProductExpired)
	if !ok {
		return fmt.Errorf("unexpected payload %T", evt)
	}
	return n.notifySeller(ctx, e.Product.SellerID,
		"Product Expired",
		fmt.Sprintf("Your product %q expired on %s and is no longer available.",
			e.Product.Name, e.Product.ExpiryDate.Format("2006-01-02")),
		fmt.Sprintf("Your product %q has expired.", e.Product.Name))
}

func (n *Notifier) HandleProductDeleted(ctx context.Context, evt domain.Event) error {
	e, ok := evt.(domain.ProductDeleted)
	if !ok {
		return fmt.Errorf("unexpected payload %T", evt)
	}
	return n.notifySeller(ctx, e.Product.SellerID,
		"Product deleted",
		fmt.Sprintf("Your product %q was removed from the marketplace.", e.Product.Name),
		fmt.Sprintf("Your product %q was deleted.", e.Product.Name))
}

func (n *Notifier) HandleProductBought(ctx context.Context, evt domain.Event) error {
	e, ok := evt.(domain.ProductBought)
	if !ok {
		return fmt.Errorf("unexpected payload %T", evt)
	}
	return n.notifySeller(ctx, e.SellerID,
		"Product Bought",
		fmt.Sprintf("One of your products was bought. Deliver to: %s", e.DeliveryAddress),
		"One of your products was bought.")
}

// HandlePasswordUpdated reloads the user and stamps the update time; the
// password-reminder sweeper keys off this record.
func (n *Notifier) HandlePasswordUpdated(ctx context.Context, evt domain.Event) error {
	e, ok := evt.(domain.PasswordUpdated)
	if !ok {
		return fmt.Errorf("unexpected payload %T", evt)
	}
	u, err := n.users.GetByID(ctx, e.UserID)
	if err != nil {
		return err
	}
	u.UpdatedAt = n.now().UTC()
	return n.users.Update(ctx, u)
}

// notifySeller emails the seller and creates their notification record. The
// email goes first; if the seller lookup fails, neither side effect happens.
func (n *Notifier) notifySeller(ctx context.Context, sellerID, title, emailBody, noteBody string) error {
	seller, err := n.users.GetByID(ctx, sellerID)
	if err != nil {
		return fmt.Errorf("load seller %s: %w", sellerID, err)
	}

	if err := n.mail.Send(ctx, mailer.Message{
		To:      seller.Email,
		Subject: title,
		Text:    emailBody,
		HTML:    fmt.Sprintf("<p>%s</p>", emailBody),
	}); err != nil {
		return fmt.Errorf("email seller %s: %w", sellerID, err)
	}

	if _, err := n.notifications.Create(ctx, domain.Notification{
		UserID:      sellerID,
		Title:       title,
		Description: noteBody,
	}); err != nil {
		return fmt.Errorf("create notification for %s: %w", sellerID, err)
	}
	return nil
}
