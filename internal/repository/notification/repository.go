package notification

import (
	"context"

	"marketplace-api/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, n domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	// MarkRead flips the read flag on the given ids, restricted to rows owned
	// by userID. Returns the number of rows updated.
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)
}
