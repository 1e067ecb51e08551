package user

import (
	"context"
	"time"

	"marketplace-api/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	// ListPasswordOlderThan returns users whose password was last changed
	// before the cutoff. Used by the password-expiration sweeper.
	ListPasswordOlderThan(ctx context.Context, cutoff time.Time) ([]domain.User, error)
}
