package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict (duplicate email, product name, ...).
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized indicates the acting user does not own the resource.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyCart indicates checkout was attempted with no cart or an empty one.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPaymentFailed indicates the charge collaborator reported a non-success outcome.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrInternal marks unexpected failures (store connectivity, broken data
	// invariants) surfaced at operation boundaries.
	ErrInternal = errors.New("internal error")
)

// Entity-scoped not-found sentinels. All wrap ErrNotFound so callers can match
// either the broad kind or the specific entity.
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrProductNotFound    = fmt.Errorf("product %w", ErrNotFound)
	ErrCartNotFound       = fmt.Errorf("cart %w", ErrNotFound)
	ErrCartItemNotFound   = fmt.Errorf("cart item %w", ErrNotFound)
	ErrOrderNotFound      = fmt.Errorf("order %w", ErrNotFound)
	ErrCollectionNotFound = fmt.Errorf("collection %w", ErrNotFound)
)

// InsufficientInventoryError reports the first order line whose reservation
// could not be satisfied. The whole reservation rolls back when it occurs.
type InsufficientInventoryError struct {
	ProductID string
	Requested int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for product %s (requested %d)", e.ProductID, e.Requested)
}

// ValidationError attaches a reason to ErrValidation.
func ValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// Internal wraps an unexpected error so boundaries can report it as ErrInternal
// without losing the cause.
func Internal(err error) error {
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
