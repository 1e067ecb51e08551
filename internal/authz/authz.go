// Package authz centralizes resource-ownership checks so the rule is defined
// once instead of being repeated in every handler.
package authz

import "marketplace-api/internal/domain"

// Action names what the actor is attempting, for error context and future
// rule growth.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionPay    Action = "pay"
)

// RequireOwner returns ErrUnauthorized unless actorID owns the resource.
func RequireOwner(actorID, ownerID string, _ Action) error {
	if actorID == "" || actorID != ownerID {
		return domain.ErrUnauthorized
	}
	return nil
}
