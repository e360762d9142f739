// Package permissions holds the authorization predicates evaluated per
// request against (actor, resource). They are plain functions composed with
// explicit boolean logic at the call site.
package permissions

import "github.com/akhilnair-dev/storefront-api/models"

func IsAdmin(actor *models.User) bool {
	return actor != nil && actor.Role == models.RoleAdmin
}

func IsCustomer(actor *models.User) bool {
	return actor != nil && actor.Role == models.RoleCustomer
}

// IsOwner reports whether the actor owns the resource identified by its
// user id.
func IsOwner(actor *models.User, ownerID uint) bool {
	return actor != nil && actor.ID == ownerID
}

// IsAdminOrOwner allows admins unconditionally and owners otherwise.
func IsAdminOrOwner(actor *models.User, ownerID uint) bool {
	return IsAdmin(actor) || IsOwner(actor, ownerID)
}

// CanTransition reports whether the actor may move an order from its
// current status to the requested one. Orders only ever move out of
// PENDING: admins advance to PROCESSING or cancel, owners may only cancel.
func CanTransition(actor *models.User, current, next models.OrderStatus) bool {
	if current != models.OrderStatusPending || next == current {
		return false
	}
	switch next {
	case models.OrderStatusProcessing:
		return IsAdmin(actor)
	case models.OrderStatusCancelled:
		return IsAdmin(actor) || IsCustomer(actor)
	}
	return false
}
