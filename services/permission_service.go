// services/permission_service.go
package services

import (
	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"gorm.io/gorm"
)

// The permission model is data-driven: a role is a set of opaque action
// codes, and authorization is a membership test. No branching on role names
// anywhere. Actors are passed explicitly; there is no ambient current-user
// state in the services.

// Authorize reports whether the actor may perform the named action.
// Superusers may do everything; an actor with no role may do nothing
// privileged. The actor must be loaded with Role.Permissions.
func Authorize(actor *models.User, actionCode string) bool {
	if actor == nil {
		return false
	}
	if actor.IsSuperuser {
		return true
	}
	if actor.Role == nil {
		return false
	}
	return actor.Role.HasPermission(actionCode)
}

// RequirePermission returns ErrPermissionDenied unless Authorize passes.
func RequirePermission(actor *models.User, actionCode string) error {
	if !Authorize(actor, actionCode) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// VisibleSectors returns the sector codes the actor may see, or nil for
// "all sectors" (managers and superusers). A non-manager is restricted to
// exactly their own department's sector; one without a department sees
// nothing sector-scoped.
func VisibleSectors(actor *models.User) []string {
	if actor == nil {
		return []string{}
	}
	if actor.IsSuperuser || actor.IsManager {
		return nil
	}
	if actor.Department == nil {
		return []string{}
	}
	return []string{actor.Department.Code}
}

// CanSeeSector reports whether one sector is visible to the actor.
func CanSeeSector(actor *models.User, sector string) bool {
	visible := VisibleSectors(actor)
	if visible == nil {
		return true
	}
	for _, s := range visible {
		if s == sector {
			return true
		}
	}
	return false
}

// ScopeSectors applies the actor's visibility as a mandatory filter on a
// sector-scoped query. Used on every list/aggregate over bookings,
// expenses, orders and sales figures.
func ScopeSectors(tx *gorm.DB, actor *models.User, column string) *gorm.DB {
	visible := VisibleSectors(actor)
	if visible == nil {
		return tx
	}
	return tx.Where(column+" IN ?", visible)
}
