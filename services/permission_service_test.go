package services

import (
	"testing"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/stretchr/testify/assert"
)

func userWithPermissions(codes ...string) *models.User {
	role := &models.Role{Name: "test"}
	for _, c := range codes {
		role.Permissions = append(role.Permissions, models.RolePermission{Permission: c})
	}
	return &models.User{Role: role, IsActive: true}
}

func TestAuthorizeMembership(t *testing.T) {
	user := userWithPermissions(models.PermCreateBooking, models.PermViewFolio)

	assert.True(t, Authorize(user, models.PermCreateBooking))
	assert.True(t, Authorize(user, models.PermViewFolio))
	assert.False(t, Authorize(user, models.PermManageTaxes))
}

func TestAuthorizeEdgeCases(t *testing.T) {
	assert.False(t, Authorize(nil, models.PermViewBookings), "nil actor")

	noRole := &models.User{IsActive: true}
	assert.False(t, Authorize(noRole, models.PermViewBookings), "no role grants nothing")

	super := &models.User{IsSuperuser: true}
	assert.True(t, Authorize(super, models.PermManageTaxes), "superuser bypasses the catalog")
	assert.True(t, Authorize(super, "anything-at-all"))
}

func TestRequirePermission(t *testing.T) {
	user := userWithPermissions(models.PermPostCharge)

	assert.NoError(t, RequirePermission(user, models.PermPostCharge))

	err := RequirePermission(user, models.PermManageRoles)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestVisibleSectors(t *testing.T) {
	manager := &models.User{IsManager: true}
	assert.Nil(t, VisibleSectors(manager), "manager sees all sectors")

	super := &models.User{IsSuperuser: true}
	assert.Nil(t, VisibleSectors(super))

	barStaff := &models.User{Department: &models.Department{Code: models.SectorBar}}
	assert.Equal(t, []string{models.SectorBar}, VisibleSectors(barStaff))

	unassigned := &models.User{}
	assert.Empty(t, VisibleSectors(unassigned), "no department, nothing sector-scoped")

	assert.Empty(t, VisibleSectors(nil))
}

func TestCanSeeSector(t *testing.T) {
	barStaff := &models.User{Department: &models.Department{Code: models.SectorBar}}

	assert.True(t, CanSeeSector(barStaff, models.SectorBar))
	assert.False(t, CanSeeSector(barStaff, models.SectorRestaurant))
	assert.False(t, CanSeeSector(barStaff, models.SectorRooms))

	manager := &models.User{IsManager: true}
	for _, sector := range models.AllSectors {
		assert.True(t, CanSeeSector(manager, sector))
	}
}

func TestPermissionCatalogIsClosed(t *testing.T) {
	for _, p := range models.PermissionCatalog {
		assert.True(t, models.IsKnownPermission(p.Code))
	}
	assert.False(t, models.IsKnownPermission("launch_rockets"))
	assert.False(t, models.IsKnownPermission(""))
}
