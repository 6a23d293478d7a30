package services

import (
	"testing"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestListHousekeepingRequestsHousekeepingCode(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewFinanceService(db)
	viewer := userWithPermissions(models.PermViewHousekeeping)

	mock.ExpectQuery("SELECT .* FROM `housekeeping_requests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "description", "status"}).
			AddRow(1, "Extra towels room 201", models.HousekeepingStatusPending))

	requests, err := svc.ListHousekeepingRequests(viewer, "")
	assert.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHousekeepingRequestsDeniesOtherCodes(t *testing.T) {
	svc := NewFinanceService(nil)

	// Maintenance visibility does not imply housekeeping visibility.
	_, err := svc.ListHousekeepingRequests(userWithPermissions(models.PermViewMaintenance), "")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.ListHousekeepingRequests(userWithPermissions(models.PermCreateHousekeeping), "")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
