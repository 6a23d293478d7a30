package services

import (
	"testing"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCanCheckIn(t *testing.T) {
	assert.True(t, canCheckIn(models.BookingStatusPending))
	assert.True(t, canCheckIn(models.BookingStatusConfirmed))

	assert.False(t, canCheckIn(models.BookingStatusCheckedIn), "no double check-in")
	assert.False(t, canCheckIn(models.BookingStatusCheckedOut))
	assert.False(t, canCheckIn(models.BookingStatusCancelled))
}

func TestCanCancel(t *testing.T) {
	assert.True(t, canCancel(models.BookingStatusPending))
	assert.True(t, canCancel(models.BookingStatusConfirmed))
	assert.True(t, canCancel(models.BookingStatusCheckedIn))

	assert.False(t, canCancel(models.BookingStatusCheckedOut), "terminal")
	assert.False(t, canCancel(models.BookingStatusCancelled), "terminal")
}

func TestParseBookingDates(t *testing.T) {
	ci, co, err := parseBookingDates(CreateBookingInput{
		CheckInDate:  "2026-09-01",
		CheckOutDate: "2026-09-04",
	})
	assert.NoError(t, err)
	assert.Equal(t, "2026-09-01", ci.Format("2006-01-02"))
	assert.Equal(t, "2026-09-04", co.Format("2006-01-02"))
}

func TestParseBookingDatesRejectsGarbage(t *testing.T) {
	_, _, err := parseBookingDates(CreateBookingInput{
		CheckInDate:  "not-a-date",
		CheckOutDate: "2026-09-04",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = parseBookingDates(CreateBookingInput{
		CheckInDate:  "2026-09-01",
		CheckOutDate: "01/09/2026",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseBookingDatesRejectsBackwardsRange(t *testing.T) {
	_, _, err := parseBookingDates(CreateBookingInput{
		CheckInDate:  "2026-09-04",
		CheckOutDate: "2026-09-01",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBookingIsTerminal(t *testing.T) {
	assert.False(t, (&models.Booking{Status: models.BookingStatusCheckedIn}).IsTerminal())
	assert.True(t, (&models.Booking{Status: models.BookingStatusCheckedOut}).IsTerminal())
	assert.True(t, (&models.Booking{Status: models.BookingStatusCancelled}).IsTerminal())
}

func TestPrimaryFolioSelection(t *testing.T) {
	booking := &models.Booking{
		Folios: []models.Folio{
			{ID: 1, IsPrimary: false},
			{ID: 2, IsPrimary: true},
		},
	}
	folio := booking.PrimaryFolio()
	assert.NotNil(t, folio)
	assert.Equal(t, uint(2), folio.ID)

	empty := &models.Booking{}
	assert.Nil(t, empty.PrimaryFolio())
}
