package services

import (
	"errors"
	"testing"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrderForwardSteps(t *testing.T) {
	assert.True(t, CanTransitionOrder(models.OrderStatusNew, models.OrderStatusPreparing))
	assert.True(t, CanTransitionOrder(models.OrderStatusPreparing, models.OrderStatusReady))
	assert.True(t, CanTransitionOrder(models.OrderStatusReady, models.OrderStatusServed))
}

func TestCanTransitionOrderNoSkippingOrReversing(t *testing.T) {
	assert.False(t, CanTransitionOrder(models.OrderStatusNew, models.OrderStatusReady), "no skipping")
	assert.False(t, CanTransitionOrder(models.OrderStatusNew, models.OrderStatusServed))
	assert.False(t, CanTransitionOrder(models.OrderStatusReady, models.OrderStatusPreparing), "no reversing")
	assert.False(t, CanTransitionOrder(models.OrderStatusPreparing, models.OrderStatusNew))
}

func TestCanTransitionOrderCancellation(t *testing.T) {
	assert.True(t, CanTransitionOrder(models.OrderStatusNew, models.OrderStatusCancelled))
	assert.True(t, CanTransitionOrder(models.OrderStatusPreparing, models.OrderStatusCancelled))
	assert.True(t, CanTransitionOrder(models.OrderStatusReady, models.OrderStatusCancelled))

	// Terminal states stay terminal.
	assert.False(t, CanTransitionOrder(models.OrderStatusServed, models.OrderStatusCancelled))
	assert.False(t, CanTransitionOrder(models.OrderStatusCancelled, models.OrderStatusNew))
	assert.False(t, CanTransitionOrder(models.OrderStatusCancelled, models.OrderStatusCancelled))
}

func TestCanTransitionOrderUnknownStatus(t *testing.T) {
	assert.False(t, CanTransitionOrder("mystery", models.OrderStatusPreparing))
	assert.False(t, CanTransitionOrder(models.OrderStatusNew, "mystery"))
}

func TestOrderAggregateTaxation(t *testing.T) {
	// An order taxes its aggregate once: 2x3,000 + 1x4,000 = 10,000 net,
	// VAT 18% -> 1,800 tax, 11,800 gross.
	taxes := []models.Tax{vat18()}
	lineTotals := []decimal.Decimal{
		decimal.NewFromInt(3000).Mul(decimal.NewFromInt(2)),
		decimal.NewFromInt(4000),
	}
	totalBefore := decimal.Zero
	for _, lt := range lineTotals {
		totalBefore = totalBefore.Add(lt)
	}

	taxAmount, totalAmount := ComputeTax(taxes, totalBefore, models.SectorRestaurant)

	assert.True(t, totalBefore.Equal(decimal.NewFromInt(10000)))
	assert.True(t, taxAmount.Equal(decimal.NewFromInt(1800)))
	assert.True(t, totalAmount.Equal(decimal.NewFromInt(11800)))
}

func beerMenuItemRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "menu_id", "name", "price", "is_available"}).
		AddRow(5, 2, "Local Beer", "6000", true)
}

func noActiveTaxes() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "code", "name", "percentage", "tax_type", "is_active"})
}

func TestCreateOrderPostToRoomClosedFolio(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPOSService(db, NewTaxService(db))
	actor := userWithPermissions(models.PermCreatePOSOrder)
	folioID := uint(9)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `pos_menu_items`").WillReturnRows(beerMenuItemRow())
	mock.ExpectQuery("SELECT .* FROM `taxes`").WillReturnRows(noActiveTaxes())
	mock.ExpectQuery("SELECT .* FROM `folios` WHERE .* FOR UPDATE").
		WillReturnRows(closedFolioRow(folioID))
	mock.ExpectRollback()

	_, err := svc.CreateOrder(actor, CreateOrderInput{
		Sector:        models.SectorBar,
		PaymentIntent: models.PaymentIntentPostToRoom,
		FolioID:       &folioID,
		Items:         []OrderItemInput{{MenuItemID: 5, Quantity: 2}},
	})

	assert.ErrorIs(t, err, apperrors.ErrFolioClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderPostToRoomRollsBackOnChargeFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPOSService(db, NewTaxService(db))
	actor := userWithPermissions(models.PermCreatePOSOrder)
	folioID := uint(9)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `pos_menu_items`").WillReturnRows(beerMenuItemRow())
	mock.ExpectQuery("SELECT .* FROM `taxes`").WillReturnRows(noActiveTaxes())
	mock.ExpectQuery("SELECT .* FROM `folios` WHERE .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "is_primary", "status"}).
			AddRow(folioID, 3, true, models.FolioStatusOpen))
	mock.ExpectExec("INSERT INTO `pos_orders`").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO `folio_charges`").
		WillReturnError(errors.New("Error 1213: Deadlock found when trying to get lock"))
	mock.ExpectRollback()

	_, err := svc.CreateOrder(actor, CreateOrderInput{
		Sector:        models.SectorBar,
		PaymentIntent: models.PaymentIntentPostToRoom,
		FolioID:       &folioID,
		Items:         []OrderItemInput{{MenuItemID: 5, Quantity: 2}},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to post order charge")
	// The rollback must discard the order row; no order items get written.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderIsTerminal(t *testing.T) {
	assert.False(t, (&models.Order{Status: models.OrderStatusNew}).IsTerminal())
	assert.False(t, (&models.Order{Status: models.OrderStatusReady}).IsTerminal())
	assert.True(t, (&models.Order{Status: models.OrderStatusServed}).IsTerminal())
	assert.True(t, (&models.Order{Status: models.OrderStatusCancelled}).IsTerminal())
}
