package services

import (
	"testing"

	"kalongo-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func vat18() models.Tax {
	return models.Tax{
		Name:       "Value Added Tax",
		Code:       "VAT",
		Percentage: decimal.NewFromInt(18),
		TaxType:    models.TaxTypeExclusive,
		IsActive:   true,
	}
}

func tourismLevy() models.Tax {
	return models.Tax{
		Name:       "Tourism Levy",
		Code:       "TOURISM",
		Percentage: decimal.NewFromInt(1),
		TaxType:    models.TaxTypeExclusive,
		Sectors:    []string{models.SectorRooms},
		IsActive:   true,
	}
}

func TestComputeTaxExclusive(t *testing.T) {
	// Two plates at 50,000 each, restaurant, VAT 18%.
	taxes := []models.Tax{vat18(), tourismLevy()}
	amount := decimal.NewFromInt(100000)

	taxAmount, total := ComputeTax(taxes, amount, models.SectorRestaurant)

	assert.True(t, taxAmount.Equal(decimal.NewFromInt(18000)), "got %s", taxAmount)
	assert.True(t, total.Equal(decimal.NewFromInt(118000)), "got %s", total)
}

func TestComputeTaxSectorScoping(t *testing.T) {
	taxes := []models.Tax{vat18(), tourismLevy()}
	amount := decimal.NewFromInt(100000)

	// Rooms pay VAT plus the levy; restaurant only VAT.
	roomsTax, roomsTotal := ComputeTax(taxes, amount, models.SectorRooms)
	assert.True(t, roomsTax.Equal(decimal.NewFromInt(19000)), "got %s", roomsTax)
	assert.True(t, roomsTotal.Equal(decimal.NewFromInt(119000)), "got %s", roomsTotal)

	barTax, _ := ComputeTax(taxes, amount, models.SectorBar)
	assert.True(t, barTax.Equal(decimal.NewFromInt(18000)), "got %s", barTax)
}

func TestComputeTaxInclusiveAddsNothing(t *testing.T) {
	inclusive := models.Tax{
		Code:       "INC",
		Percentage: decimal.NewFromInt(10),
		TaxType:    models.TaxTypeInclusive,
		IsActive:   true,
	}
	amount := decimal.NewFromInt(50000)

	taxAmount, total := ComputeTax([]models.Tax{inclusive}, amount, models.SectorRestaurant)

	assert.True(t, taxAmount.IsZero())
	assert.True(t, total.Equal(amount))
}

func TestComputeTaxSkipsInactive(t *testing.T) {
	vat := vat18()
	vat.IsActive = false
	amount := decimal.NewFromInt(100000)

	taxAmount, total := ComputeTax([]models.Tax{vat}, amount, models.SectorRestaurant)

	assert.True(t, taxAmount.IsZero())
	assert.True(t, total.Equal(amount))
}

func TestComputeTaxEmptySchedule(t *testing.T) {
	amount := decimal.NewFromInt(42000)
	taxAmount, total := ComputeTax(nil, amount, models.SectorRooms)
	assert.True(t, taxAmount.IsZero())
	assert.True(t, total.Equal(amount))
}

func TestComputeTaxDeterministic(t *testing.T) {
	taxes := []models.Tax{vat18(), tourismLevy()}
	amount := decimal.NewFromFloat(12345.67)

	tax1, total1 := ComputeTax(taxes, amount, models.SectorRooms)
	tax2, total2 := ComputeTax(taxes, amount, models.SectorRooms)

	assert.True(t, tax1.Equal(tax2))
	assert.True(t, total1.Equal(total2))
}

func TestTaxInputValidate(t *testing.T) {
	in := TaxInput{Name: "X", Code: "X", Percentage: decimal.NewFromInt(5), TaxType: "weird"}
	assert.Error(t, in.validate())

	in.TaxType = models.TaxTypeExclusive
	in.Sectors = []string{"casino"}
	assert.Error(t, in.validate())

	in.Sectors = []string{models.SectorBar}
	assert.NoError(t, in.validate())

	in.Percentage = decimal.NewFromInt(-1)
	assert.Error(t, in.validate())
}
