// services/tax_service.go
package services

import (
	"errors"
	"fmt"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var decimalHundred = decimal.NewFromInt(100)

// ComputeTax applies a tax schedule to a pre-tax amount for one sector.
// Exclusive taxes add percentage/100 of the amount; inclusive taxes are
// recorded on the schedule but contribute nothing extra, the amount is
// assumed to already include them. Deterministic, no rounding beyond
// decimal precision.
func ComputeTax(taxes []models.Tax, amountBeforeTax decimal.Decimal, sector string) (taxAmount, amountAfterTax decimal.Decimal) {
	taxAmount = decimal.Zero
	for i := range taxes {
		t := &taxes[i]
		if !t.IsActive || !t.AppliesTo(sector) {
			continue
		}
		if t.TaxType == models.TaxTypeExclusive {
			taxAmount = taxAmount.Add(amountBeforeTax.Mul(t.Percentage).Div(decimalHundred))
		}
	}
	return taxAmount, amountBeforeTax.Add(taxAmount)
}

// TaxService owns the admin-managed tax schedule and applies it to charges.
type TaxService struct {
	DB *gorm.DB
}

func NewTaxService(db *gorm.DB) *TaxService {
	return &TaxService{DB: db}
}

// ActiveTaxes loads the currently active schedule. Sector filtering happens
// in ComputeTax so one load serves any sector.
func (s *TaxService) ActiveTaxes(tx *gorm.DB) ([]models.Tax, error) {
	if tx == nil {
		tx = s.DB
	}
	var taxes []models.Tax
	if err := tx.Where("is_active = ?", true).Order("code").Find(&taxes).Error; err != nil {
		return nil, fmt.Errorf("failed to load taxes: %w", err)
	}
	return taxes, nil
}

// Apply computes (tax, total) for a pre-tax amount in a sector using the
// active schedule. Pass tx when the caller is inside a transaction.
func (s *TaxService) Apply(tx *gorm.DB, amountBeforeTax decimal.Decimal, sector string) (decimal.Decimal, decimal.Decimal, error) {
	taxes, err := s.ActiveTaxes(tx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	taxAmount, amountAfterTax := ComputeTax(taxes, amountBeforeTax, sector)
	return taxAmount, amountAfterTax, nil
}

type TaxInput struct {
	Name       string          `json:"name" binding:"required"`
	Code       string          `json:"code" binding:"required"`
	Percentage decimal.Decimal `json:"percentage"`
	TaxType    string          `json:"tax_type"`
	Sectors    []string        `json:"sectors"`
	IsActive   *bool           `json:"is_active"`
}

func (in *TaxInput) validate() error {
	if in.TaxType != "" && in.TaxType != models.TaxTypeInclusive && in.TaxType != models.TaxTypeExclusive {
		return apperrors.Validationf("tax_type must be %q or %q", models.TaxTypeInclusive, models.TaxTypeExclusive)
	}
	if in.Percentage.IsNegative() {
		return apperrors.Validation("percentage cannot be negative")
	}
	for _, sec := range in.Sectors {
		if !models.IsBillableSector(sec) {
			return apperrors.Validationf("unknown sector %q", sec)
		}
	}
	return nil
}

func (s *TaxService) List(actor *models.User) ([]models.Tax, error) {
	if err := RequirePermission(actor, models.PermManageTaxes); err != nil {
		return nil, err
	}
	var taxes []models.Tax
	if err := s.DB.Order("code").Find(&taxes).Error; err != nil {
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}
	return taxes, nil
}

func (s *TaxService) Create(actor *models.User, in TaxInput) (*models.Tax, error) {
	if err := RequirePermission(actor, models.PermManageTaxes); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	tax := models.Tax{
		Name:       in.Name,
		Code:       in.Code,
		Percentage: in.Percentage,
		TaxType:    in.TaxType,
		Sectors:    in.Sectors,
		IsActive:   true,
	}
	if tax.TaxType == "" {
		tax.TaxType = models.TaxTypeExclusive
	}
	if in.IsActive != nil {
		tax.IsActive = *in.IsActive
	}
	if err := s.DB.Create(&tax).Error; err != nil {
		return nil, fmt.Errorf("failed to create tax: %w", err)
	}
	recordAudit(s.DB, actor, "tax.create", "Tax", tax.ID, nil)
	return &tax, nil
}

func (s *TaxService) Update(actor *models.User, id uint, in TaxInput) (*models.Tax, error) {
	if err := RequirePermission(actor, models.PermManageTaxes); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	var tax models.Tax
	if err := s.DB.First(&tax, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tax")
		}
		return nil, fmt.Errorf("failed to load tax: %w", err)
	}
	tax.Name = in.Name
	tax.Code = in.Code
	tax.Percentage = in.Percentage
	if in.TaxType != "" {
		tax.TaxType = in.TaxType
	}
	tax.Sectors = in.Sectors
	if in.IsActive != nil {
		tax.IsActive = *in.IsActive
	}
	if err := s.DB.Save(&tax).Error; err != nil {
		return nil, fmt.Errorf("failed to update tax: %w", err)
	}
	recordAudit(s.DB, actor, "tax.update", "Tax", tax.ID, nil)
	return &tax, nil
}

func (s *TaxService) Delete(actor *models.User, id uint) error {
	if err := RequirePermission(actor, models.PermManageTaxes); err != nil {
		return err
	}
	res := s.DB.Delete(&models.Tax{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete tax: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("tax")
	}
	recordAudit(s.DB, actor, "tax.delete", "Tax", id, nil)
	return nil
}
