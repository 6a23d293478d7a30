// services/folio_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const receiptNumberAttempts = 5

// FolioService owns the append-only charge/payment ledger of one guest
// account and receipt issuance.
type FolioService struct {
	DB    *gorm.DB
	Taxes *TaxService
}

func NewFolioService(db *gorm.DB, taxes *TaxService) *FolioService {
	return &FolioService{DB: db, Taxes: taxes}
}

// FolioTotals is computed on demand from the ledger, never cached.
type FolioTotals struct {
	TotalCharges  decimal.Decimal `json:"total_charges"`
	TotalPayments decimal.Decimal `json:"total_payments"`
	Balance       decimal.Decimal `json:"balance"`
}

// ComputeTotals sums post-tax charge amounts and payment amounts.
func ComputeTotals(charges []models.FolioCharge, payments []models.FolioPayment) FolioTotals {
	totals := FolioTotals{
		TotalCharges:  decimal.Zero,
		TotalPayments: decimal.Zero,
	}
	for i := range charges {
		totals.TotalCharges = totals.TotalCharges.Add(charges[i].AmountAfterTax)
	}
	for i := range payments {
		totals.TotalPayments = totals.TotalPayments.Add(payments[i].Amount)
	}
	totals.Balance = totals.TotalCharges.Sub(totals.TotalPayments)
	return totals
}

func (s *FolioService) totalsTx(tx *gorm.DB, folioID uint) (FolioTotals, error) {
	var charges []models.FolioCharge
	if err := tx.Where("folio_id = ?", folioID).Find(&charges).Error; err != nil {
		return FolioTotals{}, fmt.Errorf("failed to load charges: %w", err)
	}
	var payments []models.FolioPayment
	if err := tx.Where("folio_id = ?", folioID).Find(&payments).Error; err != nil {
		return FolioTotals{}, fmt.Errorf("failed to load payments: %w", err)
	}
	return ComputeTotals(charges, payments), nil
}

// Totals recomputes the running totals for a folio.
func (s *FolioService) Totals(folioID uint) (FolioTotals, error) {
	return s.totalsTx(s.DB, folioID)
}

// FolioView is a folio plus its computed totals.
type FolioView struct {
	models.Folio
	Totals FolioTotals `json:"totals"`
}

func (s *FolioService) GetByID(actor *models.User, id uint) (*FolioView, error) {
	if err := RequirePermission(actor, models.PermViewFolio); err != nil {
		return nil, err
	}
	var folio models.Folio
	if err := s.DB.
		Preload("Charges", func(db *gorm.DB) *gorm.DB { return db.Order("posted_at, id") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("confirmed_at, id") }).
		Preload("Payments.Receipt").
		First(&folio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("folio")
		}
		return nil, fmt.Errorf("failed to retrieve folio: %w", err)
	}
	return &FolioView{Folio: folio, Totals: ComputeTotals(folio.Charges, folio.Payments)}, nil
}

type PostChargeInput struct {
	Sector        string          `json:"sector" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	RoomNightDate *string         `json:"room_night_date"`
}

// PostCharge appends one immutable charge to an open folio. Pre-tax amount
// is quantity x unit price; the active tax schedule fills the derived
// amounts. Fails with FolioClosed when the ledger is no longer open.
func (s *FolioService) PostCharge(actor *models.User, folioID uint, in PostChargeInput) (*models.FolioCharge, error) {
	if err := RequirePermission(actor, models.PermPostCharge); err != nil {
		return nil, err
	}
	if !models.IsBillableSector(in.Sector) {
		return nil, apperrors.Validationf("unknown sector %q", in.Sector)
	}
	if !in.Quantity.IsPositive() {
		return nil, apperrors.Validation("quantity must be positive")
	}
	if in.UnitPrice.IsNegative() {
		return nil, apperrors.Validation("unit_price cannot be negative")
	}

	var roomNight *time.Time
	if in.RoomNightDate != nil && *in.RoomNightDate != "" {
		d, err := time.Parse("2006-01-02", *in.RoomNightDate)
		if err != nil {
			return nil, apperrors.Validationf("invalid room_night_date: %v", err)
		}
		roomNight = &d
	}

	var charge models.FolioCharge
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var folio models.Folio
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&folio, folioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("folio")
			}
			return err
		}
		if !folio.CanPost() {
			return apperrors.ErrFolioClosed
		}

		amountBefore := in.Quantity.Mul(in.UnitPrice)
		taxAmount, amountAfter, err := s.Taxes.Apply(tx, amountBefore, in.Sector)
		if err != nil {
			return err
		}

		charge = models.FolioCharge{
			FolioID:         folio.ID,
			Sector:          in.Sector,
			Description:     in.Description,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			AmountBeforeTax: amountBefore,
			TaxAmount:       taxAmount,
			AmountAfterTax:  amountAfter,
			RoomNightDate:   roomNight,
		}
		if actor != nil {
			id := actor.ID
			charge.PostedByID = &id
		}
		if err := tx.Create(&charge).Error; err != nil {
			return fmt.Errorf("failed to create charge: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	recordAudit(s.DB, actor, "folio.post_charge", "FolioCharge", charge.ID, map[string]interface{}{
		"folio_id": folioID,
		"amount":   charge.AmountAfterTax.String(),
	})
	return &charge, nil
}

type PostPaymentInput struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Method       string          `json:"method" binding:"required"`
	Reference    string          `json:"reference"`
	IssueReceipt *bool           `json:"issue_receipt"`
}

// PostPayment appends one immutable payment to an open folio and, by
// default, issues a receipt synchronously. Overpayment is allowed; there is
// deliberately no balance check here.
func (s *FolioService) PostPayment(actor *models.User, folioID uint, in PostPaymentInput) (*models.FolioPayment, error) {
	if err := RequirePermission(actor, models.PermPostPayment); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.Validation("amount must be positive")
	}
	if !models.IsValidPaymentMethod(in.Method) {
		return nil, apperrors.Validationf("unknown payment method %q", in.Method)
	}
	issueReceipt := true
	if in.IssueReceipt != nil {
		issueReceipt = *in.IssueReceipt
	}

	var payment models.FolioPayment
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var folio models.Folio
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&folio, folioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("folio")
			}
			return err
		}
		if !folio.CanPost() {
			return apperrors.ErrFolioClosed
		}

		payment = models.FolioPayment{
			FolioID:   folio.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			Reference: in.Reference,
		}
		if actor != nil {
			id := actor.ID
			payment.ConfirmedByID = &id
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if issueReceipt {
			receipt, err := s.issueReceiptTx(tx, &payment, actor)
			if err != nil {
				return err
			}
			if err := tx.Model(&payment).Update("receipt_issued", true).Error; err != nil {
				return fmt.Errorf("failed to flag receipt issued: %w", err)
			}
			payment.ReceiptIssued = true
			payment.Receipt = receipt
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	recordAudit(s.DB, actor, "folio.post_payment", "FolioPayment", payment.ID, map[string]interface{}{
		"folio_id": folioID,
		"amount":   payment.Amount.String(),
	})
	return &payment, nil
}

// NewReceiptNumber generates a candidate receipt number. Uniqueness is
// enforced by the DB index, not by this generator; issuance retries on
// collision.
func NewReceiptNumber(now time.Time) string {
	return fmt.Sprintf("RCP-%s-%s", now.UTC().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

// issueReceiptTx creates the one receipt a payment may ever have, retrying
// with fresh numbers on unique-index collisions.
func (s *FolioService) issueReceiptTx(tx *gorm.DB, payment *models.FolioPayment, actor *models.User) (*models.Receipt, error) {
	var existing models.Receipt
	err := tx.Where("folio_payment_id = ?", payment.ID).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateReceipt
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing receipt: %w", err)
	}

	paymentID := payment.ID
	var createErr error
	for attempt := 0; attempt < receiptNumberAttempts; attempt++ {
		receipt := models.Receipt{
			FolioPaymentID: &paymentID,
			ReceiptNumber:  NewReceiptNumber(time.Now()),
			Amount:         payment.Amount,
		}
		if actor != nil {
			id := actor.ID
			receipt.IssuedByID = &id
		}
		createErr = tx.Create(&receipt).Error
		if createErr == nil {
			return &receipt, nil
		}
		if !isDuplicateKeyErr(createErr) {
			return nil, fmt.Errorf("failed to create receipt: %w", createErr)
		}
		log.Printf("receipt number collision (attempt %d) - retrying", attempt+1)
	}
	return nil, fmt.Errorf("failed to create receipt after %d attempts: %w", receiptNumberAttempts, createErr)
}

// IssueReceipt issues a receipt for a previously recorded payment that was
// posted with issue_receipt=false.
func (s *FolioService) IssueReceipt(actor *models.User, paymentID uint) (*models.Receipt, error) {
	if err := RequirePermission(actor, models.PermPostPayment); err != nil {
		return nil, err
	}
	var receipt *models.Receipt
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.FolioPayment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("payment")
			}
			return err
		}
		r, err := s.issueReceiptTx(tx, &payment, actor)
		if err != nil {
			return err
		}
		if err := tx.Model(&payment).Update("receipt_issued", true).Error; err != nil {
			return fmt.Errorf("failed to flag receipt issued: %w", err)
		}
		receipt = r
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	recordAudit(s.DB, actor, "folio.issue_receipt", "Receipt", receipt.ID, nil)
	return receipt, nil
}
