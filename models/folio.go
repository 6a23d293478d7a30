package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FolioStatusOpen   = "open"
	FolioStatusClosed = "closed"
)

// Folio is the guest account for one stay: open from check-in until
// check-out, then a read-only ledger. Charges and payments are append-only.
type Folio struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BookingID uint   `gorm:"index;not null" json:"booking_id"`
	IsPrimary bool   `gorm:"default:true" json:"is_primary"`
	Status    string `gorm:"size:20;default:open;index" json:"status"`

	ClosedAt *time.Time `json:"closed_at,omitempty"`

	Charges  []FolioCharge  `gorm:"foreignKey:FolioID" json:"charges,omitempty"`
	Payments []FolioPayment `gorm:"foreignKey:FolioID" json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Folio) CanPost() bool {
	return f.Status == FolioStatusOpen
}

// FolioCharge is one billable line. Monetary fields are fixed at posting
// time and never recomputed.
type FolioCharge struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	FolioID uint `gorm:"index;not null" json:"folio_id"`

	Sector      string          `gorm:"size:32;index" json:"sector"`
	Description string          `gorm:"size:256" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"unit_price"`

	AmountBeforeTax decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount_before_tax"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"tax_amount"`
	AmountAfterTax  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount_after_tax"`

	PostedByID *uint     `gorm:"index" json:"posted_by_id,omitempty"`
	PostedAt   time.Time `gorm:"autoCreateTime;index" json:"posted_at"`

	// Set when the charge was produced by a POS post-to-room settlement.
	POSOrderID    *uint      `gorm:"index" json:"pos_order_id,omitempty"`
	RoomNightDate *time.Time `gorm:"type:date" json:"room_night_date,omitempty"`
}

// Payment methods.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodMpesa  = "mpesa"
	PaymentMethodAirtel = "airtel_money"
	PaymentMethodTigo   = "tigo_pesa"
	PaymentMethodBank   = "bank_transfer"
	PaymentMethodCard   = "card"
)

func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMpesa, PaymentMethodAirtel,
		PaymentMethodTigo, PaymentMethodBank, PaymentMethodCard:
		return true
	}
	return false
}

// FolioPayment records money received against a folio. Overpayment is
// allowed (deposits, pre-payment); no balance check at posting time.
type FolioPayment struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	FolioID uint `gorm:"index;not null" json:"folio_id"`

	Amount    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount"`
	Method    string          `gorm:"size:32" json:"method"`
	Reference string          `gorm:"size:128" json:"reference"`

	ConfirmedByID *uint     `gorm:"index" json:"confirmed_by_id,omitempty"`
	ConfirmedAt   time.Time `gorm:"autoCreateTime" json:"confirmed_at"`
	ReceiptIssued bool      `gorm:"default:false" json:"receipt_issued"`

	Receipt *Receipt `gorm:"foreignKey:FolioPaymentID" json:"receipt,omitempty"`
}

// Receipt is immutable once created. The receipt number carries a DB unique
// index; issuance retries on collision.
type Receipt struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	FolioPaymentID *uint `gorm:"uniqueIndex" json:"folio_payment_id,omitempty"`

	ReceiptNumber string          `gorm:"size:32;uniqueIndex;not null" json:"receipt_number"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount"`

	IssuedByID *uint     `gorm:"index" json:"issued_by_id,omitempty"`
	IssuedAt   time.Time `gorm:"autoCreateTime" json:"issued_at"`
}
