package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kitchen flow statuses: new -> preparing -> ready -> served, cancel from
// any non-terminal state.
const (
	OrderStatusNew       = "new"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentIntentPayNow     = "pay_now"
	PaymentIntentPostToRoom = "post_to_room"
)

// Menu groups fixed-price items for one sector (restaurant or bar).
type Menu struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:128" json:"name"`
	Sector   string `gorm:"size:32;index" json:"sector"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Items []MenuItem `gorm:"foreignKey:MenuID" json:"items,omitempty"`
}

func (Menu) TableName() string { return "pos_menus" }

// MenuItem carries the only price an order line may use; clients never
// supply prices.
type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	MenuID      uint            `gorm:"index;not null" json:"menu_id"`
	Name        string          `gorm:"size:128" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	IsAvailable bool            `gorm:"default:true" json:"is_available"`
	SortOrder   uint            `gorm:"default:0" json:"sort_order"`
}

func (MenuItem) TableName() string { return "pos_menu_items" }

// Order totals are a point-in-time snapshot computed once at creation;
// later catalog price changes never affect a placed order.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Sector        string `gorm:"size:32;index" json:"sector"`
	Status        string `gorm:"size:20;default:new;index" json:"status"`
	PaymentIntent string `gorm:"size:20;default:pay_now" json:"payment_intent"`

	// Required iff payment intent is post_to_room.
	FolioID     *uint  `gorm:"index" json:"folio_id,omitempty"`
	TableOrRoom string `gorm:"size:32" json:"table_or_room"`

	CreatedByID *uint      `gorm:"index" json:"created_by_id,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	TotalBeforeTax decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_before_tax"`
	TotalTax       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_tax"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_amount"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Folio *Folio      `gorm:"foreignKey:FolioID" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string { return "pos_orders" }

func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusServed || o.Status == OrderStatusCancelled
}

type OrderItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	OrderID    uint `gorm:"index;not null" json:"order_id"`
	MenuItemID uint `gorm:"index;not null" json:"menu_item_id"`

	Quantity  uint            `gorm:"default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"line_total"`
	Notes     string          `gorm:"size:256" json:"notes"`

	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

func (OrderItem) TableName() string { return "pos_order_items" }
