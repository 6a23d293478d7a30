// services/pos_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// POSService builds orders from the fixed-price catalog and settles them
// either as standalone sales or as folio charges.
type POSService struct {
	DB    *gorm.DB
	Taxes *TaxService
}

func NewPOSService(db *gorm.DB, taxes *TaxService) *POSService {
	return &POSService{DB: db, Taxes: taxes}
}

// orderStatusRank orders the kitchen flow for the forward-only guard.
var orderStatusRank = map[string]int{
	models.OrderStatusNew:       0,
	models.OrderStatusPreparing: 1,
	models.OrderStatusReady:     2,
	models.OrderStatusServed:    3,
}

// CanTransitionOrder allows only single forward steps through the kitchen
// flow, plus cancellation from any non-terminal status.
func CanTransitionOrder(from, to string) bool {
	if from == models.OrderStatusServed || from == models.OrderStatusCancelled {
		return false
	}
	if to == models.OrderStatusCancelled {
		return true
	}
	fromRank, ok := orderStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := orderStatusRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

type OrderItemInput struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   uint   `json:"quantity"`
	Notes      string `json:"notes"`
}

type CreateOrderInput struct {
	Sector        string           `json:"sector" binding:"required"`
	PaymentIntent string           `json:"payment_intent"`
	FolioID       *uint            `json:"folio_id"`
	TableOrRoom   string           `json:"table_or_room"`
	Items         []OrderItemInput `json:"items" binding:"required"`
}

// CreateOrder resolves line prices from the catalog (never from the
// client), taxes the aggregate once, and snapshots totals on the order.
// For post-to-room the aggregate folio charge and the order are committed
// as one atomic unit.
func (s *POSService) CreateOrder(actor *models.User, in CreateOrderInput) (*models.Order, error) {
	if err := RequirePermission(actor, models.PermCreatePOSOrder); err != nil {
		return nil, err
	}
	if in.Sector != models.SectorRestaurant && in.Sector != models.SectorBar {
		return nil, apperrors.Validationf("sector must be %q or %q", models.SectorRestaurant, models.SectorBar)
	}
	if len(in.Items) == 0 {
		return nil, apperrors.Validation("order needs at least one item")
	}
	intent := in.PaymentIntent
	if intent == "" {
		intent = models.PaymentIntentPayNow
	}
	if intent != models.PaymentIntentPayNow && intent != models.PaymentIntentPostToRoom {
		return nil, apperrors.Validationf("invalid payment_intent %q", intent)
	}
	if intent == models.PaymentIntentPostToRoom && in.FolioID == nil {
		return nil, apperrors.Validation("folio_id is required for post_to_room orders")
	}

	var order models.Order
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Resolve catalog prices and build lines.
		lines := make([]models.OrderItem, 0, len(in.Items))
		totalBefore := decimal.Zero
		for _, row := range in.Items {
			var item models.MenuItem
			if err := tx.First(&item, row.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound(fmt.Sprintf("menu item %d", row.MenuItemID))
				}
				return err
			}
			if !item.IsAvailable {
				return apperrors.Validationf("menu item %q is not available", item.Name)
			}
			qty := row.Quantity
			if qty == 0 {
				qty = 1
			}
			lineTotal := item.Price.Mul(decimal.NewFromInt(int64(qty)))
			totalBefore = totalBefore.Add(lineTotal)
			lines = append(lines, models.OrderItem{
				MenuItemID: item.ID,
				Quantity:   qty,
				UnitPrice:  item.Price,
				LineTotal:  lineTotal,
				Notes:      row.Notes,
			})
		}

		// Tax the aggregate once with the order's sector.
		taxAmount, totalAmount, err := s.Taxes.Apply(tx, totalBefore, in.Sector)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		order = models.Order{
			Sector:         in.Sector,
			Status:         models.OrderStatusNew,
			PaymentIntent:  intent,
			TableOrRoom:    in.TableOrRoom,
			TotalBeforeTax: totalBefore,
			TotalTax:       taxAmount,
			TotalAmount:    totalAmount,
			CompletedAt:    &now,
		}
		if actor != nil {
			id := actor.ID
			order.CreatedByID = &id
		}

		if intent == models.PaymentIntentPostToRoom {
			var folio models.Folio
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&folio, *in.FolioID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("folio")
				}
				return err
			}
			if !folio.CanPost() {
				return apperrors.ErrFolioClosed
			}
			order.FolioID = &folio.ID

			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}

			// One aggregate charge for the whole order, not one per line.
			charge := models.FolioCharge{
				FolioID:         folio.ID,
				Sector:          order.Sector,
				Description:     fmt.Sprintf("POS Order #%d (%s)", order.ID, order.Sector),
				Quantity:        decimal.NewFromInt(1),
				UnitPrice:       order.TotalAmount,
				AmountBeforeTax: order.TotalBeforeTax,
				TaxAmount:       order.TotalTax,
				AmountAfterTax:  order.TotalAmount,
				POSOrderID:      &order.ID,
			}
			if actor != nil {
				id := actor.ID
				charge.PostedByID = &id
			}
			if err := tx.Create(&charge).Error; err != nil {
				return fmt.Errorf("failed to post order charge: %w", err)
			}
		} else {
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}
		}

		for i := range lines {
			lines[i].OrderID = order.ID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
		order.Items = lines
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	recordAudit(s.DB, actor, "pos.create_order", "Order", order.ID, map[string]interface{}{
		"sector": order.Sector,
		"total":  order.TotalAmount.String(),
	})
	return &order, nil
}

func (s *POSService) GetOrder(actor *models.User, id uint) (*models.Order, error) {
	if err := RequirePermission(actor, models.PermViewPOSOrders); err != nil {
		return nil, err
	}
	var order models.Order
	if err := s.DB.Preload("Items").Preload("Items.MenuItem").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	if !CanSeeSector(actor, order.Sector) {
		return nil, apperrors.ErrPermissionDenied
	}
	return &order, nil
}

// ListOrders returns orders, always filtered by the actor's visible
// sectors.
func (s *POSService) ListOrders(actor *models.User, status string) ([]models.Order, error) {
	if err := RequirePermission(actor, models.PermViewPOSOrders); err != nil {
		return nil, err
	}
	q := ScopeSectors(s.DB.Preload("Items").Preload("Items.MenuItem"), actor, "sector").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Order
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return list, nil
}

// KitchenQueue lists unserved orders oldest-first for the kitchen display.
func (s *POSService) KitchenQueue(actor *models.User) ([]models.Order, error) {
	if err := RequirePermission(actor, models.PermViewPOSOrders); err != nil {
		return nil, err
	}
	var list []models.Order
	q := ScopeSectors(s.DB.Preload("Items").Preload("Items.MenuItem"), actor, "sector").
		Where("status IN ?", []string{models.OrderStatusNew, models.OrderStatusPreparing, models.OrderStatusReady}).
		Order("created_at")
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve kitchen queue: %w", err)
	}
	return list, nil
}

// UpdateStatus moves an order through the kitchen flow. Only single
// forward steps and cancellation are allowed.
func (s *POSService) UpdateStatus(actor *models.User, orderID uint, newStatus string) (*models.Order, error) {
	if err := RequirePermission(actor, models.PermUpdatePOSOrder); err != nil {
		return nil, err
	}

	var order models.Order
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order")
			}
			return err
		}
		if !CanSeeSector(actor, order.Sector) {
			return apperrors.ErrPermissionDenied
		}
		if !CanTransitionOrder(order.Status, newStatus) {
			return apperrors.InvalidState(fmt.Sprintf("cannot move order from %q to %q", order.Status, newStatus))
		}
		if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		order.Status = newStatus
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	recordAudit(s.DB, actor, "pos.update_status", "Order", order.ID, map[string]interface{}{"status": newStatus})
	return &order, nil
}

// ---------- Menus ----------

// ListMenus returns active menus with items, optionally one sector only.
// Menu browsing is open to any authenticated staff member.
func (s *POSService) ListMenus(sector string) ([]models.Menu, error) {
	q := s.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_available = ?", true).Order("sort_order, name")
	}).Where("is_active = ?", true)
	if sector != "" {
		q = q.Where("sector = ?", sector)
	}
	var menus []models.Menu
	if err := q.Order("sector, name").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	return menus, nil
}

type MenuInput struct {
	Name     string `json:"name" binding:"required"`
	Sector   string `json:"sector" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func (s *POSService) CreateMenu(actor *models.User, in MenuInput) (*models.Menu, error) {
	if err := RequirePermission(actor, models.PermManageMenus); err != nil {
		return nil, err
	}
	if in.Sector != models.SectorRestaurant && in.Sector != models.SectorBar {
		return nil, apperrors.Validationf("sector must be %q or %q", models.SectorRestaurant, models.SectorBar)
	}
	menu := models.Menu{Name: in.Name, Sector: in.Sector, IsActive: true}
	if in.IsActive != nil {
		menu.IsActive = *in.IsActive
	}
	if err := s.DB.Create(&menu).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}
	return &menu, nil
}

type MenuItemInput struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
	IsAvailable *bool           `json:"is_available"`
	SortOrder   uint            `json:"sort_order"`
}

func (s *POSService) AddMenuItem(actor *models.User, menuID uint, in MenuItemInput) (*models.MenuItem, error) {
	if err := RequirePermission(actor, models.PermManageMenus); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, apperrors.Validation("price cannot be negative")
	}
	var menu models.Menu
	if err := s.DB.First(&menu, menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("menu")
		}
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	item := models.MenuItem{
		MenuID:      menu.ID,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		IsAvailable: true,
		SortOrder:   in.SortOrder,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &item, nil
}

func (s *POSService) UpdateMenuItem(actor *models.User, itemID uint, in MenuItemInput) (*models.MenuItem, error) {
	if err := RequirePermission(actor, models.PermManageMenus); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, apperrors.Validation("price cannot be negative")
	}
	var item models.MenuItem
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("menu item")
		}
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}
	item.Name = in.Name
	item.Price = in.Price
	item.Description = in.Description
	item.SortOrder = in.SortOrder
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if err := s.DB.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return &item, nil
}
