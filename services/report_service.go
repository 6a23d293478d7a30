// services/report_service.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportService aggregates the ledgers into dashboard figures, daily sales
// series, tax summaries and CSV exports. All figures are recomputed from
// the rows on every call.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type SectorBreakdown struct {
	Sector   string          `json:"sector"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

type DashboardReport struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalSalaries decimal.Decimal `json:"total_salaries"`
	NetProfit     decimal.Decimal `json:"net_profit"`

	OpenFolios      int64 `json:"open_folios"`
	OccupiedRooms   int64 `json:"occupied_rooms"`
	PendingBookings int64 `json:"pending_bookings"`

	Sectors []SectorBreakdown `json:"sectors"`
}

func parseReportRange(from, to string) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, -1, 0)
	if from != "" {
		d, err := time.Parse("2006-01-02", from)
		if err != nil {
			return start, end, apperrors.Validationf("invalid from date: %v", err)
		}
		start = d
	}
	if to != "" {
		d, err := time.Parse("2006-01-02", to)
		if err != nil {
			return start, end, apperrors.Validationf("invalid to date: %v", err)
		}
		// inclusive end of day
		end = d.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return start, end, apperrors.Validation("to date is before from date")
	}
	return start, end, nil
}

// revenueBySector sums post-tax folio charges plus pay-now POS order totals.
// Post-to-room orders already appear on a folio as an aggregate charge, so
// counting them again here would double-book them.
func (s *ReportService) revenueBySector(actor *models.User, from, to time.Time) (map[string]decimal.Decimal, error) {
	revenue := map[string]decimal.Decimal{}

	var charges []models.FolioCharge
	chargeQuery := s.DB.Where("posted_at BETWEEN ? AND ?", from, to)
	chargeQuery = ScopeSectors(chargeQuery, actor, "sector")
	if err := chargeQuery.Find(&charges).Error; err != nil {
		return nil, fmt.Errorf("failed to load charges: %w", err)
	}
	for i := range charges {
		revenue[charges[i].Sector] = revenue[charges[i].Sector].Add(charges[i].AmountAfterTax)
	}

	var orders []models.Order
	orderQuery := s.DB.
		Where("payment_intent = ?", models.PaymentIntentPayNow).
		Where("status <> ?", models.OrderStatusCancelled).
		Where("created_at BETWEEN ? AND ?", from, to)
	orderQuery = ScopeSectors(orderQuery, actor, "sector")
	if err := orderQuery.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	for i := range orders {
		revenue[orders[i].Sector] = revenue[orders[i].Sector].Add(orders[i].TotalAmount)
	}
	return revenue, nil
}

func (s *ReportService) Dashboard(actor *models.User, from, to string) (*DashboardReport, error) {
	if err := RequirePermission(actor, models.PermViewReports); err != nil {
		return nil, err
	}
	start, end, err := parseReportRange(from, to)
	if err != nil {
		return nil, err
	}

	revenue, err := s.revenueBySector(actor, start, end)
	if err != nil {
		return nil, err
	}

	expenses := map[string]decimal.Decimal{}
	var expenseRows []models.Expense
	expenseQuery := s.DB.Where("created_at BETWEEN ? AND ?", start, end)
	expenseQuery = ScopeSectors(expenseQuery, actor, "sector")
	if err := expenseQuery.Find(&expenseRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	for i := range expenseRows {
		expenses[expenseRows[i].Sector] = expenses[expenseRows[i].Sector].Add(expenseRows[i].Amount)
	}

	report := &DashboardReport{
		From:          start,
		To:            end,
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalSalaries: decimal.Zero,
	}

	for _, sector := range models.AllSectors {
		rev, hasRev := revenue[sector]
		exp, hasExp := expenses[sector]
		if !hasRev && !hasExp {
			continue
		}
		report.Sectors = append(report.Sectors, SectorBreakdown{
			Sector:   sector,
			Revenue:  rev,
			Expenses: exp,
		})
		report.TotalRevenue = report.TotalRevenue.Add(rev)
		report.TotalExpenses = report.TotalExpenses.Add(exp)
	}

	// Salaries are whole-property figures; only full-visibility actors see
	// them, sector staff get zero rather than a partial number.
	if VisibleSectors(actor) == nil {
		var salaries []models.Salary
		if err := s.DB.Where("month BETWEEN ? AND ?", start, end).Find(&salaries).Error; err != nil {
			return nil, fmt.Errorf("failed to load salaries: %w", err)
		}
		for i := range salaries {
			report.TotalSalaries = report.TotalSalaries.Add(salaries[i].Amount)
		}
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses).Sub(report.TotalSalaries)

	if err := s.DB.Model(&models.Folio{}).Where("status = ?", models.FolioStatusOpen).
		Count(&report.OpenFolios).Error; err != nil {
		return nil, fmt.Errorf("failed to count open folios: %w", err)
	}
	if err := s.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusOccupied).
		Count(&report.OccupiedRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count occupied rooms: %w", err)
	}
	if err := s.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending).
		Count(&report.PendingBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending bookings: %w", err)
	}
	return report, nil
}

type DailySalesPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DailySales returns a revenue point per day for the last `days` days,
// zero-filled so charts have no gaps.
func (s *ReportService) DailySales(actor *models.User, days int) ([]DailySalesPoint, error) {
	if err := RequirePermission(actor, models.PermViewReports); err != nil {
		return nil, err
	}
	if days <= 0 || days > 366 {
		days = 31
	}

	end := time.Now()
	start := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).
		AddDate(0, 0, -(days - 1))

	byDay := map[string]decimal.Decimal{}

	var charges []models.FolioCharge
	chargeQuery := s.DB.Where("posted_at >= ?", start)
	chargeQuery = ScopeSectors(chargeQuery, actor, "sector")
	if err := chargeQuery.Find(&charges).Error; err != nil {
		return nil, fmt.Errorf("failed to load charges: %w", err)
	}
	for i := range charges {
		key := charges[i].PostedAt.Format("2006-01-02")
		byDay[key] = byDay[key].Add(charges[i].AmountAfterTax)
	}

	var orders []models.Order
	orderQuery := s.DB.
		Where("payment_intent = ?", models.PaymentIntentPayNow).
		Where("status <> ?", models.OrderStatusCancelled).
		Where("created_at >= ?", start)
	orderQuery = ScopeSectors(orderQuery, actor, "sector")
	if err := orderQuery.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	for i := range orders {
		key := orders[i].CreatedAt.Format("2006-01-02")
		byDay[key] = byDay[key].Add(orders[i].TotalAmount)
	}

	points := make([]DailySalesPoint, 0, days)
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d).Format("2006-01-02")
		points = append(points, DailySalesPoint{Date: day, Revenue: byDay[day]})
	}
	return points, nil
}

type TaxReportLine struct {
	Sector     string          `json:"sector"`
	TaxableNet decimal.Decimal `json:"taxable_net"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	Gross      decimal.Decimal `json:"gross"`
}

type TaxReport struct {
	From  time.Time       `json:"from"`
	To    time.Time       `json:"to"`
	Lines []TaxReportLine `json:"lines"`

	TotalTax decimal.Decimal `json:"total_tax"`
}

// TaxReport sums the tax captured on folio charges per sector. POS pay-now
// orders include their own tax snapshot and are folded in under the order
// sector.
func (s *ReportService) TaxReport(actor *models.User, from, to string) (*TaxReport, error) {
	if err := RequirePermission(actor, models.PermViewReports); err != nil {
		return nil, err
	}
	start, end, err := parseReportRange(from, to)
	if err != nil {
		return nil, err
	}

	type acc struct{ net, tax, gross decimal.Decimal }
	bySector := map[string]*acc{}
	get := func(sector string) *acc {
		a, ok := bySector[sector]
		if !ok {
			a = &acc{}
			bySector[sector] = a
		}
		return a
	}

	var charges []models.FolioCharge
	chargeQuery := s.DB.Where("posted_at BETWEEN ? AND ?", start, end)
	chargeQuery = ScopeSectors(chargeQuery, actor, "sector")
	if err := chargeQuery.Find(&charges).Error; err != nil {
		return nil, fmt.Errorf("failed to load charges: %w", err)
	}
	for i := range charges {
		a := get(charges[i].Sector)
		a.net = a.net.Add(charges[i].AmountBeforeTax)
		a.tax = a.tax.Add(charges[i].TaxAmount)
		a.gross = a.gross.Add(charges[i].AmountAfterTax)
	}

	var orders []models.Order
	orderQuery := s.DB.
		Where("payment_intent = ?", models.PaymentIntentPayNow).
		Where("status <> ?", models.OrderStatusCancelled).
		Where("created_at BETWEEN ? AND ?", start, end)
	orderQuery = ScopeSectors(orderQuery, actor, "sector")
	if err := orderQuery.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	for i := range orders {
		a := get(orders[i].Sector)
		a.net = a.net.Add(orders[i].TotalBeforeTax)
		a.tax = a.tax.Add(orders[i].TotalTax)
		a.gross = a.gross.Add(orders[i].TotalAmount)
	}

	report := &TaxReport{From: start, To: end, TotalTax: decimal.Zero}
	for _, sector := range models.AllSectors {
		a, ok := bySector[sector]
		if !ok {
			continue
		}
		report.Lines = append(report.Lines, TaxReportLine{
			Sector:     sector,
			TaxableNet: a.net,
			TaxAmount:  a.tax,
			Gross:      a.gross,
		})
		report.TotalTax = report.TotalTax.Add(a.tax)
	}
	return report, nil
}

// ExportChargesCSV streams every visible folio charge in the range as CSV.
func (s *ReportService) ExportChargesCSV(actor *models.User, from, to string, w io.Writer) error {
	if err := RequirePermission(actor, models.PermViewReports); err != nil {
		return err
	}
	start, end, err := parseReportRange(from, to)
	if err != nil {
		return err
	}

	var charges []models.FolioCharge
	query := s.DB.Where("posted_at BETWEEN ? AND ?", start, end).Order("posted_at, id")
	query = ScopeSectors(query, actor, "sector")
	if err := query.Find(&charges).Error; err != nil {
		return fmt.Errorf("failed to load charges: %w", err)
	}

	writer := csv.NewWriter(w)
	header := []string{"id", "folio_id", "sector", "description", "quantity",
		"unit_price", "amount_before_tax", "tax_amount", "amount_after_tax", "posted_at"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range charges {
		c := &charges[i]
		row := []string{
			fmt.Sprintf("%d", c.ID),
			fmt.Sprintf("%d", c.FolioID),
			c.Sector,
			c.Description,
			c.Quantity.String(),
			c.UnitPrice.String(),
			c.AmountBeforeTax.String(),
			c.TaxAmount.String(),
			c.AmountAfterTax.String(),
			c.PostedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ListAuditLogs pages the audit trail, newest first.
func (s *ReportService) ListAuditLogs(actor *models.User, limit int) ([]models.AuditLog, error) {
	if err := RequirePermission(actor, models.PermViewAuditLogs); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []models.AuditLog
	if err := s.DB.Preload("User").Order("created_at DESC, id DESC").
		Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
