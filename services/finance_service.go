// services/finance_service.go
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

// FinanceService covers expenses, payroll, and the maintenance /
// housekeeping request flows that feed into expenses.
type FinanceService struct {
	DB *gorm.DB
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{DB: db}
}

type ExpenseInput struct {
	Sector      string          `json:"sector" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
}

func (s *FinanceService) CreateExpense(actor *models.User, in ExpenseInput) (*models.Expense, error) {
	if err := RequirePermission(actor, models.PermCreateExpense); err != nil {
		return nil, err
	}
	if !models.IsKnownSector(in.Sector) {
		return nil, apperrors.Validationf("unknown sector %q", in.Sector)
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.Validation("amount must be positive")
	}

	expense := models.Expense{
		Sector:      in.Sector,
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
	}
	if actor != nil {
		id := actor.ID
		expense.RecordedByID = &id
	}
	if err := s.DB.Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	recordAudit(s.DB, actor, "finance.create_expense", "Expense", expense.ID, map[string]interface{}{
		"sector": expense.Sector,
		"amount": expense.Amount.String(),
	})
	return &expense, nil
}

func (s *FinanceService) ListExpenses(actor *models.User, sector string) ([]models.Expense, error) {
	if err := RequirePermission(actor, models.PermViewExpenses); err != nil {
		return nil, err
	}
	query := s.DB.Order("created_at DESC")
	query = ScopeSectors(query, actor, "sector")
	if sector != "" {
		if !CanSeeSector(actor, sector) {
			return nil, apperrors.ErrPermissionDenied
		}
		query = query.Where("sector = ?", sector)
	}
	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

type StaffProfileInput struct {
	FullName      string          `json:"full_name" binding:"required"`
	JobTitle      string          `json:"job_title"`
	DepartmentID  *uint           `json:"department_id"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
}

func (s *FinanceService) CreateStaffProfile(actor *models.User, in StaffProfileInput) (*models.StaffProfile, error) {
	if err := RequirePermission(actor, models.PermManageStaff); err != nil {
		return nil, err
	}
	if in.MonthlySalary.IsNegative() {
		return nil, apperrors.Validation("monthly_salary cannot be negative")
	}
	staff := models.StaffProfile{
		FullName:      in.FullName,
		JobTitle:      in.JobTitle,
		DepartmentID:  in.DepartmentID,
		MonthlySalary: in.MonthlySalary,
		IsActive:      true,
	}
	if err := s.DB.Create(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to create staff profile: %w", err)
	}
	recordAudit(s.DB, actor, "finance.create_staff", "StaffProfile", staff.ID, nil)
	return &staff, nil
}

func (s *FinanceService) ListStaff(actor *models.User) ([]models.StaffProfile, error) {
	if err := RequirePermission(actor, models.PermManageStaff); err != nil {
		return nil, err
	}
	var staff []models.StaffProfile
	if err := s.DB.Preload("Department").Order("full_name").Find(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (s *FinanceService) UpdateStaffProfile(actor *models.User, id uint, in StaffProfileInput) (*models.StaffProfile, error) {
	if err := RequirePermission(actor, models.PermManageStaff); err != nil {
		return nil, err
	}
	var staff models.StaffProfile
	if err := s.DB.First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("staff profile")
		}
		return nil, fmt.Errorf("failed to load staff profile: %w", err)
	}
	staff.FullName = in.FullName
	staff.JobTitle = in.JobTitle
	staff.DepartmentID = in.DepartmentID
	staff.MonthlySalary = in.MonthlySalary
	if err := s.DB.Save(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to update staff profile: %w", err)
	}
	recordAudit(s.DB, actor, "finance.update_staff", "StaffProfile", staff.ID, nil)
	return &staff, nil
}

type SalaryInput struct {
	StaffID uint            `json:"staff_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount"`
	Month   string          `json:"month" binding:"required"` // YYYY-MM
}

// RecordSalary books one payroll entry per staff member per month. The
// unique (staff, month) index turns a repeat into DuplicateSubmission.
func (s *FinanceService) RecordSalary(actor *models.User, in SalaryInput) (*models.Salary, error) {
	if err := RequirePermission(actor, models.PermManageSalaries); err != nil {
		return nil, err
	}
	month, err := time.Parse("2006-01", in.Month)
	if err != nil {
		return nil, apperrors.Validationf("invalid month %q, expected YYYY-MM", in.Month)
	}

	var staff models.StaffProfile
	if err := s.DB.First(&staff, in.StaffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("staff profile")
		}
		return nil, fmt.Errorf("failed to load staff profile: %w", err)
	}

	amount := in.Amount
	if amount.IsZero() {
		amount = staff.MonthlySalary
	}
	if !amount.IsPositive() {
		return nil, apperrors.Validation("amount must be positive")
	}

	now := time.Now()
	salary := models.Salary{
		StaffID: staff.ID,
		Amount:  amount,
		Month:   month,
		PaidAt:  &now,
	}
	if err := s.DB.Create(&salary).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, apperrors.ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("failed to record salary: %w", err)
	}
	recordAudit(s.DB, actor, "finance.record_salary", "Salary", salary.ID, map[string]interface{}{
		"staff_id": staff.ID,
		"month":    in.Month,
		"amount":   amount.String(),
	})
	return &salary, nil
}

func (s *FinanceService) ListSalaries(actor *models.User, month string) ([]models.Salary, error) {
	if err := RequirePermission(actor, models.PermManageSalaries); err != nil {
		return nil, err
	}
	query := s.DB.Preload("Staff").Order("month DESC, id")
	if month != "" {
		m, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, apperrors.Validationf("invalid month %q, expected YYYY-MM", month)
		}
		query = query.Where("month = ?", m)
	}
	var salaries []models.Salary
	if err := query.Find(&salaries).Error; err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	return salaries, nil
}

type MaintenanceInput struct {
	RoomID      uint   `json:"room_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority"`
}

func (s *FinanceService) CreateMaintenanceRequest(actor *models.User, in MaintenanceInput) (*models.MaintenanceRequest, error) {
	if err := RequirePermission(actor, models.PermCreateMaintenance); err != nil {
		return nil, err
	}
	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room")
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	priority := in.Priority
	if priority == "" {
		priority = "medium"
	}
	request := models.MaintenanceRequest{
		RoomID:      room.ID,
		Description: in.Description,
		Priority:    priority,
		Status:      models.MaintenanceStatusPending,
	}
	if actor != nil {
		id := actor.ID
		request.CreatedByID = &id
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create maintenance request: %w", err)
	}
	recordAudit(s.DB, actor, "maintenance.create", "MaintenanceRequest", request.ID, nil)
	return &request, nil
}

func (s *FinanceService) ListMaintenanceRequests(actor *models.User, status string) ([]models.MaintenanceRequest, error) {
	if err := RequirePermission(actor, models.PermViewMaintenance); err != nil {
		return nil, err
	}
	query := s.DB.Preload("Room").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []models.MaintenanceRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	return requests, nil
}

type ApproveMaintenanceInput struct {
	Cost decimal.Decimal `json:"cost" binding:"required"`
}

// ApproveMaintenanceRequest approves a pending request and records the
// matching expense. The ExpenseRecorded latch plus the row lock make the
// expense write exactly-once even under concurrent approvals.
func (s *FinanceService) ApproveMaintenanceRequest(actor *models.User, id uint, in ApproveMaintenanceInput) (*models.MaintenanceRequest, error) {
	if err := RequirePermission(actor, models.PermApproveMaintenance); err != nil {
		return nil, err
	}
	if !in.Cost.IsPositive() {
		return nil, apperrors.Validation("cost must be positive")
	}

	var request models.MaintenanceRequest
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("maintenance request")
			}
			return err
		}
		if request.Status != models.MaintenanceStatusPending {
			return apperrors.InvalidState(fmt.Sprintf("cannot approve maintenance request in status %q", request.Status))
		}

		now := time.Now()
		request.Status = models.MaintenanceStatusApproved
		request.ApprovedAt = &now

		if !request.ExpenseRecorded {
			expense := models.Expense{
				Sector:      models.SectorHousekeeping,
				Amount:      in.Cost,
				Description: fmt.Sprintf("Maintenance: %s", request.Description),
				Category:    "maintenance",
				SourceID:    fmt.Sprintf("%d", request.ID),
				SourceType:  "maintenance_request",
			}
			if actor != nil {
				aid := actor.ID
				expense.RecordedByID = &aid
			}
			if err := tx.Create(&expense).Error; err != nil {
				return fmt.Errorf("failed to record maintenance expense: %w", err)
			}
			request.ExpenseRecorded = true
		}
		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("failed to update maintenance request: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	recordAudit(s.DB, actor, "maintenance.approve", "MaintenanceRequest", request.ID, map[string]interface{}{
		"cost": in.Cost.String(),
	})
	return &request, nil
}

func (s *FinanceService) UpdateMaintenanceStatus(actor *models.User, id uint, status string) (*models.MaintenanceRequest, error) {
	if err := RequirePermission(actor, models.PermApproveMaintenance); err != nil {
		return nil, err
	}
	if status != models.MaintenanceStatusDone && status != models.MaintenanceStatusCancelled {
		return nil, apperrors.Validationf("unsupported status %q", status)
	}
	var request models.MaintenanceRequest
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("maintenance request")
			}
			return err
		}
		if request.Status == models.MaintenanceStatusDone || request.Status == models.MaintenanceStatusCancelled {
			return apperrors.InvalidState(fmt.Sprintf("maintenance request already %s", request.Status))
		}
		request.Status = status
		return tx.Save(&request).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	recordAudit(s.DB, actor, "maintenance.update_status", "MaintenanceRequest", request.ID, map[string]interface{}{
		"status": status,
	})
	return &request, nil
}

type HousekeepingInput struct {
	RoomID      *uint  `json:"room_id"`
	Description string `json:"description" binding:"required"`
}

func (s *FinanceService) CreateHousekeepingRequest(actor *models.User, in HousekeepingInput) (*models.HousekeepingRequest, error) {
	if err := RequirePermission(actor, models.PermCreateHousekeeping); err != nil {
		return nil, err
	}
	request := models.HousekeepingRequest{
		RoomID:      in.RoomID,
		Description: in.Description,
		Status:      models.HousekeepingStatusPending,
	}
	if actor != nil {
		id := actor.ID
		request.CreatedByID = &id
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create housekeeping request: %w", err)
	}
	recordAudit(s.DB, actor, "housekeeping.create", "HousekeepingRequest", request.ID, nil)
	return &request, nil
}

func (s *FinanceService) ListHousekeepingRequests(actor *models.User, status string) ([]models.HousekeepingRequest, error) {
	if err := RequirePermission(actor, models.PermViewHousekeeping); err != nil {
		return nil, err
	}
	query := s.DB.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []models.HousekeepingRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list housekeeping requests: %w", err)
	}
	return requests, nil
}

func (s *FinanceService) UpdateHousekeepingStatus(actor *models.User, id uint, status string) (*models.HousekeepingRequest, error) {
	if err := RequirePermission(actor, models.PermApproveMaintenance); err != nil {
		return nil, err
	}
	if status != models.HousekeepingStatusFulfilled && status != models.HousekeepingStatusCancelled {
		return nil, apperrors.Validationf("unsupported status %q", status)
	}
	var request models.HousekeepingRequest
	if err := s.DB.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("housekeeping request")
		}
		return nil, fmt.Errorf("failed to load housekeeping request: %w", err)
	}
	if request.Status != models.HousekeepingStatusPending {
		return nil, apperrors.InvalidState(fmt.Sprintf("housekeeping request already %s", request.Status))
	}
	request.Status = status
	if err := s.DB.Save(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to update housekeeping request: %w", err)
	}
	recordAudit(s.DB, actor, "housekeeping.update_status", "HousekeepingRequest", request.ID, map[string]interface{}{
		"status": status,
	})
	return &request, nil
}
