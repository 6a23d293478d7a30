package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is sector-scoped spending (maintenance, supplies, salaries are
// tracked separately).
type Expense struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Sector      string          `gorm:"size:32;index" json:"sector"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount"`
	Description string          `gorm:"size:256" json:"description"`
	Category    string          `gorm:"size:64" json:"category"`

	RecordedByID *uint `gorm:"index" json:"recorded_by_id,omitempty"`

	// Optional link back to the maintenance/housekeeping request that
	// produced the expense.
	SourceID   string `gorm:"size:64" json:"source_id,omitempty"`
	SourceType string `gorm:"size:32" json:"source_type,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// StaffProfile is the HR record; optionally linked from a User account.
type StaffProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DepartmentID  *uint           `gorm:"index" json:"department_id,omitempty"`
	FullName      string          `gorm:"size:128" json:"full_name"`
	JobTitle      string          `gorm:"size:128" json:"job_title"`
	MonthlySalary decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"monthly_salary"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Salary is one monthly payroll record; one per staff member per month.
type Salary struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID uint            `gorm:"not null;index:idx_staff_month,unique" json:"staff_id"`
	Amount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount"`
	Month   time.Time       `gorm:"type:date;not null;index:idx_staff_month,unique" json:"month"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`

	Staff StaffProfile `gorm:"foreignKey:StaffID" json:"staff,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
