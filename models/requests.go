package models

import "time"

const (
	MaintenanceStatusPending   = "pending"
	MaintenanceStatusApproved  = "approved"
	MaintenanceStatusDone      = "done"
	MaintenanceStatusCancelled = "cancelled"
)

// MaintenanceRequest: approving one records an expense exactly once.
type MaintenanceRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID      uint   `gorm:"index;not null" json:"room_id"`
	Description string `gorm:"type:text" json:"description"`
	Priority    string `gorm:"size:20;default:medium" json:"priority"`
	Status      string `gorm:"size:20;default:pending" json:"status"`

	CreatedByID     *uint      `gorm:"index" json:"created_by_id,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ExpenseRecorded bool       `gorm:"default:false" json:"expense_recorded"`

	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	HousekeepingStatusPending   = "pending"
	HousekeepingStatusFulfilled = "fulfilled"
	HousekeepingStatusCancelled = "cancelled"
)

// HousekeepingRequest is a supply/tool request, optionally tied to a room.
type HousekeepingRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID      *uint  `gorm:"index" json:"room_id,omitempty"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;default:pending" json:"status"`

	CreatedByID *uint `gorm:"index" json:"created_by_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
