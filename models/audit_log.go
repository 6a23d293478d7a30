package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog: who did what, when. Append-only.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`
	Action    string         `gorm:"size:64;index" json:"action"`
	ModelName string         `gorm:"size:64" json:"model_name"`
	ObjectID  string         `gorm:"size:64" json:"object_id"`
	Details   datatypes.JSON `json:"details,omitempty"`
	IPAddress string         `gorm:"size:64" json:"ip_address,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
