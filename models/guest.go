package models

import (
	"time"
)

// Guest is an identity/profile record with its own lifecycle; one guest can
// hold many bookings over time.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	FullName    string `gorm:"size:128" json:"full_name"`
	Email       string `gorm:"size:255" json:"email"`
	Phone       string `gorm:"size:32" json:"phone"`
	IDType      string `gorm:"size:32" json:"id_type"`
	IDNumber    string `gorm:"size:64" json:"id_number"`
	Nationality string `gorm:"size:64" json:"nationality"`
	Address     string `gorm:"type:text" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
