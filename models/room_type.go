package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name              string          `gorm:"size:64" json:"name"`
	BasePricePerNight decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"base_price_per_night"`
	Description       string          `gorm:"type:text" json:"description"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
