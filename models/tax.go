package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	TaxTypeInclusive = "inclusive"
	TaxTypeExclusive = "exclusive"
)

// Tax is admin-managed and applied automatically to charges and POS orders;
// transactional flows never mutate it. Empty Sectors means all sectors.
type Tax struct {
	ID         uint                        `gorm:"primaryKey" json:"id"`
	Name       string                      `gorm:"size:64" json:"name"`
	Code       string                      `gorm:"size:16;uniqueIndex" json:"code"`
	Percentage decimal.Decimal             `gorm:"type:decimal(5,2);default:0" json:"percentage"`
	TaxType    string                      `gorm:"size:16;default:exclusive" json:"tax_type"`
	Sectors    datatypes.JSONSlice[string] `json:"sectors"`
	IsActive   bool                        `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppliesTo reports whether the tax covers the sector. An empty sector list
// means the tax applies everywhere.
func (t *Tax) AppliesTo(sector string) bool {
	if len(t.Sectors) == 0 {
		return true
	}
	for _, s := range t.Sectors {
		if s == sector {
			return true
		}
	}
	return false
}
