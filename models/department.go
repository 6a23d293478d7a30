package models

// Department scopes a staff member's visibility to one sector.
type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:32;uniqueIndex" json:"code"`
	Name string `gorm:"size:128" json:"name"`
}
