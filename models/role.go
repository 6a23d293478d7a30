package models

import "time"

type Role struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:100;uniqueIndex" json:"name"`
	Description string           `gorm:"size:255" json:"description"`
	IsSystem    bool             `gorm:"default:false" json:"is_system"` // system roles cannot be deleted
	Permissions []RolePermission `gorm:"foreignKey:RoleID" json:"permissions"`
	Members     []User           `gorm:"foreignKey:RoleID" json:"members,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// RolePermission is a grant row: one action code a role may perform. The
// pair is unique so re-granting is a no-op at the DB level.
type RolePermission struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RoleID     uint   `gorm:"not null;index:idx_role_permission,unique" json:"role_id"`
	Permission string `gorm:"size:150;not null;index:idx_role_permission,unique" json:"permission"`
}

// HasPermission reports whether the role grants the given action code.
func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p.Permission == code {
			return true
		}
	}
	return false
}
