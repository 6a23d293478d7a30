package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255" json:"full_name"`
	Username string `gorm:"uniqueIndex;size:150" json:"username"`
	Email    string `gorm:"size:255" json:"email"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never returned
	Phone    string `gorm:"size:32" json:"phone,omitempty"`

	RoleID       *uint `gorm:"index" json:"role_id,omitempty"`
	DepartmentID *uint `gorm:"index" json:"department_id,omitempty"`

	// Manager sees every sector regardless of department.
	IsManager   bool `gorm:"default:false" json:"is_manager"`
	IsSuperuser bool `gorm:"default:false" json:"is_superuser"`
	IsActive    bool `gorm:"default:true" json:"is_active"`

	Role       *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PermissionCodes returns the set of permission codes granted via the role.
// A user without a role holds no privileged permissions.
func (u *User) PermissionCodes() []string {
	if u.Role == nil {
		return nil
	}
	codes := make([]string, 0, len(u.Role.Permissions))
	for _, p := range u.Role.Permissions {
		codes = append(codes, p.Permission)
	}
	return codes
}
