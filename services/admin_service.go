// services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService covers staff accounts, roles and departments. Role edits are
// validated against the permission catalog so no role can carry a code the
// system never checks.
type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// ---------- Users ----------

type UserInput struct {
	FullName     string `json:"full_name" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	RoleID       *uint  `json:"role_id"`
	DepartmentID *uint  `json:"department_id"`
	IsManager    *bool  `json:"is_manager"`
	IsActive     *bool  `json:"is_active"`
}

func (s *AdminService) ListUsers(actor *models.User) ([]models.User, error) {
	if err := RequirePermission(actor, models.PermManageStaff); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.DB.Preload("Role").Preload("Department").Order("username").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *AdminService) CreateUser(actor *models.User, in UserInput) (*models.User, error) {
	if err := RequirePermission(actor, models.PermManageStaff); err != nil {
		return nil, err
	}
	if len(in.Password) < 8 {
		return nil, apperrors.Validation("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FullName:     in.FullName,
		Username:     strings.TrimSpace(in.Username),
		Email:        in.Email,
		Phone:        in.Phone,
		Password:     string(hash),
		RoleID:       in.RoleID,
		DepartmentID: in.DepartmentID,
		IsActive:     true,
	}
	if in.IsManager != nil {
		user.IsManager = *in.IsManager
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, apperrors.Validationf("username %q already exists", user.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	recordAudit(s.DB, actor, "admin.create_user", "User", user.ID, nil)
	return &user, nil
}

func (s *AdminService) UpdateUser(actor *models.User, id uint, in UserInput) (*models.User, error) {
	if err := RequirePermission(actor, models.PermManageStaff); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	// Superuser flags are seeded, never edited through the API.
	user.FullName = in.FullName
	user.Email = in.Email
	user.Phone = in.Phone
	user.RoleID = in.RoleID
	user.DepartmentID = in.DepartmentID
	if in.IsManager != nil {
		user.IsManager = *in.IsManager
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		if len(in.Password) < 8 {
			return nil, apperrors.Validation("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}
	if err := s.DB.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	recordAudit(s.DB, actor, "admin.update_user", "User", user.ID, nil)
	return &user, nil
}

// ---------- Roles ----------

type RoleInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func validatePermissionCodes(codes []string) error {
	for _, code := range codes {
		if !models.IsKnownPermission(code) {
			return apperrors.Validationf("unknown permission code %q", code)
		}
	}
	return nil
}

func (s *AdminService) ListRoles(actor *models.User) ([]models.Role, error) {
	if err := RequirePermission(actor, models.PermManageRoles); err != nil {
		return nil, err
	}
	var roles []models.Role
	if err := s.DB.Preload("Permissions").Order("name").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *AdminService) CreateRole(actor *models.User, in RoleInput) (*models.Role, error) {
	if err := RequirePermission(actor, models.PermManageRoles); err != nil {
		return nil, err
	}
	if err := validatePermissionCodes(in.Permissions); err != nil {
		return nil, err
	}
	role := models.Role{Name: in.Name, Description: in.Description}
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return apperrors.Validationf("role %q already exists", in.Name)
			}
			return fmt.Errorf("failed to create role: %w", err)
		}
		for _, code := range in.Permissions {
			if err := tx.Create(&models.RolePermission{RoleID: role.ID, Permission: code}).Error; err != nil {
				return fmt.Errorf("failed to grant permission: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	recordAudit(s.DB, actor, "admin.create_role", "Role", role.ID, map[string]interface{}{
		"permissions": in.Permissions,
	})
	return s.roleWithPermissions(role.ID)
}

// UpdateRole replaces the role's permission set wholesale. Authorization
// picks the change up on the next request since permissions load per call.
func (s *AdminService) UpdateRole(actor *models.User, id uint, in RoleInput) (*models.Role, error) {
	if err := RequirePermission(actor, models.PermManageRoles); err != nil {
		return nil, err
	}
	if err := validatePermissionCodes(in.Permissions); err != nil {
		return nil, err
	}
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("role")
			}
			return err
		}
		role.Name = in.Name
		role.Description = in.Description
		if err := tx.Save(&role).Error; err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to clear permissions: %w", err)
		}
		for _, code := range in.Permissions {
			if err := tx.Create(&models.RolePermission{RoleID: role.ID, Permission: code}).Error; err != nil {
				return fmt.Errorf("failed to grant permission: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	recordAudit(s.DB, actor, "admin.update_role", "Role", id, map[string]interface{}{
		"permissions": in.Permissions,
	})
	return s.roleWithPermissions(id)
}

func (s *AdminService) DeleteRole(actor *models.User, id uint) error {
	if err := RequirePermission(actor, models.PermManageRoles); err != nil {
		return err
	}
	var role models.Role
	if err := s.DB.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("role")
		}
		return fmt.Errorf("failed to load role: %w", err)
	}
	if role.IsSystem {
		return apperrors.InvalidState("system roles cannot be deleted")
	}
	var members int64
	if err := s.DB.Model(&models.User{}).Where("role_id = ?", id).Count(&members).Error; err != nil {
		return fmt.Errorf("failed to count role members: %w", err)
	}
	if members > 0 {
		return apperrors.InvalidState("role still has members")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to delete role permissions: %w", err)
		}
		if err := tx.Delete(&role).Error; err != nil {
			return fmt.Errorf("failed to delete role: %w", err)
		}
		recordAudit(tx, actor, "admin.delete_role", "Role", id, nil)
		return nil
	})
}

func (s *AdminService) roleWithPermissions(id uint) (*models.Role, error) {
	var role models.Role
	if err := s.DB.Preload("Permissions").First(&role, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload role: %w", err)
	}
	return &role, nil
}

// PermissionCatalog exposes the closed set of grantable codes for role
// editors.
func (s *AdminService) PermissionCatalog(actor *models.User) ([]models.Permission, error) {
	if err := RequirePermission(actor, models.PermManageRoles); err != nil {
		return nil, err
	}
	var perms []models.Permission
	if err := s.DB.Order("code").Find(&perms).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}

// ---------- Departments ----------

func (s *AdminService) ListDepartments() ([]models.Department, error) {
	var departments []models.Department
	if err := s.DB.Order("code").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}
