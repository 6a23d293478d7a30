// controllers/role_controller.go
package controllers

import (
	"net/http"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

// RoleController manages roles and the permission catalog they draw from.
type RoleController struct {
	Admin *services.AdminService
}

func NewRoleController(svc *services.AdminService) *RoleController {
	return &RoleController{Admin: svc}
}

func (ctrl *RoleController) List(c *gin.Context) {
	roles, err := ctrl.Admin.ListRoles(middleware.CurrentUser(c))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, roles)
}

func (ctrl *RoleController) Create(c *gin.Context) {
	var payload services.RoleInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid role payload: "+err.Error())
		return
	}
	role, err := ctrl.Admin.CreateRole(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, role)
}

func (ctrl *RoleController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.RoleInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid role payload: "+err.Error())
		return
	}
	role, err := ctrl.Admin.UpdateRole(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, role)
}

func (ctrl *RoleController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.Admin.DeleteRole(middleware.CurrentUser(c), id); err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// Permissions lists the closed catalog of grantable codes.
func (ctrl *RoleController) Permissions(c *gin.Context) {
	perms, err := ctrl.Admin.PermissionCatalog(middleware.CurrentUser(c))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, perms)
}
