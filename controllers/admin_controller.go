// controllers/admin_controller.go
package controllers

import (
	"net/http"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminController covers staff accounts and departments.
type AdminController struct {
	Admin *services.AdminService
}

func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{Admin: svc}
}

func (ctrl *AdminController) ListUsers(c *gin.Context) {
	users, err := ctrl.Admin.ListUsers(middleware.CurrentUser(c))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (ctrl *AdminController) CreateUser(c *gin.Context) {
	var payload services.UserInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid user payload: "+err.Error())
		return
	}
	user, err := ctrl.Admin.CreateUser(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (ctrl *AdminController) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.UserInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid user payload: "+err.Error())
		return
	}
	user, err := ctrl.Admin.UpdateUser(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (ctrl *AdminController) ListDepartments(c *gin.Context) {
	departments, err := ctrl.Admin.ListDepartments()
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, departments)
}
