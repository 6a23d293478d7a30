// controllers/auth_controller.go
package controllers

import (
	"net/http"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}
	result, err := ctrl.Auth.Login(payload.Username, payload.Password)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// Me returns the authenticated user with their effective permission codes.
func (ctrl *AuthController) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"user":        user,
		"permissions": user.PermissionCodes(),
	})
}
