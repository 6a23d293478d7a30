// controllers/guest_controller.go
package controllers

import (
	"net/http"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{Guests: svc}
}

func (ctrl *GuestController) List(c *gin.Context) {
	guests, err := ctrl.Guests.List(middleware.CurrentUser(c), c.Query("search"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (ctrl *GuestController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	guest, err := ctrl.Guests.GetByID(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) Create(c *gin.Context) {
	var payload services.GuestInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest payload: "+err.Error())
		return
	}
	guest, err := ctrl.Guests.Create(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (ctrl *GuestController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.GuestInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest payload: "+err.Error())
		return
	}
	guest, err := ctrl.Guests.Update(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) BookingHistory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	bookings, err := ctrl.Guests.BookingHistory(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}
