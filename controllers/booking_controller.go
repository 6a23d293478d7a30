// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads the :id route parameter as an unsigned integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Bookings: svc}
}

func (ctrl *BookingController) List(c *gin.Context) {
	bookings, err := ctrl.Bookings.List(middleware.CurrentUser(c), c.Query("status"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) Create(c *gin.Context) {
	var payload services.CreateBookingInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload: "+err.Error())
		return
	}
	booking, err := ctrl.Bookings.Create(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *BookingController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.GetByID(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CheckIn opens the folio, occupies the room and flips the booking status
// in one transaction.
func (ctrl *BookingController) CheckIn(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	folio, err := ctrl.Bookings.CheckIn(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"folio": folio})
}

func (ctrl *BookingController) CheckOut(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	folio, invoice, err := ctrl.Bookings.CheckOut(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"folio": folio, "invoice": invoice})
}

func (ctrl *BookingController) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.Cancel(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// Approve marks a guest's self-service submission as reviewed.
func (ctrl *BookingController) Approve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.Approve(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ---------- Public self-service check-in (token-gated, no auth) ----------

func (ctrl *BookingController) GetByToken(c *gin.Context) {
	booking, err := ctrl.Bookings.FindByToken(c.Param("token"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"booking_id":     booking.ID,
		"status":         booking.Status,
		"check_in_date":  booking.CheckInDate,
		"check_out_date": booking.CheckOutDate,
		"guest":          booking.Guest,
		"room":           booking.Room,
		"room_type":      booking.RoomType,
		"submitted":      booking.SubmittedAt != nil,
	})
}

func (ctrl *BookingController) SubmitByToken(c *gin.Context) {
	var payload services.SelfCheckinInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check-in payload: "+err.Error())
		return
	}
	booking, err := ctrl.Bookings.SubmitByToken(c.Param("token"), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"booking_id":   booking.ID,
		"submitted_at": booking.SubmittedAt,
	})
}
