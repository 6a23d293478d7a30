// controllers/room_controller.go
package controllers

import (
	"net/http"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Rooms: svc}
}

func (ctrl *RoomController) List(c *gin.Context) {
	rooms, err := ctrl.Rooms.ListRooms(c.Query("status"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) Create(c *gin.Context) {
	var payload services.RoomInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room payload: "+err.Error())
		return
	}
	room, err := ctrl.Rooms.CreateRoom(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.RoomInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room payload: "+err.Error())
		return
	}
	room, err := ctrl.Rooms.UpdateRoom(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type maintenancePayload struct {
	UnderMaintenance *bool `json:"under_maintenance" binding:"required"`
}

func (ctrl *RoomController) SetMaintenance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload maintenancePayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.UnderMaintenance == nil {
		utils.JSONError(c, http.StatusBadRequest, "under_maintenance is required")
		return
	}
	room, err := ctrl.Rooms.SetMaintenance(middleware.CurrentUser(c), id, *payload.UnderMaintenance)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.Rooms.DeleteRoom(middleware.CurrentUser(c), id); err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// ---------- Room types ----------

func (ctrl *RoomController) ListRoomTypes(c *gin.Context) {
	types, err := ctrl.Rooms.ListRoomTypes()
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (ctrl *RoomController) CreateRoomType(c *gin.Context) {
	var payload services.RoomTypeInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type payload: "+err.Error())
		return
	}
	rt, err := ctrl.Rooms.CreateRoomType(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func (ctrl *RoomController) UpdateRoomType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.RoomTypeInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type payload: "+err.Error())
		return
	}
	rt, err := ctrl.Rooms.UpdateRoomType(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}
