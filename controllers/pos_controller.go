// controllers/pos_controller.go
package controllers

import (
	"net/http"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

type POSController struct {
	POS *services.POSService
}

func NewPOSController(svc *services.POSService) *POSController {
	return &POSController{POS: svc}
}

func (ctrl *POSController) CreateOrder(c *gin.Context) {
	var payload services.CreateOrderInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid order payload: "+err.Error())
		return
	}
	order, err := ctrl.POS.CreateOrder(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, order)
}

func (ctrl *POSController) ListOrders(c *gin.Context) {
	orders, err := ctrl.POS.ListOrders(middleware.CurrentUser(c), c.Query("status"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, orders)
}

func (ctrl *POSController) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := ctrl.POS.GetOrder(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

// KitchenQueue lists unserved orders oldest-first.
func (ctrl *POSController) KitchenQueue(c *gin.Context) {
	orders, err := ctrl.POS.KitchenQueue(middleware.CurrentUser(c))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, orders)
}

type orderStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (ctrl *POSController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload orderStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}
	order, err := ctrl.POS.UpdateStatus(middleware.CurrentUser(c), id, payload.Status)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

// ---------- Menus ----------

func (ctrl *POSController) ListMenus(c *gin.Context) {
	menus, err := ctrl.POS.ListMenus(c.Query("sector"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, menus)
}

func (ctrl *POSController) CreateMenu(c *gin.Context) {
	var payload services.MenuInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid menu payload: "+err.Error())
		return
	}
	menu, err := ctrl.POS.CreateMenu(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, menu)
}

func (ctrl *POSController) AddMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.MenuItemInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid menu item payload: "+err.Error())
		return
	}
	item, err := ctrl.POS.AddMenuItem(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, item)
}

func (ctrl *POSController) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.MenuItemInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid menu item payload: "+err.Error())
		return
	}
	item, err := ctrl.POS.UpdateMenuItem(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, item)
}
