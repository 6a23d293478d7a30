// controllers/folio_controller.go
package controllers

import (
	"net/http"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

type FolioController struct {
	Folios *services.FolioService
}

func NewFolioController(svc *services.FolioService) *FolioController {
	return &FolioController{Folios: svc}
}

func (ctrl *FolioController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	view, err := ctrl.Folios.GetByID(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, view)
}

func (ctrl *FolioController) PostCharge(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.PostChargeInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid charge payload: "+err.Error())
		return
	}
	charge, err := ctrl.Folios.PostCharge(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, charge)
}

func (ctrl *FolioController) PostPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.PostPaymentInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment payload: "+err.Error())
		return
	}
	payment, err := ctrl.Folios.PostPayment(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

// IssueReceipt issues the receipt for a payment recorded without one.
func (ctrl *FolioController) IssueReceipt(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	receipt, err := ctrl.Folios.IssueReceipt(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, receipt)
}
