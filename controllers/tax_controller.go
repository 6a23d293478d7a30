// controllers/tax_controller.go
package controllers

import (
	"net/http"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

type TaxController struct {
	Taxes *services.TaxService
}

func NewTaxController(svc *services.TaxService) *TaxController {
	return &TaxController{Taxes: svc}
}

func (ctrl *TaxController) List(c *gin.Context) {
	taxes, err := ctrl.Taxes.List(middleware.CurrentUser(c))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, taxes)
}

func (ctrl *TaxController) Create(c *gin.Context) {
	var payload services.TaxInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid tax payload: "+err.Error())
		return
	}
	tax, err := ctrl.Taxes.Create(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, tax)
}

func (ctrl *TaxController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.TaxInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid tax payload: "+err.Error())
		return
	}
	tax, err := ctrl.Taxes.Update(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tax)
}

func (ctrl *TaxController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.Taxes.Delete(middleware.CurrentUser(c), id); err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
