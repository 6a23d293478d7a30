// controllers/finance_controller.go
package controllers

import (
	"net/http"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

type FinanceController struct {
	Finance *services.FinanceService
}

func NewFinanceController(svc *services.FinanceService) *FinanceController {
	return &FinanceController{Finance: svc}
}

// ---------- Expenses ----------

func (ctrl *FinanceController) ListExpenses(c *gin.Context) {
	expenses, err := ctrl.Finance.ListExpenses(middleware.CurrentUser(c), c.Query("sector"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, expenses)
}

func (ctrl *FinanceController) CreateExpense(c *gin.Context) {
	var payload services.ExpenseInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid expense payload: "+err.Error())
		return
	}
	expense, err := ctrl.Finance.CreateExpense(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, expense)
}

// ---------- Staff / salaries ----------

func (ctrl *FinanceController) ListStaff(c *gin.Context) {
	staff, err := ctrl.Finance.ListStaff(middleware.CurrentUser(c))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, staff)
}

func (ctrl *FinanceController) CreateStaff(c *gin.Context) {
	var payload services.StaffProfileInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid staff payload: "+err.Error())
		return
	}
	staff, err := ctrl.Finance.CreateStaffProfile(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, staff)
}

func (ctrl *FinanceController) UpdateStaff(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.StaffProfileInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid staff payload: "+err.Error())
		return
	}
	staff, err := ctrl.Finance.UpdateStaffProfile(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, staff)
}

func (ctrl *FinanceController) ListSalaries(c *gin.Context) {
	salaries, err := ctrl.Finance.ListSalaries(middleware.CurrentUser(c), c.Query("month"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, salaries)
}

func (ctrl *FinanceController) RecordSalary(c *gin.Context) {
	var payload services.SalaryInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid salary payload: "+err.Error())
		return
	}
	salary, err := ctrl.Finance.RecordSalary(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, salary)
}

// ---------- Maintenance ----------

func (ctrl *FinanceController) ListMaintenance(c *gin.Context) {
	requests, err := ctrl.Finance.ListMaintenanceRequests(middleware.CurrentUser(c), c.Query("status"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, requests)
}

func (ctrl *FinanceController) CreateMaintenance(c *gin.Context) {
	var payload services.MaintenanceInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid maintenance payload: "+err.Error())
		return
	}
	request, err := ctrl.Finance.CreateMaintenanceRequest(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, request)
}

func (ctrl *FinanceController) ApproveMaintenance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload services.ApproveMaintenanceInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "cost is required")
		return
	}
	request, err := ctrl.Finance.ApproveMaintenanceRequest(middleware.CurrentUser(c), id, payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, request)
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (ctrl *FinanceController) UpdateMaintenanceStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}
	request, err := ctrl.Finance.UpdateMaintenanceStatus(middleware.CurrentUser(c), id, payload.Status)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, request)
}

// ---------- Housekeeping ----------

func (ctrl *FinanceController) ListHousekeeping(c *gin.Context) {
	requests, err := ctrl.Finance.ListHousekeepingRequests(middleware.CurrentUser(c), c.Query("status"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, requests)
}

func (ctrl *FinanceController) CreateHousekeeping(c *gin.Context) {
	var payload services.HousekeepingInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid housekeeping payload: "+err.Error())
		return
	}
	request, err := ctrl.Finance.CreateHousekeepingRequest(middleware.CurrentUser(c), payload)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, request)
}

func (ctrl *FinanceController) UpdateHousekeepingStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}
	request, err := ctrl.Finance.UpdateHousekeepingStatus(middleware.CurrentUser(c), id, payload.Status)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, request)
}
