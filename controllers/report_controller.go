// controllers/report_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"kalongo-backend/middleware"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{Reports: svc}
}

func (ctrl *ReportController) Dashboard(c *gin.Context) {
	report, err := ctrl.Reports.Dashboard(middleware.CurrentUser(c), c.Query("from"), c.Query("to"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

func (ctrl *ReportController) DailySales(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "31"))
	points, err := ctrl.Reports.DailySales(middleware.CurrentUser(c), days)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, points)
}

func (ctrl *ReportController) TaxReport(c *gin.Context) {
	report, err := ctrl.Reports.TaxReport(middleware.CurrentUser(c), c.Query("from"), c.Query("to"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

// ExportCharges streams the visible charges as a CSV attachment.
func (ctrl *ReportController) ExportCharges(c *gin.Context) {
	filename := "charges-" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := ctrl.Reports.ExportChargesCSV(middleware.CurrentUser(c), c.Query("from"), c.Query("to"), c.Writer); err != nil {
		utils.JSONAppError(c, err)
		return
	}
}

func (ctrl *ReportController) AuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := ctrl.Reports.ListAuditLogs(middleware.CurrentUser(c), limit)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}
