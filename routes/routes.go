package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"kalongo-backend/controllers"
	"kalongo-backend/middleware"
	"kalongo-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles every controller SetupRouter wires up.
type Controllers struct {
	Auth    *controllers.AuthController
	Booking *controllers.BookingController
	Folio   *controllers.FolioController
	POS     *controllers.POSController
	Tax     *controllers.TaxController
	Finance *controllers.FinanceController
	Report  *controllers.ReportController
	Room    *controllers.RoomController
	Guest   *controllers.GuestController
	Admin   *controllers.AdminController
	Role    *controllers.RoleController
}

func SetupRouter(auth *services.AuthService, ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public: login and token-gated guest self-service check-in.
	api.POST("/auth/login", ctrl.Auth.Login)
	selfCheckin := api.Group("/self-checkin")
	{
		selfCheckin.GET("/:token", ctrl.Booking.GetByToken)
		selfCheckin.POST("/:token", ctrl.Booking.SubmitByToken)
	}

	// Everything below requires a valid staff token.
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(auth))
	{
		authed.GET("/auth/me", ctrl.Auth.Me)

		bookings := authed.Group("/bookings")
		{
			bookings.GET("", ctrl.Booking.List)
			bookings.POST("", ctrl.Booking.Create)
			bookings.GET("/:id", ctrl.Booking.Get)
			bookings.POST("/:id/check-in", ctrl.Booking.CheckIn)
			bookings.POST("/:id/check-out", ctrl.Booking.CheckOut)
			bookings.POST("/:id/cancel", ctrl.Booking.Cancel)
			bookings.POST("/:id/approve", ctrl.Booking.Approve)
		}

		folios := authed.Group("/folios")
		{
			folios.GET("/:id", ctrl.Folio.Get)
			folios.POST("/:id/charges", ctrl.Folio.PostCharge)
			folios.POST("/:id/payments", ctrl.Folio.PostPayment)
		}
		authed.POST("/payments/:id/receipt", ctrl.Folio.IssueReceipt)

		pos := authed.Group("/pos")
		{
			pos.GET("/menus", ctrl.POS.ListMenus)
			pos.POST("/menus", ctrl.POS.CreateMenu)
			pos.POST("/menus/:id/items", ctrl.POS.AddMenuItem)
			pos.PUT("/menu-items/:id", ctrl.POS.UpdateMenuItem)

			pos.GET("/orders", ctrl.POS.ListOrders)
			pos.POST("/orders", ctrl.POS.CreateOrder)
			pos.GET("/orders/:id", ctrl.POS.GetOrder)
			pos.PATCH("/orders/:id/status", ctrl.POS.UpdateOrderStatus)
			pos.GET("/kitchen-queue", ctrl.POS.KitchenQueue)
		}

		taxes := authed.Group("/taxes")
		{
			taxes.GET("", ctrl.Tax.List)
			taxes.POST("", ctrl.Tax.Create)
			taxes.PUT("/:id", ctrl.Tax.Update)
			taxes.DELETE("/:id", ctrl.Tax.Delete)
		}

		rooms := authed.Group("/rooms")
		{
			rooms.GET("", ctrl.Room.List)
			rooms.POST("", ctrl.Room.Create)
			rooms.PUT("/:id", ctrl.Room.Update)
			rooms.PATCH("/:id/maintenance", ctrl.Room.SetMaintenance)
			rooms.DELETE("/:id", ctrl.Room.Delete)
		}
		roomTypes := authed.Group("/room-types")
		{
			roomTypes.GET("", ctrl.Room.ListRoomTypes)
			roomTypes.POST("", ctrl.Room.CreateRoomType)
			roomTypes.PUT("/:id", ctrl.Room.UpdateRoomType)
		}

		guests := authed.Group("/guests")
		{
			guests.GET("", ctrl.Guest.List)
			guests.POST("", ctrl.Guest.Create)
			guests.GET("/:id", ctrl.Guest.Get)
			guests.PUT("/:id", ctrl.Guest.Update)
			guests.GET("/:id/bookings", ctrl.Guest.BookingHistory)
		}

		expenses := authed.Group("/expenses")
		{
			expenses.GET("", ctrl.Finance.ListExpenses)
			expenses.POST("", ctrl.Finance.CreateExpense)
		}
		staff := authed.Group("/staff")
		{
			staff.GET("", ctrl.Finance.ListStaff)
			staff.POST("", ctrl.Finance.CreateStaff)
			staff.PUT("/:id", ctrl.Finance.UpdateStaff)
		}
		salaries := authed.Group("/salaries")
		{
			salaries.GET("", ctrl.Finance.ListSalaries)
			salaries.POST("", ctrl.Finance.RecordSalary)
		}
		maintenance := authed.Group("/maintenance-requests")
		{
			maintenance.GET("", ctrl.Finance.ListMaintenance)
			maintenance.POST("", ctrl.Finance.CreateMaintenance)
			maintenance.POST("/:id/approve", ctrl.Finance.ApproveMaintenance)
			maintenance.PATCH("/:id/status", ctrl.Finance.UpdateMaintenanceStatus)
		}
		housekeeping := authed.Group("/housekeeping-requests")
		{
			housekeeping.GET("", ctrl.Finance.ListHousekeeping)
			housekeeping.POST("", ctrl.Finance.CreateHousekeeping)
			housekeeping.PATCH("/:id/status", ctrl.Finance.UpdateHousekeepingStatus)
		}

		reports := authed.Group("/reports")
		{
			reports.GET("/dashboard", ctrl.Report.Dashboard)
			reports.GET("/daily-sales", ctrl.Report.DailySales)
			reports.GET("/taxes", ctrl.Report.TaxReport)
			reports.GET("/charges.csv", ctrl.Report.ExportCharges)
		}
		authed.GET("/audit-logs", ctrl.Report.AuditLogs)

		users := authed.Group("/users")
		{
			users.GET("", ctrl.Admin.ListUsers)
			users.POST("", ctrl.Admin.CreateUser)
			users.PUT("/:id", ctrl.Admin.UpdateUser)
		}
		authed.GET("/departments", ctrl.Admin.ListDepartments)

		roles := authed.Group("/roles")
		{
			roles.GET("", ctrl.Role.List)
			roles.POST("", ctrl.Role.Create)
			roles.PUT("/:id", ctrl.Role.Update)
			roles.DELETE("/:id", ctrl.Role.Delete)
		}
		authed.GET("/permissions", ctrl.Role.Permissions)
	}

	return r
}
