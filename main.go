package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kalongo-backend/config"
	"kalongo-backend/controllers"
	"kalongo-backend/routes"
	"kalongo-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot sign session tokens.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Services. Folio and booking share the tax engine; everything takes
	// the acting user explicitly.
	authService := services.NewAuthService(db, jwtSecret)
	taxService := services.NewTaxService(db)
	folioService := services.NewFolioService(db, taxService)
	bookingService := services.NewBookingService(db, folioService)
	posService := services.NewPOSService(db, taxService)
	financeService := services.NewFinanceService(db)
	reportService := services.NewReportService(db)
	roomService := services.NewRoomService(db)
	guestService := services.NewGuestService(db)
	adminService := services.NewAdminService(db)

	router := routes.SetupRouter(authService, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Booking: controllers.NewBookingController(bookingService),
		Folio:   controllers.NewFolioController(folioService),
		POS:     controllers.NewPOSController(posService),
		Tax:     controllers.NewTaxController(taxService),
		Finance: controllers.NewFinanceController(financeService),
		Report:  controllers.NewReportController(reportService),
		Room:    controllers.NewRoomController(roomService),
		Guest:   controllers.NewGuestController(guestService),
		Admin:   controllers.NewAdminController(adminService),
		Role:    controllers.NewRoleController(adminService),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
