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

	"hotel-marketplace/config"
	"hotel-marketplace/controllers"
	"hotel-marketplace/pricing"
	"hotel-marketplace/routes"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("❌ ERROR: %v. Cannot sign tokens.", err)
	}
	log.Printf("✅ Pricing calendar uses %s", cfg.PricingLocation)

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	engine := pricing.NewEngine(cfg.PricingLocation)
	hotelService := services.NewHotelService(db, engine)
	bookingService := services.NewBookingService(db)
	userService := services.NewUserService(db)
	adminService := services.NewAdminService(db)
	loginLogService := services.NewLoginLogService(db)

	if cfg.DefaultAdminEmail != "" && cfg.DefaultAdminPassword != "" {
		if err := adminService.EnsureDefaultAdmin(cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
			log.Printf("⚠️  %v", err)
		}
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize controllers
	router := routes.SetupRouter(routes.Controllers{
		Hotels:   controllers.NewHotelController(hotelService),
		Bookings: controllers.NewBookingController(bookingService),
		Auth:     controllers.NewAuthController(userService, adminService, loginLogService, tokens),
		Admin:    controllers.NewAdminController(adminService, userService, loginLogService),
	}, userService, adminService, tokens)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
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
