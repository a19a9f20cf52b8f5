package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"staff_attendance/internal/api"
	"staff_attendance/internal/app/service"
	"staff_attendance/internal/common/security"
	"staff_attendance/internal/domain/repository"
	"staff_attendance/internal/platform/cache"
	"staff_attendance/internal/platform/config"
	"staff_attendance/internal/platform/database"
	"syscall"
	"time"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize Token Service
	tokens := security.NewTokenService(cfg.JWTKey, cfg.JWTExp)
	fmt.Println("Token service initialized.")

	// 3. Initialize Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	redisClient, err := cache.Connect(cfg)
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	attendanceRepo := repository.NewPgAttendanceRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, tokens)
	attendanceService := service.NewAttendanceService(userRepo, attendanceRepo, cfg.AllowedNetworks, cfg.LateAfter, cfg.CloseAfter)
	reportService := service.NewReportService(userRepo, attendanceRepo)
	staffService := service.NewStaffService(userRepo)

	// 7. Seed Default Admin
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := authService.EnsureDefaultAdmin(bootCtx, cfg.AdminFullName, cfg.AdminEmail, cfg.AdminPassword)
	bootCancel()
	if err != nil {
		log.Fatalf("Default admin seeding failed: %v", err)
	}
	if created {
		log.Printf("Default admin created: %s", cfg.AdminEmail)
	}

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(cfg, db, redisClient, tokens, authService, attendanceService, reportService, staffService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
