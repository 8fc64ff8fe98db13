package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digilocker/internal/api"
	"digilocker/internal/api/middleware"
	"digilocker/internal/app/service"
	"digilocker/internal/common/security"
	"digilocker/internal/domain/repository"
	"digilocker/internal/platform/cache"
	"digilocker/internal/platform/config"
	"digilocker/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}
	fmt.Println("Database connected and migrated.")

	// 4. Initialize Redis (rate limiter backend)
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	roleRepo := repository.NewPgRoleRepository(database.DB)
	documentRepo := repository.NewPgDocumentRepository(database.DB)

	// Seed the fixed role enumeration if absent
	if err := roleRepo.EnsureDefaults(context.Background()); err != nil {
		log.Fatalf("Could not seed roles: %v", err)
	}

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, roleRepo, database.DB)
	documentService := service.NewDocumentService(documentRepo, userRepo, database.DB)
	userService := service.NewUserService(userRepo, database.DB)

	// 7. Initialize Router & HTTP Server
	rateLimiter := middleware.NewRateLimiter(cache.RDB, config.AppConfig.AuthRatePerMinute, config.AppConfig.AuthRateBurst)
	router := api.NewRouter(authService, documentService, userService, userRepo, rateLimiter)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
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
