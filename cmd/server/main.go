package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskhub/internal/api"
	"taskhub/internal/app/service"
	"taskhub/internal/common/security"
	"taskhub/internal/domain/repository"
	"taskhub/internal/platform/cache"
	"taskhub/internal/platform/config"
	"taskhub/internal/platform/database"
	"taskhub/internal/platform/logging"
)

func main() {
	// 1. Load Configuration & Logging
	config.Load()
	logging.Init()
	logging.Log.Info("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	taskRepo := repository.NewPgTaskRepository(database.DB)

	// 6. Initialize Services
	loginLimiter := cache.NewLoginLimiter(cache.RDB, config.AppConfig.LoginMaxAttempts, config.AppConfig.LoginWindow)
	authService := service.NewAuthService(userRepo, loginLimiter)
	taskService := service.NewTaskService(taskRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, taskService, userRepo)

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
		logging.Log.Infof("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Could not listen on %s: %v", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	logging.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Log.Fatalf("Server shutdown failed: %v", err)
	}

	logging.Log.Info("Server stopped gracefully")
}
