// Package main is the entry point for the Fluyt Budget Service API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/fluyt/budget-service/config"
	"github.com/fluyt/budget-service/internal/infra/db"
	"github.com/fluyt/budget-service/internal/infra/dependency"
	"github.com/fluyt/budget-service/internal/integration/email"
	"github.com/fluyt/budget-service/internal/integration/email/templates"
	"github.com/fluyt/budget-service/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Fluyt Budget Service",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection. The database only backs the save
	// journal and the email queue, so the service keeps running without it.
	var gormDB *gorm.DB

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without save journal and email queue",
			"error", err,
		)
	} else {
		if err := database.AutoMigrate(
			&model.SaveAttemptModel{},
			&model.EmailQueueModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		gormDB = database.DB()
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Initialize the Redis session mirror. Never fatal.
	redisConn := db.NewRedisConnection(&cfg.Redis)
	defer func() {
		if err := redisConn.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}()

	// Wire the application graph. A nil gateway makes the injector build
	// the real ERP client from the config.
	injector := dependency.NewInjector(cfg, gormDB, redisConn.Client(), nil)

	// The email worker drains the queue in the background. It needs both
	// the database-backed queue and a Resend API key.
	var emailWorker *email.Worker
	if injector.EmailQueue != nil && cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != "" {
		renderer, err := templates.NewRenderer()
		if err != nil {
			slog.Error("Failed to initialize email templates", "error", err)
			os.Exit(1)
		}
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		emailWorker = email.NewWorker(injector.EmailQueue, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
	} else {
		slog.Info("Email worker disabled")
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Start the email worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if emailWorker != nil {
		go emailWorker.Start(workerCtx)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
