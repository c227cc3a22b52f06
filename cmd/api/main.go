package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead-capture-backend/config"
	_ "lead-capture-backend/docs" // Important for Swagger
	v1 "lead-capture-backend/internal/delivery/http/v1"
	"lead-capture-backend/internal/domain"
	"lead-capture-backend/internal/usecase"
	"lead-capture-backend/pkg/email"
	"lead-capture-backend/pkg/logger"
	"lead-capture-backend/pkg/sheets"

	"github.com/go-playground/validator/v10"
)

// @title           Lead Capture API
// @version         1.0
// @description     Conversational lead capture backend: spreadsheet webhook persistence plus best-effort email notifications.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting lead capture backend", "port", cfg.Port)

	if cfg.AppsScriptWebhookURL == "" {
		logger.Log.Warn("APPS_SCRIPT_WEBAPP_URL not set - submissions will fail until configured")
	}

	// 3. Setup Sinks
	questions := domain.DefaultQuestions()
	sheetClient := sheets.NewClient(cfg.AppsScriptWebhookURL, nil)
	notifier := email.NewService(cfg, questions)
	if !notifier.IsConfigured() {
		logger.Log.Warn("SMTP not fully configured - notification emails will be skipped silently")
	}

	// 4. Setup UseCase
	validate := validator.New()
	leadUC := usecase.NewLeadUsecase(sheetClient, notifier, cfg.AppsScriptWebhookURL, validate)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		LeadUC: leadUC,
		Config: cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
