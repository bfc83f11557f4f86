package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/petsivet/petsi-backend/internal/appointments"
	"github.com/petsivet/petsi-backend/internal/config"
	"github.com/petsivet/petsi-backend/internal/dashboard"
	"github.com/petsivet/petsi-backend/internal/documents"
	"github.com/petsivet/petsi-backend/internal/inventory"
	"github.com/petsivet/petsi-backend/internal/notification"
	"github.com/petsivet/petsi-backend/internal/scheduler"
	"github.com/petsivet/petsi-backend/internal/server"
	"github.com/petsivet/petsi-backend/pkg/gdrive"
	"github.com/petsivet/petsi-backend/pkg/gsheets"
)

func main() {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	logger := setupLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	driveClient, err := gdrive.NewClient(ctx, cfg.CredentialsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Drive client")
	}
	sheetsClient, err := gsheets.NewClient(ctx, cfg.CredentialsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Sheets client")
	}

	docsService := documents.NewService(driveClient, logger)
	inventoryService := inventory.NewService(sheetsClient, cfg.SpreadsheetID, cfg.SheetRange)
	citasService := appointments.NewService(sheetsClient, cfg.CitasSpreadsheetID, cfg.CitasRange)
	dashboardService := dashboard.NewService(docsService, inventoryService, citasService, cfg.LowStockThreshold, logger)

	var watcher *scheduler.Service
	if cfg.SlackWebhookURL != "" {
		notifier := notification.NewSlackNotifier(cfg.SlackWebhookURL)
		watcher = scheduler.NewService(inventoryService, notifier, cfg.LowStockThreshold, cfg.LowStockSchedule, logger)
		if err := watcher.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start low-stock watcher")
		}
	} else {
		logger.Info().Msg("SLACK_WEBHOOK_URL not set, low-stock watcher disabled")
	}

	srv := server.New(cfg, logger, docsService, inventoryService, citasService, dashboardService)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("Shutting down...")
		if watcher != nil {
			watcher.Stop()
		}
		if err := srv.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("Error during shutdown")
		}
	}()

	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func setupLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
