package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/petsivet/petsi-backend/internal/inventory"
	"github.com/petsivet/petsi-backend/internal/notification"
)

// ProductSource supplies inventory rows for the stock check.
type ProductSource interface {
	List(ctx context.Context) ([]inventory.Product, error)
}

// Notifier delivers low-stock alerts.
type Notifier interface {
	Send(message *notification.Message) error
}

// Service runs the scheduled low-stock check. Each run reads the inventory
// fresh and posts an alert listing every product below the threshold.
// Failures are logged and never fatal; the next run starts clean.
type Service struct {
	cron      *cron.Cron
	inventory ProductSource
	notifier  Notifier
	threshold int
	schedule  string
	logger    zerolog.Logger
}

// NewService creates a low-stock watcher with a standard 5-field cron
// schedule.
func NewService(inv ProductSource, notifier Notifier, threshold int, schedule string, logger zerolog.Logger) *Service {
	return &Service{
		cron:      cron.New(),
		inventory: inv,
		notifier:  notifier,
		threshold: threshold,
		schedule:  schedule,
		logger:    logger.With().Str("component", "low-stock-watcher").Logger(),
	}
}

// Start registers the stock check and starts the scheduler.
func (s *Service) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.CheckStock); err != nil {
		return fmt.Errorf("failed to schedule low-stock check: %w", err)
	}
	s.cron.Start()
	s.logger.Info().Str("schedule", s.schedule).Msg("Low-stock watcher started")
	return nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Low-stock watcher stopped")
}

// CheckStock reads the inventory and sends one alert covering every
// product below the threshold. Nothing is sent when stock is healthy.
func (s *Service) CheckStock() {
	ctx := context.Background()

	products, err := s.inventory.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Stock check failed to read inventory")
		return
	}

	low := inventory.LowStock(products, s.threshold)
	if len(low) == 0 {
		s.logger.Debug().Msg("Stock check found no products below threshold")
		return
	}

	if err := s.notifier.Send(buildLowStockMessage(low, s.threshold)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to send low-stock notification")
		return
	}
	s.logger.Info().Int("products", len(low)).Msg("Low-stock notification sent")
}

// ValidateSchedule checks a standard cron expression.
func ValidateSchedule(expr string) error {
	_, err := cron.ParseStandard(expr)
	return err
}

func buildLowStockMessage(low []inventory.Product, threshold int) *notification.Message {
	lines := make([]string, 0, len(low))
	for _, p := range low {
		lines = append(lines, fmt.Sprintf("• %s (%s): %d unidades", p.Producto, p.Codigo, p.Stock))
	}

	return &notification.Message{
		Type:  notification.MessageTypeWarning,
		Title: fmt.Sprintf(":warning: Stock bajo: %d productos", len(low)),
		Text:  strings.Join(lines, "\n"),
		Fields: map[string]string{
			"Umbral": fmt.Sprintf("%d unidades", threshold),
		},
		Timestamp: time.Now(),
	}
}
