package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DefaultMaxUploadBytes is the 100 MiB upload ceiling enforced at the HTTP
// boundary.
const DefaultMaxUploadBytes = 100 << 20

// Config holds the environment-driven configuration for the backend.
type Config struct {
	Port            int
	FrontendURL     string
	CredentialsFile string

	SpreadsheetID      string
	SheetRange         string
	CitasSpreadsheetID string
	CitasRange         string

	LowStockThreshold int
	MaxUploadBytes    int64

	SlackWebhookURL  string
	LowStockSchedule string
}

// Load reads configuration from the environment, applying the documented
// defaults for every optional value.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 3001)
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("GOOGLE_SERVICE_ACCOUNT_KEY_FILE", "./service-account-key.json")
	v.SetDefault("GOOGLE_SHEETS_RANGE", "Sheet1!A2:I")
	v.SetDefault("CITAS_RANGE", "Citas!A2:F")
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
	v.SetDefault("LOW_STOCK_SCHEDULE", "0 8 * * *")

	cfg := &Config{
		Port:               v.GetInt("PORT"),
		FrontendURL:        v.GetString("FRONTEND_URL"),
		CredentialsFile:    v.GetString("GOOGLE_SERVICE_ACCOUNT_KEY_FILE"),
		SpreadsheetID:      v.GetString("GOOGLE_SHEETS_SPREADSHEET_ID"),
		SheetRange:         v.GetString("GOOGLE_SHEETS_RANGE"),
		CitasSpreadsheetID: v.GetString("CITAS_SPREADSHEET_ID"),
		CitasRange:         v.GetString("CITAS_RANGE"),
		LowStockThreshold:  v.GetInt("LOW_STOCK_THRESHOLD"),
		MaxUploadBytes:     v.GetInt64("MAX_UPLOAD_BYTES"),
		SlackWebhookURL:    v.GetString("SLACK_WEBHOOK_URL"),
		LowStockSchedule:   v.GetString("LOW_STOCK_SCHEDULE"),
	}

	// The appointment sheet shares the inventory spreadsheet unless its own
	// id is configured.
	if cfg.CitasSpreadsheetID == "" {
		cfg.CitasSpreadsheetID = cfg.SpreadsheetID
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT value: %d", cfg.Port)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES value: %d", cfg.MaxUploadBytes)
	}
	return cfg, nil
}
