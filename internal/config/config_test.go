package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets variables for the duration of a test, restoring any
// previous values afterwards.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

var allKeys = []string{
	"PORT", "FRONTEND_URL", "GOOGLE_SERVICE_ACCOUNT_KEY_FILE",
	"GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_RANGE",
	"CITAS_SPREADSHEET_ID", "CITAS_RANGE",
	"LOW_STOCK_THRESHOLD", "MAX_UPLOAD_BYTES",
	"SLACK_WEBHOOK_URL", "LOW_STOCK_SCHEDULE",
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, allKeys...)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Equal(t, "./service-account-key.json", cfg.CredentialsFile)
	assert.Equal(t, "Sheet1!A2:I", cfg.SheetRange)
	assert.Equal(t, "Citas!A2:F", cfg.CitasRange)
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, "0 8 * * *", cfg.LowStockSchedule)
	assert.Empty(t, cfg.SlackWebhookURL)
}

func TestDefaultMaxUploadBytesIs100MiB(t *testing.T) {
	assert.Equal(t, 104857600, DefaultMaxUploadBytes)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv("PORT", "8080")
	t.Setenv("FRONTEND_URL", "https://clinica.example.com")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "inventory-sheet")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://clinica.example.com", cfg.FrontendURL)
	assert.Equal(t, "inventory-sheet", cfg.SpreadsheetID)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
}

func TestLoad_CitasSheetFallsBackToInventorySheet(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "shared-sheet")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "shared-sheet", cfg.CitasSpreadsheetID)

	t.Setenv("CITAS_SPREADSHEET_ID", "citas-own-sheet")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "citas-own-sheet", cfg.CitasSpreadsheetID)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv("PORT", "70000")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t, allKeys...)
	t.Setenv("PORT", "-1")
	_, err = Load()
	assert.Error(t, err)

	clearEnv(t, allKeys...)
	t.Setenv("MAX_UPLOAD_BYTES", "0")
	_, err = Load()
	assert.Error(t, err)
}
