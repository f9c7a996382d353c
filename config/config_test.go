package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("PAYPAL_CLIENT_ID", "id")
	t.Setenv("PAYPAL_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT", `{"type":"service_account"}`)
	t.Setenv("SPREADSHEET_ID", "sheet-id")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "8089", cfg.Port)
		assert.Equal(t, "https://api-m.sandbox.paypal.com", cfg.PayPalAPIBase)
		assert.Equal(t, "Sheet1!A2:F", cfg.SheetRange)
		assert.True(t, cfg.MarkDelivery)
		assert.False(t, cfg.MarkDeliveryFatal)
	})

	t.Run("missing variables are each named", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PAYPAL_CLIENT_SECRET", "")
		t.Setenv("SPREADSHEET_ID", "")

		_, err := LoadConfig()
		assert.Error(t, err)
		assert.ErrorContains(t, err, "PAYPAL_CLIENT_SECRET")
		assert.ErrorContains(t, err, "SPREADSHEET_ID")
	})

	t.Run("overrides respected", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PORT", "9000")
		t.Setenv("MARK_DELIVERY_FATAL", "true")
		t.Setenv("MARK_DELIVERY_ENABLED", "false")

		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.True(t, cfg.MarkDeliveryFatal)
		assert.False(t, cfg.MarkDelivery)
	})
}
