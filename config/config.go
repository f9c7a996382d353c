package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultPayPalAPIBase = "https://api-m.sandbox.paypal.com"

type Config struct {
	Port               string
	Env                string
	PayPalClientID     string
	PayPalClientSecret string
	PayPalAPIBase      string
	ServiceAccount     string // raw or base64-encoded service account JSON
	SpreadsheetID      string
	SheetRange         string
	MarkDelivery       bool // write the delivered marker after a successful lookup
	MarkDeliveryFatal  bool // treat a failed marker write as a request failure
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8089"),
		Env:                getEnv("ENV", "development"),
		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalAPIBase:      getEnv("PAYPAL_API_BASE", defaultPayPalAPIBase),
		ServiceAccount:     os.Getenv("GOOGLE_SERVICE_ACCOUNT"),
		SpreadsheetID:      os.Getenv("SPREADSHEET_ID"),
		SheetRange:         getEnv("SHEET_RANGE", "Sheet1!A2:F"),
		MarkDelivery:       getEnvBool("MARK_DELIVERY_ENABLED", true),
		MarkDeliveryFatal:  getEnvBool("MARK_DELIVERY_FATAL", false),
	}

	var missing []string
	for name, val := range map[string]string{
		"PAYPAL_CLIENT_ID":       cfg.PayPalClientID,
		"PAYPAL_CLIENT_SECRET":   cfg.PayPalClientSecret,
		"GOOGLE_SERVICE_ACCOUNT": cfg.ServiceAccount,
		"SPREADSHEET_ID":         cfg.SpreadsheetID,
	} {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
