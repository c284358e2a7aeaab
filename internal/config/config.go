package config

import (
	"os"
	"strconv"
	"time"

	"regdash/domain/roster"
	"regdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sheets   SheetsConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Email    EmailConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
	// PollInterval is advertised to the dashboard client via /api/config.
	PollInterval time.Duration
}

// DatabaseConfig holds the registration store settings. URL may be empty,
// in which case the durable store is disabled and intake falls back to the
// in-memory counters.
type DatabaseConfig struct {
	URL          string
	StatsTimeout time.Duration
}

// SheetsConfig holds the spreadsheet backend settings. File may be empty,
// which disables the spreadsheet backend entirely.
type SheetsConfig struct {
	File      string
	IntakeTab string
	// WriteToSheets gates whether intake also appends to the intake tab.
	WriteToSheets bool
	// PaymentColumn pins the payment column (0-based); negative = auto.
	PaymentColumn int
}

// CacheConfig holds aggregation cache settings
type CacheConfig struct {
	TTL time.Duration
}

// AuthConfig holds the dashboard login credentials
type AuthConfig struct {
	Username string
	Password string
}

// EmailConfig holds confirmation email settings; disabled when the API key
// is empty.
type EmailConfig struct {
	ResendAPIKey string
	From         string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "5000"),
			PollInterval: getEnvDurationOrDefault("POLL_INTERVAL", 5*time.Second),
		},
		Database: DatabaseConfig{
			URL:          getEnvOrDefault("DATABASE_URL", ""),
			StatsTimeout: getEnvDurationOrDefault("STATS_TIMEOUT", 5*time.Second),
		},
		Sheets: SheetsConfig{
			File:          getEnvOrDefault("SHEET_FILE", ""),
			IntakeTab:     getEnvOrDefault("INTAKE_SHEET", "Sheet1"),
			WriteToSheets: getEnvBoolOrDefault("WRITE_TO_SHEETS", false),
			PaymentColumn: getEnvIntOrDefault("PAYMENT_COLUMN", roster.Absent),
		},
		Cache: CacheConfig{
			TTL: getEnvDurationOrDefault("CACHE_TTL", 20*time.Second),
		},
		Auth: AuthConfig{
			Username: getEnvOrDefault("DASH_USERNAME", "admin"),
			Password: getEnvOrDefault("DASH_PASSWORD", ""),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnvOrDefault("RESEND_API_KEY", ""),
			From:         getEnvOrDefault("EMAIL_FROM", "registrations@localhost"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if config.Cache.TTL <= 0 {
		return errors.ConfigInvalid("CACHE_TTL must be positive")
	}
	if config.Auth.Password == "" {
		return errors.ConfigInvalid("DASH_PASSWORD is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
