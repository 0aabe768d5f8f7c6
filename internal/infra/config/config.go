package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseDriver        string // "postgres" or "sqlite3"
	DatabaseURL           string
	HTTPPort              int
	CORSOrigins           string
	LogLevel              string
	Environment           string
	CronSpecBirthdayCheck string
	Location              *time.Location // Timezone used to decide what "today" is
	SMTPHost              string
	SMTPPort              int
	ResendAPIKey          string // When set, reminder emails go through Resend instead of SMTP
	TelegramToken         string // Optional; enables the admin bot
	AdminTelegramID       int64
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseDriver = strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "postgres"))
	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite3" {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.HTTPPort, err = getEnvAsInt("HTTP_PORT", 8000)
	if err != nil {
		return nil, err
	}

	cfg.CORSOrigins = getEnvOrDefault("CORS_ORIGINS", "*")
	cfg.LogLevel = strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnvOrDefault("ENVIRONMENT", "development"))
	cfg.CronSpecBirthdayCheck = getEnvOrDefault("CRON_SPEC_BIRTHDAY_CHECK", "0 * * * *") // hourly

	tz := getEnvOrDefault("REMINDER_TIMEZONE", "UTC")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_TIMEZONE: %w", err)
	}

	cfg.SMTPHost = getEnvOrDefault("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTPPort, err = getEnvAsInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID"); adminIDStr != "" {
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}
	if cfg.TelegramToken != "" && cfg.AdminTelegramID == 0 {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

// TelegramEnabled reports whether the admin bot should be started.
func (c *AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
