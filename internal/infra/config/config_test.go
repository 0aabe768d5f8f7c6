package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_DRIVER", "HTTP_PORT", "CORS_ORIGINS", "LOG_LEVEL", "ENVIRONMENT",
		"CRON_SPEC_BIRTHDAY_CHECK", "REMINDER_TIMEZONE", "SMTP_HOST", "SMTP_PORT",
		"RESEND_API_KEY", "TELEGRAM_TOKEN", "ADMIN_TELEGRAM_ID",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("DATABASE_URL", "postgres://localhost/birthdays?sslmode=disable")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0 * * * *", cfg.CronSpecBirthdayCheck)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_DRIVER", "SQLITE3")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("ADMIN_TELEGRAM_ID", "12345")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DatabaseDriver)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, int64(12345), cfg.AdminTelegramID)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database url", env: map[string]string{"DATABASE_URL": ""}},
		{name: "unknown driver", env: map[string]string{"DATABASE_DRIVER": "mysql"}},
		{name: "bad port", env: map[string]string{"HTTP_PORT": "eighty"}},
		{name: "bad timezone", env: map[string]string{"REMINDER_TIMEZONE": "Mars/Olympus"}},
		{name: "bad admin id", env: map[string]string{"ADMIN_TELEGRAM_ID": "admin"}},
		{name: "token without admin", env: map[string]string{"TELEGRAM_TOKEN": "token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
