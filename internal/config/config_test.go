package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobpulse")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "0 10 * * *", cfg.AlertMorningCron)
	assert.Equal(t, "0 22 * * *", cfg.AlertEveningCron)
	assert.Equal(t, 90*time.Second, cfg.AlertStartupDelay)
	assert.Equal(t, 2*time.Second, cfg.AlertSendInterval)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.True(t, cfg.EmailEnabled)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobpulse")
	t.Setenv("API_PORT", "9001")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALERT_SEND_INTERVAL_MS", "250")
	t.Setenv("EMAIL_ENABLED", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.jobpulse.io, https://admin.jobpulse.io")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.APIPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 250*time.Millisecond, cfg.AlertSendInterval)
	assert.False(t, cfg.EmailEnabled)
	assert.Equal(t, []string{"https://app.jobpulse.io", "https://admin.jobpulse.io"}, cfg.CORSAllowOrigins)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobpulse")
	t.Setenv("API_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.APIPort)
}
