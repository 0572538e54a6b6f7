// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/alertctl.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Redis (optional) — when set, the alert tracker is shared across
	// instances instead of in-process
	RedisURL string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Alert engine
	AlertMorningCron  string        // cron spec for the morning run
	AlertEveningCron  string        // cron spec for the evening run
	AlertStartupDelay time.Duration // one-time delayed run after boot
	AlertSendInterval time.Duration // spacing between email sends

	// SMTP
	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	EmailEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		RedisURL: envOr("REDIS_URL", ""),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		AlertMorningCron:  envOr("ALERT_MORNING_CRON", "0 10 * * *"),
		AlertEveningCron:  envOr("ALERT_EVENING_CRON", "0 22 * * *"),
		AlertStartupDelay: time.Duration(envInt("ALERT_STARTUP_DELAY_SECONDS", 90)) * time.Second,
		AlertSendInterval: time.Duration(envInt("ALERT_SEND_INTERVAL_MS", 2000)) * time.Millisecond,

		SMTPServer:   envOr("SMTP_SERVER", ""),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUser:     envOr("SMTP_USER", ""),
		SMTPPass:     envOr("SMTP_PASS", ""),
		SMTPFrom:     envOr("SMTP_FROM", ""),
		EmailEnabled: envBool("EMAIL_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
