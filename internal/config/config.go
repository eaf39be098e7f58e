package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Bot configuration
	Bot BotConfig

	// Record store configuration
	Store StoreConfig

	// Document storage configuration
	Docs DocsConfig

	// Administrative API configuration
	Admin AdminConfig

	// Logging configuration
	Log LogConfig
}

// BotConfig holds Telegram bot settings
type BotConfig struct {
	Token       string
	PollTimeout time.Duration
	Debug       bool
}

// StoreConfig holds user record store settings
type StoreConfig struct {
	DataFile string
	Watch    bool
}

// DocsConfig holds document directory settings
type DocsConfig struct {
	Dir string
}

// AdminConfig holds the administrative HTTP API settings. The API is only
// started when a port is configured.
type AdminConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Bot: BotConfig{
			Token:       getEnv("BOT_TOKEN", ""),
			PollTimeout: getDurationEnv("BOT_POLL_TIMEOUT", 30*time.Second),
			Debug:       getBoolEnv("BOT_DEBUG", false),
		},
		Store: StoreConfig{
			DataFile: getEnv("DATA_FILE", "user_data.json"),
			Watch:    getBoolEnv("DATA_FILE_WATCH", true),
		},
		Docs: DocsConfig{
			Dir: getEnv("DOCS_DIR", "pdfs"),
		},
		Admin: AdminConfig{
			Port:            getEnv("ADMIN_PORT", ""),
			ShutdownTimeout: getDurationEnv("ADMIN_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid. The bot token is checked by
// the serve command itself: administrative commands run without one.
func (c *Config) Validate() error {
	if c.Store.DataFile == "" {
		return fmt.Errorf("DATA_FILE is required")
	}
	if c.Docs.Dir == "" {
		return fmt.Errorf("DOCS_DIR is required")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
