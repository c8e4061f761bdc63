package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`

	// Bot mode configuration: webhook if true, long polling otherwise
	WebhookMode bool   `envconfig:"WEBHOOK_MODE" default:"false"`
	WebhookURL  string `envconfig:"WEBHOOK_URL"`

	// Storage configuration
	SQLitePath string `envconfig:"SQLITE_PATH" default:"snegbot.db"`
	UseMockDB  bool   `envconfig:"USE_MOCK_DB" default:"false"`

	Port   string `envconfig:"PORT" default:"8080"`
	LogDev bool   `envconfig:"LOG_DEV" default:"false"`
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.WebhookMode && cfg.WebhookURL == "" {
		return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
	}

	return &cfg, nil
}
