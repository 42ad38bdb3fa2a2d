package config

import (
	"fmt"
	"net/url"
	"os"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultWebhookURL    = "https://nes.ubiquo.io/hooks/sanextodwt847rgeu1cygt1fuy"
	DefaultChannel       = "soporteubiquo"
	DefaultUsername      = "Facturas-Bot"
	DefaultIconURL       = "https://valorantinfo.com/images/us/bunny-hop-spray_valorant_gif_3789.gif"
	DefaultCronSpecDaily = "0 10 * * *"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	WebhookURL     string
	Channel        string
	Username       string
	IconURL        string
	WebhookTimeout time.Duration // 0 waits for the webhook indefinitely
	Location       *time.Location
	CronSpecDaily  string // When the external runner fires; used to preview reminder dates
	LogLevel       string
	Environment    string
}

// Load reads configuration from environment variables and .env file (if present).
// Every value has a default, so an empty environment yields the stock reminder setup.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		WebhookURL:    envOrDefault("WEBHOOK_URL", DefaultWebhookURL),
		Channel:       envOrDefault("WEBHOOK_CHANNEL", DefaultChannel),
		Username:      envOrDefault("WEBHOOK_USERNAME", DefaultUsername),
		IconURL:       envOrDefault("WEBHOOK_ICON_URL", DefaultIconURL),
		CronSpecDaily: envOrDefault("CRON_SPEC_DAILY", DefaultCronSpecDaily),
		LogLevel:      strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		Environment:   strings.ToLower(envOrDefault("ENVIRONMENT", "development")),
		Location:      time.Local,
	}

	u, err := url.Parse(cfg.WebhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid WEBHOOK_URL %q", cfg.WebhookURL)
	}

	if raw := os.Getenv("WEBHOOK_TIMEOUT"); raw != "" {
		cfg.WebhookTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid WEBHOOK_TIMEOUT: %w", err)
		}
		if cfg.WebhookTimeout < 0 {
			return nil, fmt.Errorf("invalid WEBHOOK_TIMEOUT: %s is negative", raw)
		}
	}

	if tz := os.Getenv("REMINDER_TIMEZONE"); tz != "" {
		cfg.Location, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("unknown REMINDER_TIMEZONE: %w", err)
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
