package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultWatchInterval is the poll interval for live snapshot subscriptions
// when WATCH_INTERVAL is not set.
const DefaultWatchInterval = 5 * time.Second

type Config struct {
	SupabaseURL   string
	SupabaseKey   string
	TelegramToken string
	WatchInterval time.Duration
}

func LoadConfig() (*Config, error) {
	// A .env file is optional; deployments set plain environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		WatchInterval: DefaultWatchInterval,
	}

	if raw := os.Getenv("WATCH_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid WATCH_INTERVAL %q: %w", raw, err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("WATCH_INTERVAL must be positive, got %q", raw)
		}
		cfg.WatchInterval = interval
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, errors.New("SUPABASE_URL and SUPABASE_KEY are required")
	}
	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}
