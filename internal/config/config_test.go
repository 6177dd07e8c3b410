package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("WATCH_INTERVAL", "")
}

func TestLoadConfig(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://project.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "anon-key", cfg.SupabaseKey)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, DefaultWatchInterval, cfg.WatchInterval)
}

func TestLoadConfigWatchInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("WATCH_INTERVAL", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.WatchInterval)
}

func TestLoadConfigInvalidWatchInterval(t *testing.T) {
	setRequired(t)

	t.Run("unparseable", func(t *testing.T) {
		t.Setenv("WATCH_INTERVAL", "soon")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("non-positive", func(t *testing.T) {
		t.Setenv("WATCH_INTERVAL", "-5s")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestLoadConfigMissingVars(t *testing.T) {
	t.Run("missing supabase settings", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SUPABASE_URL", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("missing telegram token", func(t *testing.T) {
		setRequired(t)
		t.Setenv("TELEGRAM_TOKEN", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
