package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "NATS_URL", "NATS_QUEUE_GROUP", "HTTP_ADDRESS", "HTTP_ALLOWED_ORIGINS",
		"HTTP_REQUESTS_PER_SECOND", "JWT_SECRET", "METRICS_ADDRESS", "ENV", "LOG_LEVEL",
		"WAGER_TEE_BOX", "WAGER_AUTO_POST_DELAY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
postgres:
  dsn: postgres://file/db
nats:
  url: nats://file:4222
http:
  address: ":9090"
  allowed_origins: ["https://club.example"]
wager:
  default_tee_box: White
  auto_post_delay: 15m
`)
	clearEnv(t)
	t.Setenv("NATS_URL", "nats://env:4222")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/db", cfg.Postgres.DSN)
	assert.Equal(t, "nats://env:4222", cfg.NATS.URL, "env wins over file")
	assert.Equal(t, "wager-bot", cfg.NATS.QueueGroup)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, []string{"https://club.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 10, cfg.HTTP.Burst)
	assert.Equal(t, "White", cfg.Wager.DefaultTeeBox)
	assert.Equal(t, 15*time.Minute, cfg.Wager.AutoPostDelay)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
}

func TestLoadConfigBadDelay(t *testing.T) {
	path := writeConfig(t, "postgres:\n  dsn: x\n")
	clearEnv(t)
	t.Setenv("WAGER_AUTO_POST_DELAY", "soon")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "WAGER_AUTO_POST_DELAY")
}

func TestLoadConfigFromEnv(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	clearEnv(t)

	t.Run("requires database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("NATS_URL", "nats://env:4222")
		_, err := LoadConfig(missing)
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("env only", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env/db")
		t.Setenv("NATS_URL", "nats://env:4222")
		t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
		t.Setenv("WAGER_AUTO_POST_DELAY", "30m")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := LoadConfig(missing)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
		assert.Equal(t, 30*time.Minute, cfg.Wager.AutoPostDelay)
		assert.Equal(t, "debug", ToObsConfig(cfg).LogLevel)
		assert.Equal(t, ":8080", cfg.HTTP.Address)
	})
}
