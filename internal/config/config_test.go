package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	resetViper(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	resetViper(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, time.Hour, cfg.Auth.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshExpiry)
	assert.Equal(t, 10, cfg.Worker.Concurrency)
	assert.Equal(t, "critical=6,default=3,low=1", cfg.Worker.Queues)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestEnvOverrides(t *testing.T) {
	resetViper(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORKER_CONCURRENCY", "4")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Worker.Concurrency)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
}
