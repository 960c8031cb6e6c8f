package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "CONFIG_PATH", "DATABASE_URL", "HTTP_PORT", "HTTP_SHUTDOWN_TIMEOUT", "ENV", "RABBITMQ_QUEUE", "DB_NAME", "CART_IDLE_TTL", "CART_SWEEP_INTERVAL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":5000", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "order_events", cfg.RabbitMQ.Queue)
	assert.Equal(t, 24*time.Hour, cfg.Cart.IdleTTL)
	assert.Equal(t, 10*time.Minute, cfg.Cart.SweepInterval)
	assert.Contains(t, cfg.Postgres.DSN(), "dbname=ecommerce")
}

func TestPostgresDSN_PrefersURL(t *testing.T) {
	p := Postgres{URL: "postgres://u:p@db:5432/shop", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@db:5432/shop", p.DSN())
}

func TestHTTPAddr(t *testing.T) {
	assert.Equal(t, ":8080", HTTP{Port: "8080"}.Addr())
	assert.Equal(t, ":8080", HTTP{Port: ":8080"}.Addr())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "debug", Env: "dev"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(LoggerConfig{Level: "loud", Env: "prod"})
	assert.Error(t, err)
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
