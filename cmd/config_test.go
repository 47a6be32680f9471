package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CATALOG_URL", "http://catalog:8081")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, int64(10000), cfg.ShippingFee)
	assert.Equal(t, 72*time.Hour, cfg.CartTTL)
	assert.Equal(t, 10*time.Minute, cfg.AwaitingDriverAfter)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=foodorder sslmode=disable", cfg.DSN())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")
	t.Setenv("SHIPPING_FEE", "7500")
	t.Setenv("AWAITING_DRIVER_AFTER", "5m")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(7500), cfg.ShippingFee)
	assert.Equal(t, 5*time.Minute, cfg.AwaitingDriverAfter)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadConfig_ReportsEveryProblem(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CATALOG_URL", "")
	t.Setenv("SHIPPING_FEE", "ten")
	t.Setenv("CART_TTL", "forever")

	_, err := LoadConfig("")

	require.Error(t, err)
	assert.ErrorContains(t, err, "JWT_SECRET is required")
	assert.ErrorContains(t, err, "CATALOG_URL is required")
	assert.ErrorContains(t, err, "SHIPPING_FEE")
	assert.ErrorContains(t, err, "CART_TTL")
}

func TestLoadConfig_ShippingFeeMustBePositive(t *testing.T) {
	for _, fee := range []string{"0", "-500"} {
		t.Run(fee, func(t *testing.T) {
			setRequired(t)
			t.Setenv("SHIPPING_FEE", fee)

			_, err := LoadConfig("")

			require.Error(t, err)
			assert.ErrorContains(t, err, "SHIPPING_FEE must be positive")
		})
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_URL=http://from-file\nHTTP_PORT=9090\n"), 0o600))
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CATALOG_URL", "")
	require.NoError(t, os.Unsetenv("CATALOG_URL"))
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.HTTPPort)
	assert.Equal(t, "http://from-file", cfg.CatalogURL)
}

func TestLoadConfig_MissingEnvFileIsFine(t *testing.T) {
	setRequired(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}
