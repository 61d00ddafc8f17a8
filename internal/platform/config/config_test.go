package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "HUB_ADDR", "OCR_PROVIDER_ORDER", "DATABASE_URL", "DB_HOST", "REDIS_URL", "KAFKA_BROKERS", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, DefaultOCROrder, cfg.Providers.OCROrder)
	assert.Equal(t, "https://api.digitap.ai", cfg.Providers.DigitapBaseURL)
	assert.Empty(t, cfg.Postgres.URL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Breaker.Cooldown)
	assert.Zero(t, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.Server.IsDevelopment())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("OCR_PROVIDER_ORDER", "google_vision, finanalyz_ocr")
	t.Setenv("API_KEYS", "k1,,k2 ")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USERNAME", "hub")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "logs")
	t.Setenv("BREAKER_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "120")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Server.Addr)
	assert.Equal(t, []string{"GOOGLE_VISION", "FINANALYZ_OCR"}, cfg.Providers.OCROrder)
	assert.Equal(t, []string{"k1", "k2"}, cfg.Server.APIKeys)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "postgres://hub:pw@db:5432/logs?sslmode=disable", cfg.Postgres.URL)
	assert.True(t, cfg.Breaker.Enabled)
	assert.Equal(t, RateLimitConfig{Requests: 120, Window: 30 * time.Second}, cfg.RateLimit)
}

func TestFromEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("REDIS_POOL_SIZE", "many")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_POOL_SIZE")
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ZOOP_APP_ID=from-file\n"), 0o600))
	t.Setenv("ZOOP_APP_ID", "")
	require.NoError(t, os.Unsetenv("ZOOP_APP_ID"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Providers.ZoopAppID)
	require.NoError(t, os.Unsetenv("ZOOP_APP_ID"))
}

func TestLoadIgnoresMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
