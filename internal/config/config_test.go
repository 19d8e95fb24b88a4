package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OWM_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.OWMAPIKey)
	assert.Equal(t, "Bacolod,PH", cfg.DefaultCity)
	assert.Equal(t, EngineMemory, cfg.CacheEngine)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 12*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Duration(0), cfg.WarmInterval)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEFAULT_CITY", "Cebu,PH")
	t.Setenv("CACHE_ENGINE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://dash.example.com")
	t.Setenv("WARM_INTERVAL", "5m")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Cebu,PH", cfg.DefaultCity)
	assert.Equal(t, EngineRedis, cfg.CacheEngine)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://dash.example.com"},
		cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.WarmInterval)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	t.Setenv("CACHE_ENGINE", "memcached")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_ENGINE")
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("WARM_INTERVAL", "soon")
	_, err := Load()
	require.Error(t, err)
}
