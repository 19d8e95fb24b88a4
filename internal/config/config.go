package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EngineMemory = "memory"
	EngineRedis  = "redis"
)

type Config struct {
	OWMAPIKey  string
	OWMBaseURL string

	// DefaultCity is used when a request carries no city parameter.
	DefaultCity string

	// AllowedOrigins for CORS; "*" allows any origin.
	AllowedOrigins []string

	Host string
	Port string

	// CacheEngine selects the store backing the response cache.
	CacheEngine string
	RedisAddr   string

	// WarmInterval drives the default-city cache warmer; 0 disables it.
	WarmInterval time.Duration

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment, with a best-effort .env
// load first. Only the provider key has no default; components that need it
// fail per-call when it is absent.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OWMAPIKey:   os.Getenv("OWM_API_KEY"),
		OWMBaseURL:  getenvDefault("OWM_BASE_URL", "https://api.openweathermap.org"),
		DefaultCity: getenvDefault("DEFAULT_CITY", "Bacolod,PH"),
		Host:        os.Getenv("HOST"),
		Port:        getenvDefault("PORT", "8080"),
		CacheEngine: getenvDefault("CACHE_ENGINE", EngineMemory),
		RedisAddr:   getenvDefault("REDIS_ADDR", "localhost:6379"),
	}

	origins := getenvDefault("CORS_ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	warm, err := time.ParseDuration(getenvDefault("WARM_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = warm

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "12s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	if cfg.CacheEngine != EngineMemory && cfg.CacheEngine != EngineRedis {
		return nil, fmt.Errorf("unknown CACHE_ENGINE %q", cfg.CacheEngine)
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
