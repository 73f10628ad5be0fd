package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// APIBase is the remote asset API root, e.g. "https://host/api".
	APIBase string
	// PublicURL is the externally reachable base of this dashboard, used
	// for shareable asset links and QR payloads. Optional; when empty the
	// request host is used.
	PublicURL string

	ListenAddr string

	SessionSecret string
	SessionDB     string
	SessionTTL    time.Duration

	EnableMetrics bool
}

func Load() *Config {
	config := &Config{
		APIBase:       getEnv("API_BASE", ""),
		PublicURL:     getEnv("PUBLIC_URL", ""),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionDB:     getEnv("SESSION_DB", "dashboard.db"),
		SessionTTL:    7 * 24 * time.Hour,
		EnableMetrics: os.Getenv("ENABLE_METRICS") == "true",
	}

	// Parse session TTL from environment if provided
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil {
			config.SessionTTL = ttl
		}
	}

	return config
}

// LoadAndValidate loads the configuration and fails fast on anything the
// dashboard cannot run without.
func LoadAndValidate() (*Config, error) {
	cfg := Load()

	if cfg.APIBase == "" {
		return nil, errors.New("API_BASE is required")
	}
	if !strings.HasPrefix(cfg.APIBase, "http://") && !strings.HasPrefix(cfg.APIBase, "https://") {
		return nil, fmt.Errorf("API_BASE must be an absolute http(s) URL, got %q", cfg.APIBase)
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	if len(cfg.SessionSecret) < 32 {
		return nil, errors.New("SESSION_SECRET must be at least 32 characters")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("SESSION_TTL must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
