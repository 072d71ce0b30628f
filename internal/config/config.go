package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// NASA POWER API access. The public DEMO_KEY default is enough for the
	// daily point endpoint.
	NASAAPIKey  string
	PowerAPIURL string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// RefreshInterval controls how often the global map cache is rebuilt.
	RefreshInterval time.Duration

	// In-memory region cache retention.
	StoreMaxHistory int           // max number of statuses per region (0 = unlimited)
	StoreMaxAge     time.Duration // max age before a cached status expires

	// StaticDir is served at the root path when it exists.
	StaticDir string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.NASAAPIKey = getenvDefault("NASA_API_KEY", "DEMO_KEY")
	cfg.PowerAPIURL = os.Getenv("POWER_API_URL")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Map cache refresh: default 30 minutes.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "30m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	// Cache retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 48)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "1h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.StaticDir = getenvDefault("STATIC_DIR", "./web")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
