package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL   string
	JWTSecret     string
	Port          string
	TokenTTL      time.Duration
	ZipAPIBaseURL string
	RateLimitZip  RateLimitConfig
	ZipCacheSize  int
	ZipCacheTTL   time.Duration
	FileStoreRoot string
	PhoneRegion   string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret"),
		Port:          getEnv("PORT", "8080"),
		TokenTTL:      parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		ZipAPIBaseURL: getEnv("ZIP_API_BASE_URL", "https://api.zippopotam.us"),
		ZipCacheSize:  parseInt(getEnv("ZIP_CACHE_SIZE", "512"), 512),
		ZipCacheTTL:   parseDuration(getEnv("ZIP_CACHE_TTL", "24h"), 24*time.Hour),
		FileStoreRoot: getEnv("FILE_STORE_ROOT", "./uploads"),
		PhoneRegion:   getEnv("PHONE_REGION", "US"),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_ZIP", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_ZIP value: %w", err)
	}
	cfg.RateLimitZip = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(input string, fallback int) int {
	n, err := strconv.Atoi(input)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
