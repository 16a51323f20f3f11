// Package config loads runtime settings from the environment, with a
// .env overlay for local development.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the traingate server.
//
// Fields:
//   - HTTPAddr: bind address for the HTTP endpoint.
//   - JWTSecret: HMAC secret for signing tokens (HS256). Required; never
//     logged.
//   - AccessTTL / RefreshTTL: token lifetimes.
//   - DatabaseDSN: sqlite path (or DSN) for the user store.
//   - RedisURL: deny-list and event stream backend. Empty selects the
//     in-memory deny-list, for local development only.
//   - CORSOrigins: allowed browser origins.
type Config struct {
	HTTPAddr    string
	JWTSecret   string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	DatabaseDSN string
	RedisURL    string
	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":9000"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AccessTTL:   15 * time.Minute,
		RefreshTTL:  7 * 24 * time.Hour,
		DatabaseDSN: envOr("DATABASE_DSN", "traingate.db"),
		RedisURL:    os.Getenv("REDIS_URL"),
		CORSOrigins: splitList(envOr("CORS_ORIGINS", "http://localhost:5173")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
		}
		cfg.AccessTTL = ttl
	}

	if v := os.Getenv("REFRESH_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REFRESH_TOKEN_TTL: %w", err)
		}
		cfg.RefreshTTL = ttl
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
