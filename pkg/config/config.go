package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	Port        string
	Environment string

	EnforceHTTPS bool

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessExpiry     time.Duration
	RefreshExpiry    time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:        envOr("PORT", "8080"),
		Environment: envOr("APP_ENV", "development"),

		EnforceHTTPS: envBool("ENFORCE_HTTPS", false),

		RateLimitEnabled: envBool("RATE_LIMIT_ENABLED", true),
		RateLimitConfigs: map[string]RateLimitConfig{
			"/auth/register": {
				Requests: 5,
				Window:   time.Minute,
			},
			"/auth/login": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/auth/refresh": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/projects": {
				Requests: 100,
				Window:   time.Minute,
			},
			"/tasks": {
				Requests: 100,
				Window:   time.Minute,
			},
		},

		JWTAccessSecret:  envOr("JWT_ACCESS_SECRET", "dev-access-secret"),
		JWTRefreshSecret: envOr("JWT_REFRESH_SECRET", "dev-refresh-secret"),
		AccessExpiry:     envDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		RefreshExpiry:    envDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}

	return parsed
}
