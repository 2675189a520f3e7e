// Package config reads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config captures runtime configuration values for the backend.
type Config struct {
	HTTPAddress     string
	DatabaseURL     string
	JWTSecret       string
	JWTIssuer       string
	SessionTTL      time.Duration
	ShutdownTimeout time.Duration

	KafkaBrokers []string
	OutboxPoll   time.Duration

	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURL  string

	RecommendationURL   string
	RecommendationToken string
}

// Load reads environment variables, applies defaults, and reports every
// missing required value in one error.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "gorun.backend"),
		SessionTTL:      getDurationEnv("SESSION_TTL", 24*time.Hour),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),

		KafkaBrokers: splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		OutboxPoll:   getDurationEnv("OUTBOX_POLL_INTERVAL", 2*time.Second),

		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyRedirectURL:  getEnv("SPOTIFY_REDIRECT_URL", ""),

		RecommendationURL:   getEnv("RECOMMENDATION_URL", ""),
		RecommendationToken: getEnv("RECOMMENDATION_TOKEN", ""),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
