// Package config provides the env-driven runtime configuration for the API
// server and the generation worker.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds shared runtime configuration for the API server and worker.
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSL      bool

	// Worker settings
	PollInterval       time.Duration
	StaleJobThreshold  time.Duration
	GenerationAPIURL   string
	GenerationAPIKey   string
	GenerationMaxToken int
	DefaultModel       string
	// ModelOverrides maps an agent type to a model identifier, overriding
	// DefaultModel for that type only.
	ModelOverrides map[string]string
}

// Load reads configuration from environment variables with defaults suitable
// for local development.
func Load() Config {
	return Config{
		ServerPort: GetEnv("SERVER_PORT", "8080"),

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", "postgres"),
		DBName:     GetEnv("DB_NAME", "launchforge"),
		DBSSL:      getEnvBool("DB_SSL", false),

		PollInterval:       getEnvDuration("WORKER_POLL_INTERVAL", 2*time.Second),
		StaleJobThreshold:  getEnvDuration("STALE_JOB_THRESHOLD", 5*time.Minute),
		GenerationAPIURL:   GetEnv("GENERATION_API_URL", "https://api.anthropic.com/v1/messages"),
		GenerationAPIKey:   GetEnv("GENERATION_API_KEY", ""),
		GenerationMaxToken: getEnvInt("GENERATION_MAX_TOKENS", 4096),
		DefaultModel:       GetEnv("DEFAULT_MODEL", "claude-sonnet-4-20250514"),
		ModelOverrides:     parseOverrides(GetEnv("MODEL_OVERRIDES", "")),
	}
}

// GetEnv retrieves the value of an environment variable with a fallback value
// if not set.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// parseOverrides parses a "type=model,type=model" list.
func parseOverrides(raw string) map[string]string {
	overrides := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		overrides[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return overrides
}
