package config

import (
	"os"
	"strconv"
)

// Backends accepted for STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds newsboard configuration loaded from environment variables.
type Config struct {
	Backend       string
	DBPath        string
	TraceCache    bool
	OutputJSON    bool
	StressWorkers int
	StressOps     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Backend:       envOrDefault("STORE_BACKEND", BackendMemory),
		DBPath:        envOrDefault("DB_PATH", ":memory:"),
		TraceCache:    envOrDefaultBool("TRACE_CACHE", true),
		OutputJSON:    envOrDefaultBool("OUTPUT_JSON", false),
		StressWorkers: envOrDefaultInt("STRESS_WORKERS", 8),
		StressOps:     envOrDefaultInt("STRESS_OPS", 200),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
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

func envOrDefaultBool(key string, fallback bool) bool {
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
