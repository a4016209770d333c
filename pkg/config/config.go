// Package config holds runtime settings for the phishing detection
// service. Everything is configurable via PHISHDETECT_-prefixed
// environment variables and falls back to defaults that work standalone
// (no Redis, no external blacklist feed).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds global settings for the detection service.
type Config struct {
	// === Server ===
	Port string // HTTP listen port (default: "8080")

	// === Persistence ===
	RedisAddr      string // Redis address, empty = in-memory learned state
	RedisDB        int    // Redis database number (default: 0)
	RedisKeyPrefix string // Key namespace (default: "phishdetect:")

	// === Lexicon ===
	LexiconPath string // Optional YAML file appended to the built-in lexicon

	// === Enrichment ===
	BlacklistURL       string        // External threat-feed endpoint, empty = disabled
	BlacklistTimeout   time.Duration // Per-lookup timeout (default: 3s)
	MaxEnrichments     int           // Concurrent URL enrichments per request (default: 8)
	EnrichmentCapacity int           // Global cap on in-flight blacklist lookups (default: 32)
}

// NewDefaultConfig creates a Config from the environment with defaults
// applied.
func NewDefaultConfig() *Config {
	return &Config{
		Port: GetEnv("PHISHDETECT_PORT", "8080"),

		RedisAddr:      GetEnv("PHISHDETECT_REDIS_ADDR", ""),
		RedisDB:        GetEnvInt("PHISHDETECT_REDIS_DB", 0),
		RedisKeyPrefix: GetEnv("PHISHDETECT_KEY_PREFIX", "phishdetect:"),

		LexiconPath: GetEnv("PHISHDETECT_LEXICON_PATH", ""),

		BlacklistURL:       GetEnv("PHISHDETECT_BLACKLIST_URL", ""),
		BlacklistTimeout:   time.Duration(GetEnvInt("PHISHDETECT_BLACKLIST_TIMEOUT_MS", 3000)) * time.Millisecond,
		MaxEnrichments:     clampInt(GetEnvInt("PHISHDETECT_MAX_ENRICHMENTS", 8), 1, 64),
		EnrichmentCapacity: clampInt(GetEnvInt("PHISHDETECT_ENRICHMENT_CAPACITY", 32), 1, 1024),
	}
}

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a
// default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a
// default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a
// default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvSlice returns a comma-separated list from an environment variable
// or a default value.
func GetEnvSlice(key string, defaultValue []string) []string {
	if v := os.Getenv(key); v != "" {
		var parts []string
		for _, p := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
