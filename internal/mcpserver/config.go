package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds the MCP server defaults, read once from APISTIC_*
// environment variables.
type serverConfig struct {
	// Cache settings.
	CacheEnabled    bool
	CacheMaxSize    int
	CacheFileTTL    time.Duration
	CacheURLTTL     time.Duration
	CacheContentTTL time.Duration

	// Result paging.
	ListLimit int
	MaxLimit  int

	// Analysis defaults.
	Concurrency int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

var cfg = loadConfig()

// loadConfig reads APISTIC_* environment variables. Invalid values are
// logged and replaced by the default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:    envBool("APISTIC_CACHE_ENABLED", true),
		CacheMaxSize:    envInt("APISTIC_CACHE_MAX_SIZE", 16),
		CacheFileTTL:    envDuration("APISTIC_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:     envDuration("APISTIC_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL: envDuration("APISTIC_CACHE_CONTENT_TTL", 15*time.Minute),
		ListLimit:       envInt("APISTIC_LIST_LIMIT", 50),
		MaxLimit:        envInt("APISTIC_MAX_LIMIT", 500),
		Concurrency:     envInt("APISTIC_CONCURRENCY", 1),
		MaxInlineSize:   envInt64("APISTIC_MAX_INLINE_SIZE", 10*1024*1024),
		AllowPrivateIPs: envBool("APISTIC_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
