package mcpserver

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/erraggy/smdconv/converter"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Conversion defaults.
	Method  string
	LevelMA float64
	Common  bool
	Random  bool

	// Input limits.
	MaxStudies    int
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SMDCONV_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Method:        envMethod("SMDCONV_METHOD", string(converter.MethodHasselbladHedges)),
		LevelMA:       envLevel("SMDCONV_LEVEL_MA", 0.95),
		Common:        envBool("SMDCONV_COMMON", true),
		Random:        envBool("SMDCONV_RANDOM", true),
		MaxStudies:    envInt("SMDCONV_MAX_STUDIES", 10000),
		MaxInlineSize: int64(envInt("SMDCONV_MAX_INLINE_SIZE", 10*1024*1024)),
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

// envLevel reads a confidence level, which must lie strictly between 0 and 1.
func envLevel(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 || f >= 1 {
		slog.Warn("invalid level env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

// envMethod reads a conversion method and stores its canonical code.
func envMethod(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	m, err := converter.ParseMethod(v)
	if err != nil {
		slog.Warn("invalid method env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return string(m)
}
