package ratelimit

import (
	"os"
	"strings"
)

const (
	// 30 requests per IP per minute
	DefaultRate = "30-M"

	defaultPrefix = "ratelimit:query"
)

// holds per-IP rate limit configuration
type Config struct {
	// whether limiting is active
	Enabled bool

	// limiter rate in "<limit>-<period>" form, e.g. "30-M" or "1000-H"
	Rate string

	// redis key prefix when counters are shared through redis
	Prefix string
}

// returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Rate:    DefaultRate,
		Prefix:  defaultPrefix,
	}
}

// reads QUERY_RATE_LIMIT; "off" disables limiting
func LoadConfig() *Config {
	cfg := DefaultConfig()

	raw := strings.TrimSpace(os.Getenv("QUERY_RATE_LIMIT"))
	switch strings.ToLower(raw) {
	case "":
	case "off", "none", "0":
		cfg.Enabled = false
	default:
		cfg.Rate = raw
	}

	return cfg
}
