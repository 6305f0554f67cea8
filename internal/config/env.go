package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCacheTTL             = 24 * time.Hour
	DefaultCacheCleanupInterval = time.Hour
	DefaultRetrievalTopK        = 5
	DefaultSQLitePath           = "./guidebot-cache.db"
	DefaultPort                 = "8080"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	environment := os.Getenv("ENVIRONMENT")
	port := os.Getenv("PORT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	backend, err := ParseCacheBackend(os.Getenv("CACHE_BACKEND"))
	if err != nil {
		return nil, err
	}

	redisURL := os.Getenv("REDIS_URL")
	if backend == CacheBackendRedis && redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required when CACHE_BACKEND=redis")
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = DefaultSQLitePath
	}

	if environment == "" {
		environment = "development"
	}

	if port == "" {
		port = DefaultPort
	}

	return &Config{
		DatabaseURL:  databaseURL,
		RedisURL:     redisURL,
		OpenAIKey:    openaiKey,
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		Environment:  environment,
		Port:         port,
		CacheBackend: backend,
		SQLitePath:   sqlitePath,
	}, nil
}

// loads only what the response cache needs, for maintenance tools.
// DATABASE_URL is required for the postgres backend, REDIS_URL for redis.
func LoadCacheEnvironment() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	backend, err := ParseCacheBackend(os.Getenv("CACHE_BACKEND"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		Environment:  os.Getenv("ENVIRONMENT"),
		CacheBackend: backend,
		SQLitePath:   os.Getenv("SQLITE_PATH"),
	}

	switch {
	case backend == CacheBackendPostgres && cfg.DatabaseURL == "":
		return nil, fmt.Errorf("DATABASE_URL environment variable is required when CACHE_BACKEND=postgres")
	case backend == CacheBackendRedis && cfg.RedisURL == "":
		return nil, fmt.Errorf("REDIS_URL environment variable is required when CACHE_BACKEND=redis")
	}

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = DefaultSQLitePath
	}

	return cfg, nil
}

// validates a CACHE_BACKEND value, empty means postgres
func ParseCacheBackend(raw string) (CacheBackend, error) {
	switch CacheBackend(strings.ToLower(strings.TrimSpace(raw))) {
	case "", CacheBackendPostgres:
		return CacheBackendPostgres, nil
	case CacheBackendRedis:
		return CacheBackendRedis, nil
	case CacheBackendSQLite:
		return CacheBackendSQLite, nil
	case CacheBackendMemory:
		return CacheBackendMemory, nil
	default:
		return "", fmt.Errorf("unsupported CACHE_BACKEND %q", raw)
	}
}

// returns the response cache TTL, re-read from CACHE_TTL_HOURS on every call
func CacheTTL() time.Duration {
	return ParseCacheTTL(os.Getenv("CACHE_TTL_HOURS"))
}

// unset, non-numeric or non-positive values fall back to 24 hours
func ParseCacheTTL(raw string) time.Duration {
	hours, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || hours <= 0 {
		return DefaultCacheTTL
	}

	return time.Duration(hours) * time.Hour
}

// returns the interval between expired-entry sweeps
func CacheCleanupInterval() time.Duration {
	raw := strings.TrimSpace(os.Getenv("CACHE_CLEANUP_INTERVAL"))
	if raw == "" {
		return DefaultCacheCleanupInterval
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return DefaultCacheCleanupInterval
	}

	return d
}

// returns how many ranked items feed an answer
func RetrievalTopK() int {
	k, err := strconv.Atoi(strings.TrimSpace(os.Getenv("RETRIEVAL_TOP_K")))
	if err != nil || k <= 0 {
		return DefaultRetrievalTopK
	}

	return k
}

// returns the minimum similarity score a ranked item needs, default 0
func RetrievalMinScore() float64 {
	raw := strings.TrimSpace(os.Getenv("RETRIEVAL_MIN_SCORE"))
	if raw == "" {
		return 0
	}

	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return score
}
