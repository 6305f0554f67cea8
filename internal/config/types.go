package config

type CacheBackend string

const (
	CacheBackendPostgres CacheBackend = "postgres"
	CacheBackendRedis    CacheBackend = "redis"
	CacheBackendSQLite   CacheBackend = "sqlite"
	CacheBackendMemory   CacheBackend = "memory"
)

type Config struct {
	DatabaseURL  string
	RedisURL     string
	OpenAIKey    string
	AnthropicKey string
	JWTSecret    string
	Environment  string
	Port         string
	CacheBackend CacheBackend
	SQLitePath   string
}

type Flags struct {
	Path  string
	Clear bool
}

type EmbedFlags struct {
	BatchSize int
}
