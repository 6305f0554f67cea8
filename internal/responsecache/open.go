package responsecache

import (
	"context"
	"fmt"

	"codeberg.org/guidebot/server/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// builds the store selected by cfg.CacheBackend.
// db is required for postgres and rdb for redis; both stay owned by the caller.
func Open(ctx context.Context, cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client) (Store, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendPostgres, "":
		if db == nil {
			return nil, fmt.Errorf("postgres cache backend requires a database pool")
		}

		store := NewPostgresStore(db)
		if err := store.Initialize(ctx); err != nil {
			return nil, err
		}

		return store, nil

	case config.CacheBackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis cache backend requires a redis client")
		}

		return NewRedisStore(rdb, ""), nil

	case config.CacheBackendSQLite:
		return NewSQLiteStore(ctx, cfg.SQLitePath)

	case config.CacheBackendMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}
