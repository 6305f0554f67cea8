package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/guidebot/server/internal/config"
	"codeberg.org/guidebot/server/internal/responsecache"
	"codeberg.org/guidebot/server/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// opens the configured cache backend, runs fn against it and releases everything
func withAdmin(ctx context.Context, backendOverride string, fn func(*responsecache.Admin) error) error {
	cfg, err := loadConfig(backendOverride)
	if err != nil {
		return err
	}

	if cfg.CacheBackend == config.CacheBackendMemory {
		return fmt.Errorf("the memory backend lives inside the server process, use the admin API instead")
	}

	var (
		db  *pgxpool.Pool
		rdb *redis.Client
	)

	switch cfg.CacheBackend {
	case config.CacheBackendPostgres:
		db, err = storage.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

	case config.CacheBackendRedis:
		rdb, err = storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
	}

	store, err := responsecache.Open(ctx, cfg, db, rdb)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(responsecache.NewAdmin(responsecache.New(store)))
}

// --backend takes precedence over CACHE_BACKEND from the environment or .env
func loadConfig(backendOverride string) (*config.Config, error) {
	if backendOverride != "" {
		if _, err := config.ParseCacheBackend(backendOverride); err != nil {
			return nil, err
		}

		if err := os.Setenv("CACHE_BACKEND", backendOverride); err != nil {
			return nil, err
		}
	}

	return config.LoadCacheEnvironment()
}
