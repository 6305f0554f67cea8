package main

import (
	"context"
	"fmt"

	"codeberg.org/guidebot/server/internal/config"
	"codeberg.org/guidebot/server/internal/logger"
	"codeberg.org/guidebot/server/internal/responsecache"
	"codeberg.org/guidebot/server/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// drops every cached answer from the configured backend
func invalidateResponseCache(ctx context.Context, cfg *config.Config, db *pgxpool.Pool) error {
	if cfg.CacheBackend == config.CacheBackendMemory {
		logger.Warn("memory cache lives inside the server process, clear it with DELETE /api/v1/admin/cache")
		return nil
	}

	var rdb *redis.Client

	if cfg.CacheBackend == config.CacheBackendRedis {
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()

		rdb = client
	}

	store, err := responsecache.Open(ctx, cfg, db, rdb)
	if err != nil {
		return fmt.Errorf("failed to open response cache: %w", err)
	}
	defer store.Close()

	deleted, err := responsecache.NewAdmin(responsecache.New(store)).ClearAll(ctx)
	if err != nil {
		return err
	}

	logger.Info("response cache invalidated", "deleted", deleted)

	return nil
}
