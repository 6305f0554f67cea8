package main

import (
	"context"
	"fmt"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/config"
	"codeberg.org/guidebot/server/internal/logger"
	"codeberg.org/guidebot/server/internal/ratelimit"
	"codeberg.org/guidebot/server/internal/responsecache"
	"codeberg.org/guidebot/server/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := storage.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// redis is optional unless it backs the cache; it also shares rate limit counters
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	cleanup := func() {
		if rdb != nil {
			rdb.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		}
		db.Close()
	}

	contentRepo := content.NewRepository(db)
	if err := contentRepo.Initialize(ctx); err != nil {
		cleanup()
		return nil, err
	}

	cacheStore, err := responsecache.Open(ctx, cfg, db, rdb)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to open response cache: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cache := responsecache.New(cacheStore, responsecache.WithMetrics(responsecache.NewMetrics(registry)))

	logger.Info("response cache initialized",
		"backend", cfg.CacheBackend,
		"ttl", config.CacheTTL().String(),
	)

	services, err := InitializeServices(cache, contentRepo)
	if err != nil {
		cacheStore.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		cleanup()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	rateLimitConfig := ratelimit.LoadConfig()
	rateLimit, err := ratelimit.New(rateLimitConfig, rdb)
	if err != nil {
		cacheStore.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		cleanup()
		return nil, err
	}

	logger.Info("query rate limit configured",
		"enabled", rateLimitConfig.Enabled,
		"rate", rateLimitConfig.Rate,
		"shared", rdb != nil,
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:             db,
		redis:          rdb,
		config:         cfg,
		contentRepo:    contentRepo,
		cacheStore:     cacheStore,
		cache:          cache,
		cleanupService: responsecache.NewCleanupService(cache, config.CacheCleanupInterval()),
		registry:       registry,
		rateLimit:      rateLimit,
		services:       services,
		router:         router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// releases the cache store and connections in reverse order of creation
func (s *Server) Close() {
	if err := s.cacheStore.Close(); err != nil {
		logger.ErrorErr(err, "failed to close response cache store")
	}

	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	s.db.Close()
}
