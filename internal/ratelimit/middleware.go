// Package ratelimit throttles expensive public endpoints per client IP.
package ratelimit

import (
	"fmt"

	"codeberg.org/guidebot/server/internal/errors"
	"codeberg.org/guidebot/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// returns a gin middleware enforcing cfg.Rate per client IP.
// counters live in redis when rdb is non-nil so replicas share them, in memory otherwise
func New(cfg *Config, rdb *redis.Client) (gin.HandlerFunc, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }, nil
	}

	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", cfg.Rate, err)
	}

	store, err := newStore(cfg, rdb)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(handleRateLimited),
		mgin.WithErrorHandler(handleLimiterError),
	), nil
}

func newStore(cfg *Config, rdb *redis.Client) (limiter.Store, error) {
	options := limiter.StoreOptions{Prefix: cfg.Prefix}

	if rdb == nil {
		return memory.NewStoreWithOptions(options), nil
	}

	store, err := sredis.NewStoreWithOptions(rdb, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}

	return store, nil
}

func handleRateLimited(c *gin.Context) {
	logger.Warn("rate limit exceeded", "ip", c.ClientIP(), "path", c.Request.URL.Path)
	errors.TooManyRequests(c, "too many requests. please slow down.")
}

// a broken counter store must not take the endpoint down
func handleLimiterError(c *gin.Context, err error) {
	logger.ErrorErr(err, "rate limiter unavailable", "ip", c.ClientIP())
	c.Next()
}
