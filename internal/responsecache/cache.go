// Package responsecache stores generated answers keyed by query fingerprint.
//
// The cache is an optimization layer: every backing store failure is logged,
// counted and turned into a safe default (nil entry, zero count, zero stats),
// so callers never fail because the cache is unavailable.
//
// Get is not read-only. A live hit increments the entry's hit count.
package responsecache

import (
	"context"
	"time"

	"codeberg.org/guidebot/server/internal/config"
	"codeberg.org/guidebot/server/internal/logger"
)

const (
	opGet     = "get"
	opPut     = "put"
	opClear   = "invalidate_all"
	opCleanup = "cleanup_expired"
	opStats   = "stats"
)

type Cache struct {
	store   Store
	metrics *Metrics
	ttl     func() time.Duration
	now     func() time.Time
}

type Option func(*Cache)

// records cache activity on m
func WithMetrics(m *Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// overrides how the TTL is resolved; the default reads CACHE_TTL_HOURS per call
func WithTTL(ttl func() time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// overrides the clock
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// creates a new cache over store
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		ttl:   config.CacheTTL,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// returns the live entry for fingerprint and bumps its hit count, nil on miss
func (c *Cache) Get(ctx context.Context, fingerprint string) *Entry {
	entry, err := c.store.Lookup(ctx, fingerprint, c.now())
	if err != nil {
		c.storeFailed(err, opGet, "fingerprint", fingerprint)
		return nil
	}

	if entry == nil {
		c.metrics.miss()
		return nil
	}

	c.metrics.hit()
	return entry
}

// inserts or refreshes the entry for fingerprint, nil if the store failed
func (c *Cache) Put(ctx context.Context, fingerprint, query, response string, sources []Source) *Entry {
	ttl := c.ttl()
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}

	entry, err := c.store.Upsert(ctx, UpsertParams{
		Fingerprint: fingerprint,
		Query:       query,
		Response:    response,
		Sources:     sources,
		TTL:         ttl,
	}, c.now())

	if err != nil {
		c.storeFailed(err, opPut, "fingerprint", fingerprint)
		return nil
	}

	c.metrics.write()
	return entry
}

// deletes every entry and returns how many were removed
func (c *Cache) InvalidateAll(ctx context.Context) int64 {
	n, err := c.store.DeleteAll(ctx)
	if err != nil {
		c.storeFailed(err, opClear)
		return 0
	}

	c.metrics.evicted("invalidated", n)
	logger.Info("response cache invalidated", "deleted", n)

	return n
}

// deletes expired entries and returns how many were removed
func (c *Cache) CleanupExpired(ctx context.Context) int64 {
	n, err := c.store.DeleteExpired(ctx, c.now())
	if err != nil {
		c.storeFailed(err, opCleanup)
		return 0
	}

	c.metrics.evicted("expired", n)
	return n
}

// returns current statistics, zeroed if the store failed
func (c *Cache) Stats(ctx context.Context) Stats {
	now := c.now()

	if agg, ok := c.store.(Aggregator); ok {
		stats, err := agg.Aggregate(ctx, now)
		if err != nil {
			c.storeFailed(err, opStats)
			return Stats{}
		}

		return stats
	}

	entries, err := c.store.List(ctx)
	if err != nil {
		c.storeFailed(err, opStats)
		return Stats{}
	}

	return ComputeStats(entries, now)
}

func (c *Cache) storeFailed(err error, operation string, args ...any) {
	c.metrics.storeError(operation)

	args = append([]any{"operation", operation}, args...)
	logger.ErrorErr(err, "response cache store failure", args...)
}
