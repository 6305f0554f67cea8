package responsecache

import (
	"context"
	"time"

	"codeberg.org/guidebot/server/internal/logger"
)

// periodically sweeps expired entries
type CleanupService struct {
	cache    *Cache
	interval time.Duration
}

// creates a new cleanup service
func NewCleanupService(cache *Cache, interval time.Duration) *CleanupService {
	return &CleanupService{
		cache:    cache,
		interval: interval,
	}
}

// begins the cleanup loop, returns when ctx is done
func (s *CleanupService) Start(ctx context.Context) {
	logger.Info("starting response cache cleanup service", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("response cache cleanup service stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CleanupService) sweep(ctx context.Context) {
	deleted := s.cache.CleanupExpired(ctx)
	if deleted == 0 {
		return
	}

	logger.Info("removed expired cache entries", "count", deleted)
}
