package responsecache

import "context"

// read/aggregate facade over a Cache for operators
type Admin struct {
	cache *Cache
}

// creates a new admin facade
func NewAdmin(cache *Cache) *Admin {
	return &Admin{cache: cache}
}

// returns cache statistics; errors only when ctx is already done
func (a *Admin) GetStats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	return a.cache.Stats(ctx), nil
}

// invalidates every entry; errors only when ctx is already done
func (a *Admin) ClearAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return a.cache.InvalidateAll(ctx), nil
}

// runs an expired-entry sweep on demand
func (a *Admin) CleanupExpired(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return a.cache.CleanupExpired(ctx), nil
}
