package responsecache

import (
	"context"
	"time"
)

// a content item an answer was built from
type Source struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Title string  `json:"title"`
	URL   string  `json:"url,omitempty"`
	Score float64 `json:"score"`
}

// a cached answer keyed by query fingerprint
type Entry struct {
	Fingerprint string    `json:"fingerprint"`
	Query       string    `json:"query"`
	Response    string    `json:"response"`
	Sources     []Source  `json:"sources,omitempty"`
	HitCount    int64     `json:"hitCount"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// an entry is expired once its expiration is not strictly after now.
// lookups, sweeps and stats all use this predicate.
func (e *Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// point-in-time cache statistics
type Stats struct {
	TotalEntries    int64   `json:"totalEntries"`
	TotalHits       int64   `json:"totalHits"`
	ExpiredEntries  int64   `json:"expiredEntries"`
	HitRate         float64 `json:"hitRate"`
	AverageHitCount float64 `json:"averageHitCount"`
}

type UpsertParams struct {
	Fingerprint string
	Query       string
	Response    string
	Sources     []Source
	TTL         time.Duration
}

// durable backing store for the response cache.
// Lookup returns (nil, nil) on a miss and increments the hit count on a live hit.
// Upsert must be atomic per fingerprint.
type Store interface {
	Lookup(ctx context.Context, fingerprint string, now time.Time) (*Entry, error)
	Upsert(ctx context.Context, params UpsertParams, now time.Time) (*Entry, error)
	DeleteAll(ctx context.Context) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	List(ctx context.Context) ([]Entry, error)
	Close() error
}

// implemented by stores that can compute statistics themselves
type Aggregator interface {
	Aggregate(ctx context.Context, now time.Time) (Stats, error)
}
