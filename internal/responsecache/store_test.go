package responsecache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newSQLiteTestStore(t *testing.T) Store {
	t.Helper()

	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func newRedisTestStore(t *testing.T) Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "test")
}

func newPostgresTestStore(t *testing.T) Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := NewPostgresStore(pool)
	require.NoError(t, store.Initialize(ctx))

	_, err = store.DeleteAll(ctx)
	require.NoError(t, err)

	return store
}

func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"memory":   func(*testing.T) Store { return NewMemoryStore() },
		"sqlite":   newSQLiteTestStore,
		"redis":    newRedisTestStore,
		"postgres": newPostgresTestStore,
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			runStoreContract(t, newStore)
		})
	}
}

func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("lookup miss", func(t *testing.T) {
		store := newStore(t)

		entry, err := store.Lookup(ctx, "missing", baseTime)
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("upsert creates with hit count 1", func(t *testing.T) {
		store := newStore(t)

		entry, err := store.Upsert(ctx, UpsertParams{
			Fingerprint: "fp1",
			Query:       "How long do I fast?",
			Response:    "Eight hours.",
			TTL:         time.Hour,
		}, baseTime)
		require.NoError(t, err)

		assert.Equal(t, "fp1", entry.Fingerprint)
		assert.Equal(t, "How long do I fast?", entry.Query)
		assert.Equal(t, "Eight hours.", entry.Response)
		assert.Nil(t, entry.Sources)
		assert.EqualValues(t, 1, entry.HitCount)
		assert.True(t, entry.CreatedAt.Equal(baseTime))
		assert.True(t, entry.ExpiresAt.Equal(baseTime.Add(time.Hour)))
	})

	t.Run("lookup increments hit count", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Upsert(ctx, UpsertParams{Fingerprint: "fp", Query: "q", Response: "r", TTL: time.Hour}, baseTime)
		require.NoError(t, err)

		for want := int64(2); want <= 4; want++ {
			entry, err := store.Lookup(ctx, "fp", baseTime.Add(time.Minute))
			require.NoError(t, err)
			require.NotNil(t, entry)
			assert.Equal(t, want, entry.HitCount)
			assert.Equal(t, "r", entry.Response)
			assert.True(t, entry.ExpiresAt.Equal(baseTime.Add(time.Hour)))
		}
	})

	t.Run("upsert refreshes existing entry", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Upsert(ctx, UpsertParams{Fingerprint: "fp", Query: "original", Response: "old", TTL: time.Hour}, baseTime)
		require.NoError(t, err)

		sources := []Source{{ID: "a1", Kind: "article", Title: "Before surgery", Score: 0.91}}
		later := baseTime.Add(30 * time.Minute)

		entry, err := store.Upsert(ctx, UpsertParams{
			Fingerprint: "fp",
			Query:       "rephrased",
			Response:    "new",
			Sources:     sources,
			TTL:         2 * time.Hour,
		}, later)
		require.NoError(t, err)

		assert.EqualValues(t, 2, entry.HitCount)
		assert.Equal(t, "original", entry.Query)
		assert.Equal(t, "new", entry.Response)
		assert.Equal(t, sources, entry.Sources)
		assert.True(t, entry.CreatedAt.Equal(baseTime))
		assert.True(t, entry.ExpiresAt.Equal(later.Add(2*time.Hour)))
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Upsert(ctx, UpsertParams{Fingerprint: "fp", Query: "q", Response: "r", TTL: time.Hour}, baseTime)
		require.NoError(t, err)

		entry, err := store.Lookup(ctx, "fp", baseTime.Add(time.Hour))
		require.NoError(t, err)
		assert.Nil(t, entry, "expiration equal to now counts as expired")

		entries, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.EqualValues(t, 1, entries[0].HitCount, "a miss does not touch the hit count")
	})

	t.Run("delete expired removes only expired", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Upsert(ctx, UpsertParams{Fingerprint: "old", Query: "q1", Response: "r", TTL: time.Hour}, baseTime)
		require.NoError(t, err)
		_, err = store.Upsert(ctx, UpsertParams{Fingerprint: "fresh", Query: "q2", Response: "r", TTL: 3 * time.Hour}, baseTime)
		require.NoError(t, err)

		now := baseTime.Add(2 * time.Hour)

		n, err := store.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		entry, err := store.Lookup(ctx, "fresh", now)
		require.NoError(t, err)
		assert.NotNil(t, entry)

		n, err = store.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})

	t.Run("delete all", func(t *testing.T) {
		store := newStore(t)

		for _, fp := range []string{"a", "b", "c"} {
			_, err := store.Upsert(ctx, UpsertParams{Fingerprint: fp, Query: fp, Response: "r", TTL: time.Hour}, baseTime)
			require.NoError(t, err)
		}

		n, err := store.DeleteAll(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)

		entry, err := store.Lookup(ctx, "a", baseTime)
		require.NoError(t, err)
		assert.Nil(t, entry)

		entries, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("aggregate matches client-side reduction", func(t *testing.T) {
		store := newStore(t)

		agg, ok := store.(Aggregator)
		if !ok {
			t.Skip("store computes no aggregates")
		}

		_, err := store.Upsert(ctx, UpsertParams{Fingerprint: "expired", Query: "q", Response: "r", TTL: time.Hour}, baseTime)
		require.NoError(t, err)
		_, err = store.Upsert(ctx, UpsertParams{Fingerprint: "popular", Query: "q", Response: "r", TTL: 5 * time.Hour}, baseTime)
		require.NoError(t, err)
		_, err = store.Upsert(ctx, UpsertParams{Fingerprint: "single", Query: "q", Response: "r", TTL: 5 * time.Hour}, baseTime)
		require.NoError(t, err)

		_, err = store.Lookup(ctx, "popular", baseTime)
		require.NoError(t, err)

		now := baseTime.Add(2 * time.Hour)

		got, err := agg.Aggregate(ctx, now)
		require.NoError(t, err)

		entries, err := store.List(ctx)
		require.NoError(t, err)

		assert.Equal(t, ComputeStats(entries, now), got)
	})

	t.Run("concurrent upserts are atomic", func(t *testing.T) {
		store := newStore(t)

		const writers = 20
		var wg sync.WaitGroup

		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Upsert(ctx, UpsertParams{Fingerprint: "hot", Query: "q", Response: "r", TTL: time.Hour}, baseTime)
				assert.NoError(t, err)
			}()
		}

		wg.Wait()

		entries, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.EqualValues(t, writers, entries[0].HitCount)
	})
}

func TestRedisStore_KeyLayout(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "")
	ctx := context.Background()

	_, err := store.Upsert(ctx, UpsertParams{Fingerprint: "abc", Query: "q", Response: "r", TTL: time.Hour}, baseTime)
	require.NoError(t, err)

	assert.True(t, mr.Exists("respcache:entry:abc"))
	assert.Equal(t, "1", mr.HGet("respcache:entry:abc", "hit_count"))

	score, err := mr.ZScore("respcache:index", "abc")
	require.NoError(t, err)
	assert.Equal(t, float64(baseTime.Add(time.Hour).UnixMilli()), score)

	// no native expiry; the sweep owns removal
	assert.Zero(t, mr.TTL("respcache:entry:abc"))
}

func TestRedisStore_ListSkipsDanglingIndex(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "t")
	ctx := context.Background()

	_, err := store.Upsert(ctx, UpsertParams{Fingerprint: "kept", Query: "q", Response: "r", TTL: time.Hour}, baseTime)
	require.NoError(t, err)

	_, err = mr.ZAdd("t:index", 1, "gone")
	require.NoError(t, err)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Fingerprint)
}

func TestRedisStore_UnavailableReturnsError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "")
	mr.Close()

	_, err := store.Lookup(context.Background(), "fp", baseTime)
	assert.Error(t, err)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)

	_, err = store.Upsert(ctx, UpsertParams{Fingerprint: "fp", Query: "q", Response: "r", TTL: time.Hour}, baseTime)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	entry, err := reopened.Lookup(ctx, "fp", baseTime)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.EqualValues(t, 2, entry.HitCount)
}
