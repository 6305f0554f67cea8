package responsecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// implements Store and Aggregator using PostgreSQL
type PostgresStore struct {
	db *pgxpool.Pool
}

// creates a new PostgreSQL store; the pool stays owned by the caller
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// creates the response_cache table and its expiry index
func (s *PostgresStore) Initialize(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, pgCreateTableSQL); err != nil {
		return fmt.Errorf("failed to create response_cache table: %w", err)
	}

	if _, err := s.db.Exec(ctx, pgCreateIndexSQL); err != nil {
		return fmt.Errorf("failed to create response_cache index: %w", err)
	}

	return nil
}

func (s *PostgresStore) Lookup(ctx context.Context, fingerprint string, now time.Time) (*Entry, error) {
	entry, err := scanEntry(s.db.QueryRow(ctx, pgLookupSQL, fingerprint, now))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up cache entry: %w", err)
	}

	return entry, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, params UpsertParams, now time.Time) (*Entry, error) {
	sources, err := encodeSources(params.Sources)
	if err != nil {
		return nil, err
	}

	entry, err := scanEntry(s.db.QueryRow(ctx, pgUpsertSQL,
		params.Fingerprint,
		params.Query,
		params.Response,
		sources,
		now,
		now.Add(params.TTL),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cache entry: %w", err)
	}

	return entry, nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, pgDeleteAllSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache entries: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (s *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, pgDeleteExpiredSQL, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query(ctx, pgListSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}

		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

// computes statistics in a single query
func (s *PostgresStore) Aggregate(ctx context.Context, now time.Time) (Stats, error) {
	var c statCounts

	err := s.db.QueryRow(ctx, pgAggregateSQL, now).Scan(
		&c.total, &c.totalHits, &c.expired, &c.repeated, &c.liveHits,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to aggregate cache stats: %w", err)
	}

	return c.stats(), nil
}

func (s *PostgresStore) Close() error {
	return nil
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var entry Entry
	var sources *string

	err := row.Scan(
		&entry.Fingerprint,
		&entry.Query,
		&entry.Response,
		&sources,
		&entry.HitCount,
		&entry.CreatedAt,
		&entry.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	if entry.Sources, err = decodeSources(sources); err != nil {
		return nil, err
	}

	return &entry, nil
}
