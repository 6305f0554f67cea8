package responsecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// implements Store and Aggregator using an embedded SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// opens (or creates) the database at path and migrates it
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	// one writer keeps upserts serialized and avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{sqliteCreateTableSQL, sqliteCreateIndexSQL} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate cache db: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Lookup(ctx context.Context, fingerprint string, now time.Time) (*Entry, error) {
	entry, err := scanSQLiteEntry(s.db.QueryRowContext(ctx, sqliteLookupSQL, fingerprint, now.UnixMilli()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up cache entry: %w", err)
	}

	return entry, nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, params UpsertParams, now time.Time) (*Entry, error) {
	sources, err := encodeSources(params.Sources)
	if err != nil {
		return nil, err
	}

	entry, err := scanSQLiteEntry(s.db.QueryRowContext(ctx, sqliteUpsertSQL,
		params.Fingerprint,
		params.Query,
		params.Response,
		sources,
		now.UnixMilli(),
		now.Add(params.TTL).UnixMilli(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cache entry: %w", err)
	}

	return entry, nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, sqliteDeleteAllSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache entries: %w", err)
	}

	return res.RowsAffected()
}

func (s *SQLiteStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, sqliteDeleteExpiredSQL, now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}

	return res.RowsAffected()
}

func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, sqliteListSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		entry, err := scanSQLiteEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}

		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

// computes statistics in a single query
func (s *SQLiteStore) Aggregate(ctx context.Context, now time.Time) (Stats, error) {
	var c statCounts

	err := s.db.QueryRowContext(ctx, sqliteAggregateSQL, now.UnixMilli()).Scan(
		&c.total, &c.totalHits, &c.expired, &c.repeated, &c.liveHits,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to aggregate cache stats: %w", err)
	}

	return c.stats(), nil
}

// closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type sqlScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEntry(row sqlScanner) (*Entry, error) {
	var entry Entry
	var sources sql.NullString
	var createdAt, expiresAt int64

	err := row.Scan(
		&entry.Fingerprint,
		&entry.Query,
		&entry.Response,
		&sources,
		&entry.HitCount,
		&createdAt,
		&expiresAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = time.UnixMilli(createdAt)
	entry.ExpiresAt = time.UnixMilli(expiresAt)

	if sources.Valid {
		if entry.Sources, err = decodeSources(&sources.String); err != nil {
			return nil, err
		}
	}

	return &entry, nil
}
