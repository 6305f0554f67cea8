package responsecache

// postgres
const (
	pgCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS response_cache (
			id BIGSERIAL PRIMARY KEY,
			query_hash TEXT NOT NULL UNIQUE,
			query_text TEXT NOT NULL,
			response TEXT NOT NULL,
			sources JSONB,
			hit_count INTEGER NOT NULL DEFAULT 1 CHECK (hit_count >= 0),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL
		)
	`

	pgCreateIndexSQL = `
		CREATE INDEX IF NOT EXISTS idx_response_cache_expires_at ON response_cache(expires_at)
	`

	pgLookupSQL = `
		UPDATE response_cache
		SET hit_count = hit_count + 1
		WHERE query_hash = $1 AND expires_at > $2
		RETURNING query_hash, query_text, response, sources::text, hit_count, created_at, expires_at
	`

	pgUpsertSQL = `
		INSERT INTO response_cache (query_hash, query_text, response, sources, hit_count, created_at, expires_at)
		VALUES ($1, $2, $3, $4::jsonb, 1, $5, $6)
		ON CONFLICT (query_hash) DO UPDATE SET
			response = EXCLUDED.response,
			sources = EXCLUDED.sources,
			expires_at = EXCLUDED.expires_at,
			hit_count = response_cache.hit_count + 1
		RETURNING query_hash, query_text, response, sources::text, hit_count, created_at, expires_at
	`

	pgDeleteAllSQL = `DELETE FROM response_cache`

	pgDeleteExpiredSQL = `DELETE FROM response_cache WHERE expires_at <= $1`

	pgListSQL = `
		SELECT query_hash, query_text, response, sources::text, hit_count, created_at, expires_at
		FROM response_cache
		ORDER BY created_at
	`

	pgAggregateSQL = `
		SELECT
			COUNT(*),
			COALESCE(SUM(hit_count), 0),
			COUNT(*) FILTER (WHERE expires_at <= $1),
			COUNT(*) FILTER (WHERE expires_at > $1 AND hit_count > 1),
			COALESCE(SUM(hit_count) FILTER (WHERE expires_at > $1), 0)
		FROM response_cache
	`
)

// sqlite, times stored as unix milliseconds
const (
	sqliteCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS response_cache (
			query_hash TEXT PRIMARY KEY,
			query_text TEXT NOT NULL,
			response TEXT NOT NULL,
			sources TEXT,
			hit_count INTEGER NOT NULL DEFAULT 1 CHECK (hit_count >= 0),
			created_at INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		)
	`

	sqliteCreateIndexSQL = `
		CREATE INDEX IF NOT EXISTS idx_response_cache_expires_at ON response_cache(expires_at)
	`

	sqliteLookupSQL = `
		UPDATE response_cache
		SET hit_count = hit_count + 1
		WHERE query_hash = ? AND expires_at > ?
		RETURNING query_hash, query_text, response, sources, hit_count, created_at, expires_at
	`

	sqliteUpsertSQL = `
		INSERT INTO response_cache (query_hash, query_text, response, sources, hit_count, created_at, expires_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT (query_hash) DO UPDATE SET
			response = excluded.response,
			sources = excluded.sources,
			expires_at = excluded.expires_at,
			hit_count = response_cache.hit_count + 1
		RETURNING query_hash, query_text, response, sources, hit_count, created_at, expires_at
	`

	sqliteDeleteAllSQL = `DELETE FROM response_cache`

	sqliteDeleteExpiredSQL = `DELETE FROM response_cache WHERE expires_at <= ?`

	sqliteListSQL = `
		SELECT query_hash, query_text, response, sources, hit_count, created_at, expires_at
		FROM response_cache
		ORDER BY created_at
	`

	sqliteAggregateSQL = `
		SELECT
			COUNT(*),
			COALESCE(SUM(hit_count), 0),
			COALESCE(SUM(CASE WHEN expires_at <= ?1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN expires_at > ?1 AND hit_count > 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN expires_at > ?1 THEN hit_count ELSE 0 END), 0)
		FROM response_cache
	`
)
