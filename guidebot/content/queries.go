package content

const (
	queryCreateExtension = `CREATE EXTENSION IF NOT EXISTS vector`

	queryCreateTable = `
		CREATE TABLE IF NOT EXISTS content_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			kind TEXT NOT NULL CHECK (kind IN ('article', 'faq', 'video')),
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			tags TEXT[] NOT NULL DEFAULT '{}',
			embedding vector(1536),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`

	queryCreateKindIndex = `
		CREATE INDEX IF NOT EXISTS idx_content_items_kind ON content_items(kind)
	`

	queryCreate = `
		INSERT INTO content_items (kind, title, body, url, tags, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, kind, title, body, url, tags, embedding IS NOT NULL, created_at, updated_at
	`

	queryGet = `
		SELECT id::text, kind, title, body, url, tags, embedding IS NOT NULL, created_at, updated_at
		FROM content_items
		WHERE id = $1
	`

	queryCount = `
		SELECT COUNT(*)
		FROM content_items
		WHERE ($1 = '' OR kind = $1)
	`

	queryList = `
		SELECT id::text, kind, title, body, url, tags, embedding IS NOT NULL, created_at, updated_at
		FROM content_items
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	queryDelete = `DELETE FROM content_items WHERE id = $1`

	queryDeleteAll = `DELETE FROM content_items`

	queryListCandidates = `
		SELECT id::text, embedding
		FROM content_items
		WHERE cardinality($1::text[]) = 0 OR kind = ANY($1::text[])
		ORDER BY created_at, id
	`

	queryGetMany = `
		SELECT id::text, kind, title, body, url, tags, embedding IS NOT NULL, created_at, updated_at
		FROM content_items
		WHERE id = ANY($1::uuid[])
	`

	queryListWithoutEmbedding = `
		SELECT id::text, kind, title, body, url, tags, embedding IS NOT NULL, created_at, updated_at
		FROM content_items
		WHERE embedding IS NULL
		ORDER BY created_at, id
		LIMIT $1
	`

	queryUpdateEmbedding = `
		UPDATE content_items
		SET embedding = $2, updated_at = NOW()
		WHERE id = $1
	`
)
