// Package content stores the articles, FAQs and videos answers are built from.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/guidebot/server/internal/logger"
	"codeberg.org/guidebot/server/internal/similarity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

var (
	ErrNotFound    = errors.New("content item not found")
	ErrInvalidKind = errors.New("invalid content kind")
)

// validates a kind; empty input is rejected
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindArticle, KindFAQ, KindVideo:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, raw)
	}
}

// validates a list of kinds, dropping duplicates
func ParseKinds(raw []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(raw))
	seen := make(map[Kind]bool, len(raw))

	for _, r := range raw {
		k, err := ParseKind(r)
		if err != nil {
			return nil, err
		}

		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}

	return kinds, nil
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the pgvector extension, table and indexes
func (r *Repository) Initialize(ctx context.Context) error {
	for _, stmt := range []string{queryCreateExtension, queryCreateTable, queryCreateKindIndex} {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize content schema: %w", err)
		}
	}

	return nil
}

// inserts one item; embedding may be nil
func (r *Repository) Create(ctx context.Context, req CreateItemRequest, embedding []float32) (*Item, error) {
	if _, err := ParseKind(string(req.Kind)); err != nil {
		return nil, err
	}

	item, err := scanItem(r.db.QueryRow(ctx, queryCreate, createArgs(req, embedding)...))
	if err != nil {
		return nil, fmt.Errorf("failed to create content item: %w", err)
	}

	return item, nil
}

// inserts items in a single transaction; embeddings may be nil or match reqs by index
func (r *Repository) CreateBatch(ctx context.Context, reqs []CreateItemRequest, embeddings [][]float32) (int, error) {
	if embeddings != nil && len(embeddings) != len(reqs) {
		return 0, fmt.Errorf("items and embeddings length mismatch")
	}

	if len(reqs) == 0 {
		return 0, nil
	}

	for i, req := range reqs {
		if _, err := ParseKind(string(req.Kind)); err != nil {
			return 0, fmt.Errorf("item %d: %w", i, err)
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for i, req := range reqs {
		var embedding []float32
		if embeddings != nil {
			embedding = embeddings[i]
		}

		batch.Queue(queryCreate, createArgs(req, embedding)...)
	}

	br := tx.SendBatch(ctx, batch)

	for i := 0; i < len(reqs); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return 0, fmt.Errorf("failed to insert item %d: %w", i, err)
		}
	}

	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(reqs), nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Item, error) {
	item, err := scanItem(r.db.QueryRow(ctx, queryGet, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}

	return item, nil
}

// returns a page of items, newest first, plus the total; an empty kind lists all
func (r *Repository) List(ctx context.Context, kind Kind, limit, offset int) ([]Item, int, error) {
	// get total count first
	var total int
	if err := r.db.QueryRow(ctx, queryCount, string(kind)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count content items: %w", err)
	}

	rows, err := r.db.Query(ctx, queryList, string(kind), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list content items: %w", err)
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, queryDelete, id)
	if err != nil {
		return fmt.Errorf("failed to delete content item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// removes every item, returns how many were deleted
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, queryDeleteAll)
	if err != nil {
		return 0, fmt.Errorf("failed to clear content items: %w", err)
	}

	return tag.RowsAffected(), nil
}

// returns id and vector for every item of the given kinds (all kinds when empty).
// items without an embedding come back with a nil vector.
func (r *Repository) ListCandidates(ctx context.Context, kinds []Kind) ([]similarity.Candidate, error) {
	kindArgs := make([]string, 0, len(kinds))
	for _, k := range kinds {
		kindArgs = append(kindArgs, string(k))
	}

	rows, err := r.db.Query(ctx, queryListCandidates, kindArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []similarity.Candidate

	for rows.Next() {
		var id string
		var vec *pgvector.Vector

		if err := rows.Scan(&id, &vec); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}

		c := similarity.Candidate{ID: id}
		if vec != nil {
			c.Vector = vec.Slice()
		}

		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}

	return candidates, nil
}

// loads items by id, returned in the order of ids; unknown ids are skipped
func (r *Repository) GetMany(ctx context.Context, ids []string) ([]Item, error) {
	if len(ids) == 0 {
		return []Item{}, nil
	}

	rows, err := r.db.Query(ctx, queryGetMany, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load content items: %w", err)
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, err
	}

	return orderByIDs(items, ids), nil
}

// returns up to limit items that still need an embedding
func (r *Repository) ListWithoutEmbedding(ctx context.Context, limit int) ([]Item, error) {
	rows, err := r.db.Query(ctx, queryListWithoutEmbedding, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unembedded items: %w", err)
	}

	return collectItems(rows)
}

func (r *Repository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	tag, err := r.db.Exec(ctx, queryUpdateEmbedding, id, pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
