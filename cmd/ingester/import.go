package main

import (
	"context"
	"fmt"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/config"
	"codeberg.org/guidebot/server/internal/llm"
	"codeberg.org/guidebot/server/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// items embedded per API call during import
const importBatchSize = 50

// loads a seed file, embeds every item and stores them in one transaction
func ImportContent(ctx context.Context, db *pgxpool.Pool, embedder llm.Embedder, flags config.Flags) error {
	logger.Info("starting content import", "path", flags.Path, "clear", flags.Clear)

	items, err := LoadSeed(flags.Path)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return fmt.Errorf("no content items in %s", flags.Path)
	}

	logger.Info("loaded seed file", "items", len(items))

	repo := content.NewRepository(db)
	if err := repo.Initialize(ctx); err != nil {
		return err
	}

	embeddings, err := embedItems(ctx, embedder, items, importBatchSize)
	if err != nil {
		return err
	}

	if flags.Clear {
		deleted, err := repo.DeleteAll(ctx)
		if err != nil {
			return err
		}

		logger.Info("cleared existing content", "deleted", deleted)
	}

	inserted, err := repo.CreateBatch(ctx, items, embeddings)
	if err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}

	logger.Info("content import complete", "inserted", inserted)

	return nil
}

// embeds items batchSize at a time, preserving order
func embedItems(ctx context.Context, embedder llm.Embedder, items []content.CreateItemRequest, batchSize int) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(items))

	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))

		texts := make([]string, 0, end-start)
		for _, item := range items[start:end] {
			texts = append(texts, content.EmbeddingText(item.Title, item.Body))
		}

		batch, err := embedder.GenerateEmbeddings(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed items %d-%d: %w", start, end-1, err)
		}

		if err := checkDimensions(batch); err != nil {
			return nil, err
		}

		embeddings = append(embeddings, batch...)

		logger.Info("embedded batch", "from", start, "to", end-1, "total", len(items))
	}

	return embeddings, nil
}

// the content column is vector(EmbeddingDimension)
func checkDimensions(embeddings [][]float32) error {
	want := llm.EmbeddingDimension()

	for i, embedding := range embeddings {
		if len(embedding) != want {
			return fmt.Errorf("embedding %d has %d dimensions, expected %d", i, len(embedding), want)
		}
	}

	return nil
}
