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

// embeds items stored without a vector, flags.BatchSize at a time, until none remain
func BackfillEmbeddings(ctx context.Context, db *pgxpool.Pool, embedder llm.Embedder, flags config.EmbedFlags) error {
	repo := content.NewRepository(db)
	total := 0

	for {
		items, err := repo.ListWithoutEmbedding(ctx, flags.BatchSize)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			break
		}

		texts := make([]string, len(items))
		for i, item := range items {
			texts[i] = content.EmbeddingText(item.Title, item.Body)
		}

		embeddings, err := embedder.GenerateEmbeddings(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to generate embeddings: %w", err)
		}

		if err := checkDimensions(embeddings); err != nil {
			return err
		}

		for i, item := range items {
			if err := repo.UpdateEmbedding(ctx, item.ID, embeddings[i]); err != nil {
				return err
			}
		}

		total += len(items)
		logger.Info("embedded items", "batch", len(items), "total", total)
	}

	logger.Info("embedding backfill complete", "embedded", total)

	return nil
}
