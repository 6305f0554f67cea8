package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/guidebot/server/internal/config"
	"codeberg.org/guidebot/server/internal/llm"
	"codeberg.org/guidebot/server/internal/logger"
	"codeberg.org/guidebot/server/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  import    - load content items from a YAML seed file and embed them")
		fmt.Println("  embed     - backfill embeddings for items stored without one")
		fmt.Println("\nOptions:")
		fmt.Println("  --path <path>  - seed file to import (import)")
		fmt.Println("  --clear        - delete existing content before importing (import)")
		fmt.Println("  --batch <n>    - items embedded per API call (embed)")
		os.Exit(1)
	}

	command := os.Args[1]

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	ctx := context.Background()
	db, err := storage.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	defer db.Close()

	logger.Info("connected to database")

	embedder := llm.NewOpenAIEmbedder(llm.OpenAIConfig{
		APIKey: cfg.OpenAIKey,
	})

	switch command {
	case "import":
		flags := config.ParseImportFlags()
		if err := ImportContent(ctx, db, embedder, flags); err != nil {
			logger.Fatal("failed to import content", "error", err)
		}

	case "embed":
		flags := config.ParseEmbedFlags()
		if err := BackfillEmbeddings(ctx, db, embedder, flags); err != nil {
			logger.Fatal("failed to backfill embeddings", "error", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}

	// cached answers were built from the previous content
	if err := invalidateResponseCache(ctx, cfg, db); err != nil {
		logger.Fatal("content updated but response cache was not cleared", "error", err)
	}
}
