package main

import (
	"fmt"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/llm"
	"codeberg.org/guidebot/server/internal/logger"
	"codeberg.org/guidebot/server/internal/responsecache"
	"codeberg.org/guidebot/server/internal/retriever"
)

// creates and configures all service clients
func InitializeServices(cache *responsecache.Cache, contentRepo *content.Repository) (*Services, error) {
	llmClient, err := llm.NewLLM()
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	generator := llmClient.Generator()
	if generator == nil {
		logger.Warn("ANTHROPIC_API_KEY not set, answers will be extractive")
	}

	retrieverClient := retriever.NewClient(cache, llmClient, generator, contentRepo)

	return &Services{
		LLM:       llmClient,
		Retriever: retrieverClient,
	}, nil
}
