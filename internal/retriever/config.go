package retriever

import "codeberg.org/guidebot/server/internal/config"

// loadRetrieverConfig loads configuration from environment variables
func loadRetrieverConfig() *RetrieverConfig {
	return &RetrieverConfig{
		TopK:     config.RetrievalTopK(),
		MinScore: config.RetrievalMinScore(),
	}
}
