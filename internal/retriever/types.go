package retriever

import (
	"context"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/llm"
	"codeberg.org/guidebot/server/internal/responsecache"
	"codeberg.org/guidebot/server/internal/similarity"
)

// the slice of the content repository retrieval needs
type ContentStore interface {
	ListCandidates(ctx context.Context, kinds []content.Kind) ([]similarity.Candidate, error)
	GetMany(ctx context.Context, ids []string) ([]content.Item, error)
}

type Client struct {
	cache     *responsecache.Cache
	embedder  llm.Embedder
	generator llm.TextGenerator // nil means extractive answers
	content   ContentStore
	topK      int
	minScore  float64
}

type RetrieverConfig struct {
	TopK     int
	MinScore float64
}

type Answer struct {
	Query       string                 `json:"query"`
	Fingerprint string                 `json:"fingerprint"`
	Response    string                 `json:"response"`
	Sources     []responsecache.Source `json:"sources"`
	Cached      bool                   `json:"cached"`
	HitCount    int64                  `json:"hit_count"`
}
