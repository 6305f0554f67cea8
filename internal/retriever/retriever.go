package retriever

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/fingerprint"
	"codeberg.org/guidebot/server/internal/llm"
	"codeberg.org/guidebot/server/internal/logger"
	"codeberg.org/guidebot/server/internal/responsecache"
	"codeberg.org/guidebot/server/internal/similarity"
)

var ErrEmptyQuery = errors.New("query is empty")

// creates a new retriever client with configuration from environment
func NewClient(
	cache *responsecache.Cache,
	embedder llm.Embedder,
	generator llm.TextGenerator,
	store ContentStore,
) *Client {
	return NewClientWithConfig(cache, embedder, generator, store, loadRetrieverConfig())
}

// creates a new retriever client with explicit configuration
func NewClientWithConfig(
	cache *responsecache.Cache,
	embedder llm.Embedder,
	generator llm.TextGenerator,
	store ContentStore,
	config *RetrieverConfig,
) *Client {
	topK := config.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	return &Client{
		cache:     cache,
		embedder:  embedder,
		generator: generator,
		content:   store,
		topK:      topK,
		minScore:  config.MinScore,
	}
}

// answers query from cache, or by ranking content and caching the result.
// kinds narrows the content searched; empty means all kinds.
func (c *Client) Answer(ctx context.Context, query string, kinds []content.Kind) (*Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	fp := fingerprint.Fingerprint(cacheKey(query, kinds))

	if entry := c.cache.Get(ctx, fp); entry != nil {
		return &Answer{
			Query:       query,
			Fingerprint: fp,
			Response:    entry.Response,
			Sources:     nonNilSources(entry.Sources),
			Cached:      true,
			HitCount:    entry.HitCount,
		}, nil
	}

	items, scores, err := c.Retrieve(ctx, query, kinds)
	if err != nil {
		return nil, err
	}

	response := c.respond(ctx, query, items)
	sources := buildSources(items, scores)

	answer := &Answer{
		Query:       query,
		Fingerprint: fp,
		Response:    response,
		Sources:     sources,
	}

	if entry := c.cache.Put(ctx, fp, query, response, sources); entry != nil {
		answer.HitCount = entry.HitCount
	}

	return answer, nil
}

// embeds query and returns the best matching items with their scores, best first
func (c *Client) Retrieve(ctx context.Context, query string, kinds []content.Kind) ([]content.Item, map[string]float64, error) {
	embedding, err := c.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	candidates, err := c.content.ListCandidates(ctx, kinds)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	ranked, err := similarity.RankCandidates(embedding, candidates, c.topK)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to rank candidates: %w", err)
	}

	ids := make([]string, 0, len(ranked))
	scores := make(map[string]float64, len(ranked))

	for _, r := range ranked {
		if r.Score < c.minScore {
			break // sorted descending
		}

		ids = append(ids, r.ID)
		scores[r.ID] = r.Score
	}

	items, err := c.content.GetMany(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ranked content: %w", err)
	}

	return items, scores, nil
}

// phrases the answer with the generator, falling back to an extractive answer
func (c *Client) respond(ctx context.Context, query string, items []content.Item) string {
	if len(items) == 0 {
		return noResultsResponse
	}

	if c.generator == nil {
		return extractiveAnswer(items)
	}

	resp, err := c.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: buildSystemPrompt(),
		Messages: []llm.Message{
			{Role: "user", Content: buildUserPrompt(query, items)},
		},
	})
	if err != nil {
		// don't fail the answer, the retrieved content is still useful
		logger.Warn("answer generation failed, using extractive answer", "error", err)
		return extractiveAnswer(items)
	}

	return resp.Text
}
