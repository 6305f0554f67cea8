package admin

import (
	"context"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/responsecache"
)

// administrative view of the response cache
type CacheAdmin interface {
	GetStats(ctx context.Context) (responsecache.Stats, error)
	ClearAll(ctx context.Context) (int64, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

// content writes that invalidate cached answers
type ContentWriter interface {
	Create(ctx context.Context, req content.CreateItemRequest, embedding []float32) (*content.Item, error)
	Delete(ctx context.Context, id string) error
}

type StatsResponse struct {
	Data responsecache.Stats `json:"data"`
}

type DeletedResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

type DeletedResponse struct {
	Data DeletedResult `json:"data"`
}

type ContentResponse struct {
	Data *content.Item `json:"data"`
}
