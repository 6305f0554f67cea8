package content

import (
	"context"

	"codeberg.org/guidebot/server/api/rest/pagination"
	"codeberg.org/guidebot/server/guidebot/content"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ContentReader interface {
	Get(ctx context.Context, id string) (*content.Item, error)
	List(ctx context.Context, kind content.Kind, limit, offset int) ([]content.Item, int, error)
}

type ListResponse struct {
	Data       []content.Item  `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

type ItemResponse struct {
	Data *content.Item `json:"data"`
}
