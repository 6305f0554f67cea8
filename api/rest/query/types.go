package query

import (
	"context"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/retriever"
)

type Answerer interface {
	Answer(ctx context.Context, query string, kinds []content.Kind) (*retriever.Answer, error)
}

type Request struct {
	Query string   `json:"query" binding:"required,max=2000"`
	Kinds []string `json:"kinds,omitempty"`
}

type Response struct {
	Data *retriever.Answer `json:"data"`
}
