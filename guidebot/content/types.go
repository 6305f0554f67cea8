package content

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

type Kind string

const (
	KindArticle Kind = "article"
	KindFAQ     Kind = "faq"
	KindVideo   Kind = "video"
)

type Item struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	URL          string    `json:"url,omitempty"`
	Tags         []string  `json:"tags"`
	Embedding    []float32 `json:"-"`
	HasEmbedding bool      `json:"has_embedding"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateItemRequest struct {
	Kind  Kind     `json:"kind" yaml:"kind" binding:"required"`
	Title string   `json:"title" yaml:"title" binding:"required,max=300"`
	Body  string   `json:"body" yaml:"body" binding:"required"`
	URL   string   `json:"url" yaml:"url" binding:"omitempty,url"`
	Tags  []string `json:"tags" yaml:"tags"`
}
