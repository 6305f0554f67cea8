package content

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

func createArgs(req CreateItemRequest, embedding []float32) []any {
	// initialize empty arrays if nil to avoid null in JSON responses
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	var vec *pgvector.Vector
	if len(embedding) > 0 {
		v := pgvector.NewVector(embedding)
		vec = &v
	}

	return []any{string(req.Kind), req.Title, req.Body, req.URL, tags, vec}
}

func scanItem(row pgx.Row) (*Item, error) {
	var item Item

	err := row.Scan(
		&item.ID,
		&item.Kind,
		&item.Title,
		&item.Body,
		&item.URL,
		&item.Tags,
		&item.HasEmbedding,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func collectItems(rows pgx.Rows) ([]Item, error) {
	defer rows.Close()

	items := []Item{}

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}

		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content items: %w", err)
	}

	return items, nil
}

// reorders items to follow ids, dropping ids that were not found
func orderByIDs(items []Item, ids []string) []Item {
	byID := make(map[string]Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	ordered := make([]Item, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}

	return ordered
}

// returns the text embedded for an item: title, a blank line, then body
func EmbeddingText(title, body string) string {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if title == "" {
		return body
	}

	if body == "" {
		return title
	}

	return title + "\n\n" + body
}
