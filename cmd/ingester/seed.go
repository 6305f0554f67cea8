package main

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/guidebot/server/guidebot/content"
	"gopkg.in/yaml.v3"
)

// top-level shape of a content seed file
type seedFile struct {
	Items []content.CreateItemRequest `yaml:"items"`
}

// reads and validates a YAML seed file
func LoadSeed(path string) ([]content.CreateItemRequest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	return parseSeed(data)
}

func parseSeed(data []byte) ([]content.CreateItemRequest, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i := range seed.Items {
		item := &seed.Items[i]

		kind, err := content.ParseKind(string(item.Kind))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		item.Kind = kind

		item.Title = strings.TrimSpace(item.Title)
		if item.Title == "" {
			return nil, fmt.Errorf("item %d: title is required", i)
		}

		if strings.TrimSpace(item.Body) == "" {
			return nil, fmt.Errorf("item %d (%s): body is required", i, item.Title)
		}
	}

	return seed.Items, nil
}
