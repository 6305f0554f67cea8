package responsecache

import (
	"encoding/json"
	"fmt"
)

// encodes sources for a nullable JSON column; nil means NULL
func encodeSources(sources []Source) (*string, error) {
	if sources == nil {
		return nil, nil
	}

	data, err := json.Marshal(sources)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sources: %w", err)
	}

	s := string(data)
	return &s, nil
}

func decodeSources(raw *string) ([]Source, error) {
	if raw == nil || *raw == "" || *raw == "null" {
		return nil, nil
	}

	var sources []Source
	if err := json.Unmarshal([]byte(*raw), &sources); err != nil {
		return nil, fmt.Errorf("failed to decode sources: %w", err)
	}

	return sources, nil
}
