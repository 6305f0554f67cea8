package similarity

import "errors"

// returned for empty or mismatched vectors
var ErrInvalidInput = errors.New("invalid input")

// a content item eligible for ranking; a nil or empty Vector means not yet embedded
type Candidate struct {
	ID     string
	Vector []float32
}

type Result struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}
