// Package similarity ranks embedded content against a query vector.
package similarity

import (
	"fmt"
	"math"
)

// computes dot(a, b) / (|a| * |b|), accumulated in float64.
// either norm being zero yields exactly 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("%w: empty vector", ErrInvalidInput)
	}

	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: vector length mismatch (%d vs %d)", ErrInvalidInput, len(a), len(b))
	}

	var dot, normA, normB float64

	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
