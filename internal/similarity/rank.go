package similarity

import (
	"fmt"
	"sort"
)

// scores candidates against query and returns them best first.
// candidates without a vector are skipped. limit > 0 truncates the result.
func RankCandidates(query []float32, candidates []Candidate, limit int) ([]Result, error) {
	results := make([]Result, 0, len(candidates))

	for _, c := range candidates {
		if len(c.Vector) == 0 {
			continue
		}

		score, err := CosineSimilarity(query, c.Vector)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", c.ID, err)
		}

		results = append(results, Result{ID: c.ID, Score: score})
	}

	// ties keep input order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}
