package similarity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, -2}, []float32{-1, 2}, -1},
		{"scaled", []float32{1, 1}, []float32{10, 10}, 1},
		{"zero left", []float32{0, 0, 0}, []float32{1, 2, 3}, 0},
		{"zero right", []float32{4, 5}, []float32{0, 0}, 0},
		{"both zero", []float32{0}, []float32{0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosineSimilarity_ZeroVectorIsExactlyZero(t *testing.T) {
	got, err := CosineSimilarity([]float32{0, 0}, []float32{0.3, -0.7})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCosineSimilarity_InvalidInput(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = CosineSimilarity(nil, []float32{1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = CosineSimilarity([]float32{1}, []float32{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCosineSimilarity_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(64)
		a := make([]float32, n)
		b := make([]float32, n)

		for j := range a {
			a[j] = rng.Float32()*2 - 1
			b[j] = rng.Float32()*2 - 1
		}

		got, err := CosineSimilarity(a, b)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, -1-1e-9)
		assert.LessOrEqual(t, got, 1+1e-9)

		self, err := CosineSimilarity(a, a)
		require.NoError(t, err)

		if self != 0 {
			assert.InDelta(t, 1, self, 1e-6)
		}
	}
}

func TestRankCandidates(t *testing.T) {
	candidates := []Candidate{
		{ID: "A", Vector: []float32{1, 0}},
		{ID: "B", Vector: []float32{0, 1}},
		{ID: "C"},
	}

	got, err := RankCandidates([]float32{1, 0}, candidates, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].ID)
	assert.InDelta(t, 1, got[0].Score, 1e-9)
	assert.Equal(t, "B", got[1].ID)
	assert.InDelta(t, 0, got[1].Score, 1e-9)

	got, err = RankCandidates([]float32{1, 0}, candidates, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ID)
}

func TestRankCandidates_Empty(t *testing.T) {
	got, err := RankCandidates([]float32{1, 0}, nil, 3)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = RankCandidates([]float32{1, 0}, []Candidate{{ID: "x"}, {ID: "y", Vector: []float32{}}}, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankCandidates_StableOnTies(t *testing.T) {
	candidates := []Candidate{
		{ID: "first", Vector: []float32{2, 0}},
		{ID: "low", Vector: []float32{0, 1}},
		{ID: "second", Vector: []float32{5, 0}},
		{ID: "third", Vector: []float32{1, 0}},
	}

	got, err := RankCandidates([]float32{1, 0}, candidates, 0)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}

	assert.Equal(t, []string{"first", "second", "third", "low"}, ids)
}

func TestRankCandidates_LimitLargerThanResults(t *testing.T) {
	got, err := RankCandidates([]float32{1}, []Candidate{{ID: "a", Vector: []float32{1}}}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRankCandidates_DimensionMismatch(t *testing.T) {
	_, err := RankCandidates([]float32{1, 0}, []Candidate{{ID: "a", Vector: []float32{1, 0, 0}}}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
