package services

import (
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
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"mismatched lengths", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarity_ScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.5, 0.2}
	scaled := []float32{0.6, 1.0, 0.4}
	assert.InDelta(t, 1, cosineSimilarity(a, scaled), 1e-6)
}

func TestSimilarityMatrix(t *testing.T) {
	embeddings := [][]float32{
		{1, 0},
		{0, 1},
		{1, 1},
	}

	matrix := similarityMatrix(embeddings)
	require.Len(t, matrix, 3)

	for i := range matrix {
		assert.InDelta(t, 1, matrix[i][i], 1e-9, "diagonal is self-similarity")
	}
	assert.InDelta(t, 0, matrix[0][1], 1e-9)
	assert.InDelta(t, matrix[0][2], matrix[2][0], 1e-9, "matrix is symmetric")
	assert.InDelta(t, 0.7071, matrix[0][2], 1e-3)
}

func TestTopK(t *testing.T) {
	row := []float64{1, 0.9, 0.2, 0.7}

	got := topK(row, 0, 2)
	assert.Equal(t, []int{1, 3}, got)
}

func TestTopK_ExcludesSelf(t *testing.T) {
	row := []float64{0.1, 1, 0.5}

	got := topK(row, 1, 5)
	assert.NotContains(t, got, 1)
	assert.Equal(t, []int{2, 0}, got)
}

func TestTopK_TieBreakByIndex(t *testing.T) {
	row := []float64{1, 0.5, 0.5, 0.5}

	got := topK(row, 0, 2)
	assert.Equal(t, []int{1, 2}, got, "equal scores resolve to ascending index")
}

func TestTopK_FewerCandidatesThanK(t *testing.T) {
	row := []float64{1, 0.4}

	got := topK(row, 0, 10)
	assert.Equal(t, []int{1}, got)
}
