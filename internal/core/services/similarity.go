package services

import (
	"math"
	"sort"
)

// cosineSimilarity computes the normalised dot product of two vectors,
// in [-1, 1]. Mismatched or zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// similarityMatrix computes the dense all-pairs cosine similarity.
// O(n²·d); acceptable for corpora of thousands of quotes.
func similarityMatrix(embeddings [][]float32) [][]float64 {
	n := len(embeddings)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			score := cosineSimilarity(embeddings[i], embeddings[j])
			matrix[i][j] = score
			matrix[j][i] = score
		}
	}
	return matrix
}

// topK returns the indices of the k most similar rows to row self,
// excluding self, ordered by descending score. Exact ties are broken
// by ascending index so runs are reproducible.
func topK(row []float64, self, k int) []int {
	candidates := make([]int, 0, len(row)-1)
	for i := range row {
		if i != self {
			candidates = append(candidates, i)
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if row[candidates[a]] != row[candidates[b]] {
			return row[candidates[a]] > row[candidates[b]]
		}
		return candidates[a] < candidates[b]
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
