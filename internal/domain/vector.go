package domain

import "math"

// CosineDistance computes 1 - cosine similarity between two embedding
// vectors. The result ranges from 0 (identical direction) to 2 (opposite).
// Vectors of different lengths are maximally distant (2.0) rather than an
// error, so mismatched candidates are excluded from retrieval instead of
// failing it. A zero-norm vector yields the neutral distance 1.0.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return 2.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)

	if normA == 0 || normB == 0 {
		return 1.0
	}

	return 1 - dot/(normA*normB)
}
