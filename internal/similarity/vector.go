package similarity

import "math"

// Cosine returns the cosine similarity of two vectors clamped to [0,1].
// A zero-norm vector, a length mismatch or a non-finite component scores 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) {
		return 0
	}

	return math.Max(0, math.Min(1, sim))
}

// Vector returns the best cosine similarity of v against any anchor
func Vector(v []float32, anchors [][]float32) float64 {
	best := 0.0
	for _, anchor := range anchors {
		best = max(best, Cosine(v, anchor))
	}

	return best
}

// Combined blends performance evidence with the three similarity signals
func Combined(hasHistory bool, demographic, topic, vector float64) float64 {
	performance := 0.0
	if hasHistory {
		performance = 1.0
	}

	return weightPerformance*performance +
		weightDemographic*demographic +
		weightTopic*topic +
		weightVector*vector
}
