// internal/engine/aggregate.go
package engine

import "math"

// aggregate folds the six category scores into the overall risk score using
// the fixed weighting. Only the overall score is rounded; category scores are
// reported as produced.
func aggregate(scores map[Category]float64, weights Weights) float64 {
	overall := 0.0
	for _, c := range Categories {
		overall += scores[c] * weights.For(c)
	}
	return round3(overall)
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
