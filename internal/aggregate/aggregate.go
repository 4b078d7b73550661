package aggregate

import "math"

// WeightedAverage computes Σ(weight·value)/Σ(weight) across the records, so a
// high-volume entity's metric dominates over a low-volume entity's metric
// instead of being counted equally. A zero total weight yields 0, never NaN.
func WeightedAverage[T any](items []T, weight, value func(T) float64) float64 {
	var num, den float64
	for _, item := range items {
		w := sanitize(weight(item))
		if w <= 0 {
			continue
		}
		num += w * sanitize(value(item))
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Sum adds the field across records, treating missing or non-finite values
// as 0.
func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += sanitize(value(item))
	}
	return total
}

// Max returns the largest field value across records, 0 for an empty set.
func Max[T any](items []T, value func(T) float64) float64 {
	var max float64
	for _, item := range items {
		if v := sanitize(value(item)); v > max {
			max = v
		}
	}
	return max
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
