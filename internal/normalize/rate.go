package normalize

import "math"

// RateFormat classifies how an upstream encodes rate-like fields. Upstreams
// disagree on whether a success rate arrives as a fraction (0.94) or as a
// percentage (94.2); the whole batch is classified once so a single summary
// never mixes interpretations.
type RateFormat string

const (
	// FormatDecimal marks rates encoded as fractions in [0,1].
	FormatDecimal RateFormat = "decimal"
	// FormatPercent marks rates already encoded as percentages in [0,100].
	FormatPercent RateFormat = "percentage"
)

// DetectRateFormat inspects the first usable sample of a batch and classifies
// the batch: values at or below 1 are fractions, everything else is already a
// percentage. An empty or all-NaN sample set defaults to FormatPercent.
func DetectRateFormat(samples []float64) RateFormat {
	for _, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		if s <= 1 {
			return FormatDecimal
		}
		return FormatPercent
	}
	return FormatPercent
}

// ToPercent converts a rate into a percentage in [0,100]. Decimal-classified
// values are scaled by 100; all outputs are clamped to guard against
// out-of-range upstream data. NaN and infinite inputs collapse to 0.
func ToPercent(value float64, format RateFormat) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if format == FormatDecimal {
		value *= 100
	}
	return ClampPercent(value)
}

// ClampPercent bounds a percentage-typed value to [0,100].
func ClampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
