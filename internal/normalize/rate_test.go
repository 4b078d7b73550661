package normalize

import (
	"math"
	"testing"
)

func TestDetectRateFormatDecimal(t *testing.T) {
	format := DetectRateFormat([]float64{0.42, 0.97, 0.88})
	if format != FormatDecimal {
		t.Fatalf("expected decimal format, got %s", format)
	}
}

func TestDetectRateFormatPercent(t *testing.T) {
	format := DetectRateFormat([]float64{94.2, 88.1})
	if format != FormatPercent {
		t.Fatalf("expected percent format, got %s", format)
	}
}

func TestDetectRateFormatEmptyDefaultsToPercent(t *testing.T) {
	if format := DetectRateFormat(nil); format != FormatPercent {
		t.Fatalf("expected percent default, got %s", format)
	}
	if format := DetectRateFormat([]float64{math.NaN()}); format != FormatPercent {
		t.Fatalf("expected percent for all-NaN samples, got %s", format)
	}
}

func TestDetectRateFormatSkipsLeadingNaN(t *testing.T) {
	format := DetectRateFormat([]float64{math.NaN(), 0.5})
	if format != FormatDecimal {
		t.Fatalf("expected decimal after skipping NaN, got %s", format)
	}
}

func TestToPercentScalesDecimal(t *testing.T) {
	if got := ToPercent(0.42, FormatDecimal); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
}

func TestToPercentPassesThroughPercent(t *testing.T) {
	if got := ToPercent(94.2, FormatPercent); got != 94.2 {
		t.Fatalf("expected 94.2, got %v", got)
	}
}

func TestToPercentClamps(t *testing.T) {
	if got := ToPercent(1.4, FormatDecimal); got != 100 {
		t.Fatalf("expected clamp to 100, got %v", got)
	}
	if got := ToPercent(-5, FormatPercent); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
	if got := ToPercent(math.NaN(), FormatPercent); got != 0 {
		t.Fatalf("expected NaN to collapse to 0, got %v", got)
	}
	if got := ToPercent(math.Inf(1), FormatDecimal); got != 0 {
		t.Fatalf("expected Inf to collapse to 0, got %v", got)
	}
}

func TestClampPercent(t *testing.T) {
	if got := ClampPercent(150); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := ClampPercent(-1); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := ClampPercent(55.5); got != 55.5 {
		t.Fatalf("expected passthrough, got %v", got)
	}
}
