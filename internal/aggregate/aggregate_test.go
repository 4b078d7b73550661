package aggregate

import (
	"math"
	"testing"
)

type row struct {
	weight float64
	value  float64
}

func TestWeightedAverageFavoursHighVolume(t *testing.T) {
	// A tiny source reporting 50% must not drag a large source reporting 96%
	// towards the midpoint.
	rows := []row{
		{weight: 10, value: 50},
		{weight: 990, value: 96},
	}
	got := WeightedAverage(rows,
		func(r row) float64 { return r.weight },
		func(r row) float64 { return r.value })

	want := 95.54
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWeightedAverageZeroWeight(t *testing.T) {
	rows := []row{{weight: 0, value: 80}, {weight: -5, value: 20}}
	if got := WeightedAverage(rows, func(r row) float64 { return r.weight }, func(r row) float64 { return r.value }); got != 0 {
		t.Fatalf("expected 0 for zero total weight, got %v", got)
	}
}

func TestWeightedAverageEmpty(t *testing.T) {
	if got := WeightedAverage(nil, func(r row) float64 { return r.weight }, func(r row) float64 { return r.value }); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}

func TestWeightedAverageIgnoresNaN(t *testing.T) {
	rows := []row{
		{weight: 100, value: math.NaN()},
		{weight: 100, value: 90},
	}
	got := WeightedAverage(rows, func(r row) float64 { return r.weight }, func(r row) float64 { return r.value })
	if got != 45 {
		t.Fatalf("expected NaN treated as 0, got %v", got)
	}
}

func TestSum(t *testing.T) {
	rows := []row{{value: 1}, {value: 2.5}, {value: math.Inf(1)}}
	if got := Sum(rows, func(r row) float64 { return r.value }); got != 3.5 {
		t.Fatalf("expected 3.5, got %v", got)
	}
}

func TestMax(t *testing.T) {
	rows := []row{{value: 3}, {value: 9}, {value: 4}}
	if got := Max(rows, func(r row) float64 { return r.value }); got != 9 {
		t.Fatalf("expected 9, got %v", got)
	}
	if got := Max(nil, func(r row) float64 { return r.value }); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}
