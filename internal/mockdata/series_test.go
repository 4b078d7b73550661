package mockdata

import (
	"testing"
	"time"
)

func TestTimeSeriesBounds(t *testing.T) {
	series := TimeSeries("events", 10, 6, 20)
	if len(series) != 20 {
		t.Fatalf("expected 20 points, got %d", len(series))
	}
	for i, p := range series {
		if p.Value < 4 || p.Value > 16 {
			t.Fatalf("point %d out of bounds: %v", i, p.Value)
		}
	}
}

func TestTimeSeriesNeverNegative(t *testing.T) {
	series := TimeSeries("events", 2, 10, 50)
	for i, p := range series {
		if p.Value < 0 {
			t.Fatalf("point %d negative: %v", i, p.Value)
		}
	}
}

func TestTimeSeriesDeterministicWithinProcess(t *testing.T) {
	a := TimeSeries("routing", 300, 50, 24)
	b := TimeSeries("routing", 300, 50, 24)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Value != b[i].Value {
			t.Fatalf("point %d differs between calls: %v vs %v", i, a[i].Value, b[i].Value)
		}
	}
}

func TestTimeSeriesDistinctDomains(t *testing.T) {
	a := TimeSeries("routing", 300, 50, 24)
	b := TimeSeries("agents", 300, 50, 24)
	same := true
	for i := range a {
		if a[i].Value != b[i].Value {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected different domains to produce different jitter streams")
	}
}

func TestTimeSeriesStepSpacing(t *testing.T) {
	series := TimeSeriesStep("savings", 100, 10, 6, 24*time.Hour)
	if len(series) != 6 {
		t.Fatalf("expected 6 points, got %d", len(series))
	}
	for i := 1; i < len(series); i++ {
		if got := series[i].Time.Sub(series[i-1].Time); got != 24*time.Hour {
			t.Fatalf("expected 24h spacing, got %v", got)
		}
	}
	if !series[len(series)-1].Time.After(series[0].Time) {
		t.Fatalf("series not ascending")
	}
}

func TestTimeSeriesEmptyForZeroPoints(t *testing.T) {
	if got := TimeSeries("events", 10, 5, 0); len(got) != 0 {
		t.Fatalf("expected empty series, got %d points", len(got))
	}
}
