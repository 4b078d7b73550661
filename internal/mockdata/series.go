package mockdata

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/pulsedash/pulse-aggregator/internal/models"
)

// sessionSeed fixes the jitter stream for the lifetime of the process.
// Reproducibility across processes is explicitly not required.
var sessionSeed = time.Now().UnixNano()

// TimeSeries generates a chart-shaped fallback series of hourly points ending
// at the current hour. Each value is baseline plus bounded jitter: always
// within [baseline-jitter, baseline+jitter] and never below zero, so charts
// cannot show nonsensical negative or runaway values. The sequence is
// deterministic within a process for a given domain and point count.
func TimeSeries(domain string, baseline, jitter float64, points int) []models.TimePoint {
	return TimeSeriesStep(domain, baseline, jitter, points, time.Hour)
}

// TimeSeriesStep is TimeSeries with an explicit spacing between points.
func TimeSeriesStep(domain string, baseline, jitter float64, points int, step time.Duration) []models.TimePoint {
	if points <= 0 {
		return []models.TimePoint{}
	}
	if step <= 0 {
		step = time.Hour
	}
	if jitter < 0 {
		jitter = -jitter
	}

	rng := rand.New(rand.NewSource(sessionSeed ^ int64(seriesKey(domain, points))))
	end := time.Now().UTC().Truncate(step)

	series := make([]models.TimePoint, 0, points)
	for i := 0; i < points; i++ {
		// Uniform in [-jitter, +jitter]; bounded by construction.
		offset := (rng.Float64()*2 - 1) * jitter
		value := baseline + offset
		if value < 0 {
			value = 0
		}
		series = append(series, models.TimePoint{
			Time:  end.Add(-time.Duration(points-1-i) * step),
			Value: value,
		})
	}
	return series
}

func seriesKey(domain string, points int) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(domain))
	_, _ = h.Write([]byte{byte(points), byte(points >> 8)})
	return h.Sum64()
}
