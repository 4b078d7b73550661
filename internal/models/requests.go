package models

// MetricsRequest describes one aggregation call against the upstream
// intelligence APIs. Constructed fresh per call, never shared or mutated.
type MetricsRequest struct {
	Domain     string
	TimeWindow string
	Limit      int
}

// Supported dashboard time windows.
const (
	Window24h = "24h"
	Window7d  = "7d"
	Window30d = "30d"
)
