package models

import "time"

// Origin records which rank of provider in a fallback chain satisfied a request.
type Origin string

const (
	// OriginLive marks data served by the first-ranked provider.
	OriginLive Origin = "live"
	// OriginSecondary marks data served by any lower-ranked provider.
	OriginSecondary Origin = "secondary"
	// OriginMock marks synthesized fallback data.
	OriginMock Origin = "mock"
)

// FetchResult pairs a canonical summary with its mock provenance flag. It is
// the only shape ever handed back to callers of the aggregation layer and is
// always fully populated.
type FetchResult[T any] struct {
	Data T    `json:"data"`
	Mock bool `json:"isMock"`
}

// Resolved builds a FetchResult from a payload and the origin that produced it.
func Resolved[T any](data T, origin Origin) FetchResult[T] {
	return FetchResult[T]{Data: data, Mock: origin == OriginMock}
}

// TimePoint is a single sample on a chart-shaped series.
type TimePoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}
