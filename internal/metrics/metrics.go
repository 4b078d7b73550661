package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeAccepted labels provider calls whose payload passed acceptance.
	OutcomeAccepted = "accepted"
	// OutcomeRejected labels provider calls that failed or were rejected.
	OutcomeRejected = "rejected"
)

var (
	providerAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulse_agg",
			Name:      "provider_attempts_total",
			Help:      "Provider calls issued by fallback chains, partitioned by domain, provider and outcome.",
		},
		[]string{"domain", "provider", "outcome"},
	)

	mockFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulse_agg",
			Name:      "mock_fallbacks_total",
			Help:      "Fetches resolved by synthesized mock data after provider exhaustion.",
		},
		[]string{"domain"},
	)

	requestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pulse_agg",
			Name:      "request_seconds",
			Help:      "Dashboard API request latency in seconds.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"endpoint"},
	)
)

// Register attaches pulse-aggregator collectors to the supplied Prometheus
// registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		providerAttemptsTotal,
		mockFallbacksTotal,
		requestDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveProviderAttempt records one provider call and its outcome.
func ObserveProviderAttempt(domain, provider, outcome string) {
	if outcome != OutcomeAccepted {
		outcome = OutcomeRejected
	}
	providerAttemptsTotal.WithLabelValues(domain, provider, outcome).Inc()
}

// ObserveMockFallback records a fetch resolved by mock data.
func ObserveMockFallback(domain string) {
	mockFallbacksTotal.WithLabelValues(domain).Inc()
}

// ObserveRequest records a dashboard API request duration.
func ObserveRequest(endpoint string, duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	requestDurationSeconds.WithLabelValues(endpoint).Observe(duration.Seconds())
}
