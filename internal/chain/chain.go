// Package chain implements the provider fallback chain shared by every
// domain client: an ordered list of upstream calls, a per-result acceptance
// predicate, and a mock fallback supplier. A chain never returns an error to
// its caller; degradation is reported exclusively through the result origin.
package chain

import (
	"context"
	"log/slog"

	"github.com/pulsedash/pulse-aggregator/internal/metrics"
	"github.com/pulsedash/pulse-aggregator/internal/models"
)

// Provider is one ranked upstream attempt within a chain. The first declared
// provider is the live source; every later one is a secondary.
type Provider[R any] struct {
	Name  string
	Fetch func(ctx context.Context) (R, error)
}

// Result carries the winning canonical payload and its provenance.
type Result[T any] struct {
	Payload T
	Origin  models.Origin
}

// RunConfig identifies a chain for logging and metrics and carries the
// explicit mock-forcing switch. ForceMock is injected at construction rather
// than read from ambient state so tests can run distinct configurations
// side by side.
type RunConfig struct {
	Logger    *slog.Logger
	Domain    string
	Group     string
	ForceMock bool
}

// Run tries providers strictly in declared order and converts the first
// accepted raw payload into its canonical form. A transport failure or a
// rejected payload advances the chain; it is never surfaced to the caller.
// When every provider is exhausted, or ForceMock is set, the fallback
// supplies mock data tagged OriginMock.
func Run[R, T any](ctx context.Context, cfg RunConfig, providers []Provider[R], accept func(R) bool, convert func(R) T, fallback func() T) Result[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.ForceMock {
		metrics.ObserveMockFallback(cfg.Domain)
		return Result[T]{Payload: fallback(), Origin: models.OriginMock}
	}

	for i, provider := range providers {
		payload, err := provider.Fetch(ctx)
		if err != nil {
			metrics.ObserveProviderAttempt(cfg.Domain, provider.Name, metrics.OutcomeRejected)
			logger.Warn("provider call failed",
				slog.String("domain", cfg.Domain),
				slog.String("group", cfg.Group),
				slog.String("provider", provider.Name),
				slog.Any("error", err))
			continue
		}
		if accept != nil && !accept(payload) {
			metrics.ObserveProviderAttempt(cfg.Domain, provider.Name, metrics.OutcomeRejected)
			logger.Warn("provider payload rejected",
				slog.String("domain", cfg.Domain),
				slog.String("group", cfg.Group),
				slog.String("provider", provider.Name))
			continue
		}

		metrics.ObserveProviderAttempt(cfg.Domain, provider.Name, metrics.OutcomeAccepted)
		origin := models.OriginLive
		if i > 0 {
			origin = models.OriginSecondary
		}
		return Result[T]{Payload: convert(payload), Origin: origin}
	}

	metrics.ObserveMockFallback(cfg.Domain)
	logger.Warn("all providers exhausted, serving mock data",
		slog.String("domain", cfg.Domain),
		slog.String("group", cfg.Group))
	return Result[T]{Payload: fallback(), Origin: models.OriginMock}
}
