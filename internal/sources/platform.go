package sources

import (
	"context"
	"log/slog"

	"github.com/pulsedash/pulse-aggregator/internal/aggregate"
	"github.com/pulsedash/pulse-aggregator/internal/chain"
	"github.com/pulsedash/pulse-aggregator/internal/mockdata"
	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/normalize"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
)

// PlatformClient serves the component health rollup.
type PlatformClient struct {
	base
}

// NewPlatformClient builds the platform health domain client.
func NewPlatformClient(logger *slog.Logger, live, archive MetricsAPI, forceMock bool) *PlatformClient {
	return &PlatformClient{base: newBase(logger, live, archive, forceMock)}
}

// Health fetches per-component rows and derives the volume-weighted platform
// rollup.
func (c *PlatformClient) Health(ctx context.Context, window string) models.FetchResult[models.PlatformHealth] {
	req := models.MetricsRequest{Domain: domainPlatform, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainPlatform, "health"),
		ranked(
			func(ctx context.Context) ([]repo.ComponentRecord, error) { return c.live.FetchPlatformHealth(ctx, req) },
			func(ctx context.Context) ([]repo.ComponentRecord, error) { return c.archive.FetchPlatformHealth(ctx, req) },
		),
		nonEmpty[repo.ComponentRecord],
		buildPlatformHealth,
		mockdata.Platform,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// FetchAll is the panel-level entry point; platform health has a single group.
func (c *PlatformClient) FetchAll(ctx context.Context, window string) models.FetchResult[models.PlatformHealth] {
	return c.Health(ctx, window)
}

func buildPlatformHealth(records []repo.ComponentRecord) models.PlatformHealth {
	uptimes := make([]float64, 0, len(records))
	for _, r := range records {
		uptimes = append(uptimes, r.Uptime)
	}
	format := normalize.DetectRateFormat(uptimes)

	components := make([]models.ComponentHealth, 0, len(records))
	for _, r := range records {
		components = append(components, models.ComponentHealth{
			Name:         r.Name,
			Status:       r.Status,
			UptimePct:    normalize.ToPercent(r.Uptime, format),
			P95LatencyMs: r.P95LatencyMs,
			Requests:     r.Requests,
		})
	}

	weight := func(r repo.ComponentRecord) float64 { return r.Requests }
	cWeight := func(c models.ComponentHealth) float64 { return c.Requests }
	return models.PlatformHealth{
		UptimePct: aggregate.WeightedAverage(components, cWeight, func(c models.ComponentHealth) float64 { return c.UptimePct }),
		// Error rates sit well below 1% on a healthy platform, so magnitude
		// detection cannot tell fractions from percentages here. The upstream
		// contract fixes errorRate as a percentage.
		ErrorRatePct: normalize.ClampPercent(aggregate.WeightedAverage(records, weight, func(r repo.ComponentRecord) float64 { return r.ErrorRate })),
		P95LatencyMs: aggregate.Max(components, func(c models.ComponentHealth) float64 { return c.P95LatencyMs }),
		Components:   components,
	}
}
