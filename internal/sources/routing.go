package sources

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pulsedash/pulse-aggregator/internal/aggregate"
	"github.com/pulsedash/pulse-aggregator/internal/chain"
	"github.com/pulsedash/pulse-aggregator/internal/mockdata"
	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/normalize"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
)

// RoutingClient serves routing decision summaries and the decision-volume
// series.
type RoutingClient struct {
	base
}

// NewRoutingClient builds the routing domain client.
func NewRoutingClient(logger *slog.Logger, live, archive MetricsAPI, forceMock bool) *RoutingClient {
	return &RoutingClient{base: newBase(logger, live, archive, forceMock)}
}

// RoutingData bundles the routing panel payload.
type RoutingData struct {
	Stats  models.RoutingStats `json:"stats"`
	Volume []models.TimePoint  `json:"volume"`
	Mock   bool                `json:"isMock"`
}

// Stats fetches per-route records and derives the volume-weighted rollup.
func (c *RoutingClient) Stats(ctx context.Context, window string) models.FetchResult[models.RoutingStats] {
	req := models.MetricsRequest{Domain: domainRouting, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainRouting, "stats"),
		ranked(
			func(ctx context.Context) ([]repo.RouteRecord, error) { return c.live.FetchRoutingStats(ctx, req) },
			func(ctx context.Context) ([]repo.RouteRecord, error) { return c.archive.FetchRoutingStats(ctx, req) },
		),
		nonEmpty[repo.RouteRecord],
		buildRoutingStats,
		mockdata.Routing,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// Volume fetches the routing decision-volume series for the window.
func (c *RoutingClient) Volume(ctx context.Context, window string) models.FetchResult[[]models.TimePoint] {
	req := models.MetricsRequest{Domain: domainRouting, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainRouting, "volume"),
		ranked(
			func(ctx context.Context) ([]repo.SeriesPoint, error) { return c.live.FetchRoutingVolume(ctx, req) },
			func(ctx context.Context) ([]repo.SeriesPoint, error) { return c.archive.FetchRoutingVolume(ctx, req) },
		),
		nonEmpty[repo.SeriesPoint],
		toTimePoints,
		func() []models.TimePoint {
			return mockdata.TimeSeriesStep(domainRouting, 330, 90, pointsForWindow(window), stepForWindow(window))
		},
	)
	return models.Resolved(res.Payload, res.Origin)
}

// FetchAll resolves both routing groups concurrently.
func (c *RoutingClient) FetchAll(ctx context.Context, window string) RoutingData {
	var (
		stats  models.FetchResult[models.RoutingStats]
		volume models.FetchResult[[]models.TimePoint]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { stats = c.Stats(gctx, window); return nil })
	g.Go(func() error { volume = c.Volume(gctx, window); return nil })
	_ = g.Wait()

	return RoutingData{
		Stats:  stats.Data,
		Volume: volume.Data,
		Mock:   stats.Mock || volume.Mock,
	}
}

func buildRoutingStats(records []repo.RouteRecord) models.RoutingStats {
	rates := make([]float64, 0, len(records))
	for _, r := range records {
		rates = append(rates, r.SuccessRate)
	}
	format := normalize.DetectRateFormat(rates)

	routes := make([]models.RouteStat, 0, len(records))
	for _, r := range records {
		routes = append(routes, models.RouteStat{
			Target:       r.Target,
			Requests:     r.Requests,
			SuccessRate:  normalize.ToPercent(r.SuccessRate, format),
			AvgLatencyMs: r.AvgLatencyMs,
		})
	}

	weight := func(r models.RouteStat) float64 { return r.Requests }
	return models.RoutingStats{
		TotalDecisions: aggregate.Sum(routes, weight),
		SuccessRate:    aggregate.WeightedAverage(routes, weight, func(r models.RouteStat) float64 { return r.SuccessRate }),
		AvgLatencyMs:   aggregate.WeightedAverage(routes, weight, func(r models.RouteStat) float64 { return r.AvgLatencyMs }),
		Routes:         routes,
	}
}
