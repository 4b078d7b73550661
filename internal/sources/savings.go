package sources

import (
	"context"
	"log/slog"
	"math"

	"github.com/pulsedash/pulse-aggregator/internal/aggregate"
	"github.com/pulsedash/pulse-aggregator/internal/chain"
	"github.com/pulsedash/pulse-aggregator/internal/mockdata"
	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
)

// SavingsClient serves the realised-savings rollup. The summary and the
// monthly trend come from the same upstream rank: a provider counts only if
// it can serve both, so a single panel never mixes live line items with
// archived trend points.
type SavingsClient struct {
	base
}

// NewSavingsClient builds the savings domain client.
func NewSavingsClient(logger *slog.Logger, live, archive MetricsAPI, forceMock bool) *SavingsClient {
	return &SavingsClient{base: newBase(logger, live, archive, forceMock)}
}

// savingsPayload is the combined raw response of one provider rank.
type savingsPayload struct {
	entries []repo.SavingEntry
	trend   []repo.SeriesPoint
}

// Summary fetches per-category line items plus the monthly trend and derives
// the savings rollup.
func (c *SavingsClient) Summary(ctx context.Context, window string) models.FetchResult[models.SavingsMetrics] {
	req := models.MetricsRequest{Domain: domainSavings, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainSavings, "summary"),
		ranked(
			func(ctx context.Context) (savingsPayload, error) { return fetchSavings(ctx, c.live, req) },
			func(ctx context.Context) (savingsPayload, error) { return fetchSavings(ctx, c.archive, req) },
		),
		func(p savingsPayload) bool { return len(p.entries) > 0 },
		buildSavingsMetrics,
		mockdata.Savings,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// FetchAll is the panel-level entry point; savings has a single group.
func (c *SavingsClient) FetchAll(ctx context.Context, window string) models.FetchResult[models.SavingsMetrics] {
	return c.Summary(ctx, window)
}

func fetchSavings(ctx context.Context, api MetricsAPI, req models.MetricsRequest) (savingsPayload, error) {
	entries, err := api.FetchSavings(ctx, req)
	if err != nil {
		return savingsPayload{}, err
	}
	trend, err := api.FetchSavingsTrend(ctx, req)
	if err != nil {
		return savingsPayload{}, err
	}
	return savingsPayload{entries: entries, trend: trend}, nil
}

func buildSavingsMetrics(p savingsPayload) models.SavingsMetrics {
	byCategory := make([]models.CategorySaving, 0, len(p.entries))
	for _, e := range p.entries {
		byCategory = append(byCategory, models.CategorySaving{
			Category:    e.Category,
			AmountCents: roundCents(e.AmountCents),
		})
	}

	trend := toTimePoints(p.trend)
	var monthCents int64
	if len(trend) > 0 {
		monthCents = roundCents(trend[len(trend)-1].Value)
	}

	return models.SavingsMetrics{
		TotalCents:   roundCents(aggregate.Sum(p.entries, func(e repo.SavingEntry) float64 { return e.AmountCents })),
		MonthCents:   monthCents,
		ByCategory:   byCategory,
		MonthlyTrend: trend,
	}
}

func roundCents(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Round(v))
}
