package sources

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pulsedash/pulse-aggregator/internal/chain"
	"github.com/pulsedash/pulse-aggregator/internal/mockdata"
	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/normalize"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
)

// CodeIntelClient serves the repository quality rollup and complexity
// hotspots.
type CodeIntelClient struct {
	base
}

// NewCodeIntelClient builds the code intelligence domain client.
func NewCodeIntelClient(logger *slog.Logger, live, archive MetricsAPI, forceMock bool) *CodeIntelClient {
	return &CodeIntelClient{base: newBase(logger, live, archive, forceMock)}
}

// CodeIntelData bundles the code intelligence panel payload.
type CodeIntelData struct {
	Quality  models.CodeQualitySummary `json:"quality"`
	Hotspots []models.Hotspot          `json:"hotspots"`
	Mock     bool                      `json:"isMock"`
}

// Quality fetches the repository-wide rollup. A payload with zero scanned
// files is treated as an incomplete scan and rejected so the chain can try
// the next provider.
func (c *CodeIntelClient) Quality(ctx context.Context, window string) models.FetchResult[models.CodeQualitySummary] {
	req := models.MetricsRequest{Domain: domainCodeIntel, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainCodeIntel, "quality"),
		ranked(
			func(ctx context.Context) (repo.QualitySummaryRecord, error) { return c.live.FetchCodeQuality(ctx, req) },
			func(ctx context.Context) (repo.QualitySummaryRecord, error) { return c.archive.FetchCodeQuality(ctx, req) },
		),
		func(rec repo.QualitySummaryRecord) bool { return rec.TotalFiles > 0 },
		buildQualitySummary,
		mockdata.CodeQuality,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// Hotspots fetches files flagged for elevated complexity and churn.
func (c *CodeIntelClient) Hotspots(ctx context.Context, window string) models.FetchResult[[]models.Hotspot] {
	req := models.MetricsRequest{Domain: domainCodeIntel, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainCodeIntel, "hotspots"),
		ranked(
			func(ctx context.Context) ([]repo.HotspotRecord, error) { return c.live.FetchHotspots(ctx, req) },
			func(ctx context.Context) ([]repo.HotspotRecord, error) { return c.archive.FetchHotspots(ctx, req) },
		),
		nonEmpty[repo.HotspotRecord],
		toHotspots,
		mockdata.Hotspots,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// FetchAll resolves both code intelligence groups concurrently.
func (c *CodeIntelClient) FetchAll(ctx context.Context, window string) CodeIntelData {
	var (
		quality  models.FetchResult[models.CodeQualitySummary]
		hotspots models.FetchResult[[]models.Hotspot]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { quality = c.Quality(gctx, window); return nil })
	g.Go(func() error { hotspots = c.Hotspots(gctx, window); return nil })
	_ = g.Wait()

	return CodeIntelData{
		Quality:  quality.Data,
		Hotspots: hotspots.Data,
		Mock:     quality.Mock || hotspots.Mock,
	}
}

func buildQualitySummary(rec repo.QualitySummaryRecord) models.CodeQualitySummary {
	format := normalize.DetectRateFormat([]float64{rec.Coverage})
	return models.CodeQualitySummary{
		TotalFiles:    rec.TotalFiles,
		AvgComplexity: rec.AvgComplexity,
		CoveragePct:   normalize.ToPercent(rec.Coverage, format),
		TechDebtScore: rec.TechDebtScore,
	}
}

func toHotspots(records []repo.HotspotRecord) []models.Hotspot {
	risks := make([]float64, 0, len(records))
	for _, r := range records {
		risks = append(risks, r.Risk)
	}
	format := normalize.DetectRateFormat(risks)

	hotspots := make([]models.Hotspot, 0, len(records))
	for _, r := range records {
		hotspots = append(hotspots, models.Hotspot{
			Path:       r.Path,
			Complexity: r.Complexity,
			Churn:      r.Churn,
			RiskPct:    normalize.ToPercent(r.Risk, format),
		})
	}
	return hotspots
}
