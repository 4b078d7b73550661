package sources

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pulsedash/pulse-aggregator/internal/chain"
	"github.com/pulsedash/pulse-aggregator/internal/mockdata"
	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/normalize"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
)

// PatternsClient serves the detected behavioural patterns summary.
type PatternsClient struct {
	base
}

// NewPatternsClient builds the patterns domain client.
func NewPatternsClient(logger *slog.Logger, live, archive MetricsAPI, forceMock bool) *PatternsClient {
	return &PatternsClient{base: newBase(logger, live, archive, forceMock)}
}

// Detected fetches the detected patterns and orders them by occurrence count.
func (c *PatternsClient) Detected(ctx context.Context, window string) models.FetchResult[models.PatternSummary] {
	req := models.MetricsRequest{Domain: domainPatterns, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainPatterns, "detected"),
		ranked(
			func(ctx context.Context) ([]repo.PatternRecord, error) { return c.live.FetchDetectedPatterns(ctx, req) },
			func(ctx context.Context) ([]repo.PatternRecord, error) { return c.archive.FetchDetectedPatterns(ctx, req) },
		),
		nonEmpty[repo.PatternRecord],
		buildPatternSummary,
		mockdata.Patterns,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// FetchAll is the panel-level entry point; patterns has a single group.
func (c *PatternsClient) FetchAll(ctx context.Context, window string) models.FetchResult[models.PatternSummary] {
	return c.Detected(ctx, window)
}

func buildPatternSummary(records []repo.PatternRecord) models.PatternSummary {
	confidences := make([]float64, 0, len(records))
	for _, r := range records {
		confidences = append(confidences, r.Confidence)
	}
	format := normalize.DetectRateFormat(confidences)

	var total int
	patterns := make([]models.DetectedPattern, 0, len(records))
	for _, r := range records {
		occurrences := r.Occurrences
		if occurrences < 0 {
			occurrences = 0
		}
		total += occurrences
		patterns = append(patterns, models.DetectedPattern{
			Name:          r.Name,
			Category:      r.Category,
			Occurrences:   occurrences,
			ConfidencePct: normalize.ToPercent(r.Confidence, format),
			LastSeen:      r.LastSeen,
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Occurrences > patterns[j].Occurrences
	})

	return models.PatternSummary{Patterns: patterns, TotalOccurrences: total}
}
