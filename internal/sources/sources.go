// Package sources contains the per-domain clients of the aggregation layer.
// Each client wires a fallback chain over the live insight-core API and the
// insight-archive warehouse, applies the domain's acceptability predicate,
// and shapes accepted records into canonical summaries. Every fetch method
// returns a fully populated FetchResult and never an error.
package sources

import (
	"context"
	"log/slog"
	"time"

	"github.com/pulsedash/pulse-aggregator/internal/chain"
	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
)

// MetricsAPI is the slice of upstream surface consumed by the domain
// clients. Both the live insight-core client and the insight-archive
// warehouse client satisfy it.
type MetricsAPI interface {
	FetchAgentMetrics(ctx context.Context, req models.MetricsRequest) ([]repo.AgentRecord, error)
	FetchAgentExecutions(ctx context.Context, req models.MetricsRequest) ([]repo.ExecutionRecord, error)
	FetchAgentTrend(ctx context.Context, req models.MetricsRequest) ([]repo.SeriesPoint, error)
	FetchRoutingStats(ctx context.Context, req models.MetricsRequest) ([]repo.RouteRecord, error)
	FetchRoutingVolume(ctx context.Context, req models.MetricsRequest) ([]repo.SeriesPoint, error)
	FetchCodeQuality(ctx context.Context, req models.MetricsRequest) (repo.QualitySummaryRecord, error)
	FetchHotspots(ctx context.Context, req models.MetricsRequest) ([]repo.HotspotRecord, error)
	FetchSavings(ctx context.Context, req models.MetricsRequest) ([]repo.SavingEntry, error)
	FetchSavingsTrend(ctx context.Context, req models.MetricsRequest) ([]repo.SeriesPoint, error)
	FetchRecentEvents(ctx context.Context, req models.MetricsRequest) ([]repo.EventRecord, error)
	FetchEventVolume(ctx context.Context, req models.MetricsRequest) ([]repo.SeriesPoint, error)
	FetchPlatformHealth(ctx context.Context, req models.MetricsRequest) ([]repo.ComponentRecord, error)
	FetchDetectedPatterns(ctx context.Context, req models.MetricsRequest) ([]repo.PatternRecord, error)
	FetchArchitectureGraph(ctx context.Context, req models.MetricsRequest) (repo.GraphPayload, error)
}

// Provider names by rank.
const (
	providerLive    = "insight-core"
	providerArchive = "insight-archive"
)

// Domain identifiers used for chain provenance and metrics labels.
const (
	domainAgents       = "agents"
	domainRouting      = "routing"
	domainCodeIntel    = "code-intelligence"
	domainSavings      = "savings"
	domainEvents       = "events"
	domainPlatform     = "platform-health"
	domainPatterns     = "patterns"
	domainArchitecture = "architecture"
)

// base carries the wiring shared by every domain client. forceMock is passed
// in at construction; it is never read from ambient state at fetch time.
type base struct {
	logger    *slog.Logger
	live      MetricsAPI
	archive   MetricsAPI
	forceMock bool
}

func newBase(logger *slog.Logger, live, archive MetricsAPI, forceMock bool) base {
	if logger == nil {
		logger = slog.Default()
	}
	return base{logger: logger, live: live, archive: archive, forceMock: forceMock}
}

func (b base) run(domain, group string) chain.RunConfig {
	return chain.RunConfig{
		Logger:    b.logger,
		Domain:    domain,
		Group:     group,
		ForceMock: b.forceMock,
	}
}

// ranked builds the standard live-then-archive provider list for one group.
func ranked[R any](live, archive func(ctx context.Context) (R, error)) []chain.Provider[R] {
	return []chain.Provider[R]{
		{Name: providerLive, Fetch: live},
		{Name: providerArchive, Fetch: archive},
	}
}

func nonEmpty[E any](records []E) bool { return len(records) > 0 }

func toTimePoints(points []repo.SeriesPoint) []models.TimePoint {
	series := make([]models.TimePoint, 0, len(points))
	for _, p := range points {
		series = append(series, models.TimePoint{Time: p.Timestamp, Value: p.Value})
	}
	return series
}

// pointsForWindow maps a dashboard time window onto the number of chart
// points to synthesize.
func pointsForWindow(window string) int {
	switch window {
	case models.Window7d:
		return 28
	case models.Window30d:
		return 30
	default:
		return 24
	}
}

// stepForWindow maps a dashboard time window onto the spacing between
// synthesized chart points.
func stepForWindow(window string) time.Duration {
	switch window {
	case models.Window7d:
		return 6 * time.Hour
	case models.Window30d:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}
