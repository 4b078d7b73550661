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

const recentExecutionLimit = 10

// AgentsClient serves agent activity summaries, recent executions, and the
// success-rate trend.
type AgentsClient struct {
	base
}

// NewAgentsClient builds the agents domain client.
func NewAgentsClient(logger *slog.Logger, live, archive MetricsAPI, forceMock bool) *AgentsClient {
	return &AgentsClient{base: newBase(logger, live, archive, forceMock)}
}

// AgentsData bundles everything the dashboard's agents panel renders.
type AgentsData struct {
	Summary    models.AgentSummary `json:"summary"`
	Executions []models.Execution  `json:"recentExecutions"`
	Trend      []models.TimePoint  `json:"trend"`
	Mock       bool                `json:"isMock"`
}

// Summary fetches per-agent records and derives the volume-weighted rollup.
func (c *AgentsClient) Summary(ctx context.Context, window string) models.FetchResult[models.AgentSummary] {
	req := models.MetricsRequest{Domain: domainAgents, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainAgents, "summary"),
		ranked(
			func(ctx context.Context) ([]repo.AgentRecord, error) { return c.live.FetchAgentMetrics(ctx, req) },
			func(ctx context.Context) ([]repo.AgentRecord, error) { return c.archive.FetchAgentMetrics(ctx, req) },
		),
		nonEmpty[repo.AgentRecord],
		buildAgentSummary,
		mockdata.Agents,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// RecentExecutions fetches the latest agent runs, newest first.
func (c *AgentsClient) RecentExecutions(ctx context.Context, window string) models.FetchResult[[]models.Execution] {
	req := models.MetricsRequest{Domain: domainAgents, TimeWindow: window, Limit: recentExecutionLimit}
	res := chain.Run(ctx, c.run(domainAgents, "executions"),
		ranked(
			func(ctx context.Context) ([]repo.ExecutionRecord, error) { return c.live.FetchAgentExecutions(ctx, req) },
			func(ctx context.Context) ([]repo.ExecutionRecord, error) { return c.archive.FetchAgentExecutions(ctx, req) },
		),
		nonEmpty[repo.ExecutionRecord],
		toExecutions,
		mockdata.Executions,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// Trend fetches the agent success-rate series for the window.
func (c *AgentsClient) Trend(ctx context.Context, window string) models.FetchResult[[]models.TimePoint] {
	req := models.MetricsRequest{Domain: domainAgents, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainAgents, "trend"),
		ranked(
			func(ctx context.Context) ([]repo.SeriesPoint, error) { return c.live.FetchAgentTrend(ctx, req) },
			func(ctx context.Context) ([]repo.SeriesPoint, error) { return c.archive.FetchAgentTrend(ctx, req) },
		),
		nonEmpty[repo.SeriesPoint],
		toTimePoints,
		func() []models.TimePoint {
			return mockdata.TimeSeriesStep(domainAgents, 94, 4, pointsForWindow(window), stepForWindow(window))
		},
	)
	return models.Resolved(res.Payload, res.Origin)
}

// FetchAll resolves every agents group concurrently. The panel is flagged as
// mock when any of its groups fell through to synthesized data.
func (c *AgentsClient) FetchAll(ctx context.Context, window string) AgentsData {
	var (
		summary    models.FetchResult[models.AgentSummary]
		executions models.FetchResult[[]models.Execution]
		trend      models.FetchResult[[]models.TimePoint]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { summary = c.Summary(gctx, window); return nil })
	g.Go(func() error { executions = c.RecentExecutions(gctx, window); return nil })
	g.Go(func() error { trend = c.Trend(gctx, window); return nil })
	_ = g.Wait()

	return AgentsData{
		Summary:    summary.Data,
		Executions: executions.Data,
		Trend:      trend.Data,
		Mock:       summary.Mock || executions.Mock || trend.Mock,
	}
}

func buildAgentSummary(records []repo.AgentRecord) models.AgentSummary {
	rates := make([]float64, 0, len(records))
	for _, r := range records {
		rates = append(rates, r.SuccessRate)
	}
	format := normalize.DetectRateFormat(rates)

	stats := make([]models.AgentStat, 0, len(records))
	for _, r := range records {
		stats = append(stats, models.AgentStat{
			Name:         r.Name,
			Requests:     r.TotalRequests,
			SuccessRate:  normalize.ToPercent(r.SuccessRate, format),
			AvgLatencyMs: r.AvgLatencyMs,
		})
	}

	weight := func(s models.AgentStat) float64 { return s.Requests }
	return models.AgentSummary{
		TotalRuns:    aggregate.Sum(stats, weight),
		ActiveAgents: len(stats),
		SuccessRate:  aggregate.WeightedAverage(stats, weight, func(s models.AgentStat) float64 { return s.SuccessRate }),
		AvgLatencyMs: aggregate.WeightedAverage(stats, weight, func(s models.AgentStat) float64 { return s.AvgLatencyMs }),
		Agents:       stats,
	}
}

func toExecutions(records []repo.ExecutionRecord) []models.Execution {
	executions := make([]models.Execution, 0, len(records))
	for _, r := range records {
		executions = append(executions, models.Execution{
			ID:         r.ID,
			Agent:      r.Agent,
			Status:     r.Status,
			DurationMs: r.DurationMs,
			StartedAt:  r.StartedAt,
		})
	}
	return executions
}
