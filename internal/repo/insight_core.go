package repo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pulsedash/pulse-aggregator/internal/models"
)

// InsightCoreClient wraps the live intelligence service's dashboard APIs.
// Every fetch returns the raw upstream records; emptiness and zero-value
// checks are left to the caller's acceptability predicate.
type InsightCoreClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewInsightCoreClient constructs a client targeting the configured
// insight-core instance.
func NewInsightCoreClient(baseURL string, timeout time.Duration) *InsightCoreClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &InsightCoreClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchAgentMetrics returns per-agent activity rows.
func (c *InsightCoreClient) FetchAgentMetrics(ctx context.Context, req models.MetricsRequest) ([]AgentRecord, error) {
	var response struct {
		Agents []AgentRecord `json:"agents"`
	}
	if err := c.get(ctx, "/api/v1/agents/summary", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core agent metrics: %w", err)
	}
	return response.Agents, nil
}

// FetchAgentExecutions returns recent agent runs, newest first.
func (c *InsightCoreClient) FetchAgentExecutions(ctx context.Context, req models.MetricsRequest) ([]ExecutionRecord, error) {
	var response struct {
		Executions []ExecutionRecord `json:"executions"`
	}
	if err := c.get(ctx, "/api/v1/agents/executions", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core agent executions: %w", err)
	}
	return response.Executions, nil
}

// FetchAgentTrend returns the agent success-rate series.
func (c *InsightCoreClient) FetchAgentTrend(ctx context.Context, req models.MetricsRequest) ([]SeriesPoint, error) {
	var response struct {
		Points []SeriesPoint `json:"points"`
	}
	if err := c.get(ctx, "/api/v1/agents/trends", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core agent trend: %w", err)
	}
	return response.Points, nil
}

// FetchRoutingStats returns per-route decision rows.
func (c *InsightCoreClient) FetchRoutingStats(ctx context.Context, req models.MetricsRequest) ([]RouteRecord, error) {
	var response struct {
		Routes []RouteRecord `json:"routes"`
	}
	if err := c.get(ctx, "/api/v1/routing/stats", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core routing stats: %w", err)
	}
	return response.Routes, nil
}

// FetchRoutingVolume returns the routing decision-volume series.
func (c *InsightCoreClient) FetchRoutingVolume(ctx context.Context, req models.MetricsRequest) ([]SeriesPoint, error) {
	var response struct {
		Points []SeriesPoint `json:"points"`
	}
	if err := c.get(ctx, "/api/v1/routing/volume", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core routing volume: %w", err)
	}
	return response.Points, nil
}

// FetchCodeQuality returns the repository-wide code intelligence rollup.
func (c *InsightCoreClient) FetchCodeQuality(ctx context.Context, req models.MetricsRequest) (QualitySummaryRecord, error) {
	var response struct {
		Summary QualitySummaryRecord `json:"summary"`
	}
	if err := c.get(ctx, "/api/v1/code/quality", req, &response); err != nil {
		return QualitySummaryRecord{}, fmt.Errorf("insight-core code quality: %w", err)
	}
	return response.Summary, nil
}

// FetchHotspots returns complexity hotspot rows.
func (c *InsightCoreClient) FetchHotspots(ctx context.Context, req models.MetricsRequest) ([]HotspotRecord, error) {
	var response struct {
		Hotspots []HotspotRecord `json:"hotspots"`
	}
	if err := c.get(ctx, "/api/v1/code/hotspots", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core hotspots: %w", err)
	}
	return response.Hotspots, nil
}

// FetchSavings returns per-category savings line items.
func (c *InsightCoreClient) FetchSavings(ctx context.Context, req models.MetricsRequest) ([]SavingEntry, error) {
	var response struct {
		Entries []SavingEntry `json:"entries"`
	}
	if err := c.get(ctx, "/api/v1/savings/summary", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core savings: %w", err)
	}
	return response.Entries, nil
}

// FetchSavingsTrend returns the monthly savings series.
func (c *InsightCoreClient) FetchSavingsTrend(ctx context.Context, req models.MetricsRequest) ([]SeriesPoint, error) {
	var response struct {
		Points []SeriesPoint `json:"points"`
	}
	if err := c.get(ctx, "/api/v1/savings/trend", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core savings trend: %w", err)
	}
	return response.Points, nil
}

// FetchRecentEvents returns recent platform events, newest first.
func (c *InsightCoreClient) FetchRecentEvents(ctx context.Context, req models.MetricsRequest) ([]EventRecord, error) {
	var response struct {
		Events []EventRecord `json:"events"`
	}
	if err := c.get(ctx, "/api/v1/events/recent", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core recent events: %w", err)
	}
	return response.Events, nil
}

// FetchEventVolume returns the event-volume series.
func (c *InsightCoreClient) FetchEventVolume(ctx context.Context, req models.MetricsRequest) ([]SeriesPoint, error) {
	var response struct {
		Points []SeriesPoint `json:"points"`
	}
	if err := c.get(ctx, "/api/v1/events/volume", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core event volume: %w", err)
	}
	return response.Points, nil
}

// FetchPlatformHealth returns per-component health rows.
func (c *InsightCoreClient) FetchPlatformHealth(ctx context.Context, req models.MetricsRequest) ([]ComponentRecord, error) {
	var response struct {
		Components []ComponentRecord `json:"components"`
	}
	if err := c.get(ctx, "/api/v1/platform/health", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core platform health: %w", err)
	}
	return response.Components, nil
}

// FetchDetectedPatterns returns detected behavioural patterns.
func (c *InsightCoreClient) FetchDetectedPatterns(ctx context.Context, req models.MetricsRequest) ([]PatternRecord, error) {
	var response struct {
		Patterns []PatternRecord `json:"patterns"`
	}
	if err := c.get(ctx, "/api/v1/patterns/detected", req, &response); err != nil {
		return nil, fmt.Errorf("insight-core detected patterns: %w", err)
	}
	return response.Patterns, nil
}

// FetchArchitectureGraph returns the dependency topology.
func (c *InsightCoreClient) FetchArchitectureGraph(ctx context.Context, req models.MetricsRequest) (GraphPayload, error) {
	var response GraphPayload
	if err := c.get(ctx, "/api/v1/architecture/graph", req, &response); err != nil {
		return GraphPayload{}, fmt.Errorf("insight-core architecture graph: %w", err)
	}
	return response, nil
}

func (c *InsightCoreClient) get(ctx context.Context, path string, req models.MetricsRequest, out any) error {
	if c == nil {
		return fmt.Errorf("insight-core client not initialised")
	}
	if c.baseURL == "" {
		return fmt.Errorf("insight-core base URL not configured")
	}
	return getJSON(ctx, c.httpClient, resolvePath(c.baseURL, path), "", windowQuery(req), out)
}
