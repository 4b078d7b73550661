package repo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pulsedash/pulse-aggregator/internal/models"
)

// ArchiveClient reads the insight-archive warehouse, a nightly rollup store
// exposing the same record shapes as the live API. It serves as the
// second-ranked provider when the live service is unavailable or returns
// unusable data.
type ArchiveClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewArchiveClient constructs a warehouse client. The API key is optional;
// when set it is sent as a bearer token.
func NewArchiveClient(baseURL, apiKey string, timeout time.Duration) *ArchiveClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ArchiveClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchAgentMetrics returns rolled-up per-agent activity rows.
func (c *ArchiveClient) FetchAgentMetrics(ctx context.Context, req models.MetricsRequest) ([]AgentRecord, error) {
	var response struct {
		Agents []AgentRecord `json:"agents"`
	}
	if err := c.get(ctx, "/warehouse/v1/agents", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive agent metrics: %w", err)
	}
	return response.Agents, nil
}

// FetchAgentExecutions returns archived agent runs.
func (c *ArchiveClient) FetchAgentExecutions(ctx context.Context, req models.MetricsRequest) ([]ExecutionRecord, error) {
	var response struct {
		Executions []ExecutionRecord `json:"executions"`
	}
	if err := c.get(ctx, "/warehouse/v1/agents/executions", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive agent executions: %w", err)
	}
	return response.Executions, nil
}

// FetchAgentTrend returns the archived agent success-rate series.
func (c *ArchiveClient) FetchAgentTrend(ctx context.Context, req models.MetricsRequest) ([]SeriesPoint, error) {
	var response struct {
		Points []SeriesPoint `json:"points"`
	}
	if err := c.get(ctx, "/warehouse/v1/agents/trend", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive agent trend: %w", err)
	}
	return response.Points, nil
}

// FetchRoutingStats returns rolled-up per-route decision rows.
func (c *ArchiveClient) FetchRoutingStats(ctx context.Context, req models.MetricsRequest) ([]RouteRecord, error) {
	var response struct {
		Routes []RouteRecord `json:"routes"`
	}
	if err := c.get(ctx, "/warehouse/v1/routing", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive routing stats: %w", err)
	}
	return response.Routes, nil
}

// FetchRoutingVolume returns the archived routing decision-volume series.
func (c *ArchiveClient) FetchRoutingVolume(ctx context.Context, req models.MetricsRequest) ([]SeriesPoint, error) {
	var response struct {
		Points []SeriesPoint `json:"points"`
	}
	if err := c.get(ctx, "/warehouse/v1/routing/volume", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive routing volume: %w", err)
	}
	return response.Points, nil
}

// FetchCodeQuality returns the archived code intelligence rollup.
func (c *ArchiveClient) FetchCodeQuality(ctx context.Context, req models.MetricsRequest) (QualitySummaryRecord, error) {
	var response struct {
		Summary QualitySummaryRecord `json:"summary"`
	}
	if err := c.get(ctx, "/warehouse/v1/code/quality", req, &response); err != nil {
		return QualitySummaryRecord{}, fmt.Errorf("insight-archive code quality: %w", err)
	}
	return response.Summary, nil
}

// FetchHotspots returns archived complexity hotspot rows.
func (c *ArchiveClient) FetchHotspots(ctx context.Context, req models.MetricsRequest) ([]HotspotRecord, error) {
	var response struct {
		Hotspots []HotspotRecord `json:"hotspots"`
	}
	if err := c.get(ctx, "/warehouse/v1/code/hotspots", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive hotspots: %w", err)
	}
	return response.Hotspots, nil
}

// FetchSavings returns archived per-category savings line items.
func (c *ArchiveClient) FetchSavings(ctx context.Context, req models.MetricsRequest) ([]SavingEntry, error) {
	var response struct {
		Entries []SavingEntry `json:"entries"`
	}
	if err := c.get(ctx, "/warehouse/v1/savings", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive savings: %w", err)
	}
	return response.Entries, nil
}

// FetchSavingsTrend returns the archived monthly savings series.
func (c *ArchiveClient) FetchSavingsTrend(ctx context.Context, req models.MetricsRequest) ([]SeriesPoint, error) {
	var response struct {
		Points []SeriesPoint `json:"points"`
	}
	if err := c.get(ctx, "/warehouse/v1/savings/trend", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive savings trend: %w", err)
	}
	return response.Points, nil
}

// FetchRecentEvents returns archived platform events.
func (c *ArchiveClient) FetchRecentEvents(ctx context.Context, req models.MetricsRequest) ([]EventRecord, error) {
	var response struct {
		Events []EventRecord `json:"events"`
	}
	if err := c.get(ctx, "/warehouse/v1/events", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive recent events: %w", err)
	}
	return response.Events, nil
}

// FetchEventVolume returns the archived event-volume series.
func (c *ArchiveClient) FetchEventVolume(ctx context.Context, req models.MetricsRequest) ([]SeriesPoint, error) {
	var response struct {
		Points []SeriesPoint `json:"points"`
	}
	if err := c.get(ctx, "/warehouse/v1/events/volume", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive event volume: %w", err)
	}
	return response.Points, nil
}

// FetchPlatformHealth returns archived per-component health rows.
func (c *ArchiveClient) FetchPlatformHealth(ctx context.Context, req models.MetricsRequest) ([]ComponentRecord, error) {
	var response struct {
		Components []ComponentRecord `json:"components"`
	}
	if err := c.get(ctx, "/warehouse/v1/platform/health", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive platform health: %w", err)
	}
	return response.Components, nil
}

// FetchDetectedPatterns returns archived behavioural patterns.
func (c *ArchiveClient) FetchDetectedPatterns(ctx context.Context, req models.MetricsRequest) ([]PatternRecord, error) {
	var response struct {
		Patterns []PatternRecord `json:"patterns"`
	}
	if err := c.get(ctx, "/warehouse/v1/patterns", req, &response); err != nil {
		return nil, fmt.Errorf("insight-archive detected patterns: %w", err)
	}
	return response.Patterns, nil
}

// FetchArchitectureGraph returns the archived dependency topology.
func (c *ArchiveClient) FetchArchitectureGraph(ctx context.Context, req models.MetricsRequest) (GraphPayload, error) {
	var response GraphPayload
	if err := c.get(ctx, "/warehouse/v1/architecture", req, &response); err != nil {
		return GraphPayload{}, fmt.Errorf("insight-archive architecture graph: %w", err)
	}
	return response, nil
}

func (c *ArchiveClient) get(ctx context.Context, path string, req models.MetricsRequest, out any) error {
	if c == nil {
		return fmt.Errorf("insight-archive client not initialised")
	}
	if c.baseURL == "" {
		return fmt.Errorf("insight-archive base URL not configured")
	}
	return getJSON(ctx, c.httpClient, resolvePath(c.baseURL, path), c.apiKey, windowQuery(req), out)
}
