package dashboard

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/pulsedash/pulse-aggregator/internal/mockdata"
	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
	"github.com/pulsedash/pulse-aggregator/internal/sources"
)

var errDown = errors.New("upstream down")

// failingAPI satisfies sources.MetricsAPI and fails every call.
type failingAPI struct{}

func (failingAPI) FetchAgentMetrics(context.Context, models.MetricsRequest) ([]repo.AgentRecord, error) {
	return nil, errDown
}
func (failingAPI) FetchAgentExecutions(context.Context, models.MetricsRequest) ([]repo.ExecutionRecord, error) {
	return nil, errDown
}
func (failingAPI) FetchAgentTrend(context.Context, models.MetricsRequest) ([]repo.SeriesPoint, error) {
	return nil, errDown
}
func (failingAPI) FetchRoutingStats(context.Context, models.MetricsRequest) ([]repo.RouteRecord, error) {
	return nil, errDown
}
func (failingAPI) FetchRoutingVolume(context.Context, models.MetricsRequest) ([]repo.SeriesPoint, error) {
	return nil, errDown
}
func (failingAPI) FetchCodeQuality(context.Context, models.MetricsRequest) (repo.QualitySummaryRecord, error) {
	return repo.QualitySummaryRecord{}, errDown
}
func (failingAPI) FetchHotspots(context.Context, models.MetricsRequest) ([]repo.HotspotRecord, error) {
	return nil, errDown
}
func (failingAPI) FetchSavings(context.Context, models.MetricsRequest) ([]repo.SavingEntry, error) {
	return nil, errDown
}
func (failingAPI) FetchSavingsTrend(context.Context, models.MetricsRequest) ([]repo.SeriesPoint, error) {
	return nil, errDown
}
func (failingAPI) FetchRecentEvents(context.Context, models.MetricsRequest) ([]repo.EventRecord, error) {
	return nil, errDown
}
func (failingAPI) FetchEventVolume(context.Context, models.MetricsRequest) ([]repo.SeriesPoint, error) {
	return nil, errDown
}
func (failingAPI) FetchPlatformHealth(context.Context, models.MetricsRequest) ([]repo.ComponentRecord, error) {
	return nil, errDown
}
func (failingAPI) FetchDetectedPatterns(context.Context, models.MetricsRequest) ([]repo.PatternRecord, error) {
	return nil, errDown
}
func (failingAPI) FetchArchitectureGraph(context.Context, models.MetricsRequest) (repo.GraphPayload, error) {
	return repo.GraphPayload{}, errDown
}

// liveAgentsAPI serves agent data only; everything else fails.
type liveAgentsAPI struct{ failingAPI }

func (liveAgentsAPI) FetchAgentMetrics(context.Context, models.MetricsRequest) ([]repo.AgentRecord, error) {
	return []repo.AgentRecord{{Name: "code-review", TotalRequests: 500, SuccessRate: 96, AvgLatencyMs: 700}}, nil
}
func (liveAgentsAPI) FetchAgentExecutions(context.Context, models.MetricsRequest) ([]repo.ExecutionRecord, error) {
	return []repo.ExecutionRecord{{ID: "exec-1", Agent: "code-review", Status: "success", DurationMs: 500, StartedAt: time.Now()}}, nil
}
func (liveAgentsAPI) FetchAgentTrend(context.Context, models.MetricsRequest) ([]repo.SeriesPoint, error) {
	return []repo.SeriesPoint{{Timestamp: time.Now(), Value: 95}}, nil
}

func testClients(api sources.MetricsAPI) Clients {
	down := failingAPI{}
	return Clients{
		Agents:       sources.NewAgentsClient(nil, api, down, false),
		Routing:      sources.NewRoutingClient(nil, api, down, false),
		CodeIntel:    sources.NewCodeIntelClient(nil, api, down, false),
		Savings:      sources.NewSavingsClient(nil, api, down, false),
		Events:       sources.NewEventsClient(nil, api, down, false),
		Platform:     sources.NewPlatformClient(nil, api, down, false),
		Patterns:     sources.NewPatternsClient(nil, api, down, false),
		Architecture: sources.NewArchitectureClient(nil, api, down, false),
	}
}

func TestOverviewFullyDegradedStaysRenderable(t *testing.T) {
	orch := New(nil, testClients(failingAPI{}))

	page := orch.Overview(context.Background(), "24h")
	if !page.Mock {
		t.Fatalf("expected mock page when every upstream is down")
	}
	if page.Window != "24h" {
		t.Fatalf("unexpected window: %s", page.Window)
	}
	if !reflect.DeepEqual(page.Agents.Summary, mockdata.Agents()) {
		t.Fatalf("expected default agent summary")
	}
	if len(page.Platform.Data.Components) == 0 {
		t.Fatalf("platform panel must stay populated")
	}
	if len(page.Events.Recent) == 0 || len(page.Events.Volume) == 0 {
		t.Fatalf("events panel must stay populated")
	}
	if page.Savings.Data.TotalCents == 0 {
		t.Fatalf("savings panel must stay populated")
	}
}

func TestOverviewPartialDegradationKeepsLivePanels(t *testing.T) {
	orch := New(nil, testClients(liveAgentsAPI{}))

	page := orch.Overview(context.Background(), "7d")
	if !page.Mock {
		t.Fatalf("page with any mock panel must be flagged")
	}
	if page.Agents.Mock {
		t.Fatalf("live agents panel must not be flagged")
	}
	if page.Agents.Summary.TotalRuns != 500 {
		t.Fatalf("expected live agent data, got %+v", page.Agents.Summary)
	}
	if !page.Savings.Mock {
		t.Fatalf("failed savings panel must be flagged")
	}
}

func TestIntelligenceFullyDegradedStaysRenderable(t *testing.T) {
	orch := New(nil, testClients(failingAPI{}))

	page := orch.Intelligence(context.Background(), "30d")
	if !page.Mock {
		t.Fatalf("expected mock page when every upstream is down")
	}
	if page.CodeIntel.Quality.TotalFiles == 0 {
		t.Fatalf("quality panel must stay populated")
	}
	if len(page.Patterns.Data.Patterns) == 0 {
		t.Fatalf("patterns panel must stay populated")
	}
	if len(page.Architecture.Data.Nodes) == 0 {
		t.Fatalf("architecture panel must stay populated")
	}
	if page.Routing.Stats.TotalDecisions == 0 {
		t.Fatalf("routing panel must stay populated")
	}
}
