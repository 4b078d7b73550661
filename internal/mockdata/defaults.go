// Package mockdata supplies the deterministic fallback datasets served when
// every upstream provider is exhausted. Defaults are hand-curated and stable
// within a process so a degraded session stays visually coherent instead of
// flickering between random states.
package mockdata

import (
	"fmt"
	"time"

	"github.com/pulsedash/pulse-aggregator/internal/models"
)

// Agents returns the default agent summary.
func Agents() models.AgentSummary {
	agents := []models.AgentStat{
		{Name: "code-review", Requests: 1240, SuccessRate: 96.8, AvgLatencyMs: 840},
		{Name: "test-writer", Requests: 860, SuccessRate: 94.2, AvgLatencyMs: 1310},
		{Name: "doc-assistant", Requests: 430, SuccessRate: 98.1, AvgLatencyMs: 620},
		{Name: "refactorer", Requests: 150, SuccessRate: 91.5, AvgLatencyMs: 2050},
	}
	return models.AgentSummary{
		TotalRuns:    2680,
		ActiveAgents: len(agents),
		SuccessRate:  95.9,
		AvgLatencyMs: 1023,
		Agents:       agents,
	}
}

// Executions returns the default recent-execution list, newest first.
func Executions() []models.Execution {
	base := anchorTime()
	statuses := []string{"success", "success", "success", "failed", "success"}
	agents := []string{"code-review", "test-writer", "code-review", "refactorer", "doc-assistant"}
	executions := make([]models.Execution, 0, len(statuses))
	for i, status := range statuses {
		executions = append(executions, models.Execution{
			ID:         fmt.Sprintf("exec-%03d", i+1),
			Agent:      agents[i],
			Status:     status,
			DurationMs: 600 + float64(i)*215,
			StartedAt:  base.Add(-time.Duration(i+1) * 7 * time.Minute),
		})
	}
	return executions
}

// Routing returns the default routing summary.
func Routing() models.RoutingStats {
	routes := []models.RouteStat{
		{Target: "fast-tier", Requests: 5400, SuccessRate: 97.4, AvgLatencyMs: 310},
		{Target: "balanced-tier", Requests: 2100, SuccessRate: 95.1, AvgLatencyMs: 780},
		{Target: "deep-tier", Requests: 500, SuccessRate: 92.6, AvgLatencyMs: 2400},
	}
	return models.RoutingStats{
		TotalDecisions: 8000,
		SuccessRate:    96.5,
		AvgLatencyMs:   564,
		Routes:         routes,
	}
}

// CodeQuality returns the default code intelligence summary.
func CodeQuality() models.CodeQualitySummary {
	return models.CodeQualitySummary{
		TotalFiles:    412,
		AvgComplexity: 6.3,
		CoveragePct:   78.5,
		TechDebtScore: 24.0,
	}
}

// Hotspots returns the default complexity hotspots.
func Hotspots() []models.Hotspot {
	return []models.Hotspot{
		{Path: "internal/scheduler/dispatch.go", Complexity: 31, Churn: 18, RiskPct: 82.0},
		{Path: "internal/billing/invoice.go", Complexity: 24, Churn: 11, RiskPct: 64.0},
		{Path: "pkg/parser/lexer.go", Complexity: 27, Churn: 6, RiskPct: 55.0},
	}
}

// Savings returns the default savings summary, currency in cents.
func Savings() models.SavingsMetrics {
	return models.SavingsMetrics{
		TotalCents: 1842500,
		MonthCents: 312400,
		ByCategory: []models.CategorySaving{
			{Category: "compute", AmountCents: 964000},
			{Category: "developer-hours", AmountCents: 702500},
			{Category: "incident-avoidance", AmountCents: 176000},
		},
		MonthlyTrend: TimeSeriesStep("savings", 295000, 45000, 6, 30*24*time.Hour),
	}
}

// Events returns the default recent-event list, newest first.
func Events() []models.Event {
	base := anchorTime()
	return []models.Event{
		{ID: "evt-001", Type: "deployment", Severity: "info", Message: "agent runtime rolled out to production", Timestamp: base.Add(-12 * time.Minute)},
		{ID: "evt-002", Type: "threshold", Severity: "warning", Message: "routing latency above target for deep-tier", Timestamp: base.Add(-47 * time.Minute)},
		{ID: "evt-003", Type: "scan", Severity: "info", Message: "nightly code intelligence scan completed", Timestamp: base.Add(-3 * time.Hour)},
		{ID: "evt-004", Type: "recovery", Severity: "info", Message: "pattern detector backlog drained", Timestamp: base.Add(-5 * time.Hour)},
	}
}

// Platform returns the default platform health summary.
func Platform() models.PlatformHealth {
	components := []models.ComponentHealth{
		{Name: "api-gateway", Status: "healthy", UptimePct: 99.98, P95LatencyMs: 120, Requests: 48200},
		{Name: "agent-runtime", Status: "healthy", UptimePct: 99.91, P95LatencyMs: 860, Requests: 8000},
		{Name: "intelligence-index", Status: "degraded", UptimePct: 98.70, P95LatencyMs: 1420, Requests: 2600},
	}
	return models.PlatformHealth{
		UptimePct:    99.91,
		ErrorRatePct: 0.4,
		P95LatencyMs: 1420,
		Components:   components,
	}
}

// Patterns returns the default detected-pattern summary.
func Patterns() models.PatternSummary {
	base := anchorTime()
	patterns := []models.DetectedPattern{
		{Name: "retry storm", Category: "resilience", Occurrences: 14, ConfidencePct: 88.0, LastSeen: base.Add(-2 * time.Hour)},
		{Name: "n+1 query", Category: "performance", Occurrences: 9, ConfidencePct: 92.5, LastSeen: base.Add(-26 * time.Hour)},
		{Name: "config drift", Category: "operations", Occurrences: 4, ConfidencePct: 71.0, LastSeen: base.Add(-50 * time.Hour)},
	}
	return models.PatternSummary{Patterns: patterns, TotalOccurrences: 27}
}

// Architecture returns the default dependency graph.
func Architecture() models.ArchitectureGraph {
	return models.ArchitectureGraph{
		Nodes: []models.GraphNode{
			{Name: "dashboard", Kind: "frontend", Requests: 48200},
			{Name: "api-gateway", Kind: "service", Requests: 48200},
			{Name: "agent-runtime", Kind: "service", Requests: 8000},
			{Name: "intelligence-index", Kind: "store", Requests: 2600},
		},
		Edges: []models.GraphEdge{
			{Source: "dashboard", Target: "api-gateway", CallRate: 120.0, ErrorRatePct: 0.2},
			{Source: "api-gateway", Target: "agent-runtime", CallRate: 22.0, ErrorRatePct: 0.9},
			{Source: "agent-runtime", Target: "intelligence-index", CallRate: 8.5, ErrorRatePct: 2.1},
		},
	}
}

// anchorTime pins mock timestamps to the current hour so repeated calls within
// a session render identically.
func anchorTime() time.Time {
	return time.Now().UTC().Truncate(time.Hour)
}
