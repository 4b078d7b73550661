package models

import "time"

// AgentStat is a per-agent record normalized to canonical units.
type AgentStat struct {
	Name         string  `json:"name"`
	Requests     float64 `json:"requests"`
	SuccessRate  float64 `json:"successRate"` // percent, [0,100]
	AvgLatencyMs float64 `json:"avgLatencyMs"`
}

// AgentSummary aggregates agent activity for one time window. SuccessRate and
// AvgLatencyMs are volume-weighted so high-traffic agents dominate.
type AgentSummary struct {
	TotalRuns    float64     `json:"totalRuns"`
	ActiveAgents int         `json:"activeAgents"`
	SuccessRate  float64     `json:"successRate"` // percent, [0,100]
	AvgLatencyMs float64     `json:"avgLatencyMs"`
	Agents       []AgentStat `json:"agents"`
}

// Execution is a single recent agent run.
type Execution struct {
	ID         string    `json:"id"`
	Agent      string    `json:"agent"`
	Status     string    `json:"status"`
	DurationMs float64   `json:"durationMs"`
	StartedAt  time.Time `json:"startedAt"`
}

// RouteStat is a per-route routing record.
type RouteStat struct {
	Target       string  `json:"target"`
	Requests     float64 `json:"requests"`
	SuccessRate  float64 `json:"successRate"` // percent, [0,100]
	AvgLatencyMs float64 `json:"avgLatencyMs"`
}

// RoutingStats summarises routing decisions for one time window.
type RoutingStats struct {
	TotalDecisions float64     `json:"totalDecisions"`
	SuccessRate    float64     `json:"successRate"` // percent, volume-weighted
	AvgLatencyMs   float64     `json:"avgLatencyMs"`
	Routes         []RouteStat `json:"routes"`
}

// CodeQualitySummary reports repository-wide code intelligence figures.
type CodeQualitySummary struct {
	TotalFiles    int     `json:"totalFiles"`
	AvgComplexity float64 `json:"avgComplexity"`
	CoveragePct   float64 `json:"coveragePct"` // percent, [0,100]
	TechDebtScore float64 `json:"techDebtScore"`
}

// Hotspot flags a file with elevated complexity and churn.
type Hotspot struct {
	Path       string  `json:"path"`
	Complexity float64 `json:"complexity"`
	Churn      float64 `json:"churn"`
	RiskPct    float64 `json:"riskPct"` // percent, [0,100]
}

// CategorySaving is a per-category savings line, currency in cents.
type CategorySaving struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amountCents"`
}

// SavingsMetrics summarises realised savings, currency in cents.
type SavingsMetrics struct {
	TotalCents   int64            `json:"totalCents"`
	MonthCents   int64            `json:"monthCents"`
	ByCategory   []CategorySaving `json:"byCategory"`
	MonthlyTrend []TimePoint      `json:"monthlyTrend"`
}

// Event is a single platform event row.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ComponentHealth reports one platform component.
type ComponentHealth struct {
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	UptimePct    float64 `json:"uptimePct"` // percent, [0,100]
	P95LatencyMs float64 `json:"p95LatencyMs"`
	Requests     float64 `json:"requests"`
}

// PlatformHealth aggregates component health for one time window. UptimePct
// is volume-weighted across components.
type PlatformHealth struct {
	UptimePct    float64           `json:"uptimePct"`    // percent, [0,100]
	ErrorRatePct float64           `json:"errorRatePct"` // percent, [0,100]
	P95LatencyMs float64           `json:"p95LatencyMs"`
	Components   []ComponentHealth `json:"components"`
}

// DetectedPattern is a recurring behavioural pattern surfaced by the
// intelligence service.
type DetectedPattern struct {
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Occurrences   int       `json:"occurrences"`
	ConfidencePct float64   `json:"confidencePct"` // percent, [0,100]
	LastSeen      time.Time `json:"lastSeen"`
}

// PatternSummary lists detected patterns ordered by occurrence count.
type PatternSummary struct {
	Patterns         []DetectedPattern `json:"patterns"`
	TotalOccurrences int               `json:"totalOccurrences"`
}

// GraphNode is a service or module in the architecture graph.
type GraphNode struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Requests float64 `json:"requests"`
}

// GraphEdge is a dependency edge between two nodes.
type GraphEdge struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	CallRate     float64 `json:"callRate"`
	ErrorRatePct float64 `json:"errorRatePct"` // percent, [0,100]
}

// ArchitectureGraph is the dependency topology for one time window.
type ArchitectureGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
