package repo

import "time"

// Raw upstream record shapes shared by the live and archive clients. Rate
// fields are passed through untouched; interpreting fractional vs percentage
// encodings is the normalization layer's job.

// AgentRecord is one agent's activity row as reported upstream.
type AgentRecord struct {
	Name          string  `json:"name"`
	TotalRequests float64 `json:"totalRequests"`
	SuccessRate   float64 `json:"successRate"`
	AvgLatencyMs  float64 `json:"avgLatencyMs"`
}

// ExecutionRecord is one recent agent run.
type ExecutionRecord struct {
	ID         string    `json:"id"`
	Agent      string    `json:"agent"`
	Status     string    `json:"status"`
	DurationMs float64   `json:"durationMs"`
	StartedAt  time.Time `json:"startedAt"`
}

// SeriesPoint is one sample of an upstream time series.
type SeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// RouteRecord is one routing target's activity row.
type RouteRecord struct {
	Target       string  `json:"target"`
	Requests     float64 `json:"requests"`
	SuccessRate  float64 `json:"successRate"`
	AvgLatencyMs float64 `json:"avgLatencyMs"`
}

// QualitySummaryRecord is the repository-wide code intelligence rollup.
type QualitySummaryRecord struct {
	TotalFiles    int     `json:"totalFiles"`
	AvgComplexity float64 `json:"avgComplexity"`
	Coverage      float64 `json:"coverage"`
	TechDebtScore float64 `json:"techDebtScore"`
}

// HotspotRecord flags a file with elevated complexity and churn.
type HotspotRecord struct {
	Path       string  `json:"path"`
	Complexity float64 `json:"complexity"`
	Churn      float64 `json:"churn"`
	Risk       float64 `json:"risk"`
}

// SavingEntry is one savings line item, currency in cents.
type SavingEntry struct {
	Category    string  `json:"category"`
	AmountCents float64 `json:"amountCents"`
}

// EventRecord is one platform event row.
type EventRecord struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ComponentRecord is one platform component's health row.
type ComponentRecord struct {
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	Uptime       float64 `json:"uptime"`
	ErrorRate    float64 `json:"errorRate"`
	P95LatencyMs float64 `json:"p95LatencyMs"`
	Requests     float64 `json:"requests"`
}

// PatternRecord is one detected behavioural pattern.
type PatternRecord struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Occurrences int       `json:"occurrences"`
	Confidence  float64   `json:"confidence"`
	LastSeen    time.Time `json:"lastSeen"`
}

// NodeRecord is one node of the architecture graph.
type NodeRecord struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Requests float64 `json:"requests"`
}

// EdgeRecord is one dependency edge of the architecture graph.
type EdgeRecord struct {
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	CallRate  float64 `json:"call_rate"`
	ErrorRate float64 `json:"error_rate"`
}

// GraphPayload bundles the architecture graph response.
type GraphPayload struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
}
