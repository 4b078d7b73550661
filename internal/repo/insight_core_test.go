package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/pulsedash/pulse-aggregator/internal/models"
)

func jsonResponse(t *testing.T, payload any) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(data)),
		Header:     make(http.Header),
	}
}

func TestFetchAgentMetricsBuildsRequest(t *testing.T) {
	client := NewInsightCoreClient("https://insight.example.com", time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", req.Method)
		}
		if req.URL.Path != "/api/v1/agents/summary" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if got := req.URL.Query().Get("timeWindow"); got != "7d" {
			t.Fatalf("unexpected timeWindow: %q", got)
		}
		if got := req.Header.Get("Accept"); got != "application/json" {
			t.Fatalf("unexpected Accept header: %q", got)
		}
		if got := req.Header.Get("Authorization"); got != "" {
			t.Fatalf("live client must not send auth, got %q", got)
		}
		return jsonResponse(t, map[string]any{
			"agents": []map[string]any{
				{"name": "code-review", "totalRequests": 120.0, "successRate": 0.95, "avgLatencyMs": 800.0},
			},
		}), nil
	})

	records, err := client.FetchAgentMetrics(context.Background(), models.MetricsRequest{TimeWindow: "7d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Name != "code-review" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if records[0].SuccessRate != 0.95 {
		t.Fatalf("rate must pass through untouched, got %v", records[0].SuccessRate)
	}
}

func TestFetchAgentExecutionsSendsLimit(t *testing.T) {
	client := NewInsightCoreClient("https://insight.example.com", time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		if got := req.URL.Query().Get("limit"); got != "10" {
			t.Fatalf("unexpected limit: %q", got)
		}
		return jsonResponse(t, map[string]any{"executions": []map[string]any{}}), nil
	})

	if _, err := client.FetchAgentExecutions(context.Background(), models.MetricsRequest{TimeWindow: "24h", Limit: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchReturnsErrorOnNon200(t *testing.T) {
	client := NewInsightCoreClient("https://insight.example.com", time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Status:     "502 Bad Gateway",
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Header:     make(http.Header),
		}, nil
	})

	if _, err := client.FetchRoutingStats(context.Background(), models.MetricsRequest{TimeWindow: "24h"}); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}

func TestFetchReturnsErrorOnMalformedBody(t *testing.T) {
	client := NewInsightCoreClient("https://insight.example.com", time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader([]byte("<html>nope"))),
			Header:     make(http.Header),
		}, nil
	})

	if _, err := client.FetchCodeQuality(context.Background(), models.MetricsRequest{TimeWindow: "24h"}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFetchFailsWithoutBaseURL(t *testing.T) {
	client := NewInsightCoreClient("", time.Second)
	if _, err := client.FetchRecentEvents(context.Background(), models.MetricsRequest{TimeWindow: "24h"}); err == nil {
		t.Fatalf("expected error for unconfigured base URL")
	}
}

func TestFetchArchitectureGraphDecodesTopLevelPayload(t *testing.T) {
	client := NewInsightCoreClient("https://insight.example.com", time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/v1/architecture/graph" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(t, map[string]any{
			"nodes": []map[string]any{{"name": "gateway", "kind": "service", "requests": 100.0}},
			"edges": []map[string]any{{"source": "gateway", "target": "runtime", "call_rate": 5.0, "error_rate": 0.01}},
		}), nil
	})

	graph, err := client.FetchArchitectureGraph(context.Background(), models.MetricsRequest{TimeWindow: "24h"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graph.Nodes) != 1 || len(graph.Edges) != 1 {
		t.Fatalf("unexpected graph: %+v", graph)
	}
}
