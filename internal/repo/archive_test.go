package repo

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pulsedash/pulse-aggregator/internal/models"
)

func TestArchiveSendsBearerToken(t *testing.T) {
	client := NewArchiveClient("https://archive.example.com", "secret-key", time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "Bearer secret-key" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		if req.URL.Path != "/warehouse/v1/agents" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(t, map[string]any{"agents": []map[string]any{}}), nil
	})

	if _, err := client.FetchAgentMetrics(context.Background(), models.MetricsRequest{TimeWindow: "30d"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestArchiveOmitsAuthWithoutKey(t *testing.T) {
	client := NewArchiveClient("https://archive.example.com", "", time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "" {
			t.Fatalf("expected no auth header, got %q", got)
		}
		return jsonResponse(t, map[string]any{"patterns": []map[string]any{}}), nil
	})

	if _, err := client.FetchDetectedPatterns(context.Background(), models.MetricsRequest{TimeWindow: "24h"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestArchiveTrimsTrailingSlash(t *testing.T) {
	client := NewArchiveClient("https://archive.example.com/", "", time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/warehouse/v1/savings" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(t, map[string]any{"entries": []map[string]any{}}), nil
	})

	if _, err := client.FetchSavings(context.Background(), models.MetricsRequest{TimeWindow: "24h"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
