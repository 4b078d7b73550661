package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pulsedash/pulse-aggregator/internal/cache"
	"github.com/pulsedash/pulse-aggregator/internal/dashboard"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
	"github.com/pulsedash/pulse-aggregator/internal/sources"
)

// degradedClients wires every domain client against unreachable upstreams so
// each fetch resolves through the mock fallback.
func degradedClients() dashboard.Clients {
	live := repo.NewInsightCoreClient("", time.Second)
	archive := repo.NewArchiveClient("", "", time.Second)
	return dashboard.Clients{
		Agents:       sources.NewAgentsClient(nil, live, archive, false),
		Routing:      sources.NewRoutingClient(nil, live, archive, false),
		CodeIntel:    sources.NewCodeIntelClient(nil, live, archive, false),
		Savings:      sources.NewSavingsClient(nil, live, archive, false),
		Events:       sources.NewEventsClient(nil, live, archive, false),
		Platform:     sources.NewPlatformClient(nil, live, archive, false),
		Patterns:     sources.NewPatternsClient(nil, live, archive, false),
		Architecture: sources.NewArchitectureClient(nil, live, archive, false),
	}
}

func testHandlers(provider cache.Provider, ttl time.Duration) *Handlers {
	clients := degradedClients()
	orch := dashboard.New(nil, clients)
	return NewHandlers(nil, orch, clients, provider, ttl)
}

func TestOverviewServesMockWhenUpstreamDown(t *testing.T) {
	h := testHandlers(nil, 0)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview?window=24h", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite dead upstreams, got %d", rec.Code)
	}
	var page struct {
		Window string `json:"window"`
		Mock   bool   `json:"isMock"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !page.Mock {
		t.Fatalf("expected mock-flagged page")
	}
	if page.Window != "24h" {
		t.Fatalf("unexpected window: %s", page.Window)
	}
}

func TestDomainEndpointDefaultsWindow(t *testing.T) {
	h := testHandlers(nil, 0)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/metrics/agents", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var data struct {
		Mock bool `json:"isMock"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !data.Mock {
		t.Fatalf("expected mock panel")
	}
}

func TestInvalidWindowRejected(t *testing.T) {
	h := testHandlers(nil, 0)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview?window=90d", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported window, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := testHandlers(nil, 0)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/metrics/events", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := testHandlers(nil, 0)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var status struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.Status != "ok" {
		t.Fatalf("unexpected status: %s", status.Status)
	}
}

// countingCache wraps the in-memory provider and counts hits and writes.
type countingCache struct {
	*cache.MemoryProvider
	gets int
	sets int
	hits int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	data, err := c.MemoryProvider.Get(ctx, key)
	if err == nil {
		c.hits++
	}
	return data, err
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.sets++
	return c.MemoryProvider.Set(ctx, key, value, ttl)
}

func TestResponseCacheServesSecondRequest(t *testing.T) {
	cc := &countingCache{MemoryProvider: cache.NewMemoryProvider()}
	h := testHandlers(cc, time.Minute)
	router := h.Routes()

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/metrics/platform-health?window=24h", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/metrics/platform-health?window=24h", nil))

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200s, got %d and %d", first.Code, second.Code)
	}
	if cc.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cc.sets)
	}
	if cc.hits != 1 {
		t.Fatalf("expected second request to hit the cache, got %d hits", cc.hits)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("cached response must match the original")
	}
}
