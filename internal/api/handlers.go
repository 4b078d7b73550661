package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedash/pulse-aggregator/internal/cache"
	"github.com/pulsedash/pulse-aggregator/internal/dashboard"
	"github.com/pulsedash/pulse-aggregator/internal/metrics"
	"github.com/pulsedash/pulse-aggregator/internal/utils"
)

// Handlers serves the dashboard endpoints. Assembled responses are cached
// briefly so a page reload does not re-fan-out across every upstream.
type Handlers struct {
	logger    *slog.Logger
	orch      *dashboard.Orchestrator
	clients   dashboard.Clients
	cache     cache.Provider
	cacheTTL  time.Duration
	latencies *utils.LatencyTracker
}

// NewHandlers wires the handler set. A nil cache provider disables response
// caching.
func NewHandlers(logger *slog.Logger, orch *dashboard.Orchestrator, clients dashboard.Clients, cacheProvider cache.Provider, cacheTTL time.Duration) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheProvider == nil {
		cacheProvider = cache.NoopProvider{}
	}
	return &Handlers{
		logger:    logger,
		orch:      orch,
		clients:   clients,
		cache:     cacheProvider,
		cacheTTL:  cacheTTL,
		latencies: utils.NewLatencyTracker(2048),
	}
}

// Routes builds the HTTP mux for the dashboard API.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.instrument("healthz", h.handleHealthz))
	mux.HandleFunc("/api/v1/dashboard/overview", h.instrument("overview", h.handleOverview))
	mux.HandleFunc("/api/v1/dashboard/intelligence", h.instrument("intelligence", h.handleIntelligence))

	domains := map[string]func(context.Context, string) any{
		"agents":            func(ctx context.Context, win string) any { return h.clients.Agents.FetchAll(ctx, win) },
		"routing":           func(ctx context.Context, win string) any { return h.clients.Routing.FetchAll(ctx, win) },
		"code-intelligence": func(ctx context.Context, win string) any { return h.clients.CodeIntel.FetchAll(ctx, win) },
		"savings":           func(ctx context.Context, win string) any { return h.clients.Savings.FetchAll(ctx, win) },
		"events":            func(ctx context.Context, win string) any { return h.clients.Events.FetchAll(ctx, win) },
		"platform-health":   func(ctx context.Context, win string) any { return h.clients.Platform.FetchAll(ctx, win) },
		"patterns":          func(ctx context.Context, win string) any { return h.clients.Patterns.FetchAll(ctx, win) },
		"architecture":      func(ctx context.Context, win string) any { return h.clients.Architecture.FetchAll(ctx, win) },
	}
	for domain, fetch := range domains {
		mux.HandleFunc("/api/v1/metrics/"+domain, h.instrument(domain, h.domainHandler(domain, fetch)))
	}

	return mux
}

func (h *Handlers) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"requests":     h.latencies.Count(),
		"p95LatencyMs": float64(h.latencies.Percentile(95)) / float64(time.Millisecond),
	})
}

func (h *Handlers) handleOverview(w http.ResponseWriter, r *http.Request) {
	window, ok := h.window(w, r)
	if !ok {
		return
	}
	h.serve(w, r, "overview:"+window, func(ctx context.Context) any {
		return h.orch.Overview(ctx, window)
	})
}

func (h *Handlers) handleIntelligence(w http.ResponseWriter, r *http.Request) {
	window, ok := h.window(w, r)
	if !ok {
		return
	}
	h.serve(w, r, "intelligence:"+window, func(ctx context.Context) any {
		return h.orch.Intelligence(ctx, window)
	})
}

func (h *Handlers) domainHandler(domain string, fetch func(context.Context, string) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		window, ok := h.window(w, r)
		if !ok {
			return
		}
		h.serve(w, r, domain+":"+window, func(ctx context.Context) any {
			return fetch(ctx, window)
		})
	}
}

// serve renders a payload through the response cache. Cache failures are
// logged and bypassed; the payload is always produced.
func (h *Handlers) serve(w http.ResponseWriter, r *http.Request, key string, produce func(context.Context) any) {
	cacheKey := "resp:" + key

	if cached, err := h.cache.Get(r.Context(), cacheKey); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}

	payload := produce(r.Context())
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response", slog.String("key", key), slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if h.cacheTTL > 0 {
		if err := h.cache.Set(r.Context(), cacheKey, body, h.cacheTTL); err != nil {
			h.logger.Warn("response cache write failed",
				slog.Any("error", utils.NewAppError("cache.set", key, err)))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// window extracts and validates the ?window query parameter, defaulting to
// 24h. Invalid windows are the caller's mistake and the only client error
// this API returns.
func (h *Handlers) window(w http.ResponseWriter, r *http.Request) (string, bool) {
	window := r.URL.Query().Get("window")
	if _, err := utils.ParseWindow(window); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", false
	}
	if window == "" {
		window = "24h"
	}
	return window, true
}

// instrument wraps a handler with method filtering, request logging, and
// latency tracking.
func (h *Handlers) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}

		start := time.Now()
		requestID := uuid.NewString()
		next(w, r)

		elapsed := time.Since(start)
		h.latencies.Observe(elapsed)
		metrics.ObserveRequest(endpoint, elapsed)
		h.logger.Info("request served",
			slog.String("endpoint", endpoint),
			slog.String("requestId", requestID),
			slog.Duration("elapsed", elapsed))
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
