// mock-insight is a local stand-in for the insight-core service. It serves
// fixed happy-path payloads for every dashboard endpoint so the aggregator
// can be exercised end to end without the real upstream.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type seriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

func series(baseline, step float64, points int) []seriesPoint {
	now := time.Now().UTC().Truncate(time.Hour)
	out := make([]seriesPoint, 0, points)
	for i := 0; i < points; i++ {
		out = append(out, seriesPoint{
			Timestamp: now.Add(-time.Duration(points-1-i) * time.Hour),
			Value:     baseline + float64(i)*step,
		})
	}
	return out
}

func main() {
	now := time.Now().UTC()
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	serve := func(path string, payload any) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if !enforceGet(w, r) {
				return
			}
			writeJSON(w, payload)
		})
	}

	serve("/api/v1/agents/summary", map[string]any{
		"agents": []map[string]any{
			{"name": "code-review", "totalRequests": 980, "successRate": 0.97, "avgLatencyMs": 820},
			{"name": "test-writer", "totalRequests": 640, "successRate": 0.93, "avgLatencyMs": 1280},
		},
	})
	serve("/api/v1/agents/executions", map[string]any{
		"executions": []map[string]any{
			{"id": "exec-101", "agent": "code-review", "status": "success", "durationMs": 750, "startedAt": now.Add(-6 * time.Minute)},
			{"id": "exec-102", "agent": "test-writer", "status": "failed", "durationMs": 1900, "startedAt": now.Add(-14 * time.Minute)},
		},
	})
	serve("/api/v1/agents/trends", map[string]any{"points": series(92, 0.2, 24)})
	serve("/api/v1/routing/stats", map[string]any{
		"routes": []map[string]any{
			{"target": "fast-tier", "requests": 4200, "successRate": 97.2, "avgLatencyMs": 290},
			{"target": "deep-tier", "requests": 600, "successRate": 91.8, "avgLatencyMs": 2300},
		},
	})
	serve("/api/v1/routing/volume", map[string]any{"points": series(300, 4, 24)})
	serve("/api/v1/code/quality", map[string]any{
		"summary": map[string]any{"totalFiles": 388, "avgComplexity": 5.9, "coverage": 0.81, "techDebtScore": 21.5},
	})
	serve("/api/v1/code/hotspots", map[string]any{
		"hotspots": []map[string]any{
			{"path": "internal/worker/queue.go", "complexity": 29, "churn": 15, "risk": 0.78},
			{"path": "internal/auth/session.go", "complexity": 22, "churn": 9, "risk": 0.61},
		},
	})
	serve("/api/v1/savings/summary", map[string]any{
		"entries": []map[string]any{
			{"category": "compute", "amountCents": 884000},
			{"category": "developer-hours", "amountCents": 652500},
		},
	})
	serve("/api/v1/savings/trend", map[string]any{"points": series(250000, 9000, 6)})
	serve("/api/v1/events/recent", map[string]any{
		"events": []map[string]any{
			{"id": "evt-201", "type": "deployment", "severity": "info", "message": "aggregator rollout complete", "timestamp": now.Add(-9 * time.Minute)},
			{"id": "evt-202", "type": "threshold", "severity": "warning", "message": "deep-tier latency above target", "timestamp": now.Add(-41 * time.Minute)},
		},
	})
	serve("/api/v1/events/volume", map[string]any{"points": series(8, 0.5, 24)})
	serve("/api/v1/platform/health", map[string]any{
		"components": []map[string]any{
			{"name": "api-gateway", "status": "healthy", "uptime": 0.9998, "errorRate": 0.2, "p95LatencyMs": 110, "requests": 45200},
			{"name": "agent-runtime", "status": "healthy", "uptime": 0.9989, "errorRate": 0.6, "p95LatencyMs": 840, "requests": 7600},
		},
	})
	serve("/api/v1/patterns/detected", map[string]any{
		"patterns": []map[string]any{
			{"name": "retry storm", "category": "resilience", "occurrences": 11, "confidence": 0.86, "lastSeen": now.Add(-3 * time.Hour)},
			{"name": "n+1 query", "category": "performance", "occurrences": 17, "confidence": 0.91, "lastSeen": now.Add(-20 * time.Hour)},
		},
	})
	serve("/api/v1/architecture/graph", map[string]any{
		"nodes": []map[string]any{
			{"name": "dashboard", "kind": "frontend", "requests": 45200},
			{"name": "api-gateway", "kind": "service", "requests": 45200},
			{"name": "agent-runtime", "kind": "service", "requests": 7600},
		},
		"edges": []map[string]any{
			{"source": "dashboard", "target": "api-gateway", "call_rate": 115.0, "error_rate": 0.002},
			{"source": "api-gateway", "target": "agent-runtime", "call_rate": 19.0, "error_rate": 0.011},
		},
	})

	logger := log.New(log.Writer(), "insight-mock ", log.LstdFlags|log.Lmicroseconds)
	srv := &http.Server{
		Addr:    ":9080",
		Handler: logRequests(logger, mux),
	}

	logger.Println("listening on :9080")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server error: %v", err)
	}
}

func enforceGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
