// Package dashboard assembles per-domain fetch results into the page-level
// payloads the dashboard front end renders. Page assembly degrades panel by
// panel: one domain falling back to mock data never blocks or blanks the
// others.
package dashboard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/sources"
)

// Clients bundles the domain clients an orchestrator composes.
type Clients struct {
	Agents       *sources.AgentsClient
	Routing      *sources.RoutingClient
	CodeIntel    *sources.CodeIntelClient
	Savings      *sources.SavingsClient
	Events       *sources.EventsClient
	Platform     *sources.PlatformClient
	Patterns     *sources.PatternsClient
	Architecture *sources.ArchitectureClient
}

// Orchestrator fans page requests out across the domain clients and merges
// the per-panel results.
type Orchestrator struct {
	logger  *slog.Logger
	clients Clients
}

// New builds an orchestrator over the given domain clients.
func New(logger *slog.Logger, clients Clients) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{logger: logger, clients: clients}
}

// OverviewPage is the operational landing page payload.
type OverviewPage struct {
	Window   string                                    `json:"window"`
	Agents   sources.AgentsData                        `json:"agents"`
	Events   sources.EventsData                        `json:"events"`
	Platform models.FetchResult[models.PlatformHealth] `json:"platform"`
	Savings  models.FetchResult[models.SavingsMetrics] `json:"savings"`
	Mock     bool                                      `json:"isMock"`
}

// IntelligencePage is the deep-analysis page payload.
type IntelligencePage struct {
	Window       string                                       `json:"window"`
	CodeIntel    sources.CodeIntelData                        `json:"codeIntelligence"`
	Patterns     models.FetchResult[models.PatternSummary]    `json:"patterns"`
	Architecture models.FetchResult[models.ArchitectureGraph] `json:"architecture"`
	Routing      sources.RoutingData                          `json:"routing"`
	Mock         bool                                         `json:"isMock"`
}

// Overview resolves the agents, events, platform, and savings panels
// concurrently. The page is flagged as mock when any panel is.
func (o *Orchestrator) Overview(ctx context.Context, window string) OverviewPage {
	page := OverviewPage{Window: window}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { page.Agents = o.clients.Agents.FetchAll(gctx, window); return nil })
	g.Go(func() error { page.Events = o.clients.Events.FetchAll(gctx, window); return nil })
	g.Go(func() error { page.Platform = o.clients.Platform.FetchAll(gctx, window); return nil })
	g.Go(func() error { page.Savings = o.clients.Savings.FetchAll(gctx, window); return nil })
	_ = g.Wait()

	page.Mock = page.Agents.Mock || page.Events.Mock || page.Platform.Mock || page.Savings.Mock
	if page.Mock {
		o.logger.Warn("overview page contains mock panels", slog.String("window", window))
	}
	return page
}

// Intelligence resolves the code intelligence, patterns, architecture, and
// routing panels concurrently.
func (o *Orchestrator) Intelligence(ctx context.Context, window string) IntelligencePage {
	page := IntelligencePage{Window: window}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { page.CodeIntel = o.clients.CodeIntel.FetchAll(gctx, window); return nil })
	g.Go(func() error { page.Patterns = o.clients.Patterns.FetchAll(gctx, window); return nil })
	g.Go(func() error { page.Architecture = o.clients.Architecture.FetchAll(gctx, window); return nil })
	g.Go(func() error { page.Routing = o.clients.Routing.FetchAll(gctx, window); return nil })
	_ = g.Wait()

	page.Mock = page.CodeIntel.Mock || page.Patterns.Mock || page.Architecture.Mock || page.Routing.Mock
	if page.Mock {
		o.logger.Warn("intelligence page contains mock panels", slog.String("window", window))
	}
	return page
}
