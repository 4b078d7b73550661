package sources

import (
	"context"
	"log/slog"

	"github.com/pulsedash/pulse-aggregator/internal/chain"
	"github.com/pulsedash/pulse-aggregator/internal/mockdata"
	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/normalize"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
)

// ArchitectureClient serves the service dependency topology.
type ArchitectureClient struct {
	base
}

// NewArchitectureClient builds the architecture domain client.
func NewArchitectureClient(logger *slog.Logger, live, archive MetricsAPI, forceMock bool) *ArchitectureClient {
	return &ArchitectureClient{base: newBase(logger, live, archive, forceMock)}
}

// Graph fetches the dependency topology. A graph without nodes cannot be
// rendered and is rejected.
func (c *ArchitectureClient) Graph(ctx context.Context, window string) models.FetchResult[models.ArchitectureGraph] {
	req := models.MetricsRequest{Domain: domainArchitecture, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainArchitecture, "graph"),
		ranked(
			func(ctx context.Context) (repo.GraphPayload, error) { return c.live.FetchArchitectureGraph(ctx, req) },
			func(ctx context.Context) (repo.GraphPayload, error) { return c.archive.FetchArchitectureGraph(ctx, req) },
		),
		func(p repo.GraphPayload) bool { return len(p.Nodes) > 0 },
		buildArchitectureGraph,
		mockdata.Architecture,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// FetchAll is the panel-level entry point; architecture has a single group.
func (c *ArchitectureClient) FetchAll(ctx context.Context, window string) models.FetchResult[models.ArchitectureGraph] {
	return c.Graph(ctx, window)
}

func buildArchitectureGraph(p repo.GraphPayload) models.ArchitectureGraph {
	nodes := make([]models.GraphNode, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		nodes = append(nodes, models.GraphNode{
			Name:     n.Name,
			Kind:     n.Kind,
			Requests: n.Requests,
		})
	}

	rates := make([]float64, 0, len(p.Edges))
	for _, e := range p.Edges {
		rates = append(rates, e.ErrorRate)
	}
	format := normalize.DetectRateFormat(rates)

	edges := make([]models.GraphEdge, 0, len(p.Edges))
	for _, e := range p.Edges {
		edges = append(edges, models.GraphEdge{
			Source:       e.Source,
			Target:       e.Target,
			CallRate:     e.CallRate,
			ErrorRatePct: normalize.ToPercent(e.ErrorRate, format),
		})
	}

	return models.ArchitectureGraph{Nodes: nodes, Edges: edges}
}
