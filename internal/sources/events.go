package sources

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pulsedash/pulse-aggregator/internal/chain"
	"github.com/pulsedash/pulse-aggregator/internal/mockdata"
	"github.com/pulsedash/pulse-aggregator/internal/models"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
)

const recentEventLimit = 20

// EventsClient serves the recent platform event feed and the event-volume
// series.
type EventsClient struct {
	base
}

// NewEventsClient builds the events domain client.
func NewEventsClient(logger *slog.Logger, live, archive MetricsAPI, forceMock bool) *EventsClient {
	return &EventsClient{base: newBase(logger, live, archive, forceMock)}
}

// EventsData bundles the events panel payload.
type EventsData struct {
	Recent []models.Event     `json:"recent"`
	Volume []models.TimePoint `json:"volume"`
	Mock   bool               `json:"isMock"`
}

// Recent fetches the latest platform events, newest first.
func (c *EventsClient) Recent(ctx context.Context, window string) models.FetchResult[[]models.Event] {
	req := models.MetricsRequest{Domain: domainEvents, TimeWindow: window, Limit: recentEventLimit}
	res := chain.Run(ctx, c.run(domainEvents, "recent"),
		ranked(
			func(ctx context.Context) ([]repo.EventRecord, error) { return c.live.FetchRecentEvents(ctx, req) },
			func(ctx context.Context) ([]repo.EventRecord, error) { return c.archive.FetchRecentEvents(ctx, req) },
		),
		nonEmpty[repo.EventRecord],
		toEvents,
		mockdata.Events,
	)
	return models.Resolved(res.Payload, res.Origin)
}

// Volume fetches the event-volume series for the window.
func (c *EventsClient) Volume(ctx context.Context, window string) models.FetchResult[[]models.TimePoint] {
	req := models.MetricsRequest{Domain: domainEvents, TimeWindow: window}
	res := chain.Run(ctx, c.run(domainEvents, "volume"),
		ranked(
			func(ctx context.Context) ([]repo.SeriesPoint, error) { return c.live.FetchEventVolume(ctx, req) },
			func(ctx context.Context) ([]repo.SeriesPoint, error) { return c.archive.FetchEventVolume(ctx, req) },
		),
		nonEmpty[repo.SeriesPoint],
		toTimePoints,
		func() []models.TimePoint {
			return mockdata.TimeSeriesStep(domainEvents, 10, 6, pointsForWindow(window), stepForWindow(window))
		},
	)
	return models.Resolved(res.Payload, res.Origin)
}

// FetchAll resolves both event groups concurrently.
func (c *EventsClient) FetchAll(ctx context.Context, window string) EventsData {
	var (
		recent models.FetchResult[[]models.Event]
		volume models.FetchResult[[]models.TimePoint]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { recent = c.Recent(gctx, window); return nil })
	g.Go(func() error { volume = c.Volume(gctx, window); return nil })
	_ = g.Wait()

	return EventsData{
		Recent: recent.Data,
		Volume: volume.Data,
		Mock:   recent.Mock || volume.Mock,
	}
}

func toEvents(records []repo.EventRecord) []models.Event {
	events := make([]models.Event, 0, len(records))
	for _, r := range records {
		events = append(events, models.Event{
			ID:        r.ID,
			Type:      r.Type,
			Severity:  r.Severity,
			Message:   r.Message,
			Timestamp: r.Timestamp,
		})
	}
	return events
}
