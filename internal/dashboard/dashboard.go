// Package dashboard builds the admin and organizer metric views. Each
// admin aggregate is an independent endpoint; a failed one falls back to
// its placeholder value, and the result says which happened.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"ticketly-gateway/internal/logger"
	"ticketly-gateway/internal/models"
)

// Source tells whether a displayed number came from the backend or the
// placeholder fallback.
type Source string

const (
	SourceLive        Source = "live"
	SourcePlaceholder Source = "placeholder"
)

// Metric names one admin aggregate and its placeholder.
type Metric struct {
	Name        string
	Placeholder float64
}

// DefaultMetrics are the admin dashboard tiles.
var DefaultMetrics = []Metric{
	{Name: "total-users", Placeholder: 1248},
	{Name: "total-events", Placeholder: 86},
	{Name: "total-organizers", Placeholder: 42},
	{Name: "tickets-sold", Placeholder: 5312},
	{Name: "total-revenue", Placeholder: 184500},
}

// MetricResult is one tile's outcome. Err is set only for placeholder
// results, so tests can assert which state produced a number.
type MetricResult struct {
	Name   string
	Value  float64
	Source Source
	Err    error
}

// MetricsAPI is the slice of the REST client the admin dashboard uses.
type MetricsAPI interface {
	AdminMetric(ctx context.Context, name string) (float64, error)
}

// Admin fetches all tiles concurrently; partial failure never fails the
// whole view.
type Admin struct {
	api     MetricsAPI
	metrics []Metric
	logger  *logger.Logger
}

func NewAdmin(api MetricsAPI, log *logger.Logger) *Admin {
	return &Admin{api: api, metrics: DefaultMetrics, logger: log}
}

// Fetch resolves every tile. Results come back in the tile order
// regardless of which endpoint answered first.
func (a *Admin) Fetch(ctx context.Context) []MetricResult {
	results := make([]MetricResult, len(a.metrics))

	var wg sync.WaitGroup
	for i, metric := range a.metrics {
		wg.Add(1)
		go func(i int, metric Metric) {
			defer wg.Done()
			value, err := a.api.AdminMetric(ctx, metric.Name)
			if err != nil {
				a.logger.Warn("DASHBOARD", fmt.Sprintf("Metric %s unavailable, using placeholder: %v", metric.Name, err))
				results[i] = MetricResult{
					Name:   metric.Name,
					Value:  metric.Placeholder,
					Source: SourcePlaceholder,
					Err:    err,
				}
				return
			}
			results[i] = MetricResult{Name: metric.Name, Value: value, Source: SourceLive}
		}(i, metric)
	}
	wg.Wait()

	return results
}

// OrganizerBackend is the slice of the REST client the organizer
// dashboard uses.
type OrganizerBackend interface {
	OrganizerMetrics(ctx context.Context) (*models.OrganizerMetrics, error)
	MyEvents(ctx context.Context) ([]models.Event, error)
}

// EventPerformance is one event row on the organizer performance page.
type EventPerformance struct {
	Event       models.Event
	SellThrough float64
}

// OrganizerView is the organizer dashboard's data.
type OrganizerView struct {
	Metrics     models.OrganizerMetrics
	Performance []EventPerformance
}

type Organizer struct {
	backend OrganizerBackend
	logger  *logger.Logger
}

func NewOrganizer(backend OrganizerBackend, log *logger.Logger) *Organizer {
	return &Organizer{backend: backend, logger: log}
}

// Fetch loads organizer metrics and per-event sell-through. Unlike the
// admin tiles these are required: a failure fails the view.
func (o *Organizer) Fetch(ctx context.Context) (*OrganizerView, error) {
	metrics, err := o.backend.OrganizerMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organizer metrics: %w", err)
	}

	events, err := o.backend.MyEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organizer events: %w", err)
	}

	view := &OrganizerView{Metrics: *metrics}
	for _, event := range events {
		view.Performance = append(view.Performance, EventPerformance{
			Event:       event,
			SellThrough: event.SellThrough(),
		})
	}
	return view, nil
}
