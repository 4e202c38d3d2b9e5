package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly-gateway/internal/dashboard"
	"ticketly-gateway/internal/models"
)

type stubMetrics struct {
	values map[string]float64
	errs   map[string]error
}

func (s *stubMetrics) AdminMetric(ctx context.Context, name string) (float64, error) {
	if err, ok := s.errs[name]; ok {
		return 0, err
	}
	return s.values[name], nil
}

func TestAdminFetchAllLive(t *testing.T) {
	api := &stubMetrics{values: map[string]float64{
		"total-users":      10,
		"total-events":     20,
		"total-organizers": 30,
		"tickets-sold":     40,
		"total-revenue":    50,
	}}

	results := dashboard.NewAdmin(api, nil).Fetch(context.Background())
	require.Len(t, results, len(dashboard.DefaultMetrics))

	// Results stay in tile order regardless of goroutine completion.
	for i, metric := range dashboard.DefaultMetrics {
		assert.Equal(t, metric.Name, results[i].Name)
		assert.Equal(t, dashboard.SourceLive, results[i].Source)
		assert.Equal(t, api.values[metric.Name], results[i].Value)
		assert.NoError(t, results[i].Err)
	}
}

func TestAdminFetchFallsBackPerTile(t *testing.T) {
	backendErr := errors.New("backend returned status 500")
	api := &stubMetrics{
		values: map[string]float64{
			"total-users":      10,
			"total-organizers": 30,
			"tickets-sold":     40,
			"total-revenue":    50,
		},
		errs: map[string]error{"total-events": backendErr},
	}

	results := dashboard.NewAdmin(api, nil).Fetch(context.Background())

	byName := make(map[string]dashboard.MetricResult)
	for _, result := range results {
		byName[result.Name] = result
	}

	failed := byName["total-events"]
	assert.Equal(t, dashboard.SourcePlaceholder, failed.Source)
	assert.Equal(t, float64(86), failed.Value)
	assert.ErrorIs(t, failed.Err, backendErr)

	// One failed tile does not taint the others.
	live := byName["total-users"]
	assert.Equal(t, dashboard.SourceLive, live.Source)
	assert.Equal(t, float64(10), live.Value)
}

type stubOrganizerBackend struct {
	metrics    *models.OrganizerMetrics
	metricsErr error
	events     []models.Event
	eventsErr  error
}

func (s *stubOrganizerBackend) OrganizerMetrics(ctx context.Context) (*models.OrganizerMetrics, error) {
	return s.metrics, s.metricsErr
}

func (s *stubOrganizerBackend) MyEvents(ctx context.Context) ([]models.Event, error) {
	return s.events, s.eventsErr
}

func TestOrganizerFetchComputesSellThrough(t *testing.T) {
	backend := &stubOrganizerBackend{
		metrics: &models.OrganizerMetrics{TotalEvents: 2},
		events: []models.Event{
			{ID: "e1", VIPTickets: 20, RegularTickets: 80, TicketsSold: 25},
			{ID: "e2"},
		},
	}

	view, err := dashboard.NewOrganizer(backend, nil).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Performance, 2)
	assert.InDelta(t, 0.25, view.Performance[0].SellThrough, 1e-9)

	// Zero capacity yields zero sell-through, not a division error.
	assert.Equal(t, float64(0), view.Performance[1].SellThrough)
}

func TestOrganizerFetchFailsClosed(t *testing.T) {
	backend := &stubOrganizerBackend{metricsErr: errors.New("forbidden")}
	_, err := dashboard.NewOrganizer(backend, nil).Fetch(context.Background())
	assert.Error(t, err)

	backend = &stubOrganizerBackend{
		metrics:   &models.OrganizerMetrics{},
		eventsErr: errors.New("unavailable"),
	}
	_, err = dashboard.NewOrganizer(backend, nil).Fetch(context.Background())
	assert.Error(t, err)
}
