// Package browser implements the public event browser: one fetch of the
// catalogue, then in-memory filtering over independent dimensions.
package browser

import (
	"context"
	"strings"
	"sync"

	"ticketly-gateway/internal/models"
)

// Neutral filter values that pass every event.
const (
	AllCategories = "All"
	AllLocations  = "All Locations"
)

// Filter is a conjunction over independent dimensions. Matching is
// order-independent: applying category before location gives the same
// result as the reverse.
type Filter struct {
	Category string
	Location string
	Search   string
}

func (f Filter) matchCategory(e models.Event) bool {
	return f.Category == "" || f.Category == AllCategories || e.Category == f.Category
}

func (f Filter) matchLocation(e models.Event) bool {
	return f.Location == "" || f.Location == AllLocations || e.Location == f.Location
}

func (f Filter) matchSearch(e models.Event) bool {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Subtitle), term) ||
		strings.Contains(strings.ToLower(e.Location), term)
}

// Match reports whether the event passes all dimensions.
func (f Filter) Match(e models.Event) bool {
	return f.matchCategory(e) && f.matchLocation(e) && f.matchSearch(e)
}

// Apply filters events preserving original order. With all dimensions
// neutral the input comes back unmodified.
func Apply(events []models.Event, f Filter) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Catalogue is the slice of the REST client the browser needs.
type Catalogue interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// Browser holds the fetched collection and the current filter. Every
// filter change recomputes synchronously over the in-memory set; there is
// no pagination and no debounce.
type Browser struct {
	catalogue Catalogue

	mu     sync.Mutex
	events []models.Event
	filter Filter
}

func NewBrowser(catalogue Catalogue) *Browser {
	return &Browser{
		catalogue: catalogue,
		filter:    Filter{Category: AllCategories, Location: AllLocations},
	}
}

// Load fetches the base collection once.
func (b *Browser) Load(ctx context.Context) error {
	events, err := b.catalogue.ListEvents(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.events = events
	b.mu.Unlock()
	return nil
}

func (b *Browser) SetCategory(category string) {
	b.mu.Lock()
	b.filter.Category = category
	b.mu.Unlock()
}

func (b *Browser) SetLocation(location string) {
	b.mu.Lock()
	b.filter.Location = location
	b.mu.Unlock()
}

func (b *Browser) SetSearch(term string) {
	b.mu.Lock()
	b.filter.Search = term
	b.mu.Unlock()
}

// Visible returns the filtered collection in original order.
func (b *Browser) Visible() []models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Apply(b.events, b.filter)
}
