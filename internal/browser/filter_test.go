package browser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly-gateway/internal/browser"
	"ticketly-gateway/internal/models"
)

var catalogue = []models.Event{
	{ID: "e1", Title: "Jazz Night", Subtitle: "Live quartet", Category: "Music", Location: "Dhaka"},
	{ID: "e2", Title: "Tech Summit", Subtitle: "Cloud and data", Category: "Conference", Location: "Chattogram"},
	{ID: "e3", Title: "Food Carnival", Subtitle: "Street food", Category: "Food", Location: "Dhaka"},
	{ID: "e4", Title: "Indie Rock Fest", Subtitle: "Three stages", Category: "Music", Location: "Sylhet"},
}

func TestNeutralFilterReturnsEverything(t *testing.T) {
	f := browser.Filter{Category: browser.AllCategories, Location: browser.AllLocations}
	assert.Equal(t, catalogue, browser.Apply(catalogue, f))

	// Zero values are neutral too.
	assert.Equal(t, catalogue, browser.Apply(catalogue, browser.Filter{}))
}

func TestFilterIsConjunction(t *testing.T) {
	f := browser.Filter{Category: "Music", Location: "Dhaka"}
	got := browser.Apply(catalogue, f)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
}

func TestFilterDimensionsAreOrderIndependent(t *testing.T) {
	byCategory := browser.Apply(catalogue, browser.Filter{Category: "Music"})
	both := browser.Apply(byCategory, browser.Filter{Location: "Sylhet"})

	byLocation := browser.Apply(catalogue, browser.Filter{Location: "Sylhet"})
	reversed := browser.Apply(byLocation, browser.Filter{Category: "Music"})

	assert.Equal(t, both, reversed)
	assert.Equal(t, both, browser.Apply(catalogue, browser.Filter{Category: "Music", Location: "Sylhet"}))
}

func TestSearchMatchesTitleSubtitleLocation(t *testing.T) {
	got := browser.Apply(catalogue, browser.Filter{Search: "jazz"})
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)

	got = browser.Apply(catalogue, browser.Filter{Search: "STAGES"})
	require.Len(t, got, 1)
	assert.Equal(t, "e4", got[0].ID)

	got = browser.Apply(catalogue, browser.Filter{Search: "dhaka"})
	assert.Len(t, got, 2)
}

func TestApplyPreservesOrder(t *testing.T) {
	got := browser.Apply(catalogue, browser.Filter{Category: "Music"})
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e4", got[1].ID)
}

type stubCatalogue struct {
	events []models.Event
	calls  int
}

func (s *stubCatalogue) ListEvents(ctx context.Context) ([]models.Event, error) {
	s.calls++
	return s.events, nil
}

func TestBrowserFiltersWithoutRefetching(t *testing.T) {
	source := &stubCatalogue{events: catalogue}
	b := browser.NewBrowser(source)
	require.NoError(t, b.Load(context.Background()))

	assert.Len(t, b.Visible(), 4)

	b.SetCategory("Music")
	assert.Len(t, b.Visible(), 2)

	b.SetLocation("Sylhet")
	require.Len(t, b.Visible(), 1)
	assert.Equal(t, "e4", b.Visible()[0].ID)

	b.SetCategory(browser.AllCategories)
	b.SetLocation(browser.AllLocations)
	b.SetSearch("")
	assert.Equal(t, catalogue, b.Visible())

	assert.Equal(t, 1, source.calls)
}
