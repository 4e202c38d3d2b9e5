package api

import (
	"context"
	"net/http"

	"ticketly-gateway/internal/models"
)

// ListEvents returns the public event catalogue.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	return getCollection[models.Event](ctx, c, "/api/events", nil, false)
}

func (c *Client) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodGet, "/api/events/"+id, nil, nil, &event, false); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent publishes a new organizer event.
func (c *Client) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	var created models.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", nil, event, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// PromoteEvent submits an event for promotion alongside creation.
func (c *Client) PromoteEvent(ctx context.Context, event models.Event) error {
	return c.do(ctx, http.MethodPost, "/api/promoteevents", nil, event, nil, true)
}
