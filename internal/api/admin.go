package api

import (
	"context"
	"net/http"

	"ticketly-gateway/internal/models"
)

// Admin collection endpoints. Each accepts a bare array or an {items}
// envelope; deletes target a single row.

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return getCollection[models.User](ctx, c, "/api/admin/users", nil, true)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/users/"+id, nil, nil, nil, true)
}

func (c *Client) ListAdminEvents(ctx context.Context) ([]models.Event, error) {
	return getCollection[models.Event](ctx, c, "/api/admin/events", nil, true)
}

func (c *Client) DeleteAdminEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/events/"+id, nil, nil, nil, true)
}

func (c *Client) ListOrganizers(ctx context.Context) ([]models.Organizer, error) {
	return getCollection[models.Organizer](ctx, c, "/api/admin/organizers", nil, true)
}

func (c *Client) DeleteOrganizer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/organizers/"+id, nil, nil, nil, true)
}

// AdminMetric fetches a single dashboard aggregate, e.g.
// /api/admin/metrics/total-revenue. Each endpoint is independently
// optional; callers decide what to do on failure.
func (c *Client) AdminMetric(ctx context.Context, name string) (float64, error) {
	var payload struct {
		Value float64 `json:"value"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/metrics/"+name, nil, nil, &payload, true); err != nil {
		return 0, err
	}
	return payload.Value, nil
}
