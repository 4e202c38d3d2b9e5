package api

import (
	"context"
	"net/http"
	"net/url"

	"ticketly-gateway/internal/models"
)

// LookupOrganizer resolves an organizer profile by email. A backend 404
// means "not an organizer" and is returned as-is for callers to inspect
// with IsNotFound.
func (c *Client) LookupOrganizer(ctx context.Context, email string) (*models.Organizer, error) {
	query := url.Values{}
	query.Set("email", email)

	var organizer models.Organizer
	if err := c.do(ctx, http.MethodGet, "/api/organizers", query, nil, &organizer, false); err != nil {
		return nil, err
	}
	return &organizer, nil
}

func (c *Client) UpsertOrganizer(ctx context.Context, organizer models.Organizer) (*models.Organizer, error) {
	var saved models.Organizer
	if err := c.do(ctx, http.MethodPost, "/api/organizers/upsert", nil, organizer, &saved, true); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) CurrentOrganizer(ctx context.Context) (*models.Organizer, error) {
	var organizer models.Organizer
	if err := c.do(ctx, http.MethodGet, "/api/organizers/me", nil, nil, &organizer, true); err != nil {
		return nil, err
	}
	return &organizer, nil
}

func (c *Client) MyEvents(ctx context.Context) ([]models.Event, error) {
	return getCollection[models.Event](ctx, c, "/api/organizers/my-events", nil, true)
}

func (c *Client) OrganizerMetrics(ctx context.Context) (*models.OrganizerMetrics, error) {
	var metrics models.OrganizerMetrics
	if err := c.do(ctx, http.MethodGet, "/api/organizers/metrics", nil, nil, &metrics, true); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// UpdateEventStatus patches a single event's status field.
func (c *Client) UpdateEventStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, "/api/organizers/events/"+id+"/status", nil, body, nil, true)
}

func (c *Client) DeleteOrganizerEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/organizers/events/"+id, nil, nil, nil, true)
}
