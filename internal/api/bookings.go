package api

import (
	"context"
	"net/http"

	"ticketly-gateway/internal/models"
)

// CreateBooking posts a checkout. The backend trusts the submitted amount
// and quantity; no capacity reconciliation happens in this tier.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", nil, req, &booking, true); err != nil {
		return nil, err
	}
	return &booking, nil
}

// MyBookings returns the caller's bookings, each populated with its event.
func (c *Client) MyBookings(ctx context.Context) ([]models.Booking, error) {
	return getCollection[models.Booking](ctx, c, "/api/bookings/my-bookings", nil, true)
}

func (c *Client) CreateContact(ctx context.Context, req models.ContactRequest) error {
	return c.do(ctx, http.MethodPost, "/api/contacts", nil, req, nil, true)
}
