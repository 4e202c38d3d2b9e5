package booking

import (
	"context"
	"fmt"
	"time"

	"ticketly-gateway/internal/auth"
	"ticketly-gateway/internal/logger"
	"ticketly-gateway/internal/models"
	"ticketly-gateway/internal/ticket"
)

// Item is one booking row with its derived display fields.
type Item struct {
	Booking   models.Booking
	TicketID  string
	DateLabel string
	TimeLabel string
}

// Payload builds the QR payload for downloading this booking's ticket.
func (i Item) Payload(now time.Time) ticket.Payload {
	var event models.Event
	if i.Booking.Event != nil {
		event = *i.Booking.Event
	} else {
		event.ID = i.Booking.EventID
	}
	return ticket.NewPayload(event, i.Booking, i.TicketID, now)
}

// List serves the caller's bookings screen. It fails closed without a
// session.
type List struct {
	backend  Backend
	sessions SessionSource
	logger   *logger.Logger
}

func NewList(backend Backend, sessions SessionSource, log *logger.Logger) *List {
	return &List{backend: backend, sessions: sessions, logger: log}
}

// Fetch loads the caller's bookings. Re-invoking with no intervening
// mutation yields an identical list.
func (l *List) Fetch(ctx context.Context) ([]Item, error) {
	if l.sessions.Session() == nil {
		return nil, auth.ErrAuthRequired
	}

	bookings, err := l.backend.MyBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	items := make([]Item, 0, len(bookings))
	for _, b := range bookings {
		item := Item{
			Booking:  b,
			TicketID: ticket.DeriveTicketID(b.CreatedAt, b.ID),
		}
		if b.Event != nil {
			item.DateLabel = FormatDate(b.Event.Date)
			item.TimeLabel = FormatTime(b.Event.Time)
		} else {
			item.TimeLabel = "Time TBA"
		}
		items = append(items, item)
	}

	return items, nil
}
