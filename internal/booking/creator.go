package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ticketly-gateway/internal/auth"
	"ticketly-gateway/internal/logger"
	"ticketly-gateway/internal/models"
	"ticketly-gateway/internal/ticket"
)

// RedirectDelay is how long a confirmed booking stays on screen before
// the automatic navigation to the bookings list, giving the attendee time
// to download the ticket first.
const RedirectDelay = 10 * time.Second

// Backend is the slice of the REST client the booking flow uses.
type Backend interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	MyBookings(ctx context.Context) ([]models.Booking, error)
}

// SessionSource exposes the current identity session.
type SessionSource interface {
	Session() *auth.Session
}

// Draft is the pre-filled booking form for a loaded event.
type Draft struct {
	Event  models.Event
	Name   string
	Email  string
	Amount int
}

// Form is the attendee's submitted input. Amount is kept as entered so an
// empty field is distinguishable from zero.
type Form struct {
	Name        string
	Email       string
	PhoneNumber string
	Amount      string
}

// Confirmation is the post-submit display state.
type Confirmation struct {
	Event         models.Event
	Booking       models.Booking
	TicketID      string
	RedirectAfter time.Duration
}

// Creator drives the checkout flow for a single event.
type Creator struct {
	backend  Backend
	sessions SessionSource
	logger   *logger.Logger
}

func NewCreator(backend Backend, sessions SessionSource, log *logger.Logger) *Creator {
	return &Creator{backend: backend, sessions: sessions, logger: log}
}

// Load fetches the event and prefills the form: amount from the event's
// price, attendee identity from the session when present.
func (c *Creator) Load(ctx context.Context, eventID string) (*Draft, error) {
	event, err := c.backend.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event %s: %w", eventID, err)
	}

	draft := &Draft{
		Event:  *event,
		Amount: AmountFromPrice(event.Price),
	}

	if session := c.sessions.Session(); session != nil {
		draft.Name = session.DisplayName
		draft.Email = session.Email
	}

	return draft, nil
}

func validate(form Form) (int, error) {
	var missing []string
	if strings.TrimSpace(form.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(form.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(form.PhoneNumber) == "" {
		missing = append(missing, "phoneNumber")
	}
	if strings.TrimSpace(form.Amount) == "" {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return 0, &ValidationError{Missing: missing}
	}

	amount, err := strconv.Atoi(strings.TrimSpace(form.Amount))
	if err != nil || amount < 0 {
		return 0, &ValidationError{Missing: []string{"amount"}}
	}
	return amount, nil
}

// Submit posts the booking. It requires a signed-in session and all four
// form fields; on success it derives the display ticket identifier and
// returns the confirmation state.
func (c *Creator) Submit(ctx context.Context, draft *Draft, form Form) (*Confirmation, error) {
	if c.sessions.Session() == nil {
		return nil, auth.ErrAuthRequired
	}

	amount, err := validate(form)
	if err != nil {
		return nil, err
	}

	req := models.BookingRequest{
		EventID:     draft.Event.ID,
		PhoneNumber: strings.TrimSpace(form.PhoneNumber),
		Amount:      amount,
		Name:        strings.TrimSpace(form.Name),
		Email:       strings.TrimSpace(form.Email),
	}

	booked, err := c.backend.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}

	createdAt := booked.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	ticketID := ticket.DeriveTicketID(createdAt, booked.ID)

	c.logger.LogBooking("CREATED", booked.ID, fmt.Sprintf("ticket %s for event %s", ticketID, draft.Event.ID))

	return &Confirmation{
		Event:         draft.Event,
		Booking:       *booked,
		TicketID:      ticketID,
		RedirectAfter: RedirectDelay,
	}, nil
}

// Payload builds the QR payload for a confirmation.
func (c *Confirmation) Payload(now time.Time) ticket.Payload {
	return ticket.NewPayload(c.Event, c.Booking, c.TicketID, now)
}
