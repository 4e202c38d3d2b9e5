package ticket

import (
	"strconv"
	"strings"
	"time"

	"ticketly-gateway/internal/models"
)

// TicketIDPrefix marks display ticket identifiers. The identifier is a
// convenience for the attendee, not a verifiable credential.
const TicketIDPrefix = "TKT"

// DeriveTicketID synthesizes the display ticket identifier from a
// booking's creation time and identifier suffix. Pure function: the same
// booking always yields the same string.
func DeriveTicketID(createdAt time.Time, bookingID string) string {
	millis := strconv.FormatInt(createdAt.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	suffix := bookingID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}

	return strings.ToUpper(TicketIDPrefix + "-" + millis + "-" + suffix)
}

// Payload is the JSON document encoded into the ticket's QR code. It is
// fully client-constructible and unsigned; scanners treat it as display
// data only.
type Payload struct {
	TicketID    string `json:"ticketId"`
	BookingID   string `json:"bookingId"`
	EventID     string `json:"eventId"`
	EventTitle  string `json:"eventTitle"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Amount      int    `json:"amount"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	GeneratedAt string `json:"generatedAt"`
}

// NewPayload assembles the QR payload for a confirmed booking.
func NewPayload(event models.Event, booking models.Booking, ticketID string, now time.Time) Payload {
	return Payload{
		TicketID:    ticketID,
		BookingID:   booking.ID,
		EventID:     event.ID,
		EventTitle:  event.Title,
		Name:        booking.Name,
		Email:       booking.Email,
		PhoneNumber: booking.PhoneNumber,
		Amount:      booking.Amount,
		Date:        event.Date,
		Time:        event.Time,
		Venue:       event.Location,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
}
