package models

import "time"

// EventStatus values as the backend stores them.
const (
	EventDraft     = "Draft"
	EventPublished = "Published"
	EventCancelled = "Cancelled"
)

// Event is the backend's event document. Consumers read it as-is; only
// organizer status transitions mutate it.
type Event struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle,omitempty"`
	Category       string    `json:"category"`
	Location       string    `json:"location"`
	Date           string    `json:"date"`
	Time           string    `json:"time,omitempty"`
	Price          string    `json:"price"`
	VIPTickets     int       `json:"vipTickets"`
	RegularTickets int       `json:"regularTickets"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Status         string    `json:"status,omitempty"`
	OrganizerEmail string    `json:"organizerEmail,omitempty"`
	TicketsSold    int       `json:"ticketsSold,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// Capacity is the total sellable tickets across tiers.
func (e Event) Capacity() int {
	return e.VIPTickets + e.RegularTickets
}

// SellThrough is the ratio of tickets sold to capacity, 0 when capacity
// is unknown.
func (e Event) SellThrough() float64 {
	cap := e.Capacity()
	if cap == 0 {
		return 0
	}
	return float64(e.TicketsSold) / float64(cap)
}
