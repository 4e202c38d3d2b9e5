package models

import "time"

// Booking is created once per checkout and immutable afterwards.
type Booking struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId,omitempty"`
	Event       *Event    `json:"event,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Amount      int       `json:"amount"`
	Quantity    int       `json:"quantity,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingRequest struct {
	EventID     string `json:"eventId"`
	PhoneNumber string `json:"phoneNumber"`
	Amount      int    `json:"amount"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}
