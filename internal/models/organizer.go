package models

// Organizer profile as stored by the backend. Looked up by the current
// user's email to gate organizer-only surfaces.
type Organizer struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
	Role         string `json:"role,omitempty"`
	Status       string `json:"status,omitempty"`
}

type OrganizerMetrics struct {
	TotalEvents    int     `json:"totalEvents"`
	PublishedCount int     `json:"publishedCount"`
	TicketsSold    int     `json:"ticketsSold"`
	Revenue        float64 `json:"revenue"`
}
