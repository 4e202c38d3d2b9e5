package ticket_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly-gateway/internal/models"
	"ticketly-gateway/internal/ticket"
)

func TestDeriveTicketID(t *testing.T) {
	createdAt := time.UnixMilli(1767312345678)

	id := ticket.DeriveTicketID(createdAt, "booking-abc123")
	assert.Equal(t, "TKT-12345678-ABC123", id)

	// Pure function: same inputs, same identifier.
	assert.Equal(t, id, ticket.DeriveTicketID(createdAt, "booking-abc123"))

	// Short booking identifiers are used whole.
	assert.Equal(t, "TKT-12345678-B1", ticket.DeriveTicketID(createdAt, "b1"))
}

func TestDeriveTicketIDUppercases(t *testing.T) {
	id := ticket.DeriveTicketID(time.UnixMilli(1767312345678), "xyzzy9")
	assert.Equal(t, "TKT-12345678-XYZZY9", id)
}

func TestPayloadFields(t *testing.T) {
	event := models.Event{
		ID:       "evt-1",
		Title:    "Jazz Night",
		Date:     "2026-03-14",
		Time:     "18:30",
		Location: "Dhaka",
	}
	booking := models.Booking{
		ID:          "booking-1",
		Name:        "Ana",
		Email:       "ana@example.com",
		PhoneNumber: "0171",
		Amount:      500,
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	payload := ticket.NewPayload(event, booking, "TKT-12345678-KING-1", now)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "TKT-12345678-KING-1", decoded["ticketId"])
	assert.Equal(t, "booking-1", decoded["bookingId"])
	assert.Equal(t, "evt-1", decoded["eventId"])
	assert.Equal(t, "Jazz Night", decoded["eventTitle"])
	assert.Equal(t, "Dhaka", decoded["venue"])
	assert.Equal(t, float64(500), decoded["amount"])
	assert.Equal(t, "2026-03-01T12:00:00Z", decoded["generatedAt"])
}

func TestQRProducesPNG(t *testing.T) {
	payload := ticket.Payload{TicketID: "TKT-12345678-ABC123", EventTitle: "Jazz Night"}

	img, err := ticket.QR(payload)
	require.NoError(t, err)
	require.NotEmpty(t, img)

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestWriteFileLeavesNothingOnRenderFailure(t *testing.T) {
	renderer := ticket.NewRenderer()
	renderer.FontPath = filepath.Join(t.TempDir(), "missing.ttf")

	out := filepath.Join(t.TempDir(), "ticket.pdf")
	err := renderer.WriteFile(ticket.Payload{TicketID: "TKT-1"}, out)

	var renderErr *ticket.RenderError
	require.ErrorAs(t, err, &renderErr)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}
