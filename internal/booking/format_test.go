package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ticketly-gateway/internal/booking"
)

func TestAmountFromPrice(t *testing.T) {
	assert.Equal(t, 500, booking.AmountFromPrice("500"))
	assert.Equal(t, 0, booking.AmountFromPrice("Free"))
	assert.Equal(t, 0, booking.AmountFromPrice("FREE"))
	assert.Equal(t, 0, booking.AmountFromPrice(""))
	assert.Equal(t, 1500, booking.AmountFromPrice("BDT 1,500"))
	assert.Equal(t, 250, booking.AmountFromPrice(" 250 "))
	assert.Equal(t, 0, booking.AmountFromPrice("TBD"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Saturday, March 14, 2026", booking.FormatDate("2026-03-14"))
	assert.Equal(t, "Saturday, March 14, 2026", booking.FormatDate("2026-03-14T00:00:00.000Z"))
	assert.Equal(t, "not a date", booking.FormatDate("not a date"))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "6:30 PM", booking.FormatTime("18:30"))
	assert.Equal(t, "9:05 AM", booking.FormatTime("09:05"))
	assert.Equal(t, "Time TBA", booking.FormatTime(""))
	assert.Equal(t, "Time TBA", booking.FormatTime("   "))
	assert.Equal(t, "evening", booking.FormatTime("evening"))
}
