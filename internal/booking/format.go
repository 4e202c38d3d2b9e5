package booking

import (
	"strconv"
	"strings"
	"time"
)

// AmountFromPrice turns an event's display price into the prefilled
// numeric amount: "Free" (any case) and unparsable values become 0.
func AmountFromPrice(price string) int {
	trimmed := strings.TrimSpace(price)
	if trimmed == "" || strings.EqualFold(trimmed, "free") {
		return 0
	}

	if amount, err := strconv.Atoi(trimmed); err == nil {
		return amount
	}

	// Strip currency symbols and separators, e.g. "BDT 1,500".
	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	amount, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return amount
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
}

// FormatDate renders an event date as weekday plus month name, e.g.
// "Saturday, March 14, 2026". Unparsable input is returned as-is.
func FormatDate(date string) string {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, date); err == nil {
			return parsed.Format("Monday, January 2, 2006")
		}
	}
	return date
}

// FormatTime renders an event time on a 12-hour clock, falling back to
// "Time TBA" when the event has no time.
func FormatTime(eventTime string) string {
	if strings.TrimSpace(eventTime) == "" {
		return "Time TBA"
	}
	if parsed, err := time.Parse("15:04", eventTime); err == nil {
		return parsed.Format("3:04 PM")
	}
	return eventTime
}
