package booking

import "strings"

// ValidationError reports the required form fields that were missing or
// malformed. No network call is issued when validation fails.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
