package auth

import "errors"

// ErrAuthRequired is returned when an operation needs a signed-in session
// and none is present. Surfaces as a login redirect or inline prompt.
var ErrAuthRequired = errors.New("authentication required")
