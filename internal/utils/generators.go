package utils

import "github.com/google/uuid"

// GenerateRequestID returns a correlation ID attached to gateway
// requests and log lines.
func GenerateRequestID() string {
	return "req_" + uuid.NewString()
}
