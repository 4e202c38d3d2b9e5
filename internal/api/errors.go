package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPError is a non-2xx backend response. Message is taken from the
// response body's "error" field, then "message", else a generic fallback.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	httpErr, ok := err.(*HTTPError)
	return ok && httpErr.Status == http.StatusNotFound
}

func errorFromResponse(resp *http.Response) *HTTPError {
	httpErr := &HTTPError{
		Status:  resp.StatusCode,
		Message: "request failed",
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(body) == 0 {
		return httpErr
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return httpErr
	}

	if payload.Error != "" {
		httpErr.Message = payload.Error
	} else if payload.Message != "" {
		httpErr.Message = payload.Message
	}
	return httpErr
}
