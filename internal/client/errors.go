package client

import (
	"errors"
	"fmt"
)

// ErrNoSettings is returned when a task has no consensus settings entity.
// The settings form renders its placeholder state in that case.
var ErrNoSettings = errors.New("task has no consensus settings")

// Maximum response body length embedded in error messages
const errBodyLimit = 200

// APIError describes a non-2xx server response. The body is retained so
// persist failures can surface the server's description to the user.
type APIError struct {
	Status int
	Body   string
}

// Error returns a short description including the status and body excerpt
func (e *APIError) Error() string {
	body := e.Body
	if len(body) > errBodyLimit {
		body = body[:errBodyLimit] + "..."
	}
	if body == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, body)
}
