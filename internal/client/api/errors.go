package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks transport-level failures: connection refused,
	// DNS errors, timeouts. The server was never reached or never answered.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is wrapped by 401 responses (bad credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is wrapped by 404 responses.
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx response from the backend. Detail holds the server's
// `detail` field verbatim and is what the UI shows to the user.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return e.Detail
}

// Unwrap maps well-known statuses onto sentinel errors so call sites can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}
