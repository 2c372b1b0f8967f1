package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is matched by APIError values carrying a 404.
	ErrNotFound = errors.New("task not found")

	// ErrBadRequest is matched by APIError values carrying a 400.
	ErrBadRequest = errors.New("bad request")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api returned %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.TraceID != "" {
		msg += " (trace " + e.TraceID + ")"
	}
	return msg
}

// Is lets errors.Is match status-based sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	default:
		return false
	}
}
