package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
	ErrRequestFailed     = errors.New("request failed")
)

// APIError is a non-2xx backend response. It unwraps to the sentinel that
// classifies the status (ErrUnauthorized, ErrUnavailable or ErrRequestFailed),
// so callers can match with errors.Is and still read Message via errors.As.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d): %s", e.kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s (status %d)", e.kind, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.kind
}
