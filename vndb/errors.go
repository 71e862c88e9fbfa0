// Package vndb provides a typed client for the VNDB Kana HTTP API.
package vndb

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors reported by the client. Match them with errors.Is.
var (
	// ErrIllformedQuery is returned when a filter cannot be constructed:
	// a malformed date, or an operator the field does not support.
	ErrIllformedQuery = errors.New("ill-formed vndb query")

	// ErrClientClosed is returned when an operation is invoked on a Client
	// whose session was never acquired or has already been released.
	// This is a programming error, not a network failure.
	ErrClientClosed = errors.New("vndb client not initialized or already closed")

	// ErrRateLimited is returned when the API answers with HTTP 429.
	// The client never retries; callers apply their own backoff.
	ErrRateLimited = errors.New("vndb rate limit exceeded")
)

// StatusError reports a non-success HTTP status other than 429.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("vndb: unexpected status %d", e.Code)
}

// statusErr maps a non-200 status code onto the error taxonomy.
func statusErr(code int) error {
	if code == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	return &StatusError{Code: code}
}
