// Package network constructs pre-configured HTTP clients for API communication.
package network

import (
	"net/http"
	"time"
)

// NewClient returns a fresh HTTP client with a tuned transport. Each
// vndb.Client owns one such session for its lifetime rather than sharing a
// process-wide singleton.
func NewClient() *http.Client {
	return &http.Client{
		Timeout:   time.Minute,
		Transport: newTransport(),
	}
}

// newTransport initializes a tuned http.Transport with pool and timeout
// parameters sized for a single remote API host.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}
