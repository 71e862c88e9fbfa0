// Package vndb provides a typed client for the VNDB Kana HTTP API.
//
// A Client owns a single HTTP session for its lifetime: NewClient acquires
// it, Close releases it. There is no caching, batching or retrying; every
// operation is one request and one response.
package vndb

import (
	"fmt"
	"net/http"

	"github.com/avndb-cli/avndb/constant"
	"github.com/avndb-cli/avndb/key"
	"github.com/avndb-cli/avndb/network"
	"github.com/spf13/viper"
)

// DefaultEndpoint is the root URL of the Kana API.
const DefaultEndpoint = "https://api.vndb.org/kana"

// Client talks to the VNDB Kana API. Use NewClient; the zero value has no
// session and every operation on it fails with ErrClientClosed.
type Client struct {
	endpoint string
	session  *http.Client
}

// NewClient acquires a fresh HTTP session. The endpoint is taken from the
// api.endpoint configuration key when set, DefaultEndpoint otherwise.
func NewClient() *Client {
	endpoint := viper.GetString(key.APIEndpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		endpoint: endpoint,
		session:  network.NewClient(),
	}
}

// Close releases the session. It is idempotent and must be called on every
// exit path once the client is no longer needed; operations after Close
// fail with ErrClientClosed.
func (c *Client) Close() {
	if c.session != nil {
		c.session.CloseIdleConnections()
		c.session = nil
	}
}

// do validates the session and performs the request, wrapping transport
// failures.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c == nil || c.session == nil {
		return nil, ErrClientClosed
	}

	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vndb request: %w", err)
	}
	return resp, nil
}

// get issues a GET request against the given API path. An optional bearer
// token is attached as required by the Kana authentication scheme.
func (c *Client) get(url string, token string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	return c.do(req)
}
