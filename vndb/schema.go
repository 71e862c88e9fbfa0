// Package vndb provides a typed client for the VNDB Kana HTTP API.
package vndb

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// GetSchema fetches metadata about the API objects as an untyped JSON
// document. The schema is consumed as-is; no record type models it.
func (c *Client) GetSchema() (map[string]any, error) {
	resp, err := c.get(c.endpoint+"/schema", "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp.StatusCode)
	}

	var schema map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&schema); err != nil {
		return nil, fmt.Errorf("decode schema response: %w", err)
	}

	return schema, nil
}
