// Package vndb provides a typed client for the VNDB Kana HTTP API.
package vndb

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avndb-cli/avndb/log"
)

// Stats holds the overall database statistics reported by GET /stats.
type Stats struct {
	Chars     int `json:"chars"`
	Producers int `json:"producers"`
	Releases  int `json:"releases"`
	Staff     int `json:"staff"`
	Tags      int `json:"tags"`
	Traits    int `json:"traits"`
	VN        int `json:"vn"`
}

// GetStats fetches the database-wide entry counts.
func (c *Client) GetStats() (*Stats, error) {
	resp, err := c.get(c.endpoint+"/stats", "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Errorf("vndb stats returned status %d", resp.StatusCode)
		return nil, statusErr(resp.StatusCode)
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode stats response: %w", err)
	}

	return &stats, nil
}
