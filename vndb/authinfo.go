// Package vndb provides a typed client for the VNDB Kana HTTP API.
package vndb

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avndb-cli/avndb/log"
	"github.com/samber/mo"
)

// AuthInfo describes the owner and permissions of an API token.
type AuthInfo struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
}

// GetAuthInfo validates the given API token against GET /authinfo.
// An invalid or expired token is mo.None, not an error.
func (c *Client) GetAuthInfo(token string) (mo.Option[AuthInfo], error) {
	none := mo.None[AuthInfo]()

	resp, err := c.get(c.endpoint+"/authinfo", token)
	if err != nil {
		return none, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Infof("vndb authinfo returned status %d", resp.StatusCode)
		return none, nil
	}

	var info AuthInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return none, fmt.Errorf("decode authinfo response: %w", err)
	}

	if info.ID == "" {
		return none, nil
	}

	return mo.Some(info), nil
}
