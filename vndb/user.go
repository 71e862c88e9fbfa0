// Package vndb provides a typed client for the VNDB Kana HTTP API.
package vndb

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/avndb-cli/avndb/log"
	"github.com/samber/mo"
)

// User is a VNDB user record. LengthVotes and LengthVotesSum are only
// populated by GetUser, not GetUserDefaultOnly.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	LengthVotes    int    `json:"lengthvotes"`
	LengthVotesSum int    `json:"lengthvotes_sum"`
}

// GetUser resolves a user by username or vndbid, including the extended
// length-vote fields. An unknown user is mo.None, not an error; any non-200
// response from the server also reads as absence rather than an error.
func (c *Client) GetUser(q string) (mo.Option[User], error) {
	return c.getUser(q, false)
}

// GetUserDefaultOnly resolves a user fetching only the default fields
// (id and username).
func (c *Client) GetUserDefaultOnly(q string) (mo.Option[User], error) {
	return c.getUser(q, true)
}

func (c *Client) getUser(q string, defaultOnly bool) (mo.Option[User], error) {
	none := mo.None[User]()

	u := fmt.Sprintf("%s/user?q=%s", c.endpoint, url.QueryEscape(q))
	if !defaultOnly {
		u += "&fields=lengthvotes,lengthvotes_sum"
	}

	resp, err := c.get(u, "")
	if err != nil {
		return none, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Infof("vndb user lookup for %q returned status %d", q, resp.StatusCode)
		return none, nil
	}

	// The response is keyed by the query string; an unknown user maps to null.
	var records map[string]*User
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return none, fmt.Errorf("decode user response: %w", err)
	}

	record, ok := records[q]
	if !ok || record == nil {
		return none, nil
	}

	return mo.Some(*record), nil
}
