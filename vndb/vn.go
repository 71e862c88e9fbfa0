// Package vndb provides a typed client for the VNDB Kana HTTP API.
package vndb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avndb-cli/avndb/log"
)

// vnFields is the fixed field set requested from POST /vn.
const vnFields = "id,title,released,length,rating,votecount,devstatus"

// Development status values reported in VN.DevStatus.
const (
	DevStatusFinished      = 0
	DevStatusInDevelopment = 1
	DevStatusCancelled     = 2
)

// VN is a visual-novel row from a search response.
type VN struct {
	// ID is the vndbid of the entry, e.g. "v97".
	ID string `json:"id"`
	// Title is the main title of the entry.
	Title string `json:"title"`
	// Released is the release date as a YYYY-MM-DD string, or "TBA".
	Released string `json:"released"`
	// Length is the playtime-estimate bucket, 1 (very short) to 5 (very long).
	Length int `json:"length"`
	// Rating is the bayesian rating between 10 and 100.
	Rating float64 `json:"rating"`
	// VoteCount is the number of votes backing the rating.
	VoteCount int `json:"votecount"`
	// DevStatus is one of the DevStatus constants.
	DevStatus int `json:"devstatus"`
}

// VNPage is one page of search results plus pagination metadata. The
// filter echoes are only present when the matching SearchParams flag is set.
type VNPage struct {
	Results           []VN   `json:"results"`
	More              bool   `json:"more"`
	Count             int    `json:"count"`
	CompactFilters    string `json:"compact_filters"`
	NormalizedFilters any    `json:"normalized_filters"`
}

// SearchParams passes the documented query knobs through to the API.
// The zero value leaves everything at the server defaults.
type SearchParams struct {
	// Sort names the field to order by: id, title, released, rating, votecount.
	Sort string
	// Reverse inverts the sort order.
	Reverse bool
	// Results caps the page size (the API allows at most 100).
	Results int
	// Page is the 1-based page to fetch.
	Page int
	// Count asks the server to report the total number of matches.
	Count bool
	// User scopes user-labels fields to the given user id; forwarded verbatim.
	User string
	// CompactFilters asks the server to echo the compact filter encoding.
	CompactFilters bool
	// NormalizedFilters asks the server to echo the normalized filter form.
	NormalizedFilters bool
}

// SearchVN runs a free-text search conjoined with the given filter and
// returns the first page of matches. A nil slice means the search
// legitimately matched nothing; it is not an error.
func (c *Client) SearchVN(query string, filter *VNFilter) ([]VN, error) {
	page, err := c.SearchVNPage(query, filter, SearchParams{})
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, nil
	}
	return page.Results, nil
}

// SearchVNPage runs a free-text search conjoined with the given filter,
// passing the params through to the API, and returns one result page.
func (c *Client) SearchVNPage(query string, filter *VNFilter, params SearchParams) (*VNPage, error) {
	filters := filter.expr()
	if len(filters) == 0 {
		filters = []any{"search", "=", query}
	} else {
		filters = append(filters, []any{"search", "=", query})
	}

	body := map[string]any{
		"filters": filters,
		"fields":  vnFields,
	}
	if params.Sort != "" {
		body["sort"] = params.Sort
	}
	if params.Reverse {
		body["reverse"] = true
	}
	if params.Results > 0 {
		body["results"] = params.Results
	}
	if params.Page > 0 {
		body["page"] = params.Page
	}
	if params.Count {
		body["count"] = true
	}
	if params.User != "" {
		body["user"] = params.User
	}
	if params.CompactFilters {
		body["compact_filters"] = true
	}
	if params.NormalizedFilters {
		body["normalized_filters"] = true
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode search payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint+"/vn", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Errorf("vndb search returned status %d", resp.StatusCode)
		return nil, statusErr(resp.StatusCode)
	}

	var page VNPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	log.Infof("vndb search for %q returned %d results", query, len(page.Results))
	return &page, nil
}
