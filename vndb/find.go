// Package vndb provides a typed client for the VNDB Kana HTTP API.
package vndb

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// normalizedTitle returns a lowercased, trimmed string for consistent
// comparison.
func normalizedTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// FindClosest searches for the query and returns the single result whose
// title is closest to it by Levenshtein distance. mo.None means the search
// matched nothing at all.
func (c *Client) FindClosest(query string, filter *VNFilter) (mo.Option[VN], error) {
	vns, err := c.SearchVN(query, filter)
	if err != nil {
		return mo.None[VN](), err
	}
	if len(vns) == 0 {
		return mo.None[VN](), nil
	}

	return mo.Some(closestByTitle(query, vns)), nil
}

func closestByTitle(query string, vns []VN) VN {
	name := normalizedTitle(query)
	return lo.MinBy(vns, func(a, b VN) bool {
		return levenshtein.Distance(name, normalizedTitle(a.Title)) <
			levenshtein.Distance(name, normalizedTitle(b.Title))
	})
}
