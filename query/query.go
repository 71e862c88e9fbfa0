// Package query manages the persistence and retrieval of search history and suggestions.
//
// Every successful VN search leaves a record behind: how often the query ran,
// how many entries it matched last time, and the vndbid of its best match.
// Suggestions are ranked by that history.
package query

import (
	"strings"
	"time"

	"github.com/avndb-cli/avndb/filesystem"
	"github.com/avndb-cli/avndb/key"
	"github.com/avndb-cli/avndb/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// searchRecord is one remembered VN search.
type searchRecord struct {
	// Rank accumulates result counts across runs and orders suggestions.
	Rank int `json:"rank"`
	// Query is the sanitized search text.
	Query string `json:"query"`
	// Hits is the result count of the most recent run.
	Hits int `json:"hits"`
	// TopVN is the vndbid of the best match from the most recent run.
	TopVN string `json:"top_vn"`
	// LastRun is the Unix-nano timestamp of the most recent run, used to
	// break rank ties in favor of recent searches.
	LastRun int64 `json:"last_run"`
}

var cacher = gache.New[map[string]*searchRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var suggestionCache = make(map[string][]*searchRecord)

// Remember records a successful VN search. The query's rank grows with the
// number of entries it matched, so productive queries surface first among
// suggestions; topVN keeps the vndbid of the best match for display.
func Remember(q string, hits int, topVN string) error {
	q = sanitize(q)
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*searchRecord)
	}

	record, ok := cached[q]
	if !ok {
		record = &searchRecord{Query: q}
		cached[q] = record
	}

	if hits < 1 {
		hits = 1
	}
	record.Rank += hits
	record.Hits = hits
	if topVN != "" {
		record.TopVN = topVN
	}
	record.LastRun = time.Now().UnixNano()

	return cacher.Set(cached)
}

// TopVN returns the vndbid of the best match recorded for a past query.
func TopVN(q string) mo.Option[string] {
	q = sanitize(q)
	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return mo.None[string]()
	}

	record, ok := cached[q]
	if !ok || record.TopVN == "" {
		return mo.None[string]()
	}
	return mo.Some(record.TopVN)
}

// Suggest returns the most relevant historical query suggestion for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns historical query suggestions matching the partial
// input, most productive first; equally ranked queries tie-break on recency.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)
	var records []*searchRecord

	if prev, ok := suggestionCache[q]; ok {
		records = prev
	} else {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, record := range cached {
			if fuzzy.Match(q, record.Query) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *searchRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank // Descending rank
			}
			if a.LastRun == b.LastRun {
				return 0
			}
			if b.LastRun > a.LastRun { // Most recent first
				return 1
			}
			return -1
		})

		suggestionCache[q] = records
	}

	return lo.Map(records, func(r *searchRecord, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
