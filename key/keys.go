// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// API Access - these keys control how the VNDB Kana API is reached.
const (
	APIEndpoint = "api.endpoint"
)

// Search Interaction - these keys define the behavior of search discovery.
const (
	SearchResultsLimit         = "search.results_limit"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Diagnostics - these keys manage the persistence and verbosity of logs.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Presentation.
const (
	CliColored = "cli.colored"
)
