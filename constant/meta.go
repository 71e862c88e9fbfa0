// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Avndb is the canonical application identifier used for filesystem paths and CLI branding.
	Avndb = "avndb"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent identifies the client to the VNDB API, as the usage terms ask.
	UserAgent = Avndb + "/" + Version
)

// Build metadata, injected through -ldflags at release time.
var (
	Revision = "unknown"
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
)
