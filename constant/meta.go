// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "watchtime"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is sent with every watch-time report.
	UserAgent = App + "/" + Version
)

// Build metadata, overridden with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
