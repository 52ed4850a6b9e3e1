// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Tracker - these keys drive the watch-time accumulator and its flush cadence.
const (
	TrackerSelector          = "tracker.selector"
	TrackerFlushInterval     = "tracker.flush_interval"
	TrackerMinFlushInterval  = "tracker.min_flush_interval"
	TrackerInitialFlushDelay = "tracker.initial_flush_delay"
	TrackerUnloadTimeout     = "tracker.unload_timeout"
)

// Reporting endpoint - these keys describe where and as what watch time is reported.
const (
	ReportURL       = "report.url"
	ReportVideoID   = "report.video_id"
	ReportCSRFToken = "report.csrf_token"
	ReportTimeout   = "report.timeout"
)

// Media Playback - these keys configure the player launched by `track --launch`.
const (
	PlayerBinary = "player.binary"
)

// Terminal User Interface (TUI)
const (
	TUIEnable = "tui.enable"
)

// Iconography
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment
const (
	CliColored = "cli.colored"
)
