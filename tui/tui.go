// Package tui renders a live status view of a running watch time tracker.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/watchtime-cli/watchtime/report"
	"github.com/watchtime-cli/watchtime/tracker"
)

// Source is the tracker the view observes.
type Source interface {
	Stats() tracker.Stats
	Flush(force bool, mode report.Mode) bool
	SurfaceDone() <-chan struct{}
}

// Options encapsulates the runtime configuration for the status view.
type Options struct {
	// Endpoint is displayed under the counters.
	Endpoint string
	// Refresh is the redraw period, 250ms if zero.
	Refresh time.Duration
	Clock   clockwork.Clock
}

// Run shows the status view until the user quits, ctx is canceled or the surface goes away.
func Run(ctx context.Context, source Source, options *Options) error {
	bubble := newBubble(ctx, source, options)
	_, err := tea.NewProgram(bubble).Run()
	return err
}
