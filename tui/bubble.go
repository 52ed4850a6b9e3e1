package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/watchtime-cli/watchtime/internal/ui"
	"github.com/watchtime-cli/watchtime/tracker"
	"github.com/watchtime-cli/watchtime/util"
)

const defaultRefresh = 250 * time.Millisecond

type bubble struct {
	ctx     context.Context
	source  Source
	options Options
	keymap  *keymap

	spinnerC spinner.Model
	helpC    help.Model
	notifier *ui.Model

	stats  tracker.Stats
	done   bool
	reason string
	width  int
}

func newBubble(ctx context.Context, source Source, options *Options) *bubble {
	b := &bubble{
		ctx:      ctx,
		source:   source,
		keymap:   newKeymap(),
		notifier: &ui.Model{},
		stats:    source.Stats(),
	}

	if options != nil {
		b.options = *options
	}
	if b.options.Refresh <= 0 {
		b.options.Refresh = defaultRefresh
	}
	if b.options.Clock == nil {
		b.options.Clock = clockwork.NewRealClock()
	}

	b.helpC = help.New()

	b.spinnerC = spinner.New()
	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	b.resize(util.TerminalWidth(80))
	return b
}

func (b *bubble) resize(width int) {
	x, _ := paddingStyle.GetFrameSize()
	b.width = width - x
	b.helpC.Width = b.width
}
