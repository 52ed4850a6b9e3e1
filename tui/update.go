package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/watchtime-cli/watchtime/internal/ui"
	"github.com/watchtime-cli/watchtime/report"
)

type tickMsg time.Time

type flushedMsg struct {
	sent bool
}

type doneMsg struct {
	reason string
}

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.tick(), b.waitForDone())
}

func (b *bubble) tick() tea.Cmd {
	return tea.Tick(b.options.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForDone resolves when the surface closes or the context is canceled.
func (b *bubble) waitForDone() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.source.SurfaceDone():
			return doneMsg{reason: "player closed"}
		case <-b.ctx.Done():
			return doneMsg{reason: "interrupted"}
		}
	}
}

func (b *bubble) flush() tea.Cmd {
	return func() tea.Msg {
		return flushedMsg{sent: b.source.Flush(true, report.NonBlocking)}
	}
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keymap.forceQuit), key.Matches(msg, b.keymap.quit):
			b.reason = "quit"
			return b, tea.Quit
		case key.Matches(msg, b.keymap.flush):
			cmds = append(cmds, b.flush())
		case key.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		}
	case tickMsg:
		b.stats = b.source.Stats()
		cmds = append(cmds, b.tick())
	case flushedMsg:
		b.stats = b.source.Stats()
		if msg.sent {
			cmds = append(cmds, ui.Notify("flush sent"))
		} else {
			cmds = append(cmds, ui.Notify("nothing to flush"))
		}
	case doneMsg:
		b.done = true
		b.reason = msg.reason
		b.stats = b.source.Stats()
		return b, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		cmds = append(cmds, cmd)
	}

	return b, tea.Batch(cmds...)
}
