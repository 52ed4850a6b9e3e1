package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/watchtime-cli/watchtime/color"
	"github.com/watchtime-cli/watchtime/style"
)

type keymap struct {
	quit, forceQuit,
	flush,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		flush: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp(style.Fg(color.Yellow)("f"), style.Fg(color.Yellow)("flush now")),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.flush, k.quit, k.showHelp}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.flush}, {k.quit, k.forceQuit, k.showHelp}}
}
