package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/watchtime-cli/watchtime/color"
	"github.com/watchtime-cli/watchtime/icon"
	"github.com/watchtime-cli/watchtime/style"
	"github.com/watchtime-cli/watchtime/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *bubble) View() string {
	s := b.stats

	var status string
	switch {
	case s.Inert:
		status = style.Fg(color.Red)(icon.Get(icon.Fail) + " no playback surface")
	case s.Released || b.done:
		status = style.Faint("released")
	case s.Playing:
		status = b.spinnerC.View() + " " + style.Fg(color.Green)(icon.Get(icon.Play)+" playing")
	default:
		status = style.Fg(color.Yellow)(icon.Get(icon.Pause) + " paused")
	}

	title := style.Title("watchtime")
	if s.VideoID != "" {
		title += " " + style.Fg(color.Purple)("video "+s.VideoID)
	}

	lines := []string{
		title,
		"",
		status,
		"",
		fmt.Sprintf("%s %s", style.Bold("Watched "), util.Clock(s.Watched)),
		fmt.Sprintf("%s %s in %s, last %s",
			style.Bold("Reported"),
			util.Clock(s.Accumulated),
			util.Quantify(s.Flushes, "flush", "flushes"),
			util.Ago(s.LastFlush, b.options.Clock.Now()),
		),
	}

	if b.options.Endpoint != "" {
		lines = append(lines, style.Faint(wrap.String(icon.Get(icon.Upload)+" "+b.options.Endpoint, util.Max(b.width, 20))))
	}

	lines = append(lines, "", b.helpC.View(b.keymap))

	return paddingStyle.Render(b.notifier.View(strings.Join(lines, "\n")))
}
