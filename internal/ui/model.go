// Package ui provides state and rendering for ephemeral terminal notifications.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/watchtime-cli/watchtime/style"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model holds the current notification, if any.
type Model struct {
	notification string
	generation   int
}

// NotificationMsg carries the text to show.
type NotificationMsg string

// ClearNotificationMsg resets the notification it was scheduled for.
type ClearNotificationMsg struct {
	generation int
}

// Notify returns a tea.Cmd that shows text next to the main view.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

func clearAfter(generation int) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{generation: generation}
	})
}

// Update processes incoming messages to modify the notification state.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.generation++
		return clearAfter(m.generation)
	case ClearNotificationMsg:
		// a newer notification outlives the timer of an older one
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the notification on screen.
func (m *Model) Current() string {
	return m.notification
}

// View appends the current notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
