package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchtime-cli/watchtime/internal/ui"
	"github.com/watchtime-cli/watchtime/report"
	"github.com/watchtime-cli/watchtime/tracker"
)

type stubSource struct {
	stats   tracker.Stats
	flushed []bool
	sent    bool
	done    chan struct{}
}

func (s *stubSource) Stats() tracker.Stats { return s.stats }

func (s *stubSource) Flush(force bool, _ report.Mode) bool {
	s.flushed = append(s.flushed, force)
	return s.sent
}

func (s *stubSource) SurfaceDone() <-chan struct{} { return s.done }

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestBubble(t *testing.T) {
	Convey("Given a status view over a playing tracker", t, func() {
		clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
		source := &stubSource{
			stats: tracker.Stats{
				VideoID:     "42",
				Watched:     7 * time.Second,
				Accumulated: 5 * time.Second,
				Playing:     true,
				Flushes:     1,
				LastFlush:   clock.Now().Add(-2 * time.Second),
			},
			sent: true,
			done: make(chan struct{}),
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		b := newBubble(ctx, source, &Options{Endpoint: "http://localhost:8000/videos/update-watch-time/", Clock: clock})

		Convey("The view shows the counters", func() {
			view := b.View()
			So(view, ShouldContainSubstring, "video 42")
			So(view, ShouldContainSubstring, "playing")
			So(view, ShouldContainSubstring, "0:07")
			So(view, ShouldContainSubstring, "1 flush")
			So(view, ShouldContainSubstring, "0:02 ago")
			So(view, ShouldContainSubstring, "update-watch-time")
		})

		Convey("A tick refreshes the stats", func() {
			source.stats.Playing = false
			source.stats.Watched = 9 * time.Second
			_, cmd := b.Update(tickMsg(clock.Now()))
			So(cmd, ShouldNotBeNil)
			So(b.View(), ShouldContainSubstring, "paused")
			So(b.View(), ShouldContainSubstring, "0:09")
		})

		Convey("Pressing f forces a flush and notifies", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
			So(cmd, ShouldNotBeNil)

			msg := cmd()
			So(msg, ShouldResemble, flushedMsg{sent: true})
			So(source.flushed, ShouldResemble, []bool{true})

			b.Update(msg)
			b.Update(ui.Notify("flush sent")())
			So(b.View(), ShouldContainSubstring, "flush sent")
		})

		Convey("q quits", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
			So(isQuit(cmd), ShouldBeTrue)
			So(b.reason, ShouldEqual, "quit")
		})

		Convey("ctrl+c quits", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
			So(isQuit(cmd), ShouldBeTrue)
		})

		Convey("The view quits when the player closes", func() {
			close(source.done)
			msg := b.waitForDone()()
			So(msg, ShouldResemble, doneMsg{reason: "player closed"})

			_, cmd := b.Update(msg)
			So(isQuit(cmd), ShouldBeTrue)
			So(b.View(), ShouldContainSubstring, "released")
		})

		Convey("The view quits when interrupted", func() {
			cancel()
			So(b.waitForDone()(), ShouldResemble, doneMsg{reason: "interrupted"})
		})
	})

	Convey("An inert tracker is reported as such", t, func() {
		source := &stubSource{stats: tracker.Stats{Inert: true}, done: make(chan struct{})}
		b := newBubble(context.Background(), source, nil)
		So(b.View(), ShouldContainSubstring, "no playback surface")
		So(b.View(), ShouldContainSubstring, "never")
	})
}
