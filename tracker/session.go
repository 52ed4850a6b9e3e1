package tracker

import (
	"time"

	"github.com/samber/mo"
	"github.com/watchtime-cli/watchtime/player"
)

// Phase is the playback phase of a Session.
type Phase int

const (
	Idle Phase = iota
	Playing
)

func (p Phase) String() string {
	if p == Playing {
		return "playing"
	}
	return "idle"
}

// Session is the in-progress part of the watch time: a start marker present exactly while playing.
// The zero value is an idle session.
type Session struct {
	phase Phase
	start mo.Option[time.Time]
}

// Phase returns the current phase.
func (s Session) Phase() Phase {
	return s.phase
}

// Playing reports whether the session is in the Playing phase.
func (s Session) Playing() bool {
	return s.phase == Playing
}

// Start returns the start of the running interval, if any.
func (s Session) Start() mo.Option[time.Time] {
	return s.start
}

// Transition applies e at now and returns the next session and the time folded out of it.
func (s Session) Transition(e player.Event, now time.Time) (Session, time.Duration) {
	switch e {
	case player.Started:
		if s.Playing() {
			return s, 0
		}
		return Session{phase: Playing, start: mo.Some(now)}, 0
	case player.Paused, player.Ended:
		if !s.Playing() {
			return s, 0
		}
		return Session{phase: Idle, start: mo.None[time.Time]()}, s.elapsed(now)
	default:
		return s, 0
	}
}

// Checkpoint folds the running interval and restarts it at now, so the same interval is never folded twice.
func (s Session) Checkpoint(now time.Time) (Session, time.Duration) {
	if !s.Playing() {
		return s, 0
	}
	return Session{phase: Playing, start: mo.Some(now)}, s.elapsed(now)
}

// Pending returns the running interval without folding it.
func (s Session) Pending(now time.Time) time.Duration {
	if !s.Playing() {
		return 0
	}
	return s.elapsed(now)
}

// elapsed never goes negative, even if the wall clock stepped back.
func (s Session) elapsed(now time.Time) time.Duration {
	start, ok := s.start.Get()
	if !ok {
		return 0
	}
	if d := now.Sub(start); d > 0 {
		return d
	}
	return 0
}
