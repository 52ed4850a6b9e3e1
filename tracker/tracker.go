// Package tracker accumulates watch time from playback events and flushes it to a reporting endpoint.
//
// A Tracker observes one player.Surface. Time spent playing is folded into a cumulative
// total on every pause, end and flush; the total is reported on a fixed cadence, on
// pause when the rate limit allows, on end, and once more when the tracker is torn down.
// Every handler runs under one lock, so events, timer ticks and teardown are serialized.
package tracker

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/watchtime-cli/watchtime/log"
	"github.com/watchtime-cli/watchtime/player"
	"github.com/watchtime-cli/watchtime/report"
)

// Defaults applied to zero Config durations.
const (
	DefaultFlushInterval     = 10 * time.Second
	DefaultMinFlushInterval  = 5 * time.Second
	DefaultInitialFlushDelay = time.Second
	DefaultUnloadTimeout     = 5 * time.Second
)

// Config is fixed at construction.
type Config struct {
	// Selector locates the playback surface.
	Selector string
	// FlushInterval is the period of the recurring flush.
	FlushInterval time.Duration
	// MinFlushInterval rate-limits non-forced flushes.
	MinFlushInterval time.Duration
	// InitialFlushDelay schedules the forced flush that registers the view.
	InitialFlushDelay time.Duration
	// UnloadTimeout bounds the final blocking flush sent on unload and close.
	UnloadTimeout time.Duration
	// URL is the endpoint the reporter posts to.
	URL       string
	CSRFToken string
	VideoID   string
}

func (c Config) withDefaults() Config {
	if c.FlushInterval <= 0 {
		c.FlushInterval = DefaultFlushInterval
	}
	if c.MinFlushInterval < 0 {
		c.MinFlushInterval = 0
	} else if c.MinFlushInterval == 0 {
		c.MinFlushInterval = DefaultMinFlushInterval
	}
	if c.InitialFlushDelay <= 0 {
		c.InitialFlushDelay = DefaultInitialFlushDelay
	}
	if c.UnloadTimeout <= 0 {
		c.UnloadTimeout = DefaultUnloadTimeout
	}
	return c
}

// Locator resolves a selector to a playback surface.
type Locator func(selector string) (player.Surface, error)

// Option customizes a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock, primarily for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithID sets the identifier used in log entries instead of a random one.
func WithID(id string) Option {
	return func(t *Tracker) {
		t.id = id
	}
}

// Stats is a point-in-time snapshot of a Tracker.
type Stats struct {
	ID      string
	VideoID string
	// Accumulated is the folded total, what the last flush was computed from.
	Accumulated time.Duration
	// Watched adds the running interval to Accumulated.
	Watched   time.Duration
	Playing   bool
	LastFlush time.Time
	Flushes   int
	Inert     bool
	Released  bool
}

// Tracker owns the watch time state for one playback surface.
type Tracker struct {
	id       string
	cfg      Config
	clock    clockwork.Clock
	reporter report.Reporter
	surface  player.Surface
	sendCtx  context.Context
	logger   *logrus.Entry

	mu          sync.Mutex
	session     Session
	accumulated time.Duration
	lastFlush   time.Time
	flushes     int
	inert       bool
	released    bool

	stop     chan struct{}
	loopDone chan struct{}
}

// New locates the surface selected by cfg and starts tracking it.
//
// If no surface is found the error is logged and an inert Tracker is returned:
// no listener, no timer, and every method is a no-op. Otherwise the tracker
// attaches to the surface, starts the periodic flush, schedules the initial forced
// flush, and treats cancellation of ctx as the unload of its host.
func New(ctx context.Context, cfg Config, locate Locator, reporter report.Reporter, opts ...Option) *Tracker {
	t := &Tracker{
		id:       uuid.NewString(),
		cfg:      cfg.withDefaults(),
		clock:    clockwork.NewRealClock(),
		reporter: reporter,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.logger = log.WithFields(log.Fields{"tracker": t.id, "video": t.cfg.VideoID})
	t.sendCtx = log.NewContext(context.WithoutCancel(ctx), t.logger)

	surface, err := locate(t.cfg.Selector)
	if err == nil {
		err = surface.Attach(t.Handle)
	}
	if err != nil {
		t.logger.Errorf("playback surface not found with selector %q: %v", t.cfg.Selector, err)
		t.inert = true
		return t
	}

	t.surface = surface
	t.stop = make(chan struct{})
	t.loopDone = make(chan struct{})

	ticker := t.clock.NewTicker(t.cfg.FlushInterval)
	initial := t.clock.NewTimer(t.cfg.InitialFlushDelay)
	go t.loop(ctx, ticker, initial)

	t.logger.Infof("watch time tracker attached (interval=%s, threshold=%s, endpoint=%s)", t.cfg.FlushInterval, t.cfg.MinFlushInterval, t.cfg.URL)
	return t
}

// loop delivers timer callbacks and the unload signal until teardown.
func (t *Tracker) loop(unload context.Context, ticker clockwork.Ticker, initial clockwork.Timer) {
	defer close(t.loopDone)
	defer ticker.Stop()
	defer initial.Stop()

	for {
		select {
		case <-initial.Chan():
			t.Flush(true, report.NonBlocking)
		case <-ticker.Chan():
			t.Flush(false, report.NonBlocking)
		case <-unload.Done():
			t.Unload()
			return
		case <-t.stop:
			return
		}
	}
}

// ID returns the identifier used in log entries.
func (t *Tracker) ID() string {
	return t.id
}

// Inert reports whether construction failed to find a surface.
func (t *Tracker) Inert() bool {
	return t.inert
}

// SurfaceDone is closed when the observed surface stops delivering events.
// For an inert tracker it is already closed.
func (t *Tracker) SurfaceDone() <-chan struct{} {
	if t.inert {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return t.surface.Done()
}

// Handle applies one playback event. It is the handler attached to the surface.
func (t *Tracker) Handle(e player.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inert || t.released {
		return
	}

	now := t.clock.Now()
	wasPlaying := t.session.Playing()

	var folded time.Duration
	t.session, folded = t.session.Transition(e, now)
	t.accumulated += folded

	switch e {
	case player.Started:
		if !wasPlaying {
			t.logger.Debug("playback started")
		}
	case player.Paused:
		if !wasPlaying {
			return
		}
		t.logger.Debugf("playback paused after %.1f seconds", folded.Seconds())
		if now.Sub(t.lastFlush) >= t.cfg.MinFlushInterval {
			t.flushLocked(t.sendCtx, false, report.NonBlocking)
		}
	case player.Ended:
		t.logger.Debug("playback ended")
		t.flushLocked(t.sendCtx, true, report.NonBlocking)
	}
}

// Flush reports the accumulated watch time. Unless force is set, nothing is sent when
// the total is zero or the previous flush is more recent than the minimum interval.
// It reports whether a payload was handed to the reporter.
func (t *Tracker) Flush(force bool, mode report.Mode) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inert || t.released {
		return false
	}
	return t.flushLocked(t.sendCtx, force, mode)
}

func (t *Tracker) flushLocked(ctx context.Context, force bool, mode report.Mode) bool {
	now := t.clock.Now()

	var folded time.Duration
	t.session, folded = t.session.Checkpoint(now)
	t.accumulated += folded

	if t.accumulated == 0 && !force {
		return false
	}
	if !force && now.Sub(t.lastFlush) < t.cfg.MinFlushInterval {
		return false
	}

	t.lastFlush = now
	t.flushes++

	payload := report.Payload{
		VideoID:   t.cfg.VideoID,
		WatchTime: int(math.Round(t.accumulated.Seconds())),
		CSRFToken: t.cfg.CSRFToken,
	}

	if err := t.reporter.Send(ctx, payload, mode); err != nil {
		t.logger.WithError(err).Errorf("error updating watch time (%s)", mode)
		return true
	}

	t.logger.Infof("watch time update sent: %d seconds (%s)", payload.WatchTime, mode)
	return true
}

// Unload handles the host going away: the running interval is folded, a forced
// blocking flush bounded by UnloadTimeout is sent and the periodic flush is canceled.
func (t *Tracker) Unload() {
	t.teardown("unload")
}

// Close detaches from the surface, cancels the periodic flush and the unload
// handler, and sends one last forced blocking flush. It is a no-op after Unload.
func (t *Tracker) Close() {
	t.teardown("close")
	if !t.inert {
		<-t.loopDone
	}
}

func (t *Tracker) teardown(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inert || t.released {
		return
	}

	t.surface.Detach()

	ctx, cancel := context.WithTimeout(t.sendCtx, t.cfg.UnloadTimeout)
	defer cancel()
	t.flushLocked(ctx, true, report.Blocking)
	t.released = true
	close(t.stop)

	t.logger.Infof("watch time tracker released on %s after %.1f seconds", reason, t.accumulated.Seconds())
}

// Stats returns a snapshot of the tracker state.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Stats{
		ID:          t.id,
		VideoID:     t.cfg.VideoID,
		Accumulated: t.accumulated,
		Watched:     t.accumulated + t.session.Pending(t.clock.Now()),
		Playing:     t.session.Playing(),
		LastFlush:   t.lastFlush,
		Flushes:     t.flushes,
		Inert:       t.inert,
		Released:    t.released,
	}
}
