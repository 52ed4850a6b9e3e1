// Package player observes media players over their JSON-IPC socket.
// The primary implementation targets mpv's --input-ipc-server interface.
package player

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/watchtime-cli/watchtime/where"
)

// ErrNotFound is returned by Locate when no socket matching the selector answers.
var ErrNotFound = errors.New("no player matches selector")

// Event is a playback lifecycle transition reported by a Surface.
type Event int

const (
	Started Event = iota + 1
	Paused
	Ended
)

func (e Event) String() string {
	switch e {
	case Started:
		return "started"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Surface is a playback surface owned by someone else that can be observed.
type Surface interface {
	// Attach starts delivering lifecycle events to handler. Events are delivered sequentially.
	Attach(handler func(Event)) error

	// Detach stops event delivery. It is safe to call more than once.
	Detach()

	// Done is closed once the surface stops delivering events, because of Detach or because the player went away.
	Done() <-chan struct{}
}

// Locate resolves selector, a socket path or glob, to the first player answering IPC requests.
// An empty selector searches the sockets of players launched by this application.
func Locate(selector string) (Surface, error) {
	if selector == "" {
		selector = where.Sockets()
	}

	matches, err := filepath.Glob(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}

	for _, socket := range matches {
		if _, err := doSendCommand(socket, []interface{}{"get_property", "pid"}); err == nil {
			return NewEventListener(socket), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
}
