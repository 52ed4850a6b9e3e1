package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/watchtime-cli/watchtime/log"
)

// observed lists the properties whose changes drive playback events.
var observed = []string{"pause", "idle-active", "eof-reached"}

// EventListener turns mpv property-change notifications into playback events.
// Observers are registered on the same persistent connection the events are read from,
// since mpv scopes observe_property to the issuing client.
type EventListener struct {
	socketPath string
	conn       net.Conn
	handler    func(Event)
	done       chan struct{}
	mu         sync.Mutex
	listening  bool
	detached   bool

	// playback state derived from observed properties, touched only by readLoop
	paused  bool
	idle    bool
	eof     bool
	playing bool
	ended   bool
}

// NewEventListener creates a listener for the given socket. Nothing is dialed until Attach.
func NewEventListener(socketPath string) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		done:       make(chan struct{}),
		paused:     true,
	}
}

// Socket returns the IPC socket path.
func (el *EventListener) Socket() string {
	return el.socketPath
}

// Attach dials the player, registers the property observers and starts the read loop.
func (el *EventListener) Attach(handler func(Event)) error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}
	if el.detached {
		return errors.New("event listener already detached")
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err := writeCommand(conn, []interface{}{"observe_property", i + 1, name}, requestSeq.Add(1)); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.handler = handler
	el.listening = true

	go el.readLoop()

	log.Infof("mpv event listener started on %s (observing: %s)", el.socketPath, strings.Join(observed, ", "))
	return nil
}

// Detach closes the connection, which ends the read loop.
func (el *EventListener) Detach() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.detached {
		return
	}
	el.detached = true

	if el.conn != nil {
		el.conn.Close()
	} else {
		close(el.done)
	}
}

// Done is closed when the read loop exits.
func (el *EventListener) Done() <-chan struct{} {
	return el.done
}

func (el *EventListener) readLoop() {
	defer close(el.done)

	reader := bufio.NewReader(el.conn)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			el.processEvent(line)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Warnf("event listener read error: %v", err)
			}
			return
		}
	}
}

// processEvent folds one IPC line into the derived state and emits the resulting event, if any.
func (el *EventListener) processEvent(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return
	}

	switch msg.Event {
	case "property-change":
		switch msg.Name {
		case "pause":
			el.paused = decodeBool(msg.Data)
		case "idle-active":
			el.idle = decodeBool(msg.Data)
		case "eof-reached":
			el.eof = decodeBool(msg.Data)
			if el.eof {
				el.end()
				return
			}
		default:
			return
		}
	case "end-file":
		el.end()
		return
	default:
		return
	}

	want := !el.paused && !el.idle && !el.eof
	switch {
	case want && !el.playing:
		el.playing = true
		el.ended = false
		el.emit(Started)
	case !want && el.playing:
		el.playing = false
		el.emit(Paused)
	}
}

// end emits Ended once per playback session.
func (el *EventListener) end() {
	if el.ended {
		return
	}
	el.ended = true
	el.playing = false
	el.emit(Ended)
}

func (el *EventListener) emit(e Event) {
	log.Debugf("mpv %s: %s", el.socketPath, e)
	if el.handler != nil {
		el.handler(e)
	}
}

// decodeBool treats null or non-boolean data as false.
func decodeBool(data json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return false
	}
	return b
}
