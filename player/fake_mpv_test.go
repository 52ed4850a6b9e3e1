package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"testing"
)

// fakeMPV answers the subset of the mpv JSON-IPC protocol the package speaks.
type fakeMPV struct {
	path     string
	ln       net.Listener
	mu       sync.Mutex
	watchers []net.Conn
	observed chan string
}

func newFakeMPV(t *testing.T) *fakeMPV {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	f := &fakeMPV{path: path, ln: ln, observed: make(chan string, 16)}
	go f.serve()
	t.Cleanup(f.Close)
	return f
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd struct {
			Command   []interface{} `json:"command"`
			RequestID int64         `json:"request_id"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil || len(cmd.Command) == 0 {
			continue
		}

		var data interface{}
		switch cmd.Command[0] {
		case "get_property":
			data = 4242
		case "observe_property":
			f.mu.Lock()
			f.watchers = append(f.watchers, conn)
			f.mu.Unlock()
			f.observed <- fmt.Sprint(cmd.Command[2])
		}

		reply, _ := json.Marshal(map[string]interface{}{"data": data, "error": "success", "request_id": cmd.RequestID})
		_, _ = conn.Write(append(reply, '\n'))
	}
}

// push writes a raw event line to every observing connection.
func (f *fakeMPV) push(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.watchers {
		_, _ = c.Write([]byte(line + "\n"))
	}
}

// hangUp drops every observing connection, as mpv does on quit.
func (f *fakeMPV) hangUp() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.watchers {
		c.Close()
	}
	f.watchers = nil
}

func (f *fakeMPV) Close() {
	f.ln.Close()
	f.hangUp()
}
