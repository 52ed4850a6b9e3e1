// Package report delivers accumulated watch time to the remote endpoint.
//
// A single Reporter capability is invoked in one of two modes: NonBlocking for
// routine flushes, Blocking when the caller is about to go away and must know the
// request left before it returns.
package report

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// Form field names understood by the endpoint.
const (
	FieldVideoID   = "video_id"
	FieldWatchTime = "watch_time"
	FieldCSRFToken = "csrfmiddlewaretoken"
)

// ErrRejected is wrapped by every error caused by the endpoint's answer rather than the network.
var ErrRejected = errors.New("report rejected")

// Mode selects how Send waits for the request.
type Mode int

const (
	// NonBlocking returns immediately; failures are logged.
	NonBlocking Mode = iota
	// Blocking performs the request before returning and reports its error.
	Blocking
)

func (m Mode) String() string {
	if m == Blocking {
		return "blocking"
	}
	return "non-blocking"
}

// Payload is one watch time report. WatchTime is the running total in whole seconds.
type Payload struct {
	VideoID   string `json:"video_id" jsonschema:"description=Identifier of the watched content"`
	WatchTime int    `json:"watch_time" jsonschema:"minimum=0,description=Total watched seconds so far"`
	CSRFToken string `json:"csrfmiddlewaretoken,omitempty" jsonschema:"description=Anti-forgery token"`
}

// Form encodes the payload as the endpoint expects it.
func (p Payload) Form() url.Values {
	form := url.Values{}
	form.Set(FieldVideoID, p.VideoID)
	form.Set(FieldWatchTime, strconv.Itoa(p.WatchTime))
	form.Set(FieldCSRFToken, p.CSRFToken)
	return form
}

// Response is the JSON body the endpoint answers with.
type Response struct {
	Success   bool   `json:"success"`
	VideoID   any    `json:"video_id,omitempty"`
	WatchTime int    `json:"watch_time,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Reporter sends payloads to the endpoint.
type Reporter interface {
	Send(ctx context.Context, p Payload, mode Mode) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, p Payload, mode Mode) error

func (f ReporterFunc) Send(ctx context.Context, p Payload, mode Mode) error {
	return f(ctx, p, mode)
}
