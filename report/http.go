package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/watchtime-cli/watchtime/constant"
	"github.com/watchtime-cli/watchtime/log"
)

const (
	sessionCookie = "sessionid"
	csrfCookie    = "csrftoken"
	csrfHeader    = "X-CSRFToken"
	maxErrorBody  = 512
)

// HTTPReporter posts form-encoded payloads to an endpoint guarded by a CSRF token and a session cookie.
type HTTPReporter struct {
	client   *http.Client
	endpoint *url.URL
	pending  sync.WaitGroup
}

// NewHTTPReporter validates endpoint and seeds the client's cookie jar with the session and CSRF cookies.
func NewHTTPReporter(client *http.Client, endpoint, session, csrfToken string) (*HTTPReporter, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("report url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("report url: unsupported scheme %q", u.Scheme)
	}

	if client.Jar != nil {
		var cookies []*http.Cookie
		if session != "" {
			cookies = append(cookies, &http.Cookie{Name: sessionCookie, Value: session})
		}
		if csrfToken != "" {
			cookies = append(cookies, &http.Cookie{Name: csrfCookie, Value: csrfToken})
		}
		client.Jar.SetCookies(u, cookies)
	}

	return &HTTPReporter{client: client, endpoint: u}, nil
}

// Origin returns the scheme://host/ root of endpoint, the page the reports are made from.
func Origin(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("%q has no host", endpoint)
	}
	return origin(u), nil
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host + "/"
}

// Send posts p. In NonBlocking mode the request runs on its own goroutine and Send returns nil;
// its outcome is logged to the entry carried by ctx (see log.NewContext).
func (r *HTTPReporter) Send(ctx context.Context, p Payload, mode Mode) error {
	if mode == Blocking {
		_, err := r.post(ctx, p)
		return err
	}

	r.pending.Add(1)
	go func() {
		defer r.pending.Done()

		logger := log.FromContext(ctx)
		resp, err := r.post(ctx, p)
		if err != nil {
			logger.WithError(err).Errorf("watch time report for %s failed", p.VideoID)
			return
		}
		logger.Infof("watch time report accepted: video=%v watch_time=%d", resp.VideoID, resp.WatchTime)
	}()
	return nil
}

// Wait blocks until in-flight NonBlocking requests finish or timeout elapses. It reports whether they finished.
func (r *HTTPReporter) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (r *HTTPReporter) post(ctx context.Context, p Payload) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint.String(), strings.NewReader(p.Form().Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Referer", origin(r.endpoint))
	if p.CSRFToken != "" {
		req.Header.Set(csrfHeader, p.CSRFToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded Response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrRejected, err)
	}

	if !decoded.Success {
		return &decoded, fmt.Errorf("%w: %s", ErrRejected, decoded.Error)
	}

	return &decoded, nil
}
