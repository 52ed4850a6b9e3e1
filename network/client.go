// Package network builds the HTTP client used to deliver watch-time reports.
package network

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// NewClient returns a client with a cookie jar for the endpoint session.
// A zero timeout leaves requests unbounded.
func NewClient(timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	return &http.Client{
		Timeout:   timeout,
		Jar:       jar,
		Transport: newTransport(),
	}, nil
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}
