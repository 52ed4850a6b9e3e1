package report

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchtime-cli/watchtime/log"
	"github.com/watchtime-cli/watchtime/network"
)

// endpoint records every request and answers with a canned status and body.
type endpoint struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []*http.Request
	forms    []url.Values
}

func (e *endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	e.mu.Lock()
	e.requests = append(e.requests, r)
	e.forms = append(e.forms, r.PostForm)
	status, body := e.status, e.body
	e.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (e *endpoint) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.requests)
}

func TestHTTPReporter(t *testing.T) {
	Convey("Given an endpoint and a reporter", t, func() {
		ep := &endpoint{status: http.StatusOK, body: `{"success": true, "video_id": 7, "watch_time": 42}`}
		srv := httptest.NewServer(ep)
		defer srv.Close()

		client, err := network.NewClient(0)
		So(err, ShouldBeNil)

		r, err := NewHTTPReporter(client, srv.URL+"/videos/update-watch-time/", "sess", "tok")
		So(err, ShouldBeNil)

		payload := Payload{VideoID: "7", WatchTime: 42, CSRFToken: "tok"}

		Convey("A blocking send posts the form and succeeds", func() {
			So(r.Send(context.Background(), payload, Blocking), ShouldBeNil)
			So(ep.count(), ShouldEqual, 1)

			req, form := ep.requests[0], ep.forms[0]
			So(req.Method, ShouldEqual, http.MethodPost)
			So(req.URL.Path, ShouldEqual, "/videos/update-watch-time/")
			So(form.Get(FieldVideoID), ShouldEqual, "7")
			So(form.Get(FieldWatchTime), ShouldEqual, "42")
			So(form.Get(FieldCSRFToken), ShouldEqual, "tok")
			So(req.Header.Get("X-CSRFToken"), ShouldEqual, "tok")
			So(req.Header.Get("Referer"), ShouldEqual, srv.URL+"/")

			session, err := req.Cookie("sessionid")
			So(err, ShouldBeNil)
			So(session.Value, ShouldEqual, "sess")
			csrf, err := req.Cookie("csrftoken")
			So(err, ShouldBeNil)
			So(csrf.Value, ShouldEqual, "tok")
		})

		Convey("A non-2xx answer is rejected", func() {
			ep.status, ep.body = http.StatusForbidden, "CSRF verification failed"
			err := r.Send(context.Background(), payload, Blocking)
			So(errors.Is(err, ErrRejected), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "403")
		})

		Convey("A malformed body is rejected", func() {
			ep.body = "<html>"
			So(errors.Is(r.Send(context.Background(), payload, Blocking), ErrRejected), ShouldBeTrue)
		})

		Convey("An unsuccessful body is rejected", func() {
			ep.status, ep.body = http.StatusOK, `{"success": false, "error": "no such video"}`
			err := r.Send(context.Background(), payload, Blocking)
			So(errors.Is(err, ErrRejected), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "no such video")
		})

		Convey("A network failure is not a rejection", func() {
			srv.Close()
			err := r.Send(context.Background(), payload, Blocking)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrRejected), ShouldBeFalse)
		})

		Convey("A non-blocking send returns at once and is drained by Wait", func() {
			So(r.Send(context.Background(), payload, NonBlocking), ShouldBeNil)
			So(r.Wait(time.Second), ShouldBeTrue)
			So(ep.count(), ShouldEqual, 1)
		})

		Convey("A failing non-blocking send is swallowed", func() {
			ep.status = http.StatusInternalServerError
			So(r.Send(context.Background(), payload, NonBlocking), ShouldBeNil)
			So(r.Wait(time.Second), ShouldBeTrue)
		})

		Convey("A failing non-blocking send is logged with the caller's fields", func() {
			logger, hook := test.NewNullLogger()
			ctx := log.NewContext(context.Background(), logger.WithFields(log.Fields{"tracker": "t1", "video": "7"}))

			ep.status = http.StatusInternalServerError
			So(r.Send(ctx, payload, NonBlocking), ShouldBeNil)
			So(r.Wait(time.Second), ShouldBeTrue)

			entry := hook.LastEntry()
			So(entry, ShouldNotBeNil)
			So(entry.Level, ShouldEqual, logrus.ErrorLevel)
			So(entry.Data["tracker"], ShouldEqual, "t1")
			So(errors.Is(entry.Data[logrus.ErrorKey].(error), ErrRejected), ShouldBeTrue)
		})
	})

	Convey("NewHTTPReporter rejects non-HTTP endpoints", t, func() {
		_, err := NewHTTPReporter(http.DefaultClient, "ftp://example.com/upload", "", "")
		So(err, ShouldNotBeNil)
	})
}

func TestOrigin(t *testing.T) {
	Convey("Origin strips the path", t, func() {
		o, err := Origin("https://videos.example.com:8443/videos/update-watch-time/?x=1")
		So(err, ShouldBeNil)
		So(o, ShouldEqual, "https://videos.example.com:8443/")

		_, err = Origin("/videos/update-watch-time/")
		So(err, ShouldNotBeNil)
	})
}

func TestPayload(t *testing.T) {
	Convey("Form encodes every field", t, func() {
		form := Payload{VideoID: "abc", WatchTime: 0, CSRFToken: ""}.Form()
		So(form.Get(FieldWatchTime), ShouldEqual, "0")
		So(form.Has(FieldCSRFToken), ShouldBeTrue)
		So(Blocking.String(), ShouldEqual, "blocking")
		So(NonBlocking.String(), ShouldEqual, "non-blocking")
	})
}
