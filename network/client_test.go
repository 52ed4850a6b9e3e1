package network

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewClient(t *testing.T) {
	Convey("Given a new client", t, func() {
		client, err := NewClient(5 * time.Second)
		So(err, ShouldBeNil)
		So(client.Timeout, ShouldEqual, 5*time.Second)

		Convey("Cookies set on the jar are sent back to the same host", func() {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if c, err := r.Cookie("sessionid"); err == nil {
					got = c.Value
				}
			}))
			defer srv.Close()

			u, _ := url.Parse(srv.URL)
			client.Jar.SetCookies(u, []*http.Cookie{{Name: "sessionid", Value: "abc"}})

			resp, err := client.Get(srv.URL)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(got, ShouldEqual, "abc")
		})
	})
}
