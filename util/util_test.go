package util

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "flush", "flushes"), ShouldEqual, "1 flush")
		So(Quantify(0, "flush", "flushes"), ShouldEqual, "0 flushes")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("playing"), ShouldEqual, "Playing")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestClock(t *testing.T) {
	Convey("Clock", t, func() {
		So(Clock(0), ShouldEqual, "0:00")
		So(Clock(7*time.Second+900*time.Millisecond), ShouldEqual, "0:07")
		So(Clock(61*time.Second), ShouldEqual, "1:01")
		So(Clock(time.Hour+2*time.Minute+3*time.Second), ShouldEqual, "1:02:03")
		So(Clock(-time.Second), ShouldEqual, "0:00")
	})

	Convey("Ago", t, func() {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		So(Ago(time.Time{}, now), ShouldEqual, "never")
		So(Ago(now.Add(-90*time.Second), now), ShouldEqual, "1:30 ago")
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestIgnore(t *testing.T) {
	Convey("Ignore swallows the error", t, func() {
		called := false
		Ignore(func() error {
			called = true
			return errors.New("boom")
		})
		So(called, ShouldBeTrue)
	})
}
