package auth

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestCredentials(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		So(Delete(), ShouldBeNil)

		Convey("Load returns empty credentials", func() {
			c, err := Load()
			So(err, ShouldBeNil)
			So(c, ShouldResemble, Credentials{})
		})

		Convey("When credentials are saved", func() {
			So(Save(Credentials{Session: "s3ss10n", CSRFToken: "t0k3n"}), ShouldBeNil)

			Convey("They load back", func() {
				c, err := Load()
				So(err, ShouldBeNil)
				So(c.Session, ShouldEqual, "s3ss10n")
				So(c.CSRFToken, ShouldEqual, "t0k3n")
			})

			Convey("Saving an empty token keeps the stored one", func() {
				So(Save(Credentials{Session: "other"}), ShouldBeNil)
				c, _ := Load()
				So(c.CSRFToken, ShouldEqual, "t0k3n")
				So(c.Session, ShouldEqual, "other")
			})

			Convey("Delete clears them", func() {
				So(Delete(), ShouldBeNil)
				c, _ := Load()
				So(c.Session, ShouldBeEmpty)
			})
		})
	})
}

func TestMask(t *testing.T) {
	Convey("Mask keeps a short prefix", t, func() {
		So(Mask(""), ShouldEqual, "")
		So(Mask("abc"), ShouldEqual, "***")
		So(Mask("abcdefgh"), ShouldEqual, "abcd****")
		So(Mask("abcd"+strings.Repeat("x", 40)), ShouldEqual, "abcd"+strings.Repeat("*", 12))
	})
}
