package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchtime-cli/watchtime/constant"
)

func TestCommand(t *testing.T) {
	Convey("Command picks the platform opener", t, func() {
		cmd, err := Command(constant.Linux, "http://localhost:8000/accounts/login/")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", "http://localhost:8000/accounts/login/"})

		cmd, err = Command(constant.Darwin, "https://example.com/")
		So(err, ShouldBeNil)
		So(cmd.Args[0], ShouldEqual, "open")

		cmd, err = Command(constant.Android, "https://example.com/")
		So(err, ShouldBeNil)
		So(cmd.Args[0], ShouldEqual, "termux-open")
	})

	Convey("Command refuses anything but http(s)", t, func() {
		for _, link := range []string{"file:///etc/passwd", "javascript:alert(1)", "/relative/path", "https://"} {
			_, err := Command(constant.Linux, link)
			So(err, ShouldNotBeNil)
		}
	})

	Convey("Command refuses unknown platforms", t, func() {
		_, err := Command("plan9", "https://example.com/")
		So(err, ShouldNotBeNil)
	})
}
