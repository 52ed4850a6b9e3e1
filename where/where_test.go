package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchtime-cli/watchtime/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override variable", func() {
			t.Setenv(EnvConfigPath, "/custom/watchtime")
			So(Config(), ShouldEqual, "/custom/watchtime")
			So(lo.Must(filesystem.API().IsDir("/custom/watchtime")), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(filepath.Base(path), ShouldEqual, "logs")
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Sockets() globs inside Temp()", func() {
			So(filepath.Dir(Sockets()), ShouldEqual, Temp())
			So(filepath.Ext(Sockets()), ShouldEqual, ".sock")
		})
	})
}
