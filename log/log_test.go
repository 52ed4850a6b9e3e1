package log

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/watchtime-cli/watchtime/filesystem"
	"github.com/watchtime-cli/watchtime/key"
	"github.com/watchtime-cli/watchtime/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Scoped entries are still usable", func() {
			So(func() { WithFields(Fields{"video": "42"}).Info("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("Today's log file is created", func() {
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)
		})
	})
}

func TestContext(t *testing.T) {
	Convey("Given a context carrying a scoped entry", t, func() {
		logger, hook := test.NewNullLogger()
		ctx := NewContext(context.Background(), logger.WithField("tracker", "t1"))

		Convey("FromContext returns it with its fields", func() {
			FromContext(ctx).Error("report failed")
			So(hook.LastEntry(), ShouldNotBeNil)
			So(hook.LastEntry().Data["tracker"], ShouldEqual, "t1")
		})
	})

	Convey("A bare context yields a usable entry", t, func() {
		So(FromContext(context.Background()), ShouldNotBeNil)
		So(func() { FromContext(context.Background()).Info("ignored") }, ShouldNotPanic)
	})
}
