package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/watchtime-cli/watchtime/auth"
	"github.com/watchtime-cli/watchtime/color"
	"github.com/watchtime-cli/watchtime/icon"
	"github.com/watchtime-cli/watchtime/key"
	"github.com/watchtime-cli/watchtime/log"
	"github.com/watchtime-cli/watchtime/network"
	"github.com/watchtime-cli/watchtime/player"
	"github.com/watchtime-cli/watchtime/report"
	"github.com/watchtime-cli/watchtime/style"
	"github.com/watchtime-cli/watchtime/tracker"
	"github.com/watchtime-cli/watchtime/tui"
	"github.com/watchtime-cli/watchtime/util"
)

// drainTimeout bounds how long pending non-blocking reports may delay exit.
const drainTimeout = 3 * time.Second

func init() {
	rootCmd.AddCommand(trackCmd)

	flags := trackCmd.Flags()

	flags.StringP("selector", "s", "", "Socket path or glob of the player to observe")
	lo.Must0(viper.BindPFlag(key.TrackerSelector, flags.Lookup("selector")))

	flags.StringP("video", "V", "", "Identifier of the content being watched")
	lo.Must0(viper.BindPFlag(key.ReportVideoID, flags.Lookup("video")))

	flags.StringP("url", "u", "", "Endpoint receiving the reports")
	lo.Must0(viper.BindPFlag(key.ReportURL, flags.Lookup("url")))

	flags.StringP("token", "t", "", "CSRF token, defaults to the one stored by \"auth login\"")
	lo.Must0(viper.BindPFlag(key.ReportCSRFToken, flags.Lookup("token")))

	flags.Int("interval", 0, "Milliseconds between periodic reports")
	lo.Must0(viper.BindPFlag(key.TrackerFlushInterval, flags.Lookup("interval")))

	flags.Int("threshold", 0, "Minimum milliseconds between two non-forced reports")
	lo.Must0(viper.BindPFlag(key.TrackerMinFlushInterval, flags.Lookup("threshold")))

	flags.Bool("tui", false, "Show the live status view")
	lo.Must0(viper.BindPFlag(key.TUIEnable, flags.Lookup("tui")))

	flags.StringP("launch", "l", "", "Open this file or URL in a new player and track it")
	flags.String("title", "", "Window title of the launched player")
}

func milliseconds(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Millisecond
}

// trackerConfig assembles the tracker configuration from viper, with token as the CSRF fallback.
func trackerConfig(selector, token string) tracker.Config {
	if t := viper.GetString(key.ReportCSRFToken); t != "" {
		token = t
	}

	return tracker.Config{
		Selector:          selector,
		FlushInterval:     milliseconds(key.TrackerFlushInterval),
		MinFlushInterval:  milliseconds(key.TrackerMinFlushInterval),
		InitialFlushDelay: milliseconds(key.TrackerInitialFlushDelay),
		UnloadTimeout:     milliseconds(key.TrackerUnloadTimeout),
		URL:               viper.GetString(key.ReportURL),
		CSRFToken:         token,
		VideoID:           viper.GetString(key.ReportVideoID),
	}
}

// launcher starts a player whose socket the tracker then attaches to.
type launcher interface {
	Play(target, title string) error
	Socket() string
	Close() error
}

// attach launches target on l when it is set and starts a tracker on the resulting selector.
// The returned release closes the launched player; it is already called when attach fails.
func attach(ctx context.Context, cfg tracker.Config, reporter report.Reporter, locate tracker.Locator, l launcher, target, title string) (*tracker.Tracker, func(), error) {
	release := func() {}

	if target != "" {
		if err := l.Play(target, title); err != nil {
			return nil, release, err
		}
		release = func() { util.Ignore(l.Close) }
		cfg.Selector = l.Socket()
	}

	t := tracker.New(ctx, cfg, locate, reporter)
	if t.Inert() {
		release()
		return nil, func() {}, fmt.Errorf("no player answering at %q, start mpv with --input-ipc-server or use --launch", lo.Ternary(cfg.Selector == "", "default sockets", cfg.Selector))
	}

	return t, release, nil
}

// trackCmd observes a player and reports the watched time until the player, the user or a signal ends it.
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track the watch time of a running player",
	Long: `Attach to a running mpv player through its IPC socket and report the accumulated watch time.
Reports are sent periodically, on pause, when playback ends and once more on exit.`,
	Example: `  watchtime track --video 42
  watchtime track --video 42 --launch ~/Videos/lecture.mkv --tui
  watchtime track -V 42 -s '/tmp/mpvsocket*' -u https://example.com/videos/update-watch-time/`,
	Run: func(cmd *cobra.Command, args []string) {
		if viper.GetString(key.ReportVideoID) == "" {
			handleErr(errors.New("video id is required, pass --video or set " + key.ReportVideoID))
		}

		creds, err := auth.Load()
		if err != nil {
			log.Warnf("keyring unavailable: %v", err)
		}

		cfg := trackerConfig(viper.GetString(key.TrackerSelector), creds.CSRFToken)

		client, err := network.NewClient(time.Duration(viper.GetInt(key.ReportTimeout)) * time.Second)
		handleErr(err)

		reporter, err := report.NewHTTPReporter(client, cfg.URL, creds.Session, cfg.CSRFToken)
		handleErr(err)

		target := lo.Must(cmd.Flags().GetString("launch"))
		binary := viper.GetString(key.PlayerBinary)
		if target != "" {
			CheckDependencies(binary)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		t, release, err := attach(ctx, cfg, reporter, player.Locate, player.NewMPV(binary), target, lo.Must(cmd.Flags().GetString("title")))
		handleErr(err)

		var waitErr error
		if viper.GetBool(key.TUIEnable) && util.IsTerminal() {
			waitErr = tui.Run(ctx, t, &tui.Options{Endpoint: cfg.URL})
		} else {
			fmt.Printf(
				"%s tracking video %s, press ctrl+c to stop\n",
				style.Fg(color.Green)(icon.Get(icon.Play)),
				style.Fg(color.Purple)(cfg.VideoID),
			)

			select {
			case <-ctx.Done():
			case <-t.SurfaceDone():
			}
		}

		// a second signal from here on kills the process
		stop()

		t.Close()
		if !reporter.Wait(drainTimeout) {
			log.Warn("pending reports abandoned after drain timeout")
		}
		release()
		handleErr(waitErr)

		stats := t.Stats()
		fmt.Printf(
			"%s watched %s, %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Bold(util.Clock(stats.Accumulated)),
			util.Quantify(stats.Flushes, "report", "reports"),
		)
	},
}
