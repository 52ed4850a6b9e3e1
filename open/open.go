// Package open launches URLs with the system's default handler.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/watchtime-cli/watchtime/constant"
)

// Start opens the http(s) URL in the default browser without waiting for it.
func Start(link string) error {
	cmd, err := Command(runtime.GOOS, link)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command builds the opener for goos. Only absolute http and https URLs are accepted.
func Command(goos, link string) (*exec.Cmd, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("refusing to open %q: not an http(s) URL", link)
	}
	link = u.String()

	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", link), nil
	case constant.Darwin:
		return exec.Command("open", link), nil
	case constant.Linux:
		return exec.Command("xdg-open", link), nil
	case constant.Android:
		return exec.Command("termux-open", link), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
