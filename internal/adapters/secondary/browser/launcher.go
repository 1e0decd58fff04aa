package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// ErrNoBrowser is returned when no opener is available on this system
var ErrNoBrowser = errors.New("no supported browsers found on this system")

// Browser is a command able to open a URL
type Browser struct {
	Name    string
	Command string
	Args    func(url string) []string
}

// Launcher implements the BrowserLauncher interface
type Launcher struct {
	browsers []Browser
	lookPath func(file string) (string, error)
	start    func(ctx context.Context, name string, args ...string) error
}

// NewLauncher creates a launcher for the current platform
func NewLauncher() *Launcher {
	return &Launcher{
		browsers: platformBrowsers(runtime.GOOS),
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Open opens url with the first available browser. It does not wait for the
// browser to exit.
func (l *Launcher) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	browser, err := l.selectBrowser()
	if err != nil {
		return fmt.Errorf("browser selection: %w", err)
	}

	if err := l.start(ctx, browser.Command, browser.Args(url)...); err != nil {
		return fmt.Errorf("launching %s: %w", browser.Name, err)
	}
	return nil
}

// Detect returns the name of the browser Open would use
func (l *Launcher) Detect() (string, error) {
	browser, err := l.selectBrowser()
	if err != nil {
		return "", err
	}
	return browser.Name, nil
}

// selectBrowser returns the first browser whose executable is on PATH
func (l *Launcher) selectBrowser() (*Browser, error) {
	for i := range l.browsers {
		if _, err := l.lookPath(l.browsers[i].Command); err == nil {
			return &l.browsers[i], nil
		}
	}
	return nil, ErrNoBrowser
}

func startDetached(_ context.Context, name string, args ...string) error {
	// not bound to ctx: the browser outlives the preview server
	cmd := exec.Command(name, args...) // #nosec G204 - command comes from the fixed platform list
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func urlArg(url string) []string { return []string{url} }

// platformBrowsers lists openers in preference order for goos
func platformBrowsers(goos string) []Browser {
	switch goos {
	case "darwin":
		return []Browser{
			{Name: "Default", Command: "open", Args: urlArg},
		}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Browser{
			{Name: "xdg-open", Command: "xdg-open", Args: urlArg},
			{Name: "Chrome", Command: "google-chrome", Args: urlArg},
			{Name: "Chromium", Command: "chromium", Args: urlArg},
			{Name: "Firefox", Command: "firefox", Args: urlArg},
		}
	case "windows":
		return []Browser{
			{
				Name:    "Default",
				Command: "rundll32",
				Args: func(url string) []string {
					return []string{"url.dll,FileProtocolHandler", url}
				},
			},
		}
	default:
		return nil
	}
}

// Ensure Launcher implements ports.BrowserLauncher
var _ ports.BrowserLauncher = (*Launcher)(nil)
