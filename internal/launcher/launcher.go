package launcher

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Launcher opens trailers in an external player and catalog pages in the
// system browser
type Launcher struct {
	command string   // configured player command, empty for system default
	args    []string // additional arguments for the player
	logger  *slog.Logger

	// Swapped in tests
	goos     string
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// macApps maps player commands to their macOS application names, used with
// "open -a" when the command is not on PATH
var macApps = map[string]macApp{
	"iina": {name: "IINA", openFlags: []string{"-n"}}, // IINA needs -n for new windows
	"vlc":  {name: "VLC"},
	"mpv":  {name: "mpv"},
}

type macApp struct {
	name      string
	openFlags []string
}

// New creates a Launcher. An empty command opens trailers in the browser.
func New(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  strings.TrimSpace(command),
		args:     args,
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    startCommand,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// PlayTrailer opens a video URL in the configured player, falling back to
// the system default handler
func (l *Launcher) PlayTrailer(url string) error {
	if url == "" {
		return fmt.Errorf("no trailer to play")
	}
	if l.command != "" {
		l.logger.Info("using configured player", "command", l.command)
		err := l.launchConfigured(url)
		if err == nil {
			return nil
		}
		l.logger.Warn("configured player failed, using system default", "command", l.command, "error", err)
	}
	return l.launchDefault(url)
}

// OpenPage opens a web page with the system default handler
func (l *Launcher) OpenPage(url string) error {
	if url == "" {
		return fmt.Errorf("no page to open")
	}
	return l.launchDefault(url)
}

// launchConfigured runs the configured player with the URL as last argument
func (l *Launcher) launchConfigured(url string) error {
	args := append(append([]string{}, l.args...), url)

	_, err := l.lookPath(l.command)
	if err == nil {
		l.logger.Info("launching player", "command", l.command, "args", args)
		return l.start(l.command, args...)
	}
	if l.goos != "darwin" {
		return err
	}

	// On macOS, GUI apps are often not on PATH; go through 'open -a'
	base := strings.ToLower(filepath.Base(l.command))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	app, ok := macApps[base]
	if !ok {
		app = macApp{name: l.command}
	}

	openArgs := append([]string{}, app.openFlags...)
	openArgs = append(openArgs, "-a", app.name)
	if len(l.args) > 0 {
		openArgs = append(openArgs, "--args")
		openArgs = append(openArgs, l.args...)
	}
	openArgs = append(openArgs, url)
	l.logger.Info("using macOS 'open -a' to launch GUI app", "app", app.name, "args", openArgs)
	return l.start("open", openArgs...)
}

// launchDefault opens the URL using the system default handler
func (l *Launcher) launchDefault(url string) error {
	l.logger.Info("launching with system default", "os", l.goos, "url", url)

	switch l.goos {
	case "darwin":
		return l.start("open", url)
	case "windows":
		return l.start("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		return l.start("xdg-open", url)
	}
}
