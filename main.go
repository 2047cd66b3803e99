package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/atomicstack/inboxai-popup/internal/app"
	"github.com/atomicstack/inboxai-popup/internal/config"
	"github.com/atomicstack/inboxai-popup/internal/logging"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	"github.com/atomicstack/inboxai-popup/internal/tmux"
)

var errorColor = color.New(color.FgRed, color.Bold)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fail(2, "Configuration error", err)
	}
	runtimeCfg, err := config.Load()
	if err != nil {
		fail(2, "Configuration error", err)
	}
	if err := config.Validate(runtimeCfg); err != nil {
		fail(2, "Configuration error", err)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if runtimeCfg.Popup.Enabled && tmux.Inside(os.Getenv) {
		err = relaunchInPopup(runtimeCfg)
	} else {
		err = app.Run(runtimeCfg.App)
	}
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
		fail(1, "Error", err)
	}
}

func fail(code int, prefix string, err error) {
	_, _ = errorColor.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
	os.Exit(code)
}

// relaunchInPopup runs this binary again inside a tmux display-popup.
func relaunchInPopup(cfg config.Config) error {
	socket, err := tmux.ResolveSocketPath(cfg.Popup.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	args := tmux.StripFlag(cfg.Args, "popup")
	events.App.Popup(socket, args)
	return tmux.Display(tmux.Popup{
		Socket:  socket,
		Title:   " InboxAI ",
		Width:   cfg.App.Width,
		Height:  cfg.App.Height,
		Command: append([]string{exe}, args...),
	})
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	redacted := cfg
	if redacted.App.Session != "" {
		redacted.App.Session = "(redacted)"
	}
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": redacted,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
