// Package tmux relaunches the popup inside a tmux display-popup.
package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
)

// ChildEnv marks a process already running inside the popup.
const ChildEnv = "INBOXAI_POPUP_CHILD"

// Popup describes a display-popup invocation.
type Popup struct {
	Socket string
	Title  string
	// Width and Height are cells; zero lets tmux pick.
	Width  int
	Height int
	// Command is the executable and arguments run inside the popup.
	Command []string
}

// Inside reports whether the process runs inside a tmux client and is not
// already the popup child.
func Inside(getenv func(string) string) bool {
	return getenv("TMUX") != "" && getenv(ChildEnv) == ""
}

func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("INBOXAI_TMUX_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// Args returns the tmux arguments for p.
func (p Popup) Args() []string {
	extra := []string{"display-popup", "-E"}
	if p.Width > 0 {
		extra = append(extra, "-w", strconv.Itoa(p.Width))
	}
	if p.Height > 0 {
		extra = append(extra, "-h", strconv.Itoa(p.Height))
	}
	if p.Title != "" {
		extra = append(extra, "-T", p.Title)
	}
	extra = append(extra, "-e", ChildEnv+"=1")
	if len(p.Command) > 0 {
		extra = append(extra, "--")
		extra = append(extra, p.Command...)
	}
	return tmuxArgs(p.Socket, extra...)
}

// Display opens the popup and blocks until it closes.
func Display(p Popup) error {
	if len(p.Command) == 0 {
		return fmt.Errorf("display-popup: empty command")
	}
	cmd := exec.Command("tmux", p.Args()...)
	if dir := socketDir(p.Socket); dir != "" {
		cmd.Env = append(os.Environ(), "TMUX_TMPDIR="+dir)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("display-popup: %w", err)
	}
	return nil
}

// StripFlag removes a boolean flag, in any of its spellings, from args.
func StripFlag(args []string, name string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed != arg && (trimmed == name || strings.HasPrefix(trimmed, name+"=")) {
			continue
		}
		out = append(out, arg)
	}
	return out
}

func tmuxArgs(socket string, extra ...string) []string {
	args := make([]string, 0, len(extra)+2)
	if trimmed := strings.TrimSpace(socket); trimmed != "" {
		args = append(args, "-S", trimmed)
	}
	args = append(args, extra...)
	return args
}

func socketDir(socket string) string {
	trimmed := strings.TrimSpace(socket)
	if trimmed == "" {
		return ""
	}
	return filepath.Dir(trimmed)
}
