package action

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/storage"
)

// CopyText places text on the system clipboard.
func CopyText(ctx Context, label, text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return ActionResult{Err: fmt.Errorf("nothing to copy")}
		}
		if err := ctx.copy(text); err != nil {
			traceErr(err)
			return ActionResult{Err: fmt.Errorf("copy %s: %w", label, err)}
		}
		return ActionResult{Info: fmt.Sprintf("Copied %s to clipboard", label)}
	}
}

// SaveTheme persists the chosen theme. Success is silent.
func SaveTheme(ctx Context, name string) tea.Cmd {
	if ctx.Prefs == nil {
		return nil
	}
	return func() tea.Msg {
		c, cancel := ctx.deadline()
		defer cancel()
		if err := ctx.Prefs.Set(c, storage.KeyTheme, name); err != nil {
			traceErr(err)
			return ActionResult{Err: fmt.Errorf("save theme: %w", err)}
		}
		return nil
	}
}
