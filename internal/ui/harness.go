package ui

import (
	"reflect"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Commands run synchronously. Spinner and cursor ticks are dropped so
// animations cannot loop forever.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Type sends text as one key press of runes.
func (h *Harness) Type(text string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// Press sends a special key.
func (h *Harness) Press(key tea.KeyType) {
	h.Send(tea.KeyMsg{Type: key})
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range m {
			h.processCmd(c)
		}
		return
	case tea.QuitMsg:
		h.quit = true
		return
	}
	if animation(msg) {
		return
	}
	h.Send(msg)
}

func animation(msg tea.Msg) bool {
	t := reflect.TypeOf(msg)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	pkg := t.PkgPath()
	return strings.HasSuffix(pkg, "bubbles/spinner") || strings.HasSuffix(pkg, "bubbles/cursor")
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
