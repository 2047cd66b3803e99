package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	uistate "github.com/atomicstack/inboxai-popup/internal/ui/state"
)

// alert is a blocking message. While one is shown only its dismiss keys are
// processed.
type alert struct {
	title   string
	message string
}

func (m *Model) showAlert(title, message string) {
	m.alert = &alert{title: title, message: message}
	events.UI.Alert(title + ": " + message)
}

func (m *Model) handleAlertKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc", " ":
		m.alert = nil
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

func (m *Model) viewAlert() []styledLine {
	body := m.alert.title + "\n\n" + m.alert.message + "\n\n" + "enter/esc to dismiss"
	var lines []styledLine
	for _, line := range strings.Split(m.styles.Alert.Render(body), "\n") {
		lines = append(lines, styledLine{text: line, raw: true})
	}
	return lines
}

// validationMessage describes a client-side validation failure.
func validationMessage(err error) string {
	var fe *uistate.FieldError
	switch {
	case errors.As(err, &fe):
		return capitalize(fe.Error()) + "."
	case errors.Is(err, uistate.ErrNotAuthenticated):
		return "Please log in first (press ctrl+l)."
	default:
		return capitalize(err.Error()) + "."
	}
}

// failureMessage describes a failed backend request.
func failureMessage(err error) string {
	var httpErr *api.HTTPError
	switch {
	case api.IsNetwork(err):
		return "Could not reach InboxAI. Check your connection and try again."
	case errors.Is(err, api.ErrMalformedResponse):
		return "InboxAI sent an unexpected response. Please try again."
	case errors.As(err, &httpErr):
		if httpErr.Detail != "" {
			return "InboxAI error: " + httpErr.Detail
		}
		return "InboxAI returned an error. Please try again."
	default:
		return capitalize(err.Error()) + "."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
