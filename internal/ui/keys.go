package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/action"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	uistate "github.com/atomicstack/inboxai-popup/internal/ui/state"
)

var modeKeys = map[string]uistate.Mode{
	"f1": uistate.ModeChat,
	"f2": uistate.ModeDraft,
	"f3": uistate.ModeMeeting,
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.errMsg = ""
	m.clearInfo()
	key := keyMsg.String()
	if mode, ok := modeKeys[key]; ok {
		return m.switchMode(mode)
	}
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+t":
		return m.toggleTheme()
	case "ctrl+l":
		return m.startLogin()
	case "ctrl+o":
		return m.logout()
	}
	switch m.modes.Active() {
	case uistate.ModeDraft:
		return m.handleDraftKey(keyMsg)
	case uistate.ModeMeeting:
		return m.handleMeetingKey(keyMsg)
	default:
		return m.handleChatKey(keyMsg)
	}
}

// switchMode shows mode and runs its entry side effects.
func (m *Model) switchMode(mode uistate.Mode) tea.Cmd {
	prev, err := m.modes.Switch(mode)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	events.UI.Mode(prev.String(), mode.String())
	m.chat.input.Blur()
	switch mode {
	case uistate.ModeDraft:
		if m.draft.pending {
			return focusFields(m.draft.fields, m.draft.focus)
		}
		return m.resetDraft()
	case uistate.ModeMeeting:
		if m.meeting.pending {
			return focusFields(m.meeting.fields, m.meeting.focus)
		}
		return m.resetMeeting()
	default:
		m.greetIfDue()
		return m.chat.input.Focus()
	}
}

// focusActive refocuses the input of the visible mode.
func (m *Model) focusActive() tea.Cmd {
	switch m.modes.Active() {
	case uistate.ModeDraft:
		return focusFields(m.draft.fields, m.draft.focus)
	case uistate.ModeMeeting:
		return focusFields(m.meeting.fields, m.meeting.focus)
	default:
		return m.chat.input.Focus()
	}
}

// forwardToFocused passes unclaimed messages, such as cursor blinks, to the
// focused text input.
func (m *Model) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.login != nil:
		m.login.input, cmd = m.login.input.Update(msg)
	case m.modes.Active() == uistate.ModeDraft:
		f := m.draft.fields[m.draft.focus]
		f.input, cmd = f.input.Update(msg)
	case m.modes.Active() == uistate.ModeMeeting:
		f := m.meeting.fields[m.meeting.focus]
		f.input, cmd = f.input.Update(msg)
	default:
		m.chat.input, cmd = m.chat.input.Update(msg)
	}
	return cmd
}

func (m *Model) toggleTheme() tea.Cmd {
	m.setTheme(m.themeName.Toggle())
	return action.SaveTheme(m.actx, string(m.themeName))
}
