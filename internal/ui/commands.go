package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/action"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	"github.com/atomicstack/inboxai-popup/internal/theme"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(action.ActionResult)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	events.Action.Success(result.Info)
	return nil
}

func (m *Model) setTheme(name theme.Name) {
	m.themeName = name
	m.styles = theme.For(name)
	m.chat.dirty = true
	events.UI.Theme(string(name))
}

// ThemeName reports the active theme.
func (m *Model) ThemeName() theme.Name {
	return m.themeName
}
