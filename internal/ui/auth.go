package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/action"
	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/logging"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
)

// checkAuth fetches the auth status once through the command bus.
func (m *Model) checkAuth(reason events.AuthReason) tea.Cmd {
	if m.actx.Backend == nil {
		return nil
	}
	cmd, _ := m.run("auth:check", string(reason), action.CheckAuth(m.actx, reason))
	return cmd
}

// unauthorized reacts to a 401 with a single immediate auth re-check, through
// the watcher when one is running. Further 401s are ignored until that check
// reports back.
func (m *Model) unauthorized() tea.Cmd {
	if m.recheckPending {
		return nil
	}
	if m.backend != nil {
		events.Auth.Check(events.AuthReasonUnauthorized)
		m.backend.Recheck()
		m.recheckPending = true
		return nil
	}
	if m.bus.Busy("auth:check") {
		// The check already running answers this 401.
		m.recheckPending = true
		return nil
	}
	cmd := m.checkAuth(events.AuthReasonUnauthorized)
	if cmd != nil {
		m.recheckPending = true
	}
	return cmd
}

func (m *Model) handleAuthResult(msg tea.Msg) tea.Cmd {
	res, ok := msg.(action.AuthResult)
	if !ok {
		return nil
	}
	m.recheckPending = false
	if res.Err != nil {
		logging.Error(res.Err)
		if !api.IsUnauthorized(res.Err) {
			if res.Reason == events.AuthReasonLogin {
				m.showAlert("Login failed", failureMessage(res.Err))
			}
			return nil
		}
		res.Status = api.AuthStatus{}
	}
	m.auth.SetStatus(res.Status)
	events.Auth.Status(res.Status.LoggedIn, res.Status.User)
	if res.Reason == events.AuthReasonLogin {
		if res.Status.LoggedIn {
			m.setInfo("Logged in as " + res.Status.User)
		} else {
			m.showAlert("Login failed", "That session cookie was not accepted. Press ctrl+l to try again.")
		}
	}
	return nil
}

func (m *Model) startLogin() tea.Cmd {
	if m.actx.Backend == nil {
		return nil
	}
	cmd, _ := m.run("auth:open", "open login", action.OpenLogin(m.actx))
	return cmd
}

func (m *Model) handleLoginOpened(msg tea.Msg) tea.Cmd {
	opened, ok := msg.(action.LoginOpened)
	if !ok {
		return nil
	}
	if opened.Err != nil {
		logging.Error(opened.Err)
	}
	return m.startLoginForm(opened)
}

func (m *Model) logout() tea.Cmd {
	if m.actx.Backend == nil {
		return nil
	}
	if !m.auth.LoggedIn() {
		m.setInfo("Not logged in")
		return nil
	}
	cmd, _ := m.run("auth:logout", "logout", action.Logout(m.actx))
	return cmd
}

func (m *Model) handleLogoutResult(msg tea.Msg) tea.Cmd {
	res, ok := msg.(action.LogoutResult)
	if !ok {
		return nil
	}
	if res.Err != nil {
		logging.Error(res.Err)
		m.showAlert("Logout failed", failureMessage(res.Err))
		return nil
	}
	m.auth.SetStatus(api.AuthStatus{})
	m.setInfo("Logged out")
	return m.checkAuth(events.AuthReasonLogout)
}
