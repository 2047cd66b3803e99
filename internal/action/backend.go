package action

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	"github.com/atomicstack/inboxai-popup/internal/storage"
)

// SendCommand posts a chat command with the given history window.
func SendCommand(ctx Context, command string, history []api.Turn) tea.Cmd {
	return func() tea.Msg {
		c, cancel := ctx.deadline()
		defer cancel()
		resp, err := ctx.Backend.Command(c, api.CommandRequest{Command: command, History: history})
		traceErr(err)
		return ChatResult{Command: command, Response: resp, Err: err}
	}
}

// GenerateDrafts requests draft candidates.
func GenerateDrafts(ctx Context, req api.DraftRequest) tea.Cmd {
	return func() tea.Msg {
		c, cancel := ctx.deadline()
		defer cancel()
		drafts, err := ctx.Backend.Drafts(c, req)
		traceErr(err)
		return DraftsResult{Drafts: drafts, Err: err}
	}
}

// SendEmail delivers the confirmed draft.
func SendEmail(ctx Context, req api.SendEmailRequest) tea.Cmd {
	return func() tea.Msg {
		c, cancel := ctx.deadline()
		defer cancel()
		resp, err := ctx.Backend.SendEmail(c, req)
		traceErr(err)
		return SendResult{Request: req, Reply: resp.Reply, Err: err}
	}
}

// CreateMeeting schedules a meeting.
func CreateMeeting(ctx Context, req api.MeetingRequest) tea.Cmd {
	return func() tea.Msg {
		c, cancel := ctx.deadline()
		defer cancel()
		resp, err := ctx.Backend.CreateMeeting(c, req)
		traceErr(err)
		return MeetingResult{Request: req, Link: resp.MeetLink, Err: err}
	}
}

// CheckAuth fetches the auth status once.
func CheckAuth(ctx Context, reason events.AuthReason) tea.Cmd {
	events.Auth.Check(reason)
	return func() tea.Msg {
		c, cancel := ctx.deadline()
		defer cancel()
		status, err := ctx.Backend.AuthStatus(c)
		traceErr(err)
		return AuthResult{Reason: reason, Status: status, Err: err}
	}
}

// OpenLogin hands the backend login page to the browser.
func OpenLogin(ctx Context) tea.Cmd {
	url := ctx.Backend.LoginURL()
	return func() tea.Msg {
		err := ctx.open(url)
		traceErr(err)
		return LoginOpened{URL: url, Err: err}
	}
}

// SubmitSession installs a pasted session cookie, stores it, and re-checks
// auth with it.
func SubmitSession(ctx Context, value string) tea.Cmd {
	value = strings.TrimSpace(value)
	if i := strings.Index(value, "="); i >= 0 && strings.EqualFold(strings.TrimSpace(value[:i]), api.SessionCookie) {
		value = strings.TrimSpace(value[i+1:])
	}
	events.Auth.LoginSubmit()
	return func() tea.Msg {
		ctx.Backend.SetSession(value)
		c, cancel := ctx.deadline()
		defer cancel()
		if ctx.Prefs != nil {
			if err := ctx.Prefs.Set(c, storage.KeySession, value); err != nil {
				traceErr(err)
			}
		}
		status, err := ctx.Backend.AuthStatus(c)
		traceErr(err)
		return AuthResult{Reason: events.AuthReasonLogin, Status: status, Err: err}
	}
}

// Logout ends the backend session and forgets the stored cookie.
func Logout(ctx Context) tea.Cmd {
	events.Auth.Logout()
	return func() tea.Msg {
		c, cancel := ctx.deadline()
		defer cancel()
		err := ctx.Backend.Logout(c)
		traceErr(err)
		if err == nil && ctx.Prefs != nil {
			if derr := ctx.Prefs.Delete(c, storage.KeySession); derr != nil {
				traceErr(derr)
			}
		}
		return LogoutResult{Err: err}
	}
}
