// Package action turns InboxAI backend calls into Bubble Tea commands. Each
// command runs one request bounded by Context.Timeout and reports a typed
// result message.
package action

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"

	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
)

// Backend is the subset of the API client the popup calls.
type Backend interface {
	Command(ctx context.Context, req api.CommandRequest) (api.CommandResponse, error)
	Drafts(ctx context.Context, req api.DraftRequest) ([]api.Draft, error)
	SendEmail(ctx context.Context, req api.SendEmailRequest) (api.SendEmailResponse, error)
	CreateMeeting(ctx context.Context, req api.MeetingRequest) (api.MeetingResponse, error)
	AuthStatus(ctx context.Context) (api.AuthStatus, error)
	Logout(ctx context.Context) error
	LoginURL() string
	SetSession(value string)
}

// Preferences persists small key/value settings.
type Preferences interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Context carries the runtime dependencies of every action.
type Context struct {
	Backend Backend
	Prefs   Preferences
	Timeout time.Duration

	// Clipboard and OpenURL default to the system clipboard and browser.
	Clipboard func(string) error
	OpenURL   func(string) error
}

func (c Context) deadline() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}

func (c Context) copy(text string) error {
	if c.Clipboard != nil {
		return c.Clipboard(text)
	}
	return clipboard.WriteAll(text)
}

func (c Context) open(url string) error {
	if c.OpenURL != nil {
		return c.OpenURL(url)
	}
	return open.Run(url)
}

// ActionResult communicates the outcome of an action with no payload.
type ActionResult struct {
	Info string
	Err  error
}

// ChatResult is the reply to one chat command.
type ChatResult struct {
	Command  string
	Response api.CommandResponse
	Err      error
}

// DraftsResult carries generated draft candidates.
type DraftsResult struct {
	Drafts []api.Draft
	Err    error
}

// SendResult reports delivery of a drafted email.
type SendResult struct {
	Request api.SendEmailRequest
	Reply   string
	Err     error
}

// MeetingResult carries the link of a created meeting.
type MeetingResult struct {
	Request api.MeetingRequest
	Link    string
	Err     error
}

// AuthResult is one auth status check.
type AuthResult struct {
	Reason events.AuthReason
	Status api.AuthStatus
	Err    error
}

// LoginOpened reports that the login page was handed to the browser.
type LoginOpened struct {
	URL string
	Err error
}

// LogoutResult reports the end of a backend session.
type LogoutResult struct {
	Err error
}

func traceErr(err error) {
	if err != nil {
		events.Action.Error(err)
	}
}
