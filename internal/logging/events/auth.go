package events

import "github.com/atomicstack/inboxai-popup/internal/logging"

type AuthTracer struct{}

type AuthReason string

const (
	AuthReasonPoll         AuthReason = "poll"
	AuthReasonUnauthorized AuthReason = "unauthorized"
	AuthReasonLogin        AuthReason = "login"
	AuthReasonLogout       AuthReason = "logout"
)

var Auth = AuthTracer{}

func (AuthTracer) Check(reason AuthReason) {
	logging.Trace("auth.check", map[string]interface{}{"reason": string(reason)})
}

func (AuthTracer) Status(loggedIn bool, user string) {
	logging.Trace("auth.status", map[string]interface{}{"logged_in": loggedIn, "user": user})
}

func (AuthTracer) LoginPrompt(url string) {
	logging.Trace("auth.login.prompt", map[string]interface{}{"url": url})
}

func (AuthTracer) LoginSubmit() {
	logging.Trace("auth.login.submit", nil)
}

func (AuthTracer) LoginCancel() {
	logging.Trace("auth.login.cancel", nil)
}

func (AuthTracer) Logout() {
	logging.Trace("auth.logout", nil)
}
