package dispatcher

import (
	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/backend"
	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	"github.com/atomicstack/inboxai-popup/internal/state"
)

type Result struct {
	AuthUpdated   bool
	HealthUpdated bool
	// LoggedOut is set when an update flips a logged-in session to logged out.
	LoggedOut bool
}

type Dispatcher struct {
	auth   state.AuthStore
	health state.HealthStore
}

func New(a state.AuthStore, h state.HealthStore) *Dispatcher {
	return &Dispatcher{auth: a, health: h}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	switch evt.Kind {
	case backend.KindAuth:
		if evt.Err != nil {
			if !api.IsUnauthorized(evt.Err) {
				return res
			}
			evt.Data = api.AuthStatus{}
		}
		if status, ok := evt.Data.(api.AuthStatus); ok {
			was := d.auth.LoggedIn()
			d.auth.SetStatus(status)
			events.Auth.Status(status.LoggedIn, status.User)
			res.AuthUpdated = true
			res.LoggedOut = was && !status.LoggedIn
		}
	case backend.KindHealth:
		d.health.SetResult(evt.Err)
		res.HealthUpdated = true
	}
	return res
}
