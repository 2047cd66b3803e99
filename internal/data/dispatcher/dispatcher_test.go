package dispatcher

import (
	"errors"
	"fmt"
	"testing"

	"github.com/atomicstack/inboxai-popup/internal/api"
	"github.com/atomicstack/inboxai-popup/internal/backend"
	"github.com/atomicstack/inboxai-popup/internal/state"
)

func TestHandleAuthEvents(t *testing.T) {
	auth := state.NewAuthStore()
	d := New(auth, state.NewHealthStore())

	res := d.Handle(backend.Event{Kind: backend.KindAuth, Data: api.AuthStatus{LoggedIn: true, User: "ada@example.com"}})
	if !res.AuthUpdated || res.LoggedOut {
		t.Fatalf("unexpected result %#v", res)
	}
	if !auth.LoggedIn() || auth.Status().User != "ada@example.com" {
		t.Fatalf("store not updated: %#v", auth.Status())
	}

	res = d.Handle(backend.Event{Kind: backend.KindAuth, Err: errors.New("timeout")})
	if res.AuthUpdated || !auth.LoggedIn() {
		t.Fatalf("transport errors must not change auth state")
	}

	unauthorized := fmt.Errorf("poll: %w", &api.HTTPError{Endpoint: "/auth/status", Status: 401})
	res = d.Handle(backend.Event{Kind: backend.KindAuth, Err: unauthorized})
	if !res.AuthUpdated || !res.LoggedOut || auth.LoggedIn() {
		t.Fatalf("expected 401 to log out, got %#v", res)
	}
}

func TestHandleHealthEvents(t *testing.T) {
	health := state.NewHealthStore()
	d := New(state.NewAuthStore(), health)

	d.Handle(backend.Event{Kind: backend.KindHealth, Err: errors.New("refused")})
	if health.Healthy() {
		t.Fatalf("expected unhealthy backend")
	}
	res := d.Handle(backend.Event{Kind: backend.KindHealth})
	if !res.HealthUpdated || !health.Healthy() {
		t.Fatalf("expected healthy backend, got %#v", res)
	}
}
