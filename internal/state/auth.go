package state

import "github.com/atomicstack/inboxai-popup/internal/api"

// AuthStore holds the most recent auth status reported by the backend.
type AuthStore interface {
	Status() api.AuthStatus
	SetStatus(api.AuthStatus)
	LoggedIn() bool
	Known() bool
}

type authStore struct {
	status api.AuthStatus
	known  bool
}

func NewAuthStore() AuthStore {
	return &authStore{}
}

func (s *authStore) Status() api.AuthStatus {
	return s.status
}

// SetStatus replaces the stored status; the last write wins.
func (s *authStore) SetStatus(status api.AuthStatus) {
	s.status = status
	s.known = true
}

func (s *authStore) LoggedIn() bool {
	return s.status.LoggedIn
}

// Known reports whether any status has been recorded yet.
func (s *authStore) Known() bool {
	return s.known
}
