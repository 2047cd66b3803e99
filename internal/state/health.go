package state

// HealthStore tracks whether the backend answered its last health probe.
type HealthStore interface {
	Healthy() bool
	Err() error
	SetResult(error)
}

type healthStore struct {
	err     error
	checked bool
}

func NewHealthStore() HealthStore {
	return &healthStore{}
}

// Healthy is true until a probe fails.
func (s *healthStore) Healthy() bool {
	return !s.checked || s.err == nil
}

func (s *healthStore) Err() error {
	return s.err
}

func (s *healthStore) SetResult(err error) {
	s.err = err
	s.checked = true
}
