package command

import (
	"fmt"
	"sync"

	"github.com/atomicstack/inboxai-popup/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an action invocation.
type Request struct {
	ID    string
	Label string
	Run   func() tea.Msg
}

// Bus coordinates the execution of backend actions. At most one request per
// ID runs at a time.
type Bus struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{inflight: make(map[string]struct{})}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
// It returns false, and a nil command, when the same ID is still in flight.
func (b *Bus) Execute(req Request) (tea.Cmd, bool) {
	if req.Run == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil, false
	}
	b.mu.Lock()
	if _, busy := b.inflight[req.ID]; busy {
		b.mu.Unlock()
		events.Command.Busy(req.ID, req.Label)
		return nil, false
	}
	b.inflight[req.ID] = struct{}{}
	b.mu.Unlock()

	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		defer b.done(req.ID)
		msg := req.Run()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}, true
}

// Busy reports whether id is in flight.
func (b *Bus) Busy(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.inflight[id]
	return ok
}

func (b *Bus) done(id string) {
	b.mu.Lock()
	delete(b.inflight, id)
	b.mu.Unlock()
	events.Command.Done(id)
}
