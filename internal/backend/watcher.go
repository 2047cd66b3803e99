package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/inboxai-popup/internal/api"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindAuth Kind = iota
	KindHealth
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindHealth:
		return "health"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Source is the subset of the API client the watcher polls.
type Source interface {
	AuthStatus(ctx context.Context) (api.AuthStatus, error)
	Health(ctx context.Context) error
}

// Watcher polls the InboxAI backend at a fixed interval and publishes events.
type Watcher struct {
	source   Source
	interval time.Duration
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	recheck chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls source every interval.
// Each fetch is bounded by timeout when it is positive.
func NewWatcher(source Source, interval, timeout time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		recheck:  make(chan struct{}, 1),
	}

	w.startAuthPoller()
	w.startHealthPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Recheck asks the auth poller to fetch immediately. Requests made while one
// is already pending collapse into it.
func (w *Watcher) Recheck() {
	select {
	case w.recheck <- struct{}{}:
	default:
	}
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startAuthPoller() {
	w.wg.Add(1)
	go w.poll(KindAuth, w.recheck, newThrottle(time.Second), func(ctx context.Context) (interface{}, error) {
		return w.source.AuthStatus(ctx)
	})
}

func (w *Watcher) startHealthPoller() {
	w.wg.Add(1)
	go w.poll(KindHealth, nil, newThrottle(time.Second), func(ctx context.Context) (interface{}, error) {
		return nil, w.source.Health(ctx)
	})
}

func (w *Watcher) poll(kind Kind, wake <-chan struct{}, th *throttle, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		if th.wait(w.ctx) != nil {
			return false
		}
		ctx := w.ctx
		if w.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(w.ctx, w.timeout)
			defer cancel()
		}
		data, err := fetch(ctx)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		case <-wake:
			if !emit() {
				return
			}
			ticker.Reset(w.interval)
		}
	}
}
