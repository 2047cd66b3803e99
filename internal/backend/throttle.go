package backend

import (
	"context"
	"sync"
	"time"
)

// throttle hands out fetch slots at least gap apart. Each caller reserves
// the next free slot, so a burst of rechecks queues instead of racing.
type throttle struct {
	gap time.Duration

	mu   sync.Mutex
	last time.Time
}

func newThrottle(gap time.Duration) *throttle {
	return &throttle{gap: gap}
}

// wait blocks until the caller's slot, or until ctx ends.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.gap <= 0 {
		return ctx.Err()
	}
	t.mu.Lock()
	now := time.Now()
	slot := t.last.Add(t.gap)
	if t.last.IsZero() || slot.Before(now) {
		slot = now
	}
	t.last = slot
	t.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
