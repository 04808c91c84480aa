// Package schedule abstracts periodic and one-shot callbacks so feature
// state machines can be driven by a real scheduler or a simulated clock.
package schedule

import "time"

// Handle cancels a registered callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler registers callbacks. Every fires fn each interval, starting one
// interval from now; After fires fn once after delay.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
	After(delay time.Duration, fn func()) Handle
}

type noopHandle struct{}

func (noopHandle) Cancel() {}

// Stop cancels h when it is non-nil and returns nil, so callers can write
// s.tick = schedule.Stop(s.tick).
func Stop(h Handle) Handle {
	if h != nil {
		h.Cancel()
	}
	return nil
}
