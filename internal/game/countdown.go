package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Countdown schedules the one-second countdown ticks for the active
// question. At most one timer is armed at a time; arming for a new identity
// replaces and stops the previous timer. A fired callback always carries
// the question identity it was armed with, so a tick that raced with a
// transition is rejected by the session's identity check rather than here.
type Countdown struct {
	clock clockwork.Clock

	mu     sync.Mutex
	timer  clockwork.Timer
	cancel chan struct{}
}

func NewCountdown(clock clockwork.Clock) *Countdown {
	return &Countdown{clock: clock}
}

// Arm schedules fire(id) after d, replacing any pending timer.
func (c *Countdown) Arm(id uuid.UUID, d time.Duration, fire func(uuid.UUID)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	timer := c.clock.NewTimer(d)
	cancel := make(chan struct{})
	c.timer = timer
	c.cancel = cancel
	go func() {
		select {
		case <-timer.Chan():
			fire(id)
		case <-cancel:
		}
	}()
}

// Cancel stops the pending timer, if any. Every session transition calls
// this before anything else starts.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Countdown) stopLocked() {
	if c.timer == nil {
		return
	}
	// Stop-and-drain pattern from time.Timer.Stop docs. A tick that fired
	// before the stop still reaches the session, where the identity check
	// discards it.
	if !c.timer.Stop() {
		select {
		case <-c.timer.Chan():
		default:
		}
	}
	close(c.cancel)
	c.timer = nil
	c.cancel = nil
}
