package progression

import (
	"sync"
	"time"
)

// CooldownWindow is the minimum elapsed time between two qualifying activity
// events from the same user that both grant XP.
const CooldownWindow = 60 * time.Second

// DefaultXPGainMin and DefaultXPGainMax bound the uniform random XP gain per
// qualifying activity, inclusive on both ends.
const (
	DefaultXPGainMin = 10
	DefaultXPGainMax = 20
)

// CooldownGate rate-limits XP accrual per user. Timestamps live in volatile
// process memory only - they are a rate limiter, not durable state, and are
// scoped to the engine instance rather than a global.
//
// TryAcquire is an atomic check-and-set: two concurrent events for the same
// user inside one window can never both pass the gate.
type CooldownGate struct {
	mu     sync.Mutex
	window time.Duration
	last   map[UserID]time.Time
}

// NewCooldownGate creates a gate with the given window. A non-positive window
// falls back to CooldownWindow.
func NewCooldownGate(window time.Duration) *CooldownGate {
	if window <= 0 {
		window = CooldownWindow
	}
	return &CooldownGate{
		window: window,
		last:   make(map[UserID]time.Time),
	}
}

// TryAcquire reports whether the user is past their cooldown at the given
// timestamp, and records the timestamp as the new last-accrual time when so.
// A user with no prior accrual always passes.
func (g *CooldownGate) TryAcquire(userID UserID, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.last[userID]
	if ok && now.Sub(last) < g.window {
		return false
	}
	g.last[userID] = now
	return true
}

// LastAccrual returns the recorded last-accrual time for a user, if any.
func (g *CooldownGate) LastAccrual(userID UserID) (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.last[userID]
	return t, ok
}

// Reset forgets the user's cooldown. Used by tests and by nothing else:
// production accrual never rolls the gate back, even when persistence fails.
func (g *CooldownGate) Reset(userID UserID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.last, userID)
}
