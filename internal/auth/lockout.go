package auth

import (
	"sync"
	"time"
)

// LockoutPolicy holds the tunable failure-tracking parameters.
type LockoutPolicy struct {
	// Threshold is the number of failures within Window that triggers a lockout.
	Threshold int
	// Window is the sliding period over which failures are counted.
	Window time.Duration
	// Duration is how long a triggered lockout lasts.
	Duration time.Duration
}

// DefaultLockoutPolicy mirrors the production defaults: five failures in
// fifteen minutes lock the identity out for thirty minutes.
func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{Threshold: 5, Window: 15 * time.Minute, Duration: 30 * time.Minute}
}

type lockoutEntry struct {
	failureCount int
	windowStart  time.Time
	lockedUntil  time.Time
}

func (e *lockoutEntry) locked(now time.Time) bool {
	return e.lockedUntil.After(now)
}

// LockoutTracker tracks failed admin authentication attempts per caller
// identity and escalates to a temporary lockout once the threshold is
// crossed. All state lives in process memory; entries expire lazily on
// read and Sweep reclaims idle ones so the map stays bounded.
type LockoutTracker struct {
	policy LockoutPolicy
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*lockoutEntry

	// onLockout is invoked (outside the lock) each time an identity
	// newly crosses the threshold.
	onLockout func(identity string)
}

// NewLockoutTracker builds a tracker with the given policy. A zero-value
// policy field falls back to its default.
func NewLockoutTracker(policy LockoutPolicy) *LockoutTracker {
	def := DefaultLockoutPolicy()
	if policy.Threshold <= 0 {
		policy.Threshold = def.Threshold
	}
	if policy.Window <= 0 {
		policy.Window = def.Window
	}
	if policy.Duration <= 0 {
		policy.Duration = def.Duration
	}
	return &LockoutTracker{
		policy:  policy,
		now:     time.Now,
		entries: make(map[string]*lockoutEntry),
	}
}

// OnLockout registers a callback fired when an identity becomes locked out.
func (t *LockoutTracker) OnLockout(fn func(identity string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onLockout = fn
}

// IsLocked reports whether the identity is currently locked out.
// Expired entries are treated as unlocked without requiring deletion.
func (t *LockoutTracker) IsLocked(identity string) bool {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[identity]
	if !ok {
		return false
	}
	if e.locked(now) {
		return true
	}
	// Lockout expired: clear it so a fresh window starts, but keep the
	// entry until the sweep reclaims it.
	if !e.lockedUntil.IsZero() && !e.locked(now) {
		e.lockedUntil = time.Time{}
		e.failureCount = 0
		e.windowStart = now
	}
	return false
}

// RecordFailure counts a failed attempt for the identity and returns true
// if the identity is now (or already was) locked out. Once lockedUntil is
// set it is never moved backwards by a racing failure; only success or
// expiry lifts it.
func (t *LockoutTracker) RecordFailure(identity string) bool {
	now := t.now()
	var fire func(string)

	t.mu.Lock()
	e, ok := t.entries[identity]
	if !ok {
		e = &lockoutEntry{windowStart: now}
		t.entries[identity] = e
	}

	if e.locked(now) {
		t.mu.Unlock()
		return true
	}

	// Window aged out: restart the count.
	if now.Sub(e.windowStart) > t.policy.Window {
		e.failureCount = 0
		e.windowStart = now
	}

	e.failureCount++
	if e.failureCount >= t.policy.Threshold {
		e.lockedUntil = now.Add(t.policy.Duration)
		fire = t.onLockout
	}
	locked := e.locked(now)
	t.mu.Unlock()

	if fire != nil {
		fire(identity)
	}
	return locked
}

// RecordSuccess clears all failure state for the identity. Success always
// forgives prior failures immediately, including an active lockout.
func (t *LockoutTracker) RecordSuccess(identity string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, identity)
}

// Sweep removes entries that have been idle beyond four lockout windows.
// Intended to run on a schedule. Returns the number of reclaimed entries.
func (t *LockoutTracker) Sweep() int {
	now := t.now()
	idle := 4 * t.policy.Duration

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, e := range t.entries {
		if e.locked(now) {
			continue
		}
		ref := e.windowStart
		if e.lockedUntil.After(ref) {
			ref = e.lockedUntil
		}
		if now.Sub(ref) > idle {
			delete(t.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked identities.
func (t *LockoutTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
