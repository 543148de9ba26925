package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestTracker(policy LockoutPolicy) (*LockoutTracker, *time.Time) {
	tr := NewLockoutTracker(policy)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }
	return tr, &now
}

func TestLockoutTracker_ThresholdEngagesLockout(t *testing.T) {
	tr, _ := newTestTracker(LockoutPolicy{Threshold: 5, Window: 15 * time.Minute, Duration: 30 * time.Minute})

	for i := 0; i < 4; i++ {
		assert.False(t, tr.RecordFailure("1.2.3.4"), "attempt %d should not lock", i+1)
		assert.False(t, tr.IsLocked("1.2.3.4"))
	}

	assert.True(t, tr.RecordFailure("1.2.3.4"), "fifth failure locks")
	assert.True(t, tr.IsLocked("1.2.3.4"))
}

func TestLockoutTracker_LockoutExpires(t *testing.T) {
	tr, now := newTestTracker(LockoutPolicy{Threshold: 2, Window: 15 * time.Minute, Duration: 30 * time.Minute})

	tr.RecordFailure("x")
	tr.RecordFailure("x")
	assert.True(t, tr.IsLocked("x"))

	*now = now.Add(29 * time.Minute)
	assert.True(t, tr.IsLocked("x"))

	*now = now.Add(2 * time.Minute)
	assert.False(t, tr.IsLocked("x"), "lockout lifts after duration without deletion")
}

func TestLockoutTracker_SuccessForgivesImmediately(t *testing.T) {
	tr, _ := newTestTracker(LockoutPolicy{Threshold: 2, Window: 15 * time.Minute, Duration: 30 * time.Minute})

	tr.RecordFailure("x")
	tr.RecordFailure("x")
	assert.True(t, tr.IsLocked("x"))

	tr.RecordSuccess("x")
	assert.False(t, tr.IsLocked("x"))
	assert.Equal(t, 0, tr.Len())
}

func TestLockoutTracker_WindowAgesOut(t *testing.T) {
	tr, now := newTestTracker(LockoutPolicy{Threshold: 3, Window: 15 * time.Minute, Duration: 30 * time.Minute})

	tr.RecordFailure("x")
	tr.RecordFailure("x")

	// Failures older than the window no longer count toward the threshold.
	*now = now.Add(16 * time.Minute)
	assert.False(t, tr.RecordFailure("x"))
	assert.False(t, tr.IsLocked("x"))
}

func TestLockoutTracker_IdentitiesAreIndependent(t *testing.T) {
	tr, _ := newTestTracker(LockoutPolicy{Threshold: 2, Window: 15 * time.Minute, Duration: 30 * time.Minute})

	tr.RecordFailure("a")
	tr.RecordFailure("a")
	assert.True(t, tr.IsLocked("a"))
	assert.False(t, tr.IsLocked("b"))
}

func TestLockoutTracker_Sweep(t *testing.T) {
	tr, now := newTestTracker(LockoutPolicy{Threshold: 5, Window: 15 * time.Minute, Duration: 30 * time.Minute})

	tr.RecordFailure("stale")
	tr.RecordFailure("fresh")
	assert.Equal(t, 2, tr.Len())

	*now = now.Add(3 * time.Hour)
	tr.RecordFailure("fresh")

	removed := tr.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, tr.Len())
}

func TestLockoutTracker_OnLockoutFiresOnce(t *testing.T) {
	tr, _ := newTestTracker(LockoutPolicy{Threshold: 2, Window: 15 * time.Minute, Duration: 30 * time.Minute})

	var fired []string
	tr.OnLockout(func(id string) { fired = append(fired, id) })

	tr.RecordFailure("x")
	tr.RecordFailure("x")
	// Further failures while locked do not re-fire.
	tr.RecordFailure("x")

	assert.Equal(t, []string{"x"}, fired)
}

func TestLockoutTracker_ConcurrentFailuresNeverLoseLockout(t *testing.T) {
	tr := NewLockoutTracker(LockoutPolicy{Threshold: 5, Window: 15 * time.Minute, Duration: 30 * time.Minute})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.RecordFailure("x")
		}()
	}
	wg.Wait()

	assert.True(t, tr.IsLocked("x"), "lockout must survive concurrent failures")
}
