package cooldown

import (
	"context"
	"sync"
	"time"
)

// Action kinds throttled by the tracker.
const (
	ActionGift    = "gift"
	ActionRedeem  = "redeem"
	ActionSpecial = "sclaim"
	ActionPay     = "pay"
)

// Tracker holds per-user, per-action cooldown deadlines in process memory.
// State is deliberately ephemeral: a restart clears all cooldowns. Cooldowns
// gate abuse, not correctness, so check and arm stay separate calls.
type Tracker struct {
	deadlines sync.Map // "<userID>:<action>" -> time.Time
	now       func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

func key(userID, action string) string {
	return userID + ":" + action
}

// Check returns how long the user still has to wait for action, or zero when
// the action is allowed.
func (t *Tracker) Check(userID, action string) time.Duration {
	v, ok := t.deadlines.Load(key(userID, action))
	if !ok {
		return 0
	}
	deadline := v.(time.Time)
	if remaining := deadline.Sub(t.now()); remaining > 0 {
		return remaining
	}
	return 0
}

// Arm starts a cooldown of duration d for the user's action.
func (t *Tracker) Arm(userID, action string, d time.Duration) {
	t.deadlines.Store(key(userID, action), t.now().Add(d))
}

// Reset clears a single cooldown, e.g. after an admin override.
func (t *Tracker) Reset(userID, action string) {
	t.deadlines.Delete(key(userID, action))
}

func (t *Tracker) cleanupExpired() {
	now := t.now()
	t.deadlines.Range(func(k, v interface{}) bool {
		if now.After(v.(time.Time)) {
			t.deadlines.Delete(k)
		}
		return true
	})
}

// StartCleanupRoutine drops expired entries periodically so the map does not
// grow with every user the process has ever seen.
func (t *Tracker) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.cleanupExpired()
			}
		}
	}()
}
