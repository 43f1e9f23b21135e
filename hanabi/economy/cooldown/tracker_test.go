package cooldown

import (
	"testing"
	"time"
)

func TestTracker_CheckAndArm(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		arm     time.Duration
		advance time.Duration
		want    time.Duration
	}{
		{
			name: "unarmed action is allowed",
			want: 0,
		},
		{
			name:    "armed action reports remaining",
			arm:     5 * time.Minute,
			advance: 2 * time.Minute,
			want:    3 * time.Minute,
		},
		{
			name:    "expired cooldown is allowed again",
			arm:     5 * time.Minute,
			advance: 5 * time.Minute,
			want:    0,
		},
		{
			name:    "well past expiry stays allowed",
			arm:     time.Second,
			advance: time.Hour,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := base
			tr := NewTracker()
			tr.now = func() time.Time { return now }

			if tt.arm > 0 {
				tr.Arm("123", ActionGift, tt.arm)
			}
			now = now.Add(tt.advance)

			if got := tr.Check("123", ActionGift); got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTracker_ActionsAreIndependent(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker()
	tr.now = func() time.Time { return now }

	tr.Arm("123", ActionGift, 5*time.Minute)

	if got := tr.Check("123", ActionPay); got != 0 {
		t.Errorf("Check(pay) = %v, want 0: arming gift must not throttle pay", got)
	}
	if got := tr.Check("456", ActionGift); got != 0 {
		t.Errorf("Check(other user) = %v, want 0", got)
	}
}

func TestTracker_Reset(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker()
	tr.now = func() time.Time { return now }

	tr.Arm("123", ActionRedeem, time.Hour)
	if got := tr.Check("123", ActionRedeem); got == 0 {
		t.Fatal("Check() = 0 after Arm, want remaining")
	}

	tr.Reset("123", ActionRedeem)
	if got := tr.Check("123", ActionRedeem); got != 0 {
		t.Errorf("Check() = %v after Reset, want 0", got)
	}
}

func TestTracker_CleanupExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker()
	tr.now = func() time.Time { return now }

	tr.Arm("123", ActionGift, time.Minute)
	tr.Arm("456", ActionGift, time.Hour)

	now = now.Add(30 * time.Minute)
	tr.cleanupExpired()

	if _, ok := tr.deadlines.Load(key("123", ActionGift)); ok {
		t.Error("expired deadline survived cleanup")
	}
	if _, ok := tr.deadlines.Load(key("456", ActionGift)); !ok {
		t.Error("live deadline was dropped by cleanup")
	}
}
