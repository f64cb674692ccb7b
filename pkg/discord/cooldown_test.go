package discord

import (
	"testing"
	"time"
)

func TestCooldownTake(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newCooldowns()
	c.now = func() time.Time { return now }

	if wait := c.take("mod.warn", "u1", 3*time.Second); wait != 0 {
		t.Fatalf("first use waited %v", wait)
	}

	now = now.Add(time.Second)
	wait := c.take("mod.warn", "u1", 3*time.Second)
	if wait < 1900*time.Millisecond || wait > 2100*time.Millisecond {
		t.Errorf("wait = %v, want about %v", wait, 2*time.Second)
	}

	if wait := c.take("mod.warn", "u2", 3*time.Second); wait != 0 {
		t.Errorf("another user waited %v", wait)
	}
	if wait := c.take("report", "u1", 3*time.Second); wait != 0 {
		t.Errorf("another command waited %v", wait)
	}

	now = now.Add(3 * time.Second)
	if wait := c.take("mod.warn", "u1", 3*time.Second); wait != 0 {
		t.Errorf("use after the cooldown waited %v", wait)
	}
}

func TestCooldownDisabled(t *testing.T) {
	c := newCooldowns()
	for i := 0; i < 5; i++ {
		if wait := c.take("ping", "u1", 0); wait != 0 {
			t.Fatalf("zero cooldown waited %v", wait)
		}
	}
	if len(c.limiters) != 0 {
		t.Errorf("zero cooldown should not track users, got %d entries", len(c.limiters))
	}
}

func TestCooldownSweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newCooldowns()
	c.now = func() time.Time { return now }

	c.take("mod.warn", "u1", time.Second)
	now = now.Add(time.Minute)
	c.take("mod.warn", "u2", time.Second)

	c.sweep(30 * time.Second)
	if len(c.limiters) != 1 {
		t.Errorf("entries after sweep = %d, want %d", len(c.limiters), 1)
	}
}
