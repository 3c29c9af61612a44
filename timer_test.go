package reel

import "testing"

func TestCountdownFiresEveryPeriod(t *testing.T) {
	c := NewCountdown(3)
	var fired []int
	for i := 1; i <= 9; i++ {
		if c.Ready() {
			fired = append(fired, i)
		}
	}
	if len(fired) != 3 || fired[0] != 3 || fired[1] != 6 || fired[2] != 9 {
		t.Errorf("fired on %v, want [3 6 9]", fired)
	}
}

func TestCountdownMinimumPeriod(t *testing.T) {
	c := NewCountdown(0)
	if !c.Ready() || !c.Ready() {
		t.Error("period below 1 should fire every call")
	}
}

func TestCountdownReset(t *testing.T) {
	c := NewCountdown(4)
	c.Ready()
	c.Ready()
	if c.Remaining() != 2 {
		t.Fatalf("Remaining = %d, want 2", c.Remaining())
	}
	c.Reset()
	if c.Remaining() != 4 {
		t.Errorf("Remaining after Reset = %d, want 4", c.Remaining())
	}
}
