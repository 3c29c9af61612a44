package reel

// Countdown is a tick-counting trigger: Ready returns true once every Period
// calls. It is meant to be polled from the update function, one call per tick.
type Countdown struct {
	Period int
	left   int
}

// NewCountdown creates a countdown that fires every period ticks. Periods
// below 1 fire on every call.
func NewCountdown(period int) *Countdown {
	if period < 1 {
		period = 1
	}
	return &Countdown{Period: period, left: period}
}

// Ready counts one tick and reports whether the period has elapsed. The
// countdown then starts over.
func (c *Countdown) Ready() bool {
	c.left--
	if c.left > 0 {
		return false
	}
	c.left = max(c.Period, 1)
	return true
}

// Reset restarts the current period.
func (c *Countdown) Reset() {
	c.left = max(c.Period, 1)
}

// Remaining returns how many ticks are left before Ready next fires.
func (c *Countdown) Remaining() int {
	return c.left
}
