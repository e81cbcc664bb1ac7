// Package clock tracks wall-clock time since start and since the previous frame.
package clock

import "time"

// Tick is one simulation time step.
type Tick struct {
	// Delta is the time since the previous Tock, in seconds.
	Delta float32

	// Elapsed is the time since the clock was created, in seconds.
	// Kept in float64 so long sessions do not drift.
	Elapsed float64

	// Frame is the 1-based index of this tick.
	Frame uint64
}

// Clock produces one Tick per frame.
// It is not safe for concurrent use; the frame driver owns it.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	frame uint64

	maxDelta time.Duration
}

// ClockOption is a functional option for configuring a Clock.
type ClockOption func(*Clock)

// WithTimeSource replaces time.Now as the clock's time source.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ClockOption: option function to apply
func WithTimeSource(now func() time.Time) ClockOption {
	return func(c *Clock) {
		c.now = now
	}
}

// WithMaxDelta caps the delta reported for a single tick, e.g. after the process was suspended.
// Zero disables the cap (default).
//
// Parameters:
//   - d: the largest delta reported
//
// Returns:
//   - ClockOption: option function to apply
func WithMaxDelta(d time.Duration) ClockOption {
	return func(c *Clock) {
		c.maxDelta = d
	}
}

// NewClock creates a Clock started at the current time.
//
// Parameters:
//   - options: functional options for clock configuration
//
// Returns:
//   - *Clock: the started clock
func NewClock(options ...ClockOption) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range options {
		opt(c)
	}
	c.start = c.now()
	c.last = c.start
	return c
}

// Tock advances the clock and returns the tick for the current frame.
// Delta is never negative and Elapsed never decreases, even if the time source steps backwards.
//
// Returns:
//   - Tick: the delta since the last call and the time since start
func (c *Clock) Tock() Tick {
	now := c.now()

	delta := now.Sub(c.last)
	if delta < 0 {
		delta = 0
	} else {
		c.last = now
	}
	if c.maxDelta > 0 && delta > c.maxDelta {
		delta = c.maxDelta
	}

	c.frame++
	return Tick{
		Delta:   float32(delta.Seconds()),
		Elapsed: c.last.Sub(c.start).Seconds(),
		Frame:   c.frame,
	}
}

// Elapsed returns the time since the clock was created without advancing it.
func (c *Clock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}
