package sketch

import "time"

// Clock is a virtual clock advancing by the real frame delta multiplied by
// a time scale.
//
// Virtual time changes only in Update and Synchronize; reads in between
// are stable. A Clock is not safe for concurrent use.
type Clock struct {
	realElapsed func() time.Duration

	realDelta     time.Duration
	scale         float64
	virtualMillis float64
}

// NewClock returns a clock with scale 1. realElapsed reports the real time
// since the sketch started; nil measures from the call to NewClock.
func NewClock(realElapsed func() time.Duration) *Clock {
	if realElapsed == nil {
		start := time.Now()
		realElapsed = func() time.Duration { return time.Since(start) }
	}
	return &Clock{realElapsed: realElapsed, scale: 1}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Update records the real delta of the frame and advances virtual time by
// realDelta * TimeScale. Call it at most once per frame.
func (c *Clock) Update(realDelta time.Duration) {
	c.realDelta = realDelta
	c.virtualMillis += millis(realDelta) * c.scale
}

// DeltaTime returns the scaled delta of the last frame.
func (c *Clock) DeltaTime() time.Duration {
	return time.Duration(float64(c.realDelta) * c.scale)
}

// DeltaMillis returns the scaled delta of the last frame in milliseconds.
func (c *Clock) DeltaMillis() float64 {
	return millis(c.realDelta) * c.scale
}

// RealDeltaTime returns the unscaled delta of the last frame.
func (c *Clock) RealDeltaTime() time.Duration { return c.realDelta }

// TimeScale returns the current scale.
func (c *Clock) TimeScale() float64 { return c.scale }

// SetTimeScale sets the scale applied by later updates. Zero freezes
// virtual time, negative values run it backwards.
func (c *Clock) SetTimeScale(s float64) { c.scale = s }

// Millis returns virtual time in milliseconds.
func (c *Clock) Millis() float64 { return c.virtualMillis }

// Elapsed returns virtual time as a duration.
func (c *Clock) Elapsed() time.Duration {
	return time.Duration(c.virtualMillis * float64(time.Millisecond))
}

// RealMillis returns real time since the sketch started, in milliseconds.
func (c *Clock) RealMillis() float64 { return millis(c.realElapsed()) }

// Synchronize sets virtual time to the current real elapsed time.
func (c *Clock) Synchronize() {
	c.virtualMillis = c.RealMillis()
}
