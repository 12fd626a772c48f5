package core

import "time"

// maxFrameDelta bounds how much wall time a single poll may feed into the
// accumulator, so a stalled process does not replay a burst of ticks.
const maxFrameDelta = 250 * time.Millisecond

// FixedStep helps run engine updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	return NewFixedStepClock(tps, time.Now)
}

// NewFixedStepClock is NewFixedStep with an injected clock.
func NewFixedStepClock(tps int, now func() time.Time) *FixedStep {
	if now == nil {
		now = time.Now
	}
	fs := &FixedStep{now: now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the tick length.
func (f *FixedStep) Step() time.Duration { return f.step }

// DT returns the tick length in seconds.
func (f *FixedStep) DT() float64 { return f.step.Seconds() }

// ShouldStep reports whether the engine should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	if delta > maxFrameDelta {
		delta = maxFrameDelta
	}
	if delta > 0 {
		f.accumulator += delta
	}
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
