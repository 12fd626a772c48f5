package field

import (
	"math"

	"starfield/internal/core"
)

// Transition blends the live attributes toward a target formation. Only one
// transition runs at a time; Begin drops requests while one is active.
type Transition struct {
	Lerp      float64
	Tolerance float64
	MaxSteps  int

	active bool
	target core.Formation
	steps  int
	cutoff bool
}

// NewTransition returns an idle transition tuned by p.
func NewTransition(p Params) Transition {
	return Transition{Lerp: p.Lerp, Tolerance: p.Tolerance, MaxSteps: p.MaxTransitionSteps}
}

// Active reports whether a transition is in flight.
func (t *Transition) Active() bool { return t.active }

// Steps returns the number of steps taken by the current transition.
func (t *Transition) Steps() int { return t.steps }

// CutOff reports whether the last completed transition hit the step limit
// and was snapped to its target.
func (t *Transition) CutOff() bool { return t.cutoff }

// Target returns the formation being approached.
func (t *Transition) Target() (core.Formation, bool) {
	return t.target, t.active
}

// Begin starts a transition toward target. It returns false and leaves the
// running transition untouched if one is already active.
func (t *Transition) Begin(target core.Formation) bool {
	if t.active {
		return false
	}
	t.active = true
	t.target = target
	t.steps = 0
	t.cutoff = false
	return true
}

// Reset abandons any transition in flight.
func (t *Transition) Reset() {
	t.active = false
	t.target = core.Formation{}
	t.steps = 0
}

// Step moves cur toward the target by one frame of length dt seconds. It
// returns true exactly once, on the step that completes the transition.
func (t *Transition) Step(cur *core.Attrs, dt float64) bool {
	if !t.active {
		return false
	}
	t.steps++
	f := frameFactor(t.Lerp, dt)

	pos, tgt := cur.Positions, t.target.Positions
	n := min(len(pos), len(tgt))
	done := true
	for i := 0; i < n; i++ {
		d := tgt[i] - pos[i]
		pos[i] += d * float32(f)
		if math.Abs(float64(tgt[i]-pos[i])) >= t.Tolerance {
			done = false
		}
	}
	col, tcol := cur.Colors, t.target.Colors
	for i := 0; i < min(len(col), len(tcol)); i++ {
		col[i] += (tcol[i] - col[i]) * float32(f)
	}

	if !done && t.MaxSteps > 0 && t.steps >= t.MaxSteps {
		copy(pos, tgt)
		copy(col, tcol)
		t.cutoff = true
		done = true
	}
	if done {
		t.active = false
		t.target = core.Formation{}
	}
	return done
}

// frameFactor converts a per-frame lerp rate at 60 Hz into the factor for a
// frame of dt seconds.
func frameFactor(rate, dt float64) float64 {
	if dt <= 0 || rate <= 0 || math.IsNaN(dt) {
		return 0
	}
	if rate >= 1 {
		return 1
	}
	return 1 - math.Pow(1-rate, dt*60)
}
