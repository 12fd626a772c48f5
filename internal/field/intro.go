package field

import (
	"math"

	"starfield/internal/core"
)

// Intro warp constants, in world units and 60 Hz frames.
const (
	WarpExtent   = 800
	WarpWrap     = 1000
	WarpMinSpeed = 0.2
	WarpMaxSpeed = 0.7
	WarpBoost    = 1.05
	WarpFade     = 0.01
)

// Warp is the star field shown before the first scene: particles stream
// toward the camera until Exit accelerates them away while fading out.
type Warp struct {
	Positions []float32
	velocity  []float32
	opacity   float64
	exiting   bool
}

// NewWarp fills a ±WarpExtent cube with count particles.
func NewWarp(count int, seed int64) *Warp {
	if count < 0 {
		count = 0
	}
	rng := core.NewRNG(seed)
	w := &Warp{
		Positions: make([]float32, count*3),
		velocity:  make([]float32, count),
		opacity:   1,
	}
	for i := 0; i < count; i++ {
		w.Positions[i*3] = float32(rng.Centered(2 * WarpExtent))
		w.Positions[i*3+1] = float32(rng.Centered(2 * WarpExtent))
		w.Positions[i*3+2] = float32(rng.Centered(2 * WarpExtent))
		w.velocity[i] = float32(rng.Range(WarpMinSpeed, WarpMaxSpeed))
	}
	return w
}

// Count returns the number of warp particles.
func (w *Warp) Count() int { return len(w.velocity) }

// Opacity returns the current fade level in [0,1].
func (w *Warp) Opacity() float64 { return max(0, w.opacity) }

// Exiting reports whether Exit was called.
func (w *Warp) Exiting() bool { return w.exiting }

// Exit starts the hyperspace exit.
func (w *Warp) Exit() { w.exiting = true }

// Done reports whether the exit has faded out completely.
func (w *Warp) Done() bool { return w.exiting && w.opacity <= 0 }

// Step advances the warp by dt seconds.
func (w *Warp) Step(dt float64) {
	if dt <= 0 || w.Done() {
		return
	}
	frames := dt * 60
	boost := float32(1)
	if w.exiting {
		boost = float32(math.Pow(WarpBoost, frames))
		w.opacity -= WarpFade * frames
	}
	for i := range w.velocity {
		w.velocity[i] *= boost
		z := &w.Positions[i*3+2]
		*z += w.velocity[i] * float32(frames)
		if *z > WarpWrap {
			*z = -WarpWrap
		}
	}
}
