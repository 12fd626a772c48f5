package field

import "math"

// Disturbance is a decaying radial push started by a click. A new click
// overwrites the previous one.
type Disturbance struct {
	Active   bool
	OriginX  float64
	OriginY  float64
	Elapsed  float64
	Strength float64
	Duration float64
}

// Trigger restarts the disturbance at (x, y).
func (d *Disturbance) Trigger(x, y, strength, duration float64) {
	*d = Disturbance{
		Active:   true,
		OriginX:  x,
		OriginY:  y,
		Strength: strength,
		Duration: duration,
	}
}

// Advance moves the disturbance clock forward and deactivates it once its
// duration has passed.
func (d *Disturbance) Advance(dt float64) {
	if !d.Active {
		return
	}
	if dt > 0 {
		d.Elapsed += dt
	}
	if d.Elapsed > d.Duration {
		d.Active = false
	}
}

// Decay returns the current falloff, (1-e/D)², or zero when inactive.
func (d *Disturbance) Decay() float64 {
	if !d.Active || d.Duration <= 0 || d.Elapsed > d.Duration {
		return 0
	}
	k := 1 - d.Elapsed/d.Duration
	return k * k
}

// Push returns the displacement applied to a particle at (x, y): radially
// away from the origin with magnitude Strength·decay/(dist+soft).
func (d *Disturbance) Push(x, y, soft float64) (dx, dy float64) {
	decay := d.Decay()
	if decay == 0 {
		return 0, 0
	}
	rx, ry := x-d.OriginX, y-d.OriginY
	dist := math.Hypot(rx, ry)
	if dist < 1e-9 {
		return 0, 0
	}
	m := d.Strength * decay / (dist + math.Max(soft, 1e-6))
	return rx / dist * m, ry / dist * m
}
