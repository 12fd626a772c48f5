// Package timeline draws the flowing curve of the experience scene.
package timeline

import (
	"math"

	"starfield/internal/core"
)

const (
	Length    = 1000.0
	Sway      = 100.0
	Amplitude = 200.0
	Scatter   = 50.0
	Depth     = 200.0
)

// Curve returns the centerline of the timeline at progress p in [0,1).
func Curve(p float64) (x, y float64) {
	x = (p-0.5)*Length + math.Sin(p*4*math.Pi)*Sway
	y = math.Cos(p*2*math.Pi) * Amplitude
	return x, y
}

// Build spreads req.Count particles along the curve in index order.
func Build(req core.Request) core.Formation {
	f := core.NewFormation(req.Scene, req.Count)
	rng := core.NewRNG(req.Seed)
	spread := req.Viewport.Spread()
	for i := 0; i < req.Count; i++ {
		x, y := Curve(float64(i) / float64(req.Count))
		f.Place(i, x*spread, y+rng.Centered(Scatter), rng.Centered(Depth))
		f.Paint(i, 1, 1, 1)
		f.Layout.Orbits[i] = core.DriftOrbit(i)
	}
	return f
}

func init() {
	core.Register(core.SceneExperience, Build)
}
