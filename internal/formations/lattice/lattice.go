// Package lattice lays particles on the square grid of the projects scene.
package lattice

import (
	"math"

	"github.com/aquilax/go-perlin"

	"starfield/internal/core"
)

const (
	// Pitch is the spacing between neighbouring grid points.
	Pitch = 8.0
	// Jitter is the full width of the random offset applied on x and y.
	Jitter = 5.0
	// Relief bounds the perlin depth ripple.
	Relief = 50.0
)

// Side returns the number of columns used for n particles.
func Side(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// Build places req.Count particles row by row on a ceil(√N) wide grid
// centred on the origin. Depth follows a perlin ripple across the grid.
func Build(req core.Request) core.Formation {
	f := core.NewFormation(req.Scene, req.Count)
	rng := core.NewRNG(req.Seed)
	noise := perlin.NewPerlin(2, 2, 3, req.Seed)
	gs := Side(req.Count)
	half := float64(gs) / 2
	spread := req.Viewport.Spread()
	for i := 0; i < req.Count; i++ {
		row, col := i/gs, i%gs
		x := (float64(col)-half)*Pitch*spread + rng.Centered(Jitter)
		y := (float64(row)-half)*Pitch + rng.Centered(Jitter)
		z := noise.Noise1D(float64(col)*0.11+float64(row)*0.07) * Relief * 2
		z = math.Max(-Relief, math.Min(Relief, z))
		f.Place(i, x, y, z)
		f.Paint(i, 1, 1, 1)
		f.Layout.Orbits[i] = core.DriftOrbit(i)
	}
	return f
}

func init() {
	core.Register(core.SceneProjects, Build)
}
