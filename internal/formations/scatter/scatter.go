// Package scatter provides the organic cloud shown on the home scene.
package scatter

import "starfield/internal/core"

// Cloud extents in world units.
const (
	Width  = 600
	Height = 400
	Depth  = 200
)

// Build scatters req.Count white particles uniformly through the cloud box.
func Build(req core.Request) core.Formation {
	f := core.NewFormation(req.Scene, req.Count)
	rng := core.NewRNG(req.Seed)
	w := Width * req.Viewport.Spread()
	for i := 0; i < req.Count; i++ {
		f.Place(i, rng.Centered(w), rng.Centered(Height), rng.Centered(Depth))
		f.Paint(i, 1, 1, 1)
		f.Layout.Orbits[i] = core.DriftOrbit(i)
	}
	return f
}

func init() {
	core.Register(core.SceneHome, Build)
}
