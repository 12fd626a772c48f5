package core

import "math"

// Scene identifiers are the site's route paths.
const (
	SceneHome       = "/"
	SceneProjects   = "/projects"
	SceneExperience = "/experience"
	SceneAbout      = "/about"
	SceneContact    = "/contact"

	// DefaultScene keys the recipe used for scenes without their own.
	DefaultScene = "*"
)

// Viewport describes the drawing surface in device pixels.
type Viewport struct {
	W int
	H int
}

// Aspect returns W/H, falling back to 16:9 for degenerate sizes.
func (v Viewport) Aspect() float32 {
	if v.W <= 0 || v.H <= 0 {
		return 16.0 / 9.0
	}
	return float32(v.W) / float32(v.H)
}

// Spread is the cosmetic horizontal scale applied by recipes. A 1920 wide
// desktop is 1; narrow screens pull formations inward.
func (v Viewport) Spread() float64 {
	if v.W <= 0 {
		return 1
	}
	s := float64(v.W) / 1920
	return math.Max(0.6, math.Min(1.25, s))
}

// Request carries the inputs of a formation recipe.
type Request struct {
	Scene    string
	Count    int
	Viewport Viewport
	Seed     int64
	Lensing  bool
}

// Recipe builds a formation for a request. Recipes fill exactly req.Count
// particles.
type Recipe func(req Request) Formation

var recipes = map[string]Recipe{}

// Register adds a formation recipe under the provided scene id.
func Register(scene string, r Recipe) {
	if scene == "" || r == nil {
		return
	}
	recipes[scene] = r
}

// Recipes exposes the registry of formation recipes.
func Recipes() map[string]Recipe {
	return recipes
}

// Lookup resolves the recipe for scene, falling back to DefaultScene and
// then to a plain cloud.
func Lookup(scene string) Recipe {
	if r, ok := recipes[scene]; ok {
		return r
	}
	if r, ok := recipes[DefaultScene]; ok {
		return r
	}
	return cloud
}

// Generate produces the formation for req. It never fails: unknown scenes
// degrade to the default recipe and the result is normalised so that both
// attribute arrays hold exactly req.Count finite triples.
func Generate(req Request) Formation {
	if req.Count < 0 {
		req.Count = 0
	}
	f := Lookup(req.Scene)(req)
	f.Name = req.Scene
	f.normalize(req.Count)
	return f
}

func cloud(req Request) Formation {
	f := NewFormation(req.Scene, req.Count)
	rng := NewRNG(req.Seed)
	spread := req.Viewport.Spread()
	for i := 0; i < req.Count; i++ {
		f.Place(i, rng.Centered(600*spread), rng.Centered(400), rng.Centered(200))
		f.Paint(i, 1, 1, 1)
		f.Layout.Orbits[i] = DriftOrbit(i)
	}
	return f
}
