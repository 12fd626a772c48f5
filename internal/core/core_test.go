package core

import (
	"math"
	"slices"
	"testing"
	"time"
)

func TestGenerateFallsBackToCloud(t *testing.T) {
	saved := recipes
	recipes = map[string]Recipe{}
	defer func() { recipes = saved }()

	f := Generate(Request{Scene: "/nowhere", Count: 64, Seed: 3})
	if got := f.Count(); got != 64 {
		t.Fatalf("expected 64 particles, got %d", got)
	}
	if len(f.Colors) != 64*3 || len(f.Layout.Orbits) != 64 {
		t.Fatalf("attribute arrays mismatched: colors=%d orbits=%d", len(f.Colors), len(f.Layout.Orbits))
	}
	if f.Name != "/nowhere" {
		t.Fatalf("expected formation named after scene, got %q", f.Name)
	}
}

func TestGenerateUsesDefaultRecipe(t *testing.T) {
	saved := recipes
	recipes = map[string]Recipe{}
	defer func() { recipes = saved }()

	called := ""
	Register(DefaultScene, func(req Request) Formation {
		called = req.Scene
		return NewFormation(req.Scene, req.Count)
	})
	Generate(Request{Scene: "/blog", Count: 4})
	if called != "/blog" {
		t.Fatalf("default recipe not used for unknown scene, got %q", called)
	}
}

func TestGenerateSanitizesRecipeOutput(t *testing.T) {
	saved := recipes
	recipes = map[string]Recipe{}
	defer func() { recipes = saved }()

	Register("/broken", func(req Request) Formation {
		// Wrong length, non-finite values and out of range colors.
		f := Formation{
			Positions: []float32{float32(math.NaN()), float32(math.Inf(1)), 7},
			Colors:    []float32{-1, 2, 0.5},
			Layout:    Layout{Orbits: []Orbit{{Kind: OrbitGroup, Group: 4}}},
		}
		return f
	})
	f := Generate(Request{Scene: "/broken", Count: 3})
	if len(f.Positions) != 9 || len(f.Colors) != 9 {
		t.Fatalf("expected arrays resized to 9, got %d/%d", len(f.Positions), len(f.Colors))
	}
	if !slices.Equal(f.Positions[:3], []float32{0, 0, 7}) {
		t.Fatalf("non-finite positions not zeroed: %v", f.Positions[:3])
	}
	if !slices.Equal(f.Colors[:3], []float32{0, 1, 0.5}) {
		t.Fatalf("colors not clamped: %v", f.Colors[:3])
	}
	if f.Layout.Orbits[0].Kind != OrbitFree {
		t.Fatal("orbit referencing a missing group should fall back to free")
	}
}

func TestCloneIsDeep(t *testing.T) {
	f := NewFormation("x", 2)
	f.Place(0, 1, 2, 3)
	f.Layout.Groups = []Group{{Radius: 10}}
	c := f.Clone()
	c.Positions[0] = 99
	c.Layout.Groups[0].Radius = 1
	if f.Positions[0] != 1 || f.Layout.Groups[0].Radius != 10 {
		t.Fatal("clone shares storage with original")
	}
}

func TestDeviceParticleCounts(t *testing.T) {
	cases := []struct {
		dev   Device
		class DeviceClass
		count int
		intro int
	}{
		{Device{Width: 375, Cores: 4}, DeviceLowEnd, 500, 1500},
		{Device{Width: 768, Cores: 8}, DeviceMobile, 800, 2500},
		{Device{Width: 1024, Cores: 2}, DeviceTablet, 1200, 3500},
		{Device{Width: 1920, Cores: 16}, DeviceDesktop, 2000, 5000},
		{Device{}, DeviceDesktop, 2000, 5000},
	}
	for _, tc := range cases {
		if got := tc.dev.Class(); got != tc.class {
			t.Errorf("%+v: class %v, want %v", tc.dev, got, tc.class)
		}
		if got := tc.dev.ParticleCount(); got != tc.count {
			t.Errorf("%+v: count %d, want %d", tc.dev, got, tc.count)
		}
		if got := tc.dev.IntroCount(); got != tc.intro {
			t.Errorf("%+v: intro %d, want %d", tc.dev, got, tc.intro)
		}
	}
	if PointSize(400) != 2.5 || PointSize(700) != 3 || PointSize(1600) != 3.5 {
		t.Fatal("unexpected point sizes")
	}
}

func TestWrapAngle(t *testing.T) {
	for _, a := range []float64{0, 1, -1, 3 * math.Pi, -7.5, 100} {
		w := WrapAngle(a)
		if w < -math.Pi || w >= math.Pi {
			t.Fatalf("WrapAngle(%f)=%f out of range", a, w)
		}
		if d := math.Abs(math.Sin(w) - math.Sin(a)); d > 1e-9 {
			t.Fatalf("WrapAngle(%f) changed direction", a)
		}
	}
	if WrapAngle(math.NaN()) != 0 {
		t.Fatal("NaN angle should wrap to 0")
	}
}

func TestGroupPlaceFollowsRotation(t *testing.T) {
	g := Group{Radius: 100, Arms: 2}
	o := Orbit{Kind: OrbitGroup, Radius: 50}
	x, y, _ := g.Place(o)
	if math.Abs(x-50) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Fatalf("expected (50,0), got (%f,%f)", x, y)
	}
	g.Rotation = math.Pi / 2
	x, y, _ = g.Place(o)
	if math.Abs(x) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Fatalf("expected (0,50) after quarter turn, got (%f,%f)", x, y)
	}
	o.Arm = 1
	x, _, _ = g.Place(o)
	if math.Abs(x) > 1e-9 {
		t.Fatalf("second arm should sit opposite, got x=%f", x)
	}
}

func TestDriftOrbitStaysSmall(t *testing.T) {
	for i := range 50 {
		o := DriftOrbit(i)
		dx, dy := o.Offset()
		if math.Hypot(dx, dy) > MaxDriftRadius+1e-9 {
			t.Fatalf("particle %d drifts too far", i)
		}
	}
}

func TestFixedStepWithInjectedClock(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStepClock(10, func() time.Time { return now })

	// The accumulator starts primed with one tick.
	if !fs.ShouldStep() {
		t.Fatal("expected first poll to step")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	now = now.Add(100 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step after one tick of time")
	}

	// A long stall is clamped to a bounded number of catch-up ticks.
	now = now.Add(10 * time.Second)
	steps := 0
	for fs.ShouldStep() {
		steps++
	}
	if steps != 2 {
		t.Fatalf("expected 2 catch-up steps after clamp, got %d", steps)
	}
	if math.Abs(fs.DT()-0.1) > 1e-12 {
		t.Fatalf("unexpected dt %f", fs.DT())
	}
}

func TestDensityGrid(t *testing.T) {
	g := NewDensityGrid(4, 3)
	g.Add(1, 1, 1, 0, 0)
	g.Add(1, 1, 0, 0, 1)
	g.Add(9, 9, 1, 1, 1)
	if g.Hits(1, 1) != 2 || g.Max() != 2 {
		t.Fatalf("unexpected hits %d max %d", g.Hits(1, 1), g.Max())
	}
	r, _, b := g.Mean(1, 1)
	if r != 0.5 || b != 0.5 {
		t.Fatalf("unexpected mean color %f %f", r, b)
	}
	g.Clear()
	if g.Max() != 0 {
		t.Fatal("clear left hits behind")
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for range 16 {
		if a.Float() != b.Float() {
			t.Fatal("same seed produced different streams")
		}
	}
	r := NewRNG(1)
	for range 100 {
		v := r.Centered(10)
		if v < -5 || v >= 5 {
			t.Fatalf("Centered out of range: %f", v)
		}
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{
		Name:   "Motion",
		Params: []Parameter{FloatParam("lerp", "Lerp", 0.05), IntParam("count", "Count", 9)},
	}}}
	p, ok := snap.Lookup("count")
	if !ok || p.Value != "9" || p.Type != ParamTypeInt {
		t.Fatalf("unexpected lookup result %+v %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("lookup of missing key should fail")
	}
	c := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if c.Clamp(2) != 1 || c.Clamp(-1) != 0 {
		t.Fatal("clamp ignored bounds")
	}
}

func TestBackdropPerScene(t *testing.T) {
	if Backdrop(SceneProjects).G != 50 {
		t.Fatal("projects backdrop should be green")
	}
	if Backdrop("/anything") != Backdrop(SceneAbout) {
		t.Fatal("unknown scenes share the default backdrop")
	}
	if c := BackdropAt(SceneHome, 1); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Fatalf("edge of gradient should be black, got %+v", c)
	}
}
