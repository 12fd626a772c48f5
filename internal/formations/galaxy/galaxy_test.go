package galaxy

import (
	"math"
	"testing"

	"starfield/internal/core"
)

type groupStats struct {
	meanRadius  float64
	armFraction float64
	count       int
}

func stats(f core.Formation) []groupStats {
	out := make([]groupStats, len(f.Layout.Groups))
	for _, o := range f.Layout.Orbits {
		if o.Kind != core.OrbitGroup {
			continue
		}
		g := f.Layout.Groups[o.Group]
		s := &out[o.Group]
		s.count++
		s.meanRadius += o.Radius / g.Radius
		if ArmDistance(g, o) < ArmBand {
			s.armFraction++
		}
	}
	for i := range out {
		if out[i].count > 0 {
			out[i].meanRadius /= float64(out[i].count)
			out[i].armFraction /= float64(out[i].count)
		}
	}
	return out
}

func TestBuildCountsAndColors(t *testing.T) {
	for groups := 1; groups <= 3; groups++ {
		req := core.Request{Scene: "/g", Count: 1000, Seed: int64(groups), Viewport: core.Viewport{W: 1920, H: 1080}}
		f := Build(req, groups)
		if f.Count() != 1000 || len(f.Colors) != 3000 || len(f.Layout.Orbits) != 1000 {
			t.Fatalf("groups=%d: unexpected sizes", groups)
		}
		if len(f.Layout.Groups) != groups {
			t.Fatalf("expected %d groups, got %d", groups, len(f.Layout.Groups))
		}
		for i, c := range f.Colors {
			if c < 0 || c > 1 || math.IsNaN(float64(c)) {
				t.Fatalf("groups=%d: color %d out of range: %f", groups, i, c)
			}
		}
		background := 0
		for _, o := range f.Layout.Orbits {
			if o.Kind == core.OrbitBackground {
				background++
			}
		}
		if want := int(1000 * BackgroundFraction); background != want {
			t.Fatalf("expected %d background particles, got %d", want, background)
		}
	}
}

func TestDistributionStableAcrossSeeds(t *testing.T) {
	const n = 2000
	var radii []float64
	for seed := int64(1); seed <= 6; seed++ {
		f := Build(core.Request{Scene: "/", Count: n, Seed: seed}, 3)
		for gi, s := range stats(f) {
			if s.armFraction < 0.8 {
				t.Fatalf("seed %d group %d: arm fraction %.3f below 0.8", seed, gi, s.armFraction)
			}
			radii = append(radii, s.meanRadius)
		}
	}
	lo, hi := radii[0], radii[0]
	for _, r := range radii {
		lo = math.Min(lo, r)
		hi = math.Max(hi, r)
	}
	if hi-lo > 0.06 {
		t.Fatalf("mean radius varies too much across seeds: [%.3f, %.3f]", lo, hi)
	}
}

func TestGroupPlacement(t *testing.T) {
	pair := Build(core.Request{Count: 100, Seed: 9}, 2).Layout.Groups
	if pair[0].X != -pair[1].X || pair[0].Y != pair[1].Y {
		t.Fatalf("pair not mirrored: %+v", pair)
	}
	again := Build(core.Request{Count: 100, Seed: 10}, 2).Layout.Groups
	if again[0].X != pair[0].X {
		t.Fatal("pair placement should not depend on the seed")
	}

	single := Build(core.Request{Count: 100, Seed: 9}, 1).Layout.Groups
	if single[0].X != 0 || single[0].Y != 0 {
		t.Fatal("single group should sit at the origin")
	}

	for seed := int64(0); seed < 20; seed++ {
		gs := Build(core.Request{Count: 10, Seed: seed, Viewport: core.Viewport{W: 800, H: 600}}, 3).Layout.Groups
		for i := range gs {
			for j := i + 1; j < len(gs); j++ {
				d := math.Hypot(gs[i].X-gs[j].X, gs[i].Y-gs[j].Y)
				if d < Radius(3)*MinSeparation-1e-9 {
					t.Fatalf("seed %d: groups %d and %d only %.1f apart", seed, i, j, d)
				}
			}
		}
	}
}

func TestJitterIsPureFunctionOfIndexAndSeed(t *testing.T) {
	req := core.Request{Count: 300, Seed: 5}
	a := Build(req, 1)
	b := Build(req, 1)
	for i := range a.Layout.Orbits {
		if a.Layout.Orbits[i].JitterX != b.Layout.Orbits[i].JitterX {
			t.Fatalf("jitter differs at %d", i)
		}
	}
	for _, o := range a.Layout.Orbits {
		if math.Abs(o.JitterX) > jitterAmp*2 || math.Abs(o.JitterY) > jitterAmp*2 {
			t.Fatalf("jitter too large: %+v", o)
		}
	}
}

func TestLensingOnlyWhenEnabled(t *testing.T) {
	off := Build(core.Request{Count: 2000, Seed: 2}, 1)
	for _, o := range off.Layout.Orbits {
		if o.Lensing != 0 || o.InPhotonSphere {
			t.Fatal("lensing must be zero when disabled")
		}
	}
	on := Build(core.Request{Count: 2000, Seed: 2, Lensing: true}, 1)
	lensed, photon := 0, 0
	for _, o := range on.Layout.Orbits {
		if o.Lensing > 0 {
			lensed++
			if o.Lensing > 1 {
				t.Fatalf("lensing strength above 1: %f", o.Lensing)
			}
		}
		if o.InPhotonSphere {
			photon++
		}
	}
	if lensed == 0 || photon == 0 || photon > lensed {
		t.Fatalf("unexpected lensing counts lensed=%d photon=%d", lensed, photon)
	}
}

func TestShadeBands(t *testing.T) {
	g := core.Group{Radius: 100, Arms: 2}
	r, _, b := Shade(g, core.Orbit{Radius: 1})
	if r < b {
		t.Fatalf("core should be warm, got r=%f b=%f", r, b)
	}
	r, _, b = Shade(g, core.Orbit{Radius: 95})
	if b < r {
		t.Fatalf("outer disk should be blue, got r=%f b=%f", r, b)
	}
}

func TestRegisteredScenes(t *testing.T) {
	for _, scene := range []string{core.SceneAbout, core.SceneContact, core.DefaultScene} {
		if _, ok := core.Recipes()[scene]; !ok {
			t.Fatalf("scene %q not registered", scene)
		}
	}
	f := core.Generate(core.Request{Scene: "/blog", Count: 50})
	if len(f.Layout.Groups) != 3 {
		t.Fatalf("unknown scene should fall back to three groups, got %d", len(f.Layout.Groups))
	}
}
