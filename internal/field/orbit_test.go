package field

import (
	"math"
	"testing"

	"starfield/internal/core"
)

func TestDisturbanceDecaysAndExpires(t *testing.T) {
	var d Disturbance
	d.Trigger(0, 0, 1000, 3)
	dx, _ := d.Push(100, 0, 40)
	if want := 1000.0 / 140; math.Abs(dx-want) > 1e-9 {
		t.Fatalf("fresh push %f, want %f", dx, want)
	}

	d.Advance(1.5)
	if got := d.Decay(); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("decay at half duration %f, want 0.25", got)
	}

	d.Advance(1.6)
	if d.Active {
		t.Fatal("disturbance should deactivate past its duration")
	}
	if dx, dy := d.Push(100, 50, 40); dx != 0 || dy != 0 {
		t.Fatalf("expired disturbance still pushes (%f,%f)", dx, dy)
	}
}

func TestDisturbancePushIsRadial(t *testing.T) {
	var d Disturbance
	d.Trigger(10, 10, 500, 3)
	dx, dy := d.Push(10, 60, 40)
	if dx != 0 || dy <= 0 {
		t.Fatalf("expected push straight up, got (%f,%f)", dx, dy)
	}
	if dx, dy := d.Push(10, 10, 40); dx != 0 || dy != 0 {
		t.Fatal("particle at the origin has no direction and must not move")
	}
}

func TestNudgeCapped(t *testing.T) {
	// Pointer 10 units to the right of the particle: pulled right by the cap.
	dx, dy := nudge(10, 0, 600, 6)
	if dx != 6 || dy != 0 {
		t.Fatalf("near pointer should pull by the cap toward +x, got (%f,%f)", dx, dy)
	}
	// Pointer 300 units to the left: pulled left by gain/dist.
	dx, _ = nudge(-300, 0, 600, 6)
	if math.Abs(dx+2) > 1e-9 {
		t.Fatalf("far pointer should pull toward -x by gain/dist, got %f", dx)
	}
	// Pointer 1 unit away: never overshoots it.
	if dx, _ = nudge(0, 1, 600, 6); dx != 0 {
		t.Fatalf("x should not move, got %f", dx)
	}
	if _, dy = nudge(0, 1, 600, 6); dy != 1 {
		t.Fatalf("nudge should stop at the pointer, got %f", dy)
	}
}

func TestOrbiterPullsTowardPointer(t *testing.T) {
	f := core.NewFormation("one", 1)
	f.Place(0, 100, 0, 0)
	f.Layout.Orbits[0] = core.Orbit{Kind: core.OrbitFree}
	p := DefaultParams()
	o := NewOrbiter(f, &p)
	cur := core.NewAttrs(1)
	cur.CopyFrom(f)
	for range 300 {
		o.Advance(cur, 1.0/60, Pointer{X: 0, Y: 0, Active: true}, nil)
	}
	x, _, _ := cur.Position(0)
	if want := 100 - p.PointerCap; math.Abs(float64(x)-want) > 0.01 {
		t.Fatalf("particle settled at x=%f, want %f (pulled toward the pointer)", x, want)
	}
}

func TestOrbiterKeepsBackgroundStatic(t *testing.T) {
	f := core.NewFormation("bg", 2)
	f.Place(0, 50, 60, -200)
	f.Place(1, 10, 10, 0)
	f.Layout.Orbits[0] = core.Orbit{Kind: core.OrbitBackground}
	f.Layout.Orbits[1] = core.DriftOrbit(1)
	p := DefaultParams()
	o := NewOrbiter(f, &p)
	cur := core.NewAttrs(2)
	cur.CopyFrom(f)

	var d Disturbance
	d.Trigger(0, 0, 5000, 3)
	for range 120 {
		o.Advance(cur, 1.0/60, Pointer{X: 40, Y: 60, Active: true}, &d)
	}
	if x, y, z := cur.Position(0); x != 50 || y != 60 || z != -200 {
		t.Fatalf("background particle moved to (%f,%f,%f)", x, y, z)
	}
	if x, y, _ := cur.Position(1); x == 10 && y == 10 {
		t.Fatal("free particle should have moved")
	}
}

func TestOrbiterFreeParticlesStayNearHome(t *testing.T) {
	f := core.NewFormation("free", 16)
	for i := 0; i < 16; i++ {
		f.Place(i, float64(i*20), 0, 0)
		f.Layout.Orbits[i] = core.DriftOrbit(i)
	}
	p := DefaultParams()
	o := NewOrbiter(f, &p)
	cur := core.NewAttrs(16)
	cur.CopyFrom(f)
	for range 600 {
		o.Advance(cur, 1.0/60, Pointer{}, nil)
	}
	for i := 0; i < 16; i++ {
		x, y, _ := cur.Position(i)
		if math.Hypot(float64(x)-float64(i*20), float64(y)) > core.MaxDriftRadius+0.5 {
			t.Fatalf("particle %d drifted to (%f,%f)", i, x, y)
		}
	}
}

func TestOrbiterRotatesGroups(t *testing.T) {
	f := core.NewFormation("g", 1)
	f.Layout.Groups = []core.Group{{Radius: 100, RotationSpeed: 1, Arms: 2}}
	f.Layout.Orbits[0] = core.Orbit{Kind: core.OrbitGroup, Radius: 50, Speed: 0.5}
	x, y, z := f.Layout.Groups[0].Place(f.Layout.Orbits[0])
	f.Place(0, x, y, z)

	p := DefaultParams()
	o := NewOrbiter(f, &p)
	cur := core.NewAttrs(1)
	cur.CopyFrom(f)
	o.Advance(cur, 0.1, Pointer{}, nil)

	if got := o.Groups()[0].Rotation; math.Abs(got-0.1) > 1e-9 {
		t.Fatalf("group rotation %f, want 0.1", got)
	}
	if got := o.Orbits()[0].Angle; math.Abs(got-0.05) > 1e-9 {
		t.Fatalf("particle angle %f, want 0.05", got)
	}
	if f.Layout.Orbits[0].Angle != 0 || f.Layout.Groups[0].Rotation != 0 {
		t.Fatal("orbiter must not mutate the formation")
	}
}

func TestLensingDeflectsTarget(t *testing.T) {
	g := core.Group{Radius: 100, Arms: 2}
	orb := core.Orbit{Kind: core.OrbitGroup, Radius: 20, Lensing: 1}
	f := core.NewFormation("l", 1)
	f.Layout.Groups = []core.Group{g}
	f.Layout.Orbits[0] = orb
	p := DefaultParams()
	o := NewOrbiter(f, &p)

	x, y, _ := o.place(0, &o.orbits[0])
	bx, by, _ := g.Place(orb)
	if math.Hypot(x-bx, y-by) < 1 {
		t.Fatal("lensing should deflect the target")
	}
	if r := math.Hypot(x, y); math.Abs(r-20) > 1e-6 {
		t.Fatalf("deflection outside the photon sphere keeps the radius, got %f", r)
	}
}
