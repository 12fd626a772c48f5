package field

import (
	"math"
	"testing"

	"starfield/internal/core"
)

func TestUnprojectCenterIsOrigin(t *testing.T) {
	c := NewCamera(core.Viewport{W: 1280, H: 720})
	x, y := c.Unproject(0, 0)
	if math.Abs(x) > 1e-3 || math.Abs(y) > 1e-3 {
		t.Fatalf("center should map to origin, got (%f,%f)", x, y)
	}
}

func TestUnprojectMatchesFrustum(t *testing.T) {
	c := NewCamera(core.Viewport{W: 1000, H: 1000})
	_, y := c.Unproject(0, 1)
	want := CameraZ * math.Tan(float64(CameraFov)/2*math.Pi/180)
	if math.Abs(y-want) > 0.5 {
		t.Fatalf("top edge at z=0 should be %f, got %f", want, y)
	}
}

func TestProjectInvertsUnproject(t *testing.T) {
	vp := core.Viewport{W: 1600, H: 900}
	c := NewCamera(vp)
	for _, ndc := range [][2]float64{{0.5, 0.25}, {-0.8, -0.6}, {0, 0.9}} {
		x, y := c.Unproject(ndc[0], ndc[1])
		sx, sy, ok := c.Project(float32(x), float32(y), 0)
		if !ok {
			t.Fatalf("point on z=0 should be visible: %v", ndc)
		}
		wantX := (ndc[0] + 1) / 2 * float64(vp.W)
		wantY := (1 - ndc[1]) / 2 * float64(vp.H)
		if math.Abs(float64(sx)-wantX) > 0.5 || math.Abs(float64(sy)-wantY) > 0.5 {
			t.Fatalf("round trip of %v gave (%f,%f), want (%f,%f)", ndc, sx, sy, wantX, wantY)
		}
	}
}

func TestProjectRejectsBehindCamera(t *testing.T) {
	c := NewCamera(core.Viewport{W: 800, H: 600})
	if _, _, ok := c.Project(0, 0, CameraZ+50); ok {
		t.Fatal("point behind the camera should be rejected")
	}
}

func TestFromMapOverrides(t *testing.T) {
	p := FromMap(map[string]string{
		"seed":                 "7",
		"count":                "321",
		"lensing":              "true",
		"lerp":                 "0.1",
		"disturbance_duration": "-4",
		"max_transition_steps": "bogus",
	})
	if p.Seed != 7 || p.Count != 321 || !p.Lensing {
		t.Fatalf("unexpected params %+v", p)
	}
	if p.Lerp != 0.1 {
		t.Fatalf("lerp %f, want 0.1", p.Lerp)
	}
	if p.DisturbanceDuration != 0.1 {
		t.Fatalf("duration should clamp to its minimum, got %f", p.DisturbanceDuration)
	}
	if p.MaxTransitionSteps != DefaultParams().MaxTransitionSteps {
		t.Fatal("invalid values should keep defaults")
	}
	if FromMap(nil) != DefaultParams() {
		t.Fatal("nil map should yield defaults")
	}
}

func TestWarpWrapsAndExits(t *testing.T) {
	w := NewWarp(100, 3)
	for i := 0; i < w.Count(); i++ {
		if math.Abs(float64(w.Positions[i*3+2])) > WarpExtent {
			t.Fatal("warp should start inside its cube")
		}
	}
	for range 5000 {
		w.Step(frameDT)
	}
	for i := 0; i < w.Count(); i++ {
		if z := w.Positions[i*3+2]; z > WarpWrap || z < -WarpWrap {
			t.Fatalf("particle %d escaped to z=%f", i, z)
		}
	}
	if w.Done() {
		t.Fatal("warp should run until Exit")
	}

	w.Exit()
	frames := 0
	for !w.Done() && frames < 1000 {
		w.Step(frameDT)
		frames++
	}
	if frames < 99 || frames > 101 {
		t.Fatalf("fade out should take ~100 frames, took %d", frames)
	}
	if w.Opacity() != 0 {
		t.Fatalf("opacity %f after exit", w.Opacity())
	}
}
