package ui

import (
	"image/color"
	"math"

	"starfield/internal/core"
	"starfield/internal/field"
)

// Ring is a circle in screen pixels.
type Ring struct {
	X, Y, R float64
	Color   color.RGBA
}

var zoneColors = [...]color.RGBA{
	{R: 255, G: 240, B: 200, A: 200}, // core
	{R: 255, G: 170, B: 60, A: 200},  // photon sphere
	{R: 120, G: 200, B: 255, A: 160}, // transition
	{R: 90, G: 130, B: 220, A: 140},  // mid
	{R: 80, G: 80, B: 140, A: 120},   // disk edge
}

// disturbanceReach is the world radius of the expanding click ring at the
// end of its life.
const disturbanceReach = 400

// ZoneRings projects each group's zone boundaries onto the screen. Tilt is
// ignored; the rings show radii, not the disk's ellipse.
func ZoneRings(groups []core.Group, cam *field.Camera) []Ring {
	var out []Ring
	for _, g := range groups {
		cx, cy, ok := cam.Project(float32(g.X), float32(g.Y), 0)
		if !ok {
			continue
		}
		radii := [...]float64{g.Zones.Core, g.Zones.PhotonSphere, g.Zones.Transition, g.Zones.Mid, g.Radius}
		for i, r := range radii {
			ex, ey, ok := cam.Project(float32(g.X+r), float32(g.Y), 0)
			if !ok || r <= 0 {
				continue
			}
			out = append(out, Ring{
				X: float64(cx), Y: float64(cy),
				R:     math.Hypot(float64(ex-cx), float64(ey-cy)),
				Color: zoneColors[i],
			})
		}
	}
	return out
}

// DisturbanceRing returns the expanding ring of an active disturbance, faded
// by its decay.
func DisturbanceRing(d field.Disturbance, cam *field.Camera) (Ring, bool) {
	if !d.Active || d.Duration <= 0 {
		return Ring{}, false
	}
	cx, cy, ok := cam.Project(float32(d.OriginX), float32(d.OriginY), 0)
	if !ok {
		return Ring{}, false
	}
	reach := disturbanceReach * core.Clamp01(d.Elapsed/d.Duration)
	ex, ey, ok := cam.Project(float32(d.OriginX+reach), float32(d.OriginY), 0)
	if !ok {
		return Ring{}, false
	}
	alpha := uint8(255 * core.Clamp01(d.Decay()))
	return Ring{
		X: float64(cx), Y: float64(cy),
		R:     math.Hypot(float64(ex-cx), float64(ey-cy)),
		Color: color.RGBA{R: 255, G: 255, B: 255, A: alpha},
	}, true
}

// PointerMark returns the screen position of the world pointer.
func PointerMark(p field.Pointer, cam *field.Camera) (x, y float64, ok bool) {
	if !p.Active {
		return 0, 0, false
	}
	sx, sy, ok := cam.Project(float32(p.X), float32(p.Y), 0)
	return float64(sx), float64(sy), ok
}
