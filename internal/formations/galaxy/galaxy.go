// Package galaxy builds the orbital formations: one to three spiral groups
// over a static background of dim stars.
package galaxy

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/lucasb-eyer/go-colorful"

	"starfield/internal/core"
)

const (
	// BackgroundFraction of the particles is scattered for depth and never
	// moves.
	BackgroundFraction = 0.15
	// ArmBias is the share of group particles sampled inside an arm band.
	ArmBias = 0.9
	// ArmSigma is the angular deviation of arm particles from the arm
	// centerline, in radians.
	ArmSigma = 0.16
	// ArmBand is the half width used to classify a particle as in-arm.
	ArmBand = 2.5 * ArmSigma

	jitterAmp   = 6.0
	jitterScale = 0.37
	maxHeight   = 120.0
)

// Radius returns the disk radius used for a formation with n groups.
func Radius(groups int) float64 {
	switch groups {
	case 1:
		return 380
	case 2:
		return 260
	default:
		return 200
	}
}

// Recipe returns a recipe producing the given number of groups.
func Recipe(groups int) core.Recipe {
	return func(req core.Request) core.Formation {
		return Build(req, groups)
	}
}

// Build generates a galaxy formation with 1 to 3 groups.
func Build(req core.Request, groups int) core.Formation {
	groups = max(1, min(3, groups))
	n := req.Count
	f := core.NewFormation(req.Scene, n)
	rng := core.NewRNG(req.Seed)
	noise := perlin.NewPerlin(2, 2, 3, req.Seed)
	spread := req.Viewport.Spread()

	f.Layout.Groups = placeGroups(groups, spread, rng)

	background := int(float64(n) * BackgroundFraction)
	for i := 0; i < background; i++ {
		f.Place(i, rng.Centered(1600*spread), rng.Centered(1000), rng.Range(-400, -100))
		dim := 0.25 + 0.35*rng.Float()
		f.Paint(i, dim*0.8, dim*0.85, dim)
		f.Layout.Orbits[i] = core.Orbit{Kind: core.OrbitBackground}
	}

	for j := 0; j < n-background; j++ {
		i := background + j
		gi := j % groups
		g := f.Layout.Groups[gi]
		o := sampleOrbit(rng, g)
		o.Group = gi
		o.JitterX = noise.Noise1D(float64(i)*jitterScale) * jitterAmp
		o.JitterY = noise.Noise1D(float64(i)*jitterScale+101.3) * jitterAmp
		if req.Lensing && o.Radius < g.Zones.Transition {
			l := 1 - o.Radius/g.Zones.Transition
			o.Lensing = l * l
			o.InPhotonSphere = o.Radius < g.Zones.PhotonSphere
		}
		x, y, z := g.Place(o)
		f.Place(i, x, y, z)
		r, gr, b := Shade(g, o)
		f.Paint(i, r, gr, b)
		f.Layout.Orbits[i] = o
	}
	return f
}

func sampleOrbit(rng *core.RNG, g core.Group) core.Orbit {
	// Radii concentrate towards the center.
	d := 0.02 + 0.98*math.Pow(rng.Float(), 1.4)
	o := core.Orbit{
		Kind:   core.OrbitGroup,
		Radius: d * g.Radius,
		Speed:  0.02 + 0.1*(1-d),
	}
	if rng.Float() < ArmBias {
		o.Arm = rng.IntN(g.Arms)
		o.Angle = math.Max(-3*ArmSigma, math.Min(3*ArmSigma, rng.Normal(ArmSigma)))
	} else {
		o.Angle = rng.Angle() - math.Pi
	}
	sigma := 30*(1-d) + 8
	o.Height = math.Max(-maxHeight, math.Min(maxHeight, rng.Normal(sigma)))
	return o
}

// ArmDistance is the angular distance of o from the nearest arm centerline
// of g, ignoring rotation and twist which shift every arm equally.
func ArmDistance(g core.Group, o core.Orbit) float64 {
	a := core.WrapAngle(o.Angle + g.ArmAngle(o.Arm))
	if g.Arms <= 0 {
		return math.Abs(a)
	}
	spacing := 2 * math.Pi / float64(g.Arms)
	return math.Abs(a - spacing*math.Round(a/spacing))
}

func placeGroups(n int, spread float64, rng *core.RNG) []core.Group {
	radius := Radius(n)
	newGroup := func(x, y float64) core.Group {
		return core.Group{
			X:             x,
			Y:             y,
			Radius:        radius,
			Rotation:      rng.Angle(),
			RotationSpeed: 0.06 + 0.04*rng.Float(),
			Arms:          2 + rng.IntN(3),
			Twist:         2.5,
			Tilt:          0.6 + 0.25*rng.Float(),
			Zones:         core.ZonesFor(radius),
		}
	}
	switch n {
	case 1:
		return []core.Group{newGroup(0, 0)}
	case 2:
		dx := 320 * spread
		a := newGroup(-dx, 0)
		b := a
		b.X = dx
		b.Rotation = math.Pi - a.Rotation
		b.RotationSpeed = -a.RotationSpeed
		b.Twist = -a.Twist
		return []core.Group{a, b}
	}

	centers := scatterCenters(spread, radius*MinSeparation, rng)
	out := make([]core.Group, len(centers))
	for i, c := range centers {
		out[i] = newGroup(c[0], c[1])
	}
	return out
}

// MinSeparation is the minimum distance between group centers in units of
// the group radius.
const MinSeparation = 1.6

const placementAttempts = 64

// scatterCenters picks three centers inside the viewing box at least minDist
// apart. When sampling fails it falls back to a fixed triangle.
func scatterCenters(spread, minDist float64, rng *core.RNG) [][2]float64 {
	w, h := 900*spread, 440.0
	var centers [][2]float64
	for attempt := 0; attempt < placementAttempts && len(centers) < 3; attempt++ {
		c := [2]float64{rng.Centered(w), rng.Centered(h)}
		ok := true
		for _, o := range centers {
			if math.Hypot(c[0]-o[0], c[1]-o[1]) < minDist {
				ok = false
				break
			}
		}
		if ok {
			centers = append(centers, c)
		}
	}
	if len(centers) == 3 {
		return centers
	}
	return [][2]float64{{-300 * spread, -120}, {300 * spread, -120}, {0, 180}}
}

// Shade returns the color of o within group g: a banded function of the
// normalised radius, modulated by arm density and lensing.
func Shade(g core.Group, o core.Orbit) (r, gr, b float64) {
	d := 0.0
	if g.Radius > 0 {
		d = o.Radius / g.Radius
	}
	var c colorful.Color
	switch {
	case d < core.CoreFraction:
		c = coreHot.BlendRgb(coreWarm, d/core.CoreFraction)
	case d < core.TransitionFraction:
		t := (d - core.CoreFraction) / (core.TransitionFraction - core.CoreFraction)
		c = coreWarm.BlendRgb(midPale, t)
	case d < core.MidFraction:
		t := (d - core.TransitionFraction) / (core.MidFraction - core.TransitionFraction)
		c = midPale.BlendRgb(midBlue, t)
	default:
		t := math.Min(1, (d-core.MidFraction)/(1-core.MidFraction))
		c = colorful.Hsv(215+45*t, 0.45+0.25*t, 0.9-0.45*t)
	}

	density := 0.75 + 0.25*math.Cos(float64(g.Arms)*(o.Angle+g.ArmAngle(o.Arm)))
	r, gr, b = c.R*density, c.G*density, c.B*density

	if o.Lensing > 0 {
		boost := 1 + 0.5*o.Lensing
		r = r*boost - 0.1*o.Lensing
		gr *= boost
		b = b*boost + 0.3*o.Lensing
	}
	return core.Clamp01(r), core.Clamp01(gr), core.Clamp01(b)
}

var (
	coreHot  = colorful.Color{R: 1, G: 0.97, B: 0.9}
	coreWarm = colorful.Color{R: 1, G: 0.82, B: 0.55}
	midPale  = colorful.Color{R: 0.85, G: 0.88, B: 1}
	midBlue  = colorful.Color{R: 0.55, G: 0.68, B: 1}
)

func init() {
	core.Register(core.SceneAbout, Recipe(1))
	core.Register(core.SceneContact, Recipe(2))
	core.Register(core.DefaultScene, Recipe(3))
}
