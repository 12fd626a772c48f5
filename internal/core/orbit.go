package core

import "math"

// OrbitKind selects how the updater moves a particle once its formation has
// settled.
type OrbitKind uint8

const (
	// OrbitFree particles circle their own home point with a small radius.
	OrbitFree OrbitKind = iota
	// OrbitBackground particles hold their home position.
	OrbitBackground
	// OrbitGroup particles follow their group's spiral.
	OrbitGroup
)

func (k OrbitKind) String() string {
	switch k {
	case OrbitFree:
		return "free"
	case OrbitBackground:
		return "background"
	case OrbitGroup:
		return "group"
	default:
		return "unknown"
	}
}

// MaxDriftRadius bounds the home orbit of free particles.
const MaxDriftRadius = 3.0

// Orbit is the per-particle orbital state. Radius and Arm are fixed at
// generation; Angle advances every settled frame.
type Orbit struct {
	Kind  OrbitKind
	Group int

	Radius float64
	Angle  float64
	Speed  float64
	Arm    int
	Height float64

	Lensing        float64
	InPhotonSphere bool

	JitterX float64
	JitterY float64
}

// DriftOrbit is the default orbit for particles of shape recipes.
func DriftOrbit(i int) Orbit {
	return Orbit{
		Kind:   OrbitFree,
		Radius: 1 + float64(i%3),
		Angle:  WrapAngle(float64(i) * 0.05),
		Speed:  0.3 + float64(i%8)*0.1,
	}
}

// Offset returns the displacement of a free particle from its home point.
func (o Orbit) Offset() (dx, dy float64) {
	r := math.Min(o.Radius, MaxDriftRadius)
	return r * math.Cos(o.Angle), r * math.Sin(o.Angle)
}

// Zones are the radii that partition a group's disk.
type Zones struct {
	Core         float64
	PhotonSphere float64
	Transition   float64
	Mid          float64
}

// Zone bounds as fractions of the group radius.
const (
	CoreFraction         = 0.12
	PhotonSphereFraction = 0.18
	TransitionFraction   = 0.35
	MidFraction          = 0.65
)

// ZonesFor derives the zone radii for a disk of radius r.
func ZonesFor(r float64) Zones {
	return Zones{
		Core:         r * CoreFraction,
		PhotonSphere: r * PhotonSphereFraction,
		Transition:   r * TransitionFraction,
		Mid:          r * MidFraction,
	}
}

// Group is one galaxy of an orbital formation.
type Group struct {
	X, Y          float64
	Radius        float64
	Rotation      float64
	RotationSpeed float64
	Arms          int
	Twist         float64
	Tilt          float64
	Zones         Zones
}

// ArmAngle returns the angular offset of arm a's centerline.
func (g Group) ArmAngle(a int) float64 {
	if g.Arms <= 0 {
		return 0
	}
	return float64(a%g.Arms) * 2 * math.Pi / float64(g.Arms)
}

// Theta returns the polar angle of o around the group center, including the
// group rotation and the spiral twist.
func (g Group) Theta(o Orbit) float64 {
	t := 0.0
	if g.Radius > 0 {
		t = g.Twist * o.Radius / g.Radius
	}
	return g.Rotation + o.Angle + g.ArmAngle(o.Arm) + t
}

// At maps a polar position around the group center to world coordinates and
// adds the particle's static jitter.
func (g Group) At(o Orbit, theta, r float64) (x, y float64) {
	tilt := g.Tilt
	if tilt <= 0 {
		tilt = 1
	}
	x = g.X + r*math.Cos(theta) + o.JitterX
	y = g.Y + r*math.Sin(theta)*tilt + o.JitterY
	return x, y
}

// Place returns the target position of o on the group's spiral.
func (g Group) Place(o Orbit) (x, y, z float64) {
	x, y = g.At(o, g.Theta(o), o.Radius)
	return x, y, o.Height
}

// WrapAngle maps a into [-π, π).
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
