package field

import (
	"math"

	"starfield/internal/core"
)

// Pointer is the cursor position projected onto the z=0 plane.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Orbiter owns the per-frame evolution of a settled formation. It keeps
// private copies of the groups and orbits so their angles can advance
// without touching the formation.
type Orbiter struct {
	params *Params
	home   core.Formation
	groups []core.Group
	orbits []core.Orbit
	clock  float64
}

// NewOrbiter prepares an orbiter for formation f.
func NewOrbiter(f core.Formation, p *Params) *Orbiter {
	return &Orbiter{
		params: p,
		home:   f,
		groups: append([]core.Group(nil), f.Layout.Groups...),
		orbits: append([]core.Orbit(nil), f.Layout.Orbits...),
	}
}

// Groups returns the live group state.
func (o *Orbiter) Groups() []core.Group { return o.groups }

// Orbits returns the live per-particle orbital state.
func (o *Orbiter) Orbits() []core.Orbit { return o.orbits }

// Advance moves cur one frame of dt seconds along the orbits, applying the
// pointer nudge, the disturbance push and the lensing pass.
func (o *Orbiter) Advance(cur *core.Attrs, dt float64, ptr Pointer, d *Disturbance) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	o.clock += dt
	p := o.params
	for gi := range o.groups {
		g := &o.groups[gi]
		g.Rotation = core.WrapAngle(g.Rotation + g.RotationSpeed*dt)
	}

	fxy := frameFactor(p.OrbitLerpXY, dt)
	fz := frameFactor(p.OrbitLerpZ, dt)
	fc := frameFactor(p.ColorLerp, dt)

	n := min(cur.Count(), len(o.orbits), o.home.Count())
	for i := 0; i < n; i++ {
		i3 := i * 3
		orb := &o.orbits[i]
		hx := float64(o.home.Positions[i3])
		hy := float64(o.home.Positions[i3+1])
		hz := float64(o.home.Positions[i3+2])

		tx, ty, tz := hx, hy, hz
		switch orb.Kind {
		case core.OrbitFree:
			orb.Angle = core.WrapAngle(orb.Angle + orb.Speed*dt)
			dx, dy := orb.Offset()
			tx, ty = hx+dx, hy+dy
		case core.OrbitGroup:
			orb.Angle = core.WrapAngle(orb.Angle + orb.Speed*dt)
			tx, ty, tz = o.place(i, orb)
		}

		if orb.Kind != core.OrbitBackground {
			if ptr.Active {
				nx, ny := nudge(ptr.X-tx, ptr.Y-ty, p.PointerGain, p.PointerCap)
				tx += nx
				ty += ny
			}
			if d != nil {
				px, py := d.Push(tx, ty, p.DisturbanceSoft)
				tx += px
				ty += py
			}
		}

		pos := cur.Positions[i3 : i3+3]
		pos[0] += float32((tx - float64(pos[0])) * fxy)
		pos[1] += float32((ty - float64(pos[1])) * fxy)
		pos[2] += float32((tz - float64(pos[2])) * fz)

		col := cur.Colors[i3 : i3+3]
		hc := o.home.Colors[i3 : i3+3]
		for k := range col {
			col[k] += (hc[k] - col[k]) * float32(fc)
		}
	}
}

// place computes the spiral target of a group particle including the
// lensing pass.
func (o *Orbiter) place(i int, orb *core.Orbit) (x, y, z float64) {
	g := o.groups[orb.Group]
	if orb.Lensing <= 0 {
		return g.Place(*orb)
	}
	p := o.params
	theta := g.Theta(*orb) + p.LensingDeflection*orb.Lensing
	r := orb.Radius
	if orb.InPhotonSphere {
		// Three ghost images chase each other around the ring.
		r += p.PhotonAmplitude * orb.Lensing * math.Sin(3*theta+p.PhotonFrequency*o.clock+float64(i))
		r = math.Max(0, r)
	}
	x, y = g.At(*orb, theta, r)
	return x, y, orb.Height
}

// nudge returns the pointer displacement for a particle whose offset to the
// pointer is (dx, dy): toward the pointer with magnitude min(cap, gain/dist),
// never past it.
func nudge(dx, dy, gain, limit float64) (float64, float64) {
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 || gain <= 0 {
		return 0, 0
	}
	m := math.Min(math.Min(limit, gain/dist), dist)
	return dx / dist * m, dy / dist * m
}
