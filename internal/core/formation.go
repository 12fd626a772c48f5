package core

import "math"

// Formation is a named target layout for a scene. It is immutable once
// returned by Generate.
type Formation struct {
	Name      string
	Positions []float32
	Colors    []float32
	Layout    Layout
}

// Layout carries the orbital parameters the updater uses once a formation
// has settled.
type Layout struct {
	Groups []Group
	Orbits []Orbit
}

// NewFormation allocates a formation for count particles.
func NewFormation(name string, count int) Formation {
	if count < 0 {
		count = 0
	}
	return Formation{
		Name:      name,
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
		Layout:    Layout{Orbits: make([]Orbit, count)},
	}
}

// Count returns the number of particles in the formation.
func (f Formation) Count() int { return len(f.Positions) / 3 }

// Place writes the position of particle i.
func (f *Formation) Place(i int, x, y, z float64) {
	i3 := i * 3
	f.Positions[i3] = float32(x)
	f.Positions[i3+1] = float32(y)
	f.Positions[i3+2] = float32(z)
}

// Paint writes the color of particle i, clamping each channel to [0,1].
func (f *Formation) Paint(i int, r, g, b float64) {
	i3 := i * 3
	f.Colors[i3] = float32(Clamp01(r))
	f.Colors[i3+1] = float32(Clamp01(g))
	f.Colors[i3+2] = float32(Clamp01(b))
}

// Clone returns a deep copy of the formation.
func (f Formation) Clone() Formation {
	out := Formation{
		Name:      f.Name,
		Positions: append([]float32(nil), f.Positions...),
		Colors:    append([]float32(nil), f.Colors...),
	}
	out.Layout.Groups = append([]Group(nil), f.Layout.Groups...)
	out.Layout.Orbits = append([]Orbit(nil), f.Layout.Orbits...)
	return out
}

func (f *Formation) normalize(count int) {
	f.Positions = fitFloats(f.Positions, count*3)
	f.Colors = fitFloats(f.Colors, count*3)
	if len(f.Layout.Orbits) != count {
		orbits := make([]Orbit, count)
		n := copy(orbits, f.Layout.Orbits)
		for i := n; i < count; i++ {
			orbits[i] = DriftOrbit(i)
		}
		f.Layout.Orbits = orbits
	}
	for i, v := range f.Positions {
		if !finite(float64(v)) {
			f.Positions[i] = 0
		}
	}
	for i, v := range f.Colors {
		f.Colors[i] = float32(Clamp01(float64(v)))
	}
	for i := range f.Layout.Orbits {
		o := &f.Layout.Orbits[i]
		if o.Kind == OrbitGroup && (o.Group < 0 || o.Group >= len(f.Layout.Groups)) {
			o.Kind = OrbitFree
		}
	}
}

func fitFloats(buf []float32, n int) []float32 {
	if len(buf) == n {
		return buf
	}
	out := make([]float32, n)
	copy(out, buf)
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp01 clamps v to [0,1]; NaN maps to 0.
func Clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	return 0
}

// Attrs is the live particle set consumed by renderers once per frame.
type Attrs struct {
	Positions []float32
	Colors    []float32
}

// NewAttrs allocates attribute arrays for count particles.
func NewAttrs(count int) *Attrs {
	if count < 0 {
		count = 0
	}
	return &Attrs{
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
	}
}

// Count returns the number of particles.
func (a *Attrs) Count() int { return len(a.Positions) / 3 }

// CopyFrom overwrites the attributes with the formation's arrays. The
// formation must hold the same number of particles.
func (a *Attrs) CopyFrom(f Formation) {
	copy(a.Positions, f.Positions)
	copy(a.Colors, f.Colors)
}

// Position returns the coordinates of particle i.
func (a *Attrs) Position(i int) (x, y, z float32) {
	i3 := i * 3
	return a.Positions[i3], a.Positions[i3+1], a.Positions[i3+2]
}

// Color returns the color of particle i.
func (a *Attrs) Color(i int) (r, g, b float32) {
	i3 := i * 3
	return a.Colors[i3], a.Colors[i3+1], a.Colors[i3+2]
}
