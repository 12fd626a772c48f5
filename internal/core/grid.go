package core

// DensityGrid accumulates particle hits and their colors per cell in
// row-major order. Renderers with coarse output (terminal cells, thumbnails)
// splat into it and then read back a count and mean color per cell.
type DensityGrid struct {
	W, H  int
	hits  []uint16
	color []float32
}

// NewDensityGrid allocates a grid with the given dimensions.
func NewDensityGrid(w, h int) *DensityGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &DensityGrid{W: w, H: h, hits: make([]uint16, w*h), color: make([]float32, w*h*3)}
}

// Index returns the linear slice index for coordinates (x, y).
func (g *DensityGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies on the grid.
func (g *DensityGrid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// Add records one particle of color (r, g, b) at (x, y). Off-grid points are
// ignored.
func (g *DensityGrid) Add(x, y int, r, gr, b float32) {
	if !g.In(x, y) {
		return
	}
	i := g.Index(x, y)
	if g.hits[i] < ^uint16(0) {
		g.hits[i]++
	}
	c := g.color[i*3 : i*3+3]
	c[0] += r
	c[1] += gr
	c[2] += b
}

// Hits returns the number of particles recorded at (x, y).
func (g *DensityGrid) Hits(x, y int) int {
	if !g.In(x, y) {
		return 0
	}
	return int(g.hits[g.Index(x, y)])
}

// Mean returns the average color recorded at (x, y), or black when the cell
// is empty.
func (g *DensityGrid) Mean(x, y int) (r, gr, b float32) {
	if !g.In(x, y) {
		return 0, 0, 0
	}
	i := g.Index(x, y)
	n := float32(g.hits[i])
	if n == 0 {
		return 0, 0, 0
	}
	c := g.color[i*3 : i*3+3]
	return c[0] / n, c[1] / n, c[2] / n
}

// Max returns the highest hit count on the grid.
func (g *DensityGrid) Max() int {
	m := 0
	for _, h := range g.hits {
		if int(h) > m {
			m = int(h)
		}
	}
	return m
}

// Clear zeroes the grid.
func (g *DensityGrid) Clear() {
	clear(g.hits)
	clear(g.color)
}
