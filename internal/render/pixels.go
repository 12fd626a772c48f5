// Package render rasterises the particle field into RGBA pixels.
package render

import (
	"image"
	"math"

	"starfield/internal/core"
	"starfield/internal/field"
)

// Canvas is an RGBA pixel buffer the particles are splatted into with
// additive blending.
type Canvas struct {
	W, H int
	Pix  []byte
}

// NewCanvas allocates a w*h canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the buffer when the dimensions change.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if w == c.W && h == c.H {
		return
	}
	c.W, c.H = w, h
	c.Pix = make([]byte, 4*w*h)
}

// FillBackdrop paints the scene's radial gradient, brightest at the center
// and black towards the corners.
func (c *Canvas) FillBackdrop(scene string) {
	diag := math.Hypot(float64(c.W)/2, float64(c.H)/2)
	cx, cy := float64(c.W)/2, float64(c.H)/2
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / diag
			col := core.BackdropAt(scene, d)
			base := (y*c.W + x) * 4
			c.Pix[base+0] = col.R
			c.Pix[base+1] = col.G
			c.Pix[base+2] = col.B
			c.Pix[base+3] = 255
		}
	}
}

// Splat draws every particle of positions/colors as a square point whose size
// shrinks with depth. colors may be nil for white particles.
func (c *Canvas) Splat(positions, colors []float32, cam *field.Camera, pointSize float32, opacity float64) {
	if opacity <= 0 {
		return
	}
	sx := float64(c.W) / float64(max(cam.Viewport().W, 1))
	sy := float64(c.H) / float64(max(cam.Viewport().H, 1))
	n := len(positions) / 3
	for i := 0; i < n; i++ {
		x, y, z := positions[i*3], positions[i*3+1], positions[i*3+2]
		px, py, ok := cam.Project(x, y, z)
		if !ok {
			continue
		}
		depth := cam.Depth(z)
		if depth <= 0 {
			continue
		}
		size := float64(pointSize) * field.CameraZ / float64(depth)
		r, g, b := float32(1), float32(1), float32(1)
		if colors != nil {
			r, g, b = colors[i*3], colors[i*3+1], colors[i*3+2]
		}
		c.point(float64(px)*sx, float64(py)*sy, size, r, g, b, opacity)
	}
}

// SplatAttrs draws a live particle set.
func (c *Canvas) SplatAttrs(attrs *core.Attrs, cam *field.Camera, pointSize float32) {
	if attrs == nil {
		return
	}
	c.Splat(attrs.Positions, attrs.Colors, cam, pointSize, 1)
}

func (c *Canvas) point(px, py, size float64, r, g, b float32, opacity float64) {
	half := math.Max(size, 1) / 2
	x0, x1 := int(math.Floor(px-half)), int(math.Ceil(px+half))
	y0, y1 := int(math.Floor(py-half)), int(math.Ceil(py+half))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.W), min(y1, c.H)
	k := opacity * 255
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			base := (y*c.W + x) * 4
			c.Pix[base+0] = addSat(c.Pix[base+0], float64(r)*k)
			c.Pix[base+1] = addSat(c.Pix[base+1], float64(g)*k)
			c.Pix[base+2] = addSat(c.Pix[base+2], float64(b)*k)
			c.Pix[base+3] = 255
		}
	}
}

func addSat(v byte, add float64) byte {
	s := float64(v) + add
	if s >= 255 {
		return 255
	}
	if s <= 0 {
		return v
	}
	return byte(s)
}

// Image wraps the buffer as an image.RGBA without copying.
func (c *Canvas) Image() *image.RGBA {
	return &image.RGBA{Pix: c.Pix, Stride: 4 * c.W, Rect: image.Rect(0, 0, c.W, c.H)}
}
