//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Painter uploads a Canvas into an ebiten image and draws it.
type Painter struct {
	canvas *Canvas
	img    *ebiten.Image
}

// NewPainter allocates a painter for a w*h canvas.
func NewPainter(w, h int) *Painter {
	p := &Painter{canvas: NewCanvas(w, h)}
	p.img = ebiten.NewImage(p.canvas.W, p.canvas.H)
	return p
}

// Canvas returns the CPU buffer drawn by Blit.
func (p *Painter) Canvas() *Canvas { return p.canvas }

// Resize follows the window size.
func (p *Painter) Resize(w, h int) {
	if w == p.canvas.W && h == p.canvas.H {
		return
	}
	p.canvas.Resize(w, h)
	p.img.Deallocate()
	p.img = ebiten.NewImage(p.canvas.W, p.canvas.H)
}

// Blit uploads the canvas and draws it onto dst.
func (p *Painter) Blit(dst *ebiten.Image) {
	p.img.WritePixels(p.canvas.Pix)
	dst.DrawImage(p.img, &ebiten.DrawImageOptions{})
}
