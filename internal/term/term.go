// Package term draws the particle field into a terminal using tcell.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"starfield/internal/core"
	"starfield/internal/field"
)

// Terminal cells are roughly twice as tall as they are wide.
const (
	cellW = 8
	cellH = 16
)

// Ramp orders glyphs from sparse to dense.
const Ramp = ".:-=+*#%@"

var white = colorful.Color{R: 1, G: 1, B: 1}

// Renderer splats projected particles into a density grid sized to the
// screen and paints one glyph per cell.
type Renderer struct {
	screen tcell.Screen
	grid   *core.DensityGrid
	camera *field.Camera
	status string
}

// NewRenderer sizes a renderer to screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize refits the grid and camera to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.grid = core.NewDensityGrid(w, h)
	vp := r.Viewport()
	if r.camera == nil {
		r.camera = field.NewCamera(vp)
	} else {
		r.camera.Resize(vp)
	}
}

// Viewport is the pixel viewport the terminal stands in for.
func (r *Renderer) Viewport() core.Viewport {
	return core.Viewport{W: r.grid.W * cellW, H: r.grid.H * cellH}
}

// Cell maps normalised device coordinates to the cell under them.
func (r *Renderer) Cell(ndcX, ndcY float64) (x, y int) {
	x = int((ndcX + 1) / 2 * float64(r.grid.W))
	y = int((1 - ndcY) / 2 * float64(r.grid.H))
	return x, y
}

// NDC maps a cell to normalised device coordinates at its center.
func (r *Renderer) NDC(x, y int) (float64, float64) {
	nx := (float64(x)+0.5)/float64(r.grid.W)*2 - 1
	ny := 1 - (float64(y)+0.5)/float64(r.grid.H)*2
	return nx, ny
}

// SetStatus sets the text shown on the bottom row.
func (r *Renderer) SetStatus(s string) { r.status = s }

// Draw renders attrs over the scene backdrop. The caller calls Show.
func (r *Renderer) Draw(attrs *core.Attrs, scene string) {
	g := r.grid
	g.Clear()
	if attrs != nil {
		for i := 0; i < attrs.Count(); i++ {
			x, y, z := attrs.Position(i)
			sx, sy, ok := r.camera.Project(x, y, z)
			if !ok {
				continue
			}
			cr, cg, cb := attrs.Color(i)
			g.Add(int(sx/cellW), int(sy/cellH), cr, cg, cb)
		}
	}

	peak := g.Max()
	diag := math.Hypot(0.5, 0.5)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			dx := (float64(x)+0.5)/float64(g.W) - 0.5
			dy := (float64(y)+0.5)/float64(g.H) - 0.5
			bg := core.BackdropAt(scene, math.Hypot(dx, dy)/diag)
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))

			n := g.Hits(x, y)
			if n == 0 {
				r.screen.SetContent(x, y, ' ', nil, style)
				continue
			}
			ratio := float64(n) / float64(peak)
			mr, mg, mb := g.Mean(x, y)
			fg := colorful.Color{R: float64(mr), G: float64(mg), B: float64(mb)}.
				BlendRgb(white, 0.4*ratio).Clamped()
			cr, cg, cb := fg.RGB255()
			style = style.Foreground(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
			r.screen.SetContent(x, y, Glyph(ratio), nil, style)
		}
	}
	r.drawStatus()
}

func (r *Renderer) drawStatus() {
	if r.status == "" {
		return
	}
	y := r.grid.H - 1
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x, ch := range []rune(r.status) {
		if x >= r.grid.W {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// Glyph picks the ramp glyph for a density ratio in (0, 1].
func Glyph(ratio float64) rune {
	ramp := []rune(Ramp)
	i := int(math.Round(core.Clamp01(ratio) * float64(len(ramp)-1)))
	return ramp[i]
}
