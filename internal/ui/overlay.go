//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"starfield/internal/field"
)

// Overlay draws debugging visuals over the field: galaxy zones, the
// pointer and the click disturbance.
type Overlay struct {
	engine    *field.Engine
	showZones bool
	showInfo  bool
	pixel     *ebiten.Image
}

// NewOverlay constructs an overlay for engine.
func NewOverlay(engine *field.Engine) *Overlay {
	o := &Overlay{engine: engine, showInfo: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: Z for zones, I for the info line.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		o.showZones = !o.showZones
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.showInfo = !o.showInfo
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	cam := o.engine.Camera()
	if o.showZones {
		for _, r := range ZoneRings(o.engine.Groups(), cam) {
			o.drawRing(screen, r, 1)
		}
	}
	if r, ok := DisturbanceRing(o.engine.Disturbance(), cam); ok {
		o.drawRing(screen, r, 2)
	}
	if x, y, ok := PointerMark(o.engine.PointerWorld(), cam); ok {
		o.drawPoint(screen, x, y, 5, color.RGBA{R: 255, G: 255, B: 255, A: 160})
	}
	if o.showInfo {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %s  %d particles  %.0f fps",
			o.engine.Scene(), o.engine.Phase(), o.engine.Count(), ebiten.ActualFPS()))
	}
}

func (o *Overlay) drawRing(screen *ebiten.Image, r Ring, thickness float64) {
	if r.R < 1 {
		return
	}
	segments := int(math.Max(24, math.Min(128, r.R/4)))
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		a0, a1 := float64(i)*step, float64(i+1)*step
		o.drawLine(screen,
			r.X+r.R*math.Cos(a0), r.Y+r.R*math.Sin(a0),
			r.X+r.R*math.Cos(a1), r.Y+r.R*math.Sin(a1),
			thickness, r.Color)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
