//go:build ebiten

package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"starfield/internal/core"
	"starfield/internal/field"
	"starfield/internal/render"
	"starfield/internal/site"
	"starfield/internal/ui"
)

var sceneKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5}

// Game adapts the particle engine to the ebiten.Game interface.
type Game struct {
	cfg     *Config
	engine  *field.Engine
	warp    *field.Warp
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay

	viewport core.Viewport
	scene    string
	paused   bool
}

// New constructs a Game from cfg. With the intro enabled the warp runs until
// the first click; otherwise the opening scene is shown directly.
func New(cfg *Config) *Game {
	vp := cfg.Viewport()
	e := field.New(cfg.Device(), vp, cfg.Params())
	e.SetLogger(log.Default())
	e.OnSettled = func(scene string) { log.Printf("field: settled on %q", scene) }

	g := &Game{
		cfg:      cfg,
		engine:   e,
		painter:  render.NewPainter(vp.W, vp.H),
		viewport: vp,
		scene:    cfg.Scene,
	}
	g.hud = ui.NewHUD(e, cfg.HUDWidth)
	g.overlay = ui.NewOverlay(e)
	if cfg.Intro {
		g.warp = field.NewWarp(cfg.Device().IntroCount(), cfg.Seed)
	} else {
		e.Start(g.scene)
	}
	return g
}

func (g *Game) dt() float64 { return 1 / float64(max(g.cfg.TPS, 1)) }

// Update handles per-frame logic and advances the engine.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.engine.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.Toggle()
	}
	g.overlay.Update()
	consumed := g.hud.Update(g.viewport.W)

	clicked := !consumed && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if g.warp != nil {
		return g.updateIntro(clicked)
	}

	for i, k := range sceneKeys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if scene, ok := site.SceneForKey(i + 1); ok && g.engine.SetScene(scene) {
			g.scene = scene
		}
	}

	mx, my := ebiten.CursorPosition()
	if mx >= 0 && my >= 0 && mx < g.viewport.W && my < g.viewport.H {
		g.engine.Pointer(ToNDC(mx, my, g.viewport.W, g.viewport.H))
	} else {
		g.engine.ClearPointer()
	}
	if clicked {
		g.engine.Click(ToNDC(mx, my, g.viewport.W, g.viewport.H))
	}

	if !g.paused {
		g.engine.Frame(g.dt())
	}
	return nil
}

func (g *Game) updateIntro(clicked bool) error {
	if clicked && !g.warp.Exiting() {
		g.warp.Exit()
	}
	g.warp.Step(g.dt())
	if g.warp.Done() {
		g.warp = nil
		g.engine.Start(g.scene)
	}
	return nil
}

// Draw renders the backdrop, the particles and the UI layers.
func (g *Game) Draw(screen *ebiten.Image) {
	canvas := g.painter.Canvas()
	canvas.FillBackdrop(g.scene)
	size := g.engine.PointSize()
	if g.warp != nil {
		canvas.Splat(g.warp.Positions, nil, g.engine.Camera(), size, g.warp.Opacity())
	} else {
		canvas.SplatAttrs(g.engine.Attrs(), g.engine.Camera(), size)
	}
	g.painter.Blit(screen)
	if g.warp == nil {
		g.overlay.Draw(screen)
	}
	g.hud.Draw(screen)
}

// Layout follows the window size. A change of device class rebuilds the
// particle set at the new budget; during the intro the engine keeps the new
// device for the scene it starts when the warp ends.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := core.Viewport{W: max(outsideWidth, 1), H: max(outsideHeight, 1)}
	if vp != g.viewport {
		g.viewport = vp
		g.painter.Resize(vp.W, vp.H)
		if g.engine.Resize(vp) {
			dev := core.Device{Width: vp.W, Cores: g.cfg.Cores}
			log.Printf("field: device class now %s, rebuilding %d particles", dev.Class(), dev.ParticleCount())
			g.engine.Reinit(dev, vp)
		}
	}
	return vp.W, vp.H
}
