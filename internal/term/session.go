package term

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"starfield/internal/core"
	"starfield/internal/field"
	"starfield/internal/site"
)

// Session drives an engine in a terminal: it routes input, steps the engine
// at a fixed rate and redraws.
type Session struct {
	screen   tcell.Screen
	renderer *Renderer
	engine   *field.Engine
	timer    *core.FixedStep
	cores    int
	buttons  tcell.ButtonMask
}

// NewSession builds an engine sized to screen. cores feeds device class
// detection together with the terminal's pixel viewport.
func NewSession(screen tcell.Screen, params field.Params, cores, tps int) *Session {
	r := NewRenderer(screen)
	vp := r.Viewport()
	e := field.New(core.Device{Width: vp.W, Cores: cores}, vp, params)
	return &Session{
		screen:   screen,
		renderer: r,
		engine:   e,
		timer:    core.NewFixedStep(tps),
		cores:    cores,
	}
}

// Engine exposes the running engine.
func (s *Session) Engine() *field.Engine { return s.engine }

// SetLogger routes engine diagnostics to l.
func (s *Session) SetLogger(l *log.Logger) { s.engine.SetLogger(l) }

// Start shows scene.
func (s *Session) Start(scene string) {
	s.engine.Start(scene)
	s.Draw()
}

// Handle applies one input event. It reports whether the session should
// end.
func (s *Session) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' {
				return true
			}
			if r >= '1' && r <= '9' {
				if scene, ok := site.SceneForKey(int(r - '0')); ok {
					s.engine.SetScene(scene)
				}
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		nx, ny := s.renderer.NDC(x, y)
		s.engine.Pointer(nx, ny)
		// Held buttons repeat on every motion event; click on the press only.
		pressed := ev.Buttons()
		if pressed&tcell.Button1 != 0 && s.buttons&tcell.Button1 == 0 {
			s.engine.Click(nx, ny)
		}
		s.buttons = pressed
	case *tcell.EventResize:
		s.screen.Sync()
		s.renderer.Resize()
		vp := s.renderer.Viewport()
		if s.engine.Resize(vp) {
			s.engine.Reinit(core.Device{Width: vp.W, Cores: s.cores}, vp)
		}
	}
	return false
}

// Tick runs every engine step that is due and redraws.
func (s *Session) Tick() {
	for s.timer.ShouldStep() {
		s.engine.Frame(s.timer.DT())
	}
	s.Draw()
}

// Draw renders the current particles and shows the screen.
func (s *Session) Draw() {
	e := s.engine
	s.renderer.SetStatus(fmt.Sprintf(" %s  %s  %d particles  [1-5] scene  [q] quit ", e.Scene(), e.Phase(), e.Count()))
	s.renderer.Draw(e.Attrs(), e.Scene())
	s.screen.Show()
}

// Run polls input and ticks until ctx is cancelled or the user quits. The
// engine is closed on return.
func (s *Session) Run(ctx context.Context) error {
	defer s.engine.Close()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go s.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(s.timer.Step())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if s.Handle(ev) {
				return nil
			}
		case <-ticker.C:
			s.Tick()
		}
	}
}
