// Package field runs the particle background: it generates a formation per
// scene, blends toward it on scene changes and keeps the settled formation
// in orbital motion.
package field

import (
	"log"
	"math"

	"starfield/internal/core"
)

// Phase is the lifecycle state of an Engine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFormationCreated
	PhaseTransitioning
	PhaseSettled
	PhaseTornDown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFormationCreated:
		return "formation-created"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseSettled:
		return "settled"
	case PhaseTornDown:
		return "torn-down"
	default:
		return "unknown"
	}
}

// maxFrameDT bounds a single frame so a stalled host does not fling
// particles across the scene.
const maxFrameDT = 0.25

// FrameResult describes what a call to Frame did.
type FrameResult struct {
	Phase   Phase
	Settled bool
	CutOff  bool
}

// Engine owns the particle set and every piece of per-frame state. It is not
// safe for concurrent use; input handlers and the frame loop must share a
// goroutine.
type Engine struct {
	// OnSettled, if set, is called once per completed transition.
	OnSettled func(scene string)

	params   Params
	device   core.Device
	viewport core.Viewport
	camera   *Camera
	logger   *log.Logger

	attrs       *core.Attrs
	scene       string
	formation   core.Formation
	transition  Transition
	orbiter     *Orbiter
	disturbance Disturbance

	pointerNDC [2]float64
	pointerOn  bool

	phase      Phase
	clock      float64
	frames     int
	generation int64
}

// New returns an idle engine.
func New(dev core.Device, vp core.Viewport, p Params) *Engine {
	return &Engine{
		params:     p,
		device:     dev,
		viewport:   vp,
		camera:     NewCamera(vp),
		transition: NewTransition(p),
	}
}

// SetLogger routes engine diagnostics to l. A nil logger silences them.
func (e *Engine) SetLogger(l *log.Logger) { e.logger = l }

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// Count returns the particle count for the current device.
func (e *Engine) Count() int {
	if e.params.Count > 0 {
		return e.params.Count
	}
	return e.device.ParticleCount()
}

func (e *Engine) generate(scene string) core.Formation {
	e.generation++
	return core.Generate(core.Request{
		Scene:    scene,
		Count:    e.Count(),
		Viewport: e.viewport,
		Seed:     e.params.Seed + e.generation,
		Lensing:  e.params.Lensing,
	})
}

// Start creates the particle set directly in the formation of scene.
func (e *Engine) Start(scene string) {
	if e.phase == PhaseTornDown {
		return
	}
	e.formation = e.generate(scene)
	e.scene = scene
	e.attrs = core.NewAttrs(e.formation.Count())
	e.attrs.CopyFrom(e.formation)
	e.transition.Reset()
	e.orbiter = nil
	e.disturbance = Disturbance{}
	e.phase = PhaseFormationCreated
}

// SetScene requests a transition to scene. The request is dropped, and false
// returned, while another transition is running or when scene is already
// current.
func (e *Engine) SetScene(scene string) bool {
	switch e.phase {
	case PhaseIdle, PhaseTornDown:
		return false
	}
	if e.transition.Active() {
		e.logf("field: scene %q dropped, transition to %q in flight", scene, e.scene)
		return false
	}
	if scene == e.scene {
		return false
	}
	f := e.generate(scene)
	e.transition.Lerp = e.params.Lerp
	e.transition.Tolerance = e.params.Tolerance
	e.transition.MaxSteps = e.params.MaxTransitionSteps
	if !e.transition.Begin(f) {
		return false
	}
	e.formation = f
	e.scene = scene
	e.orbiter = nil
	e.phase = PhaseTransitioning
	return true
}

// Pointer records the cursor in normalised device coordinates (y up).
func (e *Engine) Pointer(ndcX, ndcY float64) {
	e.pointerNDC = [2]float64{clampUnit(ndcX), clampUnit(ndcY)}
	e.pointerOn = true
}

// ClearPointer stops the pointer nudge, e.g. when the cursor leaves.
func (e *Engine) ClearPointer() { e.pointerOn = false }

// Click starts a disturbance under the cursor, replacing any running one.
func (e *Engine) Click(ndcX, ndcY float64) {
	x, y := e.camera.Unproject(clampUnit(ndcX), clampUnit(ndcY))
	e.disturbance.Trigger(x, y, e.params.DisturbanceStrength, e.params.DisturbanceDuration)
}

// Frame advances the engine by dt seconds.
func (e *Engine) Frame(dt float64) FrameResult {
	switch e.phase {
	case PhaseIdle, PhaseTornDown:
		return FrameResult{Phase: e.phase}
	}
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	dt = math.Min(dt, maxFrameDT)
	e.clock += dt
	e.frames++
	e.disturbance.Advance(dt)

	var res FrameResult
	if e.transition.Active() {
		if e.transition.Step(e.attrs, dt) {
			res.Settled = true
			res.CutOff = e.transition.CutOff()
			if res.CutOff {
				e.logf("field: transition to %q cut off after %d steps", e.scene, e.transition.Steps())
			}
			e.phase = PhaseSettled
			e.orbiter = NewOrbiter(e.formation, &e.params)
			if e.OnSettled != nil {
				e.OnSettled(e.scene)
			}
		}
		res.Phase = e.phase
		return res
	}

	if e.orbiter == nil {
		e.orbiter = NewOrbiter(e.formation, &e.params)
	}
	e.phase = PhaseSettled
	e.orbiter.Advance(e.attrs, dt, e.PointerWorld(), &e.disturbance)
	res.Phase = e.phase
	return res
}

// Resize adapts the camera to a new viewport. The particle count is left
// alone; the result reports whether the device class changed so the caller
// can decide to Reinit.
func (e *Engine) Resize(vp core.Viewport) bool {
	e.viewport = vp
	e.camera.Resize(vp)
	next := core.Device{Width: vp.W, Cores: e.device.Cores}
	return next.Class() != e.device.Class()
}

// Reinit tears the particle set down and rebuilds it for a new device,
// keeping the current scene. Before the first Start it only records the
// device, which the next Start sizes the particle set for.
func (e *Engine) Reinit(dev core.Device, vp core.Viewport) {
	if e.phase == PhaseTornDown {
		return
	}
	e.device = dev
	e.viewport = vp
	e.camera.Resize(vp)
	if e.phase == PhaseIdle {
		return
	}
	scene := e.scene
	if scene == "" {
		scene = core.SceneHome
	}
	e.release()
	e.Start(scene)
}

// Close tears the engine down. Further frames are no-ops.
func (e *Engine) Close() {
	e.release()
	e.phase = PhaseTornDown
}

func (e *Engine) release() {
	e.attrs = nil
	e.formation = core.Formation{}
	e.transition.Reset()
	e.orbiter = nil
	e.disturbance = Disturbance{}
}

// PointerWorld returns the pointer projected onto the z=0 plane.
func (e *Engine) PointerWorld() Pointer {
	if !e.pointerOn {
		return Pointer{}
	}
	x, y := e.camera.Unproject(e.pointerNDC[0], e.pointerNDC[1])
	return Pointer{X: x, Y: y, Active: true}
}

// Attrs returns the live particle set, nil before Start or after Close.
func (e *Engine) Attrs() *core.Attrs { return e.attrs }

// Scene returns the current scene id.
func (e *Engine) Scene() string { return e.scene }

// Phase returns the lifecycle state.
func (e *Engine) Phase() Phase { return e.phase }

// Transitioning reports whether a scene transition is running.
func (e *Engine) Transitioning() bool { return e.transition.Active() }

// Formation returns the formation of the current scene.
func (e *Engine) Formation() core.Formation { return e.formation }

// Groups returns the live group state of a settled galaxy scene.
func (e *Engine) Groups() []core.Group {
	if e.orbiter != nil {
		return e.orbiter.Groups()
	}
	return e.formation.Layout.Groups
}

// Disturbance returns the current disturbance record.
func (e *Engine) Disturbance() Disturbance { return e.disturbance }

// Camera returns the engine camera.
func (e *Engine) Camera() *Camera { return e.camera }

// Device returns the device the particle set was sized for.
func (e *Engine) Device() core.Device { return e.device }

// Clock returns the accumulated simulated time in seconds.
func (e *Engine) Clock() float64 { return e.clock }

// Frames returns the number of frames run.
func (e *Engine) Frames() int { return e.frames }

// PointSize returns the rendered particle size for the current viewport.
func (e *Engine) PointSize() float32 { return core.PointSize(e.viewport.W) }

// Params returns a copy of the current tuning.
func (e *Engine) Params() Params { return e.params }

// Parameters returns a snapshot of the engine tuning.
func (e *Engine) Parameters() core.ParameterSnapshot { return e.params.Parameters() }

// ParameterControls lists the HUD-adjustable parameters.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return e.params.ParameterControls()
}

// SetFloatParameter updates a tunable. Transition settings apply to the
// next transition.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	return e.params.SetFloatParameter(key, value)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
