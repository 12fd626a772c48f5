package field

import (
	"github.com/go-gl/mathgl/mgl32"

	"starfield/internal/core"
)

// Camera defaults mirror the perspective used by every renderer.
const (
	CameraFov  = 75
	CameraZ    = 300
	CameraNear = 0.1
	CameraFar  = 3000
)

// Camera projects world coordinates onto the viewport and maps pointer
// positions back onto the z=0 plane.
type Camera struct {
	viewport core.Viewport
	proj     mgl32.Mat4
	view     mgl32.Mat4
	mvp      mgl32.Mat4
}

// NewCamera builds a camera looking down -z from CameraZ.
func NewCamera(vp core.Viewport) *Camera {
	c := &Camera{
		view: mgl32.LookAtV(mgl32.Vec3{0, 0, CameraZ}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}),
	}
	c.Resize(vp)
	return c
}

// Resize updates the aspect ratio. It never touches particle state.
func (c *Camera) Resize(vp core.Viewport) {
	c.viewport = vp
	c.proj = mgl32.Perspective(mgl32.DegToRad(CameraFov), vp.Aspect(), CameraNear, CameraFar)
	c.mvp = c.proj.Mul4(c.view)
}

// Viewport returns the current viewport.
func (c *Camera) Viewport() core.Viewport { return c.viewport }

// Project maps a world position to screen pixels with y pointing down. ok
// is false for points behind the camera or outside the clip volume.
func (c *Camera) Project(x, y, z float32) (sx, sy float32, ok bool) {
	clip := c.mvp.Mul4x1(mgl32.Vec4{x, y, z, 1})
	w := clip.W()
	if w <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, false
	}
	sx = (ndc.X() + 1) / 2 * float32(c.viewport.W)
	sy = (1 - ndc.Y()) / 2 * float32(c.viewport.H)
	return sx, sy, true
}

// Depth returns the distance of z from the camera plane, used to scale
// point sizes.
func (c *Camera) Depth(z float32) float32 {
	return CameraZ - z
}

// Unproject maps normalised device coordinates in [-1,1] (y up) to the
// world point on the z=0 plane under the cursor.
func (c *Camera) Unproject(ndcX, ndcY float64) (x, y float64) {
	w, h := c.viewport.W, c.viewport.H
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	winX := float32((ndcX + 1) / 2 * float64(w))
	winY := float32((ndcY + 1) / 2 * float64(h))
	near, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 0}, c.view, c.proj, 0, 0, w, h)
	if err != nil {
		return 0, 0
	}
	far, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 1}, c.view, c.proj, 0, 0, w, h)
	if err != nil {
		return 0, 0
	}
	dir := far.Sub(near)
	if dir.Z() == 0 {
		return float64(near.X()), float64(near.Y())
	}
	t := -near.Z() / dir.Z()
	p := near.Add(dir.Mul(t))
	return float64(p.X()), float64(p.Y())
}
