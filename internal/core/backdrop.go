package core

import "image/color"

// Backdrop returns the inner color of the scene's radial background
// gradient. The gradient fades to black towards the edges.
func Backdrop(scene string) color.RGBA {
	switch scene {
	case SceneHome:
		return color.RGBA{R: 20, G: 40, B: 80, A: 255}
	case SceneProjects:
		return color.RGBA{R: 10, G: 50, B: 20, A: 255}
	case SceneExperience:
		return color.RGBA{R: 60, G: 30, B: 10, A: 255}
	default:
		return color.RGBA{R: 40, G: 10, B: 50, A: 255}
	}
}

// BackdropAt returns the backdrop color at normalised distance d from the
// center (0 center, 1 corner). The tint fades out completely at 0.7.
func BackdropAt(scene string, d float64) color.RGBA {
	inner := Backdrop(scene)
	t := Clamp01(d / 0.7)
	k := 0.3 * (1 - t)
	return color.RGBA{
		R: uint8(float64(inner.R) * k),
		G: uint8(float64(inner.G) * k),
		B: uint8(float64(inner.B) * k),
		A: 255,
	}
}
