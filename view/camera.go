package view

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/wickgo/wick"
)

// recenterDuration is how long the camera takes to settle after the project
// pan or zoom changes, in seconds.
const recenterDuration = 0.25

// panAnim holds the active pan and zoom tweens.
type panAnim struct {
	tweenX, tweenY, tweenZoom *gween.Tween
	doneX, doneY, doneZoom    bool
}

// Camera maps the focused timeline's canvas space to the screen. It follows
// the project's pan and zoom, easing towards new values.
type Camera struct {
	// X and Y are the canvas point shown at the viewport center.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom).
	Zoom float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport wick.Rect

	targetX, targetY, targetZoom float64
	anim                         *panAnim

	viewMatrix    wick.Matrix
	invViewMatrix wick.Matrix
	dirty         bool
}

// NewCamera creates a camera centered on the viewport.
func NewCamera(viewport wick.Rect) *Camera {
	c := &Camera{Zoom: 1, Viewport: viewport, dirty: true}
	c.X, c.Y = viewport.Width/2, viewport.Height/2
	c.targetX, c.targetY, c.targetZoom = c.X, c.Y, 1
	return c
}

// Follow sets the target the camera eases towards from project settings:
// the canvas center offset by -pan, at the given zoom.
func (c *Camera) Follow(p *wick.Project) {
	x := float64(p.Width)/2 - p.Pan.X
	y := float64(p.Height)/2 - p.Pan.Y
	zoom := p.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if x == c.targetX && y == c.targetY && zoom == c.targetZoom {
		return
	}
	c.targetX, c.targetY, c.targetZoom = x, y, zoom
	c.anim = &panAnim{
		tweenX:    gween.New(float32(c.X), float32(x), recenterDuration, ease.OutQuad),
		tweenY:    gween.New(float32(c.Y), float32(y), recenterDuration, ease.OutQuad),
		tweenZoom: gween.New(float32(c.Zoom), float32(zoom), recenterDuration, ease.OutQuad),
	}
}

// Snap jumps to the current target, ending any animation.
func (c *Camera) Snap() {
	c.anim = nil
	c.X, c.Y, c.Zoom = c.targetX, c.targetY, c.targetZoom
	c.dirty = true
}

// Animating reports whether an ease towards the target is in progress.
func (c *Camera) Animating() bool { return c.anim != nil }

// Update advances the pan animation by dt seconds.
func (c *Camera) Update(dt float32) {
	a := c.anim
	if a == nil {
		return
	}
	if !a.doneX {
		v, done := a.tweenX.Update(dt)
		c.X, a.doneX = float64(v), done
	}
	if !a.doneY {
		v, done := a.tweenY.Update(dt)
		c.Y, a.doneY = float64(v), done
	}
	if !a.doneZoom {
		v, done := a.tweenZoom.Update(dt)
		c.Zoom, a.doneZoom = float64(v), done
	}
	if a.doneX && a.doneY && a.doneZoom {
		c.Snap()
	}
	c.dirty = true
}

// ViewMatrix returns the canvas-to-screen matrix.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) ViewMatrix() wick.Matrix {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Zoom
	c.viewMatrix = wick.Matrix{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invViewMatrix = c.viewMatrix.Invert()
	return c.viewMatrix
}

// CanvasToScreen converts canvas coordinates to screen coordinates.
func (c *Camera) CanvasToScreen(x, y float64) (float64, float64) {
	return c.ViewMatrix().Apply(x, y)
}

// ScreenToCanvas converts screen coordinates to canvas coordinates.
func (c *Camera) ScreenToCanvas(sx, sy float64) (float64, float64) {
	c.ViewMatrix()
	return c.invViewMatrix.Apply(sx, sy)
}
