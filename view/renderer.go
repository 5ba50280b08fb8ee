// Package view renders and hosts wick projects on Ebitengine.
//
// [Renderer] implements the model's View, Measurer and HitTester
// collaborators by flattening the focused timeline into a list of draw
// commands. [Game] wraps a project in an ebiten.Game with editor hotkeys,
// input forwarding and a frame-driven scheduler; [Run] opens a window for it.
package view

import (
	"bytes"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/wickgo/wick"
)

// onionAlpha is the opacity multiplier of onion-skinned frames.
const onionAlpha = 0.25

// selectionColor outlines selected objects in edit mode.
var selectionColor = color.RGBA{R: 0x00, G: 0x99, B: 0xff, A: 0xff}

// Command is a single draw instruction emitted by Render.
type Command struct {
	// Target is the identifier of the top-level content of the focused
	// timeline the command belongs to. Hit tests report it.
	Target string
	Path   *wick.Path
	// Transform maps the path's local bounds into focused canvas space.
	Transform wick.Matrix
	Alpha     float64
	Onion     bool
}

// Renderer flattens a project into draw commands and draws them. It keeps no
// model state beyond the last snapshot; Render can always rebuild it.
type Renderer struct {
	mode     wick.RenderMode
	project  *wick.Project
	commands []Command
	renders  int

	camera *Camera
	images map[string]*ebiten.Image
	pixel  *ebiten.Image

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewRenderer creates a renderer in edit mode.
func NewRenderer() *Renderer {
	return &Renderer{
		mode:          wick.RenderModeEdit,
		images:        make(map[string]*ebiten.Image),
		ScreenshotDir: "screenshots",
	}
}

// SetRenderMode switches between edit and play rendering. Edit mode draws
// onion skins and selection outlines.
func (r *Renderer) SetRenderMode(mode wick.RenderMode) { r.mode = mode }

// Mode returns the current render mode.
func (r *Renderer) Mode() wick.RenderMode { return r.mode }

// Commands returns the commands emitted by the last Render.
func (r *Renderer) Commands() []Command { return r.commands }

// Renders returns how many times Render has been called.
func (r *Renderer) Renders() int { return r.renders }

// Camera returns the camera, creating it for p's canvas on first use.
func (r *Renderer) Camera() *Camera {
	if r.camera == nil {
		w, h := 1.0, 1.0
		if r.project != nil {
			w, h = float64(r.project.Width), float64(r.project.Height)
		}
		r.camera = NewCamera(wick.Rect{Width: w, Height: h})
	}
	return r.camera
}

// Render rebuilds the command list from p's focused timeline: onion skins
// (edit mode only) then the active frame of every visible layer, bottom
// layer first.
func (r *Renderer) Render(p *wick.Project) {
	r.project = p
	r.renders++
	r.commands = r.commands[:0]

	tl := p.ActiveTimeline()
	if r.mode == wick.RenderModeEdit && p.OnionSkinEnabled {
		for _, f := range tl.OnionSkinFrames(p.OnionSkinSeekBackwards, p.OnionSkinSeekForwards) {
			if f.ParentLayer().Hidden {
				continue
			}
			r.emitFrame(f, wick.IdentityMatrix, onionAlpha, "", true)
		}
	}
	for _, l := range tl.Layers() {
		if l.Hidden {
			continue
		}
		if f := tl.ActiveFrame(l); f != nil {
			r.emitFrame(f, wick.IdentityMatrix, 1, "", false)
		}
	}
}

func (r *Renderer) emitFrame(f *wick.Frame, m wick.Matrix, alpha float64, target string, onion bool) {
	pos := f.ParentTimeline().Playhead()
	if !f.Contains(pos) {
		pos = f.Start()
	}
	for _, e := range f.Content() {
		id := target
		if id == "" {
			id = e.UUID()
		}
		switch v := e.(type) {
		case *wick.Path:
			r.commands = append(r.commands, Command{
				Target:    id,
				Path:      v,
				Transform: m.Multiply(v.Matrix),
				Alpha:     alpha * v.Opacity,
				Onion:     onion,
			})
		case *wick.Clip:
			t := v.TransformationAt(pos)
			cm := m.Multiply(t.Matrix())
			ctl := v.Timeline()
			for _, l := range ctl.Layers() {
				if l.Hidden {
					continue
				}
				if cf := ctl.ActiveFrame(l); cf != nil {
					r.emitFrame(cf, cm, alpha*t.Opacity, id, onion)
				}
			}
		}
	}
}

// Bounds reports the frame-space bounds of a path or clip. Clip bounds are
// the union of the content visible at the clip's playhead. Empty clips and
// other kinds report false.
func (r *Renderer) Bounds(e wick.Entity) (wick.Rect, bool) {
	switch v := e.(type) {
	case *wick.Path:
		return v.FrameBounds(), true
	case *wick.Clip:
		local, ok := clipBounds(v)
		if !ok {
			return wick.Rect{}, false
		}
		return v.Matrix().TransformRect(local), true
	}
	return wick.Rect{}, false
}

// clipBounds returns the union of the bounds of c's visible content in c's
// own space.
func clipBounds(c *wick.Clip) (wick.Rect, bool) {
	var (
		out   wick.Rect
		found bool
	)
	tl := c.Timeline()
	for _, l := range tl.Layers() {
		if l.Hidden {
			continue
		}
		f := tl.ActiveFrame(l)
		if f == nil {
			continue
		}
		for _, e := range f.Content() {
			var b wick.Rect
			switch v := e.(type) {
			case *wick.Path:
				b = v.FrameBounds()
			case *wick.Clip:
				inner, ok := clipBounds(v)
				if !ok {
					continue
				}
				b = v.CurrentTransformation().Matrix().TransformRect(inner)
			default:
				continue
			}
			if !found {
				out, found = b, true
			} else {
				out = out.Union(b)
			}
		}
	}
	return out, found
}

// HitTest returns the top-level content of the focused timeline drawn under
// the canvas point (x, y). Onion skins are ignored. Later commands are on
// top.
func (r *Renderer) HitTest(x, y float64) (string, bool) {
	for i := len(r.commands) - 1; i >= 0; i-- {
		cmd := r.commands[i]
		if cmd.Onion {
			continue
		}
		lx, ly := cmd.Transform.Invert().Apply(x, y)
		if cmd.Path.Bounds.Contains(lx, ly) {
			return cmd.Target, true
		}
	}
	return "", false
}

// Draw paints the last rendered snapshot onto screen through the camera.
func (r *Renderer) Draw(screen *ebiten.Image) {
	p := r.project
	if p == nil {
		return
	}
	if r.pixel == nil {
		r.pixel = ebiten.NewImage(1, 1)
		r.pixel.Fill(color.White)
	}
	screen.Fill(p.BackgroundColor.RGBA())

	view := r.Camera().ViewMatrix()
	for i := range r.commands {
		r.drawCommand(screen, view, &r.commands[i])
	}

	if r.mode == wick.RenderModeEdit {
		r.drawSelection(screen, view)
	}
	r.flushScreenshots(screen)
}

func (r *Renderer) drawCommand(screen *ebiten.Image, view wick.Matrix, cmd *Command) {
	path := cmd.Path
	if path.Type == wick.PathTypeText {
		r.drawText(screen, view, cmd)
		return
	}
	src, w, h := r.pixel, path.Bounds.Width, path.Bounds.Height
	if img := r.assetImage(path.AssetUUID); img != nil {
		src = img
		sz := img.Bounds().Size()
		w, h = path.Bounds.Width/float64(sz.X), path.Bounds.Height/float64(sz.Y)
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(path.Bounds.X, path.Bounds.Y)
	op.GeoM.Concat(geoM(view.Multiply(cmd.Transform)))

	if src == r.pixel {
		c := path.FillColor
		op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	}
	op.ColorScale.ScaleAlpha(float32(cmd.Alpha))
	screen.DrawImage(src, &op)
}

func (r *Renderer) drawSelection(screen *ebiten.Image, view wick.Matrix) {
	for _, e := range r.project.Selection().SelectedObjects() {
		b, ok := r.Bounds(e)
		if !ok {
			continue
		}
		s := view.TransformRect(b)
		vector.StrokeRect(screen, float32(s.X), float32(s.Y), float32(s.Width), float32(s.Height), 1, selectionColor, false)
	}
}

// assetImage returns the decoded image of an image asset, caching it.
func (r *Renderer) assetImage(uuid string) *ebiten.Image {
	if uuid == "" {
		return nil
	}
	if img, ok := r.images[uuid]; ok {
		return img
	}
	a := r.project.GetAsset(uuid)
	if a == nil || len(a.Data) == 0 {
		return nil
	}
	decoded, _, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		wick.Logger().Warn("decode image asset", "asset", a.Name, "err", err)
		r.images[uuid] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(decoded)
	r.images[uuid] = img
	return img
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m wick.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
