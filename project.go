package wick

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"
)

// Default project settings.
const (
	DefaultProjectName = "My Project"
	DefaultWidth       = 720
	DefaultHeight      = 405
	DefaultFramerate   = 12
)

// Project is the root aggregate. It owns the root clip, the asset library,
// the selection, the history, the clipboard and the object cache, holds the
// input state and drives playback. A project is not safe for concurrent use:
// editing calls and ticks must come from one goroutine.
type Project struct {
	Base

	Name            string
	Width           int
	Height          int
	BackgroundColor Color
	Pan             Vec2
	Zoom            float64

	OnionSkinEnabled       bool
	OnionSkinSeekBackwards int
	OnionSkinSeekForwards  int

	framerate int
	root      *Clip
	assets    []*Asset
	focus     string
	holdFocus bool

	cache     *ObjectCache
	selection *Selection
	history   *History
	clipboard *Clipboard

	view      View
	runner    ScriptRunner
	scheduler Scheduler
	audio     AudioPlayer
	sink      EventSink

	renderMode RenderMode

	// Input state.
	keysDown     []string
	keysLastDown []string
	currentKey   string
	mousePos     Vec2
	mouseDown    bool
	mouseWasDown bool
	mouseTarget  string
	injectQueue  []syntheticEvent
	testRunner   *TestRunner

	// Playback state.
	playing    bool
	cancelTick func()
	playOpts   PlayOptions

	debug bool
	stats tickStats
}

// NewProject creates a project with default settings and an empty root clip
// in focus. The initial state is pushed onto the history.
func NewProject() *Project {
	p := newBareProject()
	root := NewClip("")
	p.setRoot(root)
	p.focus = root.uuid
	if err := p.history.PushState(); err != nil {
		panic("wick: " + err.Error())
	}
	return p
}

func newBareProject() *Project {
	p := &Project{
		Base:                   newBase(KindProject),
		Name:                   DefaultProjectName,
		Width:                  DefaultWidth,
		Height:                 DefaultHeight,
		BackgroundColor:        ColorWhite,
		Zoom:                   1,
		OnionSkinSeekBackwards: 1,
		OnionSkinSeekForwards:  1,
		framerate:              DefaultFramerate,
		cache:                  newObjectCache(),
	}
	p.project = p
	p.cache.Add(p)
	p.selection = newSelection(p)
	p.history = newHistory(p)
	p.clipboard = newClipboard(p)
	return p
}

func (p *Project) setRoot(root *Clip) {
	root.isRoot = true
	p.root = root
	attach(p, root)
}

// Children returns the root clip followed by the assets.
func (p *Project) Children() []Entity {
	out := make([]Entity, 0, 1+len(p.assets))
	if p.root != nil {
		out = append(out, p.root)
	}
	for _, a := range p.assets {
		out = append(out, a)
	}
	return out
}

// Framerate returns the playback rate in frames per second.
func (p *Project) Framerate() int { return p.framerate }

// SetFramerate sets the playback rate. Fails unless fps > 0.
func (p *Project) SetFramerate(fps int) error {
	if fps <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFramerate, fps)
	}
	p.framerate = fps
	return nil
}

// Root returns the root clip.
func (p *Project) Root() *Clip { return p.root }

// Cache returns the project's object cache.
func (p *Project) Cache() *ObjectCache { return p.cache }

// Selection returns the project's selection.
func (p *Project) Selection() *Selection { return p.selection }

// History returns the project's undo history.
func (p *Project) History() *History { return p.history }

// Clipboard returns the project's clipboard.
func (p *Project) Clipboard() *Clipboard { return p.clipboard }

// --- Collaborators ---

// SetView sets the render collaborator. nil disables rendering.
func (p *Project) SetView(v View) { p.view = v }

// View returns the render collaborator, or nil.
func (p *Project) View() View { return p.view }

// SetScriptRunner sets the script collaborator. nil disables scripts.
func (p *Project) SetScriptRunner(r ScriptRunner) { p.runner = r }

// SetScheduler sets the periodic callback provider used by Play.
func (p *Project) SetScheduler(s Scheduler) { p.scheduler = s }

// SetAudioPlayer sets the sound collaborator. nil mutes the project.
func (p *Project) SetAudioPlayer(a AudioPlayer) { p.audio = a }

// SetEventSink sets the receiver of playback events.
func (p *Project) SetEventSink(s EventSink) { p.sink = s }

// SetDebugMode enables per-tick timing logs and structural checks.
func (p *Project) SetDebugMode(enabled bool) {
	p.debug = enabled
	globalDebug = enabled
}

// RenderMode returns the current render mode.
func (p *Project) RenderMode() RenderMode { return p.renderMode }

func (p *Project) setRenderMode(m RenderMode) {
	p.renderMode = m
	if p.view != nil {
		p.view.SetRenderMode(m)
	}
}

// Render asks the view to redraw the project.
func (p *Project) Render() {
	if p.view != nil {
		p.view.Render(p)
	}
}

func (p *Project) emit(t PlaybackEventType, err *ScriptError) {
	if p.sink == nil {
		return
	}
	ev := PlaybackEvent{Type: t, ProjectUUID: p.uuid, Err: err}
	if c, ok := lookup[*Clip](p.cache, p.focus); ok {
		ev.Playhead = c.timeline.playhead
	}
	p.sink.EmitEvent(ev)
}

// --- Focus ---

// Focus returns the clip being edited and played. Panics if the focus
// reference does not resolve to a live clip, which indicates a corrupted
// model.
func (p *Project) Focus() *Clip {
	c, ok := lookup[*Clip](p.cache, p.focus)
	if !ok {
		panic(fmt.Sprintf("wick: focus %q does not resolve to a live clip", p.focus))
	}
	return c
}

// SetFocus makes c the clip being edited and played. Nested clips of c are
// rewound to position 1. When the focus changes, pan and zoom are reset and
// the selection is cleared.
func (p *Project) SetFocus(c *Clip) error {
	if c == nil || c.project != p {
		return fmt.Errorf("set focus: %w", ErrNotFound)
	}
	changed := p.focus != c.uuid
	p.focus = c.uuid
	for sub := range c.timeline.Clips(false) {
		sub.timeline.playhead = 1
	}
	if changed {
		p.Recenter()
		p.selection.Clear()
	}
	return nil
}

// repairFocus moves focus to the root clip when the focused clip is no
// longer part of the project.
func (p *Project) repairFocus() {
	if _, ok := lookup[*Clip](p.cache, p.focus); ok {
		return
	}
	if err := p.SetFocus(p.root); err != nil {
		panic("wick: root clip is not part of its project")
	}
}

// FocusTimelineOfSelectedClip focuses the selected clip. Returns false when
// the selection is not exactly one clip.
func (p *Project) FocusTimelineOfSelectedClip() bool {
	c, ok := p.selection.SelectedObject().(*Clip)
	if !ok {
		return false
	}
	return p.SetFocus(c) == nil
}

// FocusTimelineOfParentClip focuses the clip holding the focused clip.
// Returns false when the root clip is focused.
func (p *Project) FocusTimelineOfParentClip() bool {
	parent := p.Focus().ParentClip()
	if parent == nil {
		return false
	}
	return p.SetFocus(parent) == nil
}

// Recenter resets pan and zoom.
func (p *Project) Recenter() {
	p.Pan = Vec2{}
	p.Zoom = 1
}

// ActiveTimeline returns the focused clip's timeline.
func (p *Project) ActiveTimeline() *Timeline {
	return p.Focus().timeline
}

// ActiveLayer returns the active layer of the focused timeline, or nil.
func (p *Project) ActiveLayer() *Layer {
	return p.ActiveTimeline().ActiveLayer()
}

// ActiveFrame returns the frame under the playhead on the active layer, or
// nil.
func (p *Project) ActiveFrame() *Frame {
	l := p.ActiveLayer()
	if l == nil {
		return nil
	}
	return p.ActiveTimeline().ActiveFrame(l)
}

// ActiveFrames returns the frames under the focused playhead on every layer.
func (p *Project) ActiveFrames() []*Frame {
	return p.ActiveTimeline().ActiveFrames()
}

// Frames yields every frame reachable from the root clip.
func (p *Project) Frames() iter.Seq[*Frame] {
	return p.root.timeline.Frames(true)
}

// --- Editing ---

// AddObject places e at the natural spot for its kind: paths, clips and
// tweens in the active frame, frames on the active layer, layers on the
// active timeline and assets in the library.
func (p *Project) AddObject(e Entity) error {
	switch v := e.(type) {
	case *Path, *Clip, *Tween:
		f := p.ActiveFrame()
		if f == nil {
			return fmt.Errorf("add %s: %w", e.Kind(), ErrNoActiveFrame)
		}
		switch v := v.(type) {
		case *Path:
			f.AddPath(v)
		case *Clip:
			f.AddClip(v)
		case *Tween:
			return f.AddTween(v)
		}
	case *Frame:
		l := p.ActiveLayer()
		if l == nil {
			return fmt.Errorf("add frame: %w", ErrNotFound)
		}
		return l.AddFrame(v)
	case *Layer:
		p.ActiveTimeline().AddLayer(v)
	case *Asset:
		p.AddAsset(v)
	default:
		return fmt.Errorf("add %s: %w", e.Kind(), ErrWrongKind)
	}
	return nil
}

// DeleteSelectedObjects removes every selected entity from its owner and
// clears the selection.
func (p *Project) DeleteSelectedObjects() {
	objs := p.selection.SelectedObjects()
	p.selection.Clear()
	for _, e := range objs {
		if e.Project() != p || e.Parent() == nil {
			continue
		}
		switch v := e.(type) {
		case *Clip:
			if v.isRoot {
				continue
			}
		case *Timeline, *Project:
			continue
		}
		removeFromParent(e)
	}
}

// SelectAll selects the paths and clips of the focused timeline's active
// frames, skipping locked and hidden layers.
func (p *Project) SelectAll() {
	p.selection.Clear()
	tl := p.ActiveTimeline()
	for _, l := range tl.layers {
		if l.Locked || l.Hidden {
			continue
		}
		f := tl.ActiveFrame(l)
		if f == nil {
			continue
		}
		for _, e := range f.content {
			p.selection.Select(e)
		}
	}
}

// BreakApartSelection breaks apart every selected clip and selects the
// resulting content.
func (p *Project) BreakApartSelection() error {
	clips := p.selection.SelectedObjects(KindClip)
	p.selection.Clear()
	var errs []error
	for _, e := range clips {
		out, err := e.(*Clip).BreakApart()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, o := range out {
			p.selection.Select(o)
		}
	}
	return errors.Join(errs...)
}

// CreateClipFromSelection moves the selected paths and clips of the active
// frame into a new clip centered on their bounds, places the clip in the
// active frame and selects it. m measures the selection; nil centers the clip
// at the origin.
func (p *Project) CreateClipFromSelection(identifier string, m Measurer) (*Clip, error) {
	f := p.ActiveFrame()
	if f == nil {
		return nil, fmt.Errorf("create clip: %w", ErrNoActiveFrame)
	}
	objs := p.selection.SelectedObjects(KindPath, KindClip)
	var center Vec2
	if m != nil {
		center = p.selection.Box(m).Center()
	}
	c := NewClip(identifier)
	c.SetPosition(center.X, center.Y)
	inner := c.timeline.layers[0].frames[0]
	offset := Transformation{X: -center.X, Y: -center.Y, ScaleX: 1, ScaleY: 1, Opacity: 1}.Matrix()
	for _, e := range objs {
		switch v := e.(type) {
		case *Path:
			v.Matrix = offset.Multiply(v.Matrix)
			inner.AddPath(v)
		case *Clip:
			v.Transformation.X -= center.X
			v.Transformation.Y -= center.Y
			inner.AddClip(v)
		}
	}
	f.AddClip(c)
	p.selection.Clear()
	p.selection.Select(c)
	return c, nil
}

// --- Assets ---

// Assets returns the library assets, filtered to the given kinds when any
// are passed.
func (p *Project) Assets(kinds ...Kind) []*Asset {
	if len(kinds) == 0 {
		return slices.Clone(p.assets)
	}
	var out []*Asset
	for _, a := range p.assets {
		if slices.Contains(kinds, a.kind) {
			out = append(out, a)
		}
	}
	return out
}

// AddAsset adds a to the library.
func (p *Project) AddAsset(a *Asset) {
	if a.parent == Entity(p) {
		return
	}
	attach(p, a)
	p.assets = append(p.assets, a)
}

// RemoveAsset removes a from the library and releases every instance of it:
// image paths showing it are removed and frames playing it lose their sound.
func (p *Project) RemoveAsset(a *Asset) {
	if a.parent != Entity(p) {
		panic("wick: asset's parent is not this project")
	}
	var paths []*Path
	for f := range p.Frames() {
		for _, path := range f.Paths() {
			if path.AssetUUID == a.uuid {
				paths = append(paths, path)
			}
		}
		if f.SoundAssetUUID == a.uuid {
			p.stopFrameSound(f)
			f.RemoveSound()
		}
	}
	for _, path := range paths {
		path.Remove()
	}
	p.assets = slices.DeleteFunc(p.assets, func(x *Asset) bool { return x == a })
	detach(a)
}

// GetAsset returns the library asset with the given identifier, or nil.
func (p *Project) GetAsset(uuid string) *Asset {
	a, _ := lookup[*Asset](p.cache, uuid)
	if a != nil && a.parent != Entity(p) {
		return nil
	}
	return a
}

// AssetByName returns the first library asset named name, or nil.
func (p *Project) AssetByName(name string) *Asset {
	for _, a := range p.assets {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// ImportFile decodes data into an asset and adds it to the library.
// Unsupported types log a warning and return nil without an error.
func (p *Project) ImportFile(name, mime string, data []byte) (*Asset, error) {
	a, err := DecodeAsset(name, mime, data)
	if errors.Is(err, ErrUnsupportedAsset) {
		logger.Warn("import skipped: unsupported file type", "name", name, "mime", mime)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", name, err)
	}
	p.AddAsset(a)
	return a, nil
}

// CreateImagePathFromAsset adds an image path showing a to the active frame
// with its top-left corner at (x, y).
func (p *Project) CreateImagePathFromAsset(a *Asset, x, y float64) (*Path, error) {
	if a.kind != KindImageAsset {
		return nil, fmt.Errorf("create image path: %w: %s", ErrWrongKind, a.kind)
	}
	f := p.ActiveFrame()
	if f == nil {
		return nil, fmt.Errorf("create image path: %w", ErrNoActiveFrame)
	}
	path := NewImagePath(a)
	path.Matrix[4], path.Matrix[5] = x, y
	f.AddPath(path)
	return path, nil
}

// --- Sound ---

// PlaySound plays the library sound named name.
func (p *Project) PlaySound(name string) error {
	a := p.AssetByName(name)
	if a == nil {
		logger.Warn("play sound: no asset", "name", name)
		return fmt.Errorf("play sound %q: %w", name, ErrNotFound)
	}
	if a.kind != KindSoundAsset {
		logger.Warn("play sound: asset is not a sound", "name", name)
		return fmt.Errorf("play sound %q: %w", name, ErrWrongKind)
	}
	if p.audio == nil {
		return nil
	}
	return p.audio.Play("", a, 0)
}

// StopAllSounds stops frame sounds and sounds started with PlaySound.
func (p *Project) StopAllSounds() {
	if p.audio != nil {
		p.audio.StopAll()
	}
}

func (p *Project) startFrameSound(f *Frame) {
	a := f.Sound()
	if a == nil || p.audio == nil {
		return
	}
	offset := time.Duration(f.SoundStartMS) * time.Millisecond
	if err := p.audio.Play(f.uuid, a, offset); err != nil {
		logger.Warn("frame sound failed", "frame", f.uuid, "asset", a.Name, "err", err)
	}
}

func (p *Project) stopFrameSound(f *Frame) {
	if p.audio != nil && f.SoundAssetUUID != "" {
		p.audio.Stop(f.uuid)
	}
}

// SoundCue describes one frame sound of the root timeline for audio export.
type SoundCue struct {
	AssetUUID string
	FrameUUID string
	// Start is the time the frame begins, Offset the position inside the
	// sound where playback starts and Duration how long the frame lasts.
	Start    time.Duration
	Offset   time.Duration
	Duration time.Duration
}

// AudioSequence lists the sounds attached to frames of the root timeline.
func (p *Project) AudioSequence() []SoundCue {
	perFrame := time.Second / time.Duration(p.framerate)
	var out []SoundCue
	for f := range p.root.timeline.Frames(false) {
		if f.Sound() == nil {
			continue
		}
		out = append(out, SoundCue{
			AssetUUID: f.SoundAssetUUID,
			FrameUUID: f.uuid,
			Start:     time.Duration(f.start-1) * perFrame,
			Offset:    time.Duration(f.SoundStartMS) * time.Millisecond,
			Duration:  time.Duration(f.Length()) * perFrame,
		})
	}
	return out
}

// RenderSequence renders every position of the root timeline in order,
// calling fn after each render. Focus moves to the root clip and the view is
// recentered; onion skinning is disabled for the duration. It stops at the
// first error from fn.
func (p *Project) RenderSequence(fn func(pos int) error) error {
	if err := p.SetFocus(p.root); err != nil {
		return err
	}
	onion := p.OnionSkinEnabled
	p.OnionSkinEnabled = false
	defer func() { p.OnionSkinEnabled = onion }()
	p.Recenter()

	tl := p.root.timeline
	for pos := 1; pos <= tl.Length(); pos++ {
		tl.playhead = pos
		p.Render()
		if err := fn(pos); err != nil {
			return fmt.Errorf("render sequence at %d: %w", pos, err)
		}
	}
	return nil
}

// --- History ---

// Undo clears the selection and restores the previous history state.
// Returns false at the bottom of the history.
func (p *Project) Undo() bool {
	p.selection.Clear()
	return p.history.PopState()
}

// Redo clears the selection and re-applies the last undone state. Returns
// false when nothing was undone.
func (p *Project) Redo() bool {
	p.selection.Clear()
	return p.history.RecoverState()
}
