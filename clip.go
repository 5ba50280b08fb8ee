package wick

import (
	"fmt"
	"slices"
	"time"
)

// Clip is a symbol instance that owns one timeline and can be placed as
// content in a frame of another timeline. Exactly one root clip exists per
// project; it has no parent frame.
type Clip struct {
	Base

	Identifier     string
	Transformation Transformation
	Scripts        Scripts

	timeline *Timeline
	isRoot   bool
	// loaded is set once the load script has run; cleared when the clip
	// leaves the screen so it runs again on re-entry.
	loaded bool
}

// NewClip creates a clip whose timeline holds a single layer with one frame
// at [1, 1].
func NewClip(identifier string) *Clip {
	c := newEmptyClip(identifier)
	l := NewLayer("Layer 1")
	c.timeline.AddLayer(l)
	if err := l.AddFrame(NewFrame(1, 1)); err != nil {
		panic("wick: " + err.Error())
	}
	return c
}

func newEmptyClip(identifier string) *Clip {
	c := &Clip{
		Base:           newBase(KindClip),
		Identifier:     identifier,
		Transformation: IdentityTransformation(),
	}
	c.setTimeline(NewTimeline())
	return c
}

func (c *Clip) setTimeline(t *Timeline) {
	c.timeline = t
	attach(c, t)
}

// Children returns the clip's timeline.
func (c *Clip) Children() []Entity {
	return []Entity{c.timeline}
}

// Timeline returns the owned timeline.
func (c *Clip) Timeline() *Timeline { return c.timeline }

// IsRoot reports whether c is the project's root clip.
func (c *Clip) IsRoot() bool { return c.isRoot }

// ParentFrame returns the frame holding this clip, or nil for the root clip
// and detached clips.
func (c *Clip) ParentFrame() *Frame {
	f, _ := c.parent.(*Frame)
	return f
}

// ParentClip returns the clip whose timeline holds this clip, or nil.
func (c *Clip) ParentClip() *Clip {
	if f := c.ParentFrame(); f != nil {
		return f.ParentClip()
	}
	return nil
}

// Matrix returns the local affine matrix of the clip's transformation.
func (c *Clip) Matrix() Matrix {
	return c.Transformation.Matrix()
}

// TransformationAt resolves the clip's transformation at position pos of its
// parent timeline, honoring the tweens of its parent frame.
func (c *Clip) TransformationAt(pos int) Transformation {
	f := c.ParentFrame()
	if f == nil {
		return c.Transformation
	}
	return f.TransformationAt(pos, c.Transformation)
}

// CurrentTransformation resolves the clip's transformation at its parent
// timeline's playhead.
func (c *Clip) CurrentTransformation() Transformation {
	if f := c.ParentFrame(); f != nil {
		if tl := f.ParentTimeline(); tl != nil {
			return c.TransformationAt(tl.playhead)
		}
	}
	return c.Transformation
}

// SetPosition sets the clip's translation.
func (c *Clip) SetPosition(x, y float64) {
	c.Transformation.X, c.Transformation.Y = x, y
}

// SetScale sets the clip's scale factors.
func (c *Clip) SetScale(sx, sy float64) {
	c.Transformation.ScaleX, c.Transformation.ScaleY = sx, sy
}

// SetRotation sets the clip's rotation in degrees.
func (c *Clip) SetRotation(deg float64) {
	c.Transformation.Rotation = deg
}

// SetOpacity sets the clip's opacity, clamped to [0, 1].
func (c *Clip) SetOpacity(a float64) {
	c.Transformation.Opacity = min(max(a, 0), 1)
}

// Clone returns a detached deep copy of the clip and its subtree. Every
// entity of the copy receives a fresh identifier.
func (c *Clip) Clone() (*Clip, error) {
	rec, err := encodeContent(c)
	if err != nil {
		return nil, err
	}
	d := newDecoder(true)
	e, err := d.content(rec)
	if err != nil {
		return nil, err
	}
	return e.(*Clip), nil
}

// BreakApart replaces the clip in its parent frame with copies of the
// content of its timeline's active frames, each with the clip's
// transformation composed in. The copies take the clip's place in content
// order. Returns the inserted entities.
func (c *Clip) BreakApart() ([]Entity, error) {
	if c.isRoot {
		return nil, fmt.Errorf("break apart: %w", ErrRootClip)
	}
	parent := c.ParentFrame()
	if parent == nil {
		return nil, fmt.Errorf("break apart: %w", ErrDetached)
	}
	m := c.Matrix()
	opacity := c.Transformation.Opacity

	var out []Entity
	for _, f := range c.timeline.ActiveFrames() {
		for _, e := range f.content {
			switch v := e.(type) {
			case *Path:
				cp := v.Clone()
				cp.Matrix = m.Multiply(v.Matrix)
				cp.Opacity *= opacity
				out = append(out, cp)
			case *Clip:
				cp, err := v.Clone()
				if err != nil {
					return nil, fmt.Errorf("break apart: %w", err)
				}
				t := m.Multiply(v.Matrix()).Decompose()
				t.Opacity = v.Transformation.Opacity * opacity
				cp.Transformation = t
				out = append(out, cp)
			}
		}
	}

	index := parent.IndexOf(c)
	parent.RemoveClip(c)
	for i, e := range out {
		parent.InsertContent(e, index+i)
	}
	return out, nil
}

// Remove detaches the clip from its parent frame. Panics for the root clip.
func (c *Clip) Remove() {
	if c.isRoot {
		panic("wick: cannot remove the root clip")
	}
	removeFromParent(c)
}

// --- Tick ---

// tick runs one playback step for the clip's subtree. Scripts run first
// (load once, then tick, then input events); a failure halts the subtree and
// is returned. Otherwise nested clips of the active frames are ticked at the
// current playhead, siblings continuing past errors, and the playhead is
// advanced last. The first error encountered is returned.
func (c *Clip) tick(tc *tickContext) *ScriptError {
	tc.stats.clipsTicked++

	if !c.loaded {
		c.loaded = true
		if err := tc.run(c, c.uuid, c.Scripts, ScriptLoad); err != nil {
			return err
		}
	}
	if err := tc.run(c, c.uuid, c.Scripts, ScriptTick); err != nil {
		return err
	}
	if err := c.runInputScripts(tc); err != nil {
		return err
	}
	if err := c.runFrameScripts(tc); err != nil {
		return err
	}

	tl := c.timeline
	var first *ScriptError
	for _, f := range tl.ActiveFrames() {
		f.applyTweens(tl.playhead)
		for _, child := range f.Clips() {
			if child.parent != Entity(f) {
				continue
			}
			if err := child.tick(tc); err != nil && first == nil {
				first = err
			}
		}
	}

	tl.AdvancePlayhead()
	return first
}

// runInputScripts dispatches key events to every clip and mouse events to the
// clip under the pointer.
func (c *Clip) runInputScripts(tc *tickContext) *ScriptError {
	p := tc.p
	for _, k := range p.KeysJustPressed() {
		p.currentKey = k
		if err := tc.run(c, c.uuid, c.Scripts, ScriptKeyPressed); err != nil {
			return err
		}
	}
	for _, k := range p.keysDown {
		p.currentKey = k
		if err := tc.run(c, c.uuid, c.Scripts, ScriptKeyDown); err != nil {
			return err
		}
	}
	for _, k := range p.KeysJustReleased() {
		p.currentKey = k
		if err := tc.run(c, c.uuid, c.Scripts, ScriptKeyReleased); err != nil {
			return err
		}
	}

	if p.mouseTarget != c.uuid {
		return nil
	}
	var events []string
	switch {
	case p.mouseDown && !p.mouseWasDown:
		events = []string{ScriptMouseDown}
	case !p.mouseDown && p.mouseWasDown:
		events = []string{ScriptMouseUp, ScriptMouseClick}
	case !p.mouseDown:
		events = []string{ScriptMouseHover}
	}
	for _, ev := range events {
		if err := tc.run(c, c.uuid, c.Scripts, ev); err != nil {
			return err
		}
	}
	return nil
}

// runFrameScripts tracks frames entering and leaving the playhead. Entered
// frames run their load script and start their sound; exited frames stop
// their sound and unload their clips. Active frames then run their tick
// script. Errors are attributed to the frame.
func (c *Clip) runFrameScripts(tc *tickContext) *ScriptError {
	tl := c.timeline
	for _, l := range slices.Clone(tl.layers) {
		for _, f := range slices.Clone(l.frames) {
			// Earlier load scripts may have moved or removed f.
			if f.parent != Entity(l) || l.parent != Entity(tl) {
				continue
			}
			active := f.Contains(tl.playhead)
			switch {
			case active && !f.entered:
				f.entered = true
				if err := tc.run(c, f.uuid, f.Scripts, ScriptLoad); err != nil {
					return err
				}
				if f.parent == Entity(l) {
					tc.p.startFrameSound(f)
				}
			case !active && f.entered:
				f.entered = false
				tc.p.stopFrameSound(f)
				for _, child := range f.Clips() {
					unload(child)
				}
			}
		}
	}
	for _, f := range tl.ActiveFrames() {
		if f.ParentTimeline() != tl {
			continue
		}
		if err := tc.run(c, f.uuid, f.Scripts, ScriptTick); err != nil {
			return err
		}
	}
	return nil
}

// unload clears the load state of c and every clip nested in it.
func unload(c *Clip) {
	walk(c, func(e Entity) bool {
		switch v := e.(type) {
		case *Clip:
			v.loaded = false
		case *Frame:
			v.entered = false
		}
		return true
	})
}

// tickContext carries per-tick state through the recursive clip tick.
type tickContext struct {
	p     *Project
	stats *tickStats
}

// run executes the handler for event from scripts with scope as the script's
// clip. Missing handlers and a missing runner are no-ops.
func (tc *tickContext) run(scope *Clip, owner string, scripts Scripts, event string) *ScriptError {
	src, ok := scripts.Get(event)
	if !ok || tc.p.runner == nil {
		return nil
	}
	tc.stats.scriptsRun++
	start := time.Now()
	err := tc.p.runner.Execute(src, event, scope)
	tc.stats.scriptTime += time.Since(start)
	if err != nil {
		return asScriptError(err, owner)
	}
	return nil
}
