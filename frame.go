package wick

import (
	"fmt"
	"slices"
)

// Script is one event handler attached to a clip or frame.
type Script struct {
	Event  string `json:"event"`
	Source string `json:"source"`
}

// Scripts is an ordered list of event handlers, at most one per event.
type Scripts []Script

// Get returns the source registered for event.
func (s Scripts) Get(event string) (string, bool) {
	for _, sc := range s {
		if sc.Event == event {
			return sc.Source, sc.Source != ""
		}
	}
	return "", false
}

// Set registers source for event, replacing an existing handler.
func (s *Scripts) Set(event, source string) {
	for i := range *s {
		if (*s)[i].Event == event {
			(*s)[i].Source = source
			return
		}
	}
	*s = append(*s, Script{Event: event, Source: source})
}

// Remove drops the handler for event.
func (s *Scripts) Remove(event string) {
	*s = slices.DeleteFunc(*s, func(sc Script) bool { return sc.Event == event })
}

// Frame occupies the contiguous playhead range [Start, End] on a layer and
// holds ordered Path and Clip content, tweens, scripts and an optional sound.
type Frame struct {
	Base

	Identifier string
	Scripts    Scripts
	// Stop holds the playhead on this frame when it is active on the
	// timeline's primary layer.
	Stop bool

	// SoundAssetUUID links a SoundAsset started when the frame is entered
	// during playback. SoundStartMS skips into the sound.
	SoundAssetUUID string
	SoundStartMS   int

	start, end int
	content    []Entity
	tweens     []*Tween

	// entered tracks whether the frame was active on the previous tick.
	entered bool
}

// NewFrame creates a frame spanning [start, end].
// Panics if start < 1 or end < start.
func NewFrame(start, end int) *Frame {
	if err := validRange(start, end); err != nil {
		panic("wick: " + err.Error())
	}
	return &Frame{Base: newBase(KindFrame), start: start, end: end}
}

func validRange(start, end int) error {
	if start < 1 || end < start {
		return fmt.Errorf("%w: [%d,%d]", ErrInvalidRange, start, end)
	}
	return nil
}

// Start returns the first playhead position covered by the frame.
func (f *Frame) Start() int { return f.start }

// End returns the last playhead position covered by the frame.
func (f *Frame) End() int { return f.end }

// Length returns the number of playhead positions covered.
func (f *Frame) Length() int { return f.end - f.start + 1 }

// Contains reports whether pos falls inside [Start, End].
func (f *Frame) Contains(pos int) bool {
	return pos >= f.start && pos <= f.end
}

// SetRange moves or resizes the frame. It fails when the range is invalid or
// would overlap a sibling frame. Tweens anchored past the new length are
// dropped and the owning timeline's playhead is clamped to its new length.
func (f *Frame) SetRange(start, end int) error {
	if err := validRange(start, end); err != nil {
		return err
	}
	layer := f.ParentLayer()
	if layer != nil {
		if other := layer.overlapping(start, end, f); other != nil {
			return &FrameOverlapError{
				Layer: layer.Name, Start: start, End: end,
				Existing: other.uuid, ExistingStart: other.start, ExistingEnd: other.end,
			}
		}
	}
	f.start, f.end = start, end
	for _, tw := range slices.Clone(f.tweens) {
		if tw.Position > f.Length() {
			f.RemoveTween(tw)
		}
	}
	if layer != nil {
		layer.sortFrames()
		if tl := layer.ParentTimeline(); tl != nil {
			tl.clampPlayhead()
		}
	}
	return nil
}

// Children returns content followed by tweens.
func (f *Frame) Children() []Entity {
	out := make([]Entity, 0, len(f.content)+len(f.tweens))
	out = append(out, f.content...)
	for _, tw := range f.tweens {
		out = append(out, tw)
	}
	return out
}

// Content returns the ordered Path and Clip content. The returned slice MUST
// NOT be mutated by the caller.
func (f *Frame) Content() []Entity {
	return f.content
}

// Paths returns the paths in content order.
func (f *Frame) Paths() []*Path {
	return contentOfKind[*Path](f.content, KindPath)
}

// Clips returns the clips in content order.
func (f *Frame) Clips() []*Clip {
	return contentOfKind[*Clip](f.content, KindClip)
}

func contentOfKind[T Entity](content []Entity, kind Kind) []T {
	var out []T
	for _, e := range content {
		if e.Kind() == kind {
			out = append(out, e.(T))
		}
	}
	return out
}

// AddPath appends p to the frame's content.
func (f *Frame) AddPath(p *Path) {
	f.InsertContent(p, len(f.content))
}

// AddClip appends c to the frame's content. Panics for the root clip.
func (f *Frame) AddClip(c *Clip) {
	f.InsertContent(c, len(f.content))
}

// InsertContent inserts a Path or Clip at index. If e already has an owner,
// it is removed from that owner first. Panics on other kinds, the root clip,
// or an index out of range.
func (f *Frame) InsertContent(e Entity, index int) {
	switch v := e.(type) {
	case *Path:
	case *Clip:
		if v.isRoot {
			panic("wick: the root clip cannot be placed in a frame")
		}
	default:
		panic(fmt.Sprintf("wick: frame content must be a Path or Clip, got %s", e.Kind()))
	}
	if e.Parent() == Entity(f) {
		f.removeContent(e)
	}
	if index < 0 || index > len(f.content) {
		panic("wick: content index out of range")
	}
	attach(f, e)
	f.content = slices.Insert(f.content, index, e)
}

// IndexOf returns the content index of e, or -1.
func (f *Frame) IndexOf(e Entity) int {
	return slices.Index(f.content, e)
}

// RemovePath detaches p from the frame.
func (f *Frame) RemovePath(p *Path) { f.removeContent(p) }

// RemoveClip detaches c from the frame.
func (f *Frame) RemoveClip(c *Clip) { f.removeContent(c) }

// removeContent detaches a content entity or tween owned by f.
// Panics if e is not owned by f.
func (f *Frame) removeContent(e Entity) {
	if e.Parent() != Entity(f) {
		panic("wick: entity's parent is not this frame")
	}
	if tw, ok := e.(*Tween); ok {
		f.tweens = slices.DeleteFunc(f.tweens, func(t *Tween) bool { return t == tw })
	} else {
		f.content = slices.DeleteFunc(f.content, func(c Entity) bool { return c == e })
	}
	detach(e)
}

// Tweens returns the tweens sorted by position. The returned slice MUST NOT
// be mutated by the caller.
func (f *Frame) Tweens() []*Tween {
	return f.tweens
}

// AddTween anchors tw in the frame. A tween already at the same position is
// replaced. Fails if the position lies outside the frame.
func (f *Frame) AddTween(tw *Tween) error {
	if tw.Position < 1 || tw.Position > f.Length() {
		return fmt.Errorf("%w: tween position %d outside frame of length %d",
			ErrInvalidRange, tw.Position, f.Length())
	}
	if existing := f.TweenAt(tw.Position); existing != nil && existing != tw {
		f.RemoveTween(existing)
	}
	if tw.Parent() == Entity(f) {
		// Position may have changed since tw was added.
		slices.SortStableFunc(f.tweens, func(a, b *Tween) int { return a.Position - b.Position })
		return nil
	}
	attach(f, tw)
	i, _ := slices.BinarySearchFunc(f.tweens, tw.Position, func(t *Tween, pos int) int {
		return t.Position - pos
	})
	f.tweens = slices.Insert(f.tweens, i, tw)
	return nil
}

// RemoveTween detaches tw from the frame.
func (f *Frame) RemoveTween(tw *Tween) { f.removeContent(tw) }

// TweenAt returns the tween anchored at the frame-relative position, or nil.
func (f *Frame) TweenAt(rel int) *Tween {
	for _, tw := range f.tweens {
		if tw.Position == rel {
			return tw
		}
	}
	return nil
}

// TransformationAt resolves the tweened transformation at the timeline
// position pos, falling back to static when the frame has no tweens.
func (f *Frame) TransformationAt(pos int, static Transformation) Transformation {
	return resolveTweens(f.tweens, pos-f.start+1, static)
}

// applyTweens writes the tweened transformation at pos into every clip of
// the frame. No-op without tweens.
func (f *Frame) applyTweens(pos int) {
	if len(f.tweens) == 0 {
		return
	}
	for _, c := range f.Clips() {
		c.Transformation = f.TransformationAt(pos, c.Transformation)
	}
}

// ParentLayer returns the owning layer, or nil.
func (f *Frame) ParentLayer() *Layer {
	l, _ := f.parent.(*Layer)
	return l
}

// ParentTimeline returns the timeline of the owning layer, or nil.
func (f *Frame) ParentTimeline() *Timeline {
	if l := f.ParentLayer(); l != nil {
		return l.ParentTimeline()
	}
	return nil
}

// ParentClip returns the clip owning this frame's timeline, or nil.
func (f *Frame) ParentClip() *Clip {
	if tl := f.ParentTimeline(); tl != nil {
		return tl.ParentClip()
	}
	return nil
}

// IsActive reports whether the owning timeline's playhead is inside the frame.
func (f *Frame) IsActive() bool {
	tl := f.ParentTimeline()
	return tl != nil && f.Contains(tl.playhead)
}

// Sound returns the linked SoundAsset, or nil.
func (f *Frame) Sound() *Asset {
	if f.SoundAssetUUID == "" || f.project == nil {
		return nil
	}
	a, _ := lookup[*Asset](f.project.cache, f.SoundAssetUUID)
	return a
}

// SetSound links a sound asset to the frame.
func (f *Frame) SetSound(a *Asset) error {
	if a.Kind() != KindSoundAsset {
		return fmt.Errorf("set sound: %w: %s", ErrWrongKind, a.Kind())
	}
	f.SoundAssetUUID = a.UUID()
	return nil
}

// RemoveSound unlinks the frame's sound.
func (f *Frame) RemoveSound() {
	f.SoundAssetUUID = ""
	f.SoundStartMS = 0
}

// Remove detaches the frame from its layer.
func (f *Frame) Remove() {
	removeFromParent(f)
}
