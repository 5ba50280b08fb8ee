package wick

import (
	"slices"
)

// Layer holds a gap-permitting sequence of frames sorted by start. No two
// frames on a layer share a playhead position.
type Layer struct {
	Base

	Name   string
	Locked bool
	Hidden bool

	frames []*Frame
}

// NewLayer creates an empty layer.
func NewLayer(name string) *Layer {
	return &Layer{Base: newBase(KindLayer), Name: name}
}

// Children returns the frames sorted by start.
func (l *Layer) Children() []Entity {
	out := make([]Entity, len(l.frames))
	for i, f := range l.frames {
		out[i] = f
	}
	return out
}

// Frames returns the frames sorted by start. The returned slice MUST NOT be
// mutated by the caller.
func (l *Layer) Frames() []*Frame {
	return l.frames
}

// AddFrame inserts f keeping frames sorted. Returns a *FrameOverlapError if
// f shares any position with an existing frame; the layer is unchanged.
func (l *Layer) AddFrame(f *Frame) error {
	if f == nil {
		panic("wick: cannot add nil frame")
	}
	if f.parent == Entity(l) {
		return nil
	}
	if other := l.overlapping(f.start, f.end, f); other != nil {
		return &FrameOverlapError{
			Layer: l.Name, Start: f.start, End: f.end,
			Existing: other.uuid, ExistingStart: other.start, ExistingEnd: other.end,
		}
	}
	attach(l, f)
	l.frames = append(l.frames, f)
	l.sortFrames()
	if globalDebug {
		debugCheckFrameCount(l)
	}
	return nil
}

// RemoveFrame detaches f and clamps the owning timeline's playhead.
// Panics if f is not on this layer.
func (l *Layer) RemoveFrame(f *Frame) {
	if f.parent != Entity(l) {
		panic("wick: frame's parent is not this layer")
	}
	l.frames = slices.DeleteFunc(l.frames, func(x *Frame) bool { return x == f })
	detach(f)
	if tl := l.ParentTimeline(); tl != nil {
		tl.clampPlayhead()
	}
}

// FrameAt returns the frame whose range contains pos, or nil for a gap.
func (l *Layer) FrameAt(pos int) *Frame {
	for _, f := range l.frames {
		if f.Contains(pos) {
			return f
		}
	}
	return nil
}

// End returns the last position covered by any frame, or 0 when empty.
func (l *Layer) End() int {
	if len(l.frames) == 0 {
		return 0
	}
	return l.frames[len(l.frames)-1].end
}

// Index returns the layer's position in its timeline, or -1 when detached.
func (l *Layer) Index() int {
	if tl := l.ParentTimeline(); tl != nil {
		return slices.Index(tl.layers, l)
	}
	return -1
}

// ParentTimeline returns the owning timeline, or nil.
func (l *Layer) ParentTimeline() *Timeline {
	tl, _ := l.parent.(*Timeline)
	return tl
}

// Remove detaches the layer from its timeline.
func (l *Layer) Remove() {
	removeFromParent(l)
}

// overlapping returns the first frame other than skip whose range shares a
// position with [start, end].
func (l *Layer) overlapping(start, end int, skip *Frame) *Frame {
	for _, f := range l.frames {
		if f != skip && start <= f.end && f.start <= end {
			return f
		}
	}
	return nil
}

func (l *Layer) sortFrames() {
	slices.SortFunc(l.frames, func(a, b *Frame) int { return a.start - b.start })
}
