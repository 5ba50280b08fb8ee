package wick

import (
	"fmt"
	"iter"
	"slices"
)

// Timeline owns ordered layers (first is drawn at the bottom) and a single
// 1-indexed playhead shared by all of them. The playhead always lies in
// [1, Length()].
type Timeline struct {
	Base

	layers      []*Layer
	playhead    int
	activeLayer int
	playing     bool
	// jumped holds the playhead on the next advance after a Goto call so the
	// target frame is shown for one tick.
	jumped bool
}

// NewTimeline creates an empty, playing timeline with the playhead at 1.
func NewTimeline() *Timeline {
	return &Timeline{Base: newBase(KindTimeline), playhead: 1, playing: true}
}

// Children returns the layers bottom to top.
func (t *Timeline) Children() []Entity {
	out := make([]Entity, len(t.layers))
	for i, l := range t.layers {
		out[i] = l
	}
	return out
}

// Layers returns the layers bottom to top. The returned slice MUST NOT be
// mutated by the caller.
func (t *Timeline) Layers() []*Layer {
	return t.layers
}

// AddLayer appends l on top of the existing layers.
func (t *Timeline) AddLayer(l *Layer) {
	t.AddLayerAt(l, len(t.layers))
}

// AddLayerAt inserts l at index. Panics if index is out of range.
func (t *Timeline) AddLayerAt(l *Layer, index int) {
	if l == nil {
		panic("wick: cannot add nil layer")
	}
	if l.parent == Entity(t) {
		t.RemoveLayer(l)
	}
	if index < 0 || index > len(t.layers) {
		panic("wick: layer index out of range")
	}
	attach(t, l)
	t.layers = slices.Insert(t.layers, index, l)
	t.clampPlayhead()
}

// RemoveLayer detaches l, keeps the active layer index valid and clamps the
// playhead. Panics if l is not in this timeline.
func (t *Timeline) RemoveLayer(l *Layer) {
	if l.parent != Entity(t) {
		panic("wick: layer's parent is not this timeline")
	}
	t.layers = slices.DeleteFunc(t.layers, func(x *Layer) bool { return x == l })
	detach(l)
	if t.activeLayer >= len(t.layers) {
		t.activeLayer = max(0, len(t.layers)-1)
	}
	t.clampPlayhead()
}

// ActiveLayerIndex returns the index of the layer receiving new content.
func (t *Timeline) ActiveLayerIndex() int { return t.activeLayer }

// SetActiveLayerIndex selects the layer receiving new content.
func (t *Timeline) SetActiveLayerIndex(i int) error {
	if i < 0 || i >= len(t.layers) {
		return fmt.Errorf("active layer %d: %w", i, ErrNotFound)
	}
	t.activeLayer = i
	return nil
}

// ActiveLayer returns the layer receiving new content, or nil without layers.
func (t *Timeline) ActiveLayer() *Layer {
	if len(t.layers) == 0 {
		return nil
	}
	return t.layers[t.activeLayer]
}

// Length returns the last position covered by any frame, or 1 when no frame
// exists.
func (t *Timeline) Length() int {
	n := 1
	for _, l := range t.layers {
		n = max(n, l.End())
	}
	return n
}

// Playhead returns the current 1-indexed position.
func (t *Timeline) Playhead() int { return t.playhead }

// SetPlayheadPosition moves the playhead. Returns a *PlayheadError outside
// [1, Length()]; the playhead is unchanged.
func (t *Timeline) SetPlayheadPosition(pos int) error {
	if n := t.Length(); pos < 1 || pos > n {
		return &PlayheadError{Position: pos, Length: n}
	}
	t.playhead = pos
	return nil
}

// ActiveFrame returns the frame on l containing the playhead, or nil when the
// playhead falls in a gap.
func (t *Timeline) ActiveFrame(l *Layer) *Frame {
	return l.FrameAt(t.playhead)
}

// ActiveFrames returns the frame under the playhead on each layer that has
// one, bottom to top.
func (t *Timeline) ActiveFrames() []*Frame {
	var out []*Frame
	for _, l := range t.layers {
		if f := l.FrameAt(t.playhead); f != nil {
			out = append(out, f)
		}
	}
	return out
}

// AdvancePlayhead moves the playhead forward by one, wrapping to 1 past the
// end. It holds when the timeline is stopped, right after a Goto, or when
// the active frame on the primary layer (index 0) carries the Stop marker.
func (t *Timeline) AdvancePlayhead() {
	if t.jumped {
		t.jumped = false
		return
	}
	if !t.playing {
		return
	}
	if len(t.layers) > 0 {
		if f := t.ActiveFrame(t.layers[0]); f != nil && f.Stop {
			return
		}
	}
	t.playhead++
	if t.playhead > t.Length() {
		t.playhead = 1
	}
}

// IsPlaying reports whether AdvancePlayhead moves the playhead.
func (t *Timeline) IsPlaying() bool { return t.playing }

// Play resumes advancing.
func (t *Timeline) Play() { t.playing = true }

// Stop holds the playhead at its current position.
func (t *Timeline) Stop() { t.playing = false }

// GotoAndStop moves the playhead to pos and stops.
func (t *Timeline) GotoAndStop(pos int) error {
	if err := t.SetPlayheadPosition(pos); err != nil {
		return err
	}
	t.playing = false
	t.jumped = true
	return nil
}

// GotoAndPlay moves the playhead to pos and resumes advancing on the tick
// after next.
func (t *Timeline) GotoAndPlay(pos int) error {
	if err := t.SetPlayheadPosition(pos); err != nil {
		return err
	}
	t.playing = true
	t.jumped = true
	return nil
}

// GotoNextFrame moves the playhead forward by one, wrapping past the end,
// and stops.
func (t *Timeline) GotoNextFrame() {
	next := t.playhead + 1
	if next > t.Length() {
		next = 1
	}
	_ = t.GotoAndStop(next)
}

// GotoPrevFrame moves the playhead back by one, wrapping to the end, and
// stops.
func (t *Timeline) GotoPrevFrame() {
	prev := t.playhead - 1
	if prev < 1 {
		prev = t.Length()
	}
	_ = t.GotoAndStop(prev)
}

// Frames yields every frame of the timeline, layer by layer. When recursive
// is set, frames of every clip reachable through frame content follow the
// frame holding that clip. The sequence can be ranged over repeatedly.
func (t *Timeline) Frames(recursive bool) iter.Seq[*Frame] {
	return func(yield func(*Frame) bool) {
		t.yieldFrames(recursive, yield)
	}
}

func (t *Timeline) yieldFrames(recursive bool, yield func(*Frame) bool) bool {
	for _, l := range t.layers {
		for _, f := range l.frames {
			if !yield(f) {
				return false
			}
			if !recursive {
				continue
			}
			for _, c := range f.Clips() {
				if !c.timeline.yieldFrames(true, yield) {
					return false
				}
			}
		}
	}
	return true
}

// Clips yields every clip held by the timeline's frames, descending into
// nested clips when recursive is set.
func (t *Timeline) Clips(recursive bool) iter.Seq[*Clip] {
	return func(yield func(*Clip) bool) {
		for f := range t.Frames(recursive) {
			for _, c := range f.Clips() {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// OnionSkinFrames returns the frames on visible layers that fall within back
// positions before or fwd positions after the playhead without containing it.
func (t *Timeline) OnionSkinFrames(back, fwd int) []*Frame {
	lo, hi := t.playhead-back, t.playhead+fwd
	var out []*Frame
	for _, l := range t.layers {
		if l.Hidden {
			continue
		}
		for _, f := range l.frames {
			if f.Contains(t.playhead) {
				continue
			}
			if f.start <= hi && lo <= f.end {
				out = append(out, f)
			}
		}
	}
	return out
}

// ParentClip returns the clip owning this timeline, or nil.
func (t *Timeline) ParentClip() *Clip {
	c, _ := t.parent.(*Clip)
	return c
}

// clampPlayhead pulls the playhead back into [1, Length()].
func (t *Timeline) clampPlayhead() {
	t.playhead = min(max(t.playhead, 1), t.Length())
}
