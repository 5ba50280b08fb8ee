package wick

import (
	"slices"
	"testing"
)

func TestSelectIsIdempotent(t *testing.T) {
	p := NewProject()
	c := NewClip("c")
	p.ActiveFrame().AddClip(c)
	s := p.Selection()

	s.Select(c)
	s.Select(c)
	if s.NumObjects() != 1 {
		t.Errorf("NumObjects = %d, want 1", s.NumObjects())
	}
	s.Deselect(c)
	s.Deselect(c)
	if s.NumObjects() != 0 || s.IsSelected(c) {
		t.Error("Deselect left the clip selected")
	}
}

func TestSelectionSkipsRemovedMembers(t *testing.T) {
	p := NewProject()
	a, b := NewClip("a"), NewClip("b")
	p.ActiveFrame().AddClip(a)
	p.ActiveFrame().AddClip(b)
	p.Selection().Select(a)
	p.Selection().Select(b)

	a.Remove()
	if got := p.Selection().UUIDs(); !slices.Equal(got, []string{b.UUID()}) {
		t.Errorf("UUIDs = %v, want only b", got)
	}
	if p.Selection().SelectedObject() != Entity(b) {
		t.Error("SelectedObject should be b")
	}
}

func TestSelectedObjectsFilter(t *testing.T) {
	p := NewProject()
	c := NewClip("c")
	path := NewPath(nil, Rect{Width: 1, Height: 1})
	p.ActiveFrame().AddClip(c)
	p.ActiveFrame().AddPath(path)
	p.SelectAll()

	if got := p.Selection().SelectedObjects(KindPath); len(got) != 1 || got[0] != Entity(path) {
		t.Error("kind filter failed")
	}
	if p.Selection().SelectedObject() != nil {
		t.Error("SelectedObject with two members should be nil")
	}
}

func TestSelectionBox(t *testing.T) {
	p := NewProject()
	a := NewPath(nil, Rect{X: 0, Y: 0, Width: 10, Height: 10})
	b := NewPath(nil, Rect{X: 20, Y: 5, Width: 10, Height: 20})
	p.ActiveFrame().AddPath(a)
	p.ActiveFrame().AddPath(b)
	s := p.Selection()
	s.Select(a)
	s.Select(b)
	s.SetTransform(2, 2, 45)

	box := s.Box(boundsMeasurer{})
	if box.X != 0 || box.Y != 0 || box.Width != 30 || box.Height != 25 {
		t.Errorf("box = %+v", box)
	}
	if box.ScaleX != 2 || box.Rotation != 45 {
		t.Errorf("box transform = %+v", box)
	}
	if c := box.Center(); c != (Vec2{X: 15, Y: 12.5}) {
		t.Errorf("Center = %+v", c)
	}

	s.Clear()
	if box := s.Box(boundsMeasurer{}); box.ScaleX != 1 || box.Rotation != 0 || box.Width != 0 {
		t.Errorf("box after Clear = %+v", box)
	}
}
