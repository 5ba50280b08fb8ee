package wick

import "slices"

// SelectionBox is the derived transform box of the selection. Geometry is the
// union of member bounds in the focused timeline's space; scale and rotation
// are the transform the user applied to the box since it was last cleared.
type SelectionBox struct {
	X, Y          float64
	Width, Height float64
	ScaleX        float64
	ScaleY        float64
	Rotation      float64
}

// Center returns the center of the box.
func (b SelectionBox) Center() Vec2 {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}.Center()
}

// Selection is an ordered set of entity identifiers. Members are resolved
// through the owning project's object cache, so members that left the project
// are skipped. The selection is editor state and never serialized.
type Selection struct {
	project *Project
	uuids   []string

	scaleX, scaleY float64
	rotation       float64
}

func newSelection(p *Project) *Selection {
	return &Selection{project: p, scaleX: 1, scaleY: 1}
}

// Select adds e. Selecting a member again does nothing.
func (s *Selection) Select(e Entity) {
	if s.IsSelected(e) {
		return
	}
	s.uuids = append(s.uuids, e.UUID())
}

// Deselect removes e. Deselecting a non-member does nothing.
func (s *Selection) Deselect(e Entity) {
	id := e.UUID()
	s.uuids = slices.DeleteFunc(s.uuids, func(u string) bool { return u == id })
}

// Clear removes every member and resets the box transform.
func (s *Selection) Clear() {
	s.uuids = s.uuids[:0]
	s.scaleX, s.scaleY, s.rotation = 1, 1, 0
}

// IsSelected reports whether e is a member.
func (s *Selection) IsSelected(e Entity) bool {
	return slices.Contains(s.uuids, e.UUID())
}

// NumObjects returns the number of live members.
func (s *Selection) NumObjects() int {
	return len(s.SelectedObjects())
}

// UUIDs returns the member identifiers in selection order.
func (s *Selection) UUIDs() []string {
	return slices.Clone(s.uuids)
}

// SelectedObjects returns the live members in selection order, filtered to
// the given kinds when any are passed.
func (s *Selection) SelectedObjects(kinds ...Kind) []Entity {
	var out []Entity
	for _, id := range s.uuids {
		e, ok := s.project.cache.Get(id)
		if !ok {
			continue
		}
		if len(kinds) > 0 && !slices.Contains(kinds, e.Kind()) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SelectedObject returns the only member, or nil when zero or several
// objects are selected.
func (s *Selection) SelectedObject() Entity {
	objs := s.SelectedObjects()
	if len(objs) != 1 {
		return nil
	}
	return objs[0]
}

// SetTransform records the scale and rotation applied to the box.
func (s *Selection) SetTransform(scaleX, scaleY, rotation float64) {
	s.scaleX, s.scaleY, s.rotation = scaleX, scaleY, rotation
}

// Box computes the selection box from the member bounds reported by m.
// Members m cannot measure are ignored.
func (s *Selection) Box(m Measurer) SelectionBox {
	var r Rect
	for _, e := range s.SelectedObjects() {
		if b, ok := m.Bounds(e); ok {
			r = r.Union(b)
		}
	}
	return SelectionBox{
		X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
		ScaleX: s.scaleX, ScaleY: s.scaleY, Rotation: s.rotation,
	}
}
