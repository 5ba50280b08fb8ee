package wick

import (
	"fmt"

	"github.com/google/uuid"
)

// Entity is implemented by every model type: Project, Clip, Timeline, Layer,
// Frame, Path, Tween and Asset. The set is closed; callers dispatch on Kind
// or with a type switch.
type Entity interface {
	// UUID returns the immutable process-unique identifier.
	UUID() string
	// Kind returns the entity's type tag.
	Kind() Kind
	// Parent returns the owning entity, or nil for a detached entity or the
	// project itself.
	Parent() Entity
	// Children returns the owned entities in order. The returned slice MUST
	// NOT be mutated by the caller.
	Children() []Entity
	// Project returns the project this entity is attached to, if any.
	Project() *Project

	base() *Base
}

// Base holds the fields shared by every entity. It is embedded by each
// concrete type.
type Base struct {
	uuid    string
	kind    Kind
	parent  Entity
	project *Project
}

func newBase(kind Kind) Base {
	return Base{uuid: uuid.NewString(), kind: kind}
}

// UUID returns the entity's identifier.
func (b *Base) UUID() string { return b.uuid }

// Kind returns the entity's type tag.
func (b *Base) Kind() Kind { return b.kind }

// Parent returns the owning entity.
func (b *Base) Parent() Entity { return b.parent }

// Project returns the project this entity belongs to, or nil while detached.
func (b *Base) Project() *Project { return b.project }

func (b *Base) base() *Base { return b }

// --- Ownership ---

// attach makes parent the owner of child and registers child's subtree with
// the parent's project. If child already has an owner, it is removed from
// that owner first. Panics if child is nil or child is an ancestor of parent
// (cycle).
func attach(parent, child Entity) {
	if child == nil {
		panic("wick: cannot attach nil entity")
	}
	if isAncestor(child, parent) {
		panic("wick: attaching entity would create a cycle")
	}
	if old := child.base().parent; old != nil && old != parent {
		// A move keeps the focus when the subtree stays in the project.
		if from := child.Project(); from != nil {
			from.holdFocus = true
			defer func() {
				from.holdFocus = false
				from.repairFocus()
			}()
		}
		removeFromParent(child)
	}
	child.base().parent = parent
	adopt(child, parent.Project())
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// detach clears child's owner edge and unregisters its subtree.
// If the subtree held the project's focus, focus returns to the root clip.
func detach(child Entity) {
	p := child.Project()
	child.base().parent = nil
	release(child)
	if p != nil && !p.holdFocus {
		p.repairFocus()
	}
}

// adopt registers e and its descendants with p's object cache.
func adopt(e Entity, p *Project) {
	b := e.base()
	if b.project != nil && b.project != p {
		b.project.cache.Remove(b.uuid)
	}
	b.project = p
	if p != nil {
		p.cache.Add(e)
	}
	for _, child := range e.Children() {
		adopt(child, p)
	}
}

// release unregisters e and its descendants from their project's cache and
// drops them from the selection.
func release(e Entity) {
	b := e.base()
	if p := b.project; p != nil {
		p.cache.Remove(b.uuid)
		p.selection.Deselect(e)
	}
	b.project = nil
	for _, child := range e.Children() {
		release(child)
	}
}

// removeFromParent detaches e from whatever owns it. No-op for detached
// entities. Panics for edges that cannot be cut (root clip, clip timeline).
func removeFromParent(e Entity) {
	switch p := e.Parent().(type) {
	case nil:
	case *Frame:
		p.removeContent(e)
	case *Layer:
		p.RemoveFrame(e.(*Frame))
	case *Timeline:
		p.RemoveLayer(e.(*Layer))
	case *Project:
		a, ok := e.(*Asset)
		if !ok {
			panic("wick: cannot remove the root clip from its project")
		}
		p.RemoveAsset(a)
	default:
		panic(fmt.Sprintf("wick: cannot remove %s from %s", e.Kind(), p.Kind()))
	}
}

// isAncestor reports whether candidate is node or one of node's ancestors.
func isAncestor(candidate, node Entity) bool {
	for p := node; p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}

// walk visits e and every descendant depth-first. Returning false from fn
// stops the walk.
func walk(e Entity, fn func(Entity) bool) bool {
	if !fn(e) {
		return false
	}
	for _, child := range e.Children() {
		if !walk(child, fn) {
			return false
		}
	}
	return true
}
