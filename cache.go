package wick

// ObjectCache maps identifiers to the live entities of one project. It never
// owns an entity's lifetime: entries are added when an entity joins the
// project tree and removed when it leaves. Weak references (focus, selection
// members, sound and image asset links) are resolved through it.
type ObjectCache struct {
	objects map[string]Entity
}

func newObjectCache() *ObjectCache {
	return &ObjectCache{objects: make(map[string]Entity)}
}

// Add registers e under its identifier, replacing any previous entry.
func (c *ObjectCache) Add(e Entity) {
	c.objects[e.UUID()] = e
}

// Remove drops the entry for uuid. No-op if absent.
func (c *ObjectCache) Remove(uuid string) {
	delete(c.objects, uuid)
}

// Get returns the entity registered under uuid.
func (c *ObjectCache) Get(uuid string) (Entity, bool) {
	e, ok := c.objects[uuid]
	return e, ok
}

// Len returns the number of registered entities.
func (c *ObjectCache) Len() int {
	return len(c.objects)
}

// Reset drops every entry. Used before a whole project is reloaded so no
// stale identifier survives the load.
func (c *ObjectCache) Reset() {
	clear(c.objects)
}

// lookup resolves uuid to an entity of type T.
func lookup[T Entity](c *ObjectCache, uuid string) (T, bool) {
	var zero T
	e, ok := c.objects[uuid]
	if !ok {
		return zero, false
	}
	t, ok := e.(T)
	return t, ok
}
