package wick

import "slices"

// --- Keys ---

// SetKeysDown replaces the set of keys currently held down.
func (p *Project) SetKeysDown(keys []string) {
	p.keysDown = slices.Clone(keys)
}

// PressKey marks key as held down.
func (p *Project) PressKey(key string) {
	if !slices.Contains(p.keysDown, key) {
		p.keysDown = append(p.keysDown, key)
	}
	p.currentKey = key
}

// ReleaseKey marks key as released.
func (p *Project) ReleaseKey(key string) {
	p.keysDown = slices.DeleteFunc(p.keysDown, func(k string) bool { return k == key })
}

// KeysDown returns the keys currently held down.
func (p *Project) KeysDown() []string {
	return slices.Clone(p.keysDown)
}

// KeysJustPressed returns the keys held down now that were not down at the
// end of the previous tick.
func (p *Project) KeysJustPressed() []string {
	var out []string
	for _, k := range p.keysDown {
		if !slices.Contains(p.keysLastDown, k) {
			out = append(out, k)
		}
	}
	return out
}

// KeysJustReleased returns the keys down at the end of the previous tick
// that are no longer down.
func (p *Project) KeysJustReleased() []string {
	var out []string
	for _, k := range p.keysLastDown {
		if !slices.Contains(p.keysDown, k) {
			out = append(out, k)
		}
	}
	return out
}

// IsKeyDown reports whether key is held down.
func (p *Project) IsKeyDown(key string) bool {
	return slices.Contains(p.keysDown, key)
}

// IsKeyJustPressed reports whether key was pressed since the previous tick.
func (p *Project) IsKeyJustPressed(key string) bool {
	return p.IsKeyDown(key) && !slices.Contains(p.keysLastDown, key)
}

// CurrentKey returns the key the running key script was dispatched for.
func (p *Project) CurrentKey() string { return p.currentKey }

// --- Mouse ---

// SetMousePosition records the pointer position in canvas coordinates.
func (p *Project) SetMousePosition(x, y float64) {
	p.mousePos = Vec2{X: x, Y: y}
}

// MousePosition returns the pointer position in canvas coordinates.
func (p *Project) MousePosition() Vec2 { return p.mousePos }

// SetMouseDown records whether the primary button is held.
func (p *Project) SetMouseDown(down bool) { p.mouseDown = down }

// IsMouseDown reports whether the primary button is held.
func (p *Project) IsMouseDown() bool { return p.mouseDown }

// SetMouseTarget records the identifier of the clip under the pointer, or
// empty for none. Mouse scripts run on that clip.
func (p *Project) SetMouseTarget(uuid string) { p.mouseTarget = uuid }

// MouseTarget returns the identifier of the clip under the pointer.
func (p *Project) MouseTarget() string { return p.mouseTarget }

// endInputTick snapshots the key and mouse state so the next tick can
// compute just-pressed and just-released sets.
func (p *Project) endInputTick() {
	p.keysLastDown = append(p.keysLastDown[:0], p.keysDown...)
	p.mouseWasDown = p.mouseDown
}
