package wick

// syntheticEvent is a single injected key or pointer event. Pointer
// coordinates are canvas coordinates, the same space the view hit-tests in.
type syntheticEvent struct {
	pointer bool
	key     string
	x, y    float64
	pressed bool
}

// InjectKeyPress queues a key press. The event is consumed on the next tick.
func (p *Project) InjectKeyPress(key string) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{key: key, pressed: true})
}

// InjectKeyRelease queues a key release.
func (p *Project) InjectKeyRelease(key string) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{key: key})
}

// InjectKeyTap queues a press followed by a release. Consumes two ticks.
func (p *Project) InjectKeyTap(key string) {
	p.InjectKeyPress(key)
	p.InjectKeyRelease(key)
}

// InjectPress queues a mouse press at (x, y).
func (p *Project) InjectPress(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{pointer: true, x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move at (x, y) with the button held down. Use
// it between InjectPress and InjectRelease to simulate a drag.
func (p *Project) InjectMove(x, y float64) {
	p.InjectPress(x, y)
}

// InjectRelease queues a mouse release at (x, y).
func (p *Project) InjectRelease(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{pointer: true, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two ticks.
func (p *Project) InjectClick(x, y float64) {
	p.InjectPress(x, y)
	p.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), linearly interpolated moves
// over ticks-2 intermediate ticks, and a release at (toX, toY). Minimum ticks
// is 2.
func (p *Project) InjectDrag(fromX, fromY, toX, toY float64, ticks int) {
	if ticks < 2 {
		ticks = 2
	}
	p.InjectPress(fromX, fromY)
	steps := ticks - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	p.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (p *Project) PendingInjections() int {
	return len(p.injectQueue)
}

// processInjectedInput pops one event from the inject queue and applies it to
// the input state. Pointer events are hit-tested through the view when it
// supports it. Returns true if an event was consumed.
func (p *Project) processInjectedInput() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	if !evt.pointer {
		if evt.pressed {
			p.PressKey(evt.key)
		} else {
			p.ReleaseKey(evt.key)
		}
		return true
	}
	p.SetMousePosition(evt.x, evt.y)
	p.SetMouseDown(evt.pressed)
	if ht, ok := p.view.(HitTester); ok {
		id, _ := ht.HitTest(evt.x, evt.y)
		p.SetMouseTarget(id)
	}
	return true
}
