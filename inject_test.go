package wick

import "testing"

// gridHitTester hits the clip registered for the 100x100 cell under the
// point.
type gridHitTester struct {
	fakeView
	cells map[[2]int]string
}

func (g *gridHitTester) HitTest(x, y float64) (string, bool) {
	id, ok := g.cells[[2]int{int(x) / 100, int(y) / 100}]
	return id, ok
}

func TestInjectClick(t *testing.T) {
	p := NewProject()
	c := NewClip("button")
	c.Scripts.Set(ScriptMouseClick, "x")
	p.ActiveFrame().AddClip(c)
	p.SetView(&gridHitTester{cells: map[[2]int]string{{0, 0}: c.UUID()}})

	var clicked bool
	p.SetScriptRunner(ScriptRunnerFunc(func(source, event string, scope *Clip) error {
		if event == ScriptMouseClick {
			clicked = true
			if scope != c {
				t.Error("expected the button clip")
			}
		}
		return nil
	}))

	p.InjectClick(50, 50)
	if p.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued events, got %d", p.PendingInjections())
	}

	// Tick 1: press
	p.Tick()
	if p.PendingInjections() != 1 {
		t.Fatalf("expected 1 remaining event after tick 1, got %d", p.PendingInjections())
	}
	if clicked {
		t.Error("click should not fire on press tick")
	}
	if p.MouseTarget() != c.UUID() || !p.IsMouseDown() {
		t.Error("press did not target the clip")
	}

	// Tick 2: release → click fires
	p.Tick()
	if p.PendingInjections() != 0 {
		t.Fatalf("expected 0 remaining events after tick 2, got %d", p.PendingInjections())
	}
	if !clicked {
		t.Error("click should fire on release tick")
	}
}

func TestInjectClickMiss(t *testing.T) {
	p := NewProject()
	p.SetView(&gridHitTester{cells: map[[2]int]string{}})
	p.SetMouseTarget("stale")
	p.InjectClick(500, 500)
	p.Tick()
	if p.MouseTarget() != "" {
		t.Errorf("MouseTarget = %q, want empty", p.MouseTarget())
	}
}

func TestInjectWithoutHitTester(t *testing.T) {
	p := NewProject()
	p.InjectClick(10, 20)
	p.Tick()
	if p.MousePosition() != (Vec2{X: 10, Y: 20}) || !p.IsMouseDown() {
		t.Error("press not applied without a hit tester")
	}
}

func TestInjectDrag(t *testing.T) {
	p := NewProject()

	// Drag from (10,10) to (200,200) over 5 ticks:
	// tick 0: press at (10,10)
	// tick 1: move to (57.5, 57.5)
	// tick 2: move to (105, 105)
	// tick 3: move to (152.5, 152.5)
	// tick 4: release at (200, 200)
	p.InjectDrag(10, 10, 200, 200, 5)
	if p.PendingInjections() != 5 {
		t.Fatalf("expected 5 queued events, got %d", p.PendingInjections())
	}

	var xs []float64
	var downs []bool
	for range 5 {
		p.Tick()
		xs = append(xs, p.MousePosition().X)
		downs = append(downs, p.IsMouseDown())
	}
	wantX := []float64{10, 57.5, 105, 152.5, 200}
	wantDown := []bool{true, true, true, true, false}
	for i := range wantX {
		assertNear(t, "x", xs[i], wantX[i])
		if downs[i] != wantDown[i] {
			t.Errorf("tick %d: down = %v, want %v", i, downs[i], wantDown[i])
		}
	}
}

func TestInjectDragMinTicks(t *testing.T) {
	p := NewProject()
	p.InjectDrag(0, 0, 10, 10, 0)
	if p.PendingInjections() != 2 {
		t.Errorf("expected 2 queued events for minimum drag, got %d", p.PendingInjections())
	}
}

func TestInjectKeyTap(t *testing.T) {
	p := NewProject()
	p.InjectKeyTap("space")

	p.Tick()
	if !p.IsKeyDown("space") {
		t.Error("tap did not press the key")
	}
	p.Tick()
	if p.IsKeyDown("space") {
		t.Error("tap did not release the key")
	}
}
