package view

import (
	"math"
	"testing"

	"github.com/wickgo/wick"
)

func newTestProject(t *testing.T) (*wick.Project, *Renderer) {
	t.Helper()
	p := wick.NewProject()
	r := NewRenderer()
	p.SetView(r)
	return p, r
}

func square(x, y, size float64) *wick.Path {
	path := wick.NewPath(nil, wick.Rect{Width: size, Height: size})
	path.Matrix = wick.Matrix{1, 0, 0, 1, x, y}
	return path
}

func TestRenderEmitsActiveContent(t *testing.T) {
	p, r := newTestProject(t)
	a := square(0, 0, 10)
	b := square(20, 0, 10)
	p.ActiveFrame().AddPath(a)
	p.ActiveFrame().AddPath(b)

	p.Render()
	cmds := r.Commands()
	if len(cmds) != 2 {
		t.Fatalf("commands = %d, want 2", len(cmds))
	}
	if cmds[0].Target != a.UUID() || cmds[1].Target != b.UUID() {
		t.Errorf("command order = %s,%s", cmds[0].Target, cmds[1].Target)
	}
}

func TestRenderSkipsHiddenLayers(t *testing.T) {
	p, r := newTestProject(t)
	p.ActiveFrame().AddPath(square(0, 0, 10))
	p.ActiveLayer().Hidden = true

	p.Render()
	if n := len(r.Commands()); n != 0 {
		t.Errorf("commands = %d, want 0", n)
	}
}

func TestRenderNestedClipComposesTransform(t *testing.T) {
	p, r := newTestProject(t)
	c := wick.NewClip("box")
	c.SetPosition(100, 50)
	c.SetOpacity(0.5)
	c.Timeline().Layers()[0].Frames()[0].AddPath(square(5, 5, 10))
	p.ActiveFrame().AddClip(c)

	p.Render()
	cmds := r.Commands()
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.Target != c.UUID() {
		t.Errorf("Target = %s, want clip %s", cmd.Target, c.UUID())
	}
	if x, y := cmd.Transform.Apply(0, 0); x != 105 || y != 55 {
		t.Errorf("origin = (%v,%v), want (105,55)", x, y)
	}
	if cmd.Alpha != 0.5 {
		t.Errorf("Alpha = %v, want 0.5", cmd.Alpha)
	}
}

func TestRenderOnionSkinOnlyInEditMode(t *testing.T) {
	p, r := newTestProject(t)
	l := p.ActiveLayer()
	f2 := wick.NewFrame(2, 2)
	if err := l.AddFrame(f2); err != nil {
		t.Fatal(err)
	}
	f2.AddPath(square(0, 0, 10))
	p.OnionSkinEnabled = true
	p.OnionSkinSeekForwards = 1

	p.Render()
	onion := 0
	for _, cmd := range r.Commands() {
		if cmd.Onion {
			onion++
			if cmd.Alpha != onionAlpha {
				t.Errorf("onion Alpha = %v, want %v", cmd.Alpha, onionAlpha)
			}
		}
	}
	if onion != 1 {
		t.Errorf("onion commands = %d, want 1", onion)
	}

	r.SetRenderMode(wick.RenderModePlay)
	p.Render()
	for _, cmd := range r.Commands() {
		if cmd.Onion {
			t.Error("onion skin drawn in play mode")
		}
	}
}

func TestHitTestTopmost(t *testing.T) {
	p, r := newTestProject(t)
	under := square(0, 0, 20)
	over := square(10, 10, 20)
	p.ActiveFrame().AddPath(under)
	p.ActiveFrame().AddPath(over)
	p.Render()

	tests := []struct {
		x, y float64
		want string
		ok   bool
	}{
		{5, 5, under.UUID(), true},
		{15, 15, over.UUID(), true},
		{25, 25, over.UUID(), true},
		{50, 50, "", false},
	}
	for _, tt := range tests {
		got, ok := r.HitTest(tt.x, tt.y)
		if got != tt.want || ok != tt.ok {
			t.Errorf("HitTest(%v,%v) = %q,%v want %q,%v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHitTestRotatedClip(t *testing.T) {
	p, r := newTestProject(t)
	c := wick.NewClip("")
	c.SetPosition(50, 50)
	c.SetRotation(90)
	c.Timeline().Layers()[0].Frames()[0].AddPath(wick.NewPath(nil, wick.Rect{Width: 20, Height: 4}))
	p.ActiveFrame().AddClip(c)
	p.Render()

	// The 20x4 strip rotated 90 degrees clockwise runs down from (50,50).
	if id, ok := r.HitTest(48, 60); !ok || id != c.UUID() {
		t.Errorf("HitTest inside rotated strip = %q,%v", id, ok)
	}
	if _, ok := r.HitTest(60, 52); ok {
		t.Error("HitTest hit the unrotated extent")
	}
}

func TestInjectClickTargetsHitClip(t *testing.T) {
	p, _ := newTestProject(t)
	c := wick.NewClip("button")
	c.Timeline().Layers()[0].Frames()[0].AddPath(square(0, 0, 10))
	p.ActiveFrame().AddClip(c)
	p.Render()

	p.InjectClick(5, 5)
	p.Tick()
	if got := p.MouseTarget(); got != c.UUID() {
		t.Errorf("MouseTarget = %q, want %q", got, c.UUID())
	}
}

func TestBounds(t *testing.T) {
	_, r := newTestProject(t)

	path := square(10, 20, 5)
	if b, ok := r.Bounds(path); !ok || b != (wick.Rect{X: 10, Y: 20, Width: 5, Height: 5}) {
		t.Errorf("path Bounds = %+v,%v", b, ok)
	}

	c := wick.NewClip("")
	inner := c.Timeline().Layers()[0].Frames()[0]
	inner.AddPath(square(0, 0, 10))
	inner.AddPath(square(20, 0, 10))
	c.SetPosition(100, 100)
	c.SetScale(2, 2)
	b, ok := r.Bounds(c)
	if !ok {
		t.Fatal("clip Bounds not ok")
	}
	want := wick.Rect{X: 100, Y: 100, Width: 60, Height: 20}
	if math.Abs(b.X-want.X) > 1e-9 || math.Abs(b.Width-want.Width) > 1e-9 || math.Abs(b.Height-want.Height) > 1e-9 {
		t.Errorf("clip Bounds = %+v, want %+v", b, want)
	}

	if _, ok := r.Bounds(wick.NewClip("")); ok {
		t.Error("empty clip reported bounds")
	}
}

func TestSelectionBoxUsesRendererBounds(t *testing.T) {
	p, r := newTestProject(t)
	a := square(0, 0, 10)
	b := square(30, 10, 10)
	p.ActiveFrame().AddPath(a)
	p.ActiveFrame().AddPath(b)
	p.Selection().Select(a)
	p.Selection().Select(b)

	box := p.Selection().Box(r)
	if box.X != 0 || box.Y != 0 || box.Width != 40 || box.Height != 20 {
		t.Errorf("Box = %+v", box)
	}
}
