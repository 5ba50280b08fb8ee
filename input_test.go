package wick

import (
	"slices"
	"testing"
)

func TestPressReleaseKeys(t *testing.T) {
	p := NewProject()
	p.PressKey("a")
	p.PressKey("a")
	p.PressKey("space")

	if got := p.KeysDown(); !slices.Equal(got, []string{"a", "space"}) {
		t.Errorf("KeysDown = %v", got)
	}
	if p.CurrentKey() != "space" {
		t.Errorf("CurrentKey = %q", p.CurrentKey())
	}
	p.ReleaseKey("a")
	if p.IsKeyDown("a") || !p.IsKeyDown("space") {
		t.Error("ReleaseKey removed the wrong key")
	}
}

func TestJustPressedLastsOneTick(t *testing.T) {
	p := NewProject()
	p.PressKey("arrowright")
	if !p.IsKeyJustPressed("arrowright") {
		t.Fatal("key should be just pressed before the tick")
	}
	p.Tick()
	if p.IsKeyJustPressed("arrowright") || !p.IsKeyDown("arrowright") {
		t.Error("key should be held but no longer just pressed")
	}
	p.ReleaseKey("arrowright")
	if got := p.KeysJustReleased(); !slices.Equal(got, []string{"arrowright"}) {
		t.Errorf("KeysJustReleased = %v", got)
	}
	p.Tick()
	if len(p.KeysJustReleased()) != 0 {
		t.Error("release should last one tick")
	}
}

func TestKeyScriptsDispatch(t *testing.T) {
	p := NewProject()
	var got []string
	p.SetScriptRunner(ScriptRunnerFunc(func(source, event string, scope *Clip) error {
		got = append(got, event+":"+p.CurrentKey())
		return nil
	}))
	c := NewClip("player")
	for _, ev := range []string{ScriptKeyPressed, ScriptKeyDown, ScriptKeyReleased} {
		c.Scripts.Set(ev, "x")
	}
	p.ActiveFrame().AddClip(c)

	p.PressKey("a")
	p.Tick()
	p.Tick()
	p.ReleaseKey("a")
	p.Tick()

	want := []string{"keypressed:a", "keydown:a", "keydown:a", "keyreleased:a"}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestMouseScriptsOnlyOnTarget(t *testing.T) {
	p := NewProject()
	var got []string
	p.SetScriptRunner(ScriptRunnerFunc(func(source, event string, scope *Clip) error {
		got = append(got, scope.Identifier+":"+event)
		return nil
	}))
	target, other := NewClip("target"), NewClip("other")
	for _, c := range []*Clip{target, other} {
		for _, ev := range []string{ScriptMouseDown, ScriptMouseUp, ScriptMouseClick, ScriptMouseHover} {
			c.Scripts.Set(ev, "x")
		}
		p.ActiveFrame().AddClip(c)
	}

	p.SetMouseTarget(target.UUID())
	p.Tick()
	p.SetMouseDown(true)
	p.Tick()
	p.SetMouseDown(false)
	p.Tick()

	want := []string{
		"target:mousehover",
		"target:mousedown",
		"target:mouseup", "target:mouseclick",
	}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestMousePosition(t *testing.T) {
	p := NewProject()
	p.SetMousePosition(3, 4)
	if p.MousePosition() != (Vec2{X: 3, Y: 4}) {
		t.Errorf("MousePosition = %+v", p.MousePosition())
	}
	p.SetMouseDown(true)
	if !p.IsMouseDown() {
		t.Error("IsMouseDown = false")
	}
}
