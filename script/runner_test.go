package script

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wickgo/wick"
)

// newScene returns a project running scripts through a fresh Runner, with a
// three-frame clip on the root's active frame.
func newScene(t *testing.T) (*wick.Project, *wick.Clip) {
	t.Helper()
	p := wick.NewProject()
	p.SetScriptRunner(New())
	c := wick.NewClip("actor")
	require.NoError(t, c.Timeline().Layers()[0].Frames()[0].SetRange(1, 3))
	p.ActiveFrame().AddClip(c)
	return p, c
}

func TestTickScriptControlsTimeline(t *testing.T) {
	p, c := newScene(t)
	c.Scripts.Set(wick.ScriptTick, `Stop()`)

	require.Nil(t, p.Tick())
	assert.False(t, c.Timeline().IsPlaying())
	assert.Equal(t, 1, c.Timeline().Playhead())
}

func TestGotoAndStopHoldsTarget(t *testing.T) {
	p, c := newScene(t)
	c.Scripts.Set(wick.ScriptLoad, `GotoAndStop(3)`)

	require.Nil(t, p.Tick())
	require.Nil(t, p.Tick())
	assert.Equal(t, 3, c.Timeline().Playhead())
}

func TestInputAPI(t *testing.T) {
	p, c := newScene(t)
	c.Scripts.Set(wick.ScriptKeyPressed, `
if Key() == "a" && IsKeyDown("a") && IsKeyJustPressed("a") {
	GotoAndStop(2)
}`)
	p.PressKey("a")

	require.Nil(t, p.Tick())
	assert.Equal(t, 2, c.Timeline().Playhead())
}

func TestEventName(t *testing.T) {
	p, c := newScene(t)
	c.Scripts.Set(wick.ScriptLoad, `if Event() != "load" { panic(Event()) }`)
	require.Nil(t, p.Tick())
}

func TestCompileErrorLine(t *testing.T) {
	p, c := newScene(t)
	c.Scripts.Set(wick.ScriptTick, "Stop()\nnotDefined()")

	err := p.Tick()
	require.NotNil(t, err)
	assert.Equal(t, c.UUID(), err.UUID)
	assert.Equal(t, 2, err.LineNumber)
	assert.Contains(t, err.Message, "notDefined")
}

func TestPanicBecomesScriptError(t *testing.T) {
	r := New()
	p := wick.NewProject()
	c := wick.NewClip("")
	p.ActiveFrame().AddClip(c)

	err := r.Execute("\npanic(\"boom\")", wick.ScriptTick, c)
	var se *wick.ScriptError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Contains(t, se.Message, "boom")
}

func TestErrorHaltsOnlyFailingClip(t *testing.T) {
	p, bad := newScene(t)
	bad.Scripts.Set(wick.ScriptTick, `panic("bad clip")`)

	good := wick.NewClip("good")
	require.NoError(t, good.Timeline().Layers()[0].Frames()[0].SetRange(1, 3))
	good.Scripts.Set(wick.ScriptTick, `This().SetPosition(10, 20)`)
	p.ActiveFrame().AddClip(good)

	err := p.Tick()
	require.NotNil(t, err)
	assert.Equal(t, bad.UUID(), err.UUID)
	assert.Equal(t, 10.0, good.Transformation.X)
	assert.Equal(t, 2, good.Timeline().Playhead())
	assert.Equal(t, 1, bad.Timeline().Playhead())
}

func TestPrintAndStdout(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Stdout: &out}
	p := wick.NewProject()
	c := wick.NewClip("")
	p.ActiveFrame().AddClip(c)

	require.NoError(t, r.Execute(`println("hello")`, wick.ScriptTick, c))
	assert.Contains(t, out.String(), "hello")
}

func TestTimeout(t *testing.T) {
	r := &Runner{Timeout: 50 * time.Millisecond}
	p := wick.NewProject()
	c := wick.NewClip("")
	p.ActiveFrame().AddClip(c)

	err := r.Execute(`for { }`, wick.ScriptTick, c)
	var se *wick.ScriptError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, "script timed out", se.Message)
}
