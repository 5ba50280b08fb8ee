package wick

import "time"

// ScriptRunner executes clip and frame scripts. scope is the clip whose API
// the script sees (for frame scripts, the clip owning the frame). A non-nil
// error fails the script; returning a *ScriptError preserves its line number.
type ScriptRunner interface {
	Execute(source, event string, scope *Clip) error
}

// ScriptRunnerFunc adapts a function to ScriptRunner.
type ScriptRunnerFunc func(source, event string, scope *Clip) error

// Execute calls f.
func (f ScriptRunnerFunc) Execute(source, event string, scope *Clip) error {
	return f(source, event, scope)
}

// View renders a project snapshot. It holds no model state and can always be
// rebuilt from the project.
type View interface {
	Render(p *Project)
	SetRenderMode(mode RenderMode)
}

// Measurer reports the frame-space bounds of rendered entities. Views that
// implement it back Selection.Box.
type Measurer interface {
	Bounds(e Entity) (Rect, bool)
}

// HitTester maps a canvas point to the identifier of the topmost content
// entity of the focused timeline. Views that implement it back InjectClick.
type HitTester interface {
	HitTest(x, y float64) (string, bool)
}

// AudioPlayer plays sound assets. owner is the identifier of the frame that
// started the sound, or empty for sounds started by PlaySound.
type AudioPlayer interface {
	Play(owner string, a *Asset, offset time.Duration) error
	Stop(owner string)
	StopAll()
}

// Scheduler registers a periodic callback and returns a function that
// cancels it. Cancelling twice must be safe.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// PlaybackEvent is delivered to the EventSink on playback lifecycle changes.
type PlaybackEvent struct {
	Type        PlaybackEventType
	ProjectUUID string
	Playhead    int
	Err         *ScriptError
}

// EventSink receives playback events. It is the bridge to external systems
// such as an ECS world.
type EventSink interface {
	EmitEvent(event PlaybackEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(event PlaybackEvent)

// EmitEvent calls f.
func (f EventSinkFunc) EmitEvent(event PlaybackEvent) {
	f(event)
}
