// Package wick is a frame-based 2D animation model and playback engine.
//
// A [Project] owns a root [Clip]. Every clip owns a [Timeline] of ordered
// [Layer]s; each layer holds non-overlapping [Frame]s along a 1-indexed
// playhead axis, and each frame holds [Path] and nested [Clip] content plus
// [Tween] anchors that interpolate clip transformations.
//
// # Quick start
//
//	p := wick.NewProject()
//	frame := p.ActiveFrame()
//
//	ball := wick.NewClip("ball")
//	frame.AddClip(ball)
//	ball.Timeline().Layers()[0].Frames()[0].SetRange(1, 24)
//
//	sched := wick.NewManualScheduler()
//	p.SetScheduler(sched)
//	p.Play(wick.PlayOptions{OnError: func(err *wick.ScriptError) { log.Println(err) }})
//	sched.Advance(time.Second)
//	p.Stop()
//
// # Playback
//
// [Project.Tick] ticks the focused clip. A clip runs its scripts, ticks the
// clips in its active frames at the current playhead, then advances its own
// playhead, wrapping at the end of the timeline unless the frame under the
// playhead on the bottom layer is marked [Frame.Stop]. [Project.Play] drives
// Tick from a [Scheduler] and restores the pre-play state on [Project.Stop].
//
// Scripts run through a [ScriptRunner]; package wick/script provides one
// that interprets Go source with yaegi. A failing script halts its clip's
// subtree for the tick and is returned from Tick as a [*ScriptError].
//
// # Editing
//
// Structural mutations check invariants when they happen: overlapping frames
// are rejected with a [*FrameOverlapError] and playhead moves outside the
// timeline with a [*PlayheadError]. Undo and redo snapshot the serialized
// project through [History]. The [Selection], [Clipboard] and [ObjectCache]
// refer to entities by identifier, so stale references are skipped rather
// than kept alive.
//
// # Collaborators
//
// Rendering, hit testing, audio and scheduling are interfaces ([View],
// [HitTester], [Measurer], [AudioPlayer], [Scheduler]). Package wick/view
// implements them on [Ebitengine]; package wick/store persists projects in
// SQLite; the wick/ecs module forwards playback events into a [Donburi]
// world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package wick
