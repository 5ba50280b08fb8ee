package wick

import (
	"slices"
	"time"
)

// snapshotBeforePlay is the history snapshot restored by Stop.
const snapshotBeforePlay = "state-before-play"

// PlayOptions holds the optional callbacks of a playback session.
type PlayOptions struct {
	// OnError receives the script error that ended the session. Stop runs
	// after it returns; calling Stop from OnError is allowed.
	OnError func(err *ScriptError)
	// OnBeforeTick runs before every tick.
	OnBeforeTick func()
	// OnAfterTick runs after every tick that completed without error.
	OnAfterTick func()
}

// IsPlaying reports whether a playback session is active.
func (p *Project) IsPlaying() bool { return p.playing }

// Play starts a playback session: the current state is saved as the
// "state-before-play" snapshot, the selection is cleared, the view switches
// to play mode and the scheduler calls Tick every 1/framerate seconds. A
// session already running is stopped first, so at most one tick loop exists.
// A script error stops the session after OnError.
func (p *Project) Play(opts PlayOptions) error {
	if p.scheduler == nil {
		return ErrNoScheduler
	}
	if p.playing {
		p.Stop()
	}
	if err := p.history.SaveSnapshot(snapshotBeforePlay); err != nil {
		return err
	}
	p.selection.Clear()
	p.setRenderMode(RenderModePlay)

	p.playOpts = opts
	p.playing = true
	interval := time.Second / time.Duration(p.framerate)
	p.cancelTick = p.scheduler.Every(interval, p.tickLoop)

	logger.Info("playback started", "project", p.Name, "framerate", p.framerate)
	p.emit(PlaybackStarted, nil)
	return nil
}

// tickLoop is the scheduler callback of a playback session.
func (p *Project) tickLoop() {
	opts := p.playOpts
	if opts.OnBeforeTick != nil {
		opts.OnBeforeTick()
	}
	if !p.playing {
		return
	}
	if err := p.Tick(); err != nil {
		if opts.OnError != nil {
			opts.OnError(err)
		}
		p.Stop()
		return
	}
	if opts.OnAfterTick != nil {
		opts.OnAfterTick()
	}
}

// Stop ends the playback session: the tick loop is cancelled, sounds are
// stopped, the view returns to edit mode and the "state-before-play"
// snapshot is restored, discarding every change made during playback. Safe
// to call at any time, including re-entrantly from OnError; calls without an
// active session do nothing.
func (p *Project) Stop() {
	if !p.playing {
		return
	}
	p.playing = false
	if cancel := p.cancelTick; cancel != nil {
		p.cancelTick = nil
		cancel()
	}
	p.StopAllSounds()
	p.setRenderMode(RenderModeEdit)
	if !p.history.LoadSnapshot(snapshotBeforePlay) {
		logger.Warn("playback stopped without a state to restore")
	}
	p.Render()

	logger.Info("playback stopped", "project", p.Name)
	p.emit(PlaybackStopped, nil)
}

// Tick runs one playback step from the focused clip and returns the first
// script error raised, or nil. Queued automation input is applied first; the
// key state is snapshotted and the view rendered afterwards.
func (p *Project) Tick() *ScriptError {
	start := time.Now()
	p.stats = tickStats{}

	if p.testRunner != nil {
		p.testRunner.step(p)
	}
	p.processInjectedInput()

	tc := &tickContext{p: p, stats: &p.stats}
	err := p.Focus().tick(tc)

	p.endInputTick()

	renderStart := time.Now()
	p.Render()
	p.stats.renderTime = time.Since(renderStart)
	p.stats.tickTime = time.Since(start)
	p.debugLog(p.stats)

	if err != nil {
		logger.Debug("tick script error", "uuid", err.UUID, "line", err.LineNumber, "msg", err.Message)
		p.emit(PlaybackScriptError, err)
		return err
	}
	p.emit(PlaybackTicked, nil)
	return nil
}

// --- Schedulers ---

// ManualScheduler is a Scheduler driven by explicit calls to Advance. It is
// used for headless playback and tests.
type ManualScheduler struct {
	now     time.Duration
	entries []*manualEntry
	nextID  int
}

type manualEntry struct {
	id       int
	interval time.Duration
	next     time.Duration
	fn       func()
	active   bool
}

// NewManualScheduler creates a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every registers fn to run every interval of advanced time.
func (s *ManualScheduler) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		panic("wick: scheduler interval must be positive")
	}
	s.nextID++
	e := &manualEntry{id: s.nextID, interval: interval, next: s.now + interval, fn: fn, active: true}
	s.entries = append(s.entries, e)
	return func() {
		e.active = false
		s.entries = slices.DeleteFunc(s.entries, func(x *manualEntry) bool { return x == e })
	}
}

// Advance moves time forward by d, firing due callbacks in time order.
// Callbacks may cancel themselves or register new ones.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		var due *manualEntry
		for _, e := range s.entries {
			if e.active && e.next <= target && (due == nil || e.next < due.next) {
				due = e
			}
		}
		if due == nil {
			break
		}
		s.now = due.next
		due.next += due.interval
		due.fn()
	}
	s.now = target
}

// Step fires the earliest registered callback once, moving time to its due
// point. Returns false when nothing is registered.
func (s *ManualScheduler) Step() bool {
	var due *manualEntry
	for _, e := range s.entries {
		if e.active && (due == nil || e.next < due.next) {
			due = e
		}
	}
	if due == nil {
		return false
	}
	s.now = due.next
	due.next += due.interval
	due.fn()
	return true
}

// Active returns the number of registered callbacks.
func (s *ManualScheduler) Active() int {
	return len(s.entries)
}

// Now returns the total time advanced.
func (s *ManualScheduler) Now() time.Duration { return s.now }
