package wick

import (
	"slices"
	"testing"
	"time"
)

func TestManualSchedulerAdvance(t *testing.T) {
	s := NewManualScheduler()
	var fired []string
	s.Every(10*time.Millisecond, func() { fired = append(fired, "a") })
	s.Every(25*time.Millisecond, func() { fired = append(fired, "b") })

	s.Advance(30 * time.Millisecond)
	want := []string{"a", "a", "b", "a"}
	if !slices.Equal(fired, want) {
		t.Errorf("fired = %v, want %v", fired, want)
	}
	if s.Now() != 30*time.Millisecond {
		t.Errorf("Now = %v", s.Now())
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	var n int
	var cancel func()
	cancel = s.Every(time.Millisecond, func() {
		n++
		if n == 3 {
			cancel()
		}
	})
	s.Advance(time.Second)
	if n != 3 {
		t.Errorf("callback ran %d times, want 3", n)
	}
	cancel()
	if s.Active() != 0 {
		t.Errorf("Active = %d after cancel", s.Active())
	}
}

func TestManualSchedulerStep(t *testing.T) {
	s := NewManualScheduler()
	if s.Step() {
		t.Error("Step with nothing registered")
	}
	var n int
	s.Every(time.Second, func() { n++ })
	s.Step()
	s.Step()
	if n != 2 || s.Now() != 2*time.Second {
		t.Errorf("n = %d now = %v", n, s.Now())
	}
}

func TestManualSchedulerRejectsZeroInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero interval")
		}
	}()
	NewManualScheduler().Every(0, func() {})
}

func TestTickWithoutPlay(t *testing.T) {
	p := NewProject()
	if err := p.ActiveFrame().SetRange(1, 3); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := p.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.ActiveTimeline().Playhead(); got != 1 {
		t.Errorf("Playhead = %d, want 1 after wrapping", got)
	}
}
