package wick

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in an automation script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Ticks  int     `json:"ticks,omitempty"`
}

// testScript is the top-level JSON structure for an automation script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// Screenshotter is implemented by views that can capture the canvas. The
// "screenshot" automation step calls it.
type Screenshotter interface {
	Screenshot(label string)
}

// TestRunner sequences injected input events, snapshots and screenshots
// across ticks for headless automation. Attach to a Project via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON automation script:
//
//	{"steps": [
//	  {"action": "press", "key": "arrowright"},
//	  {"action": "wait", "ticks": 3},
//	  {"action": "release", "key": "arrowright"},
//	  {"action": "click", "x": 100, "y": 80},
//	  {"action": "snapshot", "label": "after-click"}
//	]}
//
// Supported actions: press, release, tap, click, drag, wait, snapshot and
// screenshot.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "release", "tap":
			if st.Key == "" {
				return nil, fmt.Errorf("parse test script: step %d: %s needs a key", i, st.Action)
			}
		case "click", "drag", "wait", "snapshot", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the project. Its step method is
// called at the start of every Tick.
func (p *Project) SetTestRunner(runner *TestRunner) {
	p.testRunner = runner
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *TestRunner) step(p *Project) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(p.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		p.InjectKeyPress(st.Key)
	case "release":
		p.InjectKeyRelease(st.Key)
	case "tap":
		p.InjectKeyTap(st.Key)
	case "click":
		p.InjectClick(st.X, st.Y)
	case "drag":
		p.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Ticks)
	case "wait":
		if st.Ticks > 0 {
			r.waitCount = st.Ticks - 1 // this tick counts as one
		}
	case "snapshot":
		if err := p.history.SaveSnapshot(st.Label); err != nil {
			logger.Warn("test runner snapshot failed", "label", st.Label, "err", err)
		}
	case "screenshot":
		if s, ok := p.view.(Screenshotter); ok {
			s.Screenshot(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) == 0 {
		r.done = true
	}
}
