package wick

import (
	"fmt"
	"time"
)

// globalDebug mirrors the most recently set Project debug flag so that
// entity-level tree operations can run structural checks without a project
// reference.
var globalDebug bool

// tickStats holds per-tick timing and work counters.
// Only logged when the project is in debug mode.
type tickStats struct {
	tickTime    time.Duration
	scriptTime  time.Duration
	renderTime  time.Duration
	clipsTicked int
	scriptsRun  int
}

// debugLog logs the stats of the last tick at debug level.
func (p *Project) debugLog(stats tickStats) {
	if !p.debug {
		return
	}
	logger.Debug("tick",
		"total", stats.tickTime,
		"scripts", stats.scriptTime,
		"render", stats.renderTime,
		"clips", stats.clipsTicked,
		"scriptsRun", stats.scriptsRun,
		"playhead", p.Focus().timeline.playhead,
		"cache", p.cache.Len(),
	)
}

// debugMaxTreeDepth is the entity depth above which a warning is logged.
const debugMaxTreeDepth = 64

// debugCheckTreeDepth warns if e sits deeper than debugMaxTreeDepth.
func debugCheckTreeDepth(e Entity) {
	depth := 0
	for p := e; p != nil; p = p.Parent() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("entity tree too deep",
			"depth", depth, "threshold", debugMaxTreeDepth, "entity", describe(e))
	}
}

// debugCheckFrameCount warns if a layer holds more than debugMaxFrameCount
// frames; FrameAt scans linearly.
const debugMaxFrameCount = 1000

func debugCheckFrameCount(l *Layer) {
	if len(l.frames) > debugMaxFrameCount {
		logger.Warn("layer has many frames",
			"layer", l.Name, "frames", len(l.frames), "threshold", debugMaxFrameCount)
	}
}

// describe formats e for log and panic messages.
func describe(e Entity) string {
	switch v := e.(type) {
	case *Clip:
		if v.Identifier != "" {
			return fmt.Sprintf("Clip %q (%s)", v.Identifier, v.uuid)
		}
	case *Layer:
		return fmt.Sprintf("Layer %q (%s)", v.Name, v.uuid)
	case *Asset:
		return fmt.Sprintf("%s %q (%s)", v.kind, v.Name, v.uuid)
	}
	return fmt.Sprintf("%s (%s)", e.Kind(), e.UUID())
}
