package wick

import (
	"errors"
	"fmt"
)

// Sentinel errors for model violations and expected failures.
var (
	ErrFrameOverlap       = errors.New("frame overlaps an existing frame")
	ErrInvalidRange       = errors.New("invalid frame range")
	ErrPlayheadOutOfRange = errors.New("playhead out of range")
	ErrNotFound           = errors.New("not found")
	ErrRootClip           = errors.New("operation not allowed on the root clip")
	ErrDetached           = errors.New("entity is not attached")
	ErrUnsupportedAsset   = errors.New("unsupported asset type")
	ErrInvalidFramerate   = errors.New("framerate must be greater than zero")
	ErrUnknownEasing      = errors.New("unknown easing")
	ErrNoScheduler        = errors.New("no scheduler configured")
	ErrWrongKind          = errors.New("wrong entity kind")
	ErrNoActiveFrame      = errors.New("no active frame")
)

// FrameOverlapError reports a frame insertion that would share a playhead
// position with an existing frame on the same layer.
type FrameOverlapError struct {
	Layer         string
	Start, End    int
	Existing      string
	ExistingStart int
	ExistingEnd   int
}

func (e *FrameOverlapError) Error() string {
	return fmt.Sprintf("frame [%d,%d] on layer %q overlaps frame %s [%d,%d]",
		e.Start, e.End, e.Layer, e.Existing, e.ExistingStart, e.ExistingEnd)
}

func (e *FrameOverlapError) Is(target error) bool {
	return target == ErrFrameOverlap
}

// PlayheadError reports a playhead position outside [1, length].
type PlayheadError struct {
	Position int
	Length   int
}

func (e *PlayheadError) Error() string {
	return fmt.Sprintf("playhead %d outside [1,%d]", e.Position, e.Length)
}

func (e *PlayheadError) Is(target error) bool {
	return target == ErrPlayheadOutOfRange
}

// ScriptError is raised when a clip or frame script fails. It halts the
// failing clip's subtree for the current tick and is surfaced by
// Project.Tick.
type ScriptError struct {
	UUID       string `json:"uuid"`
	Message    string `json:"message"`
	LineNumber int    `json:"lineNumber"`
}

func (e *ScriptError) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("script error in %s (line %d): %s", e.UUID, e.LineNumber, e.Message)
	}
	return fmt.Sprintf("script error in %s: %s", e.UUID, e.Message)
}

// asScriptError converts a runner error into a ScriptError attributed to
// owner. A ScriptError from the runner keeps its line number.
func asScriptError(err error, owner string) *ScriptError {
	var se *ScriptError
	if errors.As(err, &se) {
		out := *se
		if out.UUID == "" {
			out.UUID = owner
		}
		return &out
	}
	return &ScriptError{UUID: owner, Message: err.Error()}
}
