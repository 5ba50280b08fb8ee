package wick

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Colors serialize as "#rrggbb" or "#rrggbbaa" hex strings.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default project background.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default path fill.
var ColorBlack = Color{0, 0, 0, 1}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: invalid length", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Hex returns the color as "#rrggbb", or "#rrggbbaa" when not fully opaque.
func (c Color) Hex() string {
	r, g, b, a := channel(c.R), channel(c.G), channel(c.B), channel(c.A)
	if a == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// RGBA converts to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: channel(c.R * c.A),
		G: channel(c.G * c.A),
		B: channel(c.B * c.A),
		A: channel(c.A),
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Kind distinguishes the closed set of entity types.
type Kind uint8

const (
	KindProject    Kind = iota // root aggregate
	KindClip                   // symbol instance owning a timeline
	KindTimeline               // ordered layers with a playhead
	KindLayer                  // non-overlapping frames
	KindFrame                  // contiguous playhead range holding content
	KindPath                   // vector geometry
	KindTween                  // transformation anchor
	KindImageAsset             // imported image
	KindSoundAsset             // imported sound
)

var kindNames = [...]string{
	KindProject:    "Project",
	KindClip:       "Clip",
	KindTimeline:   "Timeline",
	KindLayer:      "Layer",
	KindFrame:      "Frame",
	KindPath:       "Path",
	KindTween:      "Tween",
	KindImageAsset: "ImageAsset",
	KindSoundAsset: "SoundAsset",
}

// String returns the classname used in serialized records.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind maps a classname back to its Kind.
func ParseKind(classname string) (Kind, bool) {
	for k, name := range kindNames {
		if name == classname {
			return Kind(k), true
		}
	}
	return 0, false
}

// RenderMode selects how the view draws the project.
type RenderMode uint8

const (
	RenderModeEdit RenderMode = iota // full fidelity with editor overlays
	RenderModePlay                   // fast path used during playback
)

func (m RenderMode) String() string {
	if m == RenderModePlay {
		return "play"
	}
	return "edit"
}

// Script event names understood by clips and frames.
const (
	ScriptLoad        = "load"
	ScriptTick        = "tick"
	ScriptKeyPressed  = "keypressed"
	ScriptKeyDown     = "keydown"
	ScriptKeyReleased = "keyreleased"
	ScriptMouseDown   = "mousedown"
	ScriptMouseUp     = "mouseup"
	ScriptMouseClick  = "mouseclick"
	ScriptMouseHover  = "mousehover"
)

// PlaybackEventType identifies a playback lifecycle event.
type PlaybackEventType uint8

const (
	PlaybackStarted     PlaybackEventType = iota // Play scheduled the tick loop
	PlaybackStopped                              // Stop cancelled the loop and restored state
	PlaybackTicked                               // a tick completed without error
	PlaybackScriptError                          // a tick produced a script error
)
