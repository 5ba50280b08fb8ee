package wick

import (
	"fmt"
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultEasing is the easing assigned to new tweens.
const DefaultEasing = "none"

// easings maps easing identifiers to gween curves. The four short names are
// the editor's presets; the rest expose every gween curve by name.
var easings = map[string]ease.TweenFunc{
	"none":   ease.Linear,
	"linear": ease.Linear,
	"in":     ease.InQuad,
	"out":    ease.OutQuad,
	"in-out": ease.InOutQuad,

	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-quint":       ease.InQuint,
	"out-quint":      ease.OutQuint,
	"in-out-quint":   ease.InOutQuint,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
}

// EasingNames returns every accepted easing identifier, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Tween anchors a transformation at a position inside its frame. Position is
// relative to the frame: 1 is the frame's first playhead position. Clips in
// the frame are interpolated between consecutive tweens using the easing of
// the earlier one.
type Tween struct {
	Base

	Position       int
	Transformation Transformation
	// FullRotations adds whole turns to the rotation travelled towards the
	// next tween.
	FullRotations int

	easing string
}

// NewTween creates a tween at the given frame-relative position.
func NewTween(position int, t Transformation, easing string) (*Tween, error) {
	tw := &Tween{Base: newBase(KindTween), Position: position, Transformation: t}
	if err := tw.SetEasing(easing); err != nil {
		return nil, err
	}
	return tw, nil
}

// Easing returns the easing identifier.
func (t *Tween) Easing() string { return t.easing }

// SetEasing sets the easing identifier. An empty name selects DefaultEasing.
func (t *Tween) SetEasing(name string) error {
	if name == "" {
		name = DefaultEasing
	}
	if _, ok := easings[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	t.easing = name
	return nil
}

// Children returns nil; tweens are leaves.
func (t *Tween) Children() []Entity { return nil }

// ParentFrame returns the frame holding this tween, or nil.
func (t *Tween) ParentFrame() *Frame {
	f, _ := t.parent.(*Frame)
	return f
}

// Remove detaches the tween from its frame.
func (t *Tween) Remove() {
	removeFromParent(t)
}

// resolveTweens computes the transformation at the frame-relative position
// rel. tweens must be sorted by Position. Without tweens, static is returned.
func resolveTweens(tweens []*Tween, rel int, static Transformation) Transformation {
	if len(tweens) == 0 {
		return static
	}
	var prev, next *Tween
	for _, tw := range tweens {
		if tw.Position == rel {
			return tw.Transformation
		}
		if tw.Position < rel {
			prev = tw
		} else if next == nil {
			next = tw
		}
	}
	switch {
	case prev != nil && next != nil:
		return interpolate(prev, next, rel)
	case prev != nil:
		return prev.Transformation
	default:
		return next.Transformation
	}
}

// interpolate eases every transformation component from a to b. gween
// computes the eased progress in float32; components are blended in float64
// so large coordinates keep their precision.
func interpolate(a, b *Tween, rel int) Transformation {
	fn := easings[a.easing]
	if fn == nil {
		fn = ease.Linear
	}
	duration := float32(b.Position - a.Position)
	progress, _ := gween.New(0, 1, duration, fn).Set(float32(rel - a.Position))
	t := float64(progress)
	value := func(from, to float64) float64 {
		return from + (to-from)*t
	}
	from, to := a.Transformation, b.Transformation
	return Transformation{
		X:        value(from.X, to.X),
		Y:        value(from.Y, to.Y),
		ScaleX:   value(from.ScaleX, to.ScaleX),
		ScaleY:   value(from.ScaleY, to.ScaleY),
		Rotation: value(from.Rotation, to.Rotation+float64(a.FullRotations)*360),
		Opacity:  value(from.Opacity, to.Opacity),
	}
}
