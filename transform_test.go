package wick

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Matrix) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Transformation.Matrix ---

func TestTransformationMatrixIdentity(t *testing.T) {
	assertMatrix(t, "identity", IdentityTransformation().Matrix(), IdentityMatrix)
}

func TestTransformationMatrixTranslation(t *testing.T) {
	tr := IdentityTransformation()
	tr.X, tr.Y = 10, 20
	assertMatrix(t, "translation", tr.Matrix(), Matrix{1, 0, 0, 1, 10, 20})
}

func TestTransformationMatrixScale(t *testing.T) {
	tr := IdentityTransformation()
	tr.ScaleX, tr.ScaleY = 2, 3
	assertMatrix(t, "scale", tr.Matrix(), Matrix{2, 0, 0, 3, 0, 0})
}

func TestTransformationMatrixRotation90(t *testing.T) {
	tr := IdentityTransformation()
	tr.Rotation = 90
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", tr.Matrix(), Matrix{0, 1, -1, 0, 0, 0})
}

func TestTransformationMatrixScaleThenRotate(t *testing.T) {
	tr := IdentityTransformation()
	tr.ScaleX = 2
	tr.Rotation = 90
	tr.X = 5
	x, y := tr.Matrix().Apply(1, 0)
	// (1,0) scaled to (2,0), rotated to (0,2), translated to (5,2).
	assertNear(t, "x", x, 5)
	assertNear(t, "y", y, 2)
}

// --- Matrix ---

func TestMultiplyAppliesRightFirst(t *testing.T) {
	translate := Matrix{1, 0, 0, 1, 10, 0}
	scale := Matrix{2, 0, 0, 2, 0, 0}
	x, y := translate.Multiply(scale).Apply(1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 2)
}

func TestInvertRoundTrip(t *testing.T) {
	tr := Transformation{X: 30, Y: -12, ScaleX: 1.5, ScaleY: 0.5, Rotation: 33, Opacity: 1}
	m := tr.Matrix()
	assertMatrix(t, "m*inv", m.Multiply(m.Invert()), IdentityMatrix)
}

func TestInvertSingular(t *testing.T) {
	assertMatrix(t, "singular", Matrix{0, 0, 0, 0, 5, 5}.Invert(), IdentityMatrix)
}

func TestTransformRectRotated(t *testing.T) {
	tr := IdentityTransformation()
	tr.Rotation = 90
	r := tr.Matrix().TransformRect(Rect{Width: 10, Height: 4})
	assertNear(t, "x", r.X, -4)
	assertNear(t, "y", r.Y, 0)
	assertNear(t, "w", r.Width, 4)
	assertNear(t, "h", r.Height, 10)
}

func TestDecomposeRoundTrip(t *testing.T) {
	want := Transformation{X: 7, Y: 9, ScaleX: 2, ScaleY: 3, Rotation: 45, Opacity: 1}
	got := want.Matrix().Decompose()
	assertNear(t, "X", got.X, want.X)
	assertNear(t, "Y", got.Y, want.Y)
	assertNear(t, "ScaleX", got.ScaleX, want.ScaleX)
	assertNear(t, "ScaleY", got.ScaleY, want.ScaleY)
	assertNear(t, "Rotation", got.Rotation, want.Rotation)
}

func TestDecomposeMirrored(t *testing.T) {
	got := Matrix{1, 0, 0, -1, 0, 0}.Decompose()
	assertNear(t, "ScaleX", got.ScaleX, 1)
	assertNear(t, "ScaleY", got.ScaleY, -1)
}

// --- Rect ---

func TestRectUnionIgnoresEmpty(t *testing.T) {
	a := Rect{X: 1, Y: 1, Width: 2, Height: 2}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty.Union = %+v", got)
	}
	got := a.Union(Rect{X: 5, Y: -1, Width: 1, Height: 1})
	want := Rect{X: 1, Y: -1, Width: 5, Height: 4}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestRectContainsEdges(t *testing.T) {
	r := Rect{Width: 10, Height: 10}
	if !r.Contains(0, 0) || !r.Contains(10, 10) || r.Contains(10.01, 5) {
		t.Error("Contains edge handling wrong")
	}
}

// --- Color ---

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#fff", "#ffffff"},
		{"#336699", "#336699"},
		{"33669980", "#33669980"},
	}
	for _, tt := range tests {
		c, err := ParseHexColor(tt.in)
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", tt.in, err)
			continue
		}
		if got := c.Hex(); got != tt.want {
			t.Errorf("ParseHexColor(%q).Hex() = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ParseHexColor("#12"); err == nil {
		t.Error("expected error for short color")
	}
	if _, err := ParseHexColor("#zzzzzz"); err == nil {
		t.Error("expected error for non-hex color")
	}
}
