package wick

import "math"

// Transformation is the editable 2D transform of a clip or tween anchor.
// Rotation is in degrees, clockwise.
type Transformation struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
}

// IdentityTransformation returns the transform that leaves content unchanged.
func IdentityTransformation() Transformation {
	return Transformation{ScaleX: 1, ScaleY: 1, Opacity: 1}
}

// Matrix computes the local affine matrix of the transformation.
//
// Composition order:
//
//	Scale -> Rotate -> Translate(X, Y)
func (t Transformation) Matrix() Matrix {
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
	return Matrix{
		cos * t.ScaleX,
		sin * t.ScaleX,
		-sin * t.ScaleY,
		cos * t.ScaleY,
		t.X,
		t.Y,
	}
}

// Matrix is a 2D affine matrix.
//
//	Layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// IdentityMatrix is the identity affine matrix.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// Multiply returns m * c (c is applied first).
func (m Matrix) Multiply(c Matrix) Matrix {
	return Matrix{
		m[0]*c[0] + m[2]*c[1],
		m[1]*c[0] + m[3]*c[1],
		m[0]*c[2] + m[2]*c[3],
		m[1]*c[2] + m[3]*c[3],
		m[0]*c[4] + m[2]*c[5] + m[4],
		m[1]*c[4] + m[3]*c[5] + m[5],
	}
}

// Invert computes the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformRect returns the axis-aligned bounds of r after transformation.
func (m Matrix) TransformRect(r Rect) Rect {
	xs := [4]float64{r.X, r.X + r.Width, r.X, r.X + r.Width}
	ys := [4]float64{r.Y, r.Y, r.Y + r.Height, r.Y + r.Height}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range xs {
		x, y := m.Apply(xs[i], ys[i])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Decompose splits m back into position, scale and rotation, assuming m
// carries no skew. Opacity is left at 1.
func (m Matrix) Decompose() Transformation {
	sx := math.Hypot(m[0], m[1])
	rot := math.Atan2(m[1], m[0])
	var sy float64
	if sx != 0 {
		sy = (m[0]*m[3] - m[2]*m[1]) / sx
	}
	return Transformation{
		X:        m[4],
		Y:        m[5],
		ScaleX:   sx,
		ScaleY:   sy,
		Rotation: rot * 180 / math.Pi,
		Opacity:  1,
	}
}
