package gplot

import "math"

// Matrix is a 2-D affine map stored row-major as
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// It is the frozen form of a separable transform and places marker and
// glyph outlines on the canvas.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity map.
func Identity() Matrix { return Matrix{A: 1, E: 1} }

// Translate returns a shift by (x, y).
func Translate(x, y float64) Matrix { return Matrix{A: 1, C: x, E: 1, F: y} }

// Scale returns a per-axis scaling.
func Scale(sx, sy float64) Matrix { return Matrix{A: sx, E: sy} }

// Rotate returns a counter-clockwise rotation by angle radians.
func Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: c, B: -s, D: s, E: c}
}

// Multiply returns m∘n: n is applied first.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// TransformXY maps one coordinate pair.
func (m Matrix) TransformXY(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// TransformPoint maps p.
func (m Matrix) TransformPoint(p Point) Point {
	x, y := m.TransformXY(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Invert returns the inverse map; ok is false when m is singular.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.E - m.B*m.D
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity(), false
	}
	k := 1 / det
	return Matrix{
		A: m.E * k,
		B: -m.B * k,
		C: (m.B*m.F - m.C*m.E) * k,
		D: -m.D * k,
		E: m.A * k,
		F: (m.C*m.D - m.A*m.F) * k,
	}, true
}

// IsIdentity reports whether m maps every point to itself.
func (m Matrix) IsIdentity() bool { return m == Identity() }
