package backend

import (
	"math"
	"strings"

	"github.com/gogpu/gplot"
)

// ArcPath returns the outline DrawArc strokes: the elliptical arc centered
// at (x, y) with full width w and height h, from theta1 to theta2 degrees,
// rotated by rotation degrees. A sweep of 360 degrees or more yields a
// closed ellipse.
func ArcPath(x, y, w, h, theta1, theta2, rotation float64) (p *gplot.Path, closed bool) {
	p = gplot.NewPath()
	rx, ry := w/2, h/2
	if theta2-theta1 >= 360 {
		p.Ellipse(0, 0, rx, ry)
		closed = true
	} else {
		p.Arc(0, 0, rx, ry, theta1*math.Pi/180, theta2*math.Pi/180)
	}
	m := gplot.Translate(x, y).Multiply(gplot.Rotate(rotation * math.Pi / 180))
	return p.Transform(m), closed
}

// HatchPath returns the hatch lines of pattern covering the rectangle
// (x0, y0)-(x1, y1). Repeating a character doubles its density; one
// character draws six lines per inch.
//
// Patterns are built from / \ | - + x and the dot-like . o O *.
func HatchPath(pattern string, x0, y0, x1, y1, unitsPerInch float64) *gplot.Path {
	p := gplot.NewPath()
	if pattern == "" || unitsPerInch <= 0 {
		return p
	}
	density := func(chars string) int {
		n := 0
		for _, c := range chars {
			n += strings.Count(pattern, string(c))
		}
		return n
	}
	w, h := x1-x0, y1-y0
	if n := density("-+"); n > 0 {
		step := unitsPerInch / float64(6*n)
		for y := math.Ceil(y0/step) * step; y <= y1; y += step {
			p.MoveTo(x0, y)
			p.LineTo(x1, y)
		}
	}
	if n := density("|+"); n > 0 {
		step := unitsPerInch / float64(6*n)
		for x := math.Ceil(x0/step) * step; x <= x1; x += step {
			p.MoveTo(x, y0)
			p.LineTo(x, y1)
		}
	}
	// Diagonals run across the whole rectangle: parameterize by the
	// intercept along x, from -h to w.
	if n := density("/x"); n > 0 {
		step := unitsPerInch / float64(6*n)
		for c := -h; c <= w; c += step {
			p.MoveTo(x0+c, y0)
			p.LineTo(x0+c+h, y1)
		}
	}
	if n := density("\\x"); n > 0 {
		step := unitsPerInch / float64(6*n)
		for c := 0.0; c <= w+h; c += step {
			p.MoveTo(x0+c, y0)
			p.LineTo(x0+c-h, y1)
		}
	}
	if n := density(".oO*"); n > 0 {
		step := unitsPerInch / float64(3*n)
		r := step / 6
		if strings.ContainsAny(pattern, "oO") {
			r = step / 4
		}
		for y := y0 + step/2; y <= y1; y += step {
			for x := x0 + step/2; x <= x1; x += step {
				p.Circle(x, y, r)
			}
		}
	}
	return p
}

// MarkerOffsets maps (xs[i], ys[i]) through trans, or returns them as-is
// when trans is nil, dropping non-finite results.
func MarkerOffsets(xs, ys []float64, trans interface {
	NumerixXY(xs, ys []float64) ([]float64, []float64)
}) []gplot.Point {
	if trans != nil {
		xs, ys = trans.NumerixXY(xs, ys)
	}
	out := make([]gplot.Point, 0, len(xs))
	for i := range min(len(xs), len(ys)) {
		p := gplot.Pt(xs[i], ys[i])
		if p.IsFinite() {
			out = append(out, p)
		}
	}
	return out
}

// SplitFinite breaks a polyline at non-finite vertices.
func SplitFinite(xs, ys []float64) [][]gplot.Point {
	var out [][]gplot.Point
	var cur []gplot.Point
	for i := range min(len(xs), len(ys)) {
		p := gplot.Pt(xs[i], ys[i])
		if !p.IsFinite() {
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
