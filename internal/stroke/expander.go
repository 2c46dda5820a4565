package stroke

import (
	"math"

	"github.com/gogpu/gplot"
)

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt ends the stroke exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound adds a semicircle at each endpoint.
	LineCapRound
	// LineCapSquare extends the stroke by half its width.
	LineCapSquare
)

// LineJoin specifies the shape of line corners.
type LineJoin int

const (
	// LineJoinMiter extends the outer edges to meet at a point.
	LineJoinMiter LineJoin = iota
	// LineJoinRound rounds the outer corner.
	LineJoinRound
	// LineJoinBevel cuts the outer corner.
	LineJoinBevel
)

// Stroke describes how a polyline is stroked.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStroke returns a 1-unit stroke with butt caps and miter joins.
func DefaultStroke() Stroke {
	return Stroke{Width: 1, Cap: LineCapButt, Join: LineJoinMiter, MiterLimit: 4}
}

// StrokeExpander turns polylines into counter-clockwise polygons.
type StrokeExpander struct {
	style     Stroke
	tolerance float64
}

// NewStrokeExpander creates an expander for style.
func NewStrokeExpander(style Stroke) *StrokeExpander {
	if style.MiterLimit < 1 {
		style.MiterLimit = 4
	}
	return &StrokeExpander{style: style, tolerance: 0.1}
}

// SetTolerance sets the maximum deviation of round joins and caps from
// true arcs.
func (e *StrokeExpander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand strokes pts. A closed polyline is joined back to its start and
// takes no caps.
func (e *StrokeExpander) Expand(pts []gplot.Point, closed bool) [][]gplot.Point {
	hw := e.style.Width / 2
	if hw <= 0 {
		return nil
	}
	pts = dedupe(pts, closed)
	if len(pts) == 1 {
		return e.dot(pts[0], hw)
	}
	if len(pts) < 2 {
		return nil
	}

	var out [][]gplot.Point
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	dir := func(i int) gplot.Point {
		a, b := pts[i%n], pts[(i+1)%n]
		d := b.Sub(a)
		return d.Mul(1 / d.Length())
	}

	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		d := dir(i)
		if !closed && e.style.Cap == LineCapSquare {
			if i == 0 {
				a = a.Sub(d.Mul(hw))
			}
			if i == segs-1 {
				b = b.Add(d.Mul(hw))
			}
		}
		nrm := gplot.Pt(-d.Y, d.X).Mul(hw)
		out = appendCCW(out, []gplot.Point{a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm)})
	}

	// Joins at interior vertices, plus the closing vertex for closed paths.
	first, last := 1, n-1
	if closed {
		first, last = 0, n
	}
	for i := first; i < last; i++ {
		prev := (i - 1 + segs) % segs
		cur := i % segs
		out = e.join(out, pts[i%n], dir(prev), dir(cur), hw)
	}

	if !closed && e.style.Cap == LineCapRound {
		out = appendCCW(out, e.circle(pts[0], hw))
		out = appendCCW(out, e.circle(pts[n-1], hw))
	}
	return out
}

// dot handles a single-point polyline, which only round and square caps
// make visible.
func (e *StrokeExpander) dot(p gplot.Point, hw float64) [][]gplot.Point {
	switch e.style.Cap {
	case LineCapRound:
		return [][]gplot.Point{e.circle(p, hw)}
	case LineCapSquare:
		return [][]gplot.Point{{
			{X: p.X - hw, Y: p.Y - hw}, {X: p.X + hw, Y: p.Y - hw},
			{X: p.X + hw, Y: p.Y + hw}, {X: p.X - hw, Y: p.Y + hw},
		}}
	}
	return nil
}

func (e *StrokeExpander) join(out [][]gplot.Point, p, d0, d1 gplot.Point, hw float64) [][]gplot.Point {
	cross := d0.X*d1.Y - d0.Y*d1.X
	dot := d0.Dot(d1)
	if math.Abs(cross) < 1e-12 && dot > 0 {
		return out
	}
	// The outer side is to the right of a left turn.
	side := -1.0
	if cross < 0 {
		side = 1
	}
	u0 := gplot.Pt(-d0.Y, d0.X).Mul(side)
	u1 := gplot.Pt(-d1.Y, d1.X).Mul(side)
	a := p.Add(u0.Mul(hw))
	b := p.Add(u1.Mul(hw))

	switch e.style.Join {
	case LineJoinRound:
		a0 := math.Atan2(u0.Y, u0.X)
		a1 := math.Atan2(u1.Y, u1.X)
		sweep := a1 - a0
		for sweep > math.Pi {
			sweep -= 2 * math.Pi
		}
		for sweep < -math.Pi {
			sweep += 2 * math.Pi
		}
		steps := e.arcSteps(hw, math.Abs(sweep))
		fan := []gplot.Point{p}
		for k := 0; k <= steps; k++ {
			ang := a0 + sweep*float64(k)/float64(steps)
			s, c := math.Sincos(ang)
			fan = append(fan, gplot.Pt(p.X+hw*c, p.Y+hw*s))
		}
		return appendCCW(out, fan)
	case LineJoinMiter:
		sum := u0.Add(u1)
		l2 := sum.Dot(sum)
		if l2 > 1e-12 && 2/math.Sqrt(l2) <= e.style.MiterLimit {
			m := p.Add(sum.Mul(2 * hw / l2))
			return appendCCW(out, []gplot.Point{p, a, m, b})
		}
	}
	return appendCCW(out, []gplot.Point{p, a, b})
}

func (e *StrokeExpander) arcSteps(r, sweep float64) int {
	if r <= e.tolerance {
		return max(2, int(math.Ceil(sweep/(math.Pi/4))))
	}
	step := 2 * math.Acos(1-e.tolerance/r)
	return max(2, int(math.Ceil(sweep/step)))
}

func (e *StrokeExpander) circle(c gplot.Point, r float64) []gplot.Point {
	n := e.arcSteps(r, 2*math.Pi)
	pts := make([]gplot.Point, n)
	for k := range pts {
		s, co := math.Sincos(2 * math.Pi * float64(k) / float64(n))
		pts[k] = gplot.Pt(c.X+r*co, c.Y+r*s)
	}
	return pts
}

// ExpandPath flattens p and strokes every subpath.
func (e *StrokeExpander) ExpandPath(p *gplot.Path) [][]gplot.Point {
	subs, closed := p.Flatten(e.tolerance)
	var out [][]gplot.Point
	for i, sp := range subs {
		out = append(out, e.Expand(sp, closed[i])...)
	}
	return out
}

// dedupe drops repeated consecutive points, and the duplicate end point
// of a closed polyline.
func dedupe(pts []gplot.Point, closed bool) []gplot.Point {
	out := make([]gplot.Point, 0, len(pts))
	for _, p := range pts {
		if !p.IsFinite() {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// SignedArea returns the shoelace area, positive for counter-clockwise
// polygons.
func SignedArea(poly []gplot.Point) float64 {
	var a float64
	for i := range poly {
		p, q := poly[i], poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func appendCCW(out [][]gplot.Point, poly []gplot.Point) [][]gplot.Point {
	if SignedArea(poly) < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	return append(out, poly)
}
