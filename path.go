package gplot

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector outline: marker shapes in marker-local coordinates,
// glyph outlines, and arc approximations are all expressed as paths.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elements) == 0
}

// Transform applies a transformation matrix to all points in the path.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// Polygon adds a closed polygon through pts.
func (p *Path) Polygon(pts []Point) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}

// Polyline adds an open polyline through pts.
func (p *Path) Polyline(pts []Point) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Circle adds a circle to the path using cubic Bezier curves.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an axis-aligned ellipse to the path.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	ox := rx * k
	oy := ry * k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Arc adds an elliptical arc from angle1 to angle2 (radians,
// counter-clockwise) around (cx, cy). When the path is empty the arc
// starts a new subpath; otherwise a line joins the current point to it.
func (p *Path) Arc(cx, cy, rx, ry, angle1, angle2 float64) {
	const twoPi = 2 * math.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}
	const maxAngle = math.Pi / 2
	n := max(1, int(math.Ceil((angle2-angle1)/maxAngle)))
	step := (angle2 - angle1) / float64(n)

	sin0, cos0 := math.Sincos(angle1)
	x0, y0 := cx+rx*cos0, cy+ry*sin0
	if len(p.elements) == 0 {
		p.MoveTo(x0, y0)
	} else {
		p.LineTo(x0, y0)
	}
	for i := range n {
		a1 := angle1 + float64(i)*step
		p.arcSegment(cx, cy, rx, ry, a1, a1+step)
	}
}

// arcSegment adds a single arc segment of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, rx, ry, a1, a2 float64) {
	t := math.Tan((a2 - a1) / 2)
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*t*t) - 1) / 3

	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	x1, y1 := cx+rx*cos1, cy+ry*sin1
	x2, y2 := cx+rx*cos2, cy+ry*sin2

	p.CubicTo(
		x1-alpha*rx*sin1, y1+alpha*ry*cos1,
		x2+alpha*rx*sin2, y2-alpha*ry*cos2,
		x2, y2,
	)
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	return result
}

// Bounds returns the bounding box of all control and end points.
func (p *Path) Bounds() (xmin, ymin, xmax, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	add := func(pt Point) {
		xmin, xmax = math.Min(xmin, pt.X), math.Max(xmax, pt.X)
		ymin, ymax = math.Min(ymin, pt.Y), math.Max(ymax, pt.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	return xmin, ymin, xmax, ymax
}

// Flatten converts the path into polylines, one per subpath, replacing
// curves with line segments no further than tolerance from the curve.
// The closed flag of each subpath is reported alongside it.
func (p *Path) Flatten(tolerance float64) (subpaths [][]Point, closed []bool) {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	var cur []Point
	var last Point
	flush := func(isClosed bool) {
		if len(cur) > 0 {
			subpaths = append(subpaths, cur)
			closed = append(closed, isClosed)
		}
		cur = nil
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush(false)
			cur = []Point{e.Point}
			last = e.Point
		case LineTo:
			cur = append(cur, e.Point)
			last = e.Point
		case QuadTo:
			cur = flattenQuad(cur, last, e.Control, e.Point, tolerance)
			last = e.Point
		case CubicTo:
			cur = flattenCubic(cur, last, e.Control1, e.Control2, e.Point, tolerance)
			last = e.Point
		case Close:
			start := last
			if len(cur) > 0 {
				start = cur[0]
			}
			flush(true)
			last = start
		}
	}
	flush(false)
	return subpaths, closed
}

func flattenQuad(dst []Point, p0, p1, p2 Point, tol float64) []Point {
	// Subdivision count from the second difference bound.
	dd := p0.Sub(p1.Mul(2)).Add(p2).Length()
	n := max(1, int(math.Ceil(math.Sqrt(dd/(4*tol)))))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		dst = append(dst, Point{
			X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
			Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
		})
	}
	return dst
}

func flattenCubic(dst []Point, p0, p1, p2, p3 Point, tol float64) []Point {
	d1 := p0.Sub(p1.Mul(2)).Add(p2).Length()
	d2 := p1.Sub(p2.Mul(2)).Add(p3).Length()
	dd := math.Max(d1, d2)
	n := max(1, int(math.Ceil(math.Sqrt(3*dd/(4*tol)))))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		dst = append(dst, Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		})
	}
	return dst
}
