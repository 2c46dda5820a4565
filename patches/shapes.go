package patches

import (
	"math"
	"slices"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/transform"
)

// Rectangle is an axis-aligned box anchored at its lower-left corner.
type Rectangle struct {
	Patch
	x, y, w, h float64
}

// NewRectangle returns a rectangle with lower-left (x, y). Negative sizes
// extend left or down.
func NewRectangle(x, y, w, h float64) *Rectangle {
	r := &Rectangle{x: x, y: y, w: w, h: h}
	r.init(r)
	return r
}

// XY returns the anchor corner.
func (r *Rectangle) XY() (float64, float64) { return r.x, r.y }

// SetXY moves the anchor corner.
func (r *Rectangle) SetXY(x, y float64) {
	r.x, r.y = x, y
	r.PChanged()
}

// Width returns the signed width.
func (r *Rectangle) Width() float64 { return r.w }

// SetWidth sets the width.
func (r *Rectangle) SetWidth(w float64) {
	r.w = w
	r.PChanged()
}

// Height returns the signed height.
func (r *Rectangle) Height() float64 { return r.h }

// SetHeight sets the height.
func (r *Rectangle) SetHeight(h float64) {
	r.h = h
	r.PChanged()
}

// SetBounds sets the anchor and size together.
func (r *Rectangle) SetBounds(x, y, w, h float64) {
	r.x, r.y, r.w, r.h = x, y, w, h
	r.PChanged()
}

// Verts implements Shape.
func (r *Rectangle) Verts() []gplot.Point {
	return []gplot.Point{
		{X: r.x, Y: r.y}, {X: r.x + r.w, Y: r.y},
		{X: r.x + r.w, Y: r.y + r.h}, {X: r.x, Y: r.y + r.h},
	}
}

// DataBounds implements Shape.
func (r *Rectangle) DataBounds() (x0, y0, x1, y1 float64) {
	return math.Min(r.x, r.x+r.w), math.Min(r.y, r.y+r.h),
		math.Max(r.x, r.x+r.w), math.Max(r.y, r.y+r.h)
}

// Polygon is a closed polygon through arbitrary vertices.
type Polygon struct {
	Patch
	xy []gplot.Point
}

// NewPolygon returns a polygon through xy. The slice is copied.
func NewPolygon(xy []gplot.Point) *Polygon {
	p := &Polygon{xy: slices.Clone(xy)}
	p.init(p)
	return p
}

// SetXY replaces the vertices.
func (p *Polygon) SetXY(xy []gplot.Point) {
	p.xy = slices.Clone(xy)
	p.PChanged()
}

// Verts implements Shape.
func (p *Polygon) Verts() []gplot.Point { return p.xy }

// DataBounds implements Shape.
func (p *Polygon) DataBounds() (x0, y0, x1, y1 float64) { return pointBounds(p.xy) }

func pointBounds(pts []gplot.Point) (x0, y0, x1, y1 float64) {
	x0, y0 = math.Inf(1), math.Inf(1)
	x1, y1 = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		x0, x1 = math.Min(x0, p.X), math.Max(x1, p.X)
		y0, y1 = math.Min(y0, p.Y), math.Max(y1, p.Y)
	}
	return x0, y0, x1, y1
}

// RegularPolygon has n vertices on a circle, the first at orientation
// radians from the +y axis.
type RegularPolygon struct {
	Patch
	cx, cy      float64
	n           int
	radius      float64
	orientation float64
}

// NewRegularPolygon returns a regular polygon centered at (cx, cy).
func NewRegularPolygon(cx, cy float64, n int, radius, orientation float64) *RegularPolygon {
	p := &RegularPolygon{cx: cx, cy: cy, n: max(n, 3), radius: radius, orientation: orientation}
	p.init(p)
	return p
}

// Verts implements Shape.
func (p *RegularPolygon) Verts() []gplot.Point {
	return RegularVerts(p.cx, p.cy, p.n, p.radius, p.orientation)
}

// RegularVerts returns n points on the circle of radius r around
// (cx, cy), the first at orientation radians from the +y axis.
func RegularVerts(cx, cy float64, n int, r, orientation float64) []gplot.Point {
	pts := make([]gplot.Point, n)
	for i := range pts {
		s, c := math.Sincos(math.Pi/2 + orientation + 2*math.Pi*float64(i)/float64(n))
		pts[i] = gplot.Pt(cx+r*c, cy+r*s)
	}
	return pts
}

// DataBounds implements Shape. It returns the circumscribed box.
func (p *RegularPolygon) DataBounds() (x0, y0, x1, y1 float64) {
	return p.cx - p.radius, p.cy - p.radius, p.cx + p.radius, p.cy + p.radius
}

// Ellipse is an ellipse with full width w and height h, rotated by angle
// degrees counter-clockwise.
type Ellipse struct {
	Patch
	cx, cy, w, h, angle float64
}

// NewEllipse returns an ellipse centered at (cx, cy).
func NewEllipse(cx, cy, w, h, angle float64) *Ellipse {
	e := &Ellipse{cx: cx, cy: cy, w: w, h: h, angle: angle}
	e.init(e)
	return e
}

// Center returns the center.
func (e *Ellipse) Center() (float64, float64) { return e.cx, e.cy }

// SetCenter moves the center.
func (e *Ellipse) SetCenter(x, y float64) {
	e.cx, e.cy = x, y
	e.PChanged()
}

// Verts implements Shape with a 72-gon.
func (e *Ellipse) Verts() []gplot.Point {
	const n = 72
	rot := gplot.Translate(e.cx, e.cy).Multiply(gplot.Rotate(e.angle * math.Pi / 180))
	pts := make([]gplot.Point, n)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / n)
		pts[i] = rot.TransformPoint(gplot.Pt(e.w/2*c, e.h/2*s))
	}
	return pts
}

// DataBounds implements Shape.
func (e *Ellipse) DataBounds() (x0, y0, x1, y1 float64) {
	s, c := math.Sincos(e.angle * math.Pi / 180)
	a, b := e.w/2, e.h/2
	ex := math.Hypot(a*c, b*s)
	ey := math.Hypot(a*s, b*c)
	return e.cx - ex, e.cy - ey, e.cx + ex, e.cy + ey
}

// drawArc emits one DrawArc when the transform maps the ellipse onto an
// ellipse with the same rotation: an affine map that is uniform or an
// unrotated ellipse.
func (e *Ellipse) drawArc(r backend.Renderer, gc *backend.GraphicsContext, face *colors.RGBA, t transform.Transform) bool {
	sep, ok := t.(*transform.Separable)
	if !ok {
		return false
	}
	m, ok := sep.Affine()
	if !ok {
		return false
	}
	sx, sy := m.A, m.E
	rot := e.angle
	if rot != 0 && math.Abs(math.Abs(sx)-math.Abs(sy)) > 1e-9*math.Max(math.Abs(sx), math.Abs(sy)) {
		return false
	}
	if sx*sy < 0 {
		rot = -rot
	}
	x, y := m.TransformXY(e.cx, e.cy)
	r.DrawArc(gc, face, x, y, e.w*math.Abs(sx), e.h*math.Abs(sy), 0, 360, rot)
	return true
}

// Circle is an ellipse with equal axes.
type Circle struct {
	Ellipse
}

// NewCircle returns a circle of the given radius centered at (cx, cy).
func NewCircle(cx, cy, radius float64) *Circle {
	c := &Circle{Ellipse{cx: cx, cy: cy, w: 2 * radius, h: 2 * radius}}
	c.init(c)
	return c
}

// Radius returns the radius.
func (c *Circle) Radius() float64 { return c.w / 2 }

// SetRadius sets the radius.
func (c *Circle) SetRadius(r float64) {
	c.w, c.h = 2*r, 2*r
	c.PChanged()
}

// Wedge is a circular sector from theta1 to theta2 degrees.
type Wedge struct {
	Patch
	cx, cy, r      float64
	theta1, theta2 float64
}

// NewWedge returns a wedge of radius r centered at (cx, cy).
func NewWedge(cx, cy, r, theta1, theta2 float64) *Wedge {
	w := &Wedge{cx: cx, cy: cy, r: r, theta1: theta1, theta2: theta2}
	w.init(w)
	return w
}

// Theta returns the start and end angles in degrees.
func (w *Wedge) Theta() (float64, float64) { return w.theta1, w.theta2 }

// Verts implements Shape: the center followed by the arc.
func (w *Wedge) Verts() []gplot.Point {
	sweep := w.theta2 - w.theta1
	for sweep < 0 {
		sweep += 360
	}
	n := max(2, int(math.Ceil(sweep/2))+1)
	pts := make([]gplot.Point, 0, n+1)
	if sweep < 360 {
		pts = append(pts, gplot.Pt(w.cx, w.cy))
	}
	for i := range n {
		a := (w.theta1 + sweep*float64(i)/float64(n-1)) * math.Pi / 180
		s, c := math.Sincos(a)
		pts = append(pts, gplot.Pt(w.cx+w.r*c, w.cy+w.r*s))
	}
	return pts
}

// DataBounds implements Shape. It returns the box of the full circle.
func (w *Wedge) DataBounds() (x0, y0, x1, y1 float64) {
	return w.cx - w.r, w.cy - w.r, w.cx + w.r, w.cy + w.r
}

// Arrow is a straight arrow from (x, y) to (x+dx, y+dy).
type Arrow struct {
	Patch
	x, y, dx, dy, width float64
}

// arrowShape is the unit arrow along +x with unit width.
var arrowShape = []gplot.Point{
	{X: 0, Y: 0.1}, {X: 0, Y: -0.1}, {X: 0.8, Y: -0.1}, {X: 0.8, Y: -0.3},
	{X: 1, Y: 0}, {X: 0.8, Y: 0.3}, {X: 0.8, Y: 0.1},
}

// NewArrow returns an arrow whose head is width wide.
func NewArrow(x, y, dx, dy, width float64) *Arrow {
	a := &Arrow{x: x, y: y, dx: dx, dy: dy, width: width}
	a.init(a)
	return a
}

// Verts implements Shape.
func (a *Arrow) Verts() []gplot.Point {
	l := math.Hypot(a.dx, a.dy)
	if l == 0 {
		l = 1e-9
	}
	m := gplot.Translate(a.x, a.y).
		Multiply(gplot.Rotate(math.Atan2(a.dy, a.dx))).
		Multiply(gplot.Scale(l, a.width))
	pts := make([]gplot.Point, len(arrowShape))
	for i, p := range arrowShape {
		pts[i] = m.TransformPoint(p)
	}
	return pts
}

// DataBounds implements Shape.
func (a *Arrow) DataBounds() (x0, y0, x1, y1 float64) { return pointBounds(a.Verts()) }
