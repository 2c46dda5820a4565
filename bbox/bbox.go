package bbox

import (
	"fmt"
	"math"

	"github.com/gogpu/gplot"
)

// Bbox is an axis-aligned box stored as lower-left (x0, y0) and
// upper-right (x1, y1) scalars. A box may be inverted (x1 < x0) when it
// describes a reversed view.
type Bbox struct {
	x0, y0, x1, y1 Scalar
}

// FromExtents returns a box over fresh cells.
func FromExtents(x0, y0, x1, y1 float64) *Bbox {
	return &Bbox{NewValue(x0), NewValue(y0), NewValue(x1), NewValue(y1)}
}

// FromBounds returns a box with lower-left (l, b), width w and height h.
func FromBounds(l, b, w, h float64) *Bbox {
	return FromExtents(l, b, l+w, b+h)
}

// Lazy returns a box over arbitrary scalars, typically expressions derived
// from another box.
func Lazy(x0, y0, x1, y1 Scalar) *Bbox {
	return &Bbox{x0, y0, x1, y1}
}

// UnitBbox returns the box (0, 0)-(1, 1).
func UnitBbox() *Bbox {
	return FromExtents(0, 0, 1, 1)
}

// String implements fmt.Stringer.
func (b *Bbox) String() string {
	return fmt.Sprintf("Bbox(%g, %g, %g, %g)", b.x0.Get(), b.y0.Get(), b.x1.Get(), b.y1.Get())
}

// Cells returns the four endpoint scalars.
func (b *Bbox) Cells() (x0, y0, x1, y1 Scalar) { return b.x0, b.y0, b.x1, b.y1 }

// Extents returns x0, y0, x1, y1.
func (b *Bbox) Extents() (x0, y0, x1, y1 float64) {
	return b.x0.Get(), b.y0.Get(), b.x1.Get(), b.y1.Get()
}

// SetExtents writes all four endpoints.
func (b *Bbox) SetExtents(x0, y0, x1, y1 float64) {
	set(b.x0, x0)
	set(b.y0, y0)
	set(b.x1, x1)
	set(b.y1, y1)
}

// Bounds returns left, bottom, width and height.
func (b *Bbox) Bounds() (l, bt, w, h float64) {
	x0, y0, x1, y1 := b.Extents()
	return x0, y0, x1 - x0, y1 - y0
}

// SetBounds writes the box from left, bottom, width and height.
func (b *Bbox) SetBounds(l, bt, w, h float64) {
	b.SetExtents(l, bt, l+w, bt+h)
}

// Width returns x1-x0.
func (b *Bbox) Width() float64 { return b.x1.Get() - b.x0.Get() }

// Height returns y1-y0.
func (b *Bbox) Height() float64 { return b.y1.Get() - b.y0.Get() }

// XMin returns the smaller x endpoint.
func (b *Bbox) XMin() float64 { return math.Min(b.x0.Get(), b.x1.Get()) }

// XMax returns the larger x endpoint.
func (b *Bbox) XMax() float64 { return math.Max(b.x0.Get(), b.x1.Get()) }

// YMin returns the smaller y endpoint.
func (b *Bbox) YMin() float64 { return math.Min(b.y0.Get(), b.y1.Get()) }

// YMax returns the larger y endpoint.
func (b *Bbox) YMax() float64 { return math.Max(b.y0.Get(), b.y1.Get()) }

// IntervalX returns the x interval sharing this box's cells.
func (b *Bbox) IntervalX() *Interval { return &Interval{lo: b.x0, hi: b.x1} }

// IntervalY returns the y interval sharing this box's cells.
func (b *Bbox) IntervalY() *Interval { return &Interval{lo: b.y0, hi: b.y1} }

// ShareX rebinds the x endpoints to o's cells.
func (b *Bbox) ShareX(o *Bbox) {
	b.x0, b.x1 = o.x0, o.x1
}

// ShareY rebinds the y endpoints to o's cells.
func (b *Bbox) ShareY(o *Bbox) {
	b.y0, b.y1 = o.y0, o.y1
}

// Contains reports whether (x, y) lies inside the box (half-open).
func (b *Bbox) Contains(x, y float64) bool {
	return b.IntervalX().Contains(x) && b.IntervalY().Contains(y)
}

// ContainsPoint is Contains for a point.
func (b *Bbox) ContainsPoint(p gplot.Point) bool { return b.Contains(p.X, p.Y) }

// CountContains returns how many of pts lie inside the box.
func (b *Bbox) CountContains(pts []gplot.Point) int {
	n := 0
	for _, p := range pts {
		if b.Contains(p.X, p.Y) {
			n++
		}
	}
	return n
}

// OverlapsX reports whether the x ranges of the boxes intersect.
func (b *Bbox) OverlapsX(o *Bbox) bool {
	return b.XMin() < o.XMax() && o.XMin() < b.XMax()
}

// OverlapsY reports whether the y ranges of the boxes intersect.
func (b *Bbox) OverlapsY(o *Bbox) bool {
	return b.YMin() < o.YMax() && o.YMin() < b.YMax()
}

// Overlaps reports whether the boxes share interior area.
func (b *Bbox) Overlaps(o *Bbox) bool {
	return b.OverlapsX(o) && b.OverlapsY(o)
}

// DeepCopy returns a box with fresh cells holding the current extents.
func (b *Bbox) DeepCopy() *Bbox {
	return FromExtents(b.Extents())
}

// Scale scales the width and height by sx and sy about the center.
func (b *Bbox) Scale(sx, sy float64) {
	x0, y0, x1, y1 := b.Extents()
	cx, cy := (x0+x1)/2, (y0+y1)/2
	hw, hh := (x1-x0)/2*sx, (y1-y0)/2*sy
	b.SetExtents(cx-hw, cy-hh, cx+hw, cy+hh)
}

// Update extends the box to include every finite (xs[i], ys[i]) pair.
// With ignore set the existing extents are discarded first.
func (b *Bbox) Update(xs, ys []float64, ignore bool) {
	n := min(len(xs), len(ys))
	fx := make([]float64, 0, n)
	fy := make([]float64, 0, n)
	for i := range n {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		fx = append(fx, x)
		fy = append(fy, y)
	}
	b.IntervalX().Update(fx, ignore)
	b.IntervalY().Update(fy, ignore)
}

// UpdatePoints is Update for a point slice.
func (b *Bbox) UpdatePoints(pts []gplot.Point, ignore bool) {
	xs, ys := gplot.Unzip(pts)
	b.Update(xs, ys, ignore)
}

// Corners returns the four corners counter-clockwise from lower-left.
func (b *Bbox) Corners() [4]gplot.Point {
	x0, y0, x1, y1 := b.Extents()
	return [4]gplot.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// Padded returns a new box grown by pad on every side.
func (b *Bbox) Padded(pad float64) *Bbox {
	return FromExtents(b.XMin()-pad, b.YMin()-pad, b.XMax()+pad, b.YMax()+pad)
}

// BboxAll returns a fresh box covering every box in boxes. It returns a
// unit box when boxes is empty.
func BboxAll(boxes []*Bbox) *Bbox {
	if len(boxes) == 0 {
		return UnitBbox()
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, b := range boxes {
		x0 = math.Min(x0, b.XMin())
		y0 = math.Min(y0, b.YMin())
		x1 = math.Max(x1, b.XMax())
		y1 = math.Max(y1, b.YMax())
	}
	return FromExtents(x0, y0, x1, y1)
}

// Intersection returns the overlap of a and b, or false when they are
// disjoint.
func Intersection(a, b *Bbox) (*Bbox, bool) {
	x0 := math.Max(a.XMin(), b.XMin())
	y0 := math.Max(a.YMin(), b.YMin())
	x1 := math.Min(a.XMax(), b.XMax())
	y1 := math.Min(a.YMax(), b.YMax())
	if x1 < x0 || y1 < y0 {
		return nil, false
	}
	return FromExtents(x0, y0, x1, y1), true
}
