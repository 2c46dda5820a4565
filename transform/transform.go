package transform

import (
	"fmt"
	"math"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
)

// Transform is a 2D coordinate mapping.
type Transform interface {
	// XY maps a single point.
	XY(x, y float64) (float64, float64)
	// InverseXY maps a device point back to the source space.
	InverseXY(x, y float64) (float64, float64, error)
	// NumerixXY maps parallel coordinate slices.
	NumerixXY(xs, ys []float64) ([]float64, []float64)
	// SeqXYTups maps a sequence of points.
	SeqXYTups(pts []gplot.Point) []gplot.Point
	// Freeze snapshots the lazy endpoints for a draw pass.
	Freeze() error
	// Thaw releases a Freeze.
	Thaw()
	// IsSeparable reports whether x and y map independently.
	IsSeparable() bool
}

const (
	axisX = 0
	axisY = 1
)

// pipeline maps one coordinate through fn and then linearly from the
// source interval onto the destination interval.
type pipeline struct {
	src, dst *bbox.Bbox
	axis     int
	fn       *Func

	frozen int
	a, b   float64
}

func (p *pipeline) interval(bb *bbox.Bbox) (lo, hi float64) {
	if p.axis == axisX {
		return bb.IntervalX().Bounds()
	}
	return bb.IntervalY().Bounds()
}

// coeffs returns (a, b) such that out = a*fn(in) + b.
func (p *pipeline) coeffs() (a, b float64) {
	if p.frozen > 0 {
		return p.a, p.b
	}
	slo, shi := p.interval(p.src)
	dlo, dhi := p.interval(p.dst)
	flo, fhi := p.fn.Forward(slo), p.fn.Forward(shi)
	a = (dhi - dlo) / (fhi - flo)
	return a, dlo - a*flo
}

func (p *pipeline) forward(v float64) float64 {
	a, b := p.coeffs()
	return a*p.fn.Forward(v) + b
}

func (p *pipeline) inverse(v float64) (float64, error) {
	slo, shi := p.interval(p.src)
	dlo, dhi := p.interval(p.dst)
	if slo == shi || dlo == dhi {
		return 0, gplot.ErrDegenerateInterval
	}
	a, b := p.coeffs()
	if a == 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, gplot.ErrDegenerateInterval
	}
	return p.fn.Inverse((v - b) / a), nil
}

func (p *pipeline) freeze() error {
	if p.frozen > 0 {
		p.frozen++
		return nil
	}
	if p.fn.IsLog() {
		slo, shi := p.interval(p.src)
		if slo <= 0 || shi <= 0 {
			return fmt.Errorf("%w: source interval (%g, %g)", gplot.ErrInvalidRangeForLog, slo, shi)
		}
	}
	p.a, p.b = p.coeffs()
	p.frozen = 1
	return nil
}

func (p *pipeline) thaw() {
	if p.frozen > 0 {
		p.frozen--
	}
}

// Separable is a transform whose x and y legs are independent pipelines.
// A nil leg is the identity. An optional offset, expressed in the space of
// an offset transform, is added after mapping.
type Separable struct {
	x, y *pipeline

	offX, offY float64
	offTrans   Transform
}

// NewSeparable maps src onto dst, applying fx and fy first. Nil funcs are
// the identity.
func NewSeparable(src, dst *bbox.Bbox, fx, fy *Func) *Separable {
	if fx == nil {
		fx = NewFunc(IdentityFunc)
	}
	if fy == nil {
		fy = NewFunc(IdentityFunc)
	}
	return &Separable{
		x: &pipeline{src: src, dst: dst, axis: axisX, fn: fx},
		y: &pipeline{src: src, dst: dst, axis: axisY, fn: fy},
	}
}

// BboxTransform is the linear map from src onto dst.
func BboxTransform(src, dst *bbox.Bbox) *Separable {
	return NewSeparable(src, dst, nil, nil)
}

// Identity returns a transform that leaves coordinates unchanged.
func Identity() *Separable { return &Separable{} }

// ScaleTransform scales by the lazy factors sx and sy.
func ScaleTransform(sx, sy bbox.Scalar) *Separable {
	return BboxTransform(bbox.UnitBbox(), bbox.Lazy(bbox.Const(0), bbox.Const(0), sx, sy))
}

// Blend returns a transform using tx's x pipeline and ty's y pipeline.
// The pipelines are shared, not copied.
func Blend(tx, ty *Separable) *Separable {
	return &Separable{x: tx.x, y: ty.y}
}

// IsSeparable returns true.
func (t *Separable) IsSeparable() bool { return true }

// IsIdentity reports whether both legs are the identity and no offset is set.
func (t *Separable) IsIdentity() bool {
	return t.x == nil && t.y == nil && t.offTrans == nil && t.offX == 0 && t.offY == 0
}

// Funcs returns the scale functions of the two legs.
func (t *Separable) Funcs() (fx, fy *Func) {
	if t.x != nil {
		fx = t.x.fn
	}
	if t.y != nil {
		fy = t.y.fn
	}
	return fx, fy
}

// SetFuncs replaces the scale functions.
func (t *Separable) SetFuncs(fx, fy *Func) {
	if t.x != nil && fx != nil {
		t.x.fn = fx
	}
	if t.y != nil && fy != nil {
		t.y.fn = fy
	}
}

// XLog reports whether the x leg is log10.
func (t *Separable) XLog() bool { return t.x != nil && t.x.fn.IsLog() }

// YLog reports whether the y leg is log10.
func (t *Separable) YLog() bool { return t.y != nil && t.y.fn.IsLog() }

// SetOffset adds off (in the space of ot) after mapping. With a nil ot the
// offset is already in device units.
func (t *Separable) SetOffset(x, y float64, ot Transform) {
	t.offX, t.offY = x, y
	t.offTrans = ot
}

func (t *Separable) offset() (float64, float64) {
	if t.offTrans == nil {
		return t.offX, t.offY
	}
	return t.offTrans.XY(t.offX, t.offY)
}

// XY maps (x, y).
func (t *Separable) XY(x, y float64) (float64, float64) {
	if t.x != nil {
		x = t.x.forward(x)
	}
	if t.y != nil {
		y = t.y.forward(y)
	}
	ox, oy := t.offset()
	return x + ox, y + oy
}

// InverseXY maps a device point back to the source space.
func (t *Separable) InverseXY(x, y float64) (float64, float64, error) {
	ox, oy := t.offset()
	x, y = x-ox, y-oy
	var err error
	if t.x != nil {
		if x, err = t.x.inverse(x); err != nil {
			return 0, 0, fmt.Errorf("transform: inverse x: %w", err)
		}
	}
	if t.y != nil {
		if y, err = t.y.inverse(y); err != nil {
			return 0, 0, fmt.Errorf("transform: inverse y: %w", err)
		}
	}
	return x, y, nil
}

// NumerixXY maps parallel slices. The result has the length of the shorter
// input.
func (t *Separable) NumerixXY(xs, ys []float64) ([]float64, []float64) {
	n := min(len(xs), len(ys))
	ox := make([]float64, n)
	oy := make([]float64, n)
	for i := range n {
		ox[i], oy[i] = t.XY(xs[i], ys[i])
	}
	return ox, oy
}

// SeqXYTups maps a sequence of points.
func (t *Separable) SeqXYTups(pts []gplot.Point) []gplot.Point {
	out := make([]gplot.Point, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = t.XY(p.X, p.Y)
	}
	return out
}

// Freeze snapshots both legs and the offset transform.
func (t *Separable) Freeze() error {
	if t.x != nil {
		if err := t.x.freeze(); err != nil {
			return fmt.Errorf("transform: freeze x: %w", err)
		}
	}
	if t.y != nil {
		if err := t.y.freeze(); err != nil {
			if t.x != nil {
				t.x.thaw()
			}
			return fmt.Errorf("transform: freeze y: %w", err)
		}
	}
	if t.offTrans != nil {
		if err := t.offTrans.Freeze(); err != nil {
			t.thawLegs()
			return err
		}
	}
	return nil
}

func (t *Separable) thawLegs() {
	if t.x != nil {
		t.x.thaw()
	}
	if t.y != nil {
		t.y.thaw()
	}
}

// Thaw releases a Freeze.
func (t *Separable) Thaw() {
	t.thawLegs()
	if t.offTrans != nil {
		t.offTrans.Thaw()
	}
}

// Affine returns the current mapping as a matrix. It reports false when a
// leg is nonlinear.
func (t *Separable) Affine() (gplot.Matrix, bool) {
	if (t.x != nil && t.x.fn.IsLog()) || (t.y != nil && t.y.fn.IsLog()) {
		return gplot.Matrix{}, false
	}
	m := gplot.Identity()
	if t.x != nil {
		m.A, m.C = t.x.coeffs()
	}
	if t.y != nil {
		m.E, m.F = t.y.coeffs()
	}
	ox, oy := t.offset()
	m.C += ox
	m.F += oy
	return m, true
}

// Copy returns a transform sharing the legs of t but with its own offset.
func (t *Separable) Copy() *Separable {
	c := *t
	return &c
}
