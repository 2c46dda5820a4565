package bbox

import "math"

// Interval is an ordered pair of scalars. The endpoints need not be
// increasing; an inverted interval describes a reversed axis.
type Interval struct {
	lo, hi Scalar
}

// NewInterval returns an interval over fresh cells holding lo and hi.
func NewInterval(lo, hi float64) *Interval {
	return &Interval{lo: NewValue(lo), hi: NewValue(hi)}
}

// IntervalOf returns an interval over the given scalars.
func IntervalOf(lo, hi Scalar) *Interval {
	return &Interval{lo: lo, hi: hi}
}

// Bounds returns the two endpoints.
func (iv *Interval) Bounds() (lo, hi float64) {
	return iv.lo.Get(), iv.hi.Get()
}

// SetBounds writes both endpoints. The endpoints must be settable cells.
func (iv *Interval) SetBounds(lo, hi float64) {
	set(iv.lo, lo)
	set(iv.hi, hi)
}

// Cells returns the endpoint scalars.
func (iv *Interval) Cells() (lo, hi Scalar) { return iv.lo, iv.hi }

// Span returns hi-lo, which is negative for an inverted interval.
func (iv *Interval) Span() float64 {
	return iv.hi.Get() - iv.lo.Get()
}

// Min returns the smaller endpoint.
func (iv *Interval) Min() float64 { return math.Min(iv.lo.Get(), iv.hi.Get()) }

// Max returns the larger endpoint.
func (iv *Interval) Max() float64 { return math.Max(iv.lo.Get(), iv.hi.Get()) }

// Contains reports whether x lies in the half-open interval [min, max).
func (iv *Interval) Contains(x float64) bool {
	return x >= iv.Min() && x < iv.Max()
}

// ContainsOpen reports whether x lies strictly inside the interval.
func (iv *Interval) ContainsOpen(x float64) bool {
	return x > iv.Min() && x < iv.Max()
}

// Update extends the interval to include every finite value in xs.
// With ignore set the existing endpoints are discarded first.
// Orientation is preserved.
func (iv *Interval) Update(xs []float64, ignore bool) {
	lo, hi := iv.Bounds()
	inverted := hi < lo
	mn, mx := iv.Min(), iv.Max()
	if ignore {
		mn, mx = math.Inf(1), math.Inf(-1)
	}
	found := false
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		found = true
		mn = math.Min(mn, x)
		mx = math.Max(mx, x)
	}
	if !found {
		return
	}
	if inverted {
		iv.SetBounds(mx, mn)
	} else {
		iv.SetBounds(mn, mx)
	}
}

// Shift moves both endpoints by d.
func (iv *Interval) Shift(d float64) {
	lo, hi := iv.Bounds()
	iv.SetBounds(lo+d, hi+d)
}
