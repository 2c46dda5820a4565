// Package ticker chooses tick positions and turns them into labels.
//
// A Locator reads the view and data intervals of an axis and returns
// tick values; a Formatter receives the full set of values through
// SetLocs before labelling any of them, so it can pick a shared offset,
// scale factor and precision. Both hold the intervals by reference and
// see every change the axis makes.
package ticker

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
)

// Locator chooses tick values.
type Locator interface {
	// SetIntervals binds the axis view and data intervals.
	SetIntervals(view, data *bbox.Interval)
	// Intervals returns the bound intervals.
	Intervals() (view, data *bbox.Interval)
	// Locs returns the tick values for the current view.
	Locs() []float64
	// Autoscale returns view limits covering the data interval.
	Autoscale() (vmin, vmax float64, err error)
}

// tickHelper is embedded by locators and formatters to hold the axis
// intervals. Unbound intervals read as [0, 1].
type tickHelper struct {
	view, data *bbox.Interval
}

// SetIntervals binds the view and data intervals.
func (t *tickHelper) SetIntervals(view, data *bbox.Interval) {
	t.view, t.data = view, data
}

// Intervals returns the bound intervals, creating unit intervals for
// unbound ones.
func (t *tickHelper) Intervals() (view, data *bbox.Interval) {
	if t.view == nil {
		t.view = bbox.NewInterval(0, 1)
	}
	if t.data == nil {
		t.data = bbox.NewInterval(0, 1)
	}
	return t.view, t.data
}

func (t *tickHelper) viewBounds() (float64, float64) {
	v, _ := t.Intervals()
	lo, hi := v.Bounds()
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi
}

func (t *tickHelper) dataBounds() (float64, float64) {
	_, d := t.Intervals()
	lo, hi := d.Bounds()
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi
}

// Autoscale returns the data interval made nonsingular.
func (t *tickHelper) Autoscale() (float64, float64, error) {
	lo, hi := t.dataBounds()
	lo, hi = bbox.Nonsingular(lo, hi, true)
	return lo, hi, nil
}

// Pan shifts the view interval of l by numSteps tick spacings, or by a
// sixth of the view when fewer than three ticks are shown.
func Pan(l Locator, numSteps int) {
	view, _ := l.Intervals()
	ticks := l.Locs()
	var step float64
	if len(ticks) > 2 {
		step = float64(numSteps) * math.Abs(ticks[1]-ticks[0])
	} else {
		step = float64(numSteps) * view.Span() / 6
	}
	view.Shift(step)
}

// Zoom narrows the view interval of l by 10% of its span on each side
// per positive direction step and widens it for negative ones.
func Zoom(l Locator, direction int) {
	view, _ := l.Intervals()
	lo, hi := view.Bounds()
	step := 0.1 * (hi - lo) * float64(direction)
	view.SetBounds(lo+step, hi-step)
}

// NullLocator places no ticks.
type NullLocator struct{ tickHelper }

// Locs implements Locator.
func (*NullLocator) Locs() []float64 { return nil }

// FixedLocator places ticks at a fixed set of values.
type FixedLocator struct {
	tickHelper
	locs []float64
}

// NewFixedLocator returns a locator for locs. The slice is copied.
func NewFixedLocator(locs []float64) *FixedLocator {
	return &FixedLocator{locs: slices.Clone(locs)}
}

// Locs implements Locator.
func (l *FixedLocator) Locs() []float64 { return slices.Clone(l.locs) }

// IndexLocator places a tick every base values of the data, starting at
// the data minimum plus offset. It suits plots against sample indices.
type IndexLocator struct {
	tickHelper
	base, offset float64
}

// NewIndexLocator returns an index locator.
func NewIndexLocator(base, offset float64) (*IndexLocator, error) {
	if !(base > 0) {
		return nil, fmt.Errorf("ticker: %w: index base %g", gplot.ErrInvalidValue, base)
	}
	return &IndexLocator{base: base, offset: offset}, nil
}

// Locs implements Locator.
func (l *IndexLocator) Locs() []float64 {
	dmin, dmax := l.dataBounds()
	var out []float64
	for x := dmin + l.offset; x < dmax+1; x += l.base {
		out = append(out, x)
	}
	return out
}

// LinearLocator places a fixed number of evenly spaced ticks across the
// view.
type LinearLocator struct {
	tickHelper
	numTicks int
}

// NewLinearLocator returns a locator producing n ticks.
func NewLinearLocator(n int) *LinearLocator { return &LinearLocator{numTicks: n} }

// Locs implements Locator.
func (l *LinearLocator) Locs() []float64 {
	if l.numTicks <= 0 {
		return nil
	}
	lo, hi := l.viewBounds()
	if l.numTicks == 1 {
		return []float64{(lo + hi) / 2}
	}
	return linspace(lo, hi, l.numTicks)
}

// Autoscale rounds the data interval outward to one significant digit
// of its span.
func (l *LinearLocator) Autoscale() (float64, float64, error) {
	lo, hi := l.dataBounds()
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	exp, rem := math.Modf(math.Log10(hi - lo))
	if rem < 0 {
		exp, rem = exp-1, rem+1
	}
	if rem < 0.5 {
		exp--
	}
	scale := math.Pow(10, -exp)
	lo = math.Floor(scale*lo) / scale
	hi = math.Ceil(scale*hi) / scale
	lo, hi = bbox.Nonsingular(lo, hi, true)
	return lo, hi, nil
}

// MultipleLocator places ticks on every integer multiple of a base.
type MultipleLocator struct {
	tickHelper
	base float64
}

// NewMultipleLocator returns a locator with step base.
func NewMultipleLocator(base float64) (*MultipleLocator, error) {
	if !(base > 0) {
		return nil, fmt.Errorf("ticker: %w: multiple base %g", gplot.ErrInvalidValue, base)
	}
	return &MultipleLocator{base: base}, nil
}

// Locs implements Locator.
func (l *MultipleLocator) Locs() []float64 {
	lo, hi := l.viewBounds()
	return multiples(lo, hi, l.base)
}

// Autoscale widens the data interval to multiples of the base.
func (l *MultipleLocator) Autoscale() (float64, float64, error) {
	lo, hi := l.dataBounds()
	lo = math.Floor(lo/l.base+tickEps) * l.base
	hi = math.Ceil(hi/l.base-tickEps) * l.base
	if lo == hi {
		lo, hi = lo-l.base, hi+l.base
	}
	return lo, hi, nil
}

// tickEps absorbs rounding when snapping values to step multiples.
const tickEps = 1e-9

// multiples returns the multiples of step in [lo, hi].
func multiples(lo, hi, step float64) []float64 {
	first := math.Ceil(lo/step - tickEps)
	last := math.Floor(hi/step + tickEps)
	var out []float64
	for k := first; k <= last; k++ {
		out = append(out, k*step)
	}
	return out
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// AutoLocator picks a step of 1, 2, 5 or 10 times a power of ten that
// splits the view into at most nine intervals, with the outer ticks
// snapped to multiples of the step.
type AutoLocator struct {
	tickHelper
	nbins int
	steps []float64
}

// NewAutoLocator returns the default locator for linear axes.
func NewAutoLocator() *AutoLocator {
	return &AutoLocator{nbins: 9, steps: []float64{1, 2, 5, 10}}
}

// Step returns the spacing chosen for [vmin, vmax] and the index of the
// first tick as a multiple of it.
func (l *AutoLocator) Step(vmin, vmax float64) (step, first float64, n int) {
	raw := (vmax - vmin) / float64(l.nbins)
	base := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, scale := range []float64{1, 10} {
		for _, s := range l.steps {
			step = s * base * scale
			first = math.Floor(vmin/step + tickEps)
			n = int(math.Ceil((vmax-first*step)/step - tickEps))
			if n <= l.nbins {
				return step, first, n
			}
		}
	}
	return step, first, n
}

func (l *AutoLocator) bin(vmin, vmax float64) []float64 {
	step, first, n := l.Step(vmin, vmax)
	out := make([]float64, n+1)
	for k := range out {
		out[k] = (first + float64(k)) * step
	}
	return out
}

// Locs implements Locator. A degenerate view yields its midpoint.
func (l *AutoLocator) Locs() []float64 {
	lo, hi := l.viewBounds()
	if !(hi-lo > 0) || math.IsInf(hi-lo, 0) {
		return []float64{(lo + hi) / 2}
	}
	return l.bin(lo, hi)
}

// Autoscale widens the data interval to the outer ticks it would get as
// a view.
func (l *AutoLocator) Autoscale() (float64, float64, error) {
	lo, hi := l.dataBounds()
	lo, hi = bbox.Nonsingular(lo, hi, true)
	locs := l.bin(lo, hi)
	return locs[0], locs[len(locs)-1], nil
}
