// Package mlab holds the numeric helpers behind the statistical plot
// types: histograms, percentiles, box statistics, correlation and
// spectral estimates. The heavy lifting is done by gonum.
package mlab

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/gplot"
)

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// finite returns the finite values of x, sorted.
func finite(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// HistEdges returns bins+1 equal-width edges over the range of x. An
// empty or constant x gets a unit-wide range around its value.
func HistEdges(x []float64, bins int) ([]float64, error) {
	if bins < 1 {
		return nil, fmt.Errorf("mlab: %w: %d bins", gplot.ErrInvalidValue, bins)
	}
	xs := finite(x)
	lo, hi := 0.0, 1.0
	if len(xs) > 0 {
		lo, hi = xs[0], xs[len(xs)-1]
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return Linspace(lo, hi, bins+1), nil
}

// Histogram counts x into the bins delimited by edges. The last bin is
// closed; values outside the edges are ignored. When density is set the
// counts are scaled so the histogram integrates to one.
func Histogram(x, edges []float64, density bool) ([]float64, error) {
	if len(edges) < 2 || !slices.IsSorted(edges) {
		return nil, fmt.Errorf("mlab: %w: bin edges must be increasing", gplot.ErrInvalidValue)
	}
	lo, hi := edges[0], edges[len(edges)-1]
	var in []float64
	for _, v := range finite(x) {
		if v >= lo && v <= hi {
			in = append(in, v)
		}
	}
	dividers := slices.Clone(edges)
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, in, nil)
	if density && len(in) > 0 {
		for i := range counts {
			counts[i] /= float64(len(in)) * (edges[i+1] - edges[i])
		}
	}
	return counts, nil
}

// Prctile returns the p-th percentiles (0..100) of x, interpolating
// linearly between the order statistics at rank p/100·(n-1).
func Prctile(x []float64, p ...float64) ([]float64, error) {
	xs := finite(x)
	if len(xs) == 0 {
		return nil, fmt.Errorf("mlab: %w: no finite data", gplot.ErrInvalidValue)
	}
	out := make([]float64, len(p))
	for i, q := range p {
		if q < 0 || q > 100 {
			return nil, fmt.Errorf("mlab: %w: percentile %g", gplot.ErrInvalidValue, q)
		}
		rank := q / 100 * float64(len(xs)-1)
		lo := int(math.Floor(rank))
		if lo >= len(xs)-1 {
			out[i] = xs[len(xs)-1]
			continue
		}
		out[i] = xs[lo] + (rank-float64(lo))*(xs[lo+1]-xs[lo])
	}
	return out, nil
}

// BoxStats summarizes one box of a box plot.
type BoxStats struct {
	Median    float64
	Q1, Q3    float64
	WhiskerLo float64
	WhiskerHi float64
	Fliers    []float64
	NotchLo   float64
	NotchHi   float64
	Count     int
	Mean      float64
	IQR       float64
	Whis      float64
}

// Boxplot computes box statistics. Whiskers reach the most extreme data
// within whis times the interquartile range of the box; anything beyond
// is a flier.
func Boxplot(x []float64, whis float64) (BoxStats, error) {
	xs := finite(x)
	if len(xs) == 0 {
		return BoxStats{}, fmt.Errorf("mlab: %w: no finite data", gplot.ErrInvalidValue)
	}
	q, _ := Prctile(xs, 25, 50, 75)
	b := BoxStats{Q1: q[0], Median: q[1], Q3: q[2], Count: len(xs), Mean: stat.Mean(xs, nil), Whis: whis}
	b.IQR = b.Q3 - b.Q1
	loLim, hiLim := b.Q1-whis*b.IQR, b.Q3+whis*b.IQR
	b.WhiskerLo, b.WhiskerHi = b.Q1, b.Q3
	for _, v := range xs {
		if v >= loLim {
			b.WhiskerLo = math.Min(b.WhiskerLo, v)
			break
		}
	}
	for i := len(xs) - 1; i >= 0; i-- {
		if xs[i] <= hiLim {
			b.WhiskerHi = math.Max(b.WhiskerHi, xs[i])
			break
		}
	}
	for _, v := range xs {
		if v < b.WhiskerLo || v > b.WhiskerHi {
			b.Fliers = append(b.Fliers, v)
		}
	}
	notch := 1.57 * b.IQR / math.Sqrt(float64(len(xs)))
	b.NotchLo, b.NotchHi = b.Median-notch, b.Median+notch
	return b, nil
}

// Detrend selects how a segment is detrended before a transform.
type Detrend int

const (
	DetrendNone Detrend = iota
	DetrendMean
	DetrendLinear
)

// apply detrends x in place.
func (d Detrend) apply(x []float64) {
	switch d {
	case DetrendMean:
		m := stat.Mean(x, nil)
		floats.AddConst(-m, x)
	case DetrendLinear:
		if len(x) < 2 {
			return
		}
		idx := make([]float64, len(x))
		for i := range idx {
			idx[i] = float64(i)
		}
		a, b := stat.LinearRegression(idx, x, nil, false)
		for i := range x {
			x[i] -= a + b*float64(i)
		}
	}
}

// Correlate returns the cross-correlation sum x[n+k]·y[n] of equal-length
// x and y at lags k = -maxLags..maxLags. When normed the result is
// divided by the geometric mean of the zero-lag autocorrelations.
func Correlate(x, y []float64, maxLags int, normed bool, detrend Detrend) (lags, c []float64, err error) {
	if err := gplot.CheckSameLen("correlate", x, y); err != nil {
		return nil, nil, err
	}
	n := len(x)
	if n == 0 {
		return nil, nil, fmt.Errorf("mlab: %w: empty input", gplot.ErrInvalidValue)
	}
	if maxLags < 0 || maxLags >= n {
		maxLags = n - 1
	}
	xd, yd := slices.Clone(x), slices.Clone(y)
	detrend.apply(xd)
	detrend.apply(yd)
	norm := 1.0
	if normed {
		norm = math.Sqrt(floats.Dot(xd, xd) * floats.Dot(yd, yd))
		if norm == 0 {
			norm = 1
		}
	}
	for lag := -maxLags; lag <= maxLags; lag++ {
		s := 0.0
		for i := range n {
			j := i + lag
			if j < 0 || j >= n {
				continue
			}
			s += xd[j] * yd[i]
		}
		lags = append(lags, float64(lag))
		c = append(c, s/norm)
	}
	return lags, c, nil
}
