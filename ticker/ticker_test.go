package ticker

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
)

func bind[T interface {
	SetIntervals(view, data *bbox.Interval)
}](t T, lo, hi float64) T {
	t.SetIntervals(bbox.NewInterval(lo, hi), bbox.NewInterval(lo, hi))
	return t
}

func TestAutoLocatorSmallValues(t *testing.T) {
	locs := bind(NewAutoLocator(), 0.0001, 0.0009).Locs()
	require.Len(t, locs, 9)
	for i, v := range locs {
		assert.InDelta(t, float64(i+1)*1e-4, v, 1e-12)
	}

	f := bind(NewScalarFormatter(), 0.0001, 0.0009)
	f.SetLocs(locs)
	for i, v := range locs {
		assert.Equal(t, strconv.Itoa(i+1), f.Format(v, i))
	}
	assert.Equal(t, "×10⁻⁴", f.Offset())
	assert.Equal(t, -4, f.OrderOfMagnitude())
}

func TestAutoLocatorSymmetric(t *testing.T) {
	locs := bind(NewAutoLocator(), -1, 1).Locs()
	assert.InDeltaSlice(t, []float64{-1, -0.5, 0, 0.5, 1}, locs, 1e-12)

	f := bind(NewScalarFormatter(), -1, 1)
	f.SetLocs(locs)
	assert.Equal(t, "−1.0", f.Format(locs[0], 0))
	assert.Equal(t, "0.0", f.Format(locs[2], 2))
	assert.Equal(t, "0.5", f.Format(locs[3], 3))
	assert.Empty(t, f.Offset())
}

func TestAutoLocatorTickCount(t *testing.T) {
	ranges := [][2]float64{
		{0, 1}, {0, 3}, {-7, 13}, {0.05, 0.95}, {1e6, 3.7e6},
		{-0.002, 0.001}, {0, 2.99}, {12, 13}, {-1e-9, 5e-9}, {100, 10000},
	}
	for _, r := range ranges {
		locs := bind(NewAutoLocator(), r[0], r[1]).Locs()
		assert.GreaterOrEqual(t, len(locs), 3, "%v", r)
		assert.LessOrEqual(t, len(locs), 10, "%v", r)
		assert.LessOrEqual(t, locs[0], r[0]+1e-9*math.Abs(r[1]-r[0]), "%v", r)
		assert.GreaterOrEqual(t, locs[len(locs)-1], r[1]-1e-9*math.Abs(r[1]-r[0]), "%v", r)
	}
}

func TestAutoLocatorDegenerate(t *testing.T) {
	assert.Equal(t, []float64{2}, bind(NewAutoLocator(), 2, 2).Locs())
}

func TestAutoscale(t *testing.T) {
	l := NewAutoLocator()
	l.SetIntervals(bbox.NewInterval(0, 1), bbox.NewInterval(0.13, 2.91))
	lo, hi, err := l.Autoscale()
	require.NoError(t, err)
	assert.InDelta(t, 0, lo, 1e-12)
	assert.InDelta(t, 3, hi, 1e-12)

	ll := NewLinearLocator(5)
	ll.SetIntervals(bbox.NewInterval(0, 1), bbox.NewInterval(0.13, 2.91))
	lo, hi, err = ll.Autoscale()
	require.NoError(t, err)
	assert.InDelta(t, 0.1, lo, 1e-12)
	assert.InDelta(t, 3.0, hi, 1e-12)
}

func TestSimpleLocators(t *testing.T) {
	assert.Empty(t, bind(&NullLocator{}, 0, 1).Locs())
	assert.Equal(t, []float64{3, 1, 2}, bind(NewFixedLocator([]float64{3, 1, 2}), 0, 1).Locs())
	assert.InDeltaSlice(t, []float64{0, 2.5, 5, 7.5, 10}, bind(NewLinearLocator(5), 0, 10).Locs(), 1e-12)

	m, err := NewMultipleLocator(0.25)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.75}, bind(m, 0.1, 0.9).Locs(), 1e-12)

	ix, err := NewIndexLocator(2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 2.5, 4.5}, bind(ix, 0, 4).Locs())

	_, err = NewMultipleLocator(0)
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
}

func TestLogLocator(t *testing.T) {
	l, err := NewLogLocator(10, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 10, 100, 1000}, bind(l, 0.5, 2000).Locs(), 1e-9)

	sub, err := NewLogLocator(10, []float64{1, 2, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 5, 10, 20}, bind(sub, 1, 30).Locs(), 1e-9)

	l.SetIntervals(bbox.NewInterval(1, 10), bbox.NewInterval(3, 450))
	lo, hi, err := l.Autoscale()
	require.NoError(t, err)
	assert.InDelta(t, 1, lo, 1e-12)
	assert.InDelta(t, 1000, hi, 1e-9)

	l.SetIntervals(bbox.NewInterval(1, 10), bbox.NewInterval(-3, -1))
	_, _, err = l.Autoscale()
	assert.ErrorIs(t, err, gplot.ErrInvalidRangeForLog)
}

func TestLogFormatters(t *testing.T) {
	f := NewLogFormatter(10, true)
	assert.Equal(t, "10³", f.Format(1000, 0))
	assert.Equal(t, "10⁻²", f.Format(0.01, 0))
	assert.Empty(t, f.Format(20, 0))
	assert.Equal(t, "20", NewLogFormatter(10, false).Format(20, 0))
	assert.Equal(t, "3", NewLogFormatter(2, true).Format(8, 0))
	assert.Equal(t, "3", NewLogFormatterExponent(10, true).Format(1000, 0))
	assert.Equal(t, "$10^{3}$", NewLogFormatterMathtext(10, true).Format(1000, 0))
}

func TestSimpleFormatters(t *testing.T) {
	fx := NewFixedFormatter([]string{"a", "b"})
	assert.Equal(t, "b", fx.Format(99, 1))
	assert.Empty(t, fx.Format(99, 2))
	assert.Equal(t, "2.50", NewFormatStrFormatter("%1.2f").Format(2.5, 0))
	assert.Equal(t, "x3", NewFuncFormatter(func(x float64, pos int) string { return "x" + strconv.Itoa(pos) }).Format(0, 3))
	assert.Empty(t, (&NullFormatter{}).Format(1, 0))
}

func TestScalarFormatterOffset(t *testing.T) {
	locs := []float64{1000010, 1000020, 1000030, 1000040}
	f := bind(NewScalarFormatter(), 1000010, 1000040)
	f.SetLocs(locs)
	assert.InDelta(t, 1000010, f.OffsetValue(), 1e-6)
	assert.Equal(t, "10", f.Format(locs[1], 1))
	assert.Equal(t, "+1.00001e6", f.Offset())

	f.SetUseOffset(false)
	f.SetLocs(locs)
	assert.Zero(t, f.OffsetValue())
	assert.Equal(t, 6, f.OrderOfMagnitude())
}

func TestPanZoom(t *testing.T) {
	l := bind(NewAutoLocator(), 0, 10)
	Pan(l, 1)
	view, _ := l.Intervals()
	lo, hi := view.Bounds()
	assert.InDelta(t, 2, lo, 1e-12)
	assert.InDelta(t, 12, hi, 1e-12)

	Zoom(l, 1)
	lo, hi = view.Bounds()
	assert.InDelta(t, 3, lo, 1e-12)
	assert.InDelta(t, 11, hi, 1e-12)

	Zoom(l, -1)
	lo, hi = view.Bounds()
	assert.InDelta(t, 2.2, lo, 1e-12)
	assert.InDelta(t, 11.8, hi, 1e-12)
}
