package contour

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/collections"
	"github.com/gogpu/gplot/recording"
)

func ramp(nx, ny int) [][]float64 {
	z := make([][]float64, ny)
	for j := range z {
		z[j] = make([]float64, nx)
		for i := range z[j] {
			z[j][i] = float64(i)
		}
	}
	return z
}

func area(poly []gplot.Point) float64 {
	s := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		s += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(s) / 2
}

func TestLinesChainAcrossCells(t *testing.T) {
	g, err := NewGrid(nil, nil, ramp(3, 3))
	require.NoError(t, err)
	lines := g.Lines(0.5)
	require.Len(t, lines, 1)
	require.Len(t, lines[0], 5)
	var ys []float64
	for _, p := range lines[0] {
		assert.InDelta(t, 0.5, p.X, 1e-12)
		ys = append(ys, p.Y)
	}
	slices.Sort(ys)
	if diff := cmp.Diff([]float64{0, 0.5, 1, 1.5, 2}, ys, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("ys (-want +got):\n%s", diff)
	}
}

func TestClosedLoop(t *testing.T) {
	z := [][]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}
	g, err := NewGrid(nil, nil, z)
	require.NoError(t, err)
	lines := g.Lines(0.5)
	require.Len(t, lines, 1)
	loop := lines[0]
	assert.Equal(t, loop[0], loop[len(loop)-1])
	for _, p := range loop {
		assert.InDelta(t, 1, p.X, 0.5+1e-12)
		assert.InDelta(t, 1, p.Y, 0.5+1e-12)
	}
}

func TestBandsCoverArea(t *testing.T) {
	g, err := NewGrid([]float64{0, 1}, []float64{0, 1}, ramp(2, 2))
	require.NoError(t, err)
	total := 0.0
	for _, p := range g.Bands(0, 0.5) {
		total += area(p)
	}
	assert.InDelta(t, 0.5, total, 1e-12)

	total = 0
	for _, p := range g.Bands(0.25, 0.75) {
		total += area(p)
	}
	assert.InDelta(t, 0.5, total, 1e-12)
}

func TestMaskedTriangles(t *testing.T) {
	z := ramp(3, 3)
	z[0][0] = math.NaN()
	g, err := NewGrid(nil, nil, z)
	require.NoError(t, err)
	// Both triangles of the first cell touch the masked corner.
	for _, line := range g.Lines(0.5) {
		for _, p := range line {
			assert.GreaterOrEqual(t, p.Y, 0.5-1e-12)
		}
	}
}

func TestGridErrors(t *testing.T) {
	_, err := NewGrid(nil, nil, [][]float64{{1, 2}})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
	_, err = NewGrid(nil, nil, [][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
	_, err = NewGrid([]float64{0, 1, 2}, nil, ramp(2, 2))
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)

	g, err := NewGrid(nil, nil, [][]float64{{math.NaN(), math.NaN()}, {math.NaN(), math.NaN()}})
	require.NoError(t, err)
	_, err = New(g, Options{})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
}

func TestAutomaticLevels(t *testing.T) {
	g, err := NewGrid(nil, nil, ramp(5, 3))
	require.NoError(t, err)
	cs, err := New(g, Options{N: 3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, cs.Levels(), 1e-12)
	assert.Len(t, cs.Collections(), 3)

	filled, err := New(g, Options{N: 3, Filled: true})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 2, 3, 4}, filled.Levels(), 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 1.5, 2.5, 3.5}, filled.Layers(), 1e-12)
	assert.Len(t, filled.Collections(), 4)
	assert.NotEmpty(t, filled.Collections()[0].(*collections.PolyCollection).Verts())

	_, err = New(g, Options{Levels: []float64{2, 1}})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
	_, err = New(g, Options{Levels: []float64{1}, Filled: true})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
}

func TestMonochromeNegativeDashed(t *testing.T) {
	z := [][]float64{{-2, -1, 0, 1, 2}, {-2, -1, 0, 1, 2}}
	g, err := NewGrid(nil, nil, z)
	require.NoError(t, err)
	cs, err := New(g, Options{Levels: []float64{-1.5, 1.5}, Colors: "k"})
	require.NoError(t, err)
	neg := cs.Collections()[0].(*collections.LineCollection)
	pos := cs.Collections()[1].(*collections.LineCollection)
	assert.Equal(t, []string{"--"}, neg.LineStyles())
	assert.Equal(t, []string{"-"}, pos.LineStyles())

	colored, err := New(g, Options{Levels: []float64{-1.5, 1.5}})
	require.NoError(t, err)
	assert.Equal(t, []string{"-"}, colored.Collections()[0].(*collections.LineCollection).LineStyles())
}

func TestClabel(t *testing.T) {
	g, err := NewGrid(nil, nil, ramp(5, 5))
	require.NoError(t, err)
	cs, err := New(g, Options{Levels: []float64{1.5, 2.5}})
	require.NoError(t, err)
	labels, err := cs.Clabel(LabelOptions{Fmt: "%.1f"})
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "1.5", labels[0].Text())

	rec := recording.NewRecorder(400, 400, 72)
	require.NoError(t, cs.Draw(rec))
	assert.Len(t, rec.Finish().Filter(recording.CmdDrawText), 2)
	assert.InDelta(t, 90, math.Abs(labels[0].Rotation()), 1e-9)

	filled, err := New(g, Options{Filled: true})
	require.NoError(t, err)
	_, err = filled.Clabel(LabelOptions{})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
}
