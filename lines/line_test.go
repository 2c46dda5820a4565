package lines

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/recording"
	"github.com/gogpu/gplot/transform"
)

func newLine(t *testing.T, xs, ys []float64) *Line2D {
	t.Helper()
	l, err := New(xs, ys)
	require.NoError(t, err)
	return l
}

func polylineLengths(cmds []recording.Command) []int {
	var out []int
	for _, c := range cmds {
		out = append(out, len(c.(recording.DrawLinesCommand).Xs))
	}
	return out
}

func TestMaskedRuns(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	l := newLine(t, xs, xs)
	mask := []bool{false, false, true, false, false, true, true, false, false, false}
	require.NoError(t, l.SetMask(mask))

	assert.Equal(t, [][2]int{{0, 2}, {3, 5}, {7, 10}}, UnmaskedRuns(mask, len(mask)))

	rec := recording.NewRecorder(100, 100, 72)
	require.NoError(t, l.Draw(rec))
	got := polylineLengths(rec.Finish().Filter(recording.CmdDrawLines))
	assert.Equal(t, []int{2, 2, 3}, got)
}

func TestMaskedContinuity(t *testing.T) {
	// Removing the masked points must give the same strokes.
	masked := newLine(t, []float64{0, 1, 2, 3}, []float64{0, 1, 0, 1})
	require.NoError(t, masked.SetMask([]bool{false, false, true, false}))
	require.NoError(t, masked.SetMarker("o"))

	a := recording.NewRecorder(100, 100, 72)
	require.NoError(t, masked.Draw(a))
	ra := a.Finish()

	// The isolated point at index 3 gets a marker but no line.
	assert.Equal(t, []int{2}, polylineLengths(ra.Filter(recording.CmdDrawLines)))
	mk := ra.Filter(recording.CmdDrawMarkers)
	require.Len(t, mk, 1)
	assert.Equal(t, []float64{0, 1, 3}, mk[0].(recording.DrawMarkersCommand).Xs)
}

func TestMaskLengthMismatch(t *testing.T) {
	l := newLine(t, []float64{1, 2}, []float64{1, 2})
	err := l.SetMask([]bool{true})
	assert.True(t, errors.Is(err, gplot.ErrShapeMismatch))
}

func TestNewRejectsMismatchedData(t *testing.T) {
	_, err := New([]float64{1, 2}, []float64{1})
	var se *gplot.ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []int{2}, se.Want)
}

func logX() *transform.Separable {
	return transform.NewSeparable(
		bbox.FromExtents(1, 0, 1000, 10),
		bbox.FromExtents(0, 0, 300, 100),
		transform.NewFunc(transform.Log10Func), nil)
}

func TestLogFiltering(t *testing.T) {
	trans := logX()
	mixed := newLine(t, []float64{-1, 10, 0, 100}, []float64{1, 2, 3, 4})
	mixed.SetTransform(trans)
	clean := newLine(t, []float64{10, 100}, []float64{2, 4})
	clean.SetTransform(trans)

	a := recording.NewRecorder(300, 100, 72)
	require.NoError(t, mixed.Draw(a))
	b := recording.NewRecorder(300, 100, 72)
	require.NoError(t, clean.Draw(b))

	want := b.Finish().Filter(recording.CmdDrawLines)
	got := a.Finish().Filter(recording.CmdDrawLines)
	require.Len(t, got, len(want))
	for i := range want {
		w, g := want[i].(recording.DrawLinesCommand), got[i].(recording.DrawLinesCommand)
		if diff := cmp.Diff(w.Xs, g.Xs); diff != "" {
			t.Errorf("x mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(w.Ys, g.Ys); diff != "" {
			t.Errorf("y mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestLogFilterCache(t *testing.T) {
	trans := logX()
	l := newLine(t, []float64{-1, 10, 100}, []float64{1, 2, 3})
	first := l.Plottable(trans)
	require.Len(t, first, 1)
	assert.Len(t, first[0].Xs, 2)
	second := l.Plottable(trans)
	assert.Same(t, &first[0], &second[0])

	fx, _ := trans.Funcs()
	fx.SetType(transform.IdentityFunc)
	linear := l.Plottable(trans)
	assert.Len(t, linear[0].Xs, 3)

	require.NoError(t, l.SetData([]float64{1, 2}, []float64{1, 2}))
	assert.Len(t, l.Plottable(trans)[0].Xs, 2)
}

func TestSinglePointMarkerOnLogAxis(t *testing.T) {
	l := newLine(t, []float64{100}, []float64{1})
	require.NoError(t, l.SetMarker("o"))
	require.NoError(t, l.SetColor("r"))
	l.SetTransform(logX())

	rec := recording.NewRecorder(300, 100, 72)
	require.NoError(t, l.Draw(rec))
	out := rec.Finish()
	assert.Zero(t, out.Count(recording.CmdDrawLines))
	mk := out.Filter(recording.CmdDrawMarkers)
	require.Len(t, mk, 1)
	c := mk[0].(recording.DrawMarkersCommand)
	assert.InDelta(t, 200, c.Xs[0], 1e-9)
	require.NotNil(t, c.Face)
	assert.Equal(t, colors.Red, *c.Face)
	assert.Equal(t, colors.Black, c.GC.Foreground)
}

func TestSteps(t *testing.T) {
	xs, ys := Steps([]float64{0, 1, 2}, []float64{5, 6, 7})
	assert.Equal(t, []float64{0, 1, 1, 2, 2, 2}, xs)
	assert.Equal(t, []float64{5, 5, 6, 6, 7, 7}, ys)

	l := newLine(t, []float64{0, 1, 2}, []float64{5, 6, 7})
	require.NoError(t, l.SetLineStyle("steps"))
	rec := recording.NewRecorder(10, 10, 72)
	require.NoError(t, l.Draw(rec))
	assert.Equal(t, []int{6}, polylineLengths(rec.Finish().Filter(recording.CmdDrawLines)))
}

func TestMarkerFallback(t *testing.T) {
	tests := []struct {
		marker string
		op     recording.CommandType
		count  int
	}{
		{"s", recording.CmdDrawPolygon, 2},
		{"o", recording.CmdDrawArc, 2},
		{".", recording.CmdDrawArc, 2},
		{"+", recording.CmdDrawLine, 4},
		{"1", recording.CmdDrawLine, 6},
		{"tickup", recording.CmdDrawLine, 2},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			l := newLine(t, []float64{1, 2}, []float64{1, 2})
			require.NoError(t, l.SetLineStyle("None"))
			require.NoError(t, l.SetMarker(tt.marker))
			rec := recording.NewRecorder(10, 10, 72)
			require.NoError(t, l.Draw(recording.Plain(rec)))
			out := rec.Finish()
			assert.Equal(t, tt.count, out.Count(tt.op))
			assert.Zero(t, out.Count(recording.CmdDrawMarkers))
		})
	}
}

func TestMarkerColors(t *testing.T) {
	l := newLine(t, []float64{1}, []float64{1})
	require.NoError(t, l.SetColor("g"))

	require.NoError(t, l.SetMarker("x"))
	assert.Nil(t, l.ResolvedFace(), "line markers have no face")
	edge, ok := l.ResolvedEdge()
	assert.True(t, ok)
	assert.Equal(t, l.Color(), edge)

	require.NoError(t, l.SetMarker("^"))
	require.NoError(t, l.SetMarkerFaceColor("none"))
	assert.Nil(t, l.ResolvedFace())
	edge, _ = l.ResolvedEdge()
	assert.Equal(t, colors.Black, edge)

	require.NoError(t, l.SetMarkerEdgeColor("none"))
	_, ok = l.ResolvedEdge()
	assert.False(t, ok)

	assert.Error(t, l.SetMarkerFaceColor("not-a-color"))
}

func TestMarkerPathSizes(t *testing.T) {
	x0, y0, x1, y1 := MarkerPath("s", 10).Bounds()
	assert.Equal(t, []float64{-5, -5, 5, 5}, []float64{x0, y0, x1, y1})
	_, _, _, y1 = MarkerPath(MarkerTickUp, 4).Bounds()
	assert.Equal(t, 4.0, y1)
	assert.Nil(t, MarkerPath(MarkerNone, 10))
}

func TestNormalizeMarker(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{"o", "o", true},
		{"none", MarkerNone, true},
		{2, MarkerTickUp, true},
		{7, "", false},
		{"?", "?", false},
		{1.5, "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeMarker(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("NormalizeMarker(%v) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDashesSelectDashStyle(t *testing.T) {
	l := newLine(t, []float64{0, 1}, []float64{0, 1})
	l.SetDashes([]float64{2, 1})
	require.NoError(t, l.SetDashCapStyle("round"))

	rec := recording.NewRecorder(10, 10, 72)
	require.NoError(t, l.Draw(rec))
	gc := rec.Finish().Filter(recording.CmdDrawLines)[0].(recording.DrawLinesCommand).GC
	require.NotNil(t, gc.Dash)
	assert.Equal(t, []float64{2, 1}, gc.Dash.Array)
	assert.Equal(t, backend.CapRound, gc.Cap)

	l.SetDashes(nil)
	assert.Equal(t, "-", l.LineStyle())
}

func TestPropertyAliases(t *testing.T) {
	l := newLine(t, []float64{0, 1}, []float64{0, 1})
	require.NoError(t, artist.Setp(l, "lw", 2.5, "ls", "dotted", "c", "r", "ms", 9, "mfc", "none", "aa", false))
	assert.Equal(t, 2.5, l.LineWidth())
	assert.Equal(t, ":", l.LineStyle())
	assert.Equal(t, colors.Red, l.Color())
	assert.Equal(t, 9.0, l.MarkerSize())
	assert.Equal(t, ColorNone, l.MarkerFaceColor().Mode)
	assert.False(t, l.Antialiased())

	v, err := artist.Getp(l, "mec")
	require.NoError(t, err)
	assert.Equal(t, "auto", v.(MarkerColor).String())

	err = artist.Setp(l, "linestyle", "~~")
	assert.True(t, errors.Is(err, gplot.ErrInvalidValue))
	err = artist.Setp(l, "bogus", 1)
	assert.True(t, errors.Is(err, gplot.ErrUnknownProperty))
}

func TestStyleCloneIsDeep(t *testing.T) {
	l := newLine(t, []float64{0, 1}, []float64{0, 1})
	l.SetDashes([]float64{3, 3})
	s := l.Style()
	s.Dashes[0] = 10
	assert.Equal(t, []float64{3, 3}, l.Dashes())

	other := newLine(t, []float64{0}, []float64{0})
	other.UpdateFrom(l)
	assert.Equal(t, "--", other.LineStyle())
}

func TestInvisibleLineDrawsNothing(t *testing.T) {
	l := newLine(t, []float64{0, 1}, []float64{0, 1})
	l.SetVisible(false)
	rec := recording.NewRecorder(10, 10, 72)
	require.NoError(t, l.Draw(rec))
	assert.Empty(t, rec.Commands())
}
