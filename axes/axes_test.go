package axes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/recording"
	"github.com/gogpu/gplot/transform"
)

type stubFigure struct {
	box *bbox.Bbox
	dpi float64
}

func (f *stubFigure) DPI() float64      { return f.dpi }
func (f *stubFigure) Bbox() *bbox.Bbox { return f.box }

// newFig is an 800x600 pixel figure at 72 dpi.
func newFig() *stubFigure {
	return &stubFigure{box: bbox.FromExtents(0, 0, 800, 600), dpi: 72}
}

var mainRect = [4]float64{0.1, 0.1, 0.8, 0.8}

func newAxes(t *testing.T) *Axes {
	t.Helper()
	a, err := New(newFig(), mainRect)
	require.NoError(t, err)
	return a
}

func texts(rec *recording.Recorder) map[string]recording.DrawTextCommand {
	out := map[string]recording.DrawTextCommand{}
	for _, c := range rec.Finish().Filter(recording.CmdDrawText) {
		tc := c.(recording.DrawTextCommand)
		out[tc.Text] = tc
	}
	return out
}

func TestNewRejectsEmptyRect(t *testing.T) {
	_, err := New(newFig(), [4]float64{0, 0, 0, 1})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
	_, err = New(newFig(), [4]float64{math.NaN(), 0, 1, 1})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
}

func TestBboxFollowsPosition(t *testing.T) {
	a := newAxes(t)
	x0, y0, x1, y1 := a.Bbox().Extents()
	assert.InDelta(t, 80, x0, 1e-9)
	assert.InDelta(t, 60, y0, 1e-9)
	assert.InDelta(t, 720, x1, 1e-9)
	assert.InDelta(t, 540, y1, 1e-9)

	require.NoError(t, a.SetPosition([4]float64{0.5, 0.5, 0.5, 0.5}, "active"))
	x0, _, x1, _ = a.Bbox().Extents()
	assert.InDelta(t, 400, x0, 1e-9)
	assert.InDelta(t, 800, x1, 1e-9)
	assert.Equal(t, mainRect, a.OriginalPosition())
}

func TestTitleBaseline(t *testing.T) {
	a := newAxes(t)
	a.SetTitle("Hello")
	rec := recording.NewRecorder(800, 600, 72)
	require.NoError(t, a.Draw(rec))

	title, ok := texts(rec)["Hello"]
	require.True(t, ok)
	assert.InDelta(t, 0.94*600, title.Y, 1e-6)
	assert.Zero(t, rec.Depth(), "groups are balanced")
}

func TestPlotGrowsDataLimits(t *testing.T) {
	a := newAxes(t)
	_, err := a.Plot(nil, []float64{3, 1, 4, 1, 5}, "r--")
	require.NoError(t, err)

	x0, y0, x1, y1 := a.DataLim().Extents()
	assert.Equal(t, [4]float64{0, 1, 4, 5}, [4]float64{x0, y0, x1, y1})

	vx0, vx1 := a.XLim()
	vy0, vy1 := a.YLim()
	assert.LessOrEqual(t, vx0, x0)
	assert.GreaterOrEqual(t, vx1, x1)
	assert.LessOrEqual(t, vy0, y0)
	assert.GreaterOrEqual(t, vy1, y1)

	l := a.Lines()[0]
	assert.Equal(t, "--", l.LineStyle())
	assert.Equal(t, "#ff0000", l.Color().Hex())
}

func TestAddPatchGrowsDataLimits(t *testing.T) {
	a := newAxes(t)
	r := patches.NewRectangle(1, 2, 3, 4)
	r.SetLabel("box")
	a.AddPatch(r)

	x0, y0, x1, y1 := a.DataLim().Extents()
	assert.Equal(t, [4]float64{1, 2, 4, 6}, [4]float64{x0, y0, x1, y1})

	// "best" placement measures the patch outline on screen.
	leg, err := a.AutoLegend("best")
	require.NoError(t, err)
	require.Len(t, leg.Texts(), 1)
	rec := recording.NewRecorder(800, 600, 72)
	require.NoError(t, a.Draw(rec))
}

func TestPlotLengthMismatch(t *testing.T) {
	a := newAxes(t)
	_, err := a.Plot([]float64{1, 2}, []float64{1}, "")
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
}

func TestHoldOffClears(t *testing.T) {
	a := newAxes(t)
	_, err := a.Plot(nil, []float64{1, 2}, "")
	require.NoError(t, err)
	a.SetHold(false)
	_, err = a.Plot(nil, []float64{3, 4}, "")
	require.NoError(t, err)
	assert.Len(t, a.Lines(), 1)
}

func TestColorCycle(t *testing.T) {
	a := newAxes(t)
	require.NoError(t, a.SetColorCycle([]string{"r", "g"}))
	var got []string
	for range 3 {
		l, err := a.Plot(nil, []float64{0, 1}, "")
		require.NoError(t, err)
		got = append(got, l.Color().Hex())
	}
	assert.Equal(t, []string{"#ff0000", "#008000", "#ff0000"}, got)
	assert.Error(t, a.SetColorCycle([]string{"not-a-color"}))
}

func TestSharedLimitsPropagate(t *testing.T) {
	fig := newFig()
	a1, err := New(fig, [4]float64{0.1, 0.55, 0.8, 0.4})
	require.NoError(t, err)
	a2, err := New(fig, [4]float64{0.1, 0.1, 0.8, 0.4}, ShareX(a1))
	require.NoError(t, err)
	assert.Same(t, a1, a2.SharedX())

	calls := map[*Axes]int{}
	_, err = a2.Connect(XLimChanged, func(ax *Axes) { calls[ax]++ })
	require.NoError(t, err)

	require.NoError(t, a1.SetXLim(2, 4, true))
	lo, hi := a2.XLim()
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 4.0, hi)
	assert.Equal(t, 1, calls[a2])

	a2.PanX(1)
	lo1, hi1 := a1.XLim()
	lo2, hi2 := a2.XLim()
	assert.Equal(t, lo1, lo2)
	assert.Equal(t, hi1, hi2)
	assert.Greater(t, lo1, 2.0)
	assert.Equal(t, 2, calls[a2])

	// y stays independent.
	require.NoError(t, a2.SetYLim(-5, 5, true))
	ylo, yhi := a1.YLim()
	assert.Equal(t, [2]float64{0, 1}, [2]float64{ylo, yhi})
}

func TestConnectDisconnect(t *testing.T) {
	a := newAxes(t)
	_, err := a.Connect("resize", func(*Axes) {})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)

	n := 0
	cid, err := a.Connect(YLimChanged, func(*Axes) { n++ })
	require.NoError(t, err)
	require.NoError(t, a.SetYLim(0, 2, true))
	require.NoError(t, a.SetYLim(0, 3, false))
	a.Disconnect(cid)
	require.NoError(t, a.SetYLim(0, 4, true))
	assert.Equal(t, 1, n)
}

func TestLogScaleFailureKeepsState(t *testing.T) {
	a := newAxes(t)
	require.NoError(t, a.SetXLim(-1, 10, false))
	err := a.SetXScale("log")
	assert.ErrorIs(t, err, gplot.ErrInvalidRangeForLog)
	assert.Equal(t, "linear", a.XScale())
	lo, hi := a.XLim()
	assert.Equal(t, [2]float64{-1, 10}, [2]float64{lo, hi})

	assert.ErrorIs(t, a.SetYScale("symlog"), gplot.ErrInvalidValue)
}

func TestDrawFreezeErrorNamesAxes(t *testing.T) {
	a := newAxes(t)
	// A log leg over the default (0, 1) view cannot freeze.
	a.fx.SetType(transform.Log10Func)
	err := a.Draw(recording.NewRecorder(800, 600, 72))
	require.ErrorIs(t, err, gplot.ErrInvalidRangeForLog)
	assert.Contains(t, err.Error(), "axes at [0.1 0.1 0.8 0.8]")
}

func TestLogScaleRescalesFromData(t *testing.T) {
	a := newAxes(t)
	_, err := a.Plot([]float64{1, 10, 100}, []float64{1, 2, 3}, "")
	require.NoError(t, err)
	require.NoError(t, a.SetXScale("log"))
	assert.Equal(t, "log", a.XScale())
	lo, hi := a.XLim()
	assert.Positive(t, lo)
	assert.LessOrEqual(t, lo, 1.0)
	assert.GreaterOrEqual(t, hi, 100.0)

	assert.ErrorIs(t, a.SetXLim(0, 10, false), gplot.ErrInvalidRangeForLog)
}

func TestSetLimReversedAndSingular(t *testing.T) {
	a := newAxes(t)
	require.NoError(t, a.SetYLim(5, 1, false))
	lo, hi := a.YLim()
	assert.Equal(t, [2]float64{5, 1}, [2]float64{lo, hi})

	require.NoError(t, a.SetXLim(3, 3, false))
	lo, hi = a.XLim()
	assert.Less(t, lo, 3.0)
	assert.Greater(t, hi, 3.0)

	assert.ErrorIs(t, a.SetXLim(math.Inf(1), 3, false), gplot.ErrInvalidValue)
}

func TestAspectEqualBox(t *testing.T) {
	a := newAxes(t)
	require.NoError(t, a.SetXLim(0, 10, false))
	require.NoError(t, a.SetYLim(0, 5, false))
	require.NoError(t, a.SetAspect("equal"))
	a.ApplyAspect()

	box := a.Bbox()
	assert.InDelta(t, box.Width()/10, box.Height()/5, 1e-9)
	pos := a.Position()
	assert.InDelta(t, 0.1, pos[0], 1e-9)
	assert.InDelta(t, 0.8, pos[2], 1e-9)
	assert.InDelta(t, 0.1+0.5*(0.8-pos[3]), pos[1], 1e-9, "centered vertically")

	require.NoError(t, a.SetAspect("auto"))
	a.ApplyAspect()
	assert.Equal(t, mainRect, a.Position())
}

func TestAspectEqualDataLim(t *testing.T) {
	a := newAxes(t)
	_, err := a.Plot([]float64{0, 10}, []float64{0, 5}, "")
	require.NoError(t, err)
	_, err = a.Axis("equal")
	require.NoError(t, err)
	a.ApplyAspect()

	assert.Equal(t, mainRect, a.Position())
	x0, x1 := a.XLim()
	y0, y1 := a.YLim()
	assert.InDelta(t, 640.0/480.0, (x1-x0)/(y1-y0), 1e-9)
}

func TestSetAspectErrors(t *testing.T) {
	a := newAxes(t)
	assert.ErrorIs(t, a.SetAspect("squished"), gplot.ErrInvalidValue)
	assert.ErrorIs(t, a.SetAspect(-2.0), gplot.ErrInvalidValue)
	require.NoError(t, a.SetAspect(2))
	assert.Equal(t, 2.0, a.Aspect())
	assert.ErrorIs(t, a.SetAdjustable("stretch"), gplot.ErrInvalidValue)
	assert.ErrorIs(t, a.SetAnchor("middle"), gplot.ErrInvalidValue)
	require.NoError(t, a.SetAnchor("NE"))
	assert.Equal(t, [2]float64{1, 1}, a.Anchor())
}

func TestAxisCommand(t *testing.T) {
	a := newAxes(t)
	lim, err := a.Axis(0.0, 2.0, -1.0, 1.0)
	require.NoError(t, err)
	assert.Equal(t, [4]float64{0, 2, -1, 1}, lim)

	lim, err = a.Axis([]float64{1, 3, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, [4]float64{1, 3, 2, 4}, lim)

	_, err = a.Axis("off")
	require.NoError(t, err)
	assert.False(t, a.AxisOn())

	_, err = a.Axis("sideways")
	assert.ErrorIs(t, err, gplot.ErrInvalidAxisSpec)
	_, err = a.Axis(1.0, 2.0)
	assert.ErrorIs(t, err, gplot.ErrInvalidAxisSpec)
	_, err = a.Axis([]float64{1, 2, 3})
	assert.ErrorIs(t, err, gplot.ErrInvalidAxisSpec)
	_, err = a.Axis(1, 2, 3, 4)
	assert.ErrorIs(t, err, gplot.ErrInvalidAxisSpec)
}

func TestAxisTight(t *testing.T) {
	a := newAxes(t)
	_, err := a.Plot([]float64{0.3, 9.2}, []float64{-1.1, 2.7}, "")
	require.NoError(t, err)
	lim, err := a.Axis("tight")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.3, 9.2, -1.1, 2.7}, lim[:], 1e-12)
	assert.False(t, a.AutoscaleOn())
}

func TestAxHLineSpansAxes(t *testing.T) {
	a := newAxes(t)
	require.NoError(t, a.SetXLim(0, 100, false))
	l, err := a.AxHLine(0.5, 0, 1)
	require.NoError(t, err)
	x, _ := l.Transform().XY(0, 0.5)
	assert.InDelta(t, 80, x, 1e-9)
	x, _ = l.Transform().XY(1, 0.5)
	assert.InDelta(t, 720, x, 1e-9)
	lo, hi := a.XLim()
	assert.Equal(t, [2]float64{0, 100}, [2]float64{lo, hi})
}

func TestScatter(t *testing.T) {
	a := newAxes(t)
	c, err := a.Scatter([]float64{1, 2, 3}, []float64{4, 5, 6}, ScatterOptions{S: []float64{10, 20, 30}})
	require.NoError(t, err)
	assert.Equal(t, []gplot.Point{gplot.Pt(1, 4), gplot.Pt(2, 5), gplot.Pt(3, 6)}, c.Offsets())
	assert.Equal(t, 20, c.NumSides())

	x0, y0, x1, y1 := a.DataLim().Extents()
	assert.Equal(t, [4]float64{1, 4, 3, 6}, [4]float64{x0, y0, x1, y1})

	_, err = a.Scatter([]float64{1}, []float64{1}, ScatterOptions{Marker: "?"})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
	_, err = a.Scatter([]float64{1, 2}, []float64{1, 2}, ScatterOptions{S: []float64{1, 2, 3}})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
	_, err = a.Scatter([]float64{1, 2}, []float64{1, 2}, ScatterOptions{C: []float64{1}})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
}

func TestBarAndHist(t *testing.T) {
	a := newAxes(t)
	rects, err := a.Bar([]float64{0, 1, 2}, []float64{3, 4, 5}, BarOptions{})
	require.NoError(t, err)
	require.Len(t, rects, 3)
	_, hi := a.YLim()
	assert.GreaterOrEqual(t, hi, 5.0)

	_, err = a.Bar([]float64{0, 1}, []float64{3}, BarOptions{})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)

	b := newAxes(t)
	res, err := b.Hist([]float64{1, 2, 2, 3, 3, 3}, HistOptions{Bins: 3})
	require.NoError(t, err)
	require.Len(t, res.Counts, 3)
	require.Len(t, res.Edges, 4)
	assert.Len(t, res.Bars, 3)
	total := 0.0
	for _, c := range res.Counts {
		total += c
	}
	assert.Equal(t, 6.0, total)
}

func TestPie(t *testing.T) {
	a := newAxes(t)
	pc, err := a.Pie([]float64{1, 2, 1}, PieOptions{Labels: []string{"a", "b", "c"}, Autopct: "%1.0f%%"})
	require.NoError(t, err)
	assert.Len(t, pc.Wedges, 3)
	assert.Len(t, pc.Texts, 3)
	require.Len(t, pc.AutoTexts, 3)
	assert.Equal(t, "50%", pc.AutoTexts[1].Text())
	lo, hi := a.XLim()
	assert.Equal(t, [2]float64{-1.25, 1.25}, [2]float64{lo, hi})

	_, err = a.Pie([]float64{1, -1}, PieOptions{})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
	_, err = a.Pie([]float64{1, 1}, PieOptions{Labels: []string{"x"}})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
}

func TestImshowUpperOrigin(t *testing.T) {
	a := newAxes(t)
	im, err := a.Imshow([][]float64{{1, 2, 3}, {4, 5, 6}}, ImshowOptions{})
	require.NoError(t, err)
	assert.Len(t, a.Images(), 1)

	lo, hi := a.XLim()
	assert.Equal(t, [2]float64{-0.5, 2.5}, [2]float64{lo, hi})
	lo, hi = a.YLim()
	assert.Equal(t, [2]float64{1.5, -0.5}, [2]float64{lo, hi}, "row 0 at the top")
	assert.Equal(t, 1.0, a.Aspect())
	assert.Equal(t, "upper", im.Origin())

	_, err = a.Imshow("pixels", ImshowOptions{})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
	_, err = a.Imshow([][]float64{{1}}, ImshowOptions{Extent: []float64{0, 1}})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
}

func TestPcolorShapes(t *testing.T) {
	a := newAxes(t)
	c := [][]float64{{1, 2}, {3, math.NaN()}}
	pc, err := a.Pcolor(nil, nil, c, MeshOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, pc.Len(), "NaN cells are skipped")

	_, err = a.Pcolor([]float64{0, 1}, nil, c, MeshOptions{})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
	_, err = a.Pcolormesh(nil, nil, [][]float64{{1, 2}, {3}}, MeshOptions{})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)

	qm, err := a.Pcolormesh([]float64{0, 1, 3}, []float64{0, 2, 4}, c, MeshOptions{})
	require.NoError(t, err)
	require.NotNil(t, qm)
	x0, y0, x1, y1 := a.DataLim().Extents()
	assert.Equal(t, [4]float64{0, 0, 3, 4}, [4]float64{x0, y0, x1, y1})
}

func TestAcorr(t *testing.T) {
	a := newAxes(t)
	x := make([]float64, 20)
	for i := range x {
		x[i] = math.Sin(float64(i))
	}
	res, err := a.Acorr(x, CorrOptions{Normed: true, MaxLags: 5})
	require.NoError(t, err)
	require.Len(t, res.Lags, 11)
	assert.InDelta(t, 1, res.C[5], 1e-9, "zero lag of a normed autocorrelation")
	assert.NotNil(t, res.Lines)
	assert.NotNil(t, res.Baseline)
}

func TestTwinxSharesX(t *testing.T) {
	a := newAxes(t)
	tw, err := a.Twinx()
	require.NoError(t, err)
	assert.Same(t, a, tw.SharedX())
	assert.False(t, tw.FrameOn())

	require.NoError(t, a.SetXLim(3, 7, true))
	lo, hi := tw.XLim()
	assert.Equal(t, [2]float64{3, 7}, [2]float64{lo, hi})

	require.NoError(t, tw.SetYLim(0, 100, false))
	lo, hi = a.YLim()
	assert.Equal(t, [2]float64{0, 1}, [2]float64{lo, hi})
}

func TestClaResets(t *testing.T) {
	a := newAxes(t)
	_, err := a.Plot(nil, []float64{1, 2, 3}, "")
	require.NoError(t, err)
	_, err = a.Text(1, 1, "note")
	require.NoError(t, err)
	a.SetAutoscaleOn(false)
	a.Cla()
	assert.Empty(t, a.Lines())
	assert.Empty(t, a.Texts())
	assert.True(t, a.AutoscaleOn())
	lo, hi := a.XLim()
	assert.Equal(t, [2]float64{0, 1}, [2]float64{lo, hi})
}

func TestAutoLegendSkipsPrivateLabels(t *testing.T) {
	a := newAxes(t)
	_, err := a.Plot(nil, []float64{1, 2}, "", "label", "data")
	require.NoError(t, err)
	_, err = a.Plot(nil, []float64{2, 1}, "")
	require.NoError(t, err)
	leg, err := a.AutoLegend("upper left")
	require.NoError(t, err)
	require.Len(t, leg.Texts(), 1)
	assert.Equal(t, "data", leg.Texts()[0].Text())
}

func TestPolarAxes(t *testing.T) {
	p, err := NewPolar(newFig(), mainRect)
	require.NoError(t, err)

	_, err = p.Plot([]float64{0, math.Pi / 2, math.Pi}, []float64{1, 3.7, 2}, "g-")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.RMax(), 3.7)
	for _, r := range p.RGrids() {
		assert.LessOrEqual(t, r, p.RMax()*(1+1e-9))
	}

	require.NoError(t, p.SetRMax(4))
	p.applyAspect()
	x, y := p.TransData().XY(0, 4)
	assert.InDelta(t, 640, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)
	x, y = p.TransData().XY(math.Pi/2, 4)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 540, y, 1e-9)

	rec := recording.NewRecorder(800, 600, 72)
	require.NoError(t, p.Draw(rec))
	got := texts(rec)
	assert.Contains(t, got, "90°")
	assert.Contains(t, got, "0°")

	assert.ErrorIs(t, p.SetRMax(0), gplot.ErrInvalidValue)
	_, err = p.Plot([]float64{0}, []float64{1, 2}, "")
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
}
