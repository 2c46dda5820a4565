package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/recording"
	"github.com/gogpu/gplot/ticker"
	"github.com/gogpu/gplot/transform"
)

type stubAxes struct {
	viewLim, dataLim *bbox.Bbox
	data, axes       *transform.Separable
}

func (s *stubAxes) TransData() *transform.Separable { return s.data }
func (s *stubAxes) TransAxes() *transform.Separable { return s.axes }

// newStub lays the view limits over the display box (100, 50)-(500, 350).
func newStub(x0, y0, x1, y1 float64) *stubAxes {
	box := bbox.FromExtents(100, 50, 500, 350)
	view := bbox.FromExtents(x0, y0, x1, y1)
	return &stubAxes{
		viewLim: view,
		dataLim: bbox.FromExtents(x0, y0, x1, y1),
		data:    transform.BboxTransform(view, box),
		axes:    transform.BboxTransform(bbox.UnitBbox(), box),
	}
}

func (s *stubAxes) xaxis() *XAxis {
	return NewXAxis(s, s.viewLim.IntervalX(), s.dataLim.IntervalX())
}

func (s *stubAxes) yaxis() *YAxis {
	return NewYAxis(s, s.viewLim.IntervalY(), s.dataLim.IntervalY())
}

func labels(ticks []*Tick, n int) []string {
	out := make([]string, n)
	for i := range n {
		out[i] = ticks[i].Label1.Text()
	}
	return out
}

func TestXAxisDraw(t *testing.T) {
	s := newStub(0, -1, 10, 1)
	ax := s.xaxis()
	ax.SetLabelText("time")
	rec := recording.NewRecorder(600, 400, 72)
	require.NoError(t, ax.Draw(rec))

	require.Len(t, ax.MajorTicks(), 6)
	assert.Equal(t, []string{"0", "2", "4", "6", "8", "10"}, labels(ax.MajorTicks(), 6))

	x, y := ax.MajorTicks()[2].Label1.Position()
	assert.InDelta(t, 260, x, 1e-9)
	assert.InDelta(t, 46, y, 1e-9)

	bottom := 50.0
	for _, tk := range ax.MajorTicks() {
		bb, err := tk.Label1.WindowExtent(rec)
		require.NoError(t, err)
		bottom = min(bottom, bb.YMin())
	}
	_, ly := ax.AxisLabel().Position()
	assert.InDelta(t, bottom-LabelPad, ly, 1e-9)

	var texts []string
	for _, c := range rec.Finish().Filter(recording.CmdDrawText) {
		texts = append(texts, c.(recording.DrawTextCommand).Text)
	}
	assert.Contains(t, texts, "time")
	assert.Contains(t, texts, "10")
	assert.Empty(t, rec.Finish().Filter(recording.CmdDrawLines), "grid is off by default")
}

func TestYAxisLabels(t *testing.T) {
	s := newStub(0, -1, 10, 1)
	ax := s.yaxis()
	rec := recording.NewRecorder(600, 400, 72)
	require.NoError(t, ax.Draw(rec))
	assert.Equal(t, []string{"−1.0", "−0.5", "0.0", "0.5", "1.0"}, labels(ax.MajorTicks(), 5))
	assert.Equal(t, 90.0, ax.AxisLabel().Rotation())
}

func TestOffsetText(t *testing.T) {
	s := newStub(0, 0.0001, 1, 0.0009)
	ax := s.yaxis()
	rec := recording.NewRecorder(600, 400, 72)
	require.NoError(t, ax.Draw(rec))
	assert.Equal(t, "×10⁻⁴", ax.OffsetText().Text())
	assert.Equal(t, []string{"1", "2", "3"}, labels(ax.MajorTicks(), 3))
	_, y := ax.OffsetText().Position()
	assert.InDelta(t, 350+OffsetTextPad, y, 1e-9)
}

func TestTickPoolCopiesPrototype(t *testing.T) {
	s := newStub(0, -1, 10, 1)
	ax := s.xaxis()
	ax.MajorTicks()[0].Pad = 10
	ax.Grid(true, "major")
	rec := recording.NewRecorder(600, 400, 72)
	require.NoError(t, ax.Draw(rec))

	for _, tk := range ax.MajorTicks() {
		assert.Equal(t, 10.0, tk.Pad)
		assert.True(t, tk.GridOn)
	}
	assert.Len(t, rec.Finish().Filter(recording.CmdDrawLines), 6)

	ax.Cla()
	assert.Len(t, ax.MajorTicks(), 1)
	assert.Len(t, ax.MinorTicks(), 1)
}

func TestMinorTicksSkipMajor(t *testing.T) {
	s := newStub(0, -1, 10, 1)
	ax := s.xaxis()
	m, err := ticker.NewMultipleLocator(1)
	require.NoError(t, err)
	ax.SetMinorLocator(m)
	rec := recording.NewRecorder(600, 400, 72)
	require.NoError(t, ax.Draw(rec))
	assert.Len(t, ax.MinorTicks(), 5)
	assert.Equal(t, 1.0, ax.MinorTicks()[0].Loc())
}

func TestPanZoomWriteBack(t *testing.T) {
	s := newStub(0, -1, 10, 1)
	ax := s.xaxis()
	ax.Pan(1)
	assert.InDelta(t, 2, s.viewLim.XMin(), 1e-12)
	assert.InDelta(t, 12, s.viewLim.XMax(), 1e-12)
	ax.Zoom(1)
	assert.InDelta(t, 3, s.viewLim.XMin(), 1e-12)
	assert.InDelta(t, 11, s.viewLim.XMax(), 1e-12)
}

func TestScaleAndPosition(t *testing.T) {
	s := newStub(1, 1, 1000, 10)
	ax := s.xaxis()
	require.NoError(t, ax.SetScale("log"))
	assert.Equal(t, "log", ax.Scale())
	assert.IsType(t, &ticker.LogLocator{}, ax.Major().Locator)
	assert.ErrorIs(t, ax.SetScale("symlog"), gplot.ErrInvalidValue)

	require.NoError(t, ax.SetTicksPosition("top"))
	for _, tk := range ax.MajorTicks() {
		assert.False(t, tk.Label1On)
		assert.True(t, tk.Label2On)
		assert.False(t, tk.Tick1On)
	}
	assert.ErrorIs(t, ax.SetTicksPosition("left"), gplot.ErrInvalidValue)
	assert.ErrorIs(t, ax.SetTickDirection("sideways"), gplot.ErrInvalidValue)
}
