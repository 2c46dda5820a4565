package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/recording"
	"github.com/gogpu/gplot/text"
	"github.com/gogpu/gplot/transform"
)

type stubAxes struct{ axes *transform.Separable }

func (s stubAxes) TransData() *transform.Separable { return s.axes }
func (s stubAxes) TransAxes() *transform.Separable { return s.axes }

func newAxes() stubAxes {
	return stubAxes{transform.BboxTransform(bbox.UnitBbox(), bbox.FromExtents(100, 50, 500, 350))}
}

func TestFromSpecLayout(t *testing.T) {
	tb, err := FromSpec(newAxes(), Spec{
		CellText:  [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
		ColLabels: []string{"a", "b", "c"},
		RowLabels: []string{"x", "y"},
		RowHeight: 0.1,
	})
	require.NoError(t, err)
	tb.SetFontSize(8)
	rec := recording.NewRecorder(600, 400, 72)
	require.NoError(t, tb.Draw(rec))

	assert.Len(t, tb.Cells(), 3+6+2)
	assert.Equal(t, "a", tb.Cell(0, 0).Text().Text())
	assert.Equal(t, "4", tb.Cell(2, 0).Text().Text())
	assert.Equal(t, "y", tb.Cell(2, -1).Text().Text())

	// The bottom table hangs under the axes, centered.
	_, top := tb.Cell(0, 0).XY()
	assert.InDelta(t, -0.1, top, 1e-12)
	// The label row has no row-label cell; column -1 starts at row 1.
	assert.Nil(t, tb.Cell(0, -1))
	x0, _ := tb.Cell(1, -1).XY()
	x1, _ := tb.Cell(0, 2).XY()
	assert.InDelta(t, 0.5, (x0+x1+tb.Cell(0, 2).Width())/2, 1e-12)

	_, y2 := tb.Cell(2, 1).XY()
	assert.InDelta(t, -0.3, y2, 1e-12)

	ext, err := tb.WindowExtent(rec)
	require.NoError(t, err)
	assert.InDelta(t, 50, ext.YMax(), 1e-9)
	assert.InDelta(t, 50-0.3*300, ext.YMin(), 1e-9)

	assert.Len(t, rec.Finish().Filter(recording.CmdDrawText), 11)
}

func TestCellAlignment(t *testing.T) {
	c := NewCell(0, 0, 1, 1, "x", text.Left)
	c.placeText()
	x, y := c.Text().Position()
	assert.InDelta(t, Pad, x, 1e-12)
	assert.InDelta(t, 0.5, y, 1e-12)
}

func TestAutoFontShrinks(t *testing.T) {
	tb, err := New(newAxes(), "upper left")
	require.NoError(t, err)
	_, err = tb.AddCell(0, 0, 0.02, 0.1, "a rather long label", "w", nil)
	require.NoError(t, err)
	rec := recording.NewRecorder(600, 400, 72)
	require.NoError(t, tb.Draw(rec))
	assert.Less(t, tb.FontSize(), FontSize)

	x, y := tb.Cell(0, 0).XY()
	assert.InDelta(t, AxesPad, x, 1e-12)
	assert.InDelta(t, 1-AxesPad-0.1, y, 1e-12)
}

func TestSpecErrors(t *testing.T) {
	_, err := FromSpec(newAxes(), Spec{CellText: [][]string{{"1", "2"}, {"3"}}})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
	_, err = FromSpec(newAxes(), Spec{CellText: [][]string{{"1"}}, ColLabels: []string{"a", "b"}})
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
	_, err = FromSpec(newAxes(), Spec{CellText: [][]string{{"1"}}, CellLoc: "diagonal"})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
	_, err = New(newAxes(), "nowhere")
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
	_, err = FromSpec(newAxes(), Spec{})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
}
