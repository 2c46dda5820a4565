// Package table draws a grid of text cells attached to an axes.
//
// Cells are laid out in axes coordinates: row 0 is the top row and
// columns run left to right. Each row takes the height of its tallest
// cell and each column the width of its widest. The whole grid is then
// moved to its location relative to the axes.
package table

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/text"
	"github.com/gogpu/gplot/transform"
)

// Pad is the cell padding as a fraction of the cell width.
const Pad = 0.1

// FontSize is the starting font size in points.
const FontSize = 10.0

// AxesPad separates a table from the axes edge, in axes units.
const AxesPad = 0.02

// Cell is a rectangle holding one text.
type Cell struct {
	*patches.Rectangle
	text *text.Text
	loc  text.HAlign
}

// NewCell returns a cell with lower-left (x, y) in axes units.
func NewCell(x, y, w, h float64, s string, loc text.HAlign) *Cell {
	c := &Cell{
		Rectangle: patches.NewRectangle(x, y, w, h),
		text:      text.New(x, y, s),
		loc:       loc,
	}
	_ = c.SetFaceColor(colors.White)
	_ = c.SetEdgeColor(colors.Black)
	c.text.SetHAlign(loc)
	c.text.SetVAlign(text.Middle)
	_ = c.text.SetFontSize(FontSize)
	return c
}

// Text returns the cell text.
func (c *Cell) Text() *text.Text { return c.text }

// SetTransform sets the transform of the frame and the text.
func (c *Cell) SetTransform(t transform.Transform) {
	c.Rectangle.SetTransform(t)
	c.text.SetTransform(t)
}

// placeText anchors the text inside the frame per the cell alignment.
func (c *Cell) placeText() {
	x, y := c.XY()
	w, h := c.Width(), c.Height()
	tx := x + w/2
	switch c.loc {
	case text.Left:
		tx = x + Pad*w
	case text.Right:
		tx = x + w - Pad*w
	}
	c.text.SetPosition(tx, y+h/2)
}

// RequiredWidth returns the width in axes units the text needs with
// padding on both sides.
func (c *Cell) RequiredWidth(r backend.Renderer) (float64, error) {
	ext, err := c.text.WindowExtent(r)
	if err != nil {
		return 0, err
	}
	x0, _, err := c.inverse(ext.XMin(), 0)
	if err != nil {
		return 0, err
	}
	x1, _, err := c.inverse(ext.XMax(), 0)
	if err != nil {
		return 0, err
	}
	return (x1 - x0) * (1 + 2*Pad), nil
}

func (c *Cell) inverse(x, y float64) (float64, float64, error) {
	return c.Rectangle.Transform().InverseXY(x, y)
}

// Draw implements artist.Artist.
func (c *Cell) Draw(r backend.Renderer) error {
	if !c.Visible() {
		return nil
	}
	if err := c.Rectangle.Draw(r); err != nil {
		return err
	}
	c.placeText()
	return c.text.Draw(r)
}

// Table is a set of cells keyed by row and column.
type Table struct {
	artist.Base

	axes     artist.Axes
	cells    map[[2]int]*Cell
	loc      string
	fontSize float64
	autoFont bool
}

var locs = []string{
	"best", "upper right", "upper left", "lower left", "lower right",
	"center left", "center right", "lower center", "upper center", "center",
	"top right", "top left", "bottom left", "bottom right",
	"right", "left", "top", "bottom",
}

// New returns an empty table placed at loc relative to axes.
func New(axes artist.Axes, loc string) (*Table, error) {
	loc = strings.ToLower(loc)
	if loc == "" {
		loc = "bottom"
	}
	if !slices.Contains(locs, loc) {
		return nil, fmt.Errorf("table: %w: location %q", gplot.ErrInvalidValue, loc)
	}
	t := &Table{
		axes:     axes,
		cells:    make(map[[2]int]*Cell),
		loc:      loc,
		fontSize: FontSize,
		autoFont: true,
	}
	t.Init(t)
	t.SetZOrder(6)
	return t, nil
}

// AddCell adds a cell at (row, col) replacing any cell there. Width and
// height are in axes units.
func (t *Table) AddCell(row, col int, w, h float64, s string, face, edge any) (*Cell, error) {
	c := NewCell(0, 0, w, h, s, text.Right)
	if face != nil {
		if err := c.SetFaceColor(face); err != nil {
			return nil, fmt.Errorf("table: %w", err)
		}
	}
	if edge != nil {
		if err := c.SetEdgeColor(edge); err != nil {
			return nil, fmt.Errorf("table: %w", err)
		}
	}
	t.SetCell(row, col, c)
	return c, nil
}

// SetCell stores c at (row, col).
func (t *Table) SetCell(row, col int, c *Cell) {
	if t.axes != nil {
		c.SetTransform(t.axes.TransAxes())
	}
	c.SetClipOn(false)
	_ = c.text.SetFontSize(t.fontSize)
	t.cells[[2]int{row, col}] = c
	t.PChanged()
}

// Cell returns the cell at (row, col), or nil.
func (t *Table) Cell(row, col int) *Cell { return t.cells[[2]int{row, col}] }

// Cells returns the cells ordered by row then column.
func (t *Table) Cells() []*Cell {
	keys := slices.SortedFunc(maps.Keys(t.cells), func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	out := make([]*Cell, len(keys))
	for i, k := range keys {
		out[i] = t.cells[k]
	}
	return out
}

// FontSize returns the font size in points.
func (t *Table) FontSize() float64 { return t.fontSize }

// SetFontSize sets the font size of every cell and turns automatic
// sizing off.
func (t *Table) SetFontSize(size float64) {
	t.fontSize = size
	t.autoFont = false
	for _, c := range t.cells {
		_ = c.text.SetFontSize(size)
	}
}

// AutoSetFontSize turns automatic font sizing on or off. When on, the
// font shrinks until every text fits its cell.
func (t *Table) AutoSetFontSize(on bool) { t.autoFont = on }

// Schema implements artist.Artist.
func (t *Table) Schema() *artist.Schema { return tableSchema }

var tableSchema = artist.NewSchema(artist.BaseSchema,
	artist.Property{
		Name: "fontsize", Accepts: "float in points",
		Get: artist.Getter((*Table).FontSize),
		Set: artist.FloatSetter((*Table).SetFontSize),
	},
)

// fitFont shrinks the font one point at a time while a text overflows
// its cell.
func (t *Table) fitFont(r backend.Renderer) error {
	size := t.fontSize
	for size > 1 {
		fits := true
		for _, c := range t.cells {
			need, err := c.RequiredWidth(r)
			if err != nil {
				return err
			}
			if need > c.Width() {
				fits = false
				break
			}
		}
		if fits {
			break
		}
		size--
		for _, c := range t.cells {
			_ = c.text.SetFontSize(size)
		}
	}
	t.fontSize = size
	return nil
}

// layout aligns the cells into rows and columns and moves the grid to
// its location.
func (t *Table) layout() {
	widths := map[int]float64{}
	heights := map[int]float64{}
	for k, c := range t.cells {
		widths[k[1]] = max(widths[k[1]], c.Width())
		heights[k[0]] = max(heights[k[0]], c.Height())
	}
	rows := slices.Sorted(maps.Keys(heights))
	cols := slices.Sorted(maps.Keys(widths))

	left := map[int]float64{}
	x := 0.0
	for _, col := range cols {
		left[col] = x
		x += widths[col]
	}
	bottom := map[int]float64{}
	y := 0.0
	for _, row := range rows {
		y -= heights[row]
		bottom[row] = y
	}
	w, h := x, -y
	ox, oy := t.offset(w, h)
	for k, c := range t.cells {
		c.SetBounds(left[k[1]]+ox, bottom[k[0]]+oy, widths[k[1]], heights[k[0]])
	}
}

// offset returns the shift from a grid whose top left is at the origin
// to its location.
func (t *Table) offset(w, h float64) (ox, oy float64) {
	left, right := AxesPad, 1-AxesPad-w
	top, low := 1-AxesPad, AxesPad+h
	midX, midY := (1-w)/2, (1+h)/2
	switch t.loc {
	case "upper right":
		return right, top
	case "upper left":
		return left, top
	case "lower left":
		return left, low
	case "lower right":
		return right, low
	case "center left":
		return left, midY
	case "center right":
		return right, midY
	case "lower center":
		return midX, low
	case "upper center":
		return midX, top
	case "center":
		return midX, midY
	case "top right":
		return 1 - w, 1 + h
	case "top left":
		return 0, 1 + h
	case "bottom left":
		return 0, 0
	case "bottom right":
		return 1 - w, 0
	case "right":
		return 1, 1
	case "left":
		return -w, 1
	case "top":
		return midX, 1 + h
	case "bottom":
		return midX, 0
	}
	// best: the lower right corner inside the axes.
	return right, low
}

// Draw implements artist.Artist.
func (t *Table) Draw(r backend.Renderer) error {
	if !t.Visible() || len(t.cells) == 0 {
		return nil
	}
	r.OpenGroup("table")
	defer r.CloseGroup("table")
	if t.autoFont {
		if err := t.fitFont(r); err != nil {
			return fmt.Errorf("table: %w", err)
		}
	}
	t.layout()
	for _, c := range t.Cells() {
		if err := c.Draw(r); err != nil {
			return err
		}
	}
	return nil
}

// WindowExtent implements artist.Extenter.
func (t *Table) WindowExtent(r backend.Renderer) (*bbox.Bbox, error) {
	t.layout()
	var boxes []*bbox.Bbox
	for _, c := range t.cells {
		b, err := c.WindowExtent(r)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}
	if len(boxes) == 0 {
		return nil, fmt.Errorf("table: %w: no cells", gplot.ErrInvalidValue)
	}
	return bbox.BboxAll(boxes), nil
}

// Spec describes a table built from rows of strings.
type Spec struct {
	CellText    [][]string
	CellColours [][]any
	CellLoc     string
	ColWidths   []float64
	RowLabels   []string
	RowColours  []any
	RowLoc      string
	ColLabels   []string
	ColColours  []any
	ColLoc      string
	Loc         string
	// RowHeight is the height of every row in axes units; zero means 0.05.
	RowHeight float64
}

// FromSpec builds a table from s. Column labels occupy row 0 and row
// labels column -1.
func FromSpec(axes artist.Axes, s Spec) (*Table, error) {
	rows := len(s.CellText)
	if rows == 0 {
		return nil, fmt.Errorf("table: %w: no cell text", gplot.ErrInvalidValue)
	}
	cols := len(s.CellText[0])
	for _, row := range s.CellText {
		if len(row) != cols {
			return nil, &gplot.ShapeError{Op: "table", Got: []int{len(row)}, Want: []int{cols}}
		}
	}
	if s.CellColours != nil {
		if len(s.CellColours) != rows {
			return nil, &gplot.ShapeError{Op: "table colours", Got: []int{len(s.CellColours)}, Want: []int{rows}}
		}
		for _, row := range s.CellColours {
			if len(row) != cols {
				return nil, &gplot.ShapeError{Op: "table colours", Got: []int{len(row)}, Want: []int{cols}}
			}
		}
	}
	widths := s.ColWidths
	if widths == nil {
		widths = make([]float64, cols)
		for i := range widths {
			widths[i] = 1 / float64(cols)
		}
	} else if len(widths) != cols {
		return nil, &gplot.ShapeError{Op: "table widths", Got: []int{len(widths)}, Want: []int{cols}}
	}
	for _, lab := range []struct {
		name string
		got  int
		want int
	}{
		{"table row labels", len(s.RowLabels), rows},
		{"table row colours", len(s.RowColours), rows},
		{"table col labels", len(s.ColLabels), cols},
		{"table col colours", len(s.ColColours), cols},
	} {
		if lab.got != 0 && lab.got != lab.want {
			return nil, &gplot.ShapeError{Op: lab.name, Got: []int{lab.got}, Want: []int{lab.want}}
		}
	}
	cellLoc, err := parseLoc(s.CellLoc, text.Right)
	if err != nil {
		return nil, err
	}
	rowLoc, err := parseLoc(s.RowLoc, text.Left)
	if err != nil {
		return nil, err
	}
	colLoc, err := parseLoc(s.ColLoc, text.Center)
	if err != nil {
		return nil, err
	}
	h := s.RowHeight
	if h <= 0 {
		h = 0.05
	}

	t, err := New(axes, s.Loc)
	if err != nil {
		return nil, err
	}
	offset := 0
	if s.ColLabels != nil {
		offset = 1
		for c, lab := range s.ColLabels {
			var face any
			if s.ColColours != nil {
				face = s.ColColours[c]
			}
			if err := t.add(0, c, widths[c], h, lab, face, colLoc); err != nil {
				return nil, err
			}
		}
	}
	for r, row := range s.CellText {
		for c, str := range row {
			var face any
			if s.CellColours != nil {
				face = s.CellColours[r][c]
			}
			if err := t.add(r+offset, c, widths[c], h, str, face, cellLoc); err != nil {
				return nil, err
			}
		}
	}
	if s.RowLabels != nil {
		// Row labels take the width of the first column.
		w := widths[0]
		for r, lab := range s.RowLabels {
			var face any
			if s.RowColours != nil {
				face = s.RowColours[r]
			}
			if err := t.add(r+offset, -1, w, h, lab, face, rowLoc); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (t *Table) add(row, col int, w, h float64, s string, face any, loc text.HAlign) error {
	c := NewCell(0, 0, w, h, s, loc)
	if face != nil {
		if err := c.SetFaceColor(face); err != nil {
			return fmt.Errorf("table: %w", err)
		}
	}
	t.SetCell(row, col, c)
	return nil
}

func parseLoc(s string, def text.HAlign) (text.HAlign, error) {
	if s == "" {
		return def, nil
	}
	a, err := text.ParseHAlign(s)
	if err != nil {
		return 0, fmt.Errorf("table: %w", err)
	}
	return a, nil
}
