// Package axis draws one coordinate direction of an axes: its ticks,
// tick labels, gridlines, axis label and the offset text of the major
// formatter.
//
// An Axis reads its view and data limits through intervals shared with
// the owning axes, so a locator bound to them sees limit changes
// immediately and pan and zoom write straight back into the axes.
package axis

import (
	"fmt"
	"math"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/text"
	"github.com/gogpu/gplot/ticker"
)

// Padding in points between the tick labels and the axis label or the
// offset text.
const (
	LabelPad      = 5
	OffsetTextPad = 3
)

// Ticker pairs a locator with its formatter.
type Ticker struct {
	Locator   ticker.Locator
	Formatter ticker.Formatter
}

// Axis is the state shared by XAxis and YAxis.
type Axis struct {
	artist.Base

	x          bool
	axes       artist.Axes
	view, data *bbox.Interval
	scale      string

	major, minor Ticker
	majorTicks   []*Tick
	minorTicks   []*Tick

	label      *text.Text
	offsetText *text.Text
}

// XAxis is the horizontal axis. Its label sits below the tick labels.
type XAxis struct{ Axis }

// YAxis is the vertical axis. Its label sits left of the tick labels,
// rotated.
type YAxis struct{ Axis }

// NewXAxis returns the x axis of axes over the given view and data
// intervals.
func NewXAxis(axes artist.Axes, view, data *bbox.Interval) *XAxis {
	a := &XAxis{}
	a.init(a, true, axes, view, data)
	return a
}

// NewYAxis returns the y axis of axes.
func NewYAxis(axes artist.Axes, view, data *bbox.Interval) *YAxis {
	a := &YAxis{}
	a.init(a, false, axes, view, data)
	return a
}

func (a *Axis) init(self artist.Artist, x bool, axes artist.Axes, view, data *bbox.Interval) {
	a.Init(self)
	a.x, a.axes, a.view, a.data = x, axes, view, data
	rc := rcparams.Default()
	a.label = text.New(0, 0, "")
	_ = a.label.SetFontSize(rc.Float("axes.labelsize"))
	_ = a.label.SetColor(rc.Color("axes.labelcolor"))
	a.offsetText = text.New(0, 0, "")
	if x {
		a.label.SetHAlign(text.Center)
		a.label.SetVAlign(text.Top)
		a.offsetText.SetHAlign(text.Right)
		a.offsetText.SetVAlign(text.Top)
		_ = a.offsetText.SetFontSize(rc.Float("xtick.labelsize"))
	} else {
		a.label.SetHAlign(text.Right)
		a.label.SetVAlign(text.Middle)
		_ = a.label.SetRotation(90)
		a.offsetText.SetHAlign(text.Left)
		a.offsetText.SetVAlign(text.Bottom)
		_ = a.offsetText.SetFontSize(rc.Float("ytick.labelsize"))
	}
	a.Cla()
}

// Cla resets the tickers to the linear defaults, shrinks both tick
// pools back to their prototypes and reapplies the axes.grid rc param.
func (a *Axis) Cla() {
	a.scale = "linear"
	a.SetMajorLocator(ticker.NewAutoLocator())
	a.SetMajorFormatter(ticker.NewScalarFormatter())
	a.SetMinorLocator(&ticker.NullLocator{})
	a.SetMinorFormatter(&ticker.NullFormatter{})
	a.majorTicks = []*Tick{newTick(a.axes, a.x, true)}
	a.minorTicks = []*Tick{newTick(a.axes, a.x, false)}
	a.label.SetText("")
	a.Grid(rcparams.Default().Bool("axes.grid"), "major")
}

// ViewInterval returns the view limits along the axis.
func (a *Axis) ViewInterval() *bbox.Interval { return a.view }

// DataInterval returns the data limits along the axis.
func (a *Axis) DataInterval() *bbox.Interval { return a.data }

// SetIntervals rebinds the view and data intervals, as when the owning
// axes starts sharing limits with another.
func (a *Axis) SetIntervals(view, data *bbox.Interval) {
	a.view, a.data = view, data
	for _, t := range []Ticker{a.major, a.minor} {
		t.Locator.SetIntervals(view, data)
		t.Formatter.SetIntervals(view, data)
	}
}

// Major returns the major ticker.
func (a *Axis) Major() Ticker { return a.major }

// Minor returns the minor ticker.
func (a *Axis) Minor() Ticker { return a.minor }

// SetMajorLocator binds l to the axis intervals and uses it for major
// ticks.
func (a *Axis) SetMajorLocator(l ticker.Locator) {
	l.SetIntervals(a.view, a.data)
	a.major.Locator = l
}

// SetMajorFormatter binds f to the axis intervals and uses it for major
// tick labels.
func (a *Axis) SetMajorFormatter(f ticker.Formatter) {
	f.SetIntervals(a.view, a.data)
	a.major.Formatter = f
}

// SetMinorLocator sets the minor tick locator.
func (a *Axis) SetMinorLocator(l ticker.Locator) {
	l.SetIntervals(a.view, a.data)
	a.minor.Locator = l
}

// SetMinorFormatter sets the minor tick label formatter.
func (a *Axis) SetMinorFormatter(f ticker.Formatter) {
	f.SetIntervals(a.view, a.data)
	a.minor.Formatter = f
}

// ShareTickers makes a use the very locators and formatters of o.
func (a *Axis) ShareTickers(o *Axis) {
	a.major, a.minor = o.major, o.minor
}

// Scale returns "linear" or "log".
func (a *Axis) Scale() string { return a.scale }

// SetScale installs the tickers for a linear or base-10 log scale. The
// owning axes switches the transform.
func (a *Axis) SetScale(name string) error {
	switch name {
	case "linear":
		a.SetMajorLocator(ticker.NewAutoLocator())
		a.SetMajorFormatter(ticker.NewScalarFormatter())
		a.SetMinorLocator(&ticker.NullLocator{})
		a.SetMinorFormatter(&ticker.NullFormatter{})
	case "log":
		major, _ := ticker.NewLogLocator(10, nil)
		minor, _ := ticker.NewLogLocator(10, []float64{2, 3, 4, 5, 6, 7, 8, 9})
		a.SetMajorLocator(major)
		a.SetMajorFormatter(ticker.NewLogFormatterMathtext(10, true))
		a.SetMinorLocator(minor)
		a.SetMinorFormatter(&ticker.NullFormatter{})
	default:
		return fmt.Errorf("axis: %w: scale %q", gplot.ErrInvalidValue, name)
	}
	a.scale = name
	return nil
}

// SetMinPositive passes the smallest positive data value to log
// locators.
func (a *Axis) SetMinPositive(v float64) {
	for _, t := range []Ticker{a.major, a.minor} {
		if l, ok := t.Locator.(*ticker.LogLocator); ok {
			l.SetMinPositive(v)
		}
	}
}

// AxisLabel returns the axis label text.
func (a *Axis) AxisLabel() *text.Text { return a.label }

// SetLabelText sets the axis label.
func (a *Axis) SetLabelText(s string) { a.label.SetText(s) }

// OffsetText returns the text showing the major formatter offset.
func (a *Axis) OffsetText() *text.Text { return a.offsetText }

// MajorTicks returns the major tick pool. Entry 0 is the prototype new
// ticks copy their style from.
func (a *Axis) MajorTicks() []*Tick { return a.majorTicks }

// MinorTicks returns the minor tick pool.
func (a *Axis) MinorTicks() []*Tick { return a.minorTicks }

// Grid shows or hides the gridlines of "major", "minor" or "both" ticks.
func (a *Axis) Grid(on bool, which string) {
	if which == "major" || which == "both" {
		for _, t := range a.majorTicks {
			t.GridOn = on
		}
	}
	if which == "minor" || which == "both" {
		for _, t := range a.minorTicks {
			t.GridOn = on
		}
	}
	a.PChanged()
}

// setTicks applies fn to every tick of both pools.
func (a *Axis) setTicks(fn func(*Tick)) {
	for _, pool := range [][]*Tick{a.majorTicks, a.minorTicks} {
		for _, t := range pool {
			fn(t)
		}
	}
	a.PChanged()
}

// SetTickDirection points the tick marks "in" or "out" of the axes.
func (a *Axis) SetTickDirection(dir string) error {
	if dir != "in" && dir != "out" {
		return fmt.Errorf("axis: %w: tick direction %q", gplot.ErrInvalidValue, dir)
	}
	a.setTicks(func(t *Tick) { t.Direction = dir })
	return nil
}

// Pan moves the view by numSteps major tick spacings.
func (a *Axis) Pan(numSteps int) { ticker.Pan(a.major.Locator, numSteps) }

// Zoom narrows (positive direction) or widens the view by 10% of its
// span per side.
func (a *Axis) Zoom(direction int) { ticker.Zoom(a.major.Locator, direction) }

// locsInView filters locs to the closed view interval, with a tolerance
// of a billionth of its span for rounding in the locator.
func (a *Axis) locsInView(locs []float64) []float64 {
	lo, hi := a.view.Min(), a.view.Max()
	tol := 1e-9 * (hi - lo)
	var out []float64
	for _, v := range locs {
		if v >= lo-tol && v <= hi+tol {
			out = append(out, v)
		}
	}
	return out
}

// grow extends pool to n ticks, copying the prototype style.
func (a *Axis) grow(pool []*Tick, n int, major bool) []*Tick {
	for len(pool) < n {
		t := newTick(a.axes, a.x, major)
		t.copyStyle(pool[0])
		pool = append(pool, t)
	}
	return pool
}

// drawTicks draws one tick per loc and returns the extents of the drawn
// side-1 and side-2 labels.
func (a *Axis) drawTicks(r backend.Renderer, pool []*Tick, locs []float64, f ticker.Formatter) (b1, b2 []*bbox.Bbox, err error) {
	f.SetLocs(locs)
	for i, loc := range locs {
		t := pool[i]
		t.SetLoc(loc)
		t.SetLabelText(f.Format(loc, i))
		if err := t.Draw(r); err != nil {
			return nil, nil, err
		}
		if t.Label1On && t.Label1.Text() != "" {
			if bb, err := t.Label1.WindowExtent(r); err == nil {
				b1 = append(b1, bb)
			}
		}
		if t.Label2On && t.Label2.Text() != "" {
			if bb, err := t.Label2.WindowExtent(r); err == nil {
				b2 = append(b2, bb)
			}
		}
	}
	return b1, b2, nil
}

// Draw implements artist.Artist.
func (a *Axis) Draw(r backend.Renderer) error {
	if !a.Visible() {
		return nil
	}
	r.OpenGroup("axis")
	defer r.CloseGroup("axis")

	majorLocs := a.locsInView(a.major.Locator.Locs())
	a.majorTicks = a.grow(a.majorTicks, len(majorLocs), true)
	b1, b2, err := a.drawTicks(r, a.majorTicks, majorLocs, a.major.Formatter)
	if err != nil {
		return fmt.Errorf("axis: major ticks: %w", err)
	}

	var minorLocs []float64
	tol := 1e-9 * math.Abs(a.view.Span())
	for _, v := range a.locsInView(a.minor.Locator.Locs()) {
		if !nearAny(v, majorLocs, tol) {
			minorLocs = append(minorLocs, v)
		}
	}
	a.minorTicks = a.grow(a.minorTicks, len(minorLocs), false)
	m1, m2, err := a.drawTicks(r, a.minorTicks, minorLocs, a.minor.Formatter)
	if err != nil {
		return fmt.Errorf("axis: minor ticks: %w", err)
	}
	b1 = append(b1, m1...)
	b2 = append(b2, m2...)

	a.updateLabelPosition(r, b1)
	if err := a.label.Draw(r); err != nil {
		return fmt.Errorf("axis: label: %w", err)
	}
	a.offsetText.SetText(a.major.Formatter.Offset())
	a.updateOffsetTextPosition(r, b1, b2)
	if err := a.offsetText.Draw(r); err != nil {
		return fmt.Errorf("axis: offset text: %w", err)
	}
	gplot.Logger().Debug("axis drawn", "x", a.x, "major", len(majorLocs), "minor", len(minorLocs))
	return nil
}

func nearAny(v float64, xs []float64, tol float64) bool {
	for _, x := range xs {
		if math.Abs(v-x) <= tol {
			return true
		}
	}
	return false
}

// axesBox returns the display box of the owning axes.
func (a *Axis) axesBox() (x0, y0, x1, y1 float64) {
	ta := a.axes.TransAxes()
	x0, y0 = ta.XY(0, 0)
	x1, y1 = ta.XY(1, 1)
	return x0, y0, x1, y1
}

// updateLabelPosition pushes the axis label LabelPad points clear of the
// side-1 tick labels.
func (a *Axis) updateLabelPosition(r backend.Renderer, boxes []*bbox.Bbox) {
	x0, y0, x1, y1 := a.axesBox()
	pad := r.PointsToPixels(LabelPad)
	if a.x {
		bottom := y0
		for _, b := range boxes {
			bottom = math.Min(bottom, b.YMin())
		}
		a.label.SetPosition((x0+x1)/2, bottom-pad)
		return
	}
	left := x0
	for _, b := range boxes {
		left = math.Min(left, b.XMin())
	}
	a.label.SetPosition(left-pad, (y0+y1)/2)
}

// updateOffsetTextPosition puts the offset text below the right end of
// an x axis or above the top of a y axis.
func (a *Axis) updateOffsetTextPosition(r backend.Renderer, b1, b2 []*bbox.Bbox) {
	x0, y0, x1, y1 := a.axesBox()
	pad := r.PointsToPixels(OffsetTextPad)
	if a.x {
		bottom := y0
		for _, b := range b1 {
			bottom = math.Min(bottom, b.YMin())
		}
		a.offsetText.SetPosition(x1, bottom-pad)
		return
	}
	top := y1
	for _, b := range b2 {
		top = math.Max(top, b.YMax())
	}
	a.offsetText.SetPosition(x0, top+pad)
}

// Schema implements artist.Artist.
func (a *Axis) Schema() *artist.Schema { return artist.BaseSchema }

// SetTicksPosition selects the sides with tick marks and labels: "top",
// "bottom", "both" or "default" (marks on both sides, labels at the
// bottom).
func (a *XAxis) SetTicksPosition(pos string) error {
	return a.setTicksPosition(pos, "bottom", "top")
}

// SetTicksPosition selects "left", "right", "both" or "default".
func (a *YAxis) SetTicksPosition(pos string) error {
	return a.setTicksPosition(pos, "left", "right")
}

func (a *Axis) setTicksPosition(pos, side1, side2 string) error {
	var fn func(*Tick)
	switch pos {
	case side1:
		fn = func(t *Tick) { t.Tick1On, t.Tick2On, t.Label1On, t.Label2On = true, false, true, false }
	case side2:
		fn = func(t *Tick) { t.Tick1On, t.Tick2On, t.Label1On, t.Label2On = false, true, false, true }
	case "both":
		fn = func(t *Tick) { t.Tick1On, t.Tick2On = true, true }
	case "default":
		fn = func(t *Tick) { t.Tick1On, t.Tick2On, t.Label1On, t.Label2On = true, true, true, false }
	default:
		return fmt.Errorf("axis: %w: ticks position %q", gplot.ErrInvalidValue, pos)
	}
	a.setTicks(fn)
	return nil
}
