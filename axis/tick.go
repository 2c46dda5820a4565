package axis

import (
	"github.com/jinzhu/copier"

	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/lines"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/text"
	"github.com/gogpu/gplot/transform"
)

// TickStyle is the part of a tick that new pool entries copy from the
// prototype.
type TickStyle struct {
	// Size and Pad are in points.
	Size, Pad float64
	// Direction is "in" or "out" of the axes.
	Direction string

	Tick1On, Tick2On   bool
	GridOn             bool
	Label1On, Label2On bool
}

// Tick is one tick location: a mark on each side of the axes, a
// gridline across it and a label on each side. Side 1 is the bottom or
// left; side 2 the top or right.
type Tick struct {
	artist.Base
	TickStyle

	x     bool
	major bool
	loc   float64
	axes  artist.Axes

	Tick1Line, Tick2Line *lines.Line2D
	Gridline             *lines.Line2D
	Label1, Label2       *text.Text
}

func newTick(axes artist.Axes, x, major bool) *Tick {
	rc := rcparams.Default()
	prefix, which := "ytick", "minor"
	if x {
		prefix = "xtick"
	}
	if major {
		which = "major"
	}
	t := &Tick{x: x, major: major, axes: axes}
	t.Init(t)
	t.TickStyle = TickStyle{
		Size:      rc.Float(prefix + "." + which + ".size"),
		Pad:       rc.Float(prefix + "." + which + ".pad"),
		Direction: rc.String(prefix + ".direction"),
		Tick1On:   true,
		Tick2On:   true,
		Label1On:  true,
	}
	color := rc.Color(prefix + ".color")

	t.Tick1Line = tickMark(color, t.Size)
	t.Tick2Line = tickMark(color, t.Size)
	t.Gridline, _ = lines.New([]float64{0, 0}, []float64{0, 1})
	_ = t.Gridline.SetColor(rc.Color("grid.color"))
	_ = t.Gridline.SetLineStyle(rc.String("grid.linestyle"))
	t.Gridline.SetLineWidth(rc.Float("grid.linewidth"))

	t.Label1 = tickLabel(color, rc.Float(prefix+".labelsize"))
	t.Label2 = tickLabel(color, rc.Float(prefix+".labelsize"))
	if x {
		t.Label1.SetHAlign(text.Center)
		t.Label1.SetVAlign(text.Top)
		t.Label2.SetHAlign(text.Center)
		t.Label2.SetVAlign(text.Bottom)
	} else {
		t.Label1.SetHAlign(text.Right)
		t.Label1.SetVAlign(text.Middle)
		t.Label2.SetHAlign(text.Left)
		t.Label2.SetVAlign(text.Middle)
	}
	if axes != nil {
		bt := t.blended()
		for _, l := range []*lines.Line2D{t.Tick1Line, t.Tick2Line, t.Gridline} {
			l.SetTransform(bt)
		}
	}
	t.markers()
	return t
}

func tickMark(color any, size float64) *lines.Line2D {
	l, _ := lines.New([]float64{0}, []float64{0})
	_ = l.SetLineStyle("None")
	_ = l.SetColor(color)
	l.SetMarkerSize(size)
	return l
}

func tickLabel(color any, size float64) *text.Text {
	l := text.New(0, 0, "")
	_ = l.SetColor(color)
	_ = l.SetFontSize(size)
	return l
}

// blended maps data along the tick axis and axes fractions across it.
func (t *Tick) blended() *transform.Separable {
	if t.x {
		return transform.Blend(t.axes.TransData(), t.axes.TransAxes())
	}
	return transform.Blend(t.axes.TransAxes(), t.axes.TransData())
}

// markers points the tick marks into or out of the axes.
func (t *Tick) markers() {
	in := t.Direction != "out"
	var m1, m2 string
	switch {
	case t.x && in:
		m1, m2 = lines.MarkerTickUp, lines.MarkerTickDown
	case t.x:
		m1, m2 = lines.MarkerTickDown, lines.MarkerTickUp
	case in:
		m1, m2 = lines.MarkerTickRight, lines.MarkerTickLeft
	default:
		m1, m2 = lines.MarkerTickLeft, lines.MarkerTickRight
	}
	_ = t.Tick1Line.SetMarker(m1)
	_ = t.Tick2Line.SetMarker(m2)
	t.Tick1Line.SetMarkerSize(t.Size)
	t.Tick2Line.SetMarkerSize(t.Size)
}

// copyStyle makes t look like proto.
func (t *Tick) copyStyle(proto *Tick) {
	if err := copier.CopyWithOption(&t.TickStyle, &proto.TickStyle, copier.Option{DeepCopy: true}); err != nil {
		// Unreachable: source and destination are the same type.
		panic(err)
	}
	t.Tick1Line.SetStyle(proto.Tick1Line.Style())
	t.Tick2Line.SetStyle(proto.Tick2Line.Style())
	t.Gridline.SetStyle(proto.Gridline.Style())
	t.Label1.UpdateFrom(proto.Label1)
	t.Label2.UpdateFrom(proto.Label2)
	t.UpdateFrom(&proto.Base)
}

// Loc returns the tick value.
func (t *Tick) Loc() float64 { return t.loc }

// SetLoc moves the tick.
func (t *Tick) SetLoc(loc float64) {
	t.loc = loc
	if t.x {
		_ = t.Tick1Line.SetData([]float64{loc}, []float64{0})
		_ = t.Tick2Line.SetData([]float64{loc}, []float64{1})
		_ = t.Gridline.SetData([]float64{loc, loc}, []float64{0, 1})
	} else {
		_ = t.Tick1Line.SetData([]float64{0}, []float64{loc})
		_ = t.Tick2Line.SetData([]float64{1}, []float64{loc})
		_ = t.Gridline.SetData([]float64{0, 1}, []float64{loc, loc})
	}
}

// SetLabelText sets the text of both labels.
func (t *Tick) SetLabelText(s string) {
	t.Label1.SetText(s)
	t.Label2.SetText(s)
}

// IsMajor reports whether the tick belongs to the major pool.
func (t *Tick) IsMajor() bool { return t.major }

// placeLabels anchors the labels in display space, pad points clear of
// the axes edges.
func (t *Tick) placeLabels(r backend.Renderer) {
	pad := t.Pad
	if t.Direction == "out" {
		pad += t.Size
	}
	px := r.PointsToPixels(pad)
	bt := t.blended()
	if t.x {
		x, y0 := bt.XY(t.loc, 0)
		_, y1 := bt.XY(t.loc, 1)
		t.Label1.SetPosition(x, y0-px)
		t.Label2.SetPosition(x, y1+px)
		return
	}
	x0, y := bt.XY(0, t.loc)
	x1, _ := bt.XY(1, t.loc)
	t.Label1.SetPosition(x0-px, y)
	t.Label2.SetPosition(x1+px, y)
}

// Schema implements artist.Artist.
func (t *Tick) Schema() *artist.Schema { return artist.BaseSchema }

// Draw implements artist.Artist.
func (t *Tick) Draw(r backend.Renderer) error {
	if !t.Visible() {
		return nil
	}
	r.OpenGroup("tick")
	defer r.CloseGroup("tick")
	t.markers()
	t.placeLabels(r)
	if t.GridOn {
		if err := t.Gridline.Draw(r); err != nil {
			return err
		}
	}
	if t.Tick1On {
		if err := t.Tick1Line.Draw(r); err != nil {
			return err
		}
	}
	if t.Tick2On {
		if err := t.Tick2Line.Draw(r); err != nil {
			return err
		}
	}
	if t.Label1On {
		if err := t.Label1.Draw(r); err != nil {
			return err
		}
	}
	if t.Label2On {
		if err := t.Label2.Draw(r); err != nil {
			return err
		}
	}
	return nil
}
