package text

import (
	"math"

	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/lines"
	"github.com/gogpu/gplot/transform"
)

// Dash directions.
const (
	DashBefore = 0
	DashAfter  = 1
)

// TextWithDash is a text with a leader line. The dash starts at the
// anchor, pushed dashPush points along its direction, runs dashLength
// points, and the text is centered beyond its end, dashPad points clear.
// With zero length it draws like a plain Text.
type TextWithDash struct {
	Text

	dashLength    float64
	dashDirection int
	dashRotation  *float64
	dashPad       float64
	dashPush      float64

	dash *lines.Line2D
}

// NewWithDash returns a text with a zero-length dash, padded 3 points.
func NewWithDash(x, y float64, s string) *TextWithDash {
	t := &TextWithDash{dashPad: 3}
	t.init(t, x, y, s)
	t.dash, _ = lines.New(nil, nil)
	t.dash.SetTransform(transform.Identity())
	return t
}

// DashLine returns the leader line so its style can be changed.
func (t *TextWithDash) DashLine() *lines.Line2D { return t.dash }

// DashLength returns the dash length in points.
func (t *TextWithDash) DashLength() float64 { return t.dashLength }

// SetDashLength sets the dash length in points.
func (t *TextWithDash) SetDashLength(l float64) {
	t.dashLength = l
	t.PChanged()
}

// DashDirection returns DashBefore or DashAfter.
func (t *TextWithDash) DashDirection() int { return t.dashDirection }

// SetDashDirection selects whether the dash leads before or after the
// anchor.
func (t *TextWithDash) SetDashDirection(d int) {
	t.dashDirection = d
	t.PChanged()
}

// DashRotation returns the dash angle in degrees, which follows the text
// rotation unless set.
func (t *TextWithDash) DashRotation() float64 {
	if t.dashRotation != nil {
		return *t.dashRotation
	}
	return t.rotation
}

// SetDashRotation fixes the dash angle in degrees.
func (t *TextWithDash) SetDashRotation(a float64) {
	t.dashRotation = &a
	t.PChanged()
}

// DashPad returns the gap between the dash and the text, in points.
func (t *TextWithDash) DashPad() float64 { return t.dashPad }

// SetDashPad sets the gap in points.
func (t *TextWithDash) SetDashPad(p float64) {
	t.dashPad = p
	t.PChanged()
}

// DashPush returns the offset of the dash from the anchor, in points.
func (t *TextWithDash) DashPush() float64 { return t.dashPush }

// SetDashPush sets the offset in points.
func (t *TextWithDash) SetDashPush(p float64) {
	t.dashPush = p
	t.PChanged()
}

// place computes the dash end points and the text center in display
// coordinates.
func (t *TextWithDash) place(r backend.Renderer) (x1, y1, x2, y2, cx, cy float64, err error) {
	ax, ay := t.anchor()
	theta := math.Pi * (t.DashRotation()/180 + float64(t.dashDirection) - 1)
	sin, cos := math.Sincos(theta)

	push := r.PointsToPixels(t.dashPush)
	length := r.PointsToPixels(t.dashLength)
	x1, y1 = ax+push*cos, ay+push*sin
	x2, y2 = x1+length*cos, y1+length*sin

	ext, err := t.extentAt(r, 0, 0, Center, Middle)
	if err != nil {
		return 0, 0, 0, 0, 0, 0, err
	}
	w, h := ext.Width(), ext.Height()

	// Half the text box along the dash direction, clipped to the box.
	var dx, dy float64
	switch {
	case math.Abs(sin) < 1e-12:
		dx, dy = w, 0
	case math.Abs(cos) < 1e-12:
		dx, dy = 0, h
	default:
		tan := sin / cos
		dx, dy = w, w*tan
		if math.Abs(dy) > h {
			dx, dy = h/tan, h
		}
	}
	dx, dy = dx/2, dy/2
	if n := math.Hypot(dx, dy); n > 0 {
		pad := r.PointsToPixels(t.dashPad)
		dx *= 1 + pad/n
		dy *= 1 + pad/n
	}
	sign := float64(2*t.dashDirection - 1)
	return x1, y1, x2, y2, x2 + sign*dx, y2 + sign*dy, nil
}

// Draw implements artist.Artist.
func (t *TextWithDash) Draw(r backend.Renderer) error {
	if !t.Visible() {
		return nil
	}
	if t.dashLength == 0 {
		return t.Text.Draw(r)
	}
	x1, y1, x2, y2, cx, cy, err := t.place(r)
	if err != nil {
		return err
	}
	r.OpenGroup("textwithdash")
	defer r.CloseGroup("textwithdash")
	if err := t.dash.SetData([]float64{x1, x2}, []float64{y1, y2}); err != nil {
		return err
	}
	t.dash.SetClipBox(t.ClipBox())
	t.dash.SetClipOn(t.ClipOn())
	if err := t.dash.Draw(r); err != nil {
		return err
	}
	if t.s == "" {
		return nil
	}
	return t.drawAt(r, cx, cy, Center, Middle)
}

// WindowExtent implements artist.Extenter. It covers the dash and the
// text.
func (t *TextWithDash) WindowExtent(r backend.Renderer) (*bbox.Bbox, error) {
	if t.dashLength == 0 {
		return t.Text.WindowExtent(r)
	}
	x1, y1, x2, y2, cx, cy, err := t.place(r)
	if err != nil {
		return nil, err
	}
	te, err := t.extentAt(r, cx, cy, Center, Middle)
	if err != nil {
		return nil, err
	}
	dash := bbox.FromExtents(math.Min(x1, x2), math.Min(y1, y2), math.Max(x1, x2), math.Max(y1, y2))
	return bbox.BboxAll([]*bbox.Bbox{dash, te}), nil
}

var (
	_ artist.Extenter = (*Text)(nil)
	_ artist.Extenter = (*TextWithDash)(nil)
)
