package text

import (
	"fmt"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/rcparams"
)

// BoxStyle describes a rectangle drawn behind the text.
type BoxStyle struct {
	Face, Edge colors.RGBA
	// LineWidth and Pad are in points.
	LineWidth float64
	Pad       float64
}

// DefaultBoxStyle returns a light grey box with a black 1pt edge.
func DefaultBoxStyle() BoxStyle {
	return BoxStyle{Face: colors.Grey(0.9), Edge: colors.Black, LineWidth: 1, Pad: 4}
}

// Text is a string anchored at a point.
type Text struct {
	artist.Base

	x, y     float64
	s        string
	props    *font.Properties
	color    colors.RGBA
	ha       HAlign
	va       VAlign
	ma       *HAlign
	rotation float64
	box      *BoxStyle
	usetex   bool
}

// New returns a text at (x, y) with the rc font and color. The default
// transform is the identity, so the position is in display coordinates
// until a transform is set.
func New(x, y float64, s string) *Text {
	t := &Text{}
	t.init(t, x, y, s)
	return t
}

func (t *Text) init(self artist.Artist, x, y float64, s string) {
	t.Init(self)
	t.SetZOrder(3)
	rc := rcparams.Default()
	t.x, t.y, t.s = x, y, s
	t.props = font.NewProperties()
	t.color = rc.Color("text.color")
	t.usetex = rc.Bool("text.usetex")
	t.ha, t.va = Left, Bottom
}

// Position returns the anchor.
func (t *Text) Position() (float64, float64) { return t.x, t.y }

// SetPosition moves the anchor.
func (t *Text) SetPosition(x, y float64) {
	t.x, t.y = x, y
	t.PChanged()
}

// SetX moves the anchor horizontally.
func (t *Text) SetX(x float64) { t.SetPosition(x, t.y) }

// SetY moves the anchor vertically.
func (t *Text) SetY(y float64) { t.SetPosition(t.x, y) }

// Text returns the string.
func (t *Text) Text() string { return t.s }

// SetText replaces the string.
func (t *Text) SetText(s string) {
	t.s = s
	t.PChanged()
}

// FontProperties returns the font. Changes made to it take effect at the
// next draw.
func (t *Text) FontProperties() *font.Properties { return t.props }

// SetFontProperties replaces the font with a copy of p.
func (t *Text) SetFontProperties(p *font.Properties) {
	t.props = p.Clone()
	t.PChanged()
}

// FontSize returns the size in points.
func (t *Text) FontSize() float64 { return t.props.Size }

// SetFontSize accepts points or a relative name such as "large".
func (t *Text) SetFontSize(v any) error {
	p := t.props.Clone()
	if err := p.SetSize(v); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	t.props = p
	t.PChanged()
	return nil
}

// SetFontFamily accepts a family name or a list tried in order.
func (t *Text) SetFontFamily(v any) error {
	var fam []string
	switch f := v.(type) {
	case string:
		for _, s := range strings.Split(f, ",") {
			fam = append(fam, strings.TrimSpace(s))
		}
	case []string:
		fam = append(fam, f...)
	default:
		return fmt.Errorf("text: %w: font family %T", gplot.ErrInvalidValue, v)
	}
	t.props.Family = fam
	t.PChanged()
	return nil
}

// SetFontWeight accepts a weight name or a number from 100 to 900.
func (t *Text) SetFontWeight(v any) error {
	switch w := v.(type) {
	case string:
		t.props.Weight = w
	case int:
		if w < 100 || w > 900 {
			return fmt.Errorf("text: %w: font weight %d", gplot.ErrInvalidValue, w)
		}
		t.props.Weight = fmt.Sprint(w)
	default:
		return fmt.Errorf("text: %w: font weight %T", gplot.ErrInvalidValue, v)
	}
	t.PChanged()
	return nil
}

// SetFontStyle sets "normal", "italic" or "oblique".
func (t *Text) SetFontStyle(s string) error {
	switch s {
	case "normal", "italic", "oblique":
	default:
		return fmt.Errorf("text: %w: font style %q", gplot.ErrInvalidValue, s)
	}
	t.props.Style = s
	t.PChanged()
	return nil
}

// SetFontVariant sets "normal" or "small-caps".
func (t *Text) SetFontVariant(s string) error {
	switch s {
	case "normal", "small-caps":
	default:
		return fmt.Errorf("text: %w: font variant %q", gplot.ErrInvalidValue, s)
	}
	t.props.Variant = s
	t.PChanged()
	return nil
}

// Color returns the text color.
func (t *Text) Color() colors.RGBA { return t.color }

// SetColor sets the text color from any color specification.
func (t *Text) SetColor(v any) error {
	c, err := colors.ToRGBA(v)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	t.color = c
	t.PChanged()
	return nil
}

// HAlign returns the horizontal alignment.
func (t *Text) HAlign() HAlign { return t.ha }

// SetHAlign sets the horizontal alignment.
func (t *Text) SetHAlign(a HAlign) {
	t.ha = a
	t.PChanged()
}

// VAlign returns the vertical alignment.
func (t *Text) VAlign() VAlign { return t.va }

// SetVAlign sets the vertical alignment.
func (t *Text) SetVAlign(a VAlign) {
	t.va = a
	t.PChanged()
}

// SetHorizontalAlignment parses and sets the horizontal alignment.
func (t *Text) SetHorizontalAlignment(s string) error {
	a, err := ParseHAlign(s)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	t.SetHAlign(a)
	return nil
}

// SetVerticalAlignment parses and sets the vertical alignment.
func (t *Text) SetVerticalAlignment(s string) error {
	a, err := ParseVAlign(s)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	t.SetVAlign(a)
	return nil
}

// MultiAlignment returns the alignment of lines within the block. It
// follows the horizontal alignment unless set.
func (t *Text) MultiAlignment() HAlign {
	if t.ma != nil {
		return *t.ma
	}
	return t.ha
}

// SetMultiAlignment parses and sets the line alignment.
func (t *Text) SetMultiAlignment(s string) error {
	a, err := ParseHAlign(s)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	t.ma = &a
	t.PChanged()
	return nil
}

// Rotation returns the angle in degrees counter-clockwise.
func (t *Text) Rotation() float64 { return t.rotation }

// SetRotation accepts degrees, "horizontal" or "vertical".
func (t *Text) SetRotation(v any) error {
	a, err := ParseRotation(v)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	t.rotation = a
	t.PChanged()
	return nil
}

// BBox returns the background box style, or nil.
func (t *Text) BBox() *BoxStyle { return t.box }

// SetBBox sets the background box; nil removes it.
func (t *Text) SetBBox(b *BoxStyle) {
	if b != nil {
		c := *b
		b = &c
	}
	t.box = b
	t.PChanged()
}

// UseTex reports whether the raw string goes to a math engine.
func (t *Text) UseTex() bool { return t.usetex }

// SetUseTex routes the string to renderers implementing
// backend.TexRenderer.
func (t *Text) SetUseTex(v bool) {
	t.usetex = v
	t.PChanged()
}

// UpdateFrom copies the style of o: font, color, alignment, rotation,
// box and the shared artist state. The position and string are kept.
func (t *Text) UpdateFrom(o *Text) {
	t.props = o.props.Clone()
	t.color = o.color
	t.ha, t.va = o.ha, o.va
	if o.ma != nil {
		ma := *o.ma
		t.ma = &ma
	} else {
		t.ma = nil
	}
	t.rotation = o.rotation
	t.SetBBox(o.box)
	t.usetex = o.usetex
	t.Base.UpdateFrom(o.ArtistBase())
}

// texRenderer returns r as a TexRenderer when the text asks for one.
func (t *Text) texRenderer(r backend.Renderer) (backend.TexRenderer, bool) {
	if !t.usetex {
		return nil, false
	}
	tr, ok := r.(backend.TexRenderer)
	if !ok {
		gplot.Logger().Warn("text: renderer has no math engine, using the built-in layout",
			"renderer", rendererName(r))
	}
	return tr, ok
}

func (t *Text) layout(r backend.Renderer, ha HAlign, va VAlign) (*layout, error) {
	_, tex := t.texRenderer(r)
	key := layoutKey{
		text: t.s, font: t.props.Key(), angle: t.rotation,
		ha: ha, ma: t.MultiAlignment(), va: va,
		dpi: r.DPI(), tex: tex, renderer: rendererName(r),
	}
	return cachedLayout(key, func() (*layout, error) {
		return computeLayout(r, t.s, t.props, t.rotation, ha, t.MultiAlignment(), va, tex)
	})
}

// anchor returns the anchor in display coordinates.
func (t *Text) anchor() (float64, float64) { return t.Transform().XY(t.x, t.y) }

// WindowExtent implements artist.Extenter: the axis-aligned box of the
// rotated text, in display coordinates. Empty text has an empty box at
// the anchor.
func (t *Text) WindowExtent(r backend.Renderer) (*bbox.Bbox, error) {
	ax, ay := t.anchor()
	return t.extentAt(r, ax, ay, t.ha, t.va)
}

func (t *Text) extentAt(r backend.Renderer, ax, ay float64, ha HAlign, va VAlign) (*bbox.Bbox, error) {
	if t.s == "" {
		return bbox.FromExtents(ax, ay, ax, ay), nil
	}
	lay, err := t.layout(r, ha, va)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	return bbox.FromExtents(ax+lay.x0, ay+lay.y0, ax+lay.x1, ay+lay.y1), nil
}

// Draw implements artist.Artist.
func (t *Text) Draw(r backend.Renderer) error {
	if !t.Visible() || t.s == "" {
		return nil
	}
	ax, ay := t.anchor()
	return t.drawAt(r, ax, ay, t.ha, t.va)
}

func (t *Text) drawAt(r backend.Renderer, ax, ay float64, ha HAlign, va VAlign) error {
	lay, err := t.layout(r, ha, va)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	r.OpenGroup("text")
	defer r.CloseGroup("text")

	if t.box != nil {
		if err := t.drawBox(r, lay, ax, ay); err != nil {
			return err
		}
	}

	gc := t.NewGC(r)
	gc.Foreground = t.color
	_, height := r.CanvasWidthHeight()
	tr, _ := r.(backend.TexRenderer)
	for _, p := range lay.pieces {
		x, y := ax+p.x, ay+p.y
		if r.FlipY() {
			y = height - y
		}
		if lay.tex {
			tr.DrawTex(gc, x, y, p.text, p.props, t.rotation)
			continue
		}
		r.DrawText(gc, x, y, p.text, p.props, t.rotation, false)
	}
	return nil
}

func (t *Text) drawBox(r backend.Renderer, lay *layout, ax, ay float64) error {
	pad := r.PointsToPixels(t.box.Pad)
	rect := patches.NewRectangle(ax+lay.x0-pad, ay+lay.y0-pad, lay.x1-lay.x0+2*pad, lay.y1-lay.y0+2*pad)
	_ = rect.SetFaceColor(t.box.Face)
	_ = rect.SetEdgeColor(t.box.Edge)
	rect.SetLineWidth(t.box.LineWidth)
	rect.SetAlpha(t.Alpha())
	rect.SetClipBox(t.ClipBox())
	rect.SetClipOn(t.ClipOn())
	return rect.Draw(r)
}
