// Package pdf renders figures as single-page PDF documents with
// codeberg.org/go-pdf/fpdf.
//
// Fonts resolved by the font manager are embedded as TrueType subsets,
// so text stays searchable. Page units are points.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/transform"
)

func init() {
	backend.Register("pdf", func(widthIn, heightIn float64, opts backend.Options) (backend.Output, error) {
		return New(widthIn, heightIn, opts.DPI)
	})
}

// Renderer draws onto one fpdf page.
type Renderer struct {
	doc    *fpdf.Fpdf
	width  float64
	height float64
	imgMag float64
	fonts  *font.Manager

	families map[*font.Font]string
	images   int
}

var (
	_ backend.Output         = (*Renderer)(nil)
	_ backend.MarkerRenderer = (*Renderer)(nil)
	_ backend.PathRenderer   = (*Renderer)(nil)
)

// New creates a page of widthIn x heightIn inches.
func New(widthIn, heightIn, dpi float64) (*Renderer, error) {
	if widthIn <= 0 || heightIn <= 0 {
		return nil, fmt.Errorf("pdf: %w: size %gx%g in", gplot.ErrInvalidValue, widthIn, heightIn)
	}
	if dpi <= 0 {
		dpi = 72
	}
	w, h := widthIn*72, heightIn*72
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(rcparams.Default().Int("pdf.compression") > 0)
	doc.SetCreator("gplot", true)
	doc.AddPage()
	return &Renderer{
		doc:      doc,
		width:    w,
		height:   h,
		imgMag:   dpi / 72,
		fonts:    font.DefaultManager(),
		families: make(map[*font.Font]string),
	}, nil
}

// Print writes the document.
func (r *Renderer) Print(w io.Writer) error {
	if err := r.doc.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

// NewGC returns a default graphics context.
func (r *Renderer) NewGC() *backend.GraphicsContext { return backend.NewGraphicsContext() }

// CanvasWidthHeight returns the page size in points.
func (r *Renderer) CanvasWidthHeight() (float64, float64) { return r.width, r.height }

// FlipY is false.
func (r *Renderer) FlipY() bool { return false }

// DPI is 72.
func (r *Renderer) DPI() float64 { return 72 }

// PointsToPixels is the identity.
func (r *Renderer) PointsToPixels(points float64) float64 { return points }

// OptionImageNocomposite is true.
func (r *Renderer) OptionImageNocomposite() bool { return true }

// ImageMagnification is dpi/72.
func (r *Renderer) ImageMagnification() float64 { return r.imgMag }

// OpenGroup is a no-op.
func (r *Renderer) OpenGroup(string) {}

// CloseGroup is a no-op.
func (r *Renderer) CloseGroup(string) {}

// DrawLine strokes one segment.
func (r *Renderer) DrawLine(gc *backend.GraphicsContext, x1, y1, x2, y2 float64) {
	r.DrawLines(gc, []float64{x1, x2}, []float64{y1, y2}, nil)
}

// DrawLines strokes a polyline, breaking it at non-finite vertices.
func (r *Renderer) DrawLines(gc *backend.GraphicsContext, xs, ys []float64, trans transform.Transform) {
	if gc.Invisible() {
		return
	}
	if trans != nil {
		xs, ys = trans.NumerixXY(xs, ys)
	}
	p := gplot.NewPath()
	for _, run := range backend.SplitFinite(xs, ys) {
		p.Polyline(run)
	}
	if p.IsEmpty() {
		return
	}
	r.withClip(gc.ClipRect, func() {
		r.stroke(gc, p)
	})
}

// DrawPolygon fills and strokes a closed polygon.
func (r *Renderer) DrawPolygon(gc *backend.GraphicsContext, face *colors.RGBA, pts []gplot.Point) {
	if len(pts) == 0 {
		return
	}
	p := gplot.NewPath()
	p.Polygon(pts)
	r.DrawPath(gc, p, face)
}

// DrawRectangle fills and strokes an axis-aligned rectangle.
func (r *Renderer) DrawRectangle(gc *backend.GraphicsContext, face *colors.RGBA, x, y, w, h float64) {
	p := gplot.NewPath()
	p.Rectangle(x, y, w, h)
	r.DrawPath(gc, p, face)
}

// DrawArc fills and strokes an elliptical arc.
func (r *Renderer) DrawArc(gc *backend.GraphicsContext, face *colors.RGBA, x, y, w, h, theta1, theta2, rotation float64) {
	p, _ := backend.ArcPath(x, y, w, h, theta1, theta2, rotation)
	r.DrawPath(gc, p, face)
}

// DrawPath fills, hatches and strokes an outline in display coordinates.
func (r *Renderer) DrawPath(gc *backend.GraphicsContext, path *gplot.Path, face *colors.RGBA) {
	if path.IsEmpty() {
		return
	}
	r.withClip(gc.ClipRect, func() {
		if face != nil {
			c := gc.FillColor(*face)
			r.doc.SetFillColor(rgb255(c))
			r.doc.SetAlpha(c.A, "Normal")
			r.emit(path)
			r.doc.DrawPath("F")
		}
		if gc.Hatch != "" {
			r.hatch(gc, path)
		}
		if !gc.Invisible() {
			r.stroke(gc, path)
		}
	})
}

// DrawMarkers emits the marker outline at every offset.
func (r *Renderer) DrawMarkers(gc *backend.GraphicsContext, path *gplot.Path, face *colors.RGBA, xs, ys []float64, trans transform.Transform) {
	for _, o := range backend.MarkerOffsets(xs, ys, trans) {
		r.DrawPath(gc, path.Transform(gplot.Translate(o.X, o.Y)), face)
	}
}

// DrawImage embeds im as PNG with its lower-left corner at (x, y).
func (r *Renderer) DrawImage(x, y float64, im image.Image, clip *bbox.Bbox) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, im); err != nil {
		r.doc.SetError(fmt.Errorf("encode image: %w", err))
		return
	}
	r.images++
	name := "img" + strconv.Itoa(r.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	r.doc.RegisterImageOptionsReader(name, opts, &buf)

	b := im.Bounds()
	w, h := float64(b.Dx())/r.imgMag, float64(b.Dy())/r.imgMag
	r.withClip(clip, func() {
		r.doc.ImageOptions(name, x, r.height-y-h, w, h, false, opts, 0, "")
	})
}

// DrawText writes s with an embedded font, baseline start at (x, y).
func (r *Renderer) DrawText(gc *backend.GraphicsContext, x, y float64, s string, props *font.Properties, angle float64, _ bool) {
	f, err := r.fonts.FindFont(props)
	if err != nil {
		gplot.Logger().Warn("pdf: find font", "font", props.Key(), "err", err)
		return
	}
	family, ok := r.families[f]
	if !ok {
		family = "f" + strconv.Itoa(len(r.families)+1)
		r.doc.AddUTF8FontFromBytes(family, "", f.Data())
		r.families[f] = family
	}
	c := gc.StrokeColor()
	py := r.height - y
	r.withClip(gc.ClipRect, func() {
		r.doc.SetFont(family, "", props.Size)
		r.doc.SetTextColor(rgb255(c))
		r.doc.SetAlpha(c.A, "Normal")
		r.doc.TransformBegin()
		if angle != 0 {
			r.doc.TransformRotate(angle, x, py)
		}
		r.doc.Text(x, py, s)
		r.doc.TransformEnd()
	})
}

// TextExtents measures s at 72 dpi.
func (r *Renderer) TextExtents(s string, props *font.Properties, _ bool) (w, h, descent float64, err error) {
	return r.fonts.Extents(s, props, 72)
}

func (r *Renderer) withClip(clip *bbox.Bbox, fn func()) {
	if clip == nil {
		fn()
		return
	}
	r.doc.ClipRect(clip.XMin(), r.height-clip.YMax(), clip.XMax()-clip.XMin(), clip.YMax()-clip.YMin(), false)
	fn()
	r.doc.ClipEnd()
}

func (r *Renderer) stroke(gc *backend.GraphicsContext, path *gplot.Path) {
	c := gc.StrokeColor()
	r.doc.SetDrawColor(rgb255(c))
	r.doc.SetAlpha(c.A, "Normal")
	r.doc.SetLineWidth(gc.LineWidth)
	r.doc.SetLineCapStyle(pdfCap(gc.Cap))
	r.doc.SetLineJoinStyle(gc.Join.String())
	if gc.Dash.IsDashed() {
		r.doc.SetDashPattern(gc.Dash.Array, gc.Dash.Offset)
	} else {
		r.doc.SetDashPattern([]float64{}, 0)
	}
	r.emit(path)
	r.doc.DrawPath("D")
}

// hatch clips to the flattened outline and strokes the hatch lines.
func (r *Renderer) hatch(gc *backend.GraphicsContext, path *gplot.Path) {
	subs, _ := path.Flatten(0.1)
	for _, sp := range subs {
		pts := make([]fpdf.PointType, len(sp))
		for i, p := range sp {
			pts[i] = fpdf.PointType{X: p.X, Y: r.height - p.Y}
		}
		r.doc.ClipPolygon(pts, false)
		x0, y0, x1, y1 := path.Bounds()
		hg := gc.Copy()
		hg.LineWidth = 1
		hg.Dash = nil
		hg.LineStyle = "-"
		r.stroke(hg, backend.HatchPath(gc.Hatch, x0, y0, x1, y1, 72))
		r.doc.ClipEnd()
	}
}

// emit adds path to the current fpdf path, flipping y.
func (r *Renderer) emit(path *gplot.Path) {
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gplot.MoveTo:
			r.doc.MoveTo(e.Point.X, r.height-e.Point.Y)
		case gplot.LineTo:
			r.doc.LineTo(e.Point.X, r.height-e.Point.Y)
		case gplot.QuadTo:
			r.doc.CurveTo(e.Control.X, r.height-e.Control.Y, e.Point.X, r.height-e.Point.Y)
		case gplot.CubicTo:
			r.doc.CurveBezierCubicTo(e.Control1.X, r.height-e.Control1.Y,
				e.Control2.X, r.height-e.Control2.Y, e.Point.X, r.height-e.Point.Y)
		case gplot.Close:
			r.doc.ClosePath()
		}
	}
}

func pdfCap(c backend.CapStyle) string {
	if c == backend.CapProjecting {
		return "square"
	}
	return c.String()
}

func rgb255(c colors.RGBA) (int, int, int) {
	n := c.NRGBA()
	return int(n.R), int(n.G), int(n.B)
}
