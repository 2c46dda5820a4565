// Package svg renders figures as SVG 1.1 documents with
// github.com/ajstarks/svgo.
//
// Layout happens at 72 units per inch; one SVG user unit is one point.
// Text is emitted as <text> elements so that it stays selectable, and
// images are inlined as base64 PNG data URIs.
package svg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/transform"
)

func init() {
	backend.Register("svg", func(widthIn, heightIn float64, opts backend.Options) (backend.Output, error) {
		return New(widthIn, heightIn, opts.DPI)
	})
}

// Renderer writes SVG elements into an in-memory document.
type Renderer struct {
	buf    bytes.Buffer
	canvas *svgo.SVG
	width  float64
	height float64
	imgMag float64
	fonts  *font.Manager

	clips   map[string]string
	nextID  int
	groups  int
	err     error
	started bool
}

var (
	_ backend.Output         = (*Renderer)(nil)
	_ backend.MarkerRenderer = (*Renderer)(nil)
	_ backend.PathRenderer   = (*Renderer)(nil)
)

// New starts a document of widthIn x heightIn inches. dpi only sets the
// resolution of embedded images.
func New(widthIn, heightIn, dpi float64) (*Renderer, error) {
	if widthIn <= 0 || heightIn <= 0 {
		return nil, fmt.Errorf("svg: %w: size %gx%g in", gplot.ErrInvalidValue, widthIn, heightIn)
	}
	if dpi <= 0 {
		dpi = 72
	}
	r := &Renderer{
		width:  widthIn * 72,
		height: heightIn * 72,
		imgMag: dpi / 72,
		fonts:  font.DefaultManager(),
		clips:  make(map[string]string),
	}
	r.canvas = svgo.New(&r.buf)
	r.canvas.Start(int(math.Ceil(r.width)), int(math.Ceil(r.height)),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, num(r.width), num(r.height)))
	r.started = true
	return r, nil
}

// Print closes the document and writes it to w.
func (r *Renderer) Print(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	for ; r.groups > 0; r.groups-- {
		r.canvas.Gend()
	}
	if r.started {
		r.canvas.End()
		r.started = false
	}
	if _, err := w.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("svg: write: %w", err)
	}
	return nil
}

// NewGC returns a default graphics context.
func (r *Renderer) NewGC() *backend.GraphicsContext { return backend.NewGraphicsContext() }

// CanvasWidthHeight returns the page size in points.
func (r *Renderer) CanvasWidthHeight() (float64, float64) { return r.width, r.height }

// FlipY is false: text positions are y up like everything else.
func (r *Renderer) FlipY() bool { return false }

// DPI is 72.
func (r *Renderer) DPI() float64 { return 72 }

// PointsToPixels is the identity.
func (r *Renderer) PointsToPixels(points float64) float64 { return points }

// OptionImageNocomposite is true: each image becomes its own element.
func (r *Renderer) OptionImageNocomposite() bool { return true }

// ImageMagnification is dpi/72.
func (r *Renderer) ImageMagnification() float64 { return r.imgMag }

// OpenGroup opens a <g> element named by id.
func (r *Renderer) OpenGroup(name string) {
	r.canvas.Gid(sanitizeID(name))
	r.groups++
}

// CloseGroup closes the innermost group.
func (r *Renderer) CloseGroup(string) {
	if r.groups > 0 {
		r.canvas.Gend()
		r.groups--
	}
}

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
	var d strings.Builder
	for _, run := range backend.SplitFinite(xs, ys) {
		r.polyline(&d, run, false)
	}
	if d.Len() == 0 {
		return
	}
	r.canvas.Path(d.String(), r.attrs(gc, nil)...)
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

// DrawPath fills and strokes an outline in display coordinates.
func (r *Renderer) DrawPath(gc *backend.GraphicsContext, path *gplot.Path, face *colors.RGBA) {
	if path.IsEmpty() {
		return
	}
	d := r.pathData(path, gplot.Identity())
	if face != nil || !gc.Invisible() {
		r.canvas.Path(d, r.attrs(gc, face)...)
	}
	if gc.Hatch != "" {
		r.hatch(gc, path, d)
	}
}

// DrawMarkers defines the marker once and places it with <use>.
func (r *Renderer) DrawMarkers(gc *backend.GraphicsContext, path *gplot.Path, face *colors.RGBA, xs, ys []float64, trans transform.Transform) {
	id := r.newID("m")
	r.canvas.Def()
	// Marker paths are y up; flip them once here.
	r.canvas.Path(r.pathData(path, gplot.Scale(1, -1)), fmt.Sprintf(`id="%s"`, id))
	r.canvas.DefEnd()

	attrs := r.attrs(gc, face)
	for _, o := range backend.MarkerOffsets(xs, ys, trans) {
		place := fmt.Sprintf(`transform="translate(%s,%s)"`, num(o.X), num(r.height-o.Y))
		r.canvas.Use(0, 0, "#"+id, append([]string{place}, attrs...)...)
	}
}

// DrawImage embeds im as a PNG data URI, scaled down by the image
// magnification.
func (r *Renderer) DrawImage(x, y float64, im image.Image, clip *bbox.Bbox) {
	var uri bytes.Buffer
	uri.WriteString("data:image/png;base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &uri)
	if err := png.Encode(enc, im); err != nil {
		r.setErr(fmt.Errorf("svg: encode image: %w", err))
		return
	}
	enc.Close()

	b := im.Bounds()
	h := float64(b.Dy()) / r.imgMag
	attrs := []string{
		fmt.Sprintf(`transform="translate(%s,%s) scale(%s)"`, num(x), num(r.height-y-h), num(1/r.imgMag)),
		`preserveAspectRatio="none"`,
	}
	if clip != nil {
		attrs[0] = r.clipAttr(clip) + " " + attrs[0]
	}
	r.canvas.Image(0, 0, b.Dx(), b.Dy(), uri.String(), attrs...)
}

// DrawText emits a <text> element at the baseline start (x, y), y up.
func (r *Renderer) DrawText(gc *backend.GraphicsContext, x, y float64, s string, props *font.Properties, angle float64, _ bool) {
	r.canvas.Gtransform(fmt.Sprintf("translate(%s,%s) rotate(%s)", num(x), num(r.height-y), num(-angle)))
	style := fmt.Sprintf("font-family:%s;font-size:%spx;font-style:%s;font-weight:%s;font-variant:%s;fill:%s",
		strings.Join(props.Family, ","), num(props.Size), props.Style, props.Weight, props.Variant, gc.Foreground.Hex())
	if a := gc.StrokeColor().A; a < 1 {
		style += ";fill-opacity:" + num(a)
	}
	r.canvas.Text(0, 0, s, style)
	r.canvas.Gend()
}

// TextExtents measures s at 72 dpi.
func (r *Renderer) TextExtents(s string, props *font.Properties, _ bool) (w, h, descent float64, err error) {
	return r.fonts.Extents(s, props, 72)
}

func (r *Renderer) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Renderer) newID(prefix string) string {
	r.nextID++
	return prefix + strconv.Itoa(r.nextID)
}

// hatch strokes the hatch pattern clipped to the outline d.
func (r *Renderer) hatch(gc *backend.GraphicsContext, path *gplot.Path, d string) {
	id := r.newID("h")
	r.canvas.ClipPath(fmt.Sprintf(`id="%s"`, id))
	r.canvas.Path(d)
	r.canvas.ClipEnd()

	x0, y0, x1, y1 := path.Bounds()
	hp := backend.HatchPath(gc.Hatch, x0, y0, x1, y1, 72)
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", gc.Foreground.Hex())
	r.canvas.Path(r.pathData(hp, gplot.Identity()), style, fmt.Sprintf(`clip-path="url(#%s)"`, id))
}

// attrs returns the svgo arguments for gc: a style, plus a clip-path
// attribute when gc clips.
func (r *Renderer) attrs(gc *backend.GraphicsContext, face *colors.RGBA) []string {
	out := []string{r.style(gc, face)}
	if gc.ClipRect != nil {
		out = append(out, r.clipAttr(gc.ClipRect))
	}
	return out
}

func (r *Renderer) clipAttr(b *bbox.Bbox) string {
	x0, y0 := b.XMin(), r.height-b.YMax()
	key := fmt.Sprintf("%s %s %s %s", num(x0), num(y0), num(b.Width()), num(math.Abs(b.Height())))
	id, ok := r.clips[key]
	if !ok {
		id = r.newID("c")
		r.clips[key] = id
		r.canvas.ClipPath(fmt.Sprintf(`id="%s"`, id))
		r.canvas.Path(fmt.Sprintf("M%s %sh%sv%sh%sz", num(x0), num(y0), num(b.Width()), num(math.Abs(b.Height())), num(-b.Width())))
		r.canvas.ClipEnd()
	}
	return fmt.Sprintf(`clip-path="url(#%s)"`, id)
}

// style builds the CSS for a stroke with an optional fill.
func (r *Renderer) style(gc *backend.GraphicsContext, face *colors.RGBA) string {
	var sb strings.Builder
	if face != nil {
		fc := gc.FillColor(*face)
		fmt.Fprintf(&sb, "fill:%s", fc.Hex())
		if fc.A < 1 {
			fmt.Fprintf(&sb, ";fill-opacity:%s", num(fc.A))
		}
	} else {
		sb.WriteString("fill:none")
	}
	if gc.Invisible() {
		sb.WriteString(";stroke:none")
		return sb.String()
	}
	sc := gc.StrokeColor()
	fmt.Fprintf(&sb, ";stroke:%s;stroke-width:%s", sc.Hex(), num(gc.LineWidth))
	if sc.A < 1 {
		fmt.Fprintf(&sb, ";stroke-opacity:%s", num(sc.A))
	}
	if gc.Cap != backend.CapButt {
		fmt.Fprintf(&sb, ";stroke-linecap:%s", svgCap(gc.Cap))
	}
	if gc.Join != backend.JoinMiter {
		fmt.Fprintf(&sb, ";stroke-linejoin:%s", gc.Join)
	}
	if gc.Dash.IsDashed() {
		parts := make([]string, len(gc.Dash.Array))
		for i, v := range gc.Dash.Array {
			parts[i] = num(v)
		}
		fmt.Fprintf(&sb, ";stroke-dasharray:%s;stroke-dashoffset:%s", strings.Join(parts, ","), num(gc.Dash.Offset))
	}
	return sb.String()
}

func svgCap(c backend.CapStyle) string {
	if c == backend.CapProjecting {
		return "square"
	}
	return c.String()
}

// polyline appends an SVG path through display-space points.
func (r *Renderer) polyline(d *strings.Builder, pts []gplot.Point, closed bool) {
	for i, p := range pts {
		if i == 0 {
			d.WriteByte('M')
		} else {
			d.WriteByte('L')
		}
		d.WriteString(num(p.X))
		d.WriteByte(' ')
		d.WriteString(num(r.height - p.Y))
	}
	if closed {
		d.WriteByte('Z')
	}
}

// pathData formats path after mapping it through m. When m is the
// identity the path is in display space and gets flipped to SVG space.
func (r *Renderer) pathData(path *gplot.Path, m gplot.Matrix) string {
	flip := m.IsIdentity()
	pt := func(p gplot.Point) string {
		p = m.TransformPoint(p)
		if flip {
			p.Y = r.height - p.Y
		}
		return num(p.X) + " " + num(p.Y)
	}
	var d strings.Builder
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gplot.MoveTo:
			d.WriteString("M" + pt(e.Point))
		case gplot.LineTo:
			d.WriteString("L" + pt(e.Point))
		case gplot.QuadTo:
			d.WriteString("Q" + pt(e.Control) + " " + pt(e.Point))
		case gplot.CubicTo:
			d.WriteString("C" + pt(e.Control1) + " " + pt(e.Control2) + " " + pt(e.Point))
		case gplot.Close:
			d.WriteByte('Z')
		}
	}
	return d.String()
}

// num formats v with at most four decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func sanitizeID(name string) string {
	var sb strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			sb.WriteRune(c)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "g"
	}
	return sb.String()
}
