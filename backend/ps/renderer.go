// Package ps renders figures as PostScript level 2 and Encapsulated
// PostScript.
//
// Text is drawn from glyph outlines so that output does not depend on the
// fonts installed in the printer. PostScript has no transparency; alpha
// is ignored.
package ps

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/transform"
)

func init() {
	backend.Register("ps", func(widthIn, heightIn float64, opts backend.Options) (backend.Output, error) {
		return New(widthIn, heightIn, opts, false)
	})
	backend.Register("eps", func(widthIn, heightIn float64, opts backend.Options) (backend.Output, error) {
		return New(widthIn, heightIn, opts, true)
	})
}

// PaperSizes maps paper names to (width, height) in points.
var PaperSizes = map[string][2]float64{
	"letter":    {612, 792},
	"legal":     {612, 1008},
	"ledger":    {1224, 792},
	"a0":        {2384, 3370},
	"a1":        {1684, 2384},
	"a2":        {1191, 1684},
	"a3":        {842, 1191},
	"a4":        {595, 842},
	"a5":        {420, 595},
	"b4":        {729, 1032},
	"b5":        {516, 729},
	"executive": {522, 756},
}

// Renderer accumulates the page body; Print adds the header and trailer.
type Renderer struct {
	body      bytes.Buffer
	width     float64
	height    float64
	imgMag    float64
	eps       bool
	landscape bool
	paper     string
	fonts     *font.Manager
}

var (
	_ backend.Output         = (*Renderer)(nil)
	_ backend.MarkerRenderer = (*Renderer)(nil)
	_ backend.PathRenderer   = (*Renderer)(nil)
)

// New creates a renderer for a figure of widthIn x heightIn inches.
func New(widthIn, heightIn float64, opts backend.Options, eps bool) (*Renderer, error) {
	if widthIn <= 0 || heightIn <= 0 {
		return nil, fmt.Errorf("ps: %w: size %gx%g in", gplot.ErrInvalidValue, widthIn, heightIn)
	}
	paper := strings.ToLower(opts.PaperSize)
	if paper == "" {
		paper = "letter"
	}
	if _, ok := PaperSizes[paper]; !ok && paper != "auto" {
		return nil, fmt.Errorf("ps: %w: paper size %q", gplot.ErrInvalidValue, opts.PaperSize)
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = 72
	}
	return &Renderer{
		width:     widthIn * 72,
		height:    heightIn * 72,
		imgMag:    dpi / 72,
		eps:       eps,
		landscape: opts.Orientation == "landscape",
		paper:     paper,
		fonts:     font.DefaultManager(),
	}, nil
}

// NewGC returns a default graphics context.
func (r *Renderer) NewGC() *backend.GraphicsContext { return backend.NewGraphicsContext() }

// CanvasWidthHeight returns the figure size in points.
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

// OpenGroup writes a comment.
func (r *Renderer) OpenGroup(name string) { fmt.Fprintf(&r.body, "%% begin %s\n", name) }

// CloseGroup writes a comment.
func (r *Renderer) CloseGroup(name string) { fmt.Fprintf(&r.body, "%% end %s\n", name) }

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
	runs := backend.SplitFinite(xs, ys)
	if len(runs) == 0 {
		return
	}
	r.begin(gc)
	for _, run := range runs {
		for i, p := range run {
			op := "l"
			if i == 0 {
				op = "m"
			}
			fmt.Fprintf(&r.body, "%s %s %s\n", num(p.X), num(p.Y), op)
		}
	}
	r.body.WriteString("stroke\ngrestore\n")
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
	r.begin(gc)
	r.pathOps(path)
	r.paint(gc, face, path)
	r.body.WriteString("grestore\n")
}

// DrawMarkers defines the marker outline as a procedure and calls it at
// every offset.
func (r *Renderer) DrawMarkers(gc *backend.GraphicsContext, path *gplot.Path, face *colors.RGBA, xs, ys []float64, trans transform.Transform) {
	offsets := backend.MarkerOffsets(xs, ys, trans)
	if len(offsets) == 0 {
		return
	}
	r.begin(gc)
	r.body.WriteString("/marker {\nnewpath\n")
	r.pathOps(path)
	r.body.WriteString("} bind def\n")
	for _, o := range offsets {
		fmt.Fprintf(&r.body, "gsave %s %s translate marker\n", num(o.X), num(o.Y))
		r.paint(gc, face, nil)
		r.body.WriteString("grestore\n")
	}
	r.body.WriteString("grestore\n")
}

// DrawImage writes im as an RGB image with its lower-left corner at
// (x, y). Transparent pixels are composited over white.
func (r *Renderer) DrawImage(x, y float64, im image.Image, clip *bbox.Bbox) {
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	r.body.WriteString("gsave\n")
	if clip != nil {
		r.clipRect(clip)
	}
	fmt.Fprintf(&r.body, "%s %s translate %s %s scale\n",
		num(x), num(y), num(float64(w)/r.imgMag), num(float64(h)/r.imgMag))
	fmt.Fprintf(&r.body, "/DeviceRGB setcolorspace\n<< /ImageType 1 /Width %d /Height %d /BitsPerComponent 8 /Decode [0 1 0 1 0 1] /ImageMatrix [%d 0 0 -%d 0 %d] /DataSource currentfile /ASCIIHexDecode filter >> image\n", w, h, w, h, h)
	row := make([]byte, 3*w)
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			c := color.NRGBAModel.Convert(im.At(px, py)).(color.NRGBA)
			i := 3 * (px - b.Min.X)
			row[i] = overWhite(c.R, c.A)
			row[i+1] = overWhite(c.G, c.A)
			row[i+2] = overWhite(c.B, c.A)
		}
		r.body.WriteString(hex.EncodeToString(row))
		r.body.WriteByte('\n')
	}
	r.body.WriteString(">\ngrestore\n")
}

func overWhite(v, a uint8) uint8 {
	return uint8((int(v)*int(a) + 255*(255-int(a)) + 127) / 255)
}

// DrawText fills the glyph outlines of s with the baseline starting at
// (x, y).
func (r *Renderer) DrawText(gc *backend.GraphicsContext, x, y float64, s string, props *font.Properties, angle float64, _ bool) {
	run, err := r.fonts.Shape(s, props, 72)
	if err != nil {
		gplot.Logger().Warn("ps: shape text", "text", s, "err", err)
		return
	}
	path, err := run.Path(0, 0)
	if err != nil {
		gplot.Logger().Warn("ps: glyph outline", "text", s, "err", err)
		return
	}
	r.body.WriteString("gsave\n")
	if gc.ClipRect != nil {
		r.clipRect(gc.ClipRect)
	}
	fmt.Fprintf(&r.body, "%s setrgbcolor\n%s %s translate %s rotate\nnewpath\n",
		rgb(gc.Foreground), num(x), num(y), num(angle))
	r.pathOps(path)
	r.body.WriteString("fill\ngrestore\n")
}

// TextExtents measures s at 72 dpi.
func (r *Renderer) TextExtents(s string, props *font.Properties, _ bool) (w, h, descent float64, err error) {
	return r.fonts.Extents(s, props, 72)
}

// begin opens a gsave block with the gc clip and stroke state.
func (r *Renderer) begin(gc *backend.GraphicsContext) {
	r.body.WriteString("gsave\n")
	if gc.ClipRect != nil {
		r.clipRect(gc.ClipRect)
	}
	fmt.Fprintf(&r.body, "%s setlinewidth %d setlinecap %d setlinejoin\n", num(gc.LineWidth), psCap(gc.Cap), psJoin(gc.Join))
	if gc.Dash.IsDashed() {
		parts := make([]string, len(gc.Dash.Array))
		for i, v := range gc.Dash.Array {
			parts[i] = num(v)
		}
		fmt.Fprintf(&r.body, "[%s] %s setdash\n", strings.Join(parts, " "), num(gc.Dash.Offset))
	}
	r.body.WriteString("newpath\n")
}

// paint fills the current path with face, hatches it, and strokes it.
// outline bounds the hatch area; nil skips hatching.
func (r *Renderer) paint(gc *backend.GraphicsContext, face *colors.RGBA, outline *gplot.Path) {
	if face != nil {
		fmt.Fprintf(&r.body, "gsave %s setrgbcolor fill grestore\n", rgb(*face))
	}
	if gc.Hatch != "" && outline != nil {
		x0, y0, x1, y1 := outline.Bounds()
		fmt.Fprintf(&r.body, "gsave clip newpath %s setrgbcolor 1 setlinewidth [] 0 setdash\n", rgb(gc.Foreground))
		r.pathOps(backend.HatchPath(gc.Hatch, x0, y0, x1, y1, 72))
		r.body.WriteString("stroke grestore\n")
	}
	if !gc.Invisible() {
		fmt.Fprintf(&r.body, "%s setrgbcolor stroke\n", rgb(gc.Foreground))
	}
}

func (r *Renderer) clipRect(b *bbox.Bbox) {
	fmt.Fprintf(&r.body, "%s %s %s %s rectclip\n", num(b.XMin()), num(b.YMin()), num(b.XMax()-b.XMin()), num(b.YMax()-b.YMin()))
}

func (r *Renderer) pathOps(path *gplot.Path) {
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gplot.MoveTo:
			fmt.Fprintf(&r.body, "%s %s m\n", num(e.Point.X), num(e.Point.Y))
		case gplot.LineTo:
			fmt.Fprintf(&r.body, "%s %s l\n", num(e.Point.X), num(e.Point.Y))
		case gplot.QuadTo:
			// PostScript has only cubics; raise the degree.
			fmt.Fprintf(&r.body, "%s %s %s q\n", num(e.Control.X), num(e.Control.Y), pair(e.Point))
		case gplot.CubicTo:
			fmt.Fprintf(&r.body, "%s %s %s c\n", pair(e.Control1), pair(e.Control2), pair(e.Point))
		case gplot.Close:
			r.body.WriteString("cl\n")
		}
	}
}

// Print writes the complete document.
func (r *Renderer) Print(w io.Writer) error {
	var out bytes.Buffer
	pw, ph := r.width, r.height
	if r.landscape {
		pw, ph = ph, pw
	}
	paperW, paperH := pw, ph
	if size, ok := PaperSizes[r.paper]; ok && !r.eps {
		paperW, paperH = size[0], size[1]
		if r.landscape {
			paperW, paperH = paperH, paperW
		}
	}
	// Center the figure on the page.
	ox, oy := math.Max(0, (paperW-pw)/2), math.Max(0, (paperH-ph)/2)
	if r.eps {
		ox, oy = 0, 0
		out.WriteString("%!PS-Adobe-3.0 EPSF-3.0\n")
	} else {
		out.WriteString("%!PS-Adobe-3.0\n")
	}
	fmt.Fprintf(&out, "%%%%Creator: gplot\n%%%%CreationDate: %s\n", time.Now().UTC().Format(time.RFC1123))
	fmt.Fprintf(&out, "%%%%BoundingBox: %d %d %d %d\n",
		int(math.Floor(ox)), int(math.Floor(oy)), int(math.Ceil(ox+pw)), int(math.Ceil(oy+ph)))
	if r.landscape {
		out.WriteString("%%Orientation: Landscape\n")
	} else {
		out.WriteString("%%Orientation: Portrait\n")
	}
	out.WriteString("%%LanguageLevel: 2\n%%Pages: 1\n%%EndComments\n%%BeginProlog\n")
	out.WriteString(prolog)
	out.WriteString("%%EndProlog\n%%Page: 1 1\n")
	if r.landscape {
		fmt.Fprintf(&out, "%s %s translate 90 rotate\n", num(ox+pw), num(oy))
	} else {
		fmt.Fprintf(&out, "%s %s translate\n", num(ox), num(oy))
	}
	out.Write(r.body.Bytes())
	out.WriteString("showpage\n%%EOF\n")

	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("ps: write: %w", err)
	}
	return nil
}

// prolog defines the path shorthands used in the body. q converts a
// quadratic segment to a cubic from the current point.
const prolog = `/m { moveto } bind def
/l { lineto } bind def
/c { curveto } bind def
/cl { closepath } bind def
/q {
  /y2 exch def /x2 exch def /y1 exch def /x1 exch def
  currentpoint /y0 exch def /x0 exch def
  x0 2 x1 mul add 3 div y0 2 y1 mul add 3 div
  x2 2 x1 mul add 3 div y2 2 y1 mul add 3 div
  x2 y2 curveto
} bind def
`

func psCap(c backend.CapStyle) int {
	switch c {
	case backend.CapRound:
		return 1
	case backend.CapProjecting:
		return 2
	}
	return 0
}

func psJoin(j backend.JoinStyle) int {
	switch j {
	case backend.JoinRound:
		return 1
	case backend.JoinBevel:
		return 2
	}
	return 0
}

func rgb(c colors.RGBA) string {
	return fmt.Sprintf("%s %s %s", num(c.R), num(c.G), num(c.B))
}

func pair(p gplot.Point) string { return num(p.X) + " " + num(p.Y) }

// num formats v with at most four decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
