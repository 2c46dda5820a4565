package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/transform"
)

func init() {
	backend.Register("png", newFactory(formatPNG))
	backend.Register("jpg", newFactory(formatJPEG))
	backend.Register("jpeg", newFactory(formatJPEG))
}

type format int

const (
	formatPNG format = iota
	formatJPEG
)

// JPEGQuality is the quality used for JPEG output.
var JPEGQuality = 90

func newFactory(f format) backend.Factory {
	return func(widthIn, heightIn float64, opts backend.Options) (backend.Output, error) {
		r, err := New(widthIn, heightIn, opts.DPI)
		if err != nil {
			return nil, err
		}
		r.format = f
		return r, nil
	}
}

// Renderer draws onto an RGBA canvas. It implements backend.Output,
// backend.MarkerRenderer, backend.PathRenderer and backend.Blitter.
type Renderer struct {
	img    *image.RGBA
	dpi    float64
	width  float64
	height float64
	fonts  *font.Manager
	format format
}

var (
	_ backend.Output         = (*Renderer)(nil)
	_ backend.MarkerRenderer = (*Renderer)(nil)
	_ backend.PathRenderer   = (*Renderer)(nil)
	_ backend.Blitter        = (*Renderer)(nil)
)

// New creates a transparent canvas of widthIn x heightIn inches at dpi.
func New(widthIn, heightIn, dpi float64) (*Renderer, error) {
	if dpi <= 0 {
		dpi = 100
	}
	w := int(math.Round(widthIn * dpi))
	h := int(math.Round(heightIn * dpi))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: %w: canvas %dx%d", gplot.ErrInvalidValue, w, h)
	}
	return &Renderer{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		dpi:    dpi,
		width:  float64(w),
		height: float64(h),
		fonts:  font.DefaultManager(),
	}, nil
}

// Image returns the canvas.
func (r *Renderer) Image() *image.RGBA { return r.img }

// SetFontManager replaces the font manager used for text.
func (r *Renderer) SetFontManager(m *font.Manager) { r.fonts = m }

// Print encodes the canvas as PNG or JPEG.
func (r *Renderer) Print(w io.Writer) error {
	var err error
	switch r.format {
	case formatJPEG:
		err = jpeg.Encode(w, r.img, &jpeg.Options{Quality: JPEGQuality})
	default:
		err = png.Encode(w, r.img)
	}
	if err != nil {
		return fmt.Errorf("raster: encode: %w", err)
	}
	return nil
}

// NewGC returns a default graphics context.
func (r *Renderer) NewGC() *backend.GraphicsContext { return backend.NewGraphicsContext() }

// CanvasWidthHeight returns the canvas size in pixels.
func (r *Renderer) CanvasWidthHeight() (float64, float64) { return r.width, r.height }

// FlipY is true: row 0 of the canvas is the top.
func (r *Renderer) FlipY() bool { return true }

// DPI returns the canvas resolution.
func (r *Renderer) DPI() float64 { return r.dpi }

// PointsToPixels converts points to pixels.
func (r *Renderer) PointsToPixels(points float64) float64 { return points * r.dpi / 72 }

// OptionImageNocomposite is false: images are composited first.
func (r *Renderer) OptionImageNocomposite() bool { return false }

// ImageMagnification is 1.
func (r *Renderer) ImageMagnification() float64 { return 1 }

// OpenGroup is a no-op.
func (r *Renderer) OpenGroup(string) {}

// CloseGroup is a no-op.
func (r *Renderer) CloseGroup(string) {}

// DrawLine strokes one segment.
func (r *Renderer) DrawLine(gc *backend.GraphicsContext, x1, y1, x2, y2 float64) {
	r.strokePolylines(gc, [][]gplot.Point{{r.px(x1, y1), r.px(x2, y2)}}, []bool{false})
}

// DrawLines strokes a polyline, breaking it at non-finite vertices.
func (r *Renderer) DrawLines(gc *backend.GraphicsContext, xs, ys []float64, trans transform.Transform) {
	if trans != nil {
		xs, ys = trans.NumerixXY(xs, ys)
	}
	runs := backend.SplitFinite(xs, ys)
	for _, run := range runs {
		for i, p := range run {
			run[i] = r.px(p.X, p.Y)
		}
	}
	r.strokePolylines(gc, runs, make([]bool, len(runs)))
}

// DrawPolygon fills and strokes a closed polygon.
func (r *Renderer) DrawPolygon(gc *backend.GraphicsContext, face *colors.RGBA, pts []gplot.Point) {
	if len(pts) == 0 {
		return
	}
	poly := make([]gplot.Point, len(pts))
	for i, p := range pts {
		poly[i] = r.px(p.X, p.Y)
	}
	r.fillAndStroke(gc, face, [][]gplot.Point{poly}, []bool{true})
}

// DrawRectangle fills and strokes an axis-aligned rectangle.
func (r *Renderer) DrawRectangle(gc *backend.GraphicsContext, face *colors.RGBA, x, y, w, h float64) {
	r.DrawPolygon(gc, face, []gplot.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}})
}

// DrawArc fills and strokes an elliptical arc.
func (r *Renderer) DrawArc(gc *backend.GraphicsContext, face *colors.RGBA, x, y, w, h, theta1, theta2, rotation float64) {
	p, closed := backend.ArcPath(x, y, w, h, theta1, theta2, rotation)
	subs, _ := p.Flatten(0.1)
	r.fillAndStroke(gc, face, r.pxAll(subs), []bool{closed})
}

// DrawPath fills and strokes an outline in display coordinates.
func (r *Renderer) DrawPath(gc *backend.GraphicsContext, path *gplot.Path, face *colors.RGBA) {
	subs, closed := path.Flatten(0.1)
	r.fillAndStroke(gc, face, r.pxAll(subs), closed)
}

// DrawMarkers draws path at every offset. The path is flattened once.
func (r *Renderer) DrawMarkers(gc *backend.GraphicsContext, path *gplot.Path, face *colors.RGBA, xs, ys []float64, trans transform.Transform) {
	subs, closed := path.Flatten(0.1)
	// Marker paths are y-up around the origin; flip them once.
	for _, sp := range subs {
		for i := range sp {
			sp[i].Y = -sp[i].Y
		}
	}
	offsets := backend.MarkerOffsets(xs, ys, trans)
	placed := make([][]gplot.Point, len(subs))
	for _, off := range offsets {
		o := r.px(off.X, off.Y)
		for i, sp := range subs {
			placed[i] = placed[i][:0]
			for _, p := range sp {
				placed[i] = append(placed[i], p.Add(o))
			}
		}
		r.fillAndStroke(gc, face, placed, closed)
	}
}

// DrawImage composites im with its lower-left corner at (x, y).
func (r *Renderer) DrawImage(x, y float64, im image.Image, clip *bbox.Bbox) {
	b := im.Bounds()
	top := int(math.Round(r.height - y - float64(b.Dy())))
	left := int(math.Round(x))
	dst := image.Rect(left, top, left+b.Dx(), top+b.Dy())
	if clip != nil {
		dst = dst.Intersect(r.clipRect(clip))
	}
	if dst.Empty() {
		return
	}
	sp := b.Min.Add(dst.Min.Sub(image.Pt(left, top)))
	draw.Draw(r.img, dst, im, sp, draw.Over)
}

// DrawText renders s from glyph outlines. (x, y) is the left end of the
// baseline in canvas pixels, y down.
func (r *Renderer) DrawText(gc *backend.GraphicsContext, x, y float64, s string, props *font.Properties, angle float64, _ bool) {
	run, err := r.fonts.Shape(s, props, r.dpi)
	if err != nil {
		gplot.Logger().Warn("raster: shape text", "text", s, "err", err)
		return
	}
	path, err := run.Path(0, 0)
	if err != nil {
		gplot.Logger().Warn("raster: glyph outline", "text", s, "err", err)
		return
	}
	// Rotate in the y-up glyph space, then flip onto the canvas.
	m := gplot.Translate(x, y).
		Multiply(gplot.Scale(1, -1)).
		Multiply(gplot.Rotate(angle * math.Pi / 180))
	subs, _ := path.Transform(m).Flatten(0.1)
	r.fill(subs, gc.StrokeColor(), gc.ClipRect)
}

// TextExtents measures s with the font manager.
func (r *Renderer) TextExtents(s string, props *font.Properties, _ bool) (w, h, descent float64, err error) {
	return r.fonts.Extents(s, props, r.dpi)
}

type region struct {
	img *image.RGBA
}

func (rg region) Bounds() image.Rectangle { return rg.img.Bounds() }

// CopyFromBbox saves the canvas pixels under b.
func (r *Renderer) CopyFromBbox(b *bbox.Bbox) backend.Region {
	rect := r.clipRect(b)
	saved := image.NewRGBA(rect)
	draw.Draw(saved, rect, r.img, rect.Min, draw.Src)
	return region{img: saved}
}

// RestoreRegion writes back a region saved by CopyFromBbox.
func (r *Renderer) RestoreRegion(rg backend.Region) {
	saved, ok := rg.(region)
	if !ok {
		return
	}
	draw.Draw(r.img, saved.img.Bounds(), saved.img, saved.img.Bounds().Min, draw.Src)
}

// px maps display coordinates to canvas pixels.
func (r *Renderer) px(x, y float64) gplot.Point {
	return gplot.Pt(x, r.height-y)
}

func (r *Renderer) pxAll(subs [][]gplot.Point) [][]gplot.Point {
	for _, sp := range subs {
		for i, p := range sp {
			sp[i] = r.px(p.X, p.Y)
		}
	}
	return subs
}

// clipRect converts a display-space box to a canvas rectangle.
func (r *Renderer) clipRect(b *bbox.Bbox) image.Rectangle {
	x0 := int(math.Floor(b.XMin()))
	x1 := int(math.Ceil(b.XMax()))
	y0 := int(math.Floor(r.height - b.YMax()))
	y1 := int(math.Ceil(r.height - b.YMin()))
	return image.Rect(x0, y0, x1, y1).Intersect(r.img.Bounds())
}

func nrgba(c colors.RGBA) color.Color { return c.NRGBA() }
