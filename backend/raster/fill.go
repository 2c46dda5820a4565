package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/internal/stroke"
)

// fill scan-converts polys, given in canvas pixels, and composites c
// through the coverage.
func (r *Renderer) fill(polys [][]gplot.Point, c colors.RGBA, clip *bbox.Bbox) {
	if c.A <= 0 || len(polys) == 0 {
		return
	}
	rect := r.img.Bounds()
	if clip != nil {
		rect = r.clipRect(clip)
	}
	if rect.Empty() {
		return
	}
	z := rasterize(polys, rect)
	z.DrawOp = draw.Over
	z.Draw(r.img, rect, image.NewUniform(nrgba(c)), image.Point{})
}

// rasterize accumulates polys into a rasterizer covering rect. The
// rasterizer origin is rect.Min, as Draw expects.
func rasterize(polys [][]gplot.Point, rect image.Rectangle) *vector.Rasterizer {
	z := vector.NewRasterizer(rect.Dx(), rect.Dy())
	ox, oy := float64(rect.Min.X), float64(rect.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	return z
}

// fillAndStroke fills subs with face, hatches them, then strokes them.
func (r *Renderer) fillAndStroke(gc *backend.GraphicsContext, face *colors.RGBA, subs [][]gplot.Point, closed []bool) {
	if face != nil {
		r.fill(subs, gc.FillColor(*face), gc.ClipRect)
	}
	if gc.Hatch != "" {
		r.hatch(gc, subs)
	}
	r.strokePolylines(gc, subs, closed)
}

// strokePolylines dashes and expands polylines in canvas pixels.
func (r *Renderer) strokePolylines(gc *backend.GraphicsContext, lines [][]gplot.Point, closed []bool) {
	if gc.Invisible() {
		return
	}
	exp := stroke.NewStrokeExpander(stroke.Stroke{
		Width: r.PointsToPixels(gc.LineWidth),
		Cap:   strokeCap(gc.Cap),
		Join:  strokeJoin(gc.Join),
	})
	dasher := stroke.NewDasher(gc.Dash.Scale(r.dpi / 72))
	var polys [][]gplot.Point
	for i, line := range lines {
		isClosed := i < len(closed) && closed[i]
		for _, piece := range dasher.Split(line, isClosed) {
			polys = append(polys, exp.Expand(piece, isClosed && dasher == nil)...)
		}
	}
	r.fill(polys, gc.StrokeColor(), gc.ClipRect)
}

// hatch draws the gc hatch pattern in the foreground color, masked by the
// coverage of subs.
func (r *Renderer) hatch(gc *backend.GraphicsContext, subs [][]gplot.Point) {
	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for _, sp := range subs {
		for _, p := range sp {
			xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
			ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
		}
	}
	rect := image.Rect(int(math.Floor(xmin)), int(math.Floor(ymin)), int(math.Ceil(xmax)), int(math.Ceil(ymax)))
	if gc.ClipRect != nil {
		rect = rect.Intersect(r.clipRect(gc.ClipRect))
	}
	rect = rect.Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}

	shape := image.NewAlpha(rect)
	rasterize(subs, rect).Draw(shape, rect, image.Opaque, image.Point{})

	// Hatch in display space so that diagonals keep their slant.
	hp := backend.HatchPath(gc.Hatch, xmin, r.height-ymax, xmax, r.height-ymin, r.dpi)
	lines, _ := hp.Flatten(0.1)
	r.pxAll(lines)
	exp := stroke.NewStrokeExpander(stroke.Stroke{Width: math.Max(1, r.PointsToPixels(gc.LineWidth))})
	var polys [][]gplot.Point
	for _, l := range lines {
		polys = append(polys, exp.Expand(l, false)...)
	}
	// Intersect the hatch coverage with the shape coverage.
	mask := image.NewAlpha(rect)
	z := rasterize(polys, rect)
	z.DrawOp = draw.Src
	z.Draw(mask, rect, shape, rect.Min)

	draw.DrawMask(r.img, rect, image.NewUniform(nrgba(gc.StrokeColor())), image.Point{}, mask, rect.Min, draw.Over)
}

func strokeCap(c backend.CapStyle) stroke.LineCap {
	switch c {
	case backend.CapRound:
		return stroke.LineCapRound
	case backend.CapProjecting:
		return stroke.LineCapSquare
	default:
		return stroke.LineCapButt
	}
}

func strokeJoin(j backend.JoinStyle) stroke.LineJoin {
	switch j {
	case backend.JoinRound:
		return stroke.LineJoinRound
	case backend.JoinBevel:
		return stroke.LineJoinBevel
	default:
		return stroke.LineJoinMiter
	}
}
