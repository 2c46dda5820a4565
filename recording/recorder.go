package recording

import (
	"image"
	"slices"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/transform"
)

// Recorder captures renderer calls as commands. It implements
// backend.Renderer, backend.MarkerRenderer and backend.PathRenderer.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height float64
	dpi           float64
	flipY         bool
	fonts         *font.Manager
	commands      []Command
	depth         int
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithFlipY makes the recorder report a y-down native canvas, as raster
// renderers do, so artists place text from the top.
func WithFlipY() Option {
	return func(r *Recorder) { r.flipY = true }
}

// WithFontManager measures text with m instead of the default manager.
func WithFontManager(m *font.Manager) Option {
	return func(r *Recorder) { r.fonts = m }
}

// NewRecorder returns a recorder for a canvas of the given size in
// display units at dpi.
func NewRecorder(width, height, dpi float64, opts ...Option) *Recorder {
	r := &Recorder{
		width:    width,
		height:   height,
		dpi:      dpi,
		fonts:    font.DefaultManager(),
		commands: make([]Command, 0, 64),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Finish returns the recorded commands. The recorder stays usable and
// keeps appending to a fresh list.
func (r *Recorder) Finish() *Recording {
	rec := &Recording{width: r.width, height: r.height, dpi: r.dpi, flipY: r.flipY, commands: r.commands}
	r.commands = make([]Command, 0, 64)
	return rec
}

// Commands returns the commands recorded so far.
func (r *Recorder) Commands() []Command { return r.commands }

// Reset discards every recorded command.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.depth = 0
}

// Depth returns the number of open groups.
func (r *Recorder) Depth() int { return r.depth }

func (r *Recorder) add(c Command) { r.commands = append(r.commands, c) }

// NewGC implements backend.Renderer.
func (r *Recorder) NewGC() *backend.GraphicsContext { return backend.NewGraphicsContext() }

// DrawLine implements backend.Renderer.
func (r *Recorder) DrawLine(gc *backend.GraphicsContext, x1, y1, x2, y2 float64) {
	r.add(DrawLineCommand{GC: gc.Copy(), X1: x1, Y1: y1, X2: x2, Y2: y2})
}

// DrawLines implements backend.Renderer.
func (r *Recorder) DrawLines(gc *backend.GraphicsContext, xs, ys []float64, trans transform.Transform) {
	xs, ys = mapXY(xs, ys, trans)
	r.add(DrawLinesCommand{GC: gc.Copy(), Xs: xs, Ys: ys})
}

// DrawMarkers implements backend.MarkerRenderer.
func (r *Recorder) DrawMarkers(gc *backend.GraphicsContext, path *gplot.Path, face *colors.RGBA, xs, ys []float64, trans transform.Transform) {
	xs, ys = mapXY(xs, ys, trans)
	r.add(DrawMarkersCommand{GC: gc.Copy(), Path: path.Clone(), Face: cloneColor(face), Xs: xs, Ys: ys})
}

// DrawPolygon implements backend.Renderer.
func (r *Recorder) DrawPolygon(gc *backend.GraphicsContext, face *colors.RGBA, pts []gplot.Point) {
	r.add(DrawPolygonCommand{GC: gc.Copy(), Face: cloneColor(face), Points: slices.Clone(pts)})
}

// DrawRectangle implements backend.Renderer.
func (r *Recorder) DrawRectangle(gc *backend.GraphicsContext, face *colors.RGBA, x, y, w, h float64) {
	r.add(DrawRectangleCommand{GC: gc.Copy(), Face: cloneColor(face), X: x, Y: y, W: w, H: h})
}

// DrawArc implements backend.Renderer.
func (r *Recorder) DrawArc(gc *backend.GraphicsContext, face *colors.RGBA, x, y, w, h, theta1, theta2, rotation float64) {
	r.add(DrawArcCommand{
		GC: gc.Copy(), Face: cloneColor(face),
		X: x, Y: y, W: w, H: h,
		Theta1: theta1, Theta2: theta2, Rotation: rotation,
	})
}

// DrawPath implements backend.PathRenderer.
func (r *Recorder) DrawPath(gc *backend.GraphicsContext, path *gplot.Path, face *colors.RGBA) {
	r.add(DrawPathCommand{GC: gc.Copy(), Path: path.Clone(), Face: cloneColor(face)})
}

// DrawImage implements backend.Renderer.
func (r *Recorder) DrawImage(x, y float64, im image.Image, clip *bbox.Bbox) {
	if clip != nil {
		clip = clip.DeepCopy()
	}
	r.add(DrawImageCommand{X: x, Y: y, Image: im, Clip: clip})
}

// DrawText implements backend.Renderer.
func (r *Recorder) DrawText(gc *backend.GraphicsContext, x, y float64, s string, props *font.Properties, angle float64, ismath bool) {
	r.add(DrawTextCommand{GC: gc.Copy(), X: x, Y: y, Text: s, Props: cloneProps(props), Angle: angle, IsMath: ismath})
}

// TextExtents implements backend.Renderer.
func (r *Recorder) TextExtents(s string, props *font.Properties, _ bool) (w, h, descent float64, err error) {
	return r.fonts.Extents(s, props, r.dpi)
}

// CanvasWidthHeight implements backend.Renderer.
func (r *Recorder) CanvasWidthHeight() (float64, float64) { return r.width, r.height }

// FlipY implements backend.Renderer.
func (r *Recorder) FlipY() bool { return r.flipY }

// DPI implements backend.Renderer.
func (r *Recorder) DPI() float64 { return r.dpi }

// PointsToPixels implements backend.Renderer.
func (r *Recorder) PointsToPixels(points float64) float64 { return points * r.dpi / 72 }

// OptionImageNocomposite implements backend.Renderer.
func (r *Recorder) OptionImageNocomposite() bool { return false }

// ImageMagnification implements backend.Renderer.
func (r *Recorder) ImageMagnification() float64 { return 1 }

// OpenGroup implements backend.Renderer.
func (r *Recorder) OpenGroup(name string) {
	r.depth++
	r.add(OpenGroupCommand{Name: name})
}

// CloseGroup implements backend.Renderer.
func (r *Recorder) CloseGroup(name string) {
	r.depth--
	r.add(CloseGroupCommand{Name: name})
}

// Plain hides the optional capabilities of r, leaving only
// backend.Renderer, so artists take their fallback paths.
func Plain(r *Recorder) backend.Renderer {
	return plain{r}
}

type plain struct{ backend.Renderer }

// Tex adds backend.TexRenderer to r.
func Tex(r *Recorder) backend.Renderer {
	return texRecorder{r}
}

type texRecorder struct{ *Recorder }

// DrawTex implements backend.TexRenderer.
func (t texRecorder) DrawTex(gc *backend.GraphicsContext, x, y float64, s string, props *font.Properties, angle float64) {
	t.add(DrawTexCommand{GC: gc.Copy(), X: x, Y: y, Text: s, Props: cloneProps(props), Angle: angle})
}

func mapXY(xs, ys []float64, trans transform.Transform) ([]float64, []float64) {
	if trans == nil {
		n := min(len(xs), len(ys))
		return slices.Clone(xs[:n]), slices.Clone(ys[:n])
	}
	return trans.NumerixXY(xs, ys)
}

func cloneColor(c *colors.RGBA) *colors.RGBA {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

func cloneProps(p *font.Properties) *font.Properties {
	if p == nil {
		return nil
	}
	return p.Clone()
}
