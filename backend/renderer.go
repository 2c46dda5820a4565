package backend

import (
	"image"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/transform"
)

// Renderer receives primitive draw calls. Coordinates are display
// coordinates (y up) except for DrawText; see the package documentation.
// Face colors passed as nil are not filled.
type Renderer interface {
	// NewGC returns a fresh graphics context.
	NewGC() *GraphicsContext

	// DrawLine strokes one segment.
	DrawLine(gc *GraphicsContext, x1, y1, x2, y2 float64)
	// DrawLines strokes a polyline. When trans is non-nil the coordinates
	// are mapped through it first.
	DrawLines(gc *GraphicsContext, xs, ys []float64, trans transform.Transform)
	// DrawPolygon fills and strokes a closed polygon.
	DrawPolygon(gc *GraphicsContext, face *colors.RGBA, pts []gplot.Point)
	// DrawRectangle fills and strokes an axis-aligned rectangle with
	// lower-left corner (x, y).
	DrawRectangle(gc *GraphicsContext, face *colors.RGBA, x, y, w, h float64)
	// DrawArc fills and strokes the elliptical arc centered at (x, y) with
	// full width w and height h, from theta1 to theta2 degrees, rotated by
	// rotation degrees.
	DrawArc(gc *GraphicsContext, face *colors.RGBA, x, y, w, h, theta1, theta2, rotation float64)
	// DrawImage blits im with its lower-left corner at (x, y), clipped to
	// clip when non-nil.
	DrawImage(x, y float64, im image.Image, clip *bbox.Bbox)
	// DrawText renders s with the left end of its baseline at (x, y) in
	// renderer-native coordinates, rotated angle degrees counter-clockwise.
	DrawText(gc *GraphicsContext, x, y float64, s string, props *font.Properties, angle float64, ismath bool)
	// TextExtents measures s in display units.
	TextExtents(s string, props *font.Properties, ismath bool) (w, h, descent float64, err error)

	// CanvasWidthHeight returns the canvas size in display units.
	CanvasWidthHeight() (w, h float64)
	// FlipY reports whether y=0 is the top of the native canvas.
	FlipY() bool
	// DPI returns the dots per inch used for layout.
	DPI() float64
	// PointsToPixels converts typographic points to display units.
	PointsToPixels(points float64) float64
	// OptionImageNocomposite reports whether images are drawn one by one
	// rather than composited first.
	OptionImageNocomposite() bool
	// ImageMagnification is the supersampling factor for composited images.
	ImageMagnification() float64

	// OpenGroup and CloseGroup bracket the calls of one artist.
	OpenGroup(name string)
	CloseGroup(name string)
}

// MarkerRenderer draws one marker path at many positions.
type MarkerRenderer interface {
	// DrawMarkers fills and strokes path, given in display units around
	// the origin, at every (xs[i], ys[i]) mapped through trans.
	DrawMarkers(gc *GraphicsContext, path *gplot.Path, face *colors.RGBA, xs, ys []float64, trans transform.Transform)
}

// PathRenderer fills and strokes arbitrary outlines in display coordinates.
type PathRenderer interface {
	DrawPath(gc *GraphicsContext, path *gplot.Path, face *colors.RGBA)
}

// TexRenderer renders strings through a full math engine.
type TexRenderer interface {
	DrawTex(gc *GraphicsContext, x, y float64, s string, props *font.Properties, angle float64)
}

// Region is a saved rectangle of canvas pixels.
type Region interface {
	Bounds() image.Rectangle
}

// Blitter saves and restores canvas regions for animation.
type Blitter interface {
	CopyFromBbox(b *bbox.Bbox) Region
	RestoreRegion(r Region)
}
