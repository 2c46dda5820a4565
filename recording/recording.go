package recording

import (
	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/colors"
)

// Recording is a finished list of commands.
type Recording struct {
	width, height float64
	dpi           float64
	flipY         bool
	commands      []Command
}

// Size returns the canvas size in display units.
func (r *Recording) Size() (w, h float64) { return r.width, r.height }

// DPI returns the resolution the commands were recorded at.
func (r *Recording) DPI() float64 { return r.dpi }

// Commands returns every command in order.
func (r *Recording) Commands() []Command { return r.commands }

// Filter returns the commands of type t, in order.
func (r *Recording) Filter(t CommandType) []Command {
	return Filter(r.commands, t)
}

// Filter returns the commands of type t, in order.
func Filter(cmds []Command, t CommandType) []Command {
	var out []Command
	for _, c := range cmds {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many commands have type t.
func (r *Recording) Count(t CommandType) int {
	return len(r.Filter(t))
}

// Playback replays every command into dst. Marker and path commands fall
// back to polygon and polyline calls when dst lacks those capabilities.
// Text positions are mirrored when dst uses the other y orientation.
func (r *Recording) Playback(dst backend.Renderer) {
	markers, hasMarkers := dst.(backend.MarkerRenderer)
	paths, hasPaths := dst.(backend.PathRenderer)
	tex, hasTex := dst.(backend.TexRenderer)
	_, h := dst.CanvasWidthHeight()
	if h == 0 {
		h = r.height
	}
	textY := func(y float64) float64 {
		if r.flipY == dst.FlipY() {
			return y
		}
		return h - y
	}

	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case OpenGroupCommand:
			dst.OpenGroup(c.Name)
		case CloseGroupCommand:
			dst.CloseGroup(c.Name)
		case DrawLineCommand:
			dst.DrawLine(c.GC, c.X1, c.Y1, c.X2, c.Y2)
		case DrawLinesCommand:
			dst.DrawLines(c.GC, c.Xs, c.Ys, nil)
		case DrawMarkersCommand:
			if hasMarkers {
				markers.DrawMarkers(c.GC, c.Path, c.Face, c.Xs, c.Ys, nil)
				continue
			}
			for i := range min(len(c.Xs), len(c.Ys)) {
				emitOutline(dst, c.GC, c.Path.Transform(gplot.Translate(c.Xs[i], c.Ys[i])), c.Face)
			}
		case DrawPolygonCommand:
			dst.DrawPolygon(c.GC, c.Face, c.Points)
		case DrawRectangleCommand:
			dst.DrawRectangle(c.GC, c.Face, c.X, c.Y, c.W, c.H)
		case DrawArcCommand:
			dst.DrawArc(c.GC, c.Face, c.X, c.Y, c.W, c.H, c.Theta1, c.Theta2, c.Rotation)
		case DrawPathCommand:
			if hasPaths {
				paths.DrawPath(c.GC, c.Path, c.Face)
				continue
			}
			emitOutline(dst, c.GC, c.Path, c.Face)
		case DrawImageCommand:
			dst.DrawImage(c.X, c.Y, c.Image, c.Clip)
		case DrawTextCommand:
			dst.DrawText(c.GC, c.X, textY(c.Y), c.Text, c.Props, c.Angle, c.IsMath)
		case DrawTexCommand:
			if hasTex {
				tex.DrawTex(c.GC, c.X, textY(c.Y), c.Text, c.Props, c.Angle)
				continue
			}
			dst.DrawText(c.GC, c.X, textY(c.Y), c.Text, c.Props, c.Angle, true)
		}
	}
}

// emitOutline draws the closed subpaths of p as polygons and the open
// ones as polylines.
func emitOutline(dst backend.Renderer, gc *backend.GraphicsContext, p *gplot.Path, face *colors.RGBA) {
	subs, closed := p.Flatten(0.1)
	for i, sub := range subs {
		if closed[i] {
			dst.DrawPolygon(gc, face, sub)
			continue
		}
		xs, ys := gplot.Unzip(sub)
		dst.DrawLines(gc, xs, ys, nil)
	}
}
