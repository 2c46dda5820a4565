// Package patches draws filled outlines: rectangles, polygons, ellipses,
// wedges, arrows and their shadows.
//
// Every shape embeds Patch, which carries the face, edge and hatch style
// and draws the shape's vertices as one polygon. Ellipses and circles
// use an arc call instead when their transform is affine. Each shape can
// report its data bounds from its parameters, without building vertices.
package patches

import (
	"fmt"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/transform"
)

// Shape is the geometry of a patch in its own coordinates.
type Shape interface {
	// Verts returns the closed outline.
	Verts() []gplot.Point
	// DataBounds returns the extents of the outline.
	DataBounds() (x0, y0, x1, y1 float64)
}

// Artist is a patch of any shape.
type Artist interface {
	artist.Artist
	Shape
	AsPatch() *Patch
}

// arcDrawer is implemented by shapes that draw themselves with DrawArc
// when possible. It reports false to fall back to the polygon.
type arcDrawer interface {
	drawArc(r backend.Renderer, gc *backend.GraphicsContext, face *colors.RGBA, t transform.Transform) bool
}

// Patch holds the style shared by every shape.
type Patch struct {
	artist.Base

	shape Shape

	edge, face  colors.RGBA
	lineWidth   float64
	lineStyle   string
	fill        bool
	antialiased bool
	hatch       string
}

// init binds the concrete shape and applies the patch.* rc defaults.
func (p *Patch) init(self Artist) {
	p.Init(self)
	p.SetZOrder(1)
	p.shape = self
	rc := rcparams.Default()
	p.edge = rc.Color("patch.edgecolor")
	p.face = rc.Color("patch.facecolor")
	p.lineWidth = rc.Float("patch.linewidth")
	p.antialiased = rc.Bool("patch.antialiased")
	p.lineStyle = "-"
	p.fill = true
}

// AsPatch returns the style holder.
func (p *Patch) AsPatch() *Patch { return p }

// EdgeColor returns the edge color.
func (p *Patch) EdgeColor() colors.RGBA { return p.edge }

// SetEdgeColor sets the edge color from any color specification.
func (p *Patch) SetEdgeColor(v any) error {
	c, err := colors.ToRGBA(v)
	if err != nil {
		return fmt.Errorf("patches: %w", err)
	}
	p.edge = c
	p.PChanged()
	return nil
}

// FaceColor returns the face color.
func (p *Patch) FaceColor() colors.RGBA { return p.face }

// SetFaceColor sets the face color from any color specification.
func (p *Patch) SetFaceColor(v any) error {
	c, err := colors.ToRGBA(v)
	if err != nil {
		return fmt.Errorf("patches: %w", err)
	}
	p.face = c
	p.PChanged()
	return nil
}

// SetColor sets both the edge and the face color.
func (p *Patch) SetColor(v any) error {
	c, err := colors.ToRGBA(v)
	if err != nil {
		return fmt.Errorf("patches: %w", err)
	}
	p.edge, p.face = c, c
	p.PChanged()
	return nil
}

// LineWidth returns the edge width in points.
func (p *Patch) LineWidth() float64 { return p.lineWidth }

// SetLineWidth sets the edge width in points. Zero suppresses the edge.
func (p *Patch) SetLineWidth(w float64) {
	p.lineWidth = w
	p.PChanged()
}

// LineStyle returns the edge line style.
func (p *Patch) LineStyle() string { return p.lineStyle }

// SetLineStyle sets the edge line style: "-", "--", "-.", ":" or "None".
func (p *Patch) SetLineStyle(s string) error {
	gc := backend.NewGraphicsContext()
	if err := gc.SetLineStyle(s); err != nil {
		return fmt.Errorf("patches: %w", err)
	}
	p.lineStyle = s
	p.PChanged()
	return nil
}

// Fill reports whether the face is drawn.
func (p *Patch) Fill() bool { return p.fill }

// SetFill enables or disables the face pass.
func (p *Patch) SetFill(v bool) {
	p.fill = v
	p.PChanged()
}

// Antialiased reports whether the patch is antialiased.
func (p *Patch) Antialiased() bool { return p.antialiased }

// SetAntialiased enables or disables antialiasing.
func (p *Patch) SetAntialiased(v bool) {
	p.antialiased = v
	p.PChanged()
}

// Hatch returns the hatch pattern.
func (p *Patch) Hatch() string { return p.hatch }

// SetHatch sets the hatch pattern, built from / \ | - + x o O . *.
func (p *Patch) SetHatch(h string) {
	p.hatch = h
	p.PChanged()
}

// UpdateStyleFrom copies the style and shared artist state of o.
func (p *Patch) UpdateStyleFrom(o *Patch) {
	p.edge, p.face = o.edge, o.face
	p.lineWidth, p.lineStyle = o.lineWidth, o.lineStyle
	p.fill, p.antialiased, p.hatch = o.fill, o.antialiased, o.hatch
	p.UpdateFrom(o.ArtistBase())
}

// gc returns the graphics context for the edge pass.
func (p *Patch) gc(r backend.Renderer) *backend.GraphicsContext {
	gc := p.NewGC(r)
	gc.Foreground = p.edge
	gc.LineWidth = p.lineWidth
	gc.Antialiased = p.antialiased
	gc.Hatch = p.hatch
	_ = gc.SetLineStyle(p.lineStyle)
	return gc
}

// faceColor returns the face for the fill pass, or nil.
func (p *Patch) faceColor() *colors.RGBA {
	if !p.fill {
		return nil
	}
	f := p.face
	return &f
}

// Draw implements artist.Artist.
func (p *Patch) Draw(r backend.Renderer) error {
	if !p.Visible() {
		return nil
	}
	r.OpenGroup("patch")
	defer r.CloseGroup("patch")
	drawShape(r, p, p.gc(r), p.faceColor())
	return nil
}

// WindowExtent implements artist.Extenter.
func (p *Patch) WindowExtent(backend.Renderer) (*bbox.Bbox, error) {
	verts := p.Transform().SeqXYTups(p.shape.Verts())
	if len(verts) == 0 {
		return nil, fmt.Errorf("patches: %w: empty outline", gplot.ErrInvalidValue)
	}
	x0, y0, x1, y1 := pointBounds(verts)
	return bbox.FromExtents(x0, y0, x1, y1), nil
}

func drawShape(r backend.Renderer, p *Patch, gc *backend.GraphicsContext, face *colors.RGBA) {
	t := p.Transform()
	if ad, ok := p.shape.(arcDrawer); ok && ad.drawArc(r, gc, face, t) {
		return
	}
	verts := p.shape.Verts()
	if len(verts) == 0 {
		return
	}
	r.DrawPolygon(gc, face, t.SeqXYTups(verts))
}
