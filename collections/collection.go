// Package collections draws many similar primitives from one artist.
//
// A collection holds outlines plus per-instance style arrays: face and
// edge colors, line widths, line styles and offsets. Instance i uses
// outline i mod len(outlines), offset i mod len(offsets) and the same
// cycling for every style array, so one-element arrays act as a shared
// style. When an array of scalars is attached, faces (edges for line
// collections) are colored through a norm and a colormap instead.
package collections

import (
	"fmt"
	"slices"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/transform"
)

// outliner is implemented by every collection kind.
type outliner interface {
	artist.Artist
	// outlines returns the instance outlines in the collection transform
	// space. pt2px converts points to display units for kinds sized in
	// points.
	outlines(pt2px func(float64) float64) [][]gplot.Point
	// closed reports whether outlines are filled polygons.
	closed() bool
	// AsCollection returns the shared state.
	AsCollection() *Collection
}

// Collection holds the style shared by every kind.
type Collection struct {
	artist.Base

	self  outliner
	group string

	faces       []colors.RGBA
	edges       []colors.RGBA
	lineWidths  []float64
	lineStyles  []string
	antialiased []bool
	hatch       string

	offsets     []gplot.Point
	transOffset transform.Transform

	sm *colors.ScalarMappable
	// mapped colors the edges instead of the faces
	mapEdges bool
}

func (c *Collection) init(self outliner, group string) {
	c.Init(self)
	c.SetZOrder(1)
	c.self = self
	c.group = group
	c.lineStyles = []string{"-"}
	c.antialiased = []bool{true}
	c.sm = colors.NewScalarMappable(nil, nil)
	c.sm.AddCallback(func(*colors.ScalarMappable) { c.PChanged() })
}

// AsCollection returns the shared state.
func (c *Collection) AsCollection() *Collection { return c }

// Mappable returns the norm and colormap applied to the scalar array.
func (c *Collection) Mappable() *colors.ScalarMappable { return c.sm }

// SetArray attaches one scalar per instance. Nil detaches the mapping.
func (c *Collection) SetArray(a []float64) {
	c.sm.SetArray(slices.Clone(a))
	if a != nil {
		c.sm.AutoscaleNone()
	}
}

// SetCmap accepts a colormap or the name of a registered one.
func (c *Collection) SetCmap(v any) error {
	switch m := v.(type) {
	case *colors.Colormap:
		c.sm.SetCmap(m)
	case string:
		cm, err := colors.Get(m)
		if err != nil {
			return fmt.Errorf("collections: %w", err)
		}
		c.sm.SetCmap(cm)
	default:
		return fmt.Errorf("collections: %w: colormap %T", gplot.ErrInvalidValue, v)
	}
	return nil
}

// FaceColors returns the face colors. An empty slice draws no faces.
func (c *Collection) FaceColors() []colors.RGBA { return c.faces }

// SetFaceColors accepts one color, a list of colors, or "none".
func (c *Collection) SetFaceColors(v any) error {
	cs, err := toColors(v)
	if err != nil {
		return err
	}
	c.faces = cs
	c.PChanged()
	return nil
}

// EdgeColors returns the edge colors. An empty slice draws no edges.
func (c *Collection) EdgeColors() []colors.RGBA { return c.edges }

// SetEdgeColors accepts one color, a list of colors, or "none".
func (c *Collection) SetEdgeColors(v any) error {
	cs, err := toColors(v)
	if err != nil {
		return err
	}
	c.edges = cs
	c.PChanged()
	return nil
}

// SetColor sets faces and edges to the same colors.
func (c *Collection) SetColor(v any) error {
	cs, err := toColors(v)
	if err != nil {
		return err
	}
	c.faces, c.edges = cs, slices.Clone(cs)
	c.PChanged()
	return nil
}

// LineWidths returns the edge widths in points.
func (c *Collection) LineWidths() []float64 { return c.lineWidths }

// SetLineWidths sets the edge widths in points.
func (c *Collection) SetLineWidths(ws ...float64) {
	c.lineWidths = slices.Clone(ws)
	c.PChanged()
}

// LineStyles returns the edge line styles.
func (c *Collection) LineStyles() []string { return c.lineStyles }

// SetLineStyles sets the edge line styles: "-", "--", "-.", ":" or "None".
func (c *Collection) SetLineStyles(ss ...string) error {
	gc := backend.NewGraphicsContext()
	for _, s := range ss {
		if err := gc.SetLineStyle(s); err != nil {
			return fmt.Errorf("collections: %w", err)
		}
	}
	c.lineStyles = slices.Clone(ss)
	c.PChanged()
	return nil
}

// SetAntialiased sets the per-instance antialiasing flags.
func (c *Collection) SetAntialiased(aa ...bool) {
	c.antialiased = slices.Clone(aa)
	c.PChanged()
}

// Hatch returns the hatch pattern applied to every instance.
func (c *Collection) Hatch() string { return c.hatch }

// SetHatch sets the hatch pattern.
func (c *Collection) SetHatch(h string) {
	c.hatch = h
	c.PChanged()
}

// Offsets returns the instance offsets.
func (c *Collection) Offsets() []gplot.Point { return c.offsets }

// SetOffsets places instance i at offsets[i mod n] mapped through t. A
// nil t leaves the offsets in display units.
func (c *Collection) SetOffsets(offsets []gplot.Point, t transform.Transform) {
	c.offsets = slices.Clone(offsets)
	c.transOffset = t
	c.PChanged()
}

// OffsetTransform returns the transform applied to the offsets.
func (c *Collection) OffsetTransform() transform.Transform { return c.transOffset }

// Len returns the number of drawn instances.
func (c *Collection) Len() int {
	n := len(c.self.outlines(func(p float64) float64 { return p }))
	if n == 0 {
		return 0
	}
	return max(n, len(c.offsets))
}

// resolvedColors applies the scalar mapping, if any.
func (c *Collection) resolvedColors() (faces, edges []colors.RGBA) {
	faces, edges = c.faces, c.edges
	if c.sm.Array() == nil {
		return faces, edges
	}
	mapped := c.sm.Colors(1)
	if c.mapEdges {
		return faces, mapped
	}
	return mapped, edges
}

func cycle[T any](s []T, i int) (T, bool) {
	var zero T
	if len(s) == 0 {
		return zero, false
	}
	return s[i%len(s)], true
}

// instanceGC configures the context for instance i. It reports false when
// the instance has no visible edge.
func (c *Collection) instanceGC(r backend.Renderer, i int, edges []colors.RGBA) (*backend.GraphicsContext, bool) {
	gc := c.NewGC(r)
	gc.Hatch = c.hatch
	if aa, ok := cycle(c.antialiased, i); ok {
		gc.Antialiased = aa
	}
	edge, ok := cycle(edges, i)
	lw, _ := cycle(c.lineWidths, i)
	if !ok || lw <= 0 {
		gc.LineWidth = 0
		return gc, false
	}
	gc.Foreground = edge
	gc.LineWidth = lw
	if ls, ok := cycle(c.lineStyles, i); ok {
		// Styles are validated by SetLineStyles.
		_ = gc.SetLineStyle(ls)
	}
	return gc, !gc.Invisible()
}

// uniform reports whether every instance shares one style.
func (c *Collection) uniform(faces, edges []colors.RGBA) bool {
	return len(faces) <= 1 && len(edges) <= 1 && len(c.lineWidths) <= 1 &&
		len(c.lineStyles) <= 1 && len(c.antialiased) <= 1
}

// Draw implements artist.Artist.
func (c *Collection) Draw(r backend.Renderer) error {
	if !c.Visible() {
		return nil
	}
	outlines := c.self.outlines(r.PointsToPixels)
	if len(outlines) == 0 {
		return nil
	}
	r.OpenGroup(c.group)
	defer r.CloseGroup(c.group)

	t := c.Transform()
	disp := make([][]gplot.Point, len(outlines))
	for i, o := range outlines {
		disp[i] = t.SeqXYTups(o)
	}
	faces, edges := c.resolvedColors()
	closed := c.self.closed()

	var offX, offY []float64
	if len(c.offsets) > 0 {
		xs, ys := gplot.Unzip(c.offsets)
		if c.transOffset != nil {
			offX, offY = c.transOffset.NumerixXY(xs, ys)
		} else {
			offX, offY = xs, ys
		}
	}

	if mr, ok := r.(backend.MarkerRenderer); ok && closed && len(disp) == 1 && len(offX) > 0 && c.uniform(faces, edges) {
		gc, _ := c.instanceGC(r, 0, edges)
		path := gplot.NewPath()
		path.Polygon(disp[0])
		var face *colors.RGBA
		if f, ok := cycle(faces, 0); ok {
			face = &f
		}
		mr.DrawMarkers(gc, path, face, offX, offY, nil)
		return nil
	}

	n := len(disp)
	if len(offX) > 0 {
		n = max(n, len(offX))
	}
	for i := range n {
		pts := disp[i%len(disp)]
		if len(offX) > 0 {
			off := gplot.Pt(offX[i%len(offX)], offY[i%len(offY)])
			if !off.IsFinite() {
				continue
			}
			moved := make([]gplot.Point, len(pts))
			for k, p := range pts {
				moved[k] = p.Add(off)
			}
			pts = moved
		}
		gc, stroked := c.instanceGC(r, i, edges)
		if closed {
			var face *colors.RGBA
			if f, ok := cycle(faces, i); ok {
				face = &f
			}
			if face == nil && !stroked {
				continue
			}
			r.DrawPolygon(gc, face, pts)
			continue
		}
		if !stroked {
			continue
		}
		for _, run := range backend.SplitFinite(gplot.Unzip(pts)) {
			if len(run) < 2 {
				continue
			}
			xs, ys := gplot.Unzip(run)
			r.DrawLines(gc, xs, ys, nil)
		}
	}
	return nil
}

// DataVerts returns the points a parent includes in its data limits: the
// offsets when the collection has them, otherwise the outline vertices
// expressed in the coordinates of transData.
func (c *Collection) DataVerts(transData transform.Transform) []gplot.Point {
	if len(c.offsets) > 0 {
		return slices.Clone(c.offsets)
	}
	var pts []gplot.Point
	own := c.Transform()
	for _, o := range c.self.outlines(func(p float64) float64 { return p }) {
		if own == transData || transData == nil {
			pts = append(pts, o...)
			continue
		}
		for _, d := range own.SeqXYTups(o) {
			x, y, err := transData.InverseXY(d.X, d.Y)
			if err != nil {
				continue
			}
			pts = append(pts, gplot.Pt(x, y))
		}
	}
	return pts
}

// WindowExtent implements artist.Extenter.
func (c *Collection) WindowExtent(r backend.Renderer) (*bbox.Bbox, error) {
	t := c.Transform()
	var xs, ys []float64
	for _, o := range c.self.outlines(r.PointsToPixels) {
		for _, p := range t.SeqXYTups(o) {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("collections: %w: no outlines", gplot.ErrInvalidValue)
	}
	b := bbox.FromExtents(xs[0], ys[0], xs[0], ys[0])
	b.Update(xs, ys, true)
	return b, nil
}

// toColors converts one color, a list of colors or "none" to a slice.
func toColors(v any) ([]colors.RGBA, error) {
	if v == nil || colors.IsNone(v) {
		return nil, nil
	}
	var out []colors.RGBA
	var err error
	switch cs := v.(type) {
	case []colors.RGBA:
		out = slices.Clone(cs)
	case []string:
		specs := make([]any, len(cs))
		for i, s := range cs {
			specs[i] = s
		}
		out, err = colors.ToRGBAArray(specs)
	case []any:
		out, err = colors.ToRGBAArray(cs)
	default:
		var c colors.RGBA
		c, err = colors.ToRGBA(v)
		out = []colors.RGBA{c}
	}
	if err != nil {
		return nil, fmt.Errorf("collections: %w", err)
	}
	return out, nil
}
