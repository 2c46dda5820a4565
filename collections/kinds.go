package collections

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/transform"
)

// LineCollection strokes many open polylines.
type LineCollection struct {
	Collection
	segments [][]gplot.Point
}

// NewLineCollection returns polylines styled from the lines.* rc params.
// Scalar arrays color the lines.
func NewLineCollection(segments [][]gplot.Point) *LineCollection {
	c := &LineCollection{}
	c.init(c, "line_collection")
	rc := rcparams.Default()
	c.edges = []colors.RGBA{rc.Color("lines.color")}
	c.lineWidths = []float64{rc.Float("lines.linewidth")}
	c.antialiased = []bool{rc.Bool("lines.antialiased")}
	c.mapEdges = true
	c.SetSegments(segments)
	return c
}

// Segments returns the polylines.
func (c *LineCollection) Segments() [][]gplot.Point { return c.segments }

// SetSegments replaces the polylines. The slices are copied.
func (c *LineCollection) SetSegments(segments [][]gplot.Point) {
	c.segments = cloneOutlines(segments)
	c.PChanged()
}

// SetColor sets the line colors.
func (c *LineCollection) SetColor(v any) error { return c.SetEdgeColors(v) }

func (c *LineCollection) outlines(func(float64) float64) [][]gplot.Point { return c.segments }

func (c *LineCollection) closed() bool { return false }

// PolyCollection fills and strokes many polygons.
type PolyCollection struct {
	Collection
	verts [][]gplot.Point
}

// NewPolyCollection returns polygons styled from the patch.* rc params.
func NewPolyCollection(verts [][]gplot.Point) *PolyCollection {
	c := &PolyCollection{}
	c.init(c, "poly_collection")
	c.patchDefaults()
	c.SetVerts(verts)
	return c
}

func (c *Collection) patchDefaults() {
	rc := rcparams.Default()
	c.faces = []colors.RGBA{rc.Color("patch.facecolor")}
	c.edges = []colors.RGBA{rc.Color("patch.edgecolor")}
	c.lineWidths = []float64{rc.Float("patch.linewidth")}
	c.antialiased = []bool{rc.Bool("patch.antialiased")}
}

// Verts returns the polygons.
func (c *PolyCollection) Verts() [][]gplot.Point { return c.verts }

// SetVerts replaces the polygons. The slices are copied.
func (c *PolyCollection) SetVerts(verts [][]gplot.Point) {
	c.verts = cloneOutlines(verts)
	c.PChanged()
}

func (c *PolyCollection) outlines(func(float64) float64) [][]gplot.Point { return c.verts }

func (c *PolyCollection) closed() bool { return true }

// BrokenBarH is a row of horizontal bars sharing one vertical range.
type BrokenBarH struct {
	PolyCollection
}

// NewBrokenBarH returns one bar per (xmin, width) range, each spanning
// ymin to ymin+height.
func NewBrokenBarH(xranges [][2]float64, ymin, height float64) *BrokenBarH {
	verts := make([][]gplot.Point, len(xranges))
	for i, xr := range xranges {
		x0, w := xr[0], xr[1]
		verts[i] = []gplot.Point{
			{X: x0, Y: ymin}, {X: x0 + w, Y: ymin},
			{X: x0 + w, Y: ymin + height}, {X: x0, Y: ymin + height},
		}
	}
	c := &BrokenBarH{}
	c.init(c, "broken_barh")
	c.patchDefaults()
	c.verts = verts
	return c
}

// RegularPolyCollection stamps one regular polygon per offset. Sizes are
// areas in points squared, so a polygon covers about the area of a
// circle of that size.
type RegularPolyCollection struct {
	Collection
	numSides int
	rotation float64
	sizes    []float64
	kind     polyKind
}

type polyKind int

const (
	kindRegular polyKind = iota
	kindStar
	kindAsterisk
)

// NewRegularPolyCollection returns regular polygons with numSides sides,
// rotated by rotation radians, one per offset. The offsets are mapped
// through transOffset, usually the axes data transform.
func NewRegularPolyCollection(numSides int, rotation float64, sizes []float64, offsets []gplot.Point, transOffset transform.Transform) (*RegularPolyCollection, error) {
	return newRegular(kindRegular, numSides, rotation, sizes, offsets, transOffset)
}

// NewStarPolygonCollection is NewRegularPolyCollection drawing stars with
// numSides points.
func NewStarPolygonCollection(numSides int, rotation float64, sizes []float64, offsets []gplot.Point, transOffset transform.Transform) (*RegularPolyCollection, error) {
	return newRegular(kindStar, numSides, rotation, sizes, offsets, transOffset)
}

// NewAsteriskPolygonCollection is NewRegularPolyCollection drawing
// numSides unfilled spokes.
func NewAsteriskPolygonCollection(numSides int, rotation float64, sizes []float64, offsets []gplot.Point, transOffset transform.Transform) (*RegularPolyCollection, error) {
	return newRegular(kindAsterisk, numSides, rotation, sizes, offsets, transOffset)
}

func newRegular(kind polyKind, numSides int, rotation float64, sizes []float64, offsets []gplot.Point, transOffset transform.Transform) (*RegularPolyCollection, error) {
	if numSides < 2 || (kind == kindRegular && numSides < 3) {
		return nil, fmt.Errorf("collections: %w: %d sides", gplot.ErrInvalidValue, numSides)
	}
	for _, s := range sizes {
		if s < 0 || math.IsNaN(s) {
			return nil, fmt.Errorf("collections: %w: size %g", gplot.ErrInvalidValue, s)
		}
	}
	c := &RegularPolyCollection{numSides: numSides, rotation: rotation, sizes: slices.Clone(sizes), kind: kind}
	c.init(c, "regular_poly_collection")
	c.patchDefaults()
	c.offsets = slices.Clone(offsets)
	c.transOffset = transOffset
	return c, nil
}

// Sizes returns the areas in points squared.
func (c *RegularPolyCollection) Sizes() []float64 { return c.sizes }

// NumSides returns the number of sides or points.
func (c *RegularPolyCollection) NumSides() int { return c.numSides }

// Rotation returns the rotation in radians.
func (c *RegularPolyCollection) Rotation() float64 { return c.rotation }

// Radius returns the circumradius in points of a polygon of the given
// area.
func Radius(size float64) float64 { return math.Sqrt(size / math.Pi) }

func (c *RegularPolyCollection) outlines(pt2px func(float64) float64) [][]gplot.Point {
	out := make([][]gplot.Point, len(c.sizes))
	for i, s := range c.sizes {
		r := pt2px(Radius(s))
		switch c.kind {
		case kindStar:
			outer := patches.RegularVerts(0, 0, c.numSides, r, c.rotation)
			inner := patches.RegularVerts(0, 0, c.numSides, r/2, c.rotation+math.Pi/float64(c.numSides))
			pts := make([]gplot.Point, 0, 2*c.numSides)
			for k := range outer {
				pts = append(pts, outer[k], inner[k])
			}
			out[i] = pts
		case kindAsterisk:
			tips := patches.RegularVerts(0, 0, c.numSides, r, c.rotation)
			pts := make([]gplot.Point, 0, 2*len(tips))
			for _, p := range tips {
				pts = append(pts, gplot.Point{}, p)
			}
			out[i] = pts
		default:
			out[i] = patches.RegularVerts(0, 0, c.numSides, r, c.rotation)
		}
	}
	return out
}

func (c *RegularPolyCollection) closed() bool { return c.kind != kindAsterisk }

// QuadMesh is a grid of quadrilaterals with corners given row by row.
type QuadMesh struct {
	Collection
	cols, rows int
	coords     []gplot.Point
	showEdges  bool
}

// NewQuadMesh returns the cols x rows cells of the (rows+1) x (cols+1)
// grid of corners. Cells are numbered row by row, the order SetArray
// expects.
func NewQuadMesh(cols, rows int, coords []gplot.Point) (*QuadMesh, error) {
	if cols < 1 || rows < 1 {
		return nil, &gplot.ShapeError{Op: "collections: quad mesh", Got: []int{rows, cols}, Want: []int{1, 1}}
	}
	if len(coords) != (rows+1)*(cols+1) {
		return nil, &gplot.ShapeError{Op: "collections: quad mesh corners", Got: []int{len(coords)}, Want: []int{(rows + 1) * (cols + 1)}}
	}
	c := &QuadMesh{cols: cols, rows: rows, coords: slices.Clone(coords)}
	c.init(c, "quadmesh")
	c.patchDefaults()
	c.edges = nil
	return c, nil
}

// Size returns the number of cell columns and rows.
func (c *QuadMesh) Size() (cols, rows int) { return c.cols, c.rows }

// SetShowEdges strokes the cell borders with the edge colors.
func (c *QuadMesh) SetShowEdges(v bool) {
	c.showEdges = v
	if v && len(c.edges) == 0 {
		c.edges = []colors.RGBA{rcparams.Default().Color("patch.edgecolor")}
	}
	c.PChanged()
}

// SetArray attaches one scalar per cell.
func (c *QuadMesh) SetArray(a []float64) error {
	if a != nil && len(a) != c.cols*c.rows {
		return &gplot.ShapeError{Op: "collections: quad mesh array", Got: []int{len(a)}, Want: []int{c.cols * c.rows}}
	}
	c.Collection.SetArray(a)
	return nil
}

func (c *QuadMesh) outlines(func(float64) float64) [][]gplot.Point {
	w := c.cols + 1
	out := make([][]gplot.Point, 0, c.cols*c.rows)
	for j := range c.rows {
		for i := range c.cols {
			out = append(out, []gplot.Point{
				c.coords[j*w+i], c.coords[j*w+i+1],
				c.coords[(j+1)*w+i+1], c.coords[(j+1)*w+i],
			})
		}
	}
	return out
}

func (c *QuadMesh) closed() bool { return true }

// PatchCollection draws the outlines of many patches in one pass.
type PatchCollection struct {
	Collection
	verts [][]gplot.Point
}

// NewPatchCollection collects the outlines of ps. With matchOriginal set
// each instance keeps the face, edge and width of its patch; otherwise
// the patch.* rc defaults apply to all.
func NewPatchCollection(ps []patches.Artist, matchOriginal bool) *PatchCollection {
	c := &PatchCollection{verts: make([][]gplot.Point, len(ps))}
	c.init(c, "patch_collection")
	c.patchDefaults()
	for i, p := range ps {
		c.verts[i] = p.Verts()
	}
	if matchOriginal {
		c.faces = make([]colors.RGBA, len(ps))
		c.edges = make([]colors.RGBA, len(ps))
		c.lineWidths = make([]float64, len(ps))
		for i, p := range ps {
			pp := p.AsPatch()
			c.faces[i] = pp.FaceColor()
			if !pp.Fill() {
				c.faces[i] = pp.FaceColor().WithAlpha(0)
			}
			c.edges[i] = pp.EdgeColor()
			c.lineWidths[i] = pp.LineWidth()
		}
	}
	return c
}

func (c *PatchCollection) outlines(func(float64) float64) [][]gplot.Point { return c.verts }

func (c *PatchCollection) closed() bool { return true }

func cloneOutlines(in [][]gplot.Point) [][]gplot.Point {
	out := make([][]gplot.Point, len(in))
	for i, o := range in {
		out[i] = slices.Clone(o)
	}
	return out
}
