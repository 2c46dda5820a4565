package axes

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/collections"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/contour"
	"github.com/gogpu/gplot/images"
	"github.com/gogpu/gplot/rcparams"
)

// ImshowOptions configure Imshow. Zero values take the image.* rc
// defaults.
type ImshowOptions struct {
	Cmap any
	Norm colors.Norm
	// Clim fixes the color limits as {vmin, vmax}.
	Clim []float64
	// Extent is {left, right, bottom, top} in data coordinates.
	Extent        []float64
	Origin        string
	Interpolation string
	// Aspect is passed to SetAspect; rc image.aspect when nil.
	Aspect any
	Alpha  float64
}

// Imshow shows data, a [][]float64 mapped through a colormap or an
// image.Image, and sets the view to the image extent. With origin
// "upper" row 0 is at the top and the y axis runs downward.
func (a *Axes) Imshow(data any, o ImshowOptions) (*images.AxesImage, error) {
	a.prepare()
	im := images.New()
	switch d := data.(type) {
	case [][]float64:
		if err := a.mapValues(im.Mappable(), o.Cmap, o.Norm, o.Clim); err != nil {
			return nil, fmt.Errorf("axes: imshow: %w", err)
		}
		if err := im.SetData(d); err != nil {
			return nil, fmt.Errorf("axes: imshow: %w", err)
		}
	case image.Image:
		if err := im.SetImage(d); err != nil {
			return nil, fmt.Errorf("axes: imshow: %w", err)
		}
	default:
		return nil, fmt.Errorf("axes: imshow: %w: data %T", gplot.ErrInvalidValue, data)
	}
	if o.Origin != "" {
		if err := im.SetOrigin(o.Origin); err != nil {
			return nil, fmt.Errorf("axes: imshow: %w", err)
		}
	}
	if o.Interpolation != "" {
		if err := im.SetInterpolation(o.Interpolation); err != nil {
			return nil, fmt.Errorf("axes: imshow: %w", err)
		}
	}
	if o.Extent != nil {
		if len(o.Extent) != 4 {
			return nil, &gplot.ShapeError{Op: "axes: imshow extent", Got: []int{len(o.Extent)}, Want: []int{4}}
		}
		if err := im.SetExtent(o.Extent[0], o.Extent[1], o.Extent[2], o.Extent[3]); err != nil {
			return nil, fmt.Errorf("axes: imshow: %w", err)
		}
	}
	aspect := o.Aspect
	if aspect == nil {
		aspect = rcparams.Default().String("image.aspect")
	}
	if err := a.SetAspect(aspect); err != nil {
		return nil, fmt.Errorf("axes: imshow: %w", err)
	}
	if o.Alpha > 0 {
		im.SetAlpha(o.Alpha)
	}
	a.AddImage(im)

	left, right, bottom, top := im.Extent()
	if err := a.SetXLim(left, right, false); err != nil {
		return nil, err
	}
	if err := a.SetYLim(bottom, top, false); err != nil {
		return nil, err
	}
	return im, nil
}

// MeshOptions configure Pcolor and Pcolormesh.
type MeshOptions struct {
	Cmap any
	Norm colors.Norm
	Clim []float64
	// EdgeColors strokes the cell borders; cells are not outlined when
	// nil.
	EdgeColors any
	Alpha      float64
}

// meshEdges checks the cell edge vectors of a pcolor call. Nil edges
// select cell indices.
func meshEdges(op string, x, y []float64, c [][]float64) (xe, ye []float64, nr, nc int, err error) {
	nr = len(c)
	if nr == 0 || len(c[0]) == 0 {
		return nil, nil, 0, 0, &gplot.ShapeError{Op: "axes: " + op, Got: []int{nr, 0}, Want: []int{1, 1}}
	}
	nc = len(c[0])
	for i, row := range c {
		if len(row) != nc {
			return nil, nil, 0, 0, &gplot.ShapeError{Op: fmt.Sprintf("axes: %s row %d", op, i), Got: []int{len(row)}, Want: []int{nc}}
		}
	}
	if x == nil {
		x = indices(nc + 1)
	}
	if y == nil {
		y = indices(nr + 1)
	}
	if len(x) != nc+1 || len(y) != nr+1 {
		return nil, nil, 0, 0, &gplot.ShapeError{Op: "axes: " + op + " edges", Got: []int{len(y), len(x)}, Want: []int{nr + 1, nc + 1}}
	}
	return x, y, nr, nc, nil
}

// Pcolor draws one quadrilateral per entry of c, colored by value, with
// corners at the x and y cell edges. NaN cells are left out.
func (a *Axes) Pcolor(x, y []float64, c [][]float64, o MeshOptions) (*collections.PolyCollection, error) {
	x, y, _, _, err := meshEdges("pcolor", x, y, c)
	if err != nil {
		return nil, err
	}
	var verts [][]gplot.Point
	var vals []float64
	for j, row := range c {
		for i, v := range row {
			if math.IsNaN(v) {
				continue
			}
			verts = append(verts, []gplot.Point{
				gplot.Pt(x[i], y[j]), gplot.Pt(x[i+1], y[j]),
				gplot.Pt(x[i+1], y[j+1]), gplot.Pt(x[i], y[j+1]),
			})
			vals = append(vals, v)
		}
	}
	a.prepare()
	pc := collections.NewPolyCollection(verts)
	if err := a.mapValues(pc.Mappable(), o.Cmap, o.Norm, o.Clim); err != nil {
		return nil, fmt.Errorf("axes: pcolor: %w", err)
	}
	pc.SetArray(vals)
	edges := o.EdgeColors
	if edges == nil {
		edges = "none"
	}
	if err := pc.SetEdgeColors(edges); err != nil {
		return nil, fmt.Errorf("axes: pcolor: %w", err)
	}
	if o.Alpha > 0 {
		pc.SetAlpha(o.Alpha)
	}
	a.AddCollection(pc, true)
	a.autoscale()
	return pc, nil
}

// Pcolormesh is Pcolor drawn as one quad mesh. NaN cells take the bad
// color of the colormap.
func (a *Axes) Pcolormesh(x, y []float64, c [][]float64, o MeshOptions) (*collections.QuadMesh, error) {
	x, y, nr, nc, err := meshEdges("pcolormesh", x, y, c)
	if err != nil {
		return nil, err
	}
	coords := make([]gplot.Point, 0, (nr+1)*(nc+1))
	for j := range nr + 1 {
		for i := range nc + 1 {
			coords = append(coords, gplot.Pt(x[i], y[j]))
		}
	}
	vals := make([]float64, 0, nr*nc)
	for _, row := range c {
		vals = append(vals, row...)
	}
	a.prepare()
	qm, err := collections.NewQuadMesh(nc, nr, coords)
	if err != nil {
		return nil, fmt.Errorf("axes: pcolormesh: %w", err)
	}
	if err := a.mapValues(qm.Mappable(), o.Cmap, o.Norm, o.Clim); err != nil {
		return nil, fmt.Errorf("axes: pcolormesh: %w", err)
	}
	if err := qm.SetArray(vals); err != nil {
		return nil, fmt.Errorf("axes: pcolormesh: %w", err)
	}
	if o.EdgeColors != nil {
		if err := qm.SetEdgeColors(o.EdgeColors); err != nil {
			return nil, fmt.Errorf("axes: pcolormesh: %w", err)
		}
		qm.SetShowEdges(true)
	}
	if o.Alpha > 0 {
		qm.SetAlpha(o.Alpha)
	}
	a.AddCollection(qm, true)
	a.autoscale()
	return qm, nil
}

// Contour draws contour lines of z over the grid x by y. Nil x or y
// select column or row indices.
func (a *Axes) Contour(x, y []float64, z [][]float64, o contour.Options) (*contour.ContourSet, error) {
	o.Filled = false
	return a.contour(x, y, z, o)
}

// Contourf fills the bands between contour levels.
func (a *Axes) Contourf(x, y []float64, z [][]float64, o contour.Options) (*contour.ContourSet, error) {
	o.Filled = true
	return a.contour(x, y, z, o)
}

func (a *Axes) contour(x, y []float64, z [][]float64, o contour.Options) (*contour.ContourSet, error) {
	g, err := contour.NewGrid(x, y, z)
	if err != nil {
		return nil, fmt.Errorf("axes: contour: %w", err)
	}
	cs, err := contour.New(g, o)
	if err != nil {
		return nil, fmt.Errorf("axes: contour: %w", err)
	}
	a.prepare()
	cs.SetZOrder(1)
	a.AddCollection(cs, true)
	a.autoscale()
	return cs, nil
}

// Clabel labels the lines of cs. The labels are drawn by the contour
// set.
func (a *Axes) Clabel(cs *contour.ContourSet, o contour.LabelOptions) error {
	ts, err := cs.Clabel(o)
	if err != nil {
		return fmt.Errorf("axes: clabel: %w", err)
	}
	for _, t := range ts {
		t.SetFigure(a.fig)
		t.SetAxes(a)
		if !t.IsTransformSet() {
			t.SetTransform(a.transData)
		}
	}
	return nil
}
