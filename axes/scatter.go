package axes

import (
	"fmt"
	"math"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/collections"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/lines"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/transform"
)

// scatterSym is how a scatter marker maps onto a regular polygon
// collection.
type scatterSym struct {
	sides    int
	rotation float64
	kind     int // 0 polygon, 1 star, 2 asterisk
}

var scatterSyms = map[string]scatterSym{
	"o": {20, 0, 0},
	"s": {4, math.Pi / 4, 0},
	"^": {3, 0, 0},
	"v": {3, math.Pi, 0},
	"<": {3, math.Pi / 2, 0},
	">": {3, -math.Pi / 2, 0},
	"d": {4, 0, 0},
	"D": {4, 0, 0},
	"p": {5, 0, 0},
	"h": {6, 0, 0},
	"8": {8, 0, 0},
	"*": {5, 0, 1},
	"+": {4, 0, 2},
	"x": {4, math.Pi / 4, 2},
}

// ScatterOptions configure Scatter. Zero values take defaults.
type ScatterOptions struct {
	// S holds marker areas in points squared, one per point or one for
	// all; 20 when nil.
	S []float64
	// C is a color, a []string of colors, or a []float64 of values
	// mapped through Cmap and Norm. The next cycle color when nil.
	C    any
	Cmap any
	Norm colors.Norm
	// Clim fixes the color limits as {vmin, vmax}; the data range when
	// nil.
	Clim   []float64
	Marker string
	Alpha  float64
	// LineWidths are the marker edge widths in points.
	LineWidths []float64
}

// Scatter draws a marker at every point. The markers keep their size in
// points however the view changes.
func (a *Axes) Scatter(xs, ys []float64, o ScatterOptions, kv ...any) (*collections.RegularPolyCollection, error) {
	if err := gplot.CheckSameLen("axes: scatter", xs, ys); err != nil {
		return nil, err
	}
	n := len(xs)
	sizes := o.S
	if sizes == nil {
		sizes = []float64{20}
	}
	if len(sizes) != 1 && len(sizes) != n {
		return nil, &gplot.ShapeError{Op: "axes: scatter sizes", Got: []int{len(sizes)}, Want: []int{n}}
	}
	marker := o.Marker
	if marker == "" {
		marker = "o"
	}
	sym, ok := scatterSyms[marker]
	if !ok {
		return nil, fmt.Errorf("axes: scatter: %w: marker %q", gplot.ErrInvalidValue, marker)
	}

	a.prepare()
	offsets := make([]gplot.Point, n)
	for i := range n {
		offsets[i] = gplot.Pt(xs[i], ys[i])
	}
	var newColl func(int, float64, []float64, []gplot.Point, transform.Transform) (*collections.RegularPolyCollection, error)
	switch sym.kind {
	case 1:
		newColl = collections.NewStarPolygonCollection
	case 2:
		newColl = collections.NewAsteriskPolygonCollection
	default:
		newColl = collections.NewRegularPolyCollection
	}
	c, err := newColl(sym.sides, sym.rotation, sizes, offsets, a.transData)
	if err != nil {
		return nil, fmt.Errorf("axes: scatter: %w", err)
	}
	c.SetTransform(transform.Identity())

	switch v := o.C.(type) {
	case nil:
		err = c.SetFaceColors(a.nextColor())
	case []float64:
		if len(v) != n {
			return nil, &gplot.ShapeError{Op: "axes: scatter colors", Got: []int{len(v)}, Want: []int{n}}
		}
		err = a.mapValues(c.Mappable(), o.Cmap, o.Norm, o.Clim)
		c.SetArray(v)
	default:
		err = c.SetFaceColors(v)
	}
	if err != nil {
		return nil, fmt.Errorf("axes: scatter: %w", err)
	}
	if o.LineWidths != nil {
		c.SetLineWidths(o.LineWidths...)
	}
	if o.Alpha > 0 {
		c.SetAlpha(o.Alpha)
	}
	if err := artist.Setp(c, kv...); err != nil {
		return nil, fmt.Errorf("axes: scatter: %w", err)
	}
	a.AddCollection(c, true)
	a.autoscale()
	return c, nil
}

// mapValues configures a scalar mappable for values: colormap, norm and
// color limits.
func (a *Axes) mapValues(sm *colors.ScalarMappable, cmap any, norm colors.Norm, clim []float64) error {
	if cmap != nil {
		cm, err := toColormap(cmap)
		if err != nil {
			return err
		}
		sm.SetCmap(cm)
	}
	if norm != nil {
		sm.SetNorm(norm)
	}
	if clim != nil {
		if len(clim) != 2 {
			return &gplot.ShapeError{Op: "axes: clim", Got: []int{len(clim)}, Want: []int{2}}
		}
		if err := sm.SetClim(clim[0], clim[1]); err != nil {
			return err
		}
	}
	return nil
}

func toColormap(v any) (*colors.Colormap, error) {
	switch c := v.(type) {
	case *colors.Colormap:
		return c, nil
	case string:
		return colors.Get(c)
	}
	return nil, fmt.Errorf("%w: colormap %T", gplot.ErrInvalidValue, v)
}

// QuiverOptions configure Quiver.
type QuiverOptions struct {
	// Scale divides the vectors before drawing, in data units per arrow
	// length. It is chosen from the mean vector length and the x data
	// span when zero.
	Scale float64
	// Width is the shaft width in data units; 0.15 of the mean drawn
	// arrow length when zero.
	Width float64
	Color any
}

// Quiver draws an arrow of (us[i], vs[i]) at every (xs[i], ys[i]).
func (a *Axes) Quiver(xs, ys, us, vs []float64, o QuiverOptions, kv ...any) (*collections.PolyCollection, error) {
	n := len(xs)
	for _, s := range [][]float64{ys, us, vs} {
		if len(s) != n {
			return nil, &gplot.ShapeError{Op: "axes: quiver", Got: []int{len(s)}, Want: []int{n}}
		}
	}
	if n == 0 {
		return nil, fmt.Errorf("axes: quiver: %w: no data", gplot.ErrInvalidValue)
	}
	mean := 0.0
	for i := range n {
		mean += math.Hypot(us[i], vs[i])
	}
	mean /= float64(n)
	scale := o.Scale
	if scale == 0 {
		span := 1.0
		if lo, hi, ok := finiteRange(xs); ok && hi > lo {
			span = hi - lo
		}
		sn := math.Max(10, math.Sqrt(float64(n)))
		scale = 1.8 * mean * sn / span
		if scale == 0 {
			scale = 1
		}
	}
	width := o.Width
	if width == 0 {
		width = 0.15 * mean / scale
		if width == 0 {
			width = 0.01
		}
	}

	a.prepare()
	verts := make([][]gplot.Point, n)
	for i := range n {
		verts[i] = patches.NewArrow(xs[i], ys[i], us[i]/scale, vs[i]/scale, width).Verts()
	}
	c := collections.NewPolyCollection(verts)
	col := o.Color
	if col == nil {
		col = a.nextColor()
	}
	if err := c.SetFaceColors(col); err != nil {
		return nil, fmt.Errorf("axes: quiver: %w", err)
	}
	if err := c.SetEdgeColors("none"); err != nil {
		return nil, fmt.Errorf("axes: quiver: %w", err)
	}
	if err := artist.Setp(c, kv...); err != nil {
		return nil, fmt.Errorf("axes: quiver: %w", err)
	}
	a.AddCollection(c, true)
	a.autoscale()
	return c, nil
}

// Spy marks every entry of z whose magnitude exceeds precision. Row 0 is
// at the top and each entry covers a unit square.
func (a *Axes) Spy(z [][]float64, precision float64, marker string, markerSize float64) (*lines.Line2D, error) {
	if len(z) == 0 || len(z[0]) == 0 {
		return nil, &gplot.ShapeError{Op: "axes: spy", Got: []int{len(z), 0}, Want: []int{1, 1}}
	}
	nr, nc := len(z), len(z[0])
	var xs, ys []float64
	for i, row := range z {
		if len(row) != nc {
			return nil, &gplot.ShapeError{Op: fmt.Sprintf("axes: spy row %d", i), Got: []int{len(row)}, Want: []int{nc}}
		}
		for j, v := range row {
			if math.Abs(v) > precision {
				xs = append(xs, float64(j))
				ys = append(ys, float64(i))
			}
		}
	}
	if marker == "" {
		marker = "s"
	}
	if markerSize == 0 {
		markerSize = 10
	}
	l, err := a.Plot(xs, ys, marker, "markersize", markerSize)
	if err != nil {
		return nil, fmt.Errorf("axes: spy: %w", err)
	}
	if err := a.SetXLim(-0.5, float64(nc)-0.5, false); err != nil {
		return nil, err
	}
	if err := a.SetYLim(float64(nr)-0.5, -0.5, false); err != nil {
		return nil, err
	}
	if err := a.SetAspect("equal"); err != nil {
		return nil, err
	}
	return l, nil
}
