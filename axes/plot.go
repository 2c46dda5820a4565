package axes

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/collections"
	"github.com/gogpu/gplot/lines"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/table"
	"github.com/gogpu/gplot/transform"
)

// indices returns 0..n-1 as floats.
func indices(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// broadcast stretches a one-element slice to n elements.
func broadcast(op string, v []float64, n int) ([]float64, error) {
	switch len(v) {
	case n:
		return v, nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	}
	return nil, &gplot.ShapeError{Op: "axes: " + op, Got: []int{len(v)}, Want: []int{n}}
}

// rescale autoscales the given directions after a plot call, logging
// instead of failing.
func (a *Axes) rescale(scalex, scaley bool) {
	if err := a.AutoscaleView(false, scalex, scaley); err != nil {
		gplot.Logger().Warn("axes: autoscale skipped", "err", err)
	}
}

// styleLine applies a format string to l. Without a color in it the next
// color of the cycle is used.
func (a *Axes) styleLine(l *lines.Line2D, format string) error {
	return applyFormat(l, format, a.nextColor)
}

func applyFormat(l *lines.Line2D, format string, next func() string) error {
	f, err := lines.ParseFormat(format)
	if err != nil {
		return err
	}
	if f.Color == "" {
		f.Color = next()
	}
	if err := l.SetColor(f.Color); err != nil {
		return err
	}
	if f.LineStyle != "" {
		if err := l.SetLineStyle(f.LineStyle); err != nil {
			return err
		}
	}
	if f.Marker != "" {
		if err := l.SetMarker(f.Marker); err != nil {
			return err
		}
	}
	return nil
}

// newLine builds a styled line and applies the property pairs kv.
func (a *Axes) newLine(xs, ys []float64, format string, kv []any) (*lines.Line2D, error) {
	l, err := lines.New(xs, ys)
	if err != nil {
		return nil, err
	}
	if err := a.styleLine(l, format); err != nil {
		return nil, err
	}
	if err := artist.Setp(l, kv...); err != nil {
		return nil, err
	}
	return l, nil
}

// Plot draws ys against xs with the style of a format string such as
// "r--o", followed by line property pairs. A nil xs plots against the
// indices of ys.
func (a *Axes) Plot(xs, ys []float64, format string, kv ...any) (*lines.Line2D, error) {
	if xs == nil {
		xs = indices(len(ys))
	}
	a.prepare()
	l, err := a.newLine(xs, ys, format, kv)
	if err != nil {
		return nil, fmt.Errorf("axes: plot: %w", err)
	}
	a.AddLine(l)
	a.autoscale()
	return l, nil
}

// Step draws a staircase through the points. where is "pre" (the step
// happens before each x), "post" (after it) or "mid" (half way).
func (a *Axes) Step(xs, ys []float64, where, format string, kv ...any) (*lines.Line2D, error) {
	if err := gplot.CheckSameLen("axes: step", xs, ys); err != nil {
		return nil, err
	}
	var sx, sy []float64
	switch where {
	case "", "pre":
		for i := range xs {
			if i > 0 {
				sx = append(sx, xs[i-1])
				sy = append(sy, ys[i])
			}
			sx = append(sx, xs[i])
			sy = append(sy, ys[i])
		}
	case "post":
		sx, sy = lines.Steps(xs, ys)
		if n := len(sx); n >= 2 {
			sx, sy = sx[:n-1], sy[:n-1]
		}
	case "mid":
		for i := range xs {
			if i > 0 {
				m := (xs[i-1] + xs[i]) / 2
				sx = append(sx, m, m)
				sy = append(sy, ys[i-1], ys[i])
			}
		}
		if len(xs) > 0 {
			sx = append([]float64{xs[0]}, sx...)
			sy = append([]float64{ys[0]}, sy...)
			sx = append(sx, xs[len(xs)-1])
			sy = append(sy, ys[len(ys)-1])
		}
	default:
		return nil, fmt.Errorf("axes: step: %w: where %q", gplot.ErrInvalidValue, where)
	}
	return a.Plot(sx, sy, format, kv...)
}

// Fill draws the polygon through the points, filled with color or with
// the next cycle color when color is empty.
func (a *Axes) Fill(xs, ys []float64, color string, kv ...any) (*patches.Polygon, error) {
	if err := gplot.CheckSameLen("axes: fill", xs, ys); err != nil {
		return nil, err
	}
	a.prepare()
	pts := make([]gplot.Point, len(xs))
	for i := range xs {
		pts[i] = gplot.Pt(xs[i], ys[i])
	}
	p := patches.NewPolygon(pts)
	if color == "" {
		color = a.nextColor()
	}
	if err := p.SetFaceColor(color); err != nil {
		return nil, fmt.Errorf("axes: fill: %w", err)
	}
	if err := artist.Setp(p, kv...); err != nil {
		return nil, fmt.Errorf("axes: fill: %w", err)
	}
	a.AddPatch(p)
	a.autoscale()
	return p, nil
}

// StemContainer holds the artists of a stem plot.
type StemContainer struct {
	Markers  *lines.Line2D
	Stems    []*lines.Line2D
	Baseline *lines.Line2D
}

// Stem draws a vertical line from zero to every y and a marker at its
// top. Empty formats default to "b-" for the stems, "bo" for the markers
// and "r-" for the baseline.
func (a *Axes) Stem(xs, ys []float64, linefmt, markerfmt, basefmt string) (*StemContainer, error) {
	if xs == nil {
		xs = indices(len(ys))
	}
	if err := gplot.CheckSameLen("axes: stem", xs, ys); err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("axes: stem: %w: no data", gplot.ErrInvalidValue)
	}
	linefmt = cmp.Or(linefmt, "b-")
	markerfmt = cmp.Or(markerfmt, "bo")
	basefmt = cmp.Or(basefmt, "r-")

	a.prepare()

	sc := &StemContainer{}
	var err error
	if sc.Markers, err = a.newLine(xs, ys, markerfmt, nil); err != nil {
		return nil, fmt.Errorf("axes: stem: %w", err)
	}
	a.AddLine(sc.Markers)
	for i := range xs {
		l, err := a.newLine([]float64{xs[i], xs[i]}, []float64{0, ys[i]}, linefmt, nil)
		if err != nil {
			return nil, fmt.Errorf("axes: stem: %w", err)
		}
		a.AddLine(l)
		sc.Stems = append(sc.Stems, l)
	}
	lo, hi := slices.Min(xs), slices.Max(xs)
	if sc.Baseline, err = a.newLine([]float64{lo, hi}, []float64{0, 0}, basefmt, nil); err != nil {
		return nil, fmt.Errorf("axes: stem: %w", err)
	}
	a.AddLine(sc.Baseline)
	a.autoscale()
	return sc, nil
}

// ErrorbarOptions style an errorbar plot. Zero values take defaults.
type ErrorbarOptions struct {
	// Format styles the data line; "-" when empty. "none" draws only the
	// bars.
	Format string
	// EColor colors the bars and caps; the data line color when empty.
	EColor     string
	ELineWidth float64
	// CapSize is the cap length in points; 3 when zero, no caps when
	// negative.
	CapSize float64
	// XErr and YErr are symmetric errors, one per point or one for all.
	XErr, YErr []float64
}

// ErrorbarContainer holds the artists of an errorbar plot.
type ErrorbarContainer struct {
	Data     *lines.Line2D
	CapLines []*lines.Line2D
	BarCols  []*collections.LineCollection
}

// Errorbar draws the points with horizontal and vertical error bars.
func (a *Axes) Errorbar(xs, ys []float64, o ErrorbarOptions, kv ...any) (*ErrorbarContainer, error) {
	if err := gplot.CheckSameLen("axes: errorbar", xs, ys); err != nil {
		return nil, err
	}
	n := len(xs)
	var xerr, yerr []float64
	var err error
	if o.XErr != nil {
		if xerr, err = broadcast("errorbar xerr", o.XErr, n); err != nil {
			return nil, err
		}
	}
	if o.YErr != nil {
		if yerr, err = broadcast("errorbar yerr", o.YErr, n); err != nil {
			return nil, err
		}
	}
	format := cmp.Or(o.Format, "-")
	capSize := o.CapSize
	if capSize == 0 {
		capSize = 3
	}

	a.prepare()

	ec := &ErrorbarContainer{}
	fmtNone := format == "none"
	if !fmtNone {
		if ec.Data, err = a.newLine(xs, ys, format, kv); err != nil {
			return nil, fmt.Errorf("axes: errorbar: %w", err)
		}
	}
	barColor := o.EColor
	if barColor == "" {
		if ec.Data != nil {
			barColor = ec.Data.Color().Hex()
		} else {
			barColor = a.nextColor()
		}
	}

	addBars := func(segs [][]gplot.Point) error {
		c := collections.NewLineCollection(segs)
		if err := c.SetColor(barColor); err != nil {
			return err
		}
		if o.ELineWidth > 0 {
			c.SetLineWidths(o.ELineWidth)
		}
		a.AddCollection(c, true)
		ec.BarCols = append(ec.BarCols, c)
		return nil
	}
	addCaps := func(cx, cy []float64, marker string) error {
		if capSize < 0 {
			return nil
		}
		l, err := lines.New(cx, cy)
		if err != nil {
			return err
		}
		if err := l.SetLineStyle("None"); err != nil {
			return err
		}
		if err := l.SetMarker(marker); err != nil {
			return err
		}
		l.SetMarkerSize(2 * capSize)
		if err := l.SetColor(barColor); err != nil {
			return err
		}
		if err := l.SetMarkerEdgeColor(barColor); err != nil {
			return err
		}
		l.SetLabel("_nolegend_")
		a.AddLine(l)
		ec.CapLines = append(ec.CapLines, l)
		return nil
	}

	if xerr != nil {
		segs := make([][]gplot.Point, n)
		lo, hi := make([]float64, n), make([]float64, n)
		for i := range n {
			lo[i], hi[i] = xs[i]-xerr[i], xs[i]+xerr[i]
			segs[i] = []gplot.Point{gplot.Pt(lo[i], ys[i]), gplot.Pt(hi[i], ys[i])}
		}
		if err := addBars(segs); err != nil {
			return nil, fmt.Errorf("axes: errorbar: %w", err)
		}
		if err := addCaps(append(lo, hi...), append(slices.Clone(ys), ys...), "|"); err != nil {
			return nil, fmt.Errorf("axes: errorbar: %w", err)
		}
	}
	if yerr != nil {
		segs := make([][]gplot.Point, n)
		lo, hi := make([]float64, n), make([]float64, n)
		for i := range n {
			lo[i], hi[i] = ys[i]-yerr[i], ys[i]+yerr[i]
			segs[i] = []gplot.Point{gplot.Pt(xs[i], lo[i]), gplot.Pt(xs[i], hi[i])}
		}
		if err := addBars(segs); err != nil {
			return nil, fmt.Errorf("axes: errorbar: %w", err)
		}
		if err := addCaps(append(slices.Clone(xs), xs...), append(lo, hi...), "_"); err != nil {
			return nil, fmt.Errorf("axes: errorbar: %w", err)
		}
	}
	if ec.Data != nil {
		a.AddLine(ec.Data)
	}
	a.autoscale()
	return ec, nil
}

// AxHLine draws a horizontal line at data y across the axes fractions
// xmin to xmax. Only the y view is rescaled.
func (a *Axes) AxHLine(y, xmin, xmax float64, kv ...any) (*lines.Line2D, error) {
	l, err := lines.New([]float64{xmin, xmax}, []float64{y, y})
	if err != nil {
		return nil, err
	}
	if err := a.spanLine(l, transform.Blend(a.transAxes, a.transData), kv); err != nil {
		return nil, fmt.Errorf("axes: axhline: %w", err)
	}
	a.rescale(false, true)
	return l, nil
}

// AxVLine draws a vertical line at data x across the axes fractions ymin
// to ymax. Only the x view is rescaled.
func (a *Axes) AxVLine(x, ymin, ymax float64, kv ...any) (*lines.Line2D, error) {
	l, err := lines.New([]float64{x, x}, []float64{ymin, ymax})
	if err != nil {
		return nil, err
	}
	if err := a.spanLine(l, transform.Blend(a.transData, a.transAxes), kv); err != nil {
		return nil, fmt.Errorf("axes: axvline: %w", err)
	}
	a.rescale(true, false)
	return l, nil
}

func (a *Axes) spanLine(l *lines.Line2D, t *transform.Separable, kv []any) error {
	if err := l.SetColor(a.nextColor()); err != nil {
		return err
	}
	l.SetTransform(t)
	if err := artist.Setp(l, kv...); err != nil {
		return err
	}
	a.AddLine(l)
	return nil
}

// AxHSpan shades the band from data ymin to ymax across the axes
// fractions xmin to xmax.
func (a *Axes) AxHSpan(ymin, ymax, xmin, xmax float64, kv ...any) (*patches.Polygon, error) {
	p := patches.NewPolygon([]gplot.Point{
		gplot.Pt(xmin, ymin), gplot.Pt(xmin, ymax), gplot.Pt(xmax, ymax), gplot.Pt(xmax, ymin),
	})
	if err := a.spanPatch(p, transform.Blend(a.transAxes, a.transData), kv); err != nil {
		return nil, fmt.Errorf("axes: axhspan: %w", err)
	}
	a.rescale(false, true)
	return p, nil
}

// AxVSpan shades the band from data xmin to xmax across the axes
// fractions ymin to ymax.
func (a *Axes) AxVSpan(xmin, xmax, ymin, ymax float64, kv ...any) (*patches.Polygon, error) {
	p := patches.NewPolygon([]gplot.Point{
		gplot.Pt(xmin, ymin), gplot.Pt(xmin, ymax), gplot.Pt(xmax, ymax), gplot.Pt(xmax, ymin),
	})
	if err := a.spanPatch(p, transform.Blend(a.transData, a.transAxes), kv); err != nil {
		return nil, fmt.Errorf("axes: axvspan: %w", err)
	}
	a.rescale(true, false)
	return p, nil
}

func (a *Axes) spanPatch(p *patches.Polygon, t *transform.Separable, kv []any) error {
	if err := p.SetFaceColor(a.nextColor()); err != nil {
		return err
	}
	p.SetTransform(t)
	if err := artist.Setp(p, kv...); err != nil {
		return err
	}
	a.AddPatch(p)
	return nil
}

// HLines draws a horizontal line at every y from xmin to xmax. xmin and
// xmax hold one value per line or one for all.
func (a *Axes) HLines(ys, xmin, xmax []float64, kv ...any) (*collections.LineCollection, error) {
	lo, hi, err := spans("hlines", len(ys), xmin, xmax)
	if err != nil {
		return nil, err
	}
	segs := make([][]gplot.Point, len(ys))
	for i, y := range ys {
		segs[i] = []gplot.Point{gplot.Pt(lo[i], y), gplot.Pt(hi[i], y)}
	}
	return a.segments("hlines", segs, kv)
}

// VLines draws a vertical line at every x from ymin to ymax.
func (a *Axes) VLines(xs, ymin, ymax []float64, kv ...any) (*collections.LineCollection, error) {
	lo, hi, err := spans("vlines", len(xs), ymin, ymax)
	if err != nil {
		return nil, err
	}
	segs := make([][]gplot.Point, len(xs))
	for i, x := range xs {
		segs[i] = []gplot.Point{gplot.Pt(x, lo[i]), gplot.Pt(x, hi[i])}
	}
	return a.segments("vlines", segs, kv)
}

func spans(op string, n int, lo, hi []float64) ([]float64, []float64, error) {
	l, err := broadcast(op, lo, n)
	if err != nil {
		return nil, nil, err
	}
	h, err := broadcast(op, hi, n)
	if err != nil {
		return nil, nil, err
	}
	return l, h, nil
}

func (a *Axes) segments(op string, segs [][]gplot.Point, kv []any) (*collections.LineCollection, error) {
	a.prepare()
	c := collections.NewLineCollection(segs)
	if err := c.SetColor(a.nextColor()); err != nil {
		return nil, fmt.Errorf("axes: %s: %w", op, err)
	}
	if err := artist.Setp(c, kv...); err != nil {
		return nil, fmt.Errorf("axes: %s: %w", op, err)
	}
	a.AddCollection(c, true)
	a.autoscale()
	return c, nil
}

// Table adds a table laid out from s.
func (a *Axes) Table(s table.Spec) (*table.Table, error) {
	t, err := table.FromSpec(a, s)
	if err != nil {
		return nil, fmt.Errorf("axes: table: %w", err)
	}
	a.AddTable(t)
	return t, nil
}

// finiteRange returns the finite extremes of xs, or ok false.
func finiteRange(xs []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi, lo <= hi
}
