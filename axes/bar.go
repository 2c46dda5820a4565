package axes

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/collections"
	"github.com/gogpu/gplot/lines"
	"github.com/gogpu/gplot/mlab"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/text"
)

// BarOptions style a bar chart. Slices hold one value per bar or one for
// all; zero values take defaults.
type BarOptions struct {
	// Width is the bar thickness across its direction; 0.8 when nil.
	Width []float64
	// Bottom is where the bars start: the bottom of vertical bars or the
	// left of horizontal ones.
	Bottom []float64
	// Color is a color or a []string cycled over the bars. The next
	// cycle color is used when nil.
	Color     any
	EdgeColor string
	LineWidth float64
	// Align is "edge" (the position is the left or bottom side) or
	// "center".
	Align      string
	XErr, YErr []float64
	// Log puts the bar lengths on a log scale.
	Log bool
}

// Bar draws vertical bars at lefts with the given heights.
func (a *Axes) Bar(lefts, heights []float64, o BarOptions) ([]*patches.Rectangle, error) {
	return a.bars(true, lefts, heights, o)
}

// Barh draws horizontal bars at bottoms with the given widths. In o,
// Width is the bar height and Bottom the left end.
func (a *Axes) Barh(bottoms, widths []float64, o BarOptions) ([]*patches.Rectangle, error) {
	return a.bars(false, bottoms, widths, o)
}

func barColors(v any, n int, next func() string) ([]string, error) {
	switch c := v.(type) {
	case nil:
		return []string{next()}, nil
	case string:
		return []string{c}, nil
	case []string:
		if len(c) == 0 {
			return []string{next()}, nil
		}
		return c, nil
	}
	return nil, fmt.Errorf("axes: %w: bar color %T", gplot.ErrInvalidValue, v)
}

func (a *Axes) bars(vertical bool, pos, length []float64, o BarOptions) ([]*patches.Rectangle, error) {
	op := "bar"
	if !vertical {
		op = "barh"
	}
	n := len(pos)
	if len(length) != n {
		return nil, &gplot.ShapeError{Op: "axes: " + op, Got: []int{len(length)}, Want: []int{n}}
	}
	width, err := broadcast(op+" width", orDefault(o.Width, 0.8), n)
	if err != nil {
		return nil, err
	}
	base, err := broadcast(op+" bottom", orDefault(o.Bottom, 0), n)
	if err != nil {
		return nil, err
	}
	switch o.Align {
	case "", "edge":
	case "center":
		pos = slices.Clone(pos)
		for i := range pos {
			pos[i] -= width[i] / 2
		}
	default:
		return nil, fmt.Errorf("axes: %s: %w: align %q", op, gplot.ErrInvalidValue, o.Align)
	}
	a.prepare()
	cols, err := barColors(o.Color, n, a.nextColor)
	if err != nil {
		return nil, err
	}
	edge := o.EdgeColor
	if edge == "" {
		edge = "k"
	}
	if o.Log {
		base = slices.Clone(base)
		for i := range base {
			if base[i] <= 0 {
				base[i] = 1e-100
			}
		}
		scale := a.SetYScale
		if !vertical {
			scale = a.SetXScale
		}
		if err := scale("log"); err != nil {
			return nil, fmt.Errorf("axes: %s: %w", op, err)
		}
	}

	rects := make([]*patches.Rectangle, n)
	for i := range n {
		var r *patches.Rectangle
		if vertical {
			r = patches.NewRectangle(pos[i], base[i], width[i], length[i])
		} else {
			r = patches.NewRectangle(base[i], pos[i], length[i], width[i])
		}
		if err := r.SetFaceColor(cols[i%len(cols)]); err != nil {
			return nil, fmt.Errorf("axes: %s: %w", op, err)
		}
		if err := r.SetEdgeColor(edge); err != nil {
			return nil, fmt.Errorf("axes: %s: %w", op, err)
		}
		if o.LineWidth > 0 {
			r.SetLineWidth(o.LineWidth)
		}
		r.SetLabel("_nolegend_")
		a.AddPatch(r)
		rects[i] = r
	}

	if o.XErr != nil || o.YErr != nil {
		cx, cy := make([]float64, n), make([]float64, n)
		for i := range n {
			if vertical {
				cx[i], cy[i] = pos[i]+width[i]/2, base[i]+length[i]
			} else {
				cx[i], cy[i] = base[i]+length[i], pos[i]+width[i]/2
			}
		}
		hold := a.hold
		a.hold = true
		_, err := a.Errorbar(cx, cy, ErrorbarOptions{Format: "none", EColor: "k", XErr: o.XErr, YErr: o.YErr})
		a.hold = hold
		if err != nil {
			return nil, fmt.Errorf("axes: %s: %w", op, err)
		}
	}
	a.autoscale()
	if o.Log {
		a.clipLogBase(vertical, base, length)
	}
	return rects, nil
}

// clipLogBase keeps log bars that start at zero from stretching the view
// to 1e-100: the lower limit becomes 0.9 of the smallest bar end.
func (a *Axes) clipLogBase(vertical bool, base, length []float64) {
	lo := math.Inf(1)
	for i := range base {
		if e := base[i] + length[i]; e > 0 && base[i] <= 1e-100 {
			lo = math.Min(lo, e)
		}
	}
	if math.IsInf(lo, 1) {
		return
	}
	iv := a.viewLim.IntervalY()
	if !vertical {
		iv = a.viewLim.IntervalX()
	}
	if iv.Min() < 0.9*lo {
		a.setAutoLim(iv, 0.9*lo, iv.Max())
	}
}

func orDefault(v []float64, def float64) []float64 {
	if len(v) == 0 {
		return []float64{def}
	}
	return v
}

// BrokenBarh draws horizontal bars for every (xmin, width) range between
// ymin and ymin+height.
func (a *Axes) BrokenBarh(xranges [][2]float64, ymin, height float64, kv ...any) (*collections.BrokenBarH, error) {
	a.prepare()
	c := collections.NewBrokenBarH(xranges, ymin, height)
	if err := c.SetFaceColors(a.nextColor()); err != nil {
		return nil, fmt.Errorf("axes: broken_barh: %w", err)
	}
	if err := artist.Setp(c, kv...); err != nil {
		return nil, fmt.Errorf("axes: broken_barh: %w", err)
	}
	a.AddCollection(c, true)
	a.autoscale()
	return c, nil
}

// HistOptions configure Hist.
type HistOptions struct {
	// Bins is the number of equal bins over the data range, 10 when zero.
	// Edges, when set, wins over it.
	Bins  int
	Edges []float64
	// Density normalizes the counts to integrate to one.
	Density bool
	// Horizontal draws the bars along x.
	Horizontal bool
	Color      any
	Log        bool
}

// HistResult holds the counts, bin edges and bars of a histogram.
type HistResult struct {
	Counts []float64
	Edges  []float64
	Bars   []*patches.Rectangle
}

// Hist draws a histogram of x.
func (a *Axes) Hist(x []float64, o HistOptions) (*HistResult, error) {
	edges := o.Edges
	if edges == nil {
		bins := o.Bins
		if bins == 0 {
			bins = 10
		}
		var err error
		if edges, err = mlab.HistEdges(x, bins); err != nil {
			return nil, fmt.Errorf("axes: hist: %w", err)
		}
	}
	counts, err := mlab.Histogram(x, edges, o.Density)
	if err != nil {
		return nil, fmt.Errorf("axes: hist: %w", err)
	}
	widths := make([]float64, len(counts))
	for i := range widths {
		widths[i] = edges[i+1] - edges[i]
	}
	bo := BarOptions{Width: widths, Color: o.Color, Log: o.Log}
	var bars []*patches.Rectangle
	if o.Horizontal {
		bars, err = a.Barh(edges[:len(counts)], counts, bo)
	} else {
		bars, err = a.Bar(edges[:len(counts)], counts, bo)
	}
	if err != nil {
		return nil, fmt.Errorf("axes: hist: %w", err)
	}
	return &HistResult{Counts: counts, Edges: edges, Bars: bars}, nil
}

// PieOptions configure Pie.
type PieOptions struct {
	// Explode offsets each wedge outward by a fraction of the radius.
	Explode []float64
	Labels  []string
	Colors  []string
	// Autopct is a printf format applied to each percentage, such as
	// "%1.1f%%". No percentages are drawn when empty.
	Autopct string
	// PctDistance and LabelDistance are radii; 0.6 and 1.1 when zero.
	PctDistance   float64
	LabelDistance float64
	Shadow        bool
}

// PieContainer holds the artists of a pie chart.
type PieContainer struct {
	Wedges    []*patches.Wedge
	Texts     []*text.Text
	AutoTexts []*text.Text
}

// Pie draws a pie chart of x. When x sums to more than one the values
// are normalized; otherwise they are used as fractions and the pie has a
// gap. Wedges go counter-clockwise from the positive x axis.
func (a *Axes) Pie(x []float64, o PieOptions) (*PieContainer, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("axes: pie: %w: no data", gplot.ErrInvalidValue)
	}
	sum := 0.0
	for _, v := range x {
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("axes: pie: %w: wedge size %g", gplot.ErrInvalidValue, v)
		}
		sum += v
	}
	fracs := slices.Clone(x)
	if sum > 1 {
		for i := range fracs {
			fracs[i] /= sum
		}
	}
	if o.Explode != nil && len(o.Explode) != len(x) {
		return nil, &gplot.ShapeError{Op: "axes: pie explode", Got: []int{len(o.Explode)}, Want: []int{len(x)}}
	}
	if o.Labels != nil && len(o.Labels) != len(x) {
		return nil, &gplot.ShapeError{Op: "axes: pie labels", Got: []int{len(o.Labels)}, Want: []int{len(x)}}
	}
	pctDist := o.PctDistance
	if pctDist == 0 {
		pctDist = 0.6
	}
	labelDist := o.LabelDistance
	if labelDist == 0 {
		labelDist = 1.1
	}

	a.prepare()
	pc := &PieContainer{}
	theta1 := 0.0
	for i, f := range fracs {
		theta2 := theta1 + f
		mid := math.Pi * (theta1 + theta2)
		cx, cy := 0.0, 0.0
		if o.Explode != nil {
			cx, cy = o.Explode[i]*math.Cos(mid), o.Explode[i]*math.Sin(mid)
		}
		w := patches.NewWedge(cx, cy, 1, 360*theta1, 360*theta2)
		var c string
		if len(o.Colors) > 0 {
			c = o.Colors[i%len(o.Colors)]
		} else {
			c = a.nextColor()
		}
		if err := w.SetFaceColor(c); err != nil {
			return nil, fmt.Errorf("axes: pie: %w", err)
		}
		w.SetLabel("_nolegend_")
		a.AddPatch(w)
		pc.Wedges = append(pc.Wedges, w)
		if o.Shadow {
			a.AddPatch(patches.NewShadow(w, -0.02, -0.02))
		}

		if o.Labels != nil {
			t := text.New(cx+labelDist*math.Cos(mid), cy+labelDist*math.Sin(mid), o.Labels[i])
			if math.Cos(mid) > 0 {
				t.SetHAlign(text.Left)
			} else {
				t.SetHAlign(text.Right)
			}
			t.SetVAlign(text.Middle)
			a.AddText(t)
			pc.Texts = append(pc.Texts, t)
		}
		if o.Autopct != "" {
			t := text.New(cx+pctDist*math.Cos(mid), cy+pctDist*math.Sin(mid), fmt.Sprintf(o.Autopct, 100*f))
			t.SetHAlign(text.Center)
			t.SetVAlign(text.Middle)
			a.AddText(t)
			pc.AutoTexts = append(pc.AutoTexts, t)
		}
		theta1 = theta2
	}
	if err := a.SetXLim(-1.25, 1.25, false); err != nil {
		return nil, err
	}
	if err := a.SetYLim(-1.25, 1.25, false); err != nil {
		return nil, err
	}
	noTicks(&a.xaxis.Axis)
	noTicks(&a.yaxis.Axis)
	return pc, nil
}

// BoxplotOptions configure Boxplot.
type BoxplotOptions struct {
	Notch bool
	// Sym is the flier format; "b+" when empty, "none" hides fliers.
	Sym string
	// Horizontal lays the boxes along x.
	Horizontal bool
	// Whis is the whisker reach in interquartile ranges; 1.5 when zero.
	Whis float64
	// Positions default to 1..n; Widths to 0.5 or 0.15 of the position
	// span, whichever is smaller.
	Positions []float64
	Widths    []float64
}

type boxPart struct {
	dst    **lines.Line2D
	xs, ys []float64
	format string
}

// BoxContainer holds the lines of one box.
type BoxContainer struct {
	Box      *lines.Line2D
	Median   *lines.Line2D
	Whiskers [2]*lines.Line2D
	Caps     [2]*lines.Line2D
	Fliers   *lines.Line2D
	Stats    mlab.BoxStats
}

// Boxplot draws one box and whiskers per data set.
func (a *Axes) Boxplot(data [][]float64, o BoxplotOptions) ([]*BoxContainer, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("axes: boxplot: %w: no data", gplot.ErrInvalidValue)
	}
	pos := o.Positions
	if pos == nil {
		pos = make([]float64, n)
		for i := range pos {
			pos[i] = float64(i + 1)
		}
	}
	if len(pos) != n {
		return nil, &gplot.ShapeError{Op: "axes: boxplot positions", Got: []int{len(pos)}, Want: []int{n}}
	}
	def := 0.5
	if n > 1 {
		def = math.Min(0.5, 0.15*(slices.Max(pos)-slices.Min(pos)))
	}
	widths, err := broadcast("boxplot widths", orDefault(o.Widths, def), n)
	if err != nil {
		return nil, err
	}
	whis := o.Whis
	if whis == 0 {
		whis = 1.5
	}
	sym := o.Sym
	if sym == "" {
		sym = "b+"
	}

	a.prepare()
	var out []*BoxContainer
	add := func(xs, ys []float64, format string) (*lines.Line2D, error) {
		if o.Horizontal {
			xs, ys = ys, xs
		}
		l, err := lines.New(xs, ys)
		if err != nil {
			return nil, err
		}
		if err := a.styleLine(l, format); err != nil {
			return nil, err
		}
		l.SetLabel("_nolegend_")
		a.AddLine(l)
		return l, nil
	}
	for i, d := range data {
		st, err := mlab.Boxplot(d, whis)
		if err != nil {
			return nil, fmt.Errorf("axes: boxplot %d: %w", i, err)
		}
		p, w := pos[i], widths[i]
		x0, x1 := p-w/2, p+w/2
		cap0, cap1 := p-w/4, p+w/4
		bc := &BoxContainer{Stats: st}
		steps := []boxPart{
			{&bc.Whiskers[0], []float64{p, p}, []float64{st.WhiskerLo, st.Q1}, "b--"},
			{&bc.Whiskers[1], []float64{p, p}, []float64{st.Q3, st.WhiskerHi}, "b--"},
			{&bc.Caps[0], []float64{cap0, cap1}, []float64{st.WhiskerLo, st.WhiskerLo}, "k-"},
			{&bc.Caps[1], []float64{cap0, cap1}, []float64{st.WhiskerHi, st.WhiskerHi}, "k-"},
		}
		if o.Notch {
			nx0, nx1 := p-w/4, p+w/4
			nlo, nhi := math.Max(st.NotchLo, st.Q1), math.Min(st.NotchHi, st.Q3)
			steps = append(steps,
				boxPart{&bc.Box,
					[]float64{x0, x1, x1, nx1, x1, x1, x0, x0, nx0, x0, x0},
					[]float64{st.Q1, st.Q1, nlo, st.Median, nhi, st.Q3, st.Q3, nhi, st.Median, nlo, st.Q1}, "b-"},
				boxPart{&bc.Median, []float64{nx0, nx1}, []float64{st.Median, st.Median}, "r-"},
			)
		} else {
			steps = append(steps,
				boxPart{&bc.Box, []float64{x0, x1, x1, x0, x0}, []float64{st.Q1, st.Q1, st.Q3, st.Q3, st.Q1}, "b-"},
				boxPart{&bc.Median, []float64{x0, x1}, []float64{st.Median, st.Median}, "r-"},
			)
		}
		for _, s := range steps {
			if *s.dst, err = add(s.xs, s.ys, s.format); err != nil {
				return nil, fmt.Errorf("axes: boxplot: %w", err)
			}
		}
		if sym != "none" && len(st.Fliers) > 0 {
			fx := make([]float64, len(st.Fliers))
			for j := range fx {
				fx[j] = p
			}
			if bc.Fliers, err = add(fx, st.Fliers, sym); err != nil {
				return nil, fmt.Errorf("axes: boxplot: %w", err)
			}
		}
		out = append(out, bc)
	}
	a.autoscale()
	return out, nil
}
