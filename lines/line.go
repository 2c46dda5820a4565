package lines

import (
	"fmt"
	"slices"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/transform"
)

// Run is a drawable piece of a line: consecutive unmasked points.
type Run struct {
	Xs, Ys []float64
}

// Line2D is a polyline with optional markers.
type Line2D struct {
	artist.Base

	xs, ys []float64
	mask   []bool
	style  Style

	// plottable runs for the log pattern in cacheKey
	cache    []Run
	cacheKey [2]bool
	cacheOK  bool
}

// New returns a line through (xs[i], ys[i]) styled from the rc params.
func New(xs, ys []float64) (*Line2D, error) {
	l := &Line2D{style: DefaultStyle()}
	l.Init(l)
	l.SetZOrder(2)
	if err := l.setData(xs, ys); err != nil {
		return nil, err
	}
	return l, nil
}

// Data returns the raw coordinates.
func (l *Line2D) Data() (xs, ys []float64) { return l.xs, l.ys }

// SetData replaces the coordinates. The slices are copied. A mask whose
// length no longer matches is dropped.
func (l *Line2D) SetData(xs, ys []float64) error {
	if err := l.setData(xs, ys); err != nil {
		return err
	}
	l.PChanged()
	return nil
}

func (l *Line2D) setData(xs, ys []float64) error {
	if err := gplot.CheckSameLen("lines: set data", xs, ys); err != nil {
		return err
	}
	l.xs, l.ys = slices.Clone(xs), slices.Clone(ys)
	if len(l.mask) != len(xs) {
		l.mask = nil
	}
	l.cacheOK = false
	return nil
}

// SetXData replaces the x coordinates only.
func (l *Line2D) SetXData(xs []float64) error { return l.SetData(xs, l.ys) }

// SetYData replaces the y coordinates only.
func (l *Line2D) SetYData(ys []float64) error { return l.SetData(l.xs, ys) }

// Mask returns the mask, or nil when every point is valid.
func (l *Line2D) Mask() []bool { return l.mask }

// SetMask marks points as invalid where mask is true. A nil mask clears
// it.
func (l *Line2D) SetMask(mask []bool) error {
	if mask != nil && len(mask) != len(l.xs) {
		return &gplot.ShapeError{Op: "lines: set mask", Got: []int{len(mask)}, Want: []int{len(l.xs)}}
	}
	l.mask = slices.Clone(mask)
	l.cacheOK = false
	l.PChanged()
	return nil
}

// UnmaskedRuns returns the half-open index ranges [start, end) of
// consecutive unmasked points.
func UnmaskedRuns(mask []bool, n int) [][2]int {
	var runs [][2]int
	start := -1
	for i := range n {
		masked := i < len(mask) && mask[i]
		switch {
		case !masked && start < 0:
			start = i
		case masked && start >= 0:
			runs = append(runs, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int{start, n})
	}
	return runs
}

// ValidData returns the unmasked points.
func (l *Line2D) ValidData() (xs, ys []float64) {
	for _, r := range UnmaskedRuns(l.mask, len(l.xs)) {
		xs = append(xs, l.xs[r[0]:r[1]]...)
		ys = append(ys, l.ys[r[0]:r[1]]...)
	}
	return xs, ys
}

// logPattern reports which legs of t are log10.
func logPattern(t transform.Transform) [2]bool {
	s, ok := t.(*transform.Separable)
	if !ok {
		return [2]bool{}
	}
	return [2]bool{s.XLog(), s.YLog()}
}

// Plottable returns the runs drawn under t: the unmasked runs with points
// dropped where a log-scaled coordinate is not positive. Results are
// cached until the data, the mask or the log pattern of t changes.
func (l *Line2D) Plottable(t transform.Transform) []Run {
	key := logPattern(t)
	if l.cacheOK && l.cacheKey == key {
		return l.cache
	}
	var runs []Run
	for _, r := range UnmaskedRuns(l.mask, len(l.xs)) {
		xs, ys := l.xs[r[0]:r[1]], l.ys[r[0]:r[1]]
		if key[0] || key[1] {
			xs, ys = filterLog(xs, ys, key)
			if len(xs) == 0 {
				continue
			}
		}
		runs = append(runs, Run{Xs: xs, Ys: ys})
	}
	l.cache, l.cacheKey, l.cacheOK = runs, key, true
	return runs
}

func filterLog(xs, ys []float64, key [2]bool) ([]float64, []float64) {
	fx := make([]float64, 0, len(xs))
	fy := make([]float64, 0, len(ys))
	for i := range xs {
		if (key[0] && !(xs[i] > 0)) || (key[1] && !(ys[i] > 0)) {
			continue
		}
		fx = append(fx, xs[i])
		fy = append(fy, ys[i])
	}
	return fx, fy
}

// Steps expands a polyline into a staircase of 2N vertices: every point
// holds its y until the next x, then steps.
func Steps(xs, ys []float64) ([]float64, []float64) {
	n := min(len(xs), len(ys))
	sx := make([]float64, 2*n)
	sy := make([]float64, 2*n)
	for i := range n {
		sx[2*i] = xs[i]
		if i+1 < n {
			sx[2*i+1] = xs[i+1]
		} else {
			sx[2*i+1] = xs[i]
		}
		sy[2*i], sy[2*i+1] = ys[i], ys[i]
	}
	return sx, sy
}

// Style returns a copy of the style.
func (l *Line2D) Style() Style { return l.style.Clone() }

// SetStyle replaces the whole style.
func (l *Line2D) SetStyle(s Style) {
	l.style = s.Clone()
	l.PChanged()
}

// UpdateFrom copies the shared artist state and the style of o.
func (l *Line2D) UpdateFrom(o *Line2D) {
	l.style = o.style.Clone()
	l.Base.UpdateFrom(o.ArtistBase())
}

// LineStyle returns the line style code.
func (l *Line2D) LineStyle() string { return l.style.LineStyle }

// SetLineStyle sets the line style; see NormalizeLineStyle.
func (l *Line2D) SetLineStyle(s string) error {
	n, err := NormalizeLineStyle(s)
	if err != nil {
		return err
	}
	l.style.LineStyle = n
	l.PChanged()
	return nil
}

// Marker returns the marker code.
func (l *Line2D) Marker() string { return l.style.Marker }

// SetMarker sets the marker; see NormalizeMarker.
func (l *Line2D) SetMarker(v any) error {
	m, ok := NormalizeMarker(v)
	if !ok {
		return fmt.Errorf("lines: %w: marker %v", gplot.ErrInvalidValue, v)
	}
	l.style.Marker = m
	l.PChanged()
	return nil
}

// Color returns the line color.
func (l *Line2D) Color() colors.RGBA { return l.style.Color }

// SetColor sets the line color from any color specification.
func (l *Line2D) SetColor(v any) error {
	c, err := colors.ToRGBA(v)
	if err != nil {
		return fmt.Errorf("lines: %w", err)
	}
	l.style.Color = c
	l.PChanged()
	return nil
}

// LineWidth returns the line width in points.
func (l *Line2D) LineWidth() float64 { return l.style.LineWidth }

// SetLineWidth sets the line width in points.
func (l *Line2D) SetLineWidth(w float64) {
	l.style.LineWidth = w
	l.PChanged()
}

// Dashes returns the explicit dash sequence, or nil.
func (l *Line2D) Dashes() []float64 { return l.style.Dashes }

// SetDashes sets an explicit on/off sequence in points and switches the
// line style to dashed. An empty sequence selects solid lines.
func (l *Line2D) SetDashes(seq []float64) {
	if len(seq) == 0 {
		l.style.Dashes = nil
		l.style.LineStyle = "-"
	} else {
		l.style.Dashes = slices.Clone(seq)
		l.style.LineStyle = "--"
	}
	l.PChanged()
}

// SetDashCapStyle sets the cap style of dashed lines.
func (l *Line2D) SetDashCapStyle(s string) error {
	return l.setCap(&l.style.DashCapStyle, s)
}

// SetSolidCapStyle sets the cap style of solid lines.
func (l *Line2D) SetSolidCapStyle(s string) error {
	return l.setCap(&l.style.SolidCapStyle, s)
}

// SetDashJoinStyle sets the join style of dashed lines.
func (l *Line2D) SetDashJoinStyle(s string) error {
	return l.setJoin(&l.style.DashJoinStyle, s)
}

// SetSolidJoinStyle sets the join style of solid lines.
func (l *Line2D) SetSolidJoinStyle(s string) error {
	return l.setJoin(&l.style.SolidJoinStyle, s)
}

func (l *Line2D) setCap(dst *backend.CapStyle, s string) error {
	c, err := backend.ParseCapStyle(s)
	if err != nil {
		return err
	}
	*dst = c
	l.PChanged()
	return nil
}

func (l *Line2D) setJoin(dst *backend.JoinStyle, s string) error {
	j, err := backend.ParseJoinStyle(s)
	if err != nil {
		return err
	}
	*dst = j
	l.PChanged()
	return nil
}

// MarkerSize returns the marker size in points.
func (l *Line2D) MarkerSize() float64 { return l.style.MarkerSize }

// SetMarkerSize sets the marker size in points.
func (l *Line2D) SetMarkerSize(s float64) {
	l.style.MarkerSize = s
	l.PChanged()
}

// MarkerEdgeWidth returns the marker edge width in points.
func (l *Line2D) MarkerEdgeWidth() float64 { return l.style.MarkerEdgeWidth }

// SetMarkerEdgeWidth sets the marker edge width in points.
func (l *Line2D) SetMarkerEdgeWidth(w float64) {
	l.style.MarkerEdgeWidth = w
	l.PChanged()
}

// MarkerFaceColor returns the face color setting.
func (l *Line2D) MarkerFaceColor() MarkerColor { return l.style.MarkerFaceColor }

// SetMarkerFaceColor accepts "auto", "none" or a color.
func (l *Line2D) SetMarkerFaceColor(v any) error {
	return l.setMarkerColor(&l.style.MarkerFaceColor, v)
}

// MarkerEdgeColor returns the edge color setting.
func (l *Line2D) MarkerEdgeColor() MarkerColor { return l.style.MarkerEdgeColor }

// SetMarkerEdgeColor accepts "auto", "none" or a color.
func (l *Line2D) SetMarkerEdgeColor(v any) error {
	return l.setMarkerColor(&l.style.MarkerEdgeColor, v)
}

func (l *Line2D) setMarkerColor(dst *MarkerColor, v any) error {
	c, err := ParseMarkerColor(v)
	if err != nil {
		return fmt.Errorf("lines: %w", err)
	}
	*dst = c
	l.PChanged()
	return nil
}

// Antialiased reports whether the line is antialiased.
func (l *Line2D) Antialiased() bool { return l.style.Antialiased }

// SetAntialiased enables or disables antialiasing.
func (l *Line2D) SetAntialiased(v bool) {
	l.style.Antialiased = v
	l.PChanged()
}

// ResolvedFace returns the marker face color, or nil for hollow markers
// and markers without a face.
func (l *Line2D) ResolvedFace() *colors.RGBA {
	m := l.style.Marker
	if !IsFilledMarker(m) && m != MarkerPoint && m != MarkerPixel {
		return nil
	}
	switch fc := l.style.MarkerFaceColor; fc.Mode {
	case ColorNone:
		return nil
	case ColorAuto:
		c := l.style.Color
		return &c
	default:
		c := fc.Color
		return &c
	}
}

// ResolvedEdge returns the marker edge color and whether an edge is drawn.
// "auto" is black for filled markers and the line color otherwise.
func (l *Line2D) ResolvedEdge() (colors.RGBA, bool) {
	switch ec := l.style.MarkerEdgeColor; ec.Mode {
	case ColorNone:
		return colors.RGBA{}, false
	case ColorAuto:
		if IsFilledMarker(l.style.Marker) {
			return colors.Black, true
		}
		return l.style.Color, true
	default:
		return ec.Color, true
	}
}

// drawsLine reports whether the line has a visible stroke.
func (l *Line2D) drawsLine() bool {
	return l.style.LineStyle != "None" && l.style.LineWidth > 0
}

// lineGC configures gc for stroking the line itself.
func (l *Line2D) lineGC(r backend.Renderer) *backend.GraphicsContext {
	gc := l.NewGC(r)
	gc.Foreground = l.style.Color
	gc.LineWidth = l.style.LineWidth
	gc.Antialiased = l.style.Antialiased
	// The style is normalized, so SetLineStyle cannot fail.
	_ = gc.SetLineStyle(l.style.LineStyle)
	if l.style.LineStyle == "--" && len(l.style.Dashes) > 0 {
		gc.SetDashes(l.style.DashOffset, l.style.Dashes)
	}
	if gc.Dash.IsDashed() {
		gc.Cap, gc.Join = l.style.DashCapStyle, l.style.DashJoinStyle
	} else {
		gc.Cap, gc.Join = l.style.SolidCapStyle, l.style.SolidJoinStyle
	}
	return gc
}

// Draw implements artist.Artist.
func (l *Line2D) Draw(r backend.Renderer) error {
	if !l.Visible() {
		return nil
	}
	r.OpenGroup("line2d")
	defer r.CloseGroup("line2d")

	t := l.Transform()
	runs := l.Plottable(t)
	if l.drawsLine() {
		gc := l.lineGC(r)
		for _, run := range runs {
			if len(run.Xs) < 2 {
				continue
			}
			xs, ys := run.Xs, run.Ys
			if l.style.LineStyle == "steps" {
				xs, ys = Steps(xs, ys)
			}
			r.DrawLines(gc, xs, ys, t)
		}
	}
	if l.style.Marker != MarkerNone {
		l.drawMarkers(r, t, runs)
	}
	return nil
}

func (l *Line2D) markerGC(r backend.Renderer) *backend.GraphicsContext {
	gc := l.NewGC(r)
	gc.Antialiased = l.style.Antialiased
	gc.Cap, gc.Join = backend.CapButt, backend.JoinMiter
	if edge, ok := l.ResolvedEdge(); ok {
		gc.Foreground = edge
		gc.LineWidth = l.style.MarkerEdgeWidth
	} else {
		gc.LineWidth = 0
	}
	return gc
}

func (l *Line2D) drawMarkers(r backend.Renderer, t transform.Transform, runs []Run) {
	var xs, ys []float64
	for _, run := range runs {
		xs = append(xs, run.Xs...)
		ys = append(ys, run.Ys...)
	}
	if len(xs) == 0 {
		return
	}
	size := r.PointsToPixels(l.style.MarkerSize)
	path := MarkerPath(l.style.Marker, size)
	if path == nil {
		return
	}
	gc := l.markerGC(r)
	face := l.ResolvedFace()

	if mr, ok := r.(backend.MarkerRenderer); ok {
		mr.DrawMarkers(gc, path, face, xs, ys, t)
		return
	}

	gplot.Logger().Warn("lines: renderer cannot stamp markers, drawing one by one",
		"marker", l.style.Marker, "count", len(xs))
	dx, dy := t.NumerixXY(xs, ys)
	if isRoundMarker(l.style.Marker) {
		d := size
		if l.style.Marker == MarkerPoint {
			d = size / 2
		}
		for i := range dx {
			r.DrawArc(gc, face, dx[i], dy[i], d, d, 0, 360, 0)
		}
		return
	}
	subs, closed := path.Flatten(0.1)
	for i := range dx {
		off := gplot.Pt(dx[i], dy[i])
		for j, sub := range subs {
			if closed[j] {
				pts := make([]gplot.Point, len(sub))
				for k, p := range sub {
					pts[k] = p.Add(off)
				}
				r.DrawPolygon(gc, face, pts)
				continue
			}
			for k := 0; k+1 < len(sub); k++ {
				a, b := sub[k].Add(off), sub[k+1].Add(off)
				r.DrawLine(gc, a.X, a.Y, b.X, b.Y)
			}
		}
	}
}
