package axes

import (
	"fmt"
	"math"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/lines"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/text"
	"github.com/gogpu/gplot/ticker"
	"github.com/gogpu/gplot/transform"
)

// PolarAxes plots (theta, r) data, theta in radians, inside a circle.
// The radial limit follows the data; circles mark the radial ticks and
// spokes every 45 degrees mark the angle.
type PolarAxes struct {
	artist.Base

	fig       Figure
	pos       [4]*bbox.Value
	origPos   [4]float64
	box       *bbox.Bbox
	rmax      *bbox.Value
	transData *transform.Polar
	transAxes *transform.Separable

	lines      []*lines.Line2D
	texts      []*text.Text
	title      *text.Text
	background *patches.Circle

	gridOn      bool
	autoscaleOn bool
	maxR        float64
	rgrids      []float64
	thetaGrids  []float64
	cycle       []string
	cycleIdx    int
}

// NewPolar returns polar axes inside rect, in figure fractions. The
// plotting circle is centered in rect.
func NewPolar(fig Figure, rect [4]float64) (*PolarAxes, error) {
	if rect[2] <= 0 || rect[3] <= 0 {
		return nil, fmt.Errorf("axes: %w: position %v has no area", gplot.ErrInvalidValue, rect)
	}
	rc := rcparams.Default()
	p := &PolarAxes{
		fig:         fig,
		origPos:     rect,
		rmax:        bbox.NewValue(1),
		gridOn:      rc.Bool("polaraxes.grid"),
		autoscaleOn: true,
		thetaGrids:  []float64{0, 45, 90, 135, 180, 225, 270, 315},
		cycle:       rc.Strings("axes.color_cycle"),
	}
	p.Init(p)
	p.SetFigure(fig)
	for i, v := range rect {
		p.pos[i] = bbox.NewValue(v)
	}
	p.box = figureBox(fig, p.pos)
	p.transData = transform.NewPolar(p.rmax, p.box)
	p.transAxes = transform.BboxTransform(bbox.UnitBbox(), p.box)

	p.background = patches.NewCircle(0.5, 0.5, 0.5)
	_ = p.background.SetFaceColor(rc.Color("axes.facecolor"))
	_ = p.background.SetEdgeColor(rc.Color("axes.edgecolor"))
	p.background.SetLineWidth(rc.Float("axes.linewidth"))
	p.background.SetTransform(p.transAxes)
	p.background.SetFigure(fig)
	p.background.SetClipOn(false)

	p.title = text.New(0.5, 1.05, "")
	_ = p.title.SetFontSize(rc.Float("axes.titlesize"))
	p.title.SetHAlign(text.Center)
	p.title.SetVAlign(text.Baseline)
	p.title.SetTransform(p.transAxes)
	p.title.SetFigure(fig)
	p.title.SetClipOn(false)
	p.setRGrids()
	return p, nil
}

// TransData returns the (theta, r) transform.
func (p *PolarAxes) TransData() *transform.Polar { return p.transData }

// Bbox returns the display box of the axes.
func (p *PolarAxes) Bbox() *bbox.Bbox { return p.box }

// RMax returns the radial limit.
func (p *PolarAxes) RMax() float64 { return p.rmax.Get() }

// SetRMax fixes the radial limit and turns radial autoscaling off.
func (p *PolarAxes) SetRMax(r float64) error {
	if !(r > 0) || math.IsInf(r, 0) {
		return fmt.Errorf("axes: %w: rmax %g", gplot.ErrInvalidValue, r)
	}
	p.rmax.Set(r)
	p.autoscaleOn = false
	p.setRGrids()
	return nil
}

// SetTitle sets the title string.
func (p *PolarAxes) SetTitle(s string) { p.title.SetText(s) }

// Grid shows or hides the circles and spokes.
func (p *PolarAxes) Grid(on bool) { p.gridOn = on }

// Lines returns the data lines.
func (p *PolarAxes) Lines() []*lines.Line2D { return p.lines }

// SetThetaGrids places the spokes at the given angles in degrees.
func (p *PolarAxes) SetThetaGrids(deg []float64) { p.thetaGrids = append([]float64(nil), deg...) }

// RGrids returns the radii of the grid circles.
func (p *PolarAxes) RGrids() []float64 { return p.rgrids }

// SetRGrids places the grid circles at the given radii.
func (p *PolarAxes) SetRGrids(radii []float64) { p.rgrids = append([]float64(nil), radii...) }

func (p *PolarAxes) setRGrids() {
	loc := ticker.NewAutoLocator()
	r := p.rmax.Get()
	loc.SetIntervals(bbox.NewInterval(0, r), bbox.NewInterval(0, r))
	p.rgrids = p.rgrids[:0]
	for _, v := range loc.Locs() {
		if v > 0 && v <= r*(1+1e-9) {
			p.rgrids = append(p.rgrids, v)
		}
	}
}

func (p *PolarAxes) nextColor() string {
	if len(p.cycle) == 0 {
		return "b"
	}
	c := p.cycle[p.cycleIdx%len(p.cycle)]
	p.cycleIdx++
	return c
}

// Plot draws r against theta with a format string and line property
// pairs. Consecutive points are joined by straight segments on screen.
func (p *PolarAxes) Plot(theta, r []float64, format string, kv ...any) (*lines.Line2D, error) {
	l, err := lines.New(theta, r)
	if err != nil {
		return nil, fmt.Errorf("axes: polar plot: %w", err)
	}
	if err := applyFormat(l, format, p.nextColor); err != nil {
		return nil, fmt.Errorf("axes: polar plot: %w", err)
	}
	if err := artist.Setp(l, kv...); err != nil {
		return nil, fmt.Errorf("axes: polar plot: %w", err)
	}
	p.AddLine(l)
	return l, nil
}

// AddLine attaches l in (theta, r) coordinates and grows the radial
// limit to its largest finite radius.
func (p *PolarAxes) AddLine(l *lines.Line2D) {
	l.SetFigure(p.fig)
	l.SetTransform(p.transData)
	l.SetClipBox(p.box)
	_, rs := l.ValidData()
	for _, v := range rs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			p.maxR = math.Max(p.maxR, math.Abs(v))
		}
	}
	p.lines = append(p.lines, l)
	if p.autoscaleOn && p.maxR > 0 {
		loc := ticker.NewAutoLocator()
		loc.SetIntervals(bbox.NewInterval(0, p.maxR), bbox.NewInterval(0, p.maxR))
		if _, hi, err := loc.Autoscale(); err == nil && hi > 0 {
			p.rmax.Set(hi)
		}
		p.setRGrids()
	}
}

// Text adds a text at (theta, r).
func (p *PolarAxes) Text(theta, r float64, s string) *text.Text {
	t := text.New(theta, r, s)
	t.SetFigure(p.fig)
	t.SetTransform(p.transData)
	p.texts = append(p.texts, t)
	return t
}

// Schema implements artist.Artist.
func (p *PolarAxes) Schema() *artist.Schema { return artist.BaseSchema }

// applyAspect centers the largest square of the original position.
func (p *PolarAxes) applyAspect() {
	fb := p.fig.Bbox()
	fw, fh := fb.Width(), fb.Height()
	if fw <= 0 || fh <= 0 {
		return
	}
	l, b, w, h := p.origPos[0], p.origPos[1], p.origPos[2], p.origPos[3]
	side := math.Min(w*fw, h*fh)
	W, H := side/fw, side/fh
	for i, v := range [4]float64{l + (w-W)/2, b + (h-H)/2, W, H} {
		p.pos[i].Set(v)
	}
}

// gridArtists builds the circles, spokes and their labels for one draw.
func (p *PolarAxes) gridArtists() ([]artist.Artist, error) {
	rc := rcparams.Default()
	gridColor := rc.Color("grid.color")
	style := func(l *lines.Line2D) error {
		if err := l.SetColor(gridColor); err != nil {
			return err
		}
		if err := l.SetLineStyle(rc.String("grid.linestyle")); err != nil {
			return err
		}
		l.SetLineWidth(rc.Float("grid.linewidth"))
		l.SetTransform(p.transData)
		l.SetFigure(p.fig)
		l.SetZOrder(0.5)
		return nil
	}
	rmax := p.rmax.Get()
	var out []artist.Artist
	fmtr := ticker.NewScalarFormatter()
	fmtr.SetUseOffset(false)
	fmtr.SetLocs(p.rgrids)
	const n = 100
	for _, r := range p.rgrids {
		ts, rs := make([]float64, n+1), make([]float64, n+1)
		for i := range ts {
			ts[i], rs[i] = 2*math.Pi*float64(i)/n, r
		}
		l, err := lines.New(ts, rs)
		if err != nil {
			return nil, err
		}
		if err := style(l); err != nil {
			return nil, err
		}
		out = append(out, l)
		t := text.New(math.Pi/8, r, fmtr.Format(r, 0))
		t.SetTransform(p.transData)
		t.SetFigure(p.fig)
		out = append(out, t)
	}
	for _, d := range p.thetaGrids {
		th := d * math.Pi / 180
		l, err := lines.New([]float64{th, th}, []float64{0, rmax})
		if err != nil {
			return nil, err
		}
		if err := style(l); err != nil {
			return nil, err
		}
		out = append(out, l)
		t := text.New(th, 1.1*rmax, fmt.Sprintf("%d°", int(math.Round(d))))
		t.SetHAlign(text.Center)
		t.SetVAlign(text.Middle)
		t.SetTransform(p.transData)
		t.SetFigure(p.fig)
		t.SetClipOn(false)
		out = append(out, t)
	}
	return out, nil
}

// Draw renders the background circle, the grid, the data and the title.
func (p *PolarAxes) Draw(r backend.Renderer) error {
	if !p.Visible() {
		return nil
	}
	r.OpenGroup("polaraxes")
	defer r.CloseGroup("polaraxes")
	p.applyAspect()
	if err := p.transData.Freeze(); err != nil {
		return fmt.Errorf("axes: polar draw: %w", err)
	}
	defer p.transData.Thaw()
	if err := p.transAxes.Freeze(); err != nil {
		return fmt.Errorf("axes: polar draw: %w", err)
	}
	defer p.transAxes.Thaw()

	children := []artist.Artist{p.background}
	if p.gridOn {
		g, err := p.gridArtists()
		if err != nil {
			return fmt.Errorf("axes: polar grid: %w", err)
		}
		children = append(children, g...)
	}
	for _, l := range p.lines {
		children = append(children, l)
	}
	for _, t := range p.texts {
		children = append(children, t)
	}
	children = append(children, p.title)
	return artist.DrawAll(r, children)
}
