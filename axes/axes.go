// Package axes implements the plotting region: a rectangle of a figure
// with its own data coordinate frame, two axis artists, and the lists of
// artists drawn inside it.
//
// The view and data limits are boxes of shared cells. transData maps the
// view limits onto the display box of the axes and transAxes maps the
// unit square onto it, so every child bound to them follows limit and
// layout changes without being told.
//
// The plot-type methods (Plot, Bar, Scatter, Contour, ...) only build
// artists from arrays and attach them with the Add methods.
package axes

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/axis"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/images"
	"github.com/gogpu/gplot/legend"
	"github.com/gogpu/gplot/lines"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/table"
	"github.com/gogpu/gplot/text"
	"github.com/gogpu/gplot/transform"
)

// Figure is the part of a figure an axes lays itself out in.
type Figure interface {
	artist.Figure
	// Bbox returns the display box of the figure. Its cells follow size
	// and dpi changes.
	Bbox() *bbox.Bbox
}

// Option configures an Axes during creation.
type Option func(*options)

type options struct {
	sharex, sharey *Axes
	frameOn        bool
	label          string
}

// ShareX makes the new axes use the x view and data limits and the x
// tickers of o.
func ShareX(o *Axes) Option {
	return func(opts *options) { opts.sharex = o }
}

// ShareY makes the new axes use the y limits and tickers of o.
func ShareY(o *Axes) Option {
	return func(opts *options) { opts.sharey = o }
}

// WithFrame sets whether the background and frame are drawn.
func WithFrame(on bool) Option {
	return func(opts *options) { opts.frameOn = on }
}

// WithLabel names the axes, so a figure can tell apart axes created with
// the same rectangle.
func WithLabel(s string) Option {
	return func(opts *options) { opts.label = s }
}

// shareGroup is the set of axes sharing one direction.
type shareGroup struct {
	members []*Axes
}

func join(g *shareGroup, leader, a *Axes) *shareGroup {
	if g == nil {
		g = &shareGroup{members: []*Axes{leader}}
	}
	g.members = append(g.members, a)
	return g
}

// Axes is a plotting region.
type Axes struct {
	artist.Base

	fig Figure

	// active position in figure fractions; origPos is what aspect
	// adjustments start from
	pos     [4]*bbox.Value
	origPos [4]float64

	box       *bbox.Bbox
	viewLim   *bbox.Bbox
	dataLim   *bbox.Bbox
	ignoreLim bool
	minPosX   float64
	minPosY   float64

	fx, fy    *transform.Func
	transData *transform.Separable
	transAxes *transform.Separable

	xaxis *axis.XAxis
	yaxis *axis.YAxis

	lines       []*lines.Line2D
	patches     []patches.Artist
	texts       []artist.Artist
	collections []artist.Artist
	images      []*images.AxesImage
	tables      []*table.Table
	artists     []artist.Artist
	legend      *legend.Legend

	title      *text.Text
	background *patches.Rectangle
	frame      *lines.Line2D

	frameOn     bool
	axisOn      bool
	autoscaleOn bool
	hold        bool
	xlimSet     bool
	ylimSet     bool

	// aspect is 0 for "auto"
	aspect     float64
	adjustable string
	anchor     [2]float64

	sharex, sharey *Axes
	xgroup, ygroup *shareGroup

	cycle    []string
	cycleIdx int

	handlers map[int]handler
	nextCID  int
}

type handler struct {
	event string
	fn    func(*Axes)
}

// Limit change events.
const (
	XLimChanged = "xlim_changed"
	YLimChanged = "ylim_changed"
)

// New returns an axes covering rect, given as left, bottom, width and
// height in figure fractions.
func New(fig Figure, rect [4]float64, opts ...Option) (*Axes, error) {
	o := options{frameOn: true}
	for _, opt := range opts {
		opt(&o)
	}
	for _, v := range rect {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("axes: %w: position %v", gplot.ErrInvalidValue, rect)
		}
	}
	if rect[2] <= 0 || rect[3] <= 0 {
		return nil, fmt.Errorf("axes: %w: position %v has no area", gplot.ErrInvalidValue, rect)
	}

	a := &Axes{
		fig:        fig,
		origPos:    rect,
		frameOn:    o.frameOn,
		axisOn:     true,
		hold:       rcparams.Default().Bool("axes.hold"),
		adjustable: "box",
		anchor:     anchors["C"],
		handlers:   make(map[int]handler),
		fx:         transform.NewFunc(transform.IdentityFunc),
		fy:         transform.NewFunc(transform.IdentityFunc),
	}
	a.Init(a)
	a.SetFigure(fig)
	a.SetLabel(o.label)
	for i, v := range rect {
		a.pos[i] = bbox.NewValue(v)
	}

	a.box = figureBox(fig, a.pos)
	a.viewLim = bbox.UnitBbox()
	a.dataLim = bbox.UnitBbox()
	a.ignoreLim = true

	if s := o.sharex; s != nil {
		a.viewLim.ShareX(s.viewLim)
		a.dataLim.ShareX(s.dataLim)
		a.sharex = s
		s.xgroup = join(s.xgroup, s, a)
		a.xgroup = s.xgroup
		a.fx = s.fx
	}
	if s := o.sharey; s != nil {
		a.viewLim.ShareY(s.viewLim)
		a.dataLim.ShareY(s.dataLim)
		a.sharey = s
		s.ygroup = join(s.ygroup, s, a)
		a.ygroup = s.ygroup
		a.fy = s.fy
	}

	a.transData = transform.NewSeparable(a.viewLim, a.box, a.fx, a.fy)
	a.transAxes = transform.BboxTransform(bbox.UnitBbox(), a.box)
	a.xaxis = axis.NewXAxis(a, a.viewLim.IntervalX(), a.dataLim.IntervalX())
	a.yaxis = axis.NewYAxis(a, a.viewLim.IntervalY(), a.dataLim.IntervalY())
	a.Cla()
	return a, nil
}

// figureBox returns the display box of the position pos, given in
// fractions of the figure box. It follows changes of both.
func figureBox(fig Figure, pos [4]*bbox.Value) *bbox.Bbox {
	fx0, fy0, fx1, fy1 := fig.Bbox().Cells()
	fw, fh := bbox.Sub(fx1, fx0), bbox.Sub(fy1, fy0)
	l, b, w, h := pos[0], pos[1], pos[2], pos[3]
	return bbox.Lazy(
		bbox.Add(fx0, bbox.Mul(l, fw)),
		bbox.Add(fy0, bbox.Mul(b, fh)),
		bbox.Add(fx0, bbox.Mul(bbox.Add(l, w), fw)),
		bbox.Add(fy0, bbox.Mul(bbox.Add(b, h), fh)),
	)
}

// Fig returns the figure the axes lays itself out in.
func (a *Axes) Fig() Figure { return a.fig }

// TransData implements artist.Axes.
func (a *Axes) TransData() *transform.Separable { return a.transData }

// TransAxes implements artist.Axes.
func (a *Axes) TransAxes() *transform.Separable { return a.transAxes }

// Bbox returns the display box of the axes.
func (a *Axes) Bbox() *bbox.Bbox { return a.box }

// ViewLim returns the view limits in data coordinates.
func (a *Axes) ViewLim() *bbox.Bbox { return a.viewLim }

// DataLim returns the box of the data added so far.
func (a *Axes) DataLim() *bbox.Bbox { return a.dataLim }

// XAxis returns the x axis.
func (a *Axes) XAxis() *axis.XAxis { return a.xaxis }

// YAxis returns the y axis.
func (a *Axes) YAxis() *axis.YAxis { return a.yaxis }

// Title returns the title text.
func (a *Axes) Title() *text.Text { return a.title }

// SetTitle sets the title string.
func (a *Axes) SetTitle(s string) { a.title.SetText(s) }

// SetXLabel sets the x axis label.
func (a *Axes) SetXLabel(s string) { a.xaxis.SetLabelText(s) }

// SetYLabel sets the y axis label.
func (a *Axes) SetYLabel(s string) { a.yaxis.SetLabelText(s) }

// Background returns the patch filling the axes.
func (a *Axes) Background() *patches.Rectangle { return a.background }

// Frame returns the border line.
func (a *Axes) Frame() *lines.Line2D { return a.frame }

// FrameOn reports whether the background and frame are drawn.
func (a *Axes) FrameOn() bool { return a.frameOn }

// SetFrameOn sets whether the background and frame are drawn.
func (a *Axes) SetFrameOn(v bool) {
	a.frameOn = v
	a.PChanged()
}

// AxisOn reports whether the axis artists are drawn.
func (a *Axes) AxisOn() bool { return a.axisOn }

// Hold reports whether plot calls add to the axes rather than clear it
// first.
func (a *Axes) Hold() bool { return a.hold }

// SetHold sets the hold state.
func (a *Axes) SetHold(v bool) { a.hold = v }

// AutoscaleOn reports whether adding data rescales the view.
func (a *Axes) AutoscaleOn() bool { return a.autoscaleOn }

// SetAutoscaleOn sets whether adding data rescales the view.
func (a *Axes) SetAutoscaleOn(v bool) { a.autoscaleOn = v }

// SharedX returns the axes whose x limits this one uses, if any.
func (a *Axes) SharedX() *Axes { return a.sharex }

// SharedY returns the axes whose y limits this one uses, if any.
func (a *Axes) SharedY() *Axes { return a.sharey }

// Lines returns the lines in insertion order.
func (a *Axes) Lines() []*lines.Line2D { return a.lines }

// Patches returns the patches in insertion order.
func (a *Axes) Patches() []patches.Artist { return a.patches }

// Texts returns the texts in insertion order.
func (a *Axes) Texts() []artist.Artist { return a.texts }

// Collections returns the collections and contour sets.
func (a *Axes) Collections() []artist.Artist { return a.collections }

// Images returns the images.
func (a *Axes) Images() []*images.AxesImage { return a.images }

// Tables returns the tables.
func (a *Axes) Tables() []*table.Table { return a.tables }

// Artists returns the artists added with AddArtist.
func (a *Axes) Artists() []artist.Artist { return a.artists }

// Legend returns the legend, or nil.
func (a *Axes) Legend() *legend.Legend { return a.legend }

// Position returns the active position in figure fractions.
func (a *Axes) Position() [4]float64 {
	return [4]float64{a.pos[0].Get(), a.pos[1].Get(), a.pos[2].Get(), a.pos[3].Get()}
}

// OriginalPosition returns the position aspect adjustments start from.
func (a *Axes) OriginalPosition() [4]float64 { return a.origPos }

// SetPosition moves the axes. which is "both", "active" or "original".
func (a *Axes) SetPosition(pos [4]float64, which string) error {
	if pos[2] <= 0 || pos[3] <= 0 {
		return fmt.Errorf("axes: %w: position %v has no area", gplot.ErrInvalidValue, pos)
	}
	switch which {
	case "", "both":
		a.origPos = pos
		a.setActive(pos)
	case "active":
		a.setActive(pos)
	case "original":
		a.origPos = pos
	default:
		return fmt.Errorf("axes: %w: position kind %q", gplot.ErrInvalidValue, which)
	}
	return nil
}

func (a *Axes) setActive(pos [4]float64) {
	for i, v := range pos {
		a.pos[i].Set(v)
	}
}

// Cla clears the axes: it drops every child, resets the tickers, the
// title, the background and the frame, and turns autoscaling back on.
func (a *Axes) Cla() {
	rc := rcparams.Default()
	a.xaxis.Cla()
	a.yaxis.Cla()
	if a.sharex != nil {
		a.xaxis.ShareTickers(&a.sharex.xaxis.Axis)
		a.fx.SetType(a.sharex.fx.Type())
	} else {
		a.fx.SetType(transform.IdentityFunc)
	}
	if a.sharey != nil {
		a.yaxis.ShareTickers(&a.sharey.yaxis.Axis)
		a.fy.SetType(a.sharey.fy.Type())
	} else {
		a.fy.SetType(transform.IdentityFunc)
	}
	for _, ax := range []*axis.Axis{&a.xaxis.Axis, &a.yaxis.Axis} {
		ax.SetFigure(a.fig)
	}

	a.lines = nil
	a.patches = nil
	a.texts = nil
	a.collections = nil
	a.images = nil
	a.tables = nil
	a.artists = nil
	a.legend = nil
	a.autoscaleOn = true
	a.ignoreLim = true
	a.minPosX, a.minPosY = math.Inf(1), math.Inf(1)
	a.xlimSet, a.ylimSet = false, false
	a.cycle = rc.Strings("axes.color_cycle")
	a.cycleIdx = 0
	if a.sharex == nil && a.xgroup == nil {
		a.viewLim.IntervalX().SetBounds(0, 1)
	}
	if a.sharey == nil && a.ygroup == nil {
		a.viewLim.IntervalY().SetBounds(0, 1)
	}

	a.title = text.New(0.5, 1.05, "")
	_ = a.title.SetFontSize(rc.Float("axes.titlesize"))
	a.title.SetHAlign(text.Center)
	a.title.SetVAlign(text.Baseline)
	a.setAxesProps(&a.title.Base)
	a.title.SetClipOn(false)

	a.background = patches.NewRectangle(0, 0, 1, 1)
	_ = a.background.SetFaceColor(rc.Color("axes.facecolor"))
	_ = a.background.SetEdgeColor(colors.Transparent)
	a.background.SetLineWidth(0)
	a.setAxesProps(&a.background.Base)
	a.background.SetClipOn(false)

	// The frame polyline cannot fail: both slices have five points.
	a.frame, _ = lines.New([]float64{0, 1, 1, 0, 0}, []float64{0, 0, 1, 1, 0})
	_ = a.frame.SetColor(rc.Color("axes.edgecolor"))
	a.frame.SetLineWidth(rc.Float("axes.linewidth"))
	_ = a.frame.SetSolidJoinStyle("miter")
	a.frame.SetZOrder(2.5)
	a.setAxesProps(&a.frame.Base)
	a.frame.SetClipOn(false)
	a.PChanged()
}

// setAxesProps binds a decoration to the unit square of the axes.
func (a *Axes) setAxesProps(b *artist.Base) {
	b.SetFigure(a.fig)
	b.SetAxes(a)
	b.SetTransform(a.transAxes)
}

// transformSetter finds overrides of Base.SetTransform, such as the one
// of a contour set propagating to its collections.
type transformSetter interface {
	SetTransform(transform.Transform)
}

// setArtistProps attaches a child: figure, axes, the data transform
// unless the child has its own, and the axes clip box.
func (a *Axes) setArtistProps(x artist.Artist) {
	b := x.ArtistBase()
	b.SetFigure(a.fig)
	b.SetAxes(a)
	if !b.IsTransformSet() {
		if ts, ok := x.(transformSetter); ok {
			ts.SetTransform(a.transData)
		} else {
			b.SetTransform(a.transData)
		}
	}
	if b.ClipBox() == nil {
		b.SetClipBox(a.box)
	}
}

// toData maps points given in the coordinates of t into data
// coordinates. Points that cannot be inverted are dropped.
func (a *Axes) toData(t transform.Transform, pts []gplot.Point) []gplot.Point {
	if t == transform.Transform(a.transData) {
		return pts
	}
	out := make([]gplot.Point, 0, len(pts))
	for _, d := range t.SeqXYTups(pts) {
		x, y, err := a.transData.InverseXY(d.X, d.Y)
		if err != nil {
			continue
		}
		out = append(out, gplot.Pt(x, y))
	}
	return out
}

// updateDataLim grows the data limits to include the finite points.
// The first update after a clear replaces the unit box.
func (a *Axes) updateDataLim(pts []gplot.Point) {
	xs := make([]float64, 0, len(pts))
	ys := make([]float64, 0, len(pts))
	for _, p := range pts {
		if !p.IsFinite() {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
		if p.X > 0 {
			a.minPosX = math.Min(a.minPosX, p.X)
		}
		if p.Y > 0 {
			a.minPosY = math.Min(a.minPosY, p.Y)
		}
	}
	if len(xs) == 0 {
		return
	}
	a.dataLim.Update(xs, ys, a.ignoreLim)
	a.ignoreLim = false
	if !math.IsInf(a.minPosX, 1) {
		a.xaxis.SetMinPositive(a.minPosX)
	}
	if !math.IsInf(a.minPosY, 1) {
		a.yaxis.SetMinPositive(a.minPosY)
	}
}

// AddLine attaches l and grows the data limits by its unmasked points.
// Lines in other coordinates are mapped into data coordinates first.
func (a *Axes) AddLine(l *lines.Line2D) {
	a.setArtistProps(l)
	xs, ys := l.ValidData()
	pts := make([]gplot.Point, len(xs))
	for i := range xs {
		pts[i] = gplot.Pt(xs[i], ys[i])
	}
	a.updateDataLim(a.toData(l.Transform(), pts))
	if l.Label() == "" {
		l.SetLabel(fmt.Sprintf("_line%d", len(a.lines)))
	}
	a.lines = append(a.lines, l)
}

// AddPatch attaches p and grows the data limits by its outline.
func (a *Axes) AddPatch(p patches.Artist) {
	a.setArtistProps(p)
	a.updateDataLim(a.toData(p.ArtistBase().Transform(), p.Verts()))
	a.patches = append(a.patches, p)
}

type dataVerter interface {
	DataVerts(transData transform.Transform) []gplot.Point
}

type dataBounder interface {
	DataBounds() (x0, y0, x1, y1 float64)
}

// AddCollection attaches c. With autolim set the data limits grow by the
// points the collection reports for them.
func (a *Axes) AddCollection(c artist.Artist, autolim bool) {
	a.setArtistProps(c)
	if c.ArtistBase().Label() == "" {
		c.ArtistBase().SetLabel(fmt.Sprintf("_collection%d", len(a.collections)))
	}
	a.collections = append(a.collections, c)
	if !autolim {
		return
	}
	switch v := c.(type) {
	case dataVerter:
		a.updateDataLim(v.DataVerts(a.transData))
	case dataBounder:
		x0, y0, x1, y1 := v.DataBounds()
		a.updateDataLim([]gplot.Point{gplot.Pt(x0, y0), gplot.Pt(x1, y1)})
	}
}

// AddImage attaches im and grows the data limits by its extent.
func (a *Axes) AddImage(im *images.AxesImage) {
	a.setArtistProps(im)
	x0, y0, x1, y1 := im.DataBounds()
	a.updateDataLim([]gplot.Point{gplot.Pt(x0, y0), gplot.Pt(x1, y1)})
	a.images = append(a.images, im)
}

// AddText attaches t. Texts never change the data limits.
func (a *Axes) AddText(t artist.Artist) {
	a.setArtistProps(t)
	a.texts = append(a.texts, t)
}

// AddTable attaches t. The table lays itself out in axes coordinates.
func (a *Axes) AddTable(t *table.Table) {
	t.SetFigure(a.fig)
	t.SetAxes(a)
	a.tables = append(a.tables, t)
}

// AddArtist attaches any other artist.
func (a *Axes) AddArtist(x artist.Artist) {
	a.setArtistProps(x)
	a.artists = append(a.artists, x)
}

// prepare clears the axes before a plot call when hold is off.
func (a *Axes) prepare() {
	if !a.hold {
		a.Cla()
	}
}

// nextColor returns the next color of the axes.color_cycle rc param.
func (a *Axes) nextColor() string {
	if len(a.cycle) == 0 {
		return "b"
	}
	c := a.cycle[a.cycleIdx%len(a.cycle)]
	a.cycleIdx++
	return c
}

// SetColorCycle replaces the color cycle and restarts it.
func (a *Axes) SetColorCycle(cs []string) error {
	for _, c := range cs {
		if _, err := colors.ToRGBA(c); err != nil {
			return fmt.Errorf("axes: %w", err)
		}
	}
	a.cycle = append([]string(nil), cs...)
	a.cycleIdx = 0
	return nil
}

// Text adds a text at (x, y) in data coordinates and applies the
// property pairs kv.
func (a *Axes) Text(x, y float64, s string, kv ...any) (*text.Text, error) {
	t := text.New(x, y, s)
	if err := artist.Setp(t, kv...); err != nil {
		return nil, fmt.Errorf("axes: text: %w", err)
	}
	a.AddText(t)
	return t, nil
}

// Grid shows or hides the major gridlines of both axes.
func (a *Axes) Grid(on bool) {
	a.xaxis.Grid(on, "major")
	a.yaxis.Grid(on, "major")
}

// visibleHandles returns the children a legend lists by default: those
// whose label does not start with an underscore.
func (a *Axes) visibleHandles() ([]artist.Artist, []string) {
	var hs []artist.Artist
	var ls []string
	add := func(x artist.Artist) {
		lbl := x.ArtistBase().Label()
		if lbl == "" || strings.HasPrefix(lbl, "_") {
			return
		}
		hs = append(hs, x)
		ls = append(ls, lbl)
	}
	for _, l := range a.lines {
		add(l)
	}
	for _, p := range a.patches {
		add(p)
	}
	for _, c := range a.collections {
		add(c)
	}
	return hs, ls
}

// AutoLegend places a legend listing every labelled line, patch and
// collection.
func (a *Axes) AutoLegend(loc any) (*legend.Legend, error) {
	hs, ls := a.visibleHandles()
	return a.SetLegend(hs, ls, loc)
}

// SetLegend places a legend for handles labelled by labels at loc, a
// location code or name. With loc "best" the legend avoids the line
// vertices and patches of the axes.
func (a *Axes) SetLegend(handles []artist.Artist, labels []string, loc any) (*legend.Legend, error) {
	if loc == nil {
		loc = rcparams.Default().String("legend.loc")
	}
	l, err := legend.New(a.transAxes, handles, labels, loc)
	if err != nil {
		return nil, fmt.Errorf("axes: %w", err)
	}
	l.SetFigure(a.fig)
	l.SetAxes(a)
	l.SetObstacles(a.obstacles)
	a.legend = l
	return l, nil
}

// obstacles returns the display vertices of the lines and the display
// boxes of the patches, for legend placement.
func (a *Axes) obstacles() ([]gplot.Point, []*bbox.Bbox) {
	var pts []gplot.Point
	for _, l := range a.lines {
		xs, ys := l.ValidData()
		for i := range xs {
			x, y := l.Transform().XY(xs[i], ys[i])
			pts = append(pts, gplot.Pt(x, y))
		}
	}
	var boxes []*bbox.Bbox
	for _, p := range a.patches {
		d := p.ArtistBase().Transform().SeqXYTups(p.Verts())
		if len(d) == 0 {
			continue
		}
		b := bbox.FromExtents(d[0].X, d[0].Y, d[0].X, d[0].Y)
		b.UpdatePoints(d, true)
		boxes = append(boxes, b)
	}
	return pts, boxes
}
