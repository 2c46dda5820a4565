// Package figure implements the top-level container: a page of a given
// size and resolution holding axes, figure texts and legends.
//
// The display box of a figure is a lazy product of its size in inches and
// its dpi, so changing either resizes every axes and child without
// rebuilding transforms. Saving renders through the backend registry:
//
//	import _ "github.com/gogpu/gplot/backend/all"
//
//	fig, _ := figure.New(figure.WithSize(6, 4))
//	ax, _ := fig.AddSubplot(1, 1, 1)
//	ax.Plot(nil, ys, "r-")
//	err := fig.SaveFig("out.png", figure.SaveOptions{DPI: 100})
package figure

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/axes"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/legend"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/text"
	"github.com/gogpu/gplot/transform"
)

// Axes is a plotting region the figure lays out and draws: an
// *axes.Axes or an *axes.PolarAxes.
type Axes interface {
	artist.Artist
	Bbox() *bbox.Bbox
}

// Option configures a Figure during creation.
type Option func(*options)

type options struct {
	width, height float64
	dpi           float64
	face, edge    any
	frameOn       bool
}

// WithSize sets the page size in inches. The default is the
// figure.figsize rc param.
func WithSize(w, h float64) Option {
	return func(o *options) { o.width, o.height = w, h }
}

// WithDPI sets the resolution. The default is figure.dpi.
func WithDPI(dpi float64) Option {
	return func(o *options) { o.dpi = dpi }
}

// WithFaceColor sets the page background.
func WithFaceColor(c any) Option {
	return func(o *options) { o.face = c }
}

// WithEdgeColor sets the page border.
func WithEdgeColor(c any) Option {
	return func(o *options) { o.edge = c }
}

// WithFrame sets whether the page background is drawn.
func WithFrame(on bool) Option {
	return func(o *options) { o.frameOn = on }
}

// SubplotParams place the grid of AddSubplot axes, in figure fractions.
// WSpace and HSpace are the gaps between cells as fractions of the mean
// cell width and height.
type SubplotParams struct {
	Left, Right, Bottom, Top float64
	WSpace, HSpace           float64
}

// DefaultSubplotParams returns the figure.subplot.* rc params.
func DefaultSubplotParams() SubplotParams {
	rc := rcparams.Default()
	return SubplotParams{
		Left:   rc.Float("figure.subplot.left"),
		Right:  rc.Float("figure.subplot.right"),
		Bottom: rc.Float("figure.subplot.bottom"),
		Top:    rc.Float("figure.subplot.top"),
		WSpace: rc.Float("figure.subplot.wspace"),
		HSpace: rc.Float("figure.subplot.hspace"),
	}
}

func (p SubplotParams) validate() error {
	if p.Left >= p.Right {
		return fmt.Errorf("%w: subplot left %g >= right %g", gplot.ErrInvalidValue, p.Left, p.Right)
	}
	if p.Bottom >= p.Top {
		return fmt.Errorf("%w: subplot bottom %g >= top %g", gplot.ErrInvalidValue, p.Bottom, p.Top)
	}
	if p.WSpace < 0 || p.HSpace < 0 {
		return fmt.Errorf("%w: subplot spacing (%g, %g)", gplot.ErrInvalidValue, p.WSpace, p.HSpace)
	}
	return nil
}

// position returns the rectangle of cell num, counted from 1 along rows
// from the top left.
func (p SubplotParams) position(rows, cols, num int) [4]float64 {
	w := (p.Right - p.Left) / (float64(cols) + p.WSpace*float64(cols-1))
	h := (p.Top - p.Bottom) / (float64(rows) + p.HSpace*float64(rows-1))
	row, col := (num-1)/cols, (num-1)%cols
	left := p.Left + float64(col)*(w+p.WSpace*w)
	bottom := p.Top - float64(row+1)*h - float64(row)*p.HSpace*h
	return [4]float64{left, bottom, w, h}
}

type subplotKey struct {
	rows, cols, num int
	label           string
}

type rectKey struct {
	rect  [4]float64
	label string
}

// Figure is the top-level artist.
type Figure struct {
	artist.Base

	width, height *bbox.Value
	dpi           *bbox.Value
	box           *bbox.Bbox
	transFigure   *transform.Separable
	patch         *patches.Rectangle
	frameOn       bool

	axes     []Axes
	current  *axes.Axes
	byRect   map[rectKey]*axes.Axes
	subplots map[*axes.Axes]subplotKey
	params   SubplotParams

	texts   []*text.Text
	legends []*legend.Legend

	observers map[int]func(*Figure)
	nextObs   int
}

// New returns an empty figure.
func New(opts ...Option) (*Figure, error) {
	rc := rcparams.Default()
	size := rc.Floats("figure.figsize")
	o := options{
		width:   size[0],
		height:  size[1],
		dpi:     rc.Float("figure.dpi"),
		face:    rc.Color("figure.facecolor"),
		edge:    rc.Color("figure.edgecolor"),
		frameOn: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkSize(o.width, o.height); err != nil {
		return nil, err
	}
	if !(o.dpi > 0) || math.IsInf(o.dpi, 0) {
		return nil, fmt.Errorf("figure: %w: dpi %g", gplot.ErrInvalidValue, o.dpi)
	}

	f := &Figure{
		width:     bbox.NewValue(o.width),
		height:    bbox.NewValue(o.height),
		dpi:       bbox.NewValue(o.dpi),
		frameOn:   o.frameOn,
		byRect:    make(map[rectKey]*axes.Axes),
		subplots:  make(map[*axes.Axes]subplotKey),
		params:    DefaultSubplotParams(),
		observers: make(map[int]func(*Figure)),
	}
	f.Init(f)
	f.SetFigure(f)
	f.box = bbox.Lazy(bbox.Const(0), bbox.Const(0), bbox.Mul(f.width, f.dpi), bbox.Mul(f.height, f.dpi))
	f.transFigure = transform.BboxTransform(bbox.UnitBbox(), f.box)

	f.patch = patches.NewRectangle(0, 0, 1, 1)
	if err := f.patch.SetFaceColor(o.face); err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	if err := f.patch.SetEdgeColor(o.edge); err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	f.patch.SetTransform(f.transFigure)
	f.patch.SetFigure(f)
	f.patch.SetClipOn(false)
	return f, nil
}

func checkSize(w, h float64) error {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return fmt.Errorf("figure: %w: size %gx%g inches", gplot.ErrInvalidValue, w, h)
	}
	return nil
}

// DPI implements artist.Figure.
func (f *Figure) DPI() float64 { return f.dpi.Get() }

// SetDPI changes the resolution. The display box scales with it.
func (f *Figure) SetDPI(dpi float64) error {
	if !(dpi > 0) || math.IsInf(dpi, 0) {
		return fmt.Errorf("figure: %w: dpi %g", gplot.ErrInvalidValue, dpi)
	}
	f.dpi.Set(dpi)
	f.PChanged()
	return nil
}

// Bbox returns the display box: (0, 0) to the size in pixels.
func (f *Figure) Bbox() *bbox.Bbox { return f.box }

// TransFigure maps figure fractions to display coordinates.
func (f *Figure) TransFigure() *transform.Separable { return f.transFigure }

// SizeInches returns the page size.
func (f *Figure) SizeInches() (w, h float64) { return f.width.Get(), f.height.Get() }

// SetSizeInches resizes the page. Axes keep their fractional positions.
func (f *Figure) SetSizeInches(w, h float64) error {
	if err := checkSize(w, h); err != nil {
		return err
	}
	f.width.Set(w)
	f.height.Set(h)
	f.PChanged()
	return nil
}

// Patch returns the page background rectangle.
func (f *Figure) Patch() *patches.Rectangle { return f.patch }

// FrameOn reports whether the page background is drawn.
func (f *Figure) FrameOn() bool { return f.frameOn }

// SetFrameOn sets whether the page background is drawn.
func (f *Figure) SetFrameOn(v bool) { f.frameOn = v }

// Axes returns the axes in the order they were added.
func (f *Figure) Axes() []Axes { return f.axes }

// Texts returns the figure texts.
func (f *Figure) Texts() []*text.Text { return f.texts }

// Legends returns the figure legends.
func (f *Figure) Legends() []*legend.Legend { return f.legends }

// CurrentAxes returns the axes most recently added or returned by
// AddAxes or AddSubplot, or nil.
func (f *Figure) CurrentAxes() *axes.Axes { return f.current }

// AddAxes adds an axes at rect, in figure fractions. When an axes with
// the same rect and label exists it is returned instead and becomes
// current; use axes.WithLabel to get distinct axes over one rect.
func (f *Figure) AddAxes(rect [4]float64, opts ...axes.Option) (*axes.Axes, error) {
	a, err := axes.New(f, rect, opts...)
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	key := rectKey{rect: rect, label: a.Label()}
	if old, ok := f.byRect[key]; ok {
		f.current = old
		return old, nil
	}
	f.byRect[key] = a
	f.add(a)
	f.current = a
	return a, nil
}

// AddSubplot adds the axes of cell num of a rows by cols grid laid out
// by the subplot params. Cells count from 1 along rows from the top
// left. Asking for an existing cell returns its axes.
func (f *Figure) AddSubplot(rows, cols, num int, opts ...axes.Option) (*axes.Axes, error) {
	if rows < 1 || cols < 1 || num < 1 || num > rows*cols {
		return nil, fmt.Errorf("figure: %w: subplot (%d, %d, %d)", gplot.ErrInvalidValue, rows, cols, num)
	}
	a, err := axes.New(f, f.params.position(rows, cols, num), opts...)
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	key := subplotKey{rows: rows, cols: cols, num: num, label: a.Label()}
	for old, k := range f.subplots {
		if k == key {
			f.current = old
			return old, nil
		}
	}
	f.subplots[a] = key
	f.add(a)
	f.current = a
	return a, nil
}

// AddPolar adds polar axes at rect.
func (f *Figure) AddPolar(rect [4]float64) (*axes.PolarAxes, error) {
	p, err := axes.NewPolar(f, rect)
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	f.add(p)
	return p, nil
}

// Twinx adds an axes sharing the x limits of a with its y axis on the
// right.
func (f *Figure) Twinx(a *axes.Axes) (*axes.Axes, error) {
	t, err := a.Twinx()
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	f.add(t)
	f.current = t
	return t, nil
}

// Twiny adds an axes sharing the y limits of a with its x axis on top.
func (f *Figure) Twiny(a *axes.Axes) (*axes.Axes, error) {
	t, err := a.Twiny()
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	f.add(t)
	f.current = t
	return t, nil
}

func (f *Figure) add(a Axes) {
	a.ArtistBase().SetFigure(f)
	f.axes = append(f.axes, a)
	f.notify()
}

// SubplotParams returns the current subplot layout.
func (f *Figure) SubplotParams() SubplotParams { return f.params }

// SubplotsAdjust changes the subplot layout and moves every subplot
// already added.
func (f *Figure) SubplotsAdjust(p SubplotParams) error {
	if err := p.validate(); err != nil {
		return fmt.Errorf("figure: %w", err)
	}
	f.params = p
	for a, k := range f.subplots {
		if err := a.SetPosition(p.position(k.rows, k.cols, k.num), "both"); err != nil {
			return fmt.Errorf("figure: %w", err)
		}
	}
	f.PChanged()
	return nil
}

// Delaxes removes a. Unknown axes are ignored.
func (f *Figure) Delaxes(a Axes) {
	i := slices.Index(f.axes, a)
	if i < 0 {
		return
	}
	f.axes = slices.Delete(f.axes, i, i+1)
	if ax, ok := a.(*axes.Axes); ok {
		delete(f.subplots, ax)
		for k, v := range f.byRect {
			if v == ax {
				delete(f.byRect, k)
			}
		}
		if f.current == ax {
			f.current = nil
		}
	}
	f.notify()
}

// Clf removes every axes, text and legend.
func (f *Figure) Clf() {
	f.axes = nil
	f.current = nil
	clear(f.byRect)
	clear(f.subplots)
	f.texts = nil
	f.legends = nil
	f.notify()
}

// AddAxObserver registers fn to run whenever axes are added or removed
// and returns an id for RemoveAxObserver.
func (f *Figure) AddAxObserver(fn func(*Figure)) int {
	f.nextObs++
	f.observers[f.nextObs] = fn
	return f.nextObs
}

// RemoveAxObserver removes an observer. Unknown ids are ignored.
func (f *Figure) RemoveAxObserver(id int) { delete(f.observers, id) }

func (f *Figure) notify() {
	for id := 1; id <= f.nextObs; id++ {
		if fn, ok := f.observers[id]; ok {
			fn(f)
		}
	}
}

// Text adds a text at (x, y) in figure fractions and applies the
// property pairs kv.
func (f *Figure) Text(x, y float64, s string, kv ...any) (*text.Text, error) {
	t := text.New(x, y, s)
	t.SetTransform(f.transFigure)
	t.SetFigure(f)
	if err := artist.Setp(t, kv...); err != nil {
		return nil, fmt.Errorf("figure: text: %w", err)
	}
	f.texts = append(f.texts, t)
	return t, nil
}

// Legend places a legend for handles, which may come from any axes,
// relative to the whole page.
func (f *Figure) Legend(handles []artist.Artist, labels []string, loc any) (*legend.Legend, error) {
	if loc == nil {
		loc = rcparams.Default().String("legend.loc")
	}
	l, err := legend.New(f.transFigure, handles, labels, loc)
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	l.SetFigure(f)
	f.legends = append(f.legends, l)
	return l, nil
}

// Schema implements artist.Artist.
func (f *Figure) Schema() *artist.Schema { return artist.BaseSchema }

// Draw renders the background, then every axes in z-order, then the
// figure texts and legends.
func (f *Figure) Draw(r backend.Renderer) error {
	if !f.Visible() {
		return nil
	}
	r.OpenGroup("figure")
	defer r.CloseGroup("figure")
	if err := f.transFigure.Freeze(); err != nil {
		return fmt.Errorf("figure: draw: %w", err)
	}
	defer f.transFigure.Thaw()

	if f.frameOn {
		if err := f.patch.Draw(r); err != nil {
			return fmt.Errorf("figure: draw: %w", err)
		}
	}
	children := make([]artist.Artist, 0, len(f.axes))
	for _, a := range f.axes {
		children = append(children, a)
	}
	if err := artist.DrawAll(r, children); err != nil {
		return err
	}
	children = children[:0]
	for _, t := range f.texts {
		children = append(children, t)
	}
	for _, l := range f.legends {
		children = append(children, l)
	}
	if err := artist.DrawAll(r, children); err != nil {
		return err
	}
	gplot.Logger().Debug("figure: drawn", "axes", len(f.axes), "texts", len(f.texts))
	return nil
}
