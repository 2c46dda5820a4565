// Package contour traces level lines and filled level bands of a gridded
// field.
//
// Every grid cell is split into two triangles and the field is taken as
// linear on each, so every level crossing is unambiguous. Lines are the
// crossings chained across shared triangle edges; bands are the
// triangles clipped between two levels.
package contour

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/collections"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/text"
	"github.com/gogpu/gplot/transform"
)

// DefaultLevels is the number of automatic levels.
const DefaultLevels = 7

// Options configures a ContourSet.
type Options struct {
	// Levels are explicit contour levels, sorted ascending. When nil, N
	// levels are spread over the range of Z.
	Levels []float64
	N      int
	// Filled draws bands between consecutive levels instead of lines.
	Filled bool
	// Colors is one color or a list cycled over the levels. When nil the
	// levels are colored through Cmap.
	Colors any
	Cmap   any
	Alpha  float64
	// LineWidths are in points, cycled over the levels.
	LineWidths []float64
}

// ContourSet is the artist holding one collection per level or band.
type ContourSet struct {
	artist.Base

	grid   *Grid
	levels []float64
	layers []float64
	filled bool
	alpha  float64

	sm      *colors.ScalarMappable
	artists []artist.Artist
	labels  []*label
}

type label struct {
	*text.Text
	line []gplot.Point
	at   int
}

// New traces g per opts.
func New(g *Grid, opts Options) (*ContourSet, error) {
	zmin, zmax, err := g.ZRange()
	if err != nil {
		return nil, err
	}
	cs := &ContourSet{grid: g, filled: opts.Filled, alpha: opts.Alpha}
	if cs.alpha == 0 {
		cs.alpha = 1
	}
	cs.Init(cs)
	if err := cs.setLevels(opts, zmin, zmax); err != nil {
		return nil, err
	}

	cs.sm = colors.NewScalarMappable(colors.NewNormalize(cs.levels[0], cs.levels[len(cs.levels)-1], false), nil)
	if opts.Cmap != nil {
		cm, err := toCmap(opts.Cmap)
		if err != nil {
			return nil, err
		}
		cs.sm.SetCmap(cm)
	}
	cs.sm.SetArray(cs.layers)

	var fixed []colors.RGBA
	if opts.Colors != nil {
		fixed, err = toColorList(opts.Colors)
		if err != nil {
			return nil, err
		}
	}
	layerColors := cs.sm.ToRGBA(cs.layers, cs.alpha)
	for i := range layerColors {
		if len(fixed) > 0 {
			layerColors[i] = fixed[i%len(fixed)].WithAlpha(cs.alpha)
		}
	}

	negStyle := "-"
	if rcparams.Default().String("contour.negative_linestyle") == "dashed" {
		negStyle = "--"
	}
	for i := range cs.layers {
		var a artist.Artist
		if cs.filled {
			pc := collections.NewPolyCollection(g.Bands(cs.levels[i], cs.levels[i+1]))
			_ = pc.SetFaceColors(layerColors[i])
			_ = pc.SetEdgeColors("none")
			pc.SetLineWidths(0)
			a = pc
		} else {
			lc := collections.NewLineCollection(g.Lines(cs.levels[i]))
			_ = lc.SetEdgeColors(layerColors[i])
			if len(opts.LineWidths) > 0 {
				lc.SetLineWidths(opts.LineWidths[i%len(opts.LineWidths)])
			}
			if len(fixed) == 1 && cs.levels[i] < 0 {
				_ = lc.SetLineStyles(negStyle)
			}
			a = lc
		}
		cs.artists = append(cs.artists, a)
	}
	gplot.Logger().Debug("contour traced", "levels", len(cs.levels), "filled", cs.filled)
	return cs, nil
}

func (cs *ContourSet) setLevels(opts Options, zmin, zmax float64) error {
	if opts.Levels != nil {
		if !slices.IsSorted(opts.Levels) || len(opts.Levels) == 0 {
			return fmt.Errorf("contour: %w: levels must be increasing", gplot.ErrInvalidValue)
		}
		if cs.filled && len(opts.Levels) < 2 {
			return fmt.Errorf("contour: %w: filled contours need two levels", gplot.ErrInvalidValue)
		}
		cs.levels = slices.Clone(opts.Levels)
	} else {
		n := opts.N
		if n <= 0 {
			n = DefaultLevels
		}
		if zmin == zmax {
			zmin, zmax = zmin-1, zmax+1
		}
		all := floats.Span(make([]float64, n+2), zmin, zmax)
		if cs.filled {
			cs.levels = all
		} else {
			cs.levels = all[1 : n+1]
		}
	}
	if cs.filled {
		for i := 0; i+1 < len(cs.levels); i++ {
			cs.layers = append(cs.layers, (cs.levels[i]+cs.levels[i+1])/2)
		}
	} else {
		cs.layers = slices.Clone(cs.levels)
	}
	return nil
}

func toCmap(v any) (*colors.Colormap, error) {
	switch m := v.(type) {
	case *colors.Colormap:
		return m, nil
	case string:
		cm, err := colors.Get(m)
		if err != nil {
			return nil, fmt.Errorf("contour: %w", err)
		}
		return cm, nil
	}
	return nil, fmt.Errorf("contour: %w: colormap %T", gplot.ErrInvalidValue, v)
}

func toColorList(v any) ([]colors.RGBA, error) {
	switch x := v.(type) {
	case []any:
		cs, err := colors.ToRGBAArray(x)
		if err != nil {
			return nil, fmt.Errorf("contour: %w", err)
		}
		return cs, nil
	case []string:
		out := make([]colors.RGBA, len(x))
		for i, s := range x {
			c, err := colors.ToRGBA(s)
			if err != nil {
				return nil, fmt.Errorf("contour: %w", err)
			}
			out[i] = c
		}
		return out, nil
	case []colors.RGBA:
		return x, nil
	}
	c, err := colors.ToRGBA(v)
	if err != nil {
		return nil, fmt.Errorf("contour: %w", err)
	}
	return []colors.RGBA{c}, nil
}

// Levels returns the contour levels.
func (cs *ContourSet) Levels() []float64 { return cs.levels }

// Layers returns the values the colors are mapped from: the levels for
// lines, band midpoints for filled contours.
func (cs *ContourSet) Layers() []float64 { return cs.layers }

// Filled reports whether the set holds bands.
func (cs *ContourSet) Filled() bool { return cs.filled }

// Mappable returns the norm and colormap of the layers.
func (cs *ContourSet) Mappable() *colors.ScalarMappable { return cs.sm }

// Collections returns one collection per layer.
func (cs *ContourSet) Collections() []artist.Artist { return cs.artists }

// Grid returns the traced grid.
func (cs *ContourSet) Grid() *Grid { return cs.grid }

// DataBounds returns the extent of the grid.
func (cs *ContourSet) DataBounds() (x0, y0, x1, y1 float64) { return cs.grid.Bounds() }

// SetTransform sets the transform of every collection and label.
func (cs *ContourSet) SetTransform(t transform.Transform) {
	cs.Base.SetTransform(t)
	for _, a := range cs.artists {
		a.ArtistBase().SetTransform(t)
	}
	for _, l := range cs.labels {
		l.SetTransform(t)
	}
}

// propagate copies the clip, z-order and figure of the set onto its
// collections.
func (cs *ContourSet) propagate() {
	for _, a := range cs.artists {
		b := a.ArtistBase()
		b.SetClipBox(cs.ClipBox())
		b.SetClipOn(cs.ClipOn())
		b.SetZOrder(cs.ZOrder())
		b.SetFigure(cs.Figure())
	}
}

// LabelOptions configures Clabel.
type LabelOptions struct {
	FontSize float64
	// Fmt is a printf verb applied to the level; "%1.3f" by default.
	Fmt string
	// Colors overrides the label color; the level color is used when nil.
	Colors any
}

// Clabel labels the longest line of every level at its middle vertex.
// The label follows the line direction on screen.
func (cs *ContourSet) Clabel(opts LabelOptions) ([]*text.Text, error) {
	if cs.filled {
		return nil, fmt.Errorf("contour: %w: labels need line contours", gplot.ErrInvalidValue)
	}
	if opts.Fmt == "" {
		opts.Fmt = "%1.3f"
	}
	if opts.FontSize == 0 {
		opts.FontSize = 10
	}
	var fixed []colors.RGBA
	if opts.Colors != nil {
		var err error
		if fixed, err = toColorList(opts.Colors); err != nil {
			return nil, err
		}
	}
	cs.labels = cs.labels[:0]
	var out []*text.Text
	for i, a := range cs.artists {
		lc := a.(*collections.LineCollection)
		var longest []gplot.Point
		for _, seg := range lc.Segments() {
			if len(seg) > len(longest) {
				longest = seg
			}
		}
		if len(longest) < 3 {
			continue
		}
		at := len(longest) / 2
		t := text.New(longest[at].X, longest[at].Y, fmt.Sprintf(opts.Fmt, cs.levels[i]))
		_ = t.SetFontSize(opts.FontSize)
		t.SetHAlign(text.Center)
		t.SetVAlign(text.Middle)
		col := lc.EdgeColors()
		if len(fixed) > 0 {
			_ = t.SetColor(fixed[i%len(fixed)])
		} else if len(col) > 0 {
			_ = t.SetColor(col[0])
		}
		if cs.IsTransformSet() {
			t.SetTransform(cs.Transform())
		}
		cs.labels = append(cs.labels, &label{Text: t, line: longest, at: at})
		out = append(out, t)
	}
	return out, nil
}

// rotate turns a label along its line in display space, kept upright.
func (l *label) rotate() {
	tr := l.Transform()
	a := l.line[max(0, l.at-1)]
	b := l.line[min(len(l.line)-1, l.at+1)]
	ax, ay := tr.XY(a.X, a.Y)
	bx, by := tr.XY(b.X, b.Y)
	deg := math.Atan2(by-ay, bx-ax) * 180 / math.Pi
	if deg > 90 {
		deg -= 180
	} else if deg < -90 {
		deg += 180
	}
	_ = l.SetRotation(deg)
}

// Schema implements artist.Artist.
func (cs *ContourSet) Schema() *artist.Schema { return artist.BaseSchema }

// Draw implements artist.Artist.
func (cs *ContourSet) Draw(r backend.Renderer) error {
	if !cs.Visible() {
		return nil
	}
	r.OpenGroup("contour")
	defer r.CloseGroup("contour")
	cs.propagate()
	for _, a := range cs.artists {
		if err := a.Draw(r); err != nil {
			return err
		}
	}
	for _, l := range cs.labels {
		l.rotate()
		if err := l.Draw(r); err != nil {
			return err
		}
	}
	return nil
}
