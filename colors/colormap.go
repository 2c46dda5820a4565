package colors

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gogpu/gplot"
)

// Segment is one breakpoint of a linear-segmented channel: at X the
// channel approaches Y0 from the left and leaves with Y1 to the right.
type Segment struct {
	X, Y0, Y1 float64
}

// Channel describes one color channel, either as breakpoints or as a
// function of x in [0, 1]. Func wins when both are set.
type Channel struct {
	Segments []Segment
	Func     func(x float64) float64
}

// SegmentData holds the red, green and blue channels of a colormap.
type SegmentData struct {
	Red, Green, Blue Channel
}

// Colormap maps [0, 1] to colors through an N-entry lookup table. Values
// below 0 take the under color, values above 1 the over color, and NaN the
// bad color.
type Colormap struct {
	name string
	lut  []RGBA

	under, over, bad          RGBA
	underSet, overSet, badSet bool
}

// NewLinearSegmented samples data at n points.
func NewLinearSegmented(name string, data SegmentData, n int) (*Colormap, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: colormap needs at least 2 entries, got %d", gplot.ErrInvalidValue, n)
	}
	r, err := sampleChannel(data.Red, n)
	if err != nil {
		return nil, fmt.Errorf("colormap %s red: %w", name, err)
	}
	g, err := sampleChannel(data.Green, n)
	if err != nil {
		return nil, fmt.Errorf("colormap %s green: %w", name, err)
	}
	b, err := sampleChannel(data.Blue, n)
	if err != nil {
		return nil, fmt.Errorf("colormap %s blue: %w", name, err)
	}
	lut := make([]RGBA, n)
	for i := range lut {
		lut[i] = RGB(r[i], g[i], b[i])
	}
	return &Colormap{name: name, lut: lut}, nil
}

// NewListed builds a colormap directly from a list of colors.
func NewListed(name string, list []RGBA) *Colormap {
	return &Colormap{name: name, lut: slices.Clone(list)}
}

func sampleChannel(ch Channel, n int) ([]float64, error) {
	out := make([]float64, n)
	if ch.Func != nil {
		for i := range out {
			out[i] = clamp01(ch.Func(float64(i) / float64(n-1)))
		}
		return out, nil
	}
	seg := ch.Segments
	if len(seg) < 2 || seg[0].X != 0 || seg[len(seg)-1].X != 1 {
		return nil, fmt.Errorf("%w: breakpoints must start at 0 and end at 1", gplot.ErrInvalidValue)
	}
	for i := 1; i < len(seg); i++ {
		if seg[i].X < seg[i-1].X {
			return nil, fmt.Errorf("%w: breakpoints must be increasing", gplot.ErrInvalidValue)
		}
	}
	for i := range out {
		x := float64(i) / float64(n-1)
		j := sort.Search(len(seg), func(k int) bool { return seg[k].X >= x })
		switch {
		case j == 0:
			out[i] = seg[0].Y1
		case seg[j].X == x:
			out[i] = seg[j].Y0
		default:
			a, b := seg[j-1], seg[j]
			f := (x - a.X) / (b.X - a.X)
			out[i] = a.Y1 + f*(b.Y0-a.Y1)
		}
		out[i] = clamp01(out[i])
	}
	return out, nil
}

// Name returns the colormap name.
func (c *Colormap) Name() string { return c.name }

// N returns the number of lookup entries.
func (c *Colormap) N() int { return len(c.lut) }

// SetBad sets the color used for NaN input.
func (c *Colormap) SetBad(col RGBA) { c.bad, c.badSet = col, true }

// SetUnder sets the color used for input below 0.
func (c *Colormap) SetUnder(col RGBA) { c.under, c.underSet = col, true }

// SetOver sets the color used for input above 1.
func (c *Colormap) SetOver(col RGBA) { c.over, c.overSet = col, true }

// At maps x in [0, 1] to a color.
func (c *Colormap) At(x float64) RGBA {
	n := len(c.lut)
	switch {
	case math.IsNaN(x):
		if c.badSet {
			return c.bad
		}
		return Transparent
	case x < 0:
		if c.underSet {
			return c.under
		}
		return c.lut[0]
	case x > 1:
		if c.overSet {
			return c.over
		}
		return c.lut[n-1]
	}
	i := int(x * float64(n))
	if i >= n {
		i = n - 1
	}
	return c.lut[i]
}

// Map maps every value in xs, applying alpha to all non-bad colors.
func (c *Colormap) Map(xs []float64, alpha float64) []RGBA {
	out := make([]RGBA, len(xs))
	for i, x := range xs {
		col := c.At(x)
		if !math.IsNaN(x) {
			col.A *= alpha
		}
		out[i] = col
	}
	return out
}

// Reversed returns a copy with the lookup table reversed, named name_r.
func (c *Colormap) Reversed() *Colormap {
	r := *c
	r.lut = slices.Clone(c.lut)
	slices.Reverse(r.lut)
	r.under, r.over = c.over, c.under
	r.underSet, r.overSet = c.overSet, c.underSet
	if strings.HasSuffix(c.name, "_r") {
		r.name = strings.TrimSuffix(c.name, "_r")
	} else {
		r.name = c.name + "_r"
	}
	return &r
}

// Clone returns an independent copy.
func (c *Colormap) Clone() *Colormap {
	r := *c
	r.lut = slices.Clone(c.lut)
	return &r
}

// DefaultN is the lookup size of the registered colormaps.
const DefaultN = 256

var (
	registryMu   sync.RWMutex
	registry     = make(map[string]*Colormap)
	builtinsOnce sync.Once
)

// Register adds a colormap under its name, replacing any existing entry.
func Register(c *Colormap) {
	builtinsOnce.Do(loadBuiltins)
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[c.name] = c
}

// Get returns a copy of the named colormap. A name ending in "_r" returns
// the reversed map.
func Get(name string) (*Colormap, error) {
	builtinsOnce.Do(loadBuiltins)
	registryMu.RLock()
	c, ok := registry[name]
	registryMu.RUnlock()
	if ok {
		return c.Clone(), nil
	}
	if base, found := strings.CutSuffix(name, "_r"); found {
		registryMu.RLock()
		c, ok = registry[base]
		registryMu.RUnlock()
		if ok {
			return c.Reversed(), nil
		}
	}
	return nil, fmt.Errorf("%w: unknown colormap %q", gplot.ErrInvalidValue, name)
}

// MustGet is Get for names known to be registered.
func MustGet(name string) *Colormap {
	c, err := Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Colormaps returns the registered names, sorted.
func Colormaps() []string {
	builtinsOnce.Do(loadBuiltins)
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func loadBuiltins() {
	registryMu.Lock()
	defer registryMu.Unlock()
	for name, data := range builtinData() {
		c, err := NewLinearSegmented(name, data, DefaultN)
		if err != nil {
			panic(err)
		}
		registry[name] = c
	}
}
