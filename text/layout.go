package text

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/internal/cache"
)

// LineSpacing is the distance between baselines as a multiple of the
// font height.
const LineSpacing = 1.2

// piece is a string drawn with one font. X and Y locate the left end of
// its baseline: relative to the line origin while measuring, relative to
// the anchor once laid out.
type piece struct {
	text  string
	x, y  float64
	props *font.Properties
}

type measuredLine struct {
	pieces    []piece
	w         float64
	asc, desc float64
}

// layout is a string placed around an anchor at the origin.
type layout struct {
	pieces []piece
	// Extent of the rotated block relative to the anchor.
	x0, y0, x1, y1 float64
	tex            bool
}

type layoutKey struct {
	text, font string
	angle      float64
	ha, ma     HAlign
	va         VAlign
	dpi        float64
	tex        bool
	renderer   string
}

type superKey struct {
	text, font string
	dpi        float64
}

var (
	layouts      = cache.New[layoutKey, *layout](1024)
	superscripts = cache.New[superKey, measuredLine](256)
)

func scaled(props *font.Properties, s float64) *font.Properties {
	if s == 1 {
		return props
	}
	p := props.Clone()
	p.Size *= s
	return p
}

// measurePlain measures a string drawn as a single piece.
func measurePlain(r backend.Renderer, s string, props *font.Properties, ismath bool) (measuredLine, error) {
	w, h, d, err := r.TextExtents(s, props, ismath)
	if err != nil {
		return measuredLine{}, err
	}
	return measuredLine{pieces: []piece{{text: s, props: props}}, w: w, asc: h - d, desc: d}, nil
}

// measureAtoms places math atoms left to right, shifting scripts by
// their em offset.
func measureAtoms(r backend.Renderer, atoms []atom, props *font.Properties, ml *measuredLine) error {
	em := r.PointsToPixels(props.Size)
	for _, a := range atoms {
		p := scaled(props, a.scale)
		w, h, d, err := r.TextExtents(a.text, p, false)
		if err != nil {
			return err
		}
		dy := a.shift * em
		ml.pieces = append(ml.pieces, piece{text: a.text, x: ml.w, y: dy, props: p})
		ml.w += w
		ml.asc = math.Max(ml.asc, h-d+dy)
		ml.desc = math.Max(ml.desc, d-dy)
	}
	return nil
}

// measureSuperscript lays out $m^{e}$ without the math parser. Results
// are cached by string, font and dpi.
func measureSuperscript(r backend.Renderer, mant, exp, s string, props *font.Properties) (measuredLine, error) {
	key := superKey{text: s, font: props.Key(), dpi: r.DPI()}
	if ml, ok := superscripts.Get(key); ok {
		return ml, nil
	}
	var ml measuredLine
	err := measureAtoms(r, []atom{
		{text: mant, scale: 1},
		{text: exp, scale: scriptScale, shift: supShift},
	}, props, &ml)
	if err != nil {
		return measuredLine{}, err
	}
	superscripts.Set(key, ml)
	return ml, nil
}

func measureLine(r backend.Renderer, segs []Segment, props *font.Properties, angle float64) (measuredLine, error) {
	if angle == 0 && len(segs) == 1 && segs[0].Math {
		if mant, exp, ok := matchSuperscript("$" + segs[0].Text + "$"); ok {
			return measureSuperscript(r, mant, exp, "$"+segs[0].Text+"$", props)
		}
	}
	if len(segs) == 0 {
		return measurePlain(r, "", props, false)
	}
	var ml measuredLine
	for _, sg := range segs {
		if sg.Math {
			if err := measureAtoms(r, parseMath(sg.Text), props, &ml); err != nil {
				return measuredLine{}, err
			}
			continue
		}
		if err := measureAtoms(r, []atom{{text: sg.Text, scale: 1}}, props, &ml); err != nil {
			return measuredLine{}, err
		}
	}
	return ml, nil
}

// computeLayout measures every line, stacks them, aligns each within the
// block, rotates the block about the anchor and shifts it so that its
// axis-aligned box satisfies ha and va.
func computeLayout(r backend.Renderer, s string, props *font.Properties, angle float64, ha, ma HAlign, va VAlign, tex bool) (*layout, error) {
	// Cached layouts outlive later changes to the caller's properties.
	props = props.Clone()
	var ms []measuredLine
	if tex {
		for _, ln := range strings.Split(s, "\n") {
			m, err := measurePlain(r, ln, props, true)
			if err != nil {
				return nil, fmt.Errorf("measure %q: %w", ln, err)
			}
			ms = append(ms, m)
		}
	} else {
		// Delimiters may span lines, so segments come from the whole string.
		lines, err := SplitLines(s)
		if err != nil {
			return nil, err
		}
		for i, segs := range lines {
			m, err := measureLine(r, segs, props, angle)
			if err != nil {
				return nil, fmt.Errorf("measure line %d of %q: %w", i, s, err)
			}
			ms = append(ms, m)
		}
	}
	_, refH, _, err := r.TextExtents("lp", props, false)
	if err != nil {
		return nil, fmt.Errorf("measure line height: %w", err)
	}
	spacing := LineSpacing * refH

	// Block coordinates: top edge at y=0, left edge at x=0.
	var width float64
	base := make([]float64, len(ms))
	for i, m := range ms {
		width = math.Max(width, m.w)
		base[i] = -ms[0].asc - float64(i)*spacing
	}
	bottom := base[len(ms)-1] - ms[len(ms)-1].desc

	sin, cos := math.Sincos(angle * math.Pi / 180)
	rot := func(x, y float64) (float64, float64) { return x*cos - y*sin, x*sin + y*cos }

	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, bottom}, {width, bottom}, {width, 0}, {0, 0}} {
		x, y := rot(c[0], c[1])
		x0, x1 = math.Min(x0, x), math.Max(x1, x)
		y0, y1 = math.Min(y0, y), math.Max(y1, y)
	}

	var ox, oy float64
	switch ha {
	case Left:
		ox = -x0
	case Center:
		ox = -(x0 + x1) / 2
	case Right:
		ox = -x1
	}
	switch va {
	case Bottom:
		oy = -y0
	case Middle:
		oy = -(y0 + y1) / 2
	case Top:
		oy = -y1
	case Baseline:
		_, by := rot(0, base[0])
		oy = -by
	}

	lay := &layout{x0: x0 + ox, y0: y0 + oy, x1: x1 + ox, y1: y1 + oy, tex: tex}
	for i, m := range ms {
		var lx float64
		switch ma {
		case Center:
			lx = (width - m.w) / 2
		case Right:
			lx = width - m.w
		}
		for _, p := range m.pieces {
			if p.text == "" {
				continue
			}
			x, y := rot(lx+p.x, base[i]+p.y)
			lay.pieces = append(lay.pieces, piece{text: p.text, x: x + ox, y: y + oy, props: p.props})
		}
	}
	return lay, nil
}

// cachedLayout returns the layout for the key, computing it on a miss.
// Failures are not cached.
func cachedLayout(key layoutKey, build func() (*layout, error)) (*layout, error) {
	if lay, ok := layouts.Get(key); ok {
		return lay, nil
	}
	lay, err := build()
	if err != nil {
		return nil, err
	}
	layouts.Set(key, lay)
	return lay, nil
}

func rendererName(r backend.Renderer) string { return fmt.Sprintf("%T", r) }
