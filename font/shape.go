package font

import (
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/gplot"
)

// Glyph is a positioned glyph. X and Y are pen offsets in pixels from the
// run origin, y up.
type Glyph struct {
	ID      uint16
	X, Y    float64
	Advance float64
}

// Run is a shaped single-line string.
type Run struct {
	Font *Font
	// PPEM is the size in pixels per em.
	PPEM   float64
	Glyphs []Glyph
	// Width is the total advance; Ascent and Descent come from the font
	// metrics so that every string at one size has the same height.
	Width, Ascent, Descent float64
}

// Height returns Ascent+Descent.
func (r *Run) Height() float64 { return r.Ascent + r.Descent }

// Path returns the outline of the run with the pen origin at (x, y).
func (r *Run) Path(x, y float64) (*gplot.Path, error) {
	p := gplot.NewPath()
	for _, g := range r.Glyphs {
		if err := r.Font.GlyphPath(p, g.ID, r.PPEM, x+g.X, y+g.Y); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// HarfbuzzShaper is not safe for concurrent use.
var shaperPool = sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }}

func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// shape lays out s with f at ppem pixels per em.
func shape(f *Font, s string, ppem float64) *Run {
	m := f.Metrics(ppem)
	run := &Run{Font: f, PPEM: ppem, Ascent: m.Ascent, Descent: m.Descent}
	if s == "" {
		return run
	}
	runes := []rune(s)
	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gtfont.NewFace(f.gt),
		Size:      toFixed(ppem),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(in)
	shaperPool.Put(hb)

	run.Glyphs = make([]Glyph, len(out.Glyphs))
	var x float64
	for i, g := range out.Glyphs {
		adv := fromFixed(g.Advance)
		run.Glyphs[i] = Glyph{
			ID:      uint16(g.GlyphID),
			X:       x + fromFixed(g.XOffset),
			Y:       fromFixed(g.YOffset),
			Advance: adv,
		}
		x += adv
	}
	run.Width = x
	return run
}

const maxCachedRuns = 4096

// Shape resolves p and shapes s at dpi. Results are cached.
func (m *Manager) Shape(s string, p *Properties, dpi float64) (*Run, error) {
	key := fmt.Sprintf("%s|%s|%g", s, p.Key(), dpi)
	if r, ok := m.runs.Get(key); ok {
		return r, nil
	}
	f, err := m.FindFont(p)
	if err != nil {
		return nil, err
	}
	run := shape(f, s, p.Size*dpi/72)
	m.runs.Set(key, run)
	return run, nil
}

// Extents returns the width, height and descent of s in pixels at dpi.
func (m *Manager) Extents(s string, p *Properties, dpi float64) (w, h, d float64, err error) {
	r, err := m.Shape(s, p, dpi)
	if err != nil {
		return 0, 0, 0, err
	}
	return r.Width, r.Height(), r.Descent, nil
}
