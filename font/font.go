package font

import (
	"bytes"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gplot"
)

// Font is one parsed font file.
type Font struct {
	family       string
	bold, italic bool
	data         []byte

	sf *sfnt.Font
	gt *gtfont.Font

	// sfnt.Buffer is not safe for concurrent use.
	mu  sync.Mutex
	buf sfnt.Buffer
}

// Parse parses TrueType or OpenType data.
func Parse(data []byte) (*Font, error) {
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: failed to load shaping tables: %w", err)
	}
	f := &Font{data: data, sf: sf, gt: face.Font}
	if name, err := sf.Name(nil, sfnt.NameIDFamily); err == nil {
		f.family = name
	}
	return f, nil
}

// Family returns the family name stored in the font.
func (f *Font) Family() string { return f.family }

// Bold reports whether the font was registered as bold.
func (f *Font) Bold() bool { return f.bold }

// Italic reports whether the font was registered as italic.
func (f *Font) Italic() bool { return f.italic }

// Data returns the raw font file, for backends that embed fonts.
func (f *Font) Data() []byte { return f.data }

// Metrics holds vertical metrics in pixels. Descent is positive.
type Metrics struct {
	Ascent, Descent, Height, XHeight, CapHeight float64
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Metrics returns the vertical metrics at ppem pixels per em.
func (f *Font) Metrics(ppem float64) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.sf.Metrics(&f.buf, toFixed(ppem), xfont.HintingNone)
	if err != nil {
		return Metrics{Ascent: 0.8 * ppem, Descent: 0.2 * ppem, Height: ppem}
	}
	return Metrics{
		Ascent:    fromFixed(m.Ascent),
		Descent:   fromFixed(m.Descent),
		Height:    fromFixed(m.Height),
		XHeight:   fromFixed(m.XHeight),
		CapHeight: fromFixed(m.CapHeight),
	}
}

// GlyphAdvance returns the advance of a glyph at ppem.
func (f *Font) GlyphAdvance(gid uint16, ppem float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	adv, err := f.sf.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), toFixed(ppem), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(adv)
}

// GlyphIndex returns the glyph for r, or 0 when the font lacks it.
func (f *Font) GlyphIndex(r rune) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.sf.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

// GlyphPath appends the outline of a glyph at ppem, with its origin at
// (x, y) in a y-up space, to p.
func (f *Font) GlyphPath(p *gplot.Path, gid uint16, ppem, x, y float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	segs, err := f.sf.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), toFixed(ppem), nil)
	if err != nil {
		return fmt.Errorf("font: load glyph %d: %w", gid, err)
	}
	// sfnt coordinates grow downwards.
	pt := func(q fixed.Point26_6) (float64, float64) {
		return x + fromFixed(q.X), y - fromFixed(q.Y)
	}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			ex, ey := pt(seg.Args[1])
			p.QuadraticTo(cx, cy, ex, ey)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
		}
	}
	if open {
		p.Close()
	}
	return nil
}
