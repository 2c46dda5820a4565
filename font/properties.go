package font

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/rcparams"
)

// Properties describe a font abstractly.
type Properties struct {
	// Family is a list of family names or generic families ("serif",
	// "sans-serif", "monospace", "cursive", "fantasy") tried in order.
	Family []string
	// Style is "normal", "italic" or "oblique".
	Style string
	// Variant is "normal" or "small-caps".
	Variant string
	// Weight is a name such as "bold" or a number from 100 to 900.
	Weight string
	// Size is the font size in points.
	Size float64
}

// NewProperties returns properties built from the rc defaults.
func NewProperties() *Properties {
	rc := rcparams.Default()
	return &Properties{
		Family:  []string{rc.String("font.family")},
		Style:   rc.String("font.style"),
		Variant: rc.String("font.variant"),
		Weight:  rc.String("font.weight"),
		Size:    rc.Float("font.size"),
	}
}

// Clone returns a copy.
func (p *Properties) Clone() *Properties {
	c := *p
	c.Family = append([]string(nil), p.Family...)
	return &c
}

// Key returns a string identifying the properties, for cache keys.
func (p *Properties) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%g", strings.Join(p.Family, ","), p.Style, p.Variant, p.Weight, p.Size)
}

var namedSizes = map[string]float64{
	"xx-small": 0.579,
	"x-small":  0.694,
	"small":    0.833,
	"medium":   1.0,
	"large":    1.200,
	"x-large":  1.440,
	"xx-large": 1.728,
}

// SetSize accepts a size in points or a relative name such as "large",
// "larger" or "smaller".
func (p *Properties) SetSize(v any) error {
	switch s := v.(type) {
	case float64:
		p.Size = s
	case int:
		p.Size = float64(s)
	case string:
		base := rcparams.Default().Float("font.size")
		switch s {
		case "larger":
			p.Size *= 1.2
		case "smaller":
			p.Size /= 1.2
		default:
			if f, ok := namedSizes[s]; ok {
				p.Size = base * f
				return nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("%w: font size %q", gplot.ErrInvalidValue, s)
			}
			p.Size = f
		}
	default:
		return fmt.Errorf("%w: font size %v (%T)", gplot.ErrInvalidValue, v, v)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: font size must be positive, got %g", gplot.ErrInvalidValue, p.Size)
	}
	return nil
}

// IsBold reports whether the weight selects a bold face.
func (p *Properties) IsBold() bool {
	switch strings.ToLower(p.Weight) {
	case "bold", "heavy", "extra bold", "black", "demibold", "demi", "semibold":
		return true
	}
	if n, err := strconv.Atoi(p.Weight); err == nil {
		return n >= 600
	}
	return false
}

// IsItalic reports whether the style selects an italic face.
func (p *Properties) IsItalic() bool {
	return p.Style == "italic" || p.Style == "oblique"
}

var fold = cases.Fold()

// normalizeFamily folds a family name for case-insensitive lookup.
func normalizeFamily(name string) string {
	return fold.String(strings.TrimSpace(name))
}
