package lines

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/rcparams"
)

// ColorMode says how a marker color is chosen.
type ColorMode int

const (
	// ColorExplicit uses the stored color.
	ColorExplicit ColorMode = iota
	// ColorAuto derives the color from the line.
	ColorAuto
	// ColorNone draws nothing.
	ColorNone
)

// MarkerColor is a marker face or edge color.
type MarkerColor struct {
	Mode  ColorMode
	Color colors.RGBA
}

// ParseMarkerColor accepts "auto", "none" or any color specification.
func ParseMarkerColor(v any) (MarkerColor, error) {
	if s, ok := v.(string); ok {
		switch {
		case s == "auto":
			return MarkerColor{Mode: ColorAuto}, nil
		case colors.IsNone(s):
			return MarkerColor{Mode: ColorNone}, nil
		}
	}
	c, err := colors.ToRGBA(v)
	if err != nil {
		return MarkerColor{}, err
	}
	return MarkerColor{Color: c}, nil
}

// String implements fmt.Stringer.
func (m MarkerColor) String() string {
	switch m.Mode {
	case ColorAuto:
		return "auto"
	case ColorNone:
		return "none"
	}
	return m.Color.Hex()
}

// Style is the complete visual configuration of a line. Lengths are in
// points.
type Style struct {
	LineStyle       string
	Marker          string
	Color           colors.RGBA
	LineWidth       float64
	Dashes          []float64
	DashOffset      float64
	DashCapStyle    backend.CapStyle
	SolidCapStyle   backend.CapStyle
	DashJoinStyle   backend.JoinStyle
	SolidJoinStyle  backend.JoinStyle
	MarkerSize      float64
	MarkerEdgeWidth float64
	MarkerFaceColor MarkerColor
	MarkerEdgeColor MarkerColor
	Antialiased     bool
}

// DefaultStyle returns the style configured by the lines.* rc params.
func DefaultStyle() Style {
	rc := rcparams.Default()
	s := Style{
		LineStyle:       rc.String("lines.linestyle"),
		Color:           rc.Color("lines.color"),
		LineWidth:       rc.Float("lines.linewidth"),
		MarkerSize:      rc.Float("lines.markersize"),
		MarkerEdgeWidth: rc.Float("lines.markeredgewidth"),
		Antialiased:     rc.Bool("lines.antialiased"),
		Marker:          MarkerNone,
	}
	if m, ok := NormalizeMarker(rc.String("lines.marker")); ok {
		s.Marker = m
	}
	s.MarkerFaceColor, _ = ParseMarkerColor(rc.String("lines.markerfacecolor"))
	s.MarkerEdgeColor, _ = ParseMarkerColor(rc.String("lines.markeredgecolor"))
	s.DashCapStyle, _ = backend.ParseCapStyle(rc.String("lines.dash_capstyle"))
	s.SolidCapStyle, _ = backend.ParseCapStyle(rc.String("lines.solid_capstyle"))
	s.DashJoinStyle, _ = backend.ParseJoinStyle(rc.String("lines.dash_joinstyle"))
	s.SolidJoinStyle, _ = backend.ParseJoinStyle(rc.String("lines.solid_joinstyle"))
	return s
}

// Clone returns a deep copy.
func (s Style) Clone() Style {
	var c Style
	if err := copier.CopyWithOption(&c, &s, copier.Option{DeepCopy: true}); err != nil {
		// Unreachable: source and destination are the same type.
		panic(err)
	}
	return c
}

var lineStyleNames = map[string]string{
	"-": "-", "solid": "-",
	"--": "--", "dashed": "--",
	"-.": "-.", "dashdot": "-.",
	":": ":", "dotted": ":",
	"steps": "steps",
	"None": "None", "none": "None", "": "None", " ": "None",
}

// NormalizeLineStyle maps a line style or its long name onto "-", "--",
// "-.", ":", "steps" or "None".
func NormalizeLineStyle(s string) (string, error) {
	if n, ok := lineStyleNames[s]; ok {
		return n, nil
	}
	return "", fmt.Errorf("lines: %w: line style %q", gplot.ErrInvalidValue, s)
}

// LineStyles returns the accepted line style codes.
func LineStyles() []string { return []string{"-", "--", "-.", ":", "steps", "None"} }
