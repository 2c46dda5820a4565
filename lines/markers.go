package lines

import (
	"math"
	"slices"

	"github.com/gogpu/gplot"
)

// Marker codes. The single-character codes follow the usual plotting
// shorthand; tick markers have names since they have no glyph.
const (
	MarkerNone          = "None"
	MarkerPoint         = "."
	MarkerPixel         = ","
	MarkerCircle        = "o"
	MarkerTriangleUp    = "^"
	MarkerTriangleDown  = "v"
	MarkerTriangleLeft  = "<"
	MarkerTriangleRight = ">"
	MarkerTriDown       = "1"
	MarkerTriUp         = "2"
	MarkerTriLeft       = "3"
	MarkerTriRight      = "4"
	MarkerSquare        = "s"
	MarkerPentagon      = "p"
	MarkerHexagon1      = "h"
	MarkerHexagon2      = "H"
	MarkerPlus          = "+"
	MarkerX             = "x"
	MarkerDiamond       = "D"
	MarkerThinDiamond   = "d"
	MarkerVLine         = "|"
	MarkerHLine         = "_"
	MarkerTickLeft      = "tickleft"
	MarkerTickRight     = "tickright"
	MarkerTickUp        = "tickup"
	MarkerTickDown      = "tickdown"
)

// tickCodes maps the numeric tick marker codes onto names.
var tickCodes = [...]string{MarkerTickLeft, MarkerTickRight, MarkerTickUp, MarkerTickDown}

// filledMarkers get a black edge when the edge color is "auto".
var filledMarkers = []string{
	MarkerCircle, MarkerTriangleUp, MarkerTriangleDown, MarkerTriangleLeft, MarkerTriangleRight,
	MarkerSquare, MarkerThinDiamond, MarkerDiamond, MarkerHexagon1, MarkerHexagon2, MarkerPentagon,
}

// markerBuilders append the outline of a marker of size s (display units).
var markerBuilders = map[string]func(p *gplot.Path, s float64){
	MarkerPoint:  func(p *gplot.Path, s float64) { p.Circle(0, 0, s*0.25) },
	MarkerPixel:  func(p *gplot.Path, _ float64) { p.Rectangle(-0.5, -0.5, 1, 1) },
	MarkerCircle: func(p *gplot.Path, s float64) { p.Circle(0, 0, s/2) },
	MarkerTriangleUp: func(p *gplot.Path, s float64) {
		h := s / 2
		polygon(p, 0, h, -h, -h, h, -h)
	},
	MarkerTriangleDown: func(p *gplot.Path, s float64) {
		h := s / 2
		polygon(p, 0, -h, h, h, -h, h)
	},
	MarkerTriangleLeft: func(p *gplot.Path, s float64) {
		h := s / 2
		polygon(p, -h, 0, h, -h, h, h)
	},
	MarkerTriangleRight: func(p *gplot.Path, s float64) {
		h := s / 2
		polygon(p, h, 0, -h, h, -h, -h)
	},
	MarkerTriDown:  func(p *gplot.Path, s float64) { spokes(p, s/2, 0, -1, -1, 1, 1, 1) },
	MarkerTriUp:    func(p *gplot.Path, s float64) { spokes(p, s/2, 0, 1, -1, -1, 1, -1) },
	MarkerTriLeft:  func(p *gplot.Path, s float64) { spokes(p, s/2, -1, 0, 1, -1, 1, 1) },
	MarkerTriRight: func(p *gplot.Path, s float64) { spokes(p, s/2, 1, 0, -1, -1, -1, 1) },
	MarkerSquare: func(p *gplot.Path, s float64) {
		h := s / 2
		p.Rectangle(-h, -h, s, s)
	},
	MarkerPentagon: func(p *gplot.Path, s float64) { regular(p, 5, s/2, math.Pi/2) },
	MarkerHexagon1: func(p *gplot.Path, s float64) { regular(p, 6, s/2, math.Pi/2) },
	MarkerHexagon2: func(p *gplot.Path, s float64) { regular(p, 6, s/2, 0) },
	MarkerPlus:     func(p *gplot.Path, s float64) { spokes(p, s/2, -1, 0, 1, 0, 0, -1, 0, 1) },
	MarkerX:        func(p *gplot.Path, s float64) { spokes(p, s/2, -1, -1, 1, 1, -1, 1, 1, -1) },
	MarkerDiamond: func(p *gplot.Path, s float64) {
		h := s / 2
		polygon(p, h, 0, 0, h, -h, 0, 0, -h)
	},
	MarkerThinDiamond: func(p *gplot.Path, s float64) {
		h := s / 2
		polygon(p, 0.6*h, 0, 0, h, -0.6*h, 0, 0, -h)
	},
	MarkerVLine:     func(p *gplot.Path, s float64) { spokes(p, s/2, 0, -1, 0, 1) },
	MarkerHLine:     func(p *gplot.Path, s float64) { spokes(p, s/2, -1, 0, 1, 0) },
	MarkerTickLeft:  func(p *gplot.Path, s float64) { spokes(p, s, 0, 0, -1, 0) },
	MarkerTickRight: func(p *gplot.Path, s float64) { spokes(p, s, 0, 0, 1, 0) },
	MarkerTickUp:    func(p *gplot.Path, s float64) { spokes(p, s, 0, 0, 0, 1) },
	MarkerTickDown:  func(p *gplot.Path, s float64) { spokes(p, s, 0, 0, 0, -1) },
}

// polygon appends a closed polygon through the coordinate pairs.
func polygon(p *gplot.Path, xy ...float64) {
	p.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		p.LineTo(xy[i], xy[i+1])
	}
	p.Close()
}

// spokes appends open segments scaled by r. Six numbers are three
// directions drawn from the origin; otherwise every four numbers are one
// segment (x0, y0, x1, y1).
func spokes(p *gplot.Path, r float64, xy ...float64) {
	if len(xy) == 6 {
		for i := 0; i < 6; i += 2 {
			p.MoveTo(0, 0)
			p.LineTo(r*xy[i], r*xy[i+1])
		}
		return
	}
	for i := 0; i+3 < len(xy); i += 4 {
		p.MoveTo(r*xy[i], r*xy[i+1])
		p.LineTo(r*xy[i+2], r*xy[i+3])
	}
}

func regular(p *gplot.Path, n int, r, start float64) {
	for i := range n {
		s, c := math.Sincos(start + 2*math.Pi*float64(i)/float64(n))
		if i == 0 {
			p.MoveTo(r*c, r*s)
		} else {
			p.LineTo(r*c, r*s)
		}
	}
	p.Close()
}

// NormalizeMarker maps accepted marker values onto a marker code. It
// accepts the codes above, "none" and "" for no marker, and the integers
// 0-3 for the tick markers left, right, up and down.
func NormalizeMarker(v any) (string, bool) {
	switch m := v.(type) {
	case int:
		if m >= 0 && m < len(tickCodes) {
			return tickCodes[m], true
		}
		return "", false
	case string:
		switch m {
		case "None", "none", "":
			return MarkerNone, true
		}
		_, ok := markerBuilders[m]
		return m, ok
	}
	return "", false
}

// IsFilledMarker reports whether m is drawn with a face.
func IsFilledMarker(m string) bool { return slices.Contains(filledMarkers, m) }

// Markers returns every marker code except MarkerNone, sorted.
func Markers() []string {
	out := make([]string, 0, len(markerBuilders))
	for m := range markerBuilders {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// MarkerPath returns the outline of marker m with size s in display units,
// centered on the origin. It returns nil for MarkerNone and unknown codes.
func MarkerPath(m string, s float64) *gplot.Path {
	build, ok := markerBuilders[m]
	if !ok {
		return nil
	}
	p := gplot.NewPath()
	build(p, s)
	return p
}

// isRoundMarker reports markers drawn with an arc call when a renderer
// cannot stamp paths.
func isRoundMarker(m string) bool { return m == MarkerCircle || m == MarkerPoint }
