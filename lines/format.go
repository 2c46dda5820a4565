package lines

import (
	"fmt"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/colors"
)

// Format is a parsed plot format string such as "r--o". Empty fields
// were not given.
type Format struct {
	LineStyle string
	Marker    string
	Color     string
}

const formatColors = "bgrcmykw"

// ParseFormat splits a format string into line style, marker and color.
// A string that is a color on its own ("red", "0.5", "#ff8000") sets
// only the color. When a marker is given without a line style the line
// style is "None", so "o" draws markers only.
func ParseFormat(s string) (Format, error) {
	f, err := parseFormatChars(s)
	if err != nil {
		if colors.IsColorLike(s) {
			return Format{Color: s}, nil
		}
		return Format{}, err
	}
	if f.Marker != "" && f.LineStyle == "" {
		f.LineStyle = "None"
	}
	return f, nil
}

func parseFormatChars(s string) (Format, error) {
	var f Format
	orig := s
	bad := func(why string) (Format, error) {
		return Format{}, fmt.Errorf("lines: %w: format %q: %s", gplot.ErrInvalidValue, orig, why)
	}
	for _, ls := range []string{"--", "-."} {
		if strings.Contains(s, ls) {
			f.LineStyle = ls
			s = strings.Replace(s, ls, "", 1)
			break
		}
	}
	for _, r := range s {
		c := string(r)
		switch {
		case c == "-" || c == ":":
			if f.LineStyle != "" {
				return bad("two line styles")
			}
			f.LineStyle = c
		case strings.ContainsRune(formatColors, r):
			if f.Color != "" {
				return bad("two colors")
			}
			f.Color = c
		default:
			if _, ok := markerBuilders[c]; !ok {
				return bad("unrecognized character " + c)
			}
			if f.Marker != "" {
				return bad("two markers")
			}
			f.Marker = c
		}
	}
	return f, nil
}
