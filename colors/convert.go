package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gplot"
)

// IsNone reports whether spec is the string "none" (any case), which
// artists use for hollow faces and suppressed edges.
func IsNone(spec any) bool {
	s, ok := spec.(string)
	return ok && strings.EqualFold(s, "none")
}

// ToRGBA converts a color specification to RGBA. Supported forms are
// described in the package documentation. Invalid input fails with an
// error wrapping gplot.ErrColorFormat.
func ToRGBA(spec any) (RGBA, error) {
	switch v := spec.(type) {
	case RGBA:
		return v, nil
	case *RGBA:
		if v == nil {
			break
		}
		return *v, nil
	case string:
		return parseString(v)
	case [3]float64:
		return fromFloats(v[:])
	case [4]float64:
		return fromFloats(v[:])
	case []float64:
		return fromFloats(v)
	case float64:
		// A bare float is ambiguous with a scalar value; only strings name
		// greys.
	case color.Color:
		return FromColor(v), nil
	}
	return RGBA{}, fmt.Errorf("%w: %v (%T)", gplot.ErrColorFormat, spec, spec)
}

// ToRGBAWithAlpha converts spec and replaces its alpha.
func ToRGBAWithAlpha(spec any, alpha float64) (RGBA, error) {
	c, err := ToRGBA(spec)
	if err != nil {
		return RGBA{}, err
	}
	return c.WithAlpha(alpha), nil
}

// ToRGBAArray converts each element of specs.
func ToRGBAArray(specs []any) ([]RGBA, error) {
	out := make([]RGBA, len(specs))
	for i, s := range specs {
		c, err := ToRGBA(s)
		if err != nil {
			return nil, fmt.Errorf("colors: element %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// MustRGBA is ToRGBA for literals known to be valid. It panics on error.
func MustRGBA(spec any) RGBA {
	c, err := ToRGBA(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// IsColorLike reports whether spec is a valid color specification. It never
// fails.
func IsColorLike(spec any) bool {
	_, err := ToRGBA(spec)
	return err == nil
}

func parseString(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGBA{}, fmt.Errorf("%w: empty string", gplot.ErrColorFormat)
	}
	if c, ok := Named(s); ok {
		return c, nil
	}
	if s[0] == '#' {
		if c, ok := parseHex(s[1:]); ok {
			return c, nil
		}
		return RGBA{}, fmt.Errorf("%w: invalid hex string %q", gplot.ErrColorFormat, s)
	}
	grey, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: unknown color %q", gplot.ErrColorFormat, s)
	}
	if grey < 0 || grey > 1 {
		return RGBA{}, fmt.Errorf("%w: grey level %q must be in [0, 1]", gplot.ErrColorFormat, s)
	}
	return Grey(grey), nil
}

func fromFloats(v []float64) (RGBA, error) {
	if len(v) != 3 && len(v) != 4 {
		return RGBA{}, fmt.Errorf("%w: tuple must have 3 or 4 elements, got %d", gplot.ErrColorFormat, len(v))
	}
	for _, f := range v {
		if f < 0 || f > 1 {
			return RGBA{}, fmt.Errorf("%w: tuple component %g outside [0, 1]", gplot.ErrColorFormat, f)
		}
	}
	c := RGB(v[0], v[1], v[2])
	if len(v) == 4 {
		c.A = v[3]
	}
	return c, nil
}
