package colors

import (
	"fmt"
	"image/color"
	"math"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. RGBA is not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

var _ color.Color = RGBA{}

// RGBA implements color.Color with premultiplied 16-bit components.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts to an 8-bit non-premultiplied color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R*255 + 0.5)),
		G: uint8(clamp255(c.G*255 + 0.5)),
		B: uint8(clamp255(c.B*255 + 0.5)),
		A: uint8(clamp255(c.A*255 + 0.5)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Grey returns the opaque grey of the given level.
func Grey(level float64) RGBA {
	return RGB(level, level, level)
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Hex formats c as "#rrggbb", ignoring alpha.
func (c RGBA) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// String implements fmt.Stringer.
func (c RGBA) String() string {
	return fmt.Sprintf("RGBA(%.3g, %.3g, %.3g, %.3g)", c.R, c.G, c.B, c.A)
}

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Scale multiplies the RGB components by f, clamping to [0, 1].
// It is used to darken shadows.
func (c RGBA) Scale(f float64) RGBA {
	return RGBA{R: clamp01(c.R * f), G: clamp01(c.G * f), B: clamp01(c.B * f), A: c.A}
}

// parseHex parses "rgb", "rrggbb" or "rrggbbaa" without the leading '#'.
func parseHex(hex string) (RGBA, bool) {
	var v [4]uint32
	v[3] = 255
	switch len(hex) {
	case 3:
		for i := range 3 {
			d, ok := hexDigits(hex[i : i+1])
			if !ok {
				return RGBA{}, false
			}
			v[i] = d * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			d, ok := hexDigits(hex[i : i+2])
			if !ok {
				return RGBA{}, false
			}
			v[i/2] = d
		}
	default:
		return RGBA{}, false
	}
	return RGBA{
		R: float64(v[0]) / 255,
		G: float64(v[1]) / 255,
		B: float64(v[2]) / 255,
		A: float64(v[3]) / 255,
	}, true
}

func hexDigits(s string) (uint32, bool) {
	var val uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		val *= 16
		switch {
		case '0' <= c && c <= '9':
			val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			val += uint32(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return val, true
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// HSV converts hue, saturation and value, all in [0, 1], to an opaque color.
func HSV(h, s, v float64) RGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) % 6 {
	case 0:
		return RGB(v, t, p)
	case 1:
		return RGB(q, v, p)
	case 2:
		return RGB(p, v, t)
	case 3:
		return RGB(p, q, v)
	case 4:
		return RGB(t, p, v)
	default:
		return RGB(v, p, q)
	}
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA{}
)
