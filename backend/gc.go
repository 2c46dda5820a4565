package backend

import (
	"fmt"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
)

// CapStyle is the shape of stroke ends.
type CapStyle int

const (
	CapButt CapStyle = iota
	CapRound
	CapProjecting
)

// String implements fmt.Stringer.
func (c CapStyle) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapProjecting:
		return "projecting"
	default:
		return "butt"
	}
}

// ParseCapStyle parses "butt", "round" or "projecting".
func ParseCapStyle(s string) (CapStyle, error) {
	switch s {
	case "butt":
		return CapButt, nil
	case "round":
		return CapRound, nil
	case "projecting":
		return CapProjecting, nil
	}
	return CapButt, fmt.Errorf("%w: cap style %q", gplot.ErrInvalidValue, s)
}

// JoinStyle is the shape of stroke corners.
type JoinStyle int

const (
	JoinMiter JoinStyle = iota
	JoinRound
	JoinBevel
)

// String implements fmt.Stringer.
func (j JoinStyle) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

// ParseJoinStyle parses "miter", "round" or "bevel".
func ParseJoinStyle(s string) (JoinStyle, error) {
	switch s {
	case "miter":
		return JoinMiter, nil
	case "round":
		return JoinRound, nil
	case "bevel":
		return JoinBevel, nil
	}
	return JoinMiter, fmt.Errorf("%w: join style %q", gplot.ErrInvalidValue, s)
}

// GraphicsContext carries stroke, fill and clip state for one draw call.
// Lengths (LineWidth and the dash pattern) are in points; renderers
// convert them with PointsToPixels.
type GraphicsContext struct {
	Foreground  colors.RGBA
	Alpha       float64
	LineWidth   float64
	Cap         CapStyle
	Join        JoinStyle
	LineStyle   string
	Dash        *gplot.Dash
	Antialiased bool
	// ClipRect is in display coordinates. Nil disables clipping.
	ClipRect *bbox.Bbox
	// Hatch is a pattern of the characters / \ | - + x o . *.
	Hatch string
}

// NewGraphicsContext returns the default context: opaque black, 1pt solid
// lines with butt caps and miter joins, antialiased and unclipped.
func NewGraphicsContext() *GraphicsContext {
	return &GraphicsContext{
		Foreground:  colors.Black,
		Alpha:       1,
		LineWidth:   1,
		LineStyle:   "-",
		Antialiased: true,
	}
}

// Copy returns an independent copy.
func (gc *GraphicsContext) Copy() *GraphicsContext {
	c := *gc
	c.Dash = gc.Dash.Clone()
	return &c
}

// SetForeground resolves spec and stores it.
func (gc *GraphicsContext) SetForeground(spec any) error {
	c, err := colors.ToRGBA(spec)
	if err != nil {
		return err
	}
	gc.Foreground = c
	return nil
}

// SetLineStyle selects a named dash pattern: "-" (solid), "--", "-." or
// ":". "None" and "" are accepted and draw nothing.
func (gc *GraphicsContext) SetLineStyle(style string) error {
	d, ok := gplot.DashForStyle(style)
	if !ok {
		return fmt.Errorf("%w: line style %q", gplot.ErrInvalidValue, style)
	}
	gc.Dash = d
	gc.LineStyle = style
	return nil
}

// SetDashes sets an explicit dash pattern in points. An empty pattern
// selects solid lines.
func (gc *GraphicsContext) SetDashes(offset float64, seq []float64) {
	d := gplot.NewDash(seq...)
	if d != nil {
		d = d.WithOffset(offset)
	}
	gc.Dash = d
}

// Invisible reports whether strokes with this context draw nothing.
func (gc *GraphicsContext) Invisible() bool {
	return gc.LineStyle == "None" || gc.LineStyle == "none" || gc.LineStyle == "" || gc.LineWidth <= 0
}

// StrokeColor returns the foreground with the context alpha applied.
func (gc *GraphicsContext) StrokeColor() colors.RGBA {
	c := gc.Foreground
	c.A *= gc.Alpha
	return c
}

// FillColor applies the context alpha to a face color.
func (gc *GraphicsContext) FillColor(face colors.RGBA) colors.RGBA {
	face.A *= gc.Alpha
	return face
}
