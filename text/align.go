package text

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gplot"
)

// HAlign is a horizontal alignment.
type HAlign int

const (
	// Left puts the anchor at the left edge.
	Left HAlign = iota
	// Center puts the anchor at the middle.
	Center
	// Right puts the anchor at the right edge.
	Right
)

// String returns the alignment name.
func (a HAlign) String() string {
	switch a {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	}
	return "unknown"
}

// ParseHAlign parses "left", "center" or "right".
func ParseHAlign(s string) (HAlign, error) {
	switch strings.ToLower(s) {
	case "left":
		return Left, nil
	case "center", "centre":
		return Center, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("%w: horizontal alignment %q", gplot.ErrInvalidValue, s)
}

// VAlign is a vertical alignment.
type VAlign int

const (
	// Bottom puts the anchor at the bottom edge.
	Bottom VAlign = iota
	// Middle puts the anchor at the middle.
	Middle
	// Top puts the anchor at the top edge.
	Top
	// Baseline puts the anchor on the first line's baseline.
	Baseline
)

// String returns the alignment name.
func (a VAlign) String() string {
	switch a {
	case Bottom:
		return "bottom"
	case Middle:
		return "center"
	case Top:
		return "top"
	case Baseline:
		return "baseline"
	}
	return "unknown"
}

// ParseVAlign parses "top", "center", "bottom" or "baseline".
func ParseVAlign(s string) (VAlign, error) {
	switch strings.ToLower(s) {
	case "bottom":
		return Bottom, nil
	case "center", "centre":
		return Middle, nil
	case "top":
		return Top, nil
	case "baseline":
		return Baseline, nil
	}
	return Bottom, fmt.Errorf("%w: vertical alignment %q", gplot.ErrInvalidValue, s)
}

// ParseRotation accepts degrees as a number or numeric string, or
// "horizontal" (0) and "vertical" (90).
func ParseRotation(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		switch strings.ToLower(x) {
		case "horizontal":
			return 0, nil
		case "vertical":
			return 90, nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: rotation %v", gplot.ErrInvalidValue, v)
}
