package gplot

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all packages. Callers match them with errors.Is;
// the packages wrap them with the offending value or object.
var (
	// ErrInvalidRangeForLog is returned when a log-scaled interval has a
	// non-positive endpoint.
	ErrInvalidRangeForLog = errors.New("gplot: invalid range for log scale")

	// ErrDegenerateInterval is returned when an interval of zero length
	// must be inverted.
	ErrDegenerateInterval = errors.New("gplot: degenerate interval")

	// ErrColorFormat is returned for color specifications that cannot be parsed.
	ErrColorFormat = errors.New("gplot: invalid color specification")

	// ErrUnknownConfigKey is returned for rc keys that do not exist.
	ErrUnknownConfigKey = errors.New("gplot: unknown config key")

	// ErrInvalidAxisSpec is returned by Axes.Axis for unknown presets.
	ErrInvalidAxisSpec = errors.New("gplot: invalid axis specification")

	// ErrUnbalancedMathDelimiters is returned for strings with an odd number
	// of unescaped '$' delimiters.
	ErrUnbalancedMathDelimiters = errors.New("gplot: unbalanced math delimiters")

	// ErrUnknownProperty is returned when setting or getting a property an
	// artist does not declare.
	ErrUnknownProperty = errors.New("gplot: unknown property")

	// ErrInvalidValue is returned when a property or option value is outside
	// its legal domain.
	ErrInvalidValue = errors.New("gplot: invalid value")

	// ErrShapeMismatch is returned when array arguments disagree in shape.
	ErrShapeMismatch = errors.New("gplot: shape mismatch")

	// ErrUnknownFormat is returned when no backend is registered for an
	// output format.
	ErrUnknownFormat = errors.New("gplot: unknown output format")
)

// ShapeError reports observed versus expected array shapes.
type ShapeError struct {
	Op   string
	Got  []int
	Want []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("gplot: %s: shape %v, want %v", e.Op, e.Got, e.Want)
}

// Unwrap makes ShapeError match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

// CheckSameLen returns a *ShapeError when the slices differ in length.
func CheckSameLen(op string, a, b []float64) error {
	if len(a) != len(b) {
		return &ShapeError{Op: op, Got: []int{len(b)}, Want: []int{len(a)}}
	}
	return nil
}
