package transform

import "math"

// FuncType identifies a one-dimensional scale function.
type FuncType int

const (
	// IdentityFunc maps x to itself.
	IdentityFunc FuncType = iota
	// Log10Func maps x to log10(x).
	Log10Func
	// PolarRadialFunc is the radial leg of a polar transform and behaves
	// as the identity on a single axis.
	PolarRadialFunc
)

// String implements fmt.Stringer.
func (t FuncType) String() string {
	switch t {
	case IdentityFunc:
		return "identity"
	case Log10Func:
		return "log10"
	case PolarRadialFunc:
		return "polar"
	default:
		return "unknown"
	}
}

// Func is a mutable one-dimensional scale function. Axes swap the type in
// place when the scale changes, so every transform holding the Func sees
// the new scale.
type Func struct {
	typ FuncType
}

// NewFunc returns a Func of the given type.
func NewFunc(t FuncType) *Func { return &Func{typ: t} }

// Type returns the function type.
func (f *Func) Type() FuncType {
	if f == nil {
		return IdentityFunc
	}
	return f.typ
}

// SetType changes the function type.
func (f *Func) SetType(t FuncType) { f.typ = t }

// IsLog reports whether f is log10.
func (f *Func) IsLog() bool { return f.Type() == Log10Func }

// Forward applies the function. log10 of a non-positive value is NaN.
func (f *Func) Forward(x float64) float64 {
	if f.Type() == Log10Func {
		if x <= 0 {
			return math.NaN()
		}
		return math.Log10(x)
	}
	return x
}

// Inverse undoes Forward.
func (f *Func) Inverse(x float64) float64 {
	if f.Type() == Log10Func {
		return math.Pow(10, x)
	}
	return x
}
