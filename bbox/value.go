package bbox

import "math"

// Scalar is a float that may be computed lazily from other scalars.
type Scalar interface {
	Get() float64
}

// Value is a mutable scalar cell. Share the pointer to share the value.
type Value struct {
	v float64
}

// NewValue returns a new cell holding v.
func NewValue(v float64) *Value {
	return &Value{v: v}
}

// Get returns the stored value.
func (v *Value) Get() float64 { return v.v }

// Set stores x.
func (v *Value) Set(x float64) { v.v = x }

// Const is an immutable scalar.
type Const float64

// Get returns c.
func (c Const) Get() float64 { return float64(c) }

type binOp struct {
	a, b Scalar
	fn   func(a, b float64) float64
}

func (o binOp) Get() float64 { return o.fn(o.a.Get(), o.b.Get()) }

// Add returns the lazy sum a+b.
func Add(a, b Scalar) Scalar {
	return binOp{a, b, func(x, y float64) float64 { return x + y }}
}

// Sub returns the lazy difference a-b.
func Sub(a, b Scalar) Scalar {
	return binOp{a, b, func(x, y float64) float64 { return x - y }}
}

// Mul returns the lazy product a*b.
func Mul(a, b Scalar) Scalar {
	return binOp{a, b, func(x, y float64) float64 { return x * y }}
}

// Div returns the lazy quotient a/b.
func Div(a, b Scalar) Scalar {
	return binOp{a, b, func(x, y float64) float64 { return x / y }}
}

// Min returns the lazy minimum of a and b.
func Min(a, b Scalar) Scalar { return binOp{a, b, math.Min} }

// Max returns the lazy maximum of a and b.
func Max(a, b Scalar) Scalar { return binOp{a, b, math.Max} }

// set writes x into s, which must be a *Value.
func set(s Scalar, x float64) {
	v, ok := s.(*Value)
	if !ok {
		panic("bbox: cannot set a derived endpoint")
	}
	v.Set(x)
}
