package gplot

import (
	"math"
	"slices"
)

// Dash is an on/off stroke pattern in points, starting Offset points into
// the cycle. An odd-length Array repeats itself once per cycle, so {5}
// draws like {5, 5}.
type Dash struct {
	Array  []float64
	Offset float64
}

// Dash patterns of the named line styles, in points.
var (
	DashDashed  = []float64{6, 6}
	DashDashDot = []float64{3, 5, 1, 5}
	DashDotted  = []float64{1, 3}
)

// NewDash returns the pattern of alternating on and off lengths. Signs are
// dropped. The result is nil, a solid line, when lengths is empty or all
// zero.
func NewDash(lengths ...float64) *Dash {
	arr := make([]float64, len(lengths))
	solid := true
	for i, l := range lengths {
		arr[i] = math.Abs(l)
		solid = solid && l == 0
	}
	if solid {
		return nil
	}
	return &Dash{Array: arr}
}

// DashForStyle returns the pattern of a line style name. Solid and
// invisible styles yield nil; ok is false for unknown names.
func DashForStyle(style string) (d *Dash, ok bool) {
	switch style {
	case "-", "solid", "steps", "None", "none", "":
		return nil, true
	case "--", "dashed":
		return NewDash(DashDashed...), true
	case "-.", "dashdot":
		return NewDash(DashDashDot...), true
	case ":", "dotted":
		return NewDash(DashDotted...), true
	}
	return nil, false
}

// WithOffset returns a copy of d starting offset points into the cycle.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: slices.Clone(d.Array), Offset: offset}
}

// cycle is the length of one full on/off period.
func (d *Dash) cycle() float64 {
	if d == nil {
		return 0
	}
	var sum float64
	for _, l := range d.Array {
		sum += l
	}
	if len(d.Array)%2 == 1 {
		sum *= 2
	}
	return sum
}

// IsDashed reports whether d breaks the line. A nil Dash is solid.
func (d *Dash) IsDashed() bool { return d.cycle() > 0 }

// Clone returns a deep copy; nil stays nil.
func (d *Dash) Clone() *Dash { return d.WithOffset(d.offset()) }

func (d *Dash) offset() float64 {
	if d == nil {
		return 0
	}
	return d.Offset
}

// NormalizedOffset folds Offset into [0, cycle).
func (d *Dash) NormalizedOffset() float64 {
	c := d.cycle()
	if c <= 0 {
		return 0
	}
	o := math.Mod(d.Offset, c)
	if o < 0 {
		o += c
	}
	return o
}

// Scale converts the pattern to another unit, such as device pixels at
// factor dpi/72. Non-positive factors return d unchanged.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 {
		return d
	}
	out := &Dash{Array: make([]float64, len(d.Array)), Offset: d.Offset * factor}
	for i, l := range d.Array {
		out.Array[i] = l * factor
	}
	return out
}

// Effective returns one full cycle, doubling odd-length patterns.
func (d *Dash) Effective() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	return append(slices.Clone(d.Array), d.Array...)
}
