package colors

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Norm maps data values into [0, 1]. Values outside the range map below 0
// or above 1 unless the norm clips; masked or invalid values map to NaN.
type Norm interface {
	Call(x float64) float64
	Inverse(y float64) float64
	// Autoscale sets the limits from the finite extremes of xs.
	Autoscale(xs []float64)
	// AutoscaleNone sets only the limits that are not yet set.
	AutoscaleNone(xs []float64)
	// Scaled reports whether both limits are set.
	Scaled() bool
	Limits() (vmin, vmax float64)
	SetLimits(vmin, vmax float64)
}

// Normalize is the linear norm.
type Normalize struct {
	VMin, VMax float64
	Clip       bool

	minSet, maxSet bool
}

// NewNormalize returns a linear norm over [vmin, vmax].
func NewNormalize(vmin, vmax float64, clip bool) *Normalize {
	return &Normalize{VMin: vmin, VMax: vmax, Clip: clip, minSet: true, maxSet: true}
}

// Call maps x into [0, 1] (before clipping).
func (n *Normalize) Call(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return math.NaN()
	}
	vmin, vmax := n.VMin, n.VMax
	if vmin == vmax {
		return 0
	}
	if n.Clip {
		x = math.Max(vmin, math.Min(vmax, x))
	}
	return (x - vmin) / (vmax - vmin)
}

// Inverse maps a normalized value back to data units.
func (n *Normalize) Inverse(y float64) float64 {
	return n.VMin + y*(n.VMax-n.VMin)
}

// Autoscale sets both limits from xs.
func (n *Normalize) Autoscale(xs []float64) {
	if lo, hi, ok := finiteExtent(xs, false); ok {
		n.SetLimits(lo, hi)
	}
}

// AutoscaleNone fills whichever limits are unset.
func (n *Normalize) AutoscaleNone(xs []float64) {
	lo, hi, ok := finiteExtent(xs, false)
	if !ok {
		return
	}
	if !n.minSet {
		n.VMin, n.minSet = lo, true
	}
	if !n.maxSet {
		n.VMax, n.maxSet = hi, true
	}
}

// Scaled reports whether both limits are set.
func (n *Normalize) Scaled() bool { return n.minSet && n.maxSet }

// Limits returns vmin and vmax.
func (n *Normalize) Limits() (float64, float64) { return n.VMin, n.VMax }

// SetLimits sets vmin and vmax.
func (n *Normalize) SetLimits(vmin, vmax float64) {
	n.VMin, n.VMax = vmin, vmax
	n.minSet, n.maxSet = true, true
}

// LogNorm normalizes on a log10 scale. Non-positive values are masked.
type LogNorm struct {
	Normalize
}

// NewLogNorm returns a log norm over [vmin, vmax].
func NewLogNorm(vmin, vmax float64, clip bool) *LogNorm {
	return &LogNorm{Normalize: *NewNormalize(vmin, vmax, clip)}
}

// Call maps x into [0, 1] on a log scale.
func (n *LogNorm) Call(x float64) float64 {
	if x <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return math.NaN()
	}
	vmin, vmax := n.VMin, n.VMax
	if vmin <= 0 || vmin == vmax {
		return 0
	}
	if n.Clip {
		x = math.Max(vmin, math.Min(vmax, x))
	}
	lo := math.Log10(vmin)
	return (math.Log10(x) - lo) / (math.Log10(vmax) - lo)
}

// Inverse maps a normalized value back to data units.
func (n *LogNorm) Inverse(y float64) float64 {
	lo := math.Log10(n.VMin)
	return math.Pow(10, lo+y*(math.Log10(n.VMax)-lo))
}

// Autoscale sets both limits from the positive values of xs.
func (n *LogNorm) Autoscale(xs []float64) {
	if lo, hi, ok := finiteExtent(xs, true); ok {
		n.SetLimits(lo, hi)
	}
}

// AutoscaleNone fills unset limits from the positive values of xs.
func (n *LogNorm) AutoscaleNone(xs []float64) {
	lo, hi, ok := finiteExtent(xs, true)
	if !ok {
		return
	}
	if !n.minSet {
		n.VMin, n.minSet = lo, true
	}
	if !n.maxSet {
		n.VMax, n.maxSet = hi, true
	}
}

// finiteExtent returns the extremes of the finite (and, optionally,
// positive) values in xs.
func finiteExtent(xs []float64, positive bool) (lo, hi float64, ok bool) {
	valid := make([]float64, 0, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) || (positive && x <= 0) {
			continue
		}
		valid = append(valid, x)
	}
	if len(valid) == 0 {
		return 0, 0, false
	}
	return floats.Min(valid), floats.Max(valid), true
}
