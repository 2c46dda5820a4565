package bbox

import "math"

const (
	nonsingularExpander = 0.001
	nonsingularTiny     = 1e-15
)

// Nonsingular widens equal or non-finite limits into a small interval
// around them. Reversed input is sorted; when increasing is false the
// original direction is restored on output.
func Nonsingular(vmin, vmax float64, increasing bool) (float64, float64) {
	if math.IsNaN(vmin) || math.IsInf(vmin, 0) || math.IsNaN(vmax) || math.IsInf(vmax, 0) {
		return -nonsingularExpander, nonsingularExpander
	}
	swapped := false
	if vmax < vmin {
		vmin, vmax = vmax, vmin
		swapped = true
	}
	if vmax-vmin <= math.Max(math.Abs(vmin), math.Abs(vmax))*nonsingularTiny {
		if vmin == 0 {
			vmin, vmax = -nonsingularExpander, nonsingularExpander
		} else {
			vmin -= nonsingularExpander * math.Abs(vmin)
			vmax += nonsingularExpander * math.Abs(vmax)
		}
	}
	if swapped && !increasing {
		vmin, vmax = vmax, vmin
	}
	return vmin, vmax
}
