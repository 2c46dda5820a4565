package stroke

import "github.com/gogpu/gplot"

// Dasher splits polylines into the "on" pieces of a dash pattern.
type Dasher struct {
	pattern []float64
	offset  float64
}

// NewDasher returns a dasher for d, which must already be in the units of
// the polylines. It returns nil for solid lines.
func NewDasher(d *gplot.Dash) *Dasher {
	if !d.IsDashed() {
		return nil
	}
	return &Dasher{pattern: d.Effective(), offset: d.NormalizedOffset()}
}

// Split returns the dashes of pts. A closed polyline is dashed across its
// closing segment as well.
func (ds *Dasher) Split(pts []gplot.Point, closed bool) [][]gplot.Point {
	if ds == nil {
		return [][]gplot.Point{pts}
	}
	if closed && len(pts) > 1 {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}

	// Advance the pattern by the offset.
	idx := 0
	remain := ds.pattern[0]
	for off := ds.offset; off > 0; {
		if off < remain {
			remain -= off
			break
		}
		off -= remain
		idx = (idx + 1) % len(ds.pattern)
		remain = ds.pattern[idx]
	}

	var out [][]gplot.Point
	var cur []gplot.Point
	on := idx%2 == 0
	if on && len(pts) > 0 {
		cur = []gplot.Point{pts[0]}
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen-pos > remain {
			pos += remain
			p := a.Lerp(b, pos/segLen)
			if on {
				cur = append(cur, p)
				out = append(out, cur)
				cur = nil
			} else {
				cur = []gplot.Point{p}
			}
			on = !on
			idx = (idx + 1) % len(ds.pattern)
			remain = ds.pattern[idx]
		}
		remain -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}
