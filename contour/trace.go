package contour

import (
	"fmt"
	"math"

	"github.com/gogpu/gplot"
)

// Grid is a rectilinear grid of values: Z[j][i] sits at (X[i], Y[j]).
type Grid struct {
	X, Y []float64
	Z    [][]float64
}

// NewGrid validates the shapes. Nil x or y selects column or row
// indices. NaN values in z mask the triangles touching them.
func NewGrid(x, y []float64, z [][]float64) (*Grid, error) {
	ny := len(z)
	if ny < 2 {
		return nil, &gplot.ShapeError{Op: "contour", Got: []int{ny}, Want: []int{2}}
	}
	nx := len(z[0])
	for _, row := range z {
		if len(row) != nx {
			return nil, &gplot.ShapeError{Op: "contour", Got: []int{ny, len(row)}, Want: []int{ny, nx}}
		}
	}
	if nx < 2 {
		return nil, &gplot.ShapeError{Op: "contour", Got: []int{ny, nx}, Want: []int{ny, 2}}
	}
	if x == nil {
		x = indices(nx)
	}
	if y == nil {
		y = indices(ny)
	}
	if len(x) != nx || len(y) != ny {
		return nil, &gplot.ShapeError{Op: "contour", Got: []int{len(y), len(x)}, Want: []int{ny, nx}}
	}
	return &Grid{X: x, Y: y, Z: z}, nil
}

func indices(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// ZRange returns the finite extent of Z.
func (g *Grid) ZRange() (lo, hi float64, err error) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range g.Z {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("contour: %w: no finite values", gplot.ErrInvalidValue)
	}
	return lo, hi, nil
}

// Bounds returns the extent of the grid coordinates.
func (g *Grid) Bounds() (x0, y0, x1, y1 float64) {
	x0, x1 = minMax(g.X)
	y0, y1 = minMax(g.Y)
	return x0, y0, x1, y1
}

func minMax(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return lo, hi
}

type vertex struct {
	p gplot.Point
	z float64
}

// triangles calls fn for every unmasked triangle. Each cell is split along
// its lower-left to upper-right diagonal. Vertex ids are j*nx+i.
func (g *Grid) triangles(fn func(ids [3]int, v [3]vertex)) {
	nx := len(g.X)
	at := func(i, j int) vertex { return vertex{gplot.Pt(g.X[i], g.Y[j]), g.Z[j][i]} }
	for j := 0; j+1 < len(g.Y); j++ {
		for i := 0; i+1 < nx; i++ {
			a, b, c, d := j*nx+i, j*nx+i+1, (j+1)*nx+i+1, (j+1)*nx+i
			va, vb, vc, vd := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			for _, tri := range [2]struct {
				ids [3]int
				v   [3]vertex
			}{
				{[3]int{a, b, c}, [3]vertex{va, vb, vc}},
				{[3]int{a, c, d}, [3]vertex{va, vc, vd}},
			} {
				if masked(tri.v) {
					continue
				}
				fn(tri.ids, tri.v)
			}
		}
	}
}

func masked(v [3]vertex) bool {
	for _, x := range v {
		if math.IsNaN(x.z) || math.IsInf(x.z, 0) {
			return true
		}
	}
	return false
}

type edgeKey [2]int

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

func lerp(a, b vertex, level float64) gplot.Point {
	t := (level - a.z) / (b.z - a.z)
	return gplot.Pt(a.p.X+t*(b.p.X-a.p.X), a.p.Y+t*(b.p.Y-a.p.Y))
}

// Lines returns the polylines where Z crosses level. Closed loops repeat
// their first point at the end.
func (g *Grid) Lines(level float64) [][]gplot.Point {
	type segment struct{ ends [2]edgeKey }
	var segs []segment
	points := map[edgeKey]gplot.Point{}
	adj := map[edgeKey][]int{}

	g.triangles(func(ids [3]int, v [3]vertex) {
		var ends []edgeKey
		for k := range 3 {
			a, b := k, (k+1)%3
			if (v[a].z < level) == (v[b].z < level) {
				continue
			}
			key := keyOf(ids[a], ids[b])
			if _, ok := points[key]; !ok {
				points[key] = lerp(v[a], v[b], level)
			}
			ends = append(ends, key)
		}
		if len(ends) != 2 {
			return
		}
		adj[ends[0]] = append(adj[ends[0]], len(segs))
		adj[ends[1]] = append(adj[ends[1]], len(segs))
		segs = append(segs, segment{[2]edgeKey{ends[0], ends[1]}})
	})

	used := make([]bool, len(segs))
	// follow walks from key along unused segments and returns the keys
	// visited after key.
	follow := func(key edgeKey) []edgeKey {
		var out []edgeKey
		for {
			next := -1
			for _, s := range adj[key] {
				if !used[s] {
					next = s
					break
				}
			}
			if next < 0 {
				return out
			}
			used[next] = true
			e := segs[next].ends
			if e[0] == key {
				key = e[1]
			} else {
				key = e[0]
			}
			out = append(out, key)
		}
	}

	var lines [][]gplot.Point
	for s := range segs {
		if used[s] {
			continue
		}
		used[s] = true
		start, end := segs[s].ends[0], segs[s].ends[1]
		fwd := follow(end)
		back := follow(start)
		keys := make([]edgeKey, 0, len(back)+2+len(fwd))
		for i := len(back) - 1; i >= 0; i-- {
			keys = append(keys, back[i])
		}
		keys = append(keys, start, end)
		keys = append(keys, fwd...)
		line := make([]gplot.Point, len(keys))
		for i, k := range keys {
			line[i] = points[k]
		}
		lines = append(lines, line)
	}
	return lines
}

// Bands returns polygons covering lo <= Z <= hi, one or more per
// triangle.
func (g *Grid) Bands(lo, hi float64) [][]gplot.Point {
	var polys [][]gplot.Point
	g.triangles(func(_ [3]int, v [3]vertex) {
		poly := clip(v[:], lo, true)
		poly = clip(poly, hi, false)
		if len(poly) < 3 {
			return
		}
		pts := make([]gplot.Point, len(poly))
		for i, x := range poly {
			pts[i] = x.p
		}
		polys = append(polys, pts)
	})
	return polys
}

// clip keeps the part of poly with z >= level (above) or z <= level.
func clip(poly []vertex, level float64, above bool) []vertex {
	inside := func(v vertex) bool {
		if above {
			return v.z >= level
		}
		return v.z <= level
	}
	var out []vertex
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		cin, pin := inside(cur), inside(prev)
		if cin != pin {
			out = append(out, vertex{lerp(prev, cur, level), level})
		}
		if cin {
			out = append(out, cur)
		}
	}
	return out
}
