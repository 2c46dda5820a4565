package transform

import (
	"math"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
)

// Polar maps (theta, r), theta in radians, through (r cos theta,
// r sin theta) and then linearly from the square [-rmax, rmax]^2 onto dst.
type Polar struct {
	rmax bbox.Scalar
	dst  *bbox.Bbox

	frozen         int
	sx, sy, cx, cy float64
}

// NewPolar returns a polar transform whose radial extent follows rmax.
func NewPolar(rmax bbox.Scalar, dst *bbox.Bbox) *Polar {
	return &Polar{rmax: rmax, dst: dst}
}

// IsSeparable returns false.
func (p *Polar) IsSeparable() bool { return false }

func (p *Polar) coeffs() (sx, sy, cx, cy float64) {
	if p.frozen > 0 {
		return p.sx, p.sy, p.cx, p.cy
	}
	r := p.rmax.Get()
	x0, y0, x1, y1 := p.dst.Extents()
	return (x1 - x0) / (2 * r), (y1 - y0) / (2 * r), (x0 + x1) / 2, (y0 + y1) / 2
}

// XY maps (theta, r).
func (p *Polar) XY(theta, r float64) (float64, float64) {
	sx, sy, cx, cy := p.coeffs()
	s, c := math.Sincos(theta)
	return cx + sx*r*c, cy + sy*r*s
}

// InverseXY returns (theta, r) with theta in [0, 2pi).
func (p *Polar) InverseXY(x, y float64) (float64, float64, error) {
	sx, sy, cx, cy := p.coeffs()
	if sx == 0 || sy == 0 || math.IsInf(sx, 0) || math.IsInf(sy, 0) {
		return 0, 0, gplot.ErrDegenerateInterval
	}
	u, v := (x-cx)/sx, (y-cy)/sy
	theta := math.Atan2(v, u)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta, math.Hypot(u, v), nil
}

// NumerixXY maps parallel slices.
func (p *Polar) NumerixXY(ts, rs []float64) ([]float64, []float64) {
	n := min(len(ts), len(rs))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range n {
		xs[i], ys[i] = p.XY(ts[i], rs[i])
	}
	return xs, ys
}

// SeqXYTups maps a sequence of points.
func (p *Polar) SeqXYTups(pts []gplot.Point) []gplot.Point {
	out := make([]gplot.Point, len(pts))
	for i, q := range pts {
		out[i].X, out[i].Y = p.XY(q.X, q.Y)
	}
	return out
}

// Freeze snapshots the radial extent and destination box.
func (p *Polar) Freeze() error {
	if p.frozen == 0 {
		if p.rmax.Get() <= 0 {
			return gplot.ErrDegenerateInterval
		}
		p.sx, p.sy, p.cx, p.cy = p.coeffs()
	}
	p.frozen++
	return nil
}

// Thaw releases a Freeze.
func (p *Polar) Thaw() {
	if p.frozen > 0 {
		p.frozen--
	}
}
