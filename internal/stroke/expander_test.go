package stroke

import (
	"math"
	"testing"

	"github.com/gogpu/gplot"
)

func totalArea(polys [][]gplot.Point) float64 {
	var a float64
	for _, p := range polys {
		a += SignedArea(p)
	}
	return a
}

func TestNewStrokeExpander(t *testing.T) {
	e := NewStrokeExpander(Stroke{Width: 2})
	if e.style.MiterLimit != 4 {
		t.Errorf("MiterLimit = %v, want 4", e.style.MiterLimit)
	}
	if e.tolerance != 0.1 {
		t.Errorf("tolerance = %v, want 0.1", e.tolerance)
	}
	e.SetTolerance(-1)
	if e.tolerance != 0.1 {
		t.Error("negative tolerance should be ignored")
	}
	e.SetTolerance(0.5)
	if e.tolerance != 0.5 {
		t.Errorf("tolerance = %v, want 0.5", e.tolerance)
	}
}

func TestExpandStraightLine(t *testing.T) {
	tests := []struct {
		name string
		cap  LineCap
		area float64
	}{
		{"butt", LineCapButt, 20},
		{"square", LineCapSquare, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewStrokeExpander(Stroke{Width: 2, Cap: tt.cap})
			polys := e.Expand([]gplot.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, false)
			if len(polys) != 1 {
				t.Fatalf("got %d polygons, want 1", len(polys))
			}
			if got := totalArea(polys); math.Abs(got-tt.area) > 1e-9 {
				t.Errorf("area = %v, want %v", got, tt.area)
			}
		})
	}
}

func TestExpandRoundCapAddsCircles(t *testing.T) {
	e := NewStrokeExpander(Stroke{Width: 2, Cap: LineCapRound})
	polys := e.Expand([]gplot.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, false)
	if len(polys) != 3 {
		t.Fatalf("got %d polygons, want 3", len(polys))
	}
	// Each cap is an inscribed polygon of the unit circle.
	if a := SignedArea(polys[1]); a < 2.5 || a > math.Pi {
		t.Errorf("cap area = %v, want just under pi", a)
	}
}

func TestExpandPolygonsAreCounterClockwise(t *testing.T) {
	joins := []LineJoin{LineJoinMiter, LineJoinRound, LineJoinBevel}
	pts := []gplot.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 3}}
	for _, j := range joins {
		e := NewStrokeExpander(Stroke{Width: 3, Join: j})
		for _, closed := range []bool{false, true} {
			for i, p := range e.Expand(pts, closed) {
				if SignedArea(p) < 0 {
					t.Errorf("join %v closed=%v: polygon %d is clockwise", j, closed, i)
				}
			}
		}
	}
}

func TestExpandMiterJoin(t *testing.T) {
	// A right-angle corner: the miter fills the missing outer square.
	pts := []gplot.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	miter := NewStrokeExpander(Stroke{Width: 2, Join: LineJoinMiter}).Expand(pts, false)
	bevel := NewStrokeExpander(Stroke{Width: 2, Join: LineJoinBevel}).Expand(pts, false)
	if len(miter) != 3 || len(bevel) != 3 {
		t.Fatalf("got %d/%d polygons, want 3/3", len(miter), len(bevel))
	}
	if a := SignedArea(miter[2]); math.Abs(a-1) > 1e-9 {
		t.Errorf("miter join area = %v, want 1", a)
	}
	if a := SignedArea(bevel[2]); math.Abs(a-0.5) > 1e-9 {
		t.Errorf("bevel join area = %v, want 0.5", a)
	}
}

func TestExpandMiterLimitFallsBackToBevel(t *testing.T) {
	// A very sharp turn exceeds the miter limit.
	pts := []gplot.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 0.5}}
	polys := NewStrokeExpander(Stroke{Width: 2, Join: LineJoinMiter, MiterLimit: 2}).Expand(pts, false)
	if n := len(polys[2]); n != 3 {
		t.Errorf("join has %d vertices, want 3 (bevel)", n)
	}
}

func TestExpandCollinearSkipsJoin(t *testing.T) {
	pts := []gplot.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	polys := NewStrokeExpander(Stroke{Width: 2}).Expand(pts, false)
	if len(polys) != 2 {
		t.Errorf("got %d polygons, want 2", len(polys))
	}
}

func TestExpandDegenerate(t *testing.T) {
	e := NewStrokeExpander(Stroke{Width: 2})
	if polys := e.Expand(nil, false); polys != nil {
		t.Errorf("empty input: got %v", polys)
	}
	if polys := e.Expand([]gplot.Point{{X: 1, Y: 1}, {X: 1, Y: 1}}, false); polys != nil {
		t.Errorf("butt dot: got %v, want nil", polys)
	}
	sq := NewStrokeExpander(Stroke{Width: 2, Cap: LineCapSquare})
	if polys := sq.Expand([]gplot.Point{{X: 1, Y: 1}}, false); len(polys) != 1 || SignedArea(polys[0]) != 4 {
		t.Errorf("square dot: got %v", polys)
	}
	if polys := NewStrokeExpander(Stroke{Width: 0}).Expand([]gplot.Point{{X: 0}, {X: 1}}, false); polys != nil {
		t.Errorf("zero width: got %v", polys)
	}
}

func TestExpandSkipsNonFinite(t *testing.T) {
	pts := []gplot.Point{{X: 0, Y: 0}, {X: math.NaN(), Y: 0}, {X: 10, Y: 0}}
	polys := NewStrokeExpander(Stroke{Width: 2}).Expand(pts, false)
	if got := totalArea(polys); math.Abs(got-20) > 1e-9 {
		t.Errorf("area = %v, want 20", got)
	}
}

func TestExpandPath(t *testing.T) {
	p := gplot.NewPath()
	p.Rectangle(0, 0, 10, 10)
	p.MoveTo(20, 0)
	p.LineTo(30, 0)
	polys := NewStrokeExpander(Stroke{Width: 1}).ExpandPath(p)
	// Closed square: 4 sides + 4 joins; open segment: 1.
	if len(polys) != 9 {
		t.Errorf("got %d polygons, want 9", len(polys))
	}
}
