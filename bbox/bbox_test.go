package bbox

import (
	"math"
	"testing"

	"github.com/gogpu/gplot"
)

func TestLazyScalarsTrackCells(t *testing.T) {
	w := NewValue(600)
	frac := NewValue(0.1)
	left := Mul(w, frac)
	if got := left.Get(); got != 60 {
		t.Fatalf("left = %v, want 60", got)
	}
	w.Set(800)
	if got := left.Get(); got != 80 {
		t.Errorf("after resize left = %v, want 80", got)
	}
}

func TestIntervalContainsHalfOpen(t *testing.T) {
	iv := NewInterval(0, 1)
	tests := []struct {
		x    float64
		want bool
	}{
		{0, true},
		{0.5, true},
		{1, false},
		{-0.1, false},
	}
	for _, tt := range tests {
		if got := iv.Contains(tt.x); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
	inv := NewInterval(1, 0)
	if !inv.Contains(0.5) {
		t.Error("inverted interval should contain 0.5")
	}
}

func TestIntervalUpdatePreservesOrientation(t *testing.T) {
	iv := NewInterval(5, 1)
	iv.Update([]float64{0, 7, math.NaN()}, false)
	lo, hi := iv.Bounds()
	if lo != 7 || hi != 0 {
		t.Errorf("Bounds() = (%v, %v), want (7, 0)", lo, hi)
	}
	iv.Update([]float64{2, 3}, true)
	lo, hi = iv.Bounds()
	if lo != 3 || hi != 2 {
		t.Errorf("ignore Update Bounds() = (%v, %v), want (3, 2)", lo, hi)
	}
}

func TestBboxSharedCells(t *testing.T) {
	a := FromExtents(0, 0, 1, 1)
	b := FromExtents(0, 0, 10, 10)
	b.ShareX(a)
	a.IntervalX().SetBounds(0, 5)
	if got := b.XMax(); got != 5 {
		t.Errorf("shared x max = %v, want 5", got)
	}
	if got := b.YMax(); got != 10 {
		t.Errorf("y max changed to %v", got)
	}
}

func TestBboxOps(t *testing.T) {
	b := FromBounds(0, 0, 4, 2)
	if !b.Contains(1, 1) || b.Contains(4, 1) {
		t.Error("Contains is not half-open")
	}
	o := FromExtents(3, 1, 6, 6)
	if !b.Overlaps(o) {
		t.Error("Overlaps() = false")
	}
	if b.Overlaps(FromExtents(4, 0, 5, 1)) {
		t.Error("touching boxes must not overlap")
	}
	n := b.CountContains([]gplot.Point{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 3.9, Y: 0}})
	if n != 2 {
		t.Errorf("CountContains() = %d, want 2", n)
	}

	c := b.DeepCopy()
	c.Scale(2, 0.5)
	l, bt, w, h := c.Bounds()
	if l != -2 || bt != 0.5 || w != 8 || h != 1 {
		t.Errorf("scaled bounds = %v %v %v %v", l, bt, w, h)
	}
	if b.Width() != 4 {
		t.Error("DeepCopy shares cells with the original")
	}
}

func TestBboxAllAndIntersection(t *testing.T) {
	u := BboxAll([]*Bbox{FromExtents(0, 0, 1, 1), FromExtents(-1, 2, 0.5, 3)})
	x0, y0, x1, y1 := u.Extents()
	if x0 != -1 || y0 != 0 || x1 != 1 || y1 != 3 {
		t.Errorf("BboxAll = %v", u)
	}
	if _, ok := Intersection(FromExtents(0, 0, 1, 1), FromExtents(2, 2, 3, 3)); ok {
		t.Error("disjoint boxes intersect")
	}
	in, ok := Intersection(FromExtents(0, 0, 2, 2), FromExtents(1, 1, 3, 3))
	if !ok || in.Width() != 1 || in.Height() != 1 {
		t.Errorf("Intersection = %v, %v", in, ok)
	}
}

func TestBboxUpdateSkipsNonFinite(t *testing.T) {
	b := UnitBbox()
	b.Update([]float64{2, math.Inf(1), 3}, []float64{5, 1, math.NaN()}, true)
	x0, y0, x1, y1 := b.Extents()
	if x0 != 2 || x1 != 2 || y0 != 5 || y1 != 5 {
		t.Errorf("Extents() = %v %v %v %v", x0, y0, x1, y1)
	}
}

func TestNonsingular(t *testing.T) {
	tests := []struct {
		name       string
		vmin, vmax float64
		increasing bool
		wantLo     float64
		wantHi     float64
	}{
		{"regular", 0, 1, true, 0, 1},
		{"zero", 0, 0, true, -0.001, 0.001},
		{"equal", 10, 10, true, 9.99, 10.01},
		{"reversed increasing", 2, 1, true, 1, 2},
		{"reversed kept", 2, 1, false, 2, 1},
		{"infinite", math.Inf(-1), 1, true, -0.001, 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := Nonsingular(tt.vmin, tt.vmax, tt.increasing)
			if math.Abs(lo-tt.wantLo) > 1e-12 || math.Abs(hi-tt.wantHi) > 1e-12 {
				t.Errorf("Nonsingular(%v, %v) = (%v, %v), want (%v, %v)",
					tt.vmin, tt.vmax, lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestSetDerivedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("setting a derived endpoint did not panic")
		}
	}()
	b := Lazy(Const(0), Const(0), Add(Const(1), Const(1)), Const(1))
	b.SetExtents(0, 0, 1, 1)
}
