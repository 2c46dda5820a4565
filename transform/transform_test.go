package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestSeparableRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		view   *bbox.Bbox
		fx, fy FuncType
	}{
		{"linear", bbox.FromExtents(-3, 0, 7, 2), IdentityFunc, IdentityFunc},
		{"logx", bbox.FromExtents(0.1, -1, 1000, 1), Log10Func, IdentityFunc},
		{"loglog", bbox.FromExtents(1e-3, 1e-2, 1e3, 1e5), Log10Func, Log10Func},
		{"reversed", bbox.FromExtents(5, 10, -5, 0), IdentityFunc, IdentityFunc},
	}
	dst := bbox.FromExtents(60, 40, 540, 360)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewSeparable(tt.view, dst, NewFunc(tt.fx), NewFunc(tt.fy))
			for i := range 11 {
				f := float64(i) / 10
				x := tt.view.XMin() + f*(tt.view.XMax()-tt.view.XMin())
				y := tt.view.YMin() + f*(tt.view.YMax()-tt.view.YMin())
				dx, dy := tr.XY(x, y)
				rx, ry, err := tr.InverseXY(dx, dy)
				if err != nil {
					t.Fatal(err)
				}
				if !near(rx, x) || !near(ry, y) {
					t.Errorf("round trip (%v, %v) -> (%v, %v)", x, y, rx, ry)
				}
			}
		})
	}
}

func TestSeparableFollowsSharedCells(t *testing.T) {
	view := bbox.FromExtents(0, 0, 1, 1)
	tr := BboxTransform(view, bbox.FromExtents(0, 0, 100, 100))
	if x, _ := tr.XY(0.5, 0); x != 50 {
		t.Fatalf("x = %v, want 50", x)
	}
	view.IntervalX().SetBounds(0, 2)
	if x, _ := tr.XY(0.5, 0); x != 25 {
		t.Errorf("after limit change x = %v, want 25", x)
	}
}

func TestFreezeSnapshots(t *testing.T) {
	view := bbox.FromExtents(0, 0, 1, 1)
	tr := BboxTransform(view, bbox.FromExtents(0, 0, 100, 100))
	if err := tr.Freeze(); err != nil {
		t.Fatal(err)
	}
	view.IntervalX().SetBounds(0, 2)
	if x, _ := tr.XY(0.5, 0); x != 50 {
		t.Errorf("frozen x = %v, want 50", x)
	}
	tr.Thaw()
	if x, _ := tr.XY(0.5, 0); x != 25 {
		t.Errorf("thawed x = %v, want 25", x)
	}
}

func TestFreezeLogRejectsNonPositive(t *testing.T) {
	view := bbox.FromExtents(0, -1, 1, 10)
	tr := NewSeparable(view, bbox.UnitBbox(), nil, NewFunc(Log10Func))
	err := tr.Freeze()
	if !errors.Is(err, gplot.ErrInvalidRangeForLog) {
		t.Fatalf("Freeze() = %v, want ErrInvalidRangeForLog", err)
	}
	// A failed freeze leaves nothing frozen.
	view.IntervalX().SetBounds(0, 2)
	if x, _ := tr.XY(1, 1); x != 0.5 {
		t.Errorf("x leg stayed frozen: %v", x)
	}
}

func TestInverseDegenerate(t *testing.T) {
	tr := BboxTransform(bbox.FromExtents(1, 0, 1, 1), bbox.UnitBbox())
	if _, _, err := tr.InverseXY(0, 0); !errors.Is(err, gplot.ErrDegenerateInterval) {
		t.Errorf("InverseXY() error = %v, want ErrDegenerateInterval", err)
	}
}

func TestBlendSharesPipelines(t *testing.T) {
	view := bbox.FromExtents(0, 0, 10, 10)
	dst := bbox.FromExtents(0, 0, 100, 200)
	data := BboxTransform(view, dst)
	axesT := BboxTransform(bbox.UnitBbox(), dst)
	bl := Blend(data, axesT)

	x, y := bl.XY(5, 0.5)
	if x != 50 || y != 100 {
		t.Fatalf("Blend XY = (%v, %v), want (50, 100)", x, y)
	}
	fx, _ := data.Funcs()
	fx.SetType(Log10Func)
	view.IntervalX().SetBounds(1, 100)
	if x, _ := bl.XY(10, 0); !near(x, 50) {
		t.Errorf("blend did not follow scale change: x = %v", x)
	}
}

func TestOffsetAndAffine(t *testing.T) {
	dpi := bbox.NewValue(144)
	pts := ScaleTransform(bbox.Div(dpi, bbox.Const(72)), bbox.Div(dpi, bbox.Const(72)))
	data := BboxTransform(bbox.FromExtents(0, 0, 1, 1), bbox.FromExtents(0, 0, 100, 100))
	pts.SetOffset(0.5, 0.5, data)
	x, y := pts.XY(3, -2)
	if x != 56 || y != 46 {
		t.Errorf("XY = (%v, %v), want (56, 46)", x, y)
	}
	m, ok := pts.Affine()
	if !ok || m.A != 2 || m.E != 2 || m.D != 0 || m.C != 50 || m.F != 50 {
		t.Errorf("Affine() = %+v, %v", m, ok)
	}
}

func TestPolarRoundTrip(t *testing.T) {
	p := NewPolar(bbox.Const(2), bbox.FromExtents(0, 0, 400, 400))
	cx, cy := p.XY(0, 0)
	if cx != 200 || cy != 200 {
		t.Errorf("origin = (%v, %v), want (200, 200)", cx, cy)
	}
	for _, q := range []gplot.Point{{X: 0.3, Y: 1}, {X: 2, Y: 0.5}, {X: 5, Y: 2}} {
		x, y := p.XY(q.X, q.Y)
		th, r, err := p.InverseXY(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if !near(th, q.X) || !near(r, q.Y) {
			t.Errorf("polar round trip %v -> (%v, %v)", q, th, r)
		}
	}
	if p.IsSeparable() {
		t.Error("polar reports separable")
	}
}
