package backend

import (
	"math"
	"testing"
)

func TestArcPath(t *testing.T) {
	p, closed := ArcPath(10, 20, 4, 2, 0, 360, 0)
	if !closed {
		t.Error("full sweep should be closed")
	}
	x0, y0, x1, y1 := p.Bounds()
	if x0 != 8 || x1 != 12 || y0 < 18.9 || y1 > 21.1 {
		t.Errorf("bounds = (%v %v %v %v)", x0, y0, x1, y1)
	}

	p, closed = ArcPath(0, 0, 2, 2, 0, 90, 90)
	if closed {
		t.Error("quarter arc should be open")
	}
	subs, _ := p.Flatten(0.01)
	first := subs[0][0]
	// Rotating by 90 degrees moves the start from (1, 0) to (0, 1).
	if math.Abs(first.X) > 1e-9 || math.Abs(first.Y-1) > 1e-9 {
		t.Errorf("start = %v, want (0, 1)", first)
	}
}

func TestHatchPathDensity(t *testing.T) {
	count := func(pattern string) int {
		n := 0
		subs, _ := HatchPath(pattern, 0, 0, 72, 72, 72).Flatten(0.1)
		for range subs {
			n++
		}
		return n
	}
	if got := count("-"); got != 7 {
		t.Errorf("'-' lines = %d, want 7", got)
	}
	if got := count("--"); got != 13 {
		t.Errorf("'--' lines = %d, want 13", got)
	}
	if got := count("+"); got != 14 {
		t.Errorf("'+' lines = %d, want 14", got)
	}
	if got := count(""); got != 0 {
		t.Errorf("empty pattern lines = %d", got)
	}
}

func TestSplitFinite(t *testing.T) {
	nan := math.NaN()
	runs := SplitFinite([]float64{0, 1, nan, 3, 4, 5}, []float64{0, 1, 2, 3, 4, math.Inf(1)})
	if len(runs) != 2 || len(runs[0]) != 2 || len(runs[1]) != 2 {
		t.Errorf("runs = %v", runs)
	}
}
