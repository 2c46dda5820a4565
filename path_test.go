package gplot

import (
	"math"
	"testing"
)

func TestPathFlattenPolygon(t *testing.T) {
	p := NewPath()
	p.Polygon([]Point{{0, 0}, {1, 0}, {1, 1}})
	subs, closed := p.Flatten(0.1)
	if len(subs) != 1 || !closed[0] {
		t.Fatalf("Flatten() = %v %v, want one closed subpath", subs, closed)
	}
	if len(subs[0]) != 3 {
		t.Errorf("len(subpath) = %d, want 3", len(subs[0]))
	}
}

func TestPathFlattenCircleStaysOnRadius(t *testing.T) {
	p := NewPath()
	p.Circle(0, 0, 10)
	subs, _ := p.Flatten(0.05)
	for _, pt := range subs[0] {
		if r := pt.Length(); math.Abs(r-10) > 0.1 {
			t.Fatalf("flattened point %v at radius %v, want ~10", pt, r)
		}
	}
}

func TestPathArcEndpoints(t *testing.T) {
	p := NewPath()
	p.Arc(0, 0, 2, 1, 0, math.Pi/2)
	xmin, ymin, xmax, ymax := p.Bounds()
	if xmin < -1e-9 || ymin < -1e-9 || xmax > 2+1e-9 || ymax > 1.5 {
		t.Errorf("Bounds() = %v %v %v %v", xmin, ymin, xmax, ymax)
	}
	last := p.Elements()[len(p.Elements())-1].(CubicTo).Point
	if math.Abs(last.X) > 1e-9 || math.Abs(last.Y-1) > 1e-9 {
		t.Errorf("arc end = %v, want (0,1)", last)
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 1, 1)
	q := p.Transform(Scale(2, 3))
	_, _, xmax, ymax := q.Bounds()
	if xmax != 2 || ymax != 3 {
		t.Errorf("transformed bounds max = (%v,%v), want (2,3)", xmax, ymax)
	}
}
