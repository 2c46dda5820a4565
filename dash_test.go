package gplot

import (
	"math"
	"testing"
)

func TestNewDash(t *testing.T) {
	tests := []struct {
		name      string
		lengths   []float64
		wantNil   bool
		wantArray []float64
	}{
		{name: "empty input returns nil", lengths: []float64{}, wantNil: true},
		{name: "all zeros returns nil", lengths: []float64{0, 0, 0}, wantNil: true},
		{name: "dashed", lengths: DashDashed, wantArray: []float64{6, 6}},
		{name: "single value", lengths: []float64{5}, wantArray: []float64{5}},
		{name: "negative values become absolute", lengths: []float64{-5, 3}, wantArray: []float64{5, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDash(tt.lengths...)
			if tt.wantNil {
				if got != nil {
					t.Errorf("NewDash() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("NewDash() = nil, want non-nil")
			}
			if len(got.Array) != len(tt.wantArray) {
				t.Fatalf("len(Array) = %d, want %d", len(got.Array), len(tt.wantArray))
			}
			for i := range got.Array {
				if got.Array[i] != tt.wantArray[i] {
					t.Errorf("Array[%d] = %v, want %v", i, got.Array[i], tt.wantArray[i])
				}
			}
		})
	}
}

func TestDashCycle(t *testing.T) {
	if got := NewDash(5).cycle(); got != 10 {
		t.Errorf("odd pattern cycle = %v, want 10", got)
	}
	if got := NewDash(DashDashDot...).cycle(); got != 14 {
		t.Errorf("dash-dot cycle = %v, want 14", got)
	}
	var nilDash *Dash
	if nilDash.IsDashed() {
		t.Error("nil dash reports dashed")
	}
	if nilDash.Clone() != nil {
		t.Error("Clone of nil dash is not nil")
	}
}

func TestDashForStyle(t *testing.T) {
	tests := []struct {
		style  string
		dashed bool
		ok     bool
	}{
		{"-", false, true},
		{"None", false, true},
		{"--", true, true},
		{"dashdot", true, true},
		{":", true, true},
		{"~", false, false},
	}
	for _, tt := range tests {
		d, ok := DashForStyle(tt.style)
		if ok != tt.ok || d.IsDashed() != tt.dashed {
			t.Errorf("DashForStyle(%q) = (%v, %v), want dashed=%v ok=%v", tt.style, d, ok, tt.dashed, tt.ok)
		}
	}
}

func TestDashNormalizedOffset(t *testing.T) {
	d := NewDash(6, 6).WithOffset(-3)
	if got := d.NormalizedOffset(); math.Abs(got-9) > 1e-12 {
		t.Errorf("NormalizedOffset() = %v, want 9", got)
	}
}

func TestDashScaleAndEffective(t *testing.T) {
	d := NewDash(1, 3).WithOffset(2).Scale(2)
	if d.Array[0] != 2 || d.Array[1] != 6 || d.Offset != 4 {
		t.Errorf("Scale(2) = %+v", d)
	}
	eff := NewDash(2, 1, 4).Effective()
	if len(eff) != 6 || eff[3] != 2 {
		t.Errorf("Effective() = %v, want duplicated pattern", eff)
	}
}
