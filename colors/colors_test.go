package colors

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/gplot"
)

var approx = cmpopts.EquateApprox(0, 1e-3)

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name string
		spec any
		want RGBA
	}{
		{"shortcut", "r", RGB(1, 0, 0)},
		{"shortcut green", "g", RGB(0, 0.5019, 0)},
		{"css", "steelblue", RGB(0x46/255.0, 0x82/255.0, 0xb4/255.0)},
		{"css mixed case", "SteelBlue", RGB(0x46/255.0, 0x82/255.0, 0xb4/255.0)},
		{"grey", "0.75", RGB(0.75, 0.75, 0.75)},
		{"hex", "#ff8000", RGB(1, 0x80/255.0, 0)},
		{"hex alpha", "#ff000080", RGBA{1, 0, 0, 0x80 / 255.0}},
		{"tuple3", [3]float64{0.1, 0.2, 0.3}, RGB(0.1, 0.2, 0.3)},
		{"tuple4", []float64{0.1, 0.2, 0.3, 0.4}, RGBA{0.1, 0.2, 0.3, 0.4}},
		{"image color", color.NRGBA{R: 255, A: 255}, RGB(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToRGBA(tt.spec)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("ToRGBA(%v) mismatch (-want +got):\n%s", tt.spec, diff)
			}
		})
	}
}

func TestToRGBAErrors(t *testing.T) {
	for _, spec := range []any{"notacolor", "1.5", "#12", []float64{1, 2}, [3]float64{0, 0, 2}, 0.5, nil} {
		_, err := ToRGBA(spec)
		if !errors.Is(err, gplot.ErrColorFormat) {
			t.Errorf("ToRGBA(%v) error = %v, want ErrColorFormat", spec, err)
		}
		if IsColorLike(spec) {
			t.Errorf("IsColorLike(%v) = true", spec)
		}
	}
	if !IsNone("None") || IsNone("k") {
		t.Error("IsNone mismatch")
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalize(0, 10, false)
	if got := n.Call(5); got != 0.5 {
		t.Errorf("Call(5) = %v", got)
	}
	if got := n.Call(20); got != 2 {
		t.Errorf("unclipped Call(20) = %v, want 2", got)
	}
	n.Clip = true
	if got := n.Call(20); got != 1 {
		t.Errorf("clipped Call(20) = %v, want 1", got)
	}
	if !math.IsNaN(n.Call(math.NaN())) {
		t.Error("NaN is not masked")
	}

	var auto Normalize
	if auto.Scaled() {
		t.Error("zero Normalize reports scaled")
	}
	auto.Autoscale([]float64{3, -1, math.Inf(1), 7})
	lo, hi := auto.Limits()
	if lo != -1 || hi != 7 {
		t.Errorf("Autoscale limits = (%v, %v)", lo, hi)
	}
}

func TestLogNorm(t *testing.T) {
	n := NewLogNorm(1, 1000, false)
	if got := n.Call(10); math.Abs(got-1.0/3) > 1e-12 {
		t.Errorf("Call(10) = %v, want 1/3", got)
	}
	if !math.IsNaN(n.Call(-5)) {
		t.Error("non-positive value is not masked")
	}
	if got := n.Inverse(2.0 / 3); math.Abs(got-100) > 1e-9 {
		t.Errorf("Inverse(2/3) = %v, want 100", got)
	}
}

func TestColormapLookup(t *testing.T) {
	gray := MustGet("gray")
	if gray.N() != DefaultN {
		t.Fatalf("N() = %d", gray.N())
	}
	if diff := cmp.Diff(Black, gray.At(0), approx); diff != "" {
		t.Errorf("At(0): %s", diff)
	}
	if diff := cmp.Diff(White, gray.At(1), approx); diff != "" {
		t.Errorf("At(1): %s", diff)
	}
	if gray.At(-1) != gray.At(0) || gray.At(2) != gray.At(1) {
		t.Error("out-of-range values are not clamped to the ends")
	}
	gray.SetBad(Red)
	if gray.At(math.NaN()) != Red {
		t.Error("bad color not used for NaN")
	}
	if MustGet("gray").At(math.NaN()) == Red {
		t.Error("Get returned a shared colormap")
	}
}

func TestColormapReversedAndRegistry(t *testing.T) {
	jet := MustGet("jet")
	jr, err := Get("jet_r")
	if err != nil {
		t.Fatal(err)
	}
	if jr.Name() != "jet_r" || jr.At(0) != jet.At(1) {
		t.Errorf("jet_r mismatch: %v vs %v", jr.At(0), jet.At(1))
	}
	if _, err := Get("nope"); !errors.Is(err, gplot.ErrInvalidValue) {
		t.Errorf("Get(nope) error = %v", err)
	}
	names := Colormaps()
	for _, want := range []string{"jet", "hot", "hsv", "pink", "prism", "flag", "binary"} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("colormap %q not registered", want)
		}
	}
}

func TestScalarMappable(t *testing.T) {
	m := NewScalarMappable(nil, MustGet("gray"))
	calls := 0
	id := m.AddCallback(func(*ScalarMappable) { calls++ })
	m.SetArray([]float64{0, 5, 10})
	m.Autoscale()
	cols := m.Colors(0.5)
	if cols[0].R > 0.01 || cols[2].R < 0.99 || cols[1].A != 0.5 {
		t.Errorf("Colors() = %v", cols)
	}
	m.RemoveCallback(id)
	m.RemoveCallback(999)
	_ = m.SetClim(0, 1)
	if calls != 2 {
		t.Errorf("callback calls = %d, want 2", calls)
	}
	if err := m.SetClim(2, 1); !errors.Is(err, gplot.ErrInvalidValue) {
		t.Errorf("SetClim(2, 1) error = %v", err)
	}
}
