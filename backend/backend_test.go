package backend

import (
	"errors"
	"io"
	"testing"

	"github.com/gogpu/gplot"
)

type nopOutput struct{ Renderer }

func (nopOutput) Print(io.Writer) error { return nil }

func TestRegistry(t *testing.T) {
	const format = "test-format"
	t.Cleanup(func() { Unregister(format) })

	var gotW, gotH, gotDPI float64
	Register(format, func(w, h float64, opts Options) (Output, error) {
		gotW, gotH, gotDPI = w, h, opts.DPI
		return nopOutput{}, nil
	})
	if !IsRegistered("TEST-FORMAT") {
		t.Error("IsRegistered is case-sensitive")
	}
	if _, err := New(format, 6, 4, Options{DPI: 100}); err != nil {
		t.Fatal(err)
	}
	if gotW != 6 || gotH != 4 || gotDPI != 100 {
		t.Errorf("factory got (%v, %v, %v)", gotW, gotH, gotDPI)
	}

	found := false
	for _, f := range Formats() {
		found = found || f == format
	}
	if !found {
		t.Errorf("Formats() = %v, missing %q", Formats(), format)
	}

	_, err := New("nope", 1, 1, Options{})
	if !errors.Is(err, gplot.ErrUnknownFormat) {
		t.Errorf("New(nope) error = %v, want ErrUnknownFormat", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil factory", func() { Register("nil-factory", nil) }},
		{"duplicate", func() {
			f := func(float64, float64, Options) (Output, error) { return nil, nil }
			Register("dup-format", f)
			defer Unregister("dup-format")
			Register("dup-format", f)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct{ path, want string }{
		{"out.PNG", "png"},
		{"dir.v1/figure.svg", "svg"},
		{"noext", "pdf"},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path, "pdf"); got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestGraphicsContextLineStyle(t *testing.T) {
	gc := NewGraphicsContext()
	tests := []struct {
		style  string
		dashed bool
	}{
		{"-", false},
		{"--", true},
		{"-.", true},
		{":", true},
		{"None", false},
	}
	for _, tt := range tests {
		if err := gc.SetLineStyle(tt.style); err != nil {
			t.Fatal(err)
		}
		if gc.Dash.IsDashed() != tt.dashed {
			t.Errorf("SetLineStyle(%q) dashed = %v", tt.style, gc.Dash.IsDashed())
		}
	}
	if !gc.Invisible() {
		t.Error("None style should be invisible")
	}
	if err := gc.SetLineStyle("~~"); !errors.Is(err, gplot.ErrInvalidValue) {
		t.Errorf("SetLineStyle(~~) error = %v", err)
	}

	gc.SetDashes(2, []float64{4, 2})
	cp := gc.Copy()
	cp.Dash.Array[0] = 99
	if gc.Dash.Array[0] != 4 || gc.Dash.Offset != 2 {
		t.Errorf("Copy shares the dash pattern: %+v", gc.Dash)
	}
	gc.Alpha = 0.5
	if gc.StrokeColor().A != 0.5 {
		t.Errorf("StrokeColor alpha = %v", gc.StrokeColor().A)
	}
}

func TestStyleParsing(t *testing.T) {
	if c, err := ParseCapStyle("round"); err != nil || c != CapRound {
		t.Errorf("ParseCapStyle(round) = %v, %v", c, err)
	}
	if j, err := ParseJoinStyle("bevel"); err != nil || j != JoinBevel {
		t.Errorf("ParseJoinStyle(bevel) = %v, %v", j, err)
	}
	if _, err := ParseCapStyle("square"); err == nil {
		t.Error("ParseCapStyle(square) succeeded")
	}
}
