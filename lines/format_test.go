package lines

import (
	"errors"
	"testing"

	"github.com/gogpu/gplot"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"r--o", Format{LineStyle: "--", Marker: "o", Color: "r"}},
		{"k:", Format{LineStyle: ":", Color: "k"}},
		{"g^", Format{LineStyle: "None", Marker: "^", Color: "g"}},
		{"-.", Format{LineStyle: "-."}},
		{"b", Format{Color: "b"}},
		{"o-", Format{LineStyle: "-", Marker: "o"}},
		{"red", Format{Color: "red"}},
		{"0.5", Format{Color: "0.5"}},
		{"", Format{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormatErrors(t *testing.T) {
	for _, in := range []string{"rg", "oo", "-:", "q"} {
		if _, err := ParseFormat(in); !errors.Is(err, gplot.ErrInvalidValue) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrInvalidValue", in, err)
		}
	}
}
