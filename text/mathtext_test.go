package text

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/gplot"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []Segment
	}{
		{"plain", []Segment{{Text: "plain"}}},
		{"a$b$c", []Segment{{Text: "a"}, {Text: "b", Math: true}, {Text: "c"}}},
		{"$x$", []Segment{{Text: "x", Math: true}}},
		{`cost \$5`, []Segment{{Text: "cost $5"}}},
		{`\$a$b$`, []Segment{{Text: "$a"}, {Text: "b", Math: true}}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Split(tt.in)
			if err != nil {
				t.Fatalf("Split(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSplitUnbalanced(t *testing.T) {
	for _, in := range []string{"$a", "a$b$c$", `$x\$`} {
		if _, err := Split(in); !errors.Is(err, gplot.ErrUnbalancedMathDelimiters) {
			t.Errorf("Split(%q) error = %v, want ErrUnbalancedMathDelimiters", in, err)
		}
	}
	if IsMath("$a") {
		t.Error("IsMath reported an unbalanced string as math")
	}
	if !IsMath("x = $a$") || IsMath(`\$5`) {
		t.Error("IsMath misclassified a string")
	}
}

func TestParseMath(t *testing.T) {
	tests := []struct {
		in   string
		want []atom
	}{
		{"x^2", []atom{{"x", 1, 0}, {"2", 0.7, 0.45}}},
		{"10^{-3}", []atom{{"10", 1, 0}, {"−3", 0.7, 0.45}}},
		{`\alpha_i`, []atom{{"α", 1, 0}, {"i", 0.7, -0.2}}},
		{`\mathrm{sin}\,x`, []atom{{"sin x", 1, 0}}},
		{"a b", []atom{{"ab", 1, 0}}},
		{"e^{x^2}", []atom{{"e", 1, 0}, {"x", 0.7, 0.45}, {"2", 0.49, 0.765}}},
		{`2\times10^{\pi}`, []atom{{"2×10", 1, 0}, {"π", 0.7, 0.45}}},
		{`\sin\theta`, []atom{{"sinθ", 1, 0}}},
	}
	opts := cmp.Options{cmp.AllowUnexported(atom{}), cmpopts.EquateApprox(0, 1e-12)}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseMath(tt.in), opts); diff != "" {
				t.Errorf("parseMath(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestMatchSuperscript(t *testing.T) {
	tests := []struct {
		in       string
		mant, ex string
		ok       bool
	}{
		{"$10^{3}$", "10", "3", true},
		{"$10^{-4}$", "10", "−4", true},
		{"$2^{10}$", "2", "10", true},
		{"$10^3$", "", "", false},
		{"$x_{1}^{2}$", "", "", false},
		{"10^{3}", "", "", false},
	}
	for _, tt := range tests {
		m, e, ok := matchSuperscript(tt.in)
		if ok != tt.ok || m != tt.mant || e != tt.ex {
			t.Errorf("matchSuperscript(%q) = %q, %q, %v", tt.in, m, e, ok)
		}
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want [][]Segment
	}{
		{"a\nb", [][]Segment{{{Text: "a"}}, {{Text: "b"}}}},
		{"$a\nb$", [][]Segment{{{Text: "a", Math: true}}, {{Text: "b", Math: true}}}},
		{"x $y\nz$ w", [][]Segment{
			{{Text: "x "}, {Text: "y", Math: true}},
			{{Text: "z", Math: true}, {Text: " w"}},
		}},
		{"a\n", [][]Segment{{{Text: "a"}}, nil}},
		{"", [][]Segment{nil}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SplitLines(tt.in)
			if err != nil {
				t.Fatalf("SplitLines(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitLines(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
	if _, err := SplitLines("$a\nb"); !errors.Is(err, gplot.ErrUnbalancedMathDelimiters) {
		t.Errorf("SplitLines error = %v, want ErrUnbalancedMathDelimiters", err)
	}
}
