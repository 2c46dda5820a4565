package text

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gogpu/gplot"
)

// Segment is a run of plain text or of math between dollar signs.
type Segment struct {
	Text string
	Math bool
}

// Split breaks s at unescaped dollar signs. A backslash-escaped dollar is
// a literal dollar in either mode. An odd number of delimiters is an
// error wrapping gplot.ErrUnbalancedMathDelimiters.
func Split(s string) ([]Segment, error) {
	var (
		segs []Segment
		buf  strings.Builder
		math bool
	)
	flush := func() {
		if buf.Len() > 0 {
			segs = append(segs, Segment{Text: buf.String(), Math: math})
			buf.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '$':
			buf.WriteByte('$')
			i++
		case s[i] == '$':
			flush()
			math = !math
		default:
			buf.WriteByte(s[i])
		}
	}
	if math {
		return nil, fmt.Errorf("%w: %q", gplot.ErrUnbalancedMathDelimiters, s)
	}
	flush()
	return segs, nil
}

// SplitLines is Split followed by a break at every newline. Math mode
// carries across a break, so "$a\nb$" is two math lines.
func SplitLines(s string) ([][]Segment, error) {
	segs, err := Split(s)
	if err != nil {
		return nil, err
	}
	lines := [][]Segment{nil}
	for _, sg := range segs {
		for i, part := range strings.Split(sg.Text, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], Segment{Text: part, Math: sg.Math})
			}
		}
	}
	return lines, nil
}

// IsMath reports whether s holds at least one math segment. Unbalanced
// strings are not math.
func IsMath(s string) bool {
	segs, err := Split(s)
	if err != nil {
		return false
	}
	for _, sg := range segs {
		if sg.Math {
			return true
		}
	}
	return false
}

// Script sizes and shifts, relative to the enclosing font size.
const (
	scriptScale = 0.7
	supShift    = 0.45
	subShift    = -0.2
)

// atom is a run of math glyphs at one size and baseline. Shift is in ems
// of the base font, up positive.
type atom struct {
	text         string
	scale, shift float64
}

var symbols = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "vartheta": "ϑ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"pi": "π", "rho": "ρ", "sigma": "σ", "tau": "τ", "upsilon": "υ",
	"phi": "φ", "varphi": "ϕ", "chi": "χ", "psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",
	"times": "×", "cdot": "·", "div": "÷", "pm": "±", "mp": "∓",
	"infty": "∞", "circ": "∘", "degree": "°", "prime": "′",
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"approx": "≈", "sim": "∼", "equiv": "≡", "propto": "∝",
	"partial": "∂", "nabla": "∇", "sum": "∑", "prod": "∏", "int": "∫",
	"sqrt": "√", "in": "∈", "cap": "∩", "cup": "∪", "forall": "∀", "exists": "∃",
	"rightarrow": "→", "to": "→", "leftarrow": "←", "leftrightarrow": "↔",
	"ldots": "…", "cdots": "⋯", "hbar": "ℏ", "ell": "ℓ", "AA": "Å",
	"langle": "⟨", "rangle": "⟩",
}

// fontCommands select a style; the group that follows is laid out as is.
var fontCommands = map[string]bool{
	"mathrm": true, "mathit": true, "mathbf": true, "mathsf": true, "mathtt": true,
	"mathcal": true, "rm": true, "it": true, "bf": true, "sf": true, "tt": true, "cal": true,
	"text": true,
}

type mathParser struct {
	rs  []rune
	i   int
	out []atom
}

// parseMath lays out one math segment as atoms.
func parseMath(s string) []atom {
	p := &mathParser{rs: []rune(s)}
	p.group(1, 0, false)
	return p.out
}

func (p *mathParser) emit(s string, scale, shift float64) {
	if s == "" {
		return
	}
	if n := len(p.out); n > 0 && p.out[n-1].scale == scale && p.out[n-1].shift == shift {
		p.out[n-1].text += s
		return
	}
	p.out = append(p.out, atom{text: s, scale: scale, shift: shift})
}

func (p *mathParser) group(scale, shift float64, braced bool) {
	for p.i < len(p.rs) {
		r := p.rs[p.i]
		p.i++
		switch {
		case r == '}':
			if braced {
				return
			}
		case r == '{':
			p.group(scale, shift, true)
		case r == '^':
			p.script(scale*scriptScale, shift+supShift*scale)
		case r == '_':
			p.script(scale*scriptScale, shift+subShift*scale)
		case r == '\\':
			name := p.command()
			if !fontCommands[name] {
				p.emit(symbol(name), scale, shift)
			}
		case unicode.IsSpace(r):
		case r == '-':
			p.emit("−", scale, shift)
		default:
			p.emit(string(r), scale, shift)
		}
	}
}

// script lays out the argument of ^ or _: a braced group, a command or a
// single character.
func (p *mathParser) script(scale, shift float64) {
	for p.i < len(p.rs) && unicode.IsSpace(p.rs[p.i]) {
		p.i++
	}
	if p.i >= len(p.rs) {
		return
	}
	r := p.rs[p.i]
	p.i++
	switch r {
	case '{':
		p.group(scale, shift, true)
	case '\\':
		p.emit(symbol(p.command()), scale, shift)
	case '-':
		p.emit("−", scale, shift)
	default:
		p.emit(string(r), scale, shift)
	}
}

// command reads the name after a backslash: a run of letters or one
// other character.
func (p *mathParser) command() string {
	start := p.i
	for p.i < len(p.rs) && unicode.IsLetter(p.rs[p.i]) {
		p.i++
	}
	if p.i == start && p.i < len(p.rs) {
		p.i++
	}
	return string(p.rs[start:p.i])
}

func symbol(name string) string {
	if s, ok := symbols[name]; ok {
		return s
	}
	switch name {
	case ",", ";", ":", " ":
		return " "
	case "!":
		return ""
	}
	// Operator names such as \sin and \log, and escaped punctuation.
	return name
}

// superscriptRE matches the strings tick formatters produce for powers,
// such as $10^{-3}$.
var superscriptRE = regexp.MustCompile(`^\$([^${}^_\\]+)\^\{([^${}^_\\]+)\}\$$`)

// matchSuperscript returns the mantissa and exponent of s when it has the
// $m^{e}$ form.
func matchSuperscript(s string) (mantissa, exponent string, ok bool) {
	m := superscriptRE.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	minus := strings.NewReplacer("-", "−")
	return minus.Replace(m[1]), minus.Replace(m[2]), true
}
