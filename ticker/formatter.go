package ticker

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/rcparams"
)

// Formatter turns tick values into labels.
type Formatter interface {
	SetIntervals(view, data *bbox.Interval)
	// SetLocs receives every tick value before Format is called, so a
	// formatter can share an offset and precision across them.
	SetLocs(locs []float64)
	// Format labels x, the pos-th tick.
	Format(x float64, pos int) string
	// Offset returns the text shown once per axis for the shared offset
	// and scale factor.
	Offset() string
}

// NullFormatter labels nothing.
type NullFormatter struct{ tickHelper }

// SetLocs implements Formatter.
func (*NullFormatter) SetLocs([]float64) {}

// Format implements Formatter.
func (*NullFormatter) Format(float64, int) string { return "" }

// Offset implements Formatter.
func (*NullFormatter) Offset() string { return "" }

// FixedFormatter returns the label at the tick position.
type FixedFormatter struct {
	tickHelper
	labels []string
	offset string
}

// NewFixedFormatter returns a formatter over labels.
func NewFixedFormatter(labels []string) *FixedFormatter {
	return &FixedFormatter{labels: slices.Clone(labels)}
}

// SetLocs implements Formatter.
func (*FixedFormatter) SetLocs([]float64) {}

// Format returns labels[pos], or "" past the end.
func (f *FixedFormatter) Format(_ float64, pos int) string {
	if pos < 0 || pos >= len(f.labels) {
		return ""
	}
	return f.labels[pos]
}

// SetOffset sets the text returned by Offset.
func (f *FixedFormatter) SetOffset(s string) { f.offset = s }

// Offset implements Formatter.
func (f *FixedFormatter) Offset() string { return f.offset }

// FuncFormatter labels ticks with a user function.
type FuncFormatter struct {
	tickHelper
	fn func(x float64, pos int) string
}

// NewFuncFormatter wraps fn.
func NewFuncFormatter(fn func(x float64, pos int) string) *FuncFormatter {
	return &FuncFormatter{fn: fn}
}

// SetLocs implements Formatter.
func (*FuncFormatter) SetLocs([]float64) {}

// Format implements Formatter.
func (f *FuncFormatter) Format(x float64, pos int) string { return f.fn(x, pos) }

// Offset implements Formatter.
func (*FuncFormatter) Offset() string { return "" }

// FormatStrFormatter labels ticks with a printf verb such as "%1.2f".
type FormatStrFormatter struct {
	tickHelper
	format string
}

// NewFormatStrFormatter returns a formatter for format.
func NewFormatStrFormatter(format string) *FormatStrFormatter {
	return &FormatStrFormatter{format: format}
}

// SetLocs implements Formatter.
func (*FormatStrFormatter) SetLocs([]float64) {}

// Format implements Formatter.
func (f *FormatStrFormatter) Format(x float64, _ int) string { return fmt.Sprintf(f.format, x) }

// Offset implements Formatter.
func (*FormatStrFormatter) Offset() string { return "" }

// ScalarFormatter labels linear ticks. For each set of locations it may
// subtract a common offset and divide out a power of ten, reported
// together by Offset, and uses the fewest decimals that keep every label
// distinct.
type ScalarFormatter struct {
	tickHelper
	useOffset  bool
	limits     [2]int
	unicodeMin bool
	locs       []float64
	offset     float64
	oom        int
	format     string
}

// NewScalarFormatter returns a formatter configured from the
// axes.formatter.limits and axes.unicode_minus rc params.
func NewScalarFormatter() *ScalarFormatter {
	rc := rcparams.Default()
	lim := rc.Floats("axes.formatter.limits")
	return &ScalarFormatter{
		useOffset:  true,
		limits:     [2]int{int(lim[0]), int(lim[1])},
		unicodeMin: rc.Bool("axes.unicode_minus"),
		format:     "%1.1f",
	}
}

// SetUseOffset enables or disables offset extraction.
func (f *ScalarFormatter) SetUseOffset(v bool) {
	f.useOffset = v
	if !v {
		f.offset = 0
	}
}

// SetPowerLimits sets the orders of magnitude outside of which a scale
// factor is divided out.
func (f *ScalarFormatter) SetPowerLimits(lo, hi int) { f.limits = [2]int{lo, hi} }

// OrderOfMagnitude returns the power of ten divided out of the labels.
func (f *ScalarFormatter) OrderOfMagnitude() int { return f.oom }

// OffsetValue returns the value subtracted from the labels.
func (f *ScalarFormatter) OffsetValue() float64 { return f.offset }

// SetLocs implements Formatter.
func (f *ScalarFormatter) SetLocs(locs []float64) {
	f.locs = slices.Clone(locs)
	f.offset, f.oom = 0, 0
	if len(f.locs) == 0 {
		return
	}
	if f.useOffset {
		f.computeOffset()
	}
	f.computeOrderOfMagnitude()
	f.computeFormat()
}

func (f *ScalarFormatter) computeOffset() {
	lo, hi := f.viewBounds()
	var in []float64
	for _, v := range f.locs {
		if v >= lo && v <= hi {
			in = append(in, v)
		}
	}
	if len(in) == 0 {
		in = f.locs
	}
	vmin, vmax := slices.Min(in), slices.Max(in)
	if vmin == vmax {
		return
	}
	rng := vmax - vmin
	var ave, aveAbs float64
	for _, v := range in {
		ave += v
		aveAbs += math.Abs(v)
	}
	ave /= float64(len(in))
	aveAbs /= float64(len(in))
	aveOOM := math.Floor(math.Log10(aveAbs))
	rangeOOM := math.Floor(math.Log10(rng))
	if math.Abs(aveOOM-rangeOOM) < 3 {
		return
	}
	p := math.Pow(10, rangeOOM)
	if ave < 0 {
		f.offset = math.Ceil(vmax/p) * p
	} else {
		f.offset = math.Floor(vmin/p) * p
	}
}

func (f *ScalarFormatter) computeOrderOfMagnitude() {
	var m float64
	for _, v := range f.locs {
		m = math.Max(m, math.Abs(v-f.offset))
	}
	if m == 0 {
		return
	}
	oom := int(math.Floor(math.Log10(m)))
	if oom <= f.limits[0] || oom >= f.limits[1] {
		f.oom = oom
	}
}

func (f *ScalarFormatter) computeFormat() {
	scale := math.Pow(10, float64(f.oom))
	sig := 0
	for _, v := range f.locs {
		s := strconv.FormatFloat((v-f.offset)/scale+1e-15, 'f', 8, 64)
		s = strings.TrimRight(s, "0")
		if i := strings.IndexByte(s, '.'); i >= 0 {
			sig = max(sig, len(s)-i-1)
		}
	}
	f.format = "%1." + strconv.Itoa(sig) + "f"
}

// Format implements Formatter.
func (f *ScalarFormatter) Format(x float64, _ int) string {
	xp := (x - f.offset) / math.Pow(10, float64(f.oom))
	if math.Abs(xp) < 1e-8 {
		xp = 0
	}
	return f.fixMinus(fmt.Sprintf(f.format, xp))
}

// Offset implements Formatter. It returns, for example, "×10⁻⁴" or
// "+1e3".
func (f *ScalarFormatter) Offset() string {
	if len(f.locs) == 0 {
		return ""
	}
	var b strings.Builder
	if f.offset != 0 {
		s := compactFloat(f.offset)
		if f.offset > 0 {
			s = "+" + s
		}
		b.WriteString(f.fixMinus(s))
	}
	if f.oom != 0 {
		b.WriteString("×10")
		b.WriteString(superscript(strconv.Itoa(f.oom)))
	}
	return b.String()
}

func (f *ScalarFormatter) fixMinus(s string) string {
	if !f.unicodeMin {
		return s
	}
	return strings.ReplaceAll(s, "-", "−")
}

var superscripts = strings.NewReplacer(
	"-", "⁻", "0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
)

func superscript(s string) string { return superscripts.Replace(s) }

func stripExpPlus(s string) string {
	s = strings.Replace(s, "e+0", "e", 1)
	s = strings.Replace(s, "e-0", "e-", 1)
	return strings.Replace(s, "e+", "e", 1)
}
