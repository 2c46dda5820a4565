package ticker

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/gogpu/gplot"
)

// LogLocator places ticks on integer powers of a base, or on subs times
// each power when subs is set.
type LogLocator struct {
	tickHelper
	base     float64
	subs     []float64
	numTicks int
	minPos   float64
}

// NewLogLocator returns a locator for base. Nil subs places one tick per
// decade.
func NewLogLocator(base float64, subs []float64) (*LogLocator, error) {
	if !(base > 1) {
		return nil, fmt.Errorf("ticker: %w: log base %g", gplot.ErrInvalidValue, base)
	}
	if len(subs) == 0 {
		subs = []float64{1}
	}
	return &LogLocator{base: base, subs: slices.Clone(subs), numTicks: 15}, nil
}

// Base returns the log base.
func (l *LogLocator) Base() float64 { return l.base }

// SetMinPositive records the smallest positive data value, used as the
// lower bound when autoscaling data that reaches zero or below.
func (l *LogLocator) SetMinPositive(v float64) { l.minPos = v }

func (l *LogLocator) log(x float64) float64 { return math.Log(x) / math.Log(l.base) }

// Locs implements Locator. Decades are thinned to keep at most about 15
// of them.
func (l *LogLocator) Locs() []float64 {
	lo, hi := l.viewBounds()
	if hi <= 0 {
		return nil
	}
	if lo <= 0 {
		lo = l.minPos
		if lo <= 0 {
			return nil
		}
	}
	dlo := math.Floor(l.log(lo) + tickEps)
	dhi := math.Ceil(l.log(hi) - tickEps)
	stride := 1.0
	for (dhi-dlo)/stride+1 > float64(l.numTicks) {
		stride++
	}
	var out []float64
	for d := dlo; d <= dhi; d += stride {
		p := math.Pow(l.base, d)
		for _, s := range l.subs {
			v := s * p
			if v >= lo*(1-tickEps) && v <= hi*(1+tickEps) {
				out = append(out, v)
			}
		}
	}
	return out
}

// Autoscale rounds the data interval outward to whole decades.
func (l *LogLocator) Autoscale() (float64, float64, error) {
	lo, hi := l.dataBounds()
	if hi <= 0 {
		return 0, 0, fmt.Errorf("ticker: %w: data in [%g, %g]", gplot.ErrInvalidRangeForLog, lo, hi)
	}
	if lo <= 0 {
		lo = l.minPos
		if lo <= 0 || lo > hi {
			lo = hi / 1000
		}
	}
	dlo := math.Floor(l.log(lo) + tickEps)
	dhi := math.Ceil(l.log(hi) - tickEps)
	if dlo == dhi {
		dlo--
		dhi++
	}
	return math.Pow(l.base, dlo), math.Pow(l.base, dhi), nil
}

// LogFormatter labels powers of the base. Base 10 gives 10 with a
// superscript exponent; other bases give the exponent alone.
type LogFormatter struct {
	tickHelper
	base          float64
	labelOnlyBase bool
	style         logStyle
}

type logStyle int

const (
	logPlain logStyle = iota
	logExponent
	logMathtext
)

// NewLogFormatter returns a formatter for base. With labelOnlyBase set,
// values that are not whole powers get empty labels.
func NewLogFormatter(base float64, labelOnlyBase bool) *LogFormatter {
	return &LogFormatter{base: base, labelOnlyBase: labelOnlyBase}
}

// NewLogFormatterExponent labels values with their exponent.
func NewLogFormatterExponent(base float64, labelOnlyBase bool) *LogFormatter {
	return &LogFormatter{base: base, labelOnlyBase: labelOnlyBase, style: logExponent}
}

// NewLogFormatterMathtext labels values as $base^{k}$ mathtext.
func NewLogFormatterMathtext(base float64, labelOnlyBase bool) *LogFormatter {
	return &LogFormatter{base: base, labelOnlyBase: labelOnlyBase, style: logMathtext}
}

// SetLocs implements Formatter.
func (*LogFormatter) SetLocs([]float64) {}

// Offset implements Formatter.
func (*LogFormatter) Offset() string { return "" }

// Format implements Formatter.
func (f *LogFormatter) Format(x float64, _ int) string {
	if x <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	fx := math.Log(x) / math.Log(f.base)
	k := math.Round(fx)
	decade := math.Abs(fx-k) < 1e-10
	if !decade {
		if f.labelOnlyBase {
			return ""
		}
		return compactFloat(x)
	}
	exp := strconv.Itoa(int(k))
	base := compactFloat(f.base)
	switch {
	case f.style == logExponent:
		return exp
	case f.style == logMathtext:
		return "$" + base + "^{" + exp + "}$"
	case f.base == 10:
		return "10" + superscript(exp)
	default:
		return exp
	}
}

// compactFloat formats x with the shortest representation, dropping a
// trailing ".0" and the plus sign of exponents.
func compactFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', 6, 64)
	return stripExpPlus(s)
}
