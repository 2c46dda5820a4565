package axes

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/gogpu/gplot/collections"
	"github.com/gogpu/gplot/images"
	"github.com/gogpu/gplot/lines"
	"github.com/gogpu/gplot/mlab"
)

// CorrOptions configure Acorr and Xcorr.
type CorrOptions struct {
	Normed bool
	// MaxLags bounds the lags shown; 10 when zero, every lag when
	// negative.
	MaxLags int
	Detrend mlab.Detrend
	// Markers plots a marker per lag instead of vertical lines from zero.
	Markers bool
	// Format styles the markers; "o" when empty.
	Format string
}

// CorrResult holds a correlation and the artists drawing it. Lines and
// Baseline are set for vertical-line plots, Marker for marker plots.
type CorrResult struct {
	Lags     []float64
	C        []float64
	Lines    *collections.LineCollection
	Baseline *lines.Line2D
	Marker   *lines.Line2D
}

// Acorr plots the autocorrelation of x.
func (a *Axes) Acorr(x []float64, o CorrOptions) (*CorrResult, error) {
	return a.xcorr("acorr", x, x, o)
}

// Xcorr plots the cross-correlation of x and y.
func (a *Axes) Xcorr(x, y []float64, o CorrOptions) (*CorrResult, error) {
	return a.xcorr("xcorr", x, y, o)
}

func (a *Axes) xcorr(op string, x, y []float64, o CorrOptions) (*CorrResult, error) {
	maxLags := o.MaxLags
	if maxLags == 0 {
		maxLags = 10
	}
	lags, c, err := mlab.Correlate(x, y, maxLags, o.Normed, o.Detrend)
	if err != nil {
		return nil, fmt.Errorf("axes: %s: %w", op, err)
	}
	res := &CorrResult{Lags: lags, C: c}
	if o.Markers {
		format := o.Format
		if format == "" {
			format = "o"
		}
		if res.Marker, err = a.Plot(lags, c, format); err != nil {
			return nil, fmt.Errorf("axes: %s: %w", op, err)
		}
		return res, nil
	}
	if res.Lines, err = a.VLines(lags, []float64{0}, c); err != nil {
		return nil, fmt.Errorf("axes: %s: %w", op, err)
	}
	if res.Baseline, err = a.AxHLine(0, 0, 1, "color", "k"); err != nil {
		return nil, fmt.Errorf("axes: %s: %w", op, err)
	}
	return res, nil
}

// spectrumPlot draws a spectrum against frequency with a grid and axis
// labels.
func (a *Axes) spectrumPlot(f, v []float64, ylabel string, kv []any) (*lines.Line2D, error) {
	l, err := a.Plot(f, v, "", kv...)
	if err != nil {
		return nil, err
	}
	a.Grid(true)
	a.SetXLabel("Frequency")
	a.SetYLabel(ylabel)
	return l, nil
}

// Psd plots the power spectral density of x in decibels and returns the
// linear estimate.
func (a *Axes) Psd(x []float64, p mlab.SpectralParams, kv ...any) (pxx, f []float64, l *lines.Line2D, err error) {
	if pxx, f, err = mlab.PSD(x, p); err != nil {
		return nil, nil, nil, fmt.Errorf("axes: psd: %w", err)
	}
	if l, err = a.spectrumPlot(f, mlab.DB(pxx), "Power Spectrum (dB)", kv); err != nil {
		return nil, nil, nil, fmt.Errorf("axes: psd: %w", err)
	}
	return pxx, f, l, nil
}

// Csd plots the magnitude of the cross spectral density of x and y in
// decibels.
func (a *Axes) Csd(x, y []float64, p mlab.SpectralParams, kv ...any) (pxy []complex128, f []float64, l *lines.Line2D, err error) {
	if pxy, f, err = mlab.CSD(x, y, p); err != nil {
		return nil, nil, nil, fmt.Errorf("axes: csd: %w", err)
	}
	mag := make([]float64, len(pxy))
	for i, v := range pxy {
		mag[i] = cmplx.Abs(v)
	}
	if l, err = a.spectrumPlot(f, mlab.DB(mag), "Cross Spectrum Magnitude (dB)", kv); err != nil {
		return nil, nil, nil, fmt.Errorf("axes: csd: %w", err)
	}
	return pxy, f, l, nil
}

// Cohere plots the coherence of x and y.
func (a *Axes) Cohere(x, y []float64, p mlab.SpectralParams, kv ...any) (cxy, f []float64, l *lines.Line2D, err error) {
	if cxy, f, err = mlab.Cohere(x, y, p); err != nil {
		return nil, nil, nil, fmt.Errorf("axes: cohere: %w", err)
	}
	if l, err = a.spectrumPlot(f, cxy, "Coherence", kv); err != nil {
		return nil, nil, nil, fmt.Errorf("axes: cohere: %w", err)
	}
	return cxy, f, l, nil
}

// SpecgramResult holds a spectrogram and its image.
type SpecgramResult struct {
	Pxx   [][]float64
	Freqs []float64
	Times []float64
	Image *images.AxesImage
}

// Specgram shows the power of x over time and frequency in decibels.
// Time runs along x from 0 to the last segment center, frequency along y.
func (a *Axes) Specgram(x []float64, p mlab.SpectralParams, cmap any) (*SpecgramResult, error) {
	pxx, f, t, err := mlab.Specgram(x, p)
	if err != nil {
		return nil, fmt.Errorf("axes: specgram: %w", err)
	}
	z := make([][]float64, len(pxx))
	for i, row := range pxx {
		z[i] = mlab.DB(row)
	}
	tmax := 0.0
	for _, v := range t {
		tmax = math.Max(tmax, v)
	}
	im, err := a.Imshow(z, ImshowOptions{
		Cmap:   cmap,
		Origin: "lower",
		Extent: []float64{0, tmax, f[0], f[len(f)-1]},
		Aspect: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("axes: specgram: %w", err)
	}
	return &SpecgramResult{Pxx: pxx, Freqs: f, Times: t, Image: im}, nil
}
