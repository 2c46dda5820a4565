package mlab

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/gogpu/gplot"
)

// Window returns the taper applied to each segment.
type Window func(n int) []float64

// Hanning is the raised-cosine window.
func Hanning(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// WindowNone is the rectangular window.
func WindowNone(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// SpectralParams configures the Welch estimates.
type SpectralParams struct {
	// NFFT is the segment length; 256 when zero.
	NFFT int
	// Fs is the sampling frequency; 2 when zero.
	Fs       float64
	Detrend  Detrend
	Window   Window
	NOverlap int
	// PadTo zero-pads each segment to this length when larger than NFFT.
	PadTo int
}

func (p SpectralParams) withDefaults() (SpectralParams, error) {
	if p.NFFT == 0 {
		p.NFFT = 256
	}
	if p.Fs == 0 {
		p.Fs = 2
	}
	if p.Window == nil {
		p.Window = Hanning
	}
	if p.PadTo < p.NFFT {
		p.PadTo = p.NFFT
	}
	if p.NFFT < 2 || p.NOverlap < 0 || p.NOverlap >= p.NFFT {
		return p, fmt.Errorf("mlab: %w: NFFT %d with overlap %d", gplot.ErrInvalidValue, p.NFFT, p.NOverlap)
	}
	return p, nil
}

// spectra returns the one-sided FFT of every windowed, detrended segment
// of x. Inputs shorter than NFFT are zero-padded to one segment.
func spectra(x []float64, p SpectralParams) [][]complex128 {
	if len(x) < p.NFFT {
		padded := make([]float64, p.NFFT)
		copy(padded, x)
		x = padded
	}
	win := p.Window(p.NFFT)
	fft := fourier.NewFFT(p.PadTo)
	step := p.NFFT - p.NOverlap
	var out [][]complex128
	for start := 0; start+p.NFFT <= len(x); start += step {
		seg := make([]float64, p.PadTo)
		copy(seg, x[start:start+p.NFFT])
		p.Detrend.apply(seg[:p.NFFT])
		floats.Mul(seg[:p.NFFT], win)
		out = append(out, fft.Coefficients(nil, seg))
	}
	return out
}

// cross averages conj(X)·Y over segments and scales it to a one-sided
// density.
func cross(xs, ys [][]complex128, p SpectralParams) []complex128 {
	win := p.Window(p.NFFT)
	scale := p.Fs * floats.Dot(win, win)
	n := len(xs[0])
	out := make([]complex128, n)
	for k := range xs {
		for i := range n {
			out[i] += cmplx.Conj(xs[k][i]) * ys[k][i]
		}
	}
	for i := range out {
		out[i] /= complex(float64(len(xs))*scale, 0)
		// Interior bins fold in the negative frequencies.
		if i > 0 && !(p.PadTo%2 == 0 && i == n-1) {
			out[i] *= 2
		}
	}
	return out
}

func freqs(p SpectralParams, n int) []float64 {
	f := make([]float64, n)
	for i := range f {
		f[i] = float64(i) * p.Fs / float64(p.PadTo)
	}
	return f
}

// PSD returns Welch's power spectral density estimate of x and its
// frequencies.
func PSD(x []float64, p SpectralParams) (pxx, f []float64, err error) {
	if p, err = p.withDefaults(); err != nil {
		return nil, nil, err
	}
	sx := spectra(x, p)
	c := cross(sx, sx, p)
	pxx = make([]float64, len(c))
	for i, v := range c {
		pxx[i] = real(v)
	}
	return pxx, freqs(p, len(c)), nil
}

// CSD returns the cross spectral density of x and y.
func CSD(x, y []float64, p SpectralParams) (pxy []complex128, f []float64, err error) {
	if err := gplot.CheckSameLen("csd", x, y); err != nil {
		return nil, nil, err
	}
	if p, err = p.withDefaults(); err != nil {
		return nil, nil, err
	}
	c := cross(spectra(x, p), spectra(y, p), p)
	return c, freqs(p, len(c)), nil
}

// Cohere returns the magnitude-squared coherence |Pxy|² / (Pxx·Pyy).
func Cohere(x, y []float64, p SpectralParams) (cxy, f []float64, err error) {
	if err := gplot.CheckSameLen("cohere", x, y); err != nil {
		return nil, nil, err
	}
	if p, err = p.withDefaults(); err != nil {
		return nil, nil, err
	}
	sx, sy := spectra(x, p), spectra(y, p)
	pxx, pyy, pxy := cross(sx, sx, p), cross(sy, sy, p), cross(sx, sy, p)
	cxy = make([]float64, len(pxy))
	for i := range cxy {
		den := real(pxx[i]) * real(pyy[i])
		if den == 0 {
			continue
		}
		m := cmplx.Abs(pxy[i])
		cxy[i] = m * m / den
	}
	return cxy, freqs(p, len(cxy)), nil
}

// Specgram returns the power of every segment: pxx[i][j] is frequency
// f[i] in the segment centered at t[j].
func Specgram(x []float64, p SpectralParams) (pxx [][]float64, f, t []float64, err error) {
	if p, err = p.withDefaults(); err != nil {
		return nil, nil, nil, err
	}
	segs := spectra(x, p)
	nf := len(segs[0])
	pxx = make([][]float64, nf)
	for i := range pxx {
		pxx[i] = make([]float64, len(segs))
	}
	step := p.NFFT - p.NOverlap
	for j := range segs {
		c := cross(segs[j:j+1], segs[j:j+1], p)
		for i := range nf {
			pxx[i][j] = real(c[i])
		}
		t = append(t, (float64(j*step)+float64(p.NFFT)/2)/p.Fs)
	}
	return pxx, freqs(p, nf), t, nil
}

// DB converts powers to decibels, flooring zeros at the smallest
// positive power.
func DB(pxx []float64) []float64 {
	floor := math.Inf(1)
	for _, v := range pxx {
		if v > 0 {
			floor = math.Min(floor, v)
		}
	}
	out := slices.Clone(pxx)
	for i, v := range out {
		if v <= 0 {
			v = floor
		}
		out[i] = 10 * math.Log10(v)
	}
	return out
}
