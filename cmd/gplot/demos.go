package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/axes"
	"github.com/gogpu/gplot/contour"
	"github.com/gogpu/gplot/figure"
	"github.com/gogpu/gplot/mlab"
)

// A demo fills an empty figure.
type demo struct {
	usage string
	build func(f *figure.Figure) error
}

var demos = map[string]demo{
	"sine":     {"a sine wave with labels and a title", buildSine},
	"bar":      {"grouped bars with error bars and a legend", buildBar},
	"scatter":  {"colormapped scatter markers", buildScatter},
	"hist":     {"a histogram of normal samples", buildHist},
	"pie":      {"an exploded pie with percentages", buildPie},
	"contour":  {"labelled contours over filled bands", buildContour},
	"imshow":   {"an image of a 2-D function", buildImshow},
	"polar":    {"a spiral on polar axes", buildPolar},
	"subplots": {"a 2x2 grid of line, step, stem and log plots", buildSubplots},
	"specgram": {"the spectrogram of a chirp", buildSpecgram},
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func demoHelp() string {
	var b strings.Builder
	for _, n := range demoNames() {
		fmt.Fprintf(&b, "  %-9s %s\n", n, demos[n].usage)
	}
	return b.String()
}

// samples is seeded so renders are reproducible.
func samples(n int, mu, sigma float64) []float64 {
	r := rand.New(rand.NewPCG(1, 2))
	out := make([]float64, n)
	for i := range out {
		out[i] = mu + sigma*r.NormFloat64()
	}
	return out
}

func mapf(xs []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = fn(x)
	}
	return out
}

func mainAxes(f *figure.Figure) (*axes.Axes, error) {
	return f.AddSubplot(1, 1, 1)
}

func buildSine(f *figure.Figure) error {
	a, err := mainAxes(f)
	if err != nil {
		return err
	}
	t := mlab.Linspace(0, 2, 400)
	if _, err := a.Plot(t, mapf(t, func(x float64) float64 { return math.Sin(2 * math.Pi * x) }), "b-", "label", "sin"); err != nil {
		return err
	}
	if _, err := a.Plot(t, mapf(t, func(x float64) float64 { return math.Cos(2 * math.Pi * x) }), "r--", "label", "cos"); err != nil {
		return err
	}
	a.SetXLabel("time (s)")
	a.SetYLabel("voltage (mV)")
	a.SetTitle("About as simple as it gets")
	a.Grid(true)
	_, err = a.AutoLegend("upper right")
	return err
}

func buildBar(f *figure.Figure) error {
	a, err := mainAxes(f)
	if err != nil {
		return err
	}
	men := []float64{20, 35, 30, 35, 27}
	women := []float64{25, 32, 34, 20, 25}
	ind := []float64{0, 1, 2, 3, 4}
	const width = 0.35
	r1, err := a.Bar(ind, men, axes.BarOptions{
		Width: []float64{width}, Color: "r", YErr: []float64{2, 3, 4, 1, 2},
	})
	if err != nil {
		return err
	}
	r2, err := a.Bar(mapf(ind, func(x float64) float64 { return x + width }), women, axes.BarOptions{
		Width: []float64{width}, Color: "y", YErr: []float64{3, 5, 2, 3, 3},
	})
	if err != nil {
		return err
	}
	a.SetYLabel("Scores")
	a.SetTitle("Scores by group and gender")
	a.SetXTicks(mapf(ind, func(x float64) float64 { return x + width }))
	a.SetXTickLabels([]string{"G1", "G2", "G3", "G4", "G5"})
	_, err = a.SetLegend(
		[]artist.Artist{r1[0], r2[0]},
		[]string{"Men", "Women"},
		"upper left",
	)
	return err
}

func buildScatter(f *figure.Figure) error {
	a, err := mainAxes(f)
	if err != nil {
		return err
	}
	xs := samples(200, 0, 1)
	ys := mapf(xs, func(x float64) float64 { return 0.5*x + 0.3*math.Sin(5*x) })
	sizes := mapf(xs, func(x float64) float64 { return 20 + 60*math.Abs(x) })
	if _, err := a.Scatter(xs, ys, axes.ScatterOptions{S: sizes, C: xs, Cmap: "jet", Alpha: 0.75}); err != nil {
		return err
	}
	a.SetTitle("Scatter")
	return nil
}

func buildHist(f *figure.Figure) error {
	a, err := mainAxes(f)
	if err != nil {
		return err
	}
	x := samples(10000, 100, 15)
	if _, err := a.Hist(x, axes.HistOptions{Bins: 50, Density: true, Color: "g"}); err != nil {
		return err
	}
	a.SetXLabel("Smarts")
	a.SetYLabel("Probability")
	a.SetTitle("Histogram of IQ: mu=100, sigma=15")
	a.Grid(true)
	return nil
}

func buildPie(f *figure.Figure) error {
	a, err := f.AddAxes([4]float64{0.1, 0.1, 0.8, 0.8})
	if err != nil {
		return err
	}
	_, err = a.Pie([]float64{15, 30, 45, 10}, axes.PieOptions{
		Labels:  []string{"Frogs", "Hogs", "Dogs", "Logs"},
		Explode: []float64{0, 0.05, 0, 0},
		Autopct: "%1.1f%%",
		Shadow:  true,
	})
	if err != nil {
		return err
	}
	a.SetTitle("Raining Hogs and Dogs")
	return nil
}

// bump is the difference of two gaussians sampled on a grid.
func bump() (x, y []float64, z [][]float64) {
	x = mlab.Linspace(-3, 3, 61)
	y = mlab.Linspace(-2, 2, 41)
	z = make([][]float64, len(y))
	for i, yv := range y {
		z[i] = make([]float64, len(x))
		for j, xv := range x {
			g1 := math.Exp(-(xv*xv + yv*yv) / 2)
			g2 := math.Exp(-((xv-1)*(xv-1) + (yv-1)*(yv-1)) / (2 * 0.5 * 0.5))
			z[i][j] = 10 * (g2 - g1)
		}
	}
	return x, y, z
}

func buildContour(f *figure.Figure) error {
	a, err := mainAxes(f)
	if err != nil {
		return err
	}
	x, y, z := bump()
	if _, err := a.Contourf(x, y, z, contour.Options{N: 8, Cmap: "jet", Alpha: 0.6}); err != nil {
		return err
	}
	cs, err := a.Contour(x, y, z, contour.Options{N: 8, Colors: "k"})
	if err != nil {
		return err
	}
	if err := a.Clabel(cs, contour.LabelOptions{FontSize: 9, Fmt: "%1.1f"}); err != nil {
		return err
	}
	a.SetTitle("Contours with labels")
	return nil
}

func buildImshow(f *figure.Figure) error {
	a, err := mainAxes(f)
	if err != nil {
		return err
	}
	_, _, z := bump()
	if _, err := a.Imshow(z, axes.ImshowOptions{
		Cmap:          "gray",
		Extent:        []float64{-3, 3, -2, 2},
		Origin:        "lower",
		Interpolation: "bilinear",
	}); err != nil {
		return err
	}
	a.SetTitle("Image")
	return nil
}

func buildPolar(f *figure.Figure) error {
	p, err := f.AddPolar([4]float64{0.1, 0.1, 0.8, 0.8})
	if err != nil {
		return err
	}
	r := mlab.Linspace(0, 3, 301)
	theta := mapf(r, func(v float64) float64 { return 2 * math.Pi * v })
	if _, err := p.Plot(theta, r, "b-", "linewidth", 2.0); err != nil {
		return err
	}
	p.SetTitle("A line plot on a polar axis")
	return nil
}

func buildSubplots(f *figure.Figure) error {
	x := mlab.Linspace(0, 5, 51)
	damped := mapf(x, func(v float64) float64 { return math.Cos(2*math.Pi*v) * math.Exp(-v) })

	a1, err := f.AddSubplot(2, 2, 1)
	if err != nil {
		return err
	}
	if _, err := a1.Plot(x, damped, "ko-"); err != nil {
		return err
	}
	a1.SetTitle("Damped oscillation")

	a2, err := f.AddSubplot(2, 2, 2)
	if err != nil {
		return err
	}
	if _, err := a2.Step(x[:11], damped[:11], "mid", "g-"); err != nil {
		return err
	}
	a2.SetTitle("Step")

	a3, err := f.AddSubplot(2, 2, 3)
	if err != nil {
		return err
	}
	if _, err := a3.Stem(x[:20], damped[:20], "b-", "ro", "k-"); err != nil {
		return err
	}
	a3.SetTitle("Stem")

	a4, err := f.AddSubplot(2, 2, 4)
	if err != nil {
		return err
	}
	if _, err := a4.Plot(x[1:], mapf(x[1:], math.Exp), "r-"); err != nil {
		return err
	}
	if err := a4.SetYScale("log"); err != nil {
		return err
	}
	a4.SetTitle("Exponential, log scale")
	return nil
}

func buildSpecgram(f *figure.Figure) error {
	a, err := mainAxes(f)
	if err != nil {
		return err
	}
	const fs = 1000.0
	t := mlab.Linspace(0, 2, int(2*fs))
	chirp := mapf(t, func(v float64) float64 { return math.Sin(2 * math.Pi * (50*v + 50*v*v)) })
	if _, err := a.Specgram(chirp, mlab.SpectralParams{NFFT: 128, Fs: fs, NOverlap: 64}, "jet"); err != nil {
		return fmt.Errorf("specgram: %w", err)
	}
	a.SetXLabel("time (s)")
	a.SetYLabel("frequency (Hz)")
	return nil
}
