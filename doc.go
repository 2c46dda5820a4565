// Package gplot holds the foundation shared by the plotting packages: the
// package logger, sentinel errors, and the small geometry types (Point,
// Matrix, Path, Dash) that artists and backends exchange.
//
// # Overview
//
// A figure is a tree of artists. Figure.Draw walks its axes, each Axes
// freezes its data and axes transforms, and every visible child converts
// its data to device coordinates and issues primitive calls on a
// backend.Renderer. The packages are:
//
//   - bbox, transform: shared-cell intervals and boxes, lazy coordinate mappings
//   - colors, rcparams, font: color specs and colormaps, defaults, fonts
//   - artist, lines, patches, text, images, collections: the artist tree
//   - ticker, axis, axes, legend, table, contour: plot construction and layout
//   - figure: the top-level composite and file output
//   - backend and its raster, ps, pdf and svg implementations
//
// # Quick Start
//
//	fig := figure.New(figure.WithSizeInches(6, 4), figure.WithDPI(100))
//	ax := fig.AddAxes([4]float64{0.1, 0.1, 0.8, 0.8})
//	if _, err := ax.Plot(t, s, "b-"); err != nil {
//	    log.Fatal(err)
//	}
//	ax.SetTitle("Sine")
//	if err := fig.SaveFig("sine.png"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordinate System
//
// Display coordinates have their origin at the lower-left corner of the
// figure with y increasing upwards. Raster renderers flip y internally and
// report FlipY() == true; vector renderers keep y ascending.
package gplot

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"
)
