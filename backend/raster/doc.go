// Package raster provides the antialiased raster renderer behind PNG and
// JPEG output.
//
// Every outline is flattened to polylines in pixel space, strokes are
// expanded to polygons, and the result is scan-converted with
// golang.org/x/image/vector and composited source-over onto an RGBA
// canvas. Text is drawn from glyph outlines.
//
// # Example
//
//	// Import to register the png, jpg and jpeg formats
//	import _ "github.com/gogpu/gplot/backend/raster"
//
//	out, _ := backend.New("png", 6, 4, backend.Options{DPI: 100})
//	// ... draw ...
//	_ = out.Print(w)
package raster
