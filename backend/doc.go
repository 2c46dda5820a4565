// Package backend defines the renderer abstraction shared by every output
// format.
//
// A [Renderer] receives primitive draw calls in display coordinates: the
// origin is the lower-left corner of the canvas and y grows upwards, in
// pixels for raster renderers and in points for vector renderers. Raster
// renderers flip internally and report FlipY() == true; the only call that
// takes renderer-native coordinates is DrawText, whose caller consults
// FlipY to place the baseline.
//
// Stroke and fill state travels in a [GraphicsContext]. Optional
// capabilities are separate interfaces: [MarkerRenderer] for instanced
// markers, [PathRenderer] for curved outlines, [TexRenderer] for a full
// math engine and [Blitter] for saving and restoring canvas regions.
// Callers type-assert for them and take a slower path when absent.
//
// File formats register a [Factory] under their extension, following the
// database/sql driver pattern:
//
//	func init() {
//	    backend.Register("png", newPNG)
//	}
//
// Import github.com/gogpu/gplot/backend/all to register every format.
package backend
