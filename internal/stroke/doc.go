// Package stroke converts stroked polylines into filled polygons.
//
// The raster renderer flattens every outline to polylines, splits them
// with [Dasher] when a dash pattern is set, and expands each piece with
// [StrokeExpander]. The expander emits one polygon per segment, join and
// cap, all wound counter-clockwise, so that a rasterizer accumulating
// signed coverage fills their union without holes where they overlap.
//
// # Line Caps
//
//   - LineCapButt: flat cap ending exactly at the endpoint
//   - LineCapRound: semicircular cap with radius = width/2
//   - LineCapSquare: square cap extending width/2 beyond the endpoint
//
// # Line Joins
//
//   - LineJoinMiter: sharp corner, beveled past the miter limit
//   - LineJoinRound: circular arc at corners
//   - LineJoinBevel: straight line across the corner
package stroke
