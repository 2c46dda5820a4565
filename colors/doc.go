// Package colors resolves color specifications and maps scalars to colors.
//
// Colors are [RGBA] values with float64 components in [0, 1]. [ToRGBA]
// accepts every supported specification: single-letter shortcuts, CSS
// names (case-insensitive), greyscale strings such as "0.75", "#rrggbb"
// hex strings, 3- and 4-element float slices and arrays, and values of
// type image/color.Color.
//
// Scalar data is mapped through a [Norm] ([Normalize] or [LogNorm]) into
// [0, 1] and then through a [Colormap]. [ScalarMappable] bundles the three
// for artists that color their elements from data.
package colors
