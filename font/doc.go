// Package font resolves font properties to concrete faces and measures and
// outlines text.
//
// [Properties] describe a font abstractly (family, style, variant, weight,
// size in points). The process-wide [Manager] resolves them against the
// registered font files, bundled Go fonts by default, and shapes strings
// with the HarfBuzz port from go-text/typesetting so measurements include
// kerning. Glyph outlines come from golang.org/x/image/font/sfnt and are
// returned as gplot paths in a y-up pixel space anchored at the pen origin,
// which lets every backend draw identical text.
package font
