// Package text lays out and draws strings.
//
// A [Text] is anchored at a point in its transform's coordinates. Layout
// splits the string into lines, measures each with the renderer, aligns
// the lines within the block (multialignment), rotates the block about the
// anchor and then shifts it so that the rotated, axis-aligned box honors
// the horizontal and vertical alignment. Pieces are emitted with DrawText
// at the left end of their baseline, in renderer-native coordinates.
//
// Text between unescaped dollar signs is math. A minimal layout handles
// superscripts, subscripts, braces and common symbols; strings of the
// form $m^{e}$ take a cached fast path. With text.usetex set, renderers
// that implement [backend.TexRenderer] receive the raw string instead.
//
// [TextWithDash] adds a leader line from the anchor to the text.
package text
