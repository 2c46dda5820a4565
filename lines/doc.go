// Package lines draws polylines with optional markers.
//
// A Line2D holds raw x and y arrays and an optional mask. Masked points
// split the line into runs that are stroked independently; a run of one
// point draws only its marker. On log-scaled axes points with a
// non-positive coordinate are dropped before stroking.
//
// Markers are built once as a path in display units around the origin.
// Renderers implementing backend.MarkerRenderer stamp that path at every
// point; others receive one arc, polygon or line call per marker.
package lines
