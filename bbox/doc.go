// Package bbox provides shared scalar cells, intervals and axis-aligned
// bounding boxes.
//
// Endpoints are stored as [Scalar] values. A [Value] is a settable cell; the
// binary operations ([Add], [Sub], [Mul], [Div], [Min], [Max]) build lazy
// expressions over other scalars. Two boxes or intervals that hold the same
// *Value see each other's updates, which is how shared axes and
// figure-relative layouts stay in sync without explicit notification.
package bbox
