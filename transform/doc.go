// Package transform maps coordinates between data, axes, figure and device
// spaces.
//
// A [Separable] transform is a per-axis pipeline: an optional nonlinear
// [Func] (identity or log10) followed by a linear map from a source
// [bbox.Bbox] onto a destination box. Pipelines read their endpoints lazily
// from shared cells, so a transform follows its boxes without being rebuilt.
// [Blend] reuses the x pipeline of one transform and the y pipeline of
// another. [Polar] is the non-separable (theta, r) mapping.
//
// During a draw pass transforms are frozen: endpoints are snapshotted into
// plain coefficients, and domain errors surface from [Transform.Freeze].
package transform
