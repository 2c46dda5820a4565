// Package rcparams holds the rendering defaults keyed by dotted names such
// as "lines.linewidth" or "axes.facecolor".
//
// Every key has a default and a validator. [Params.Set] rejects unknown
// keys with gplot.ErrUnknownConfigKey and invalid values with
// gplot.ErrInvalidValue, and stores the coerced value. Files load with
// [Params.LoadFile]: ".toml" files decode with go-toml (nested tables
// flatten to dotted keys) and everything else decodes as YAML, which also
// accepts the classic "key : value" rc syntax. [Params.Watch] reloads a
// file whenever it changes on disk.
//
// [Default] returns the process-wide parameters used by artists when no
// explicit value is given.
package rcparams
