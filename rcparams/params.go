package rcparams

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/colors"
)

// Params is a validated set of rc values. It is safe for concurrent use.
type Params struct {
	mu     sync.RWMutex
	values map[string]any
}

// New returns a Params holding the defaults.
func New() *Params {
	p := &Params{}
	p.Reset()
	return p
}

var (
	defaultOnce   sync.Once
	defaultParams *Params
)

// Default returns the process-wide parameters.
func Default() *Params {
	defaultOnce.Do(func() { defaultParams = New() })
	return defaultParams
}

// Keys returns every known key, sorted.
func Keys() []string {
	return slices.Sorted(maps.Keys(table))
}

// Reset restores every default.
func (p *Params) Reset() {
	values := make(map[string]any, len(table))
	for k, e := range table {
		values[k] = cloneValue(e.def)
	}
	p.mu.Lock()
	p.values = values
	p.mu.Unlock()
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case []string:
		return slices.Clone(x)
	case []float64:
		return slices.Clone(x)
	}
	return v
}

// Get returns the value for key.
func (p *Params) Get(key string) (any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", gplot.ErrUnknownConfigKey, key)
	}
	return cloneValue(v), nil
}

// Set validates v and stores it under key.
func (p *Params) Set(key string, v any) error {
	e, ok := table[key]
	if !ok {
		return fmt.Errorf("%w: %q", gplot.ErrUnknownConfigKey, key)
	}
	cv, err := e.validate(v)
	if err != nil {
		return fmt.Errorf("rcparams: %s: %w", key, err)
	}
	p.mu.Lock()
	p.values[key] = cv
	p.mu.Unlock()
	return nil
}

// Update sets several keys. It stops at the first error; keys set before
// the error keep their new values.
func (p *Params) Update(kv map[string]any) error {
	for _, k := range slices.Sorted(maps.Keys(kv)) {
		if err := p.Set(k, kv[k]); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns a copy of every value.
func (p *Params) Snapshot() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = cloneValue(v)
	}
	return out
}

// Restore replaces the values with a Snapshot.
func (p *Params) Restore(snap map[string]any) {
	values := make(map[string]any, len(snap))
	for k, v := range snap {
		values[k] = cloneValue(v)
	}
	p.mu.Lock()
	p.values = values
	p.mu.Unlock()
}

// The typed accessors below are for keys defined in this package. They
// panic on unknown keys, which indicates a programming error.

func (p *Params) mustGet(key string) any {
	v, err := p.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Float returns a float value.
func (p *Params) Float(key string) float64 {
	switch v := p.mustGet(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	panic(fmt.Sprintf("rcparams: %s is not numeric", key))
}

// Int returns an integer value.
func (p *Params) Int(key string) int {
	return p.mustGet(key).(int)
}

// Bool returns a bool value.
func (p *Params) Bool(key string) bool {
	return p.mustGet(key).(bool)
}

// String returns a string value.
func (p *Params) String(key string) string {
	return p.mustGet(key).(string)
}

// Strings returns a string list value.
func (p *Params) Strings(key string) []string {
	return p.mustGet(key).([]string)
}

// Floats returns a float list value.
func (p *Params) Floats(key string) []float64 {
	return p.mustGet(key).([]float64)
}

// Color resolves a color value. The special values "auto" and "none"
// resolve to transparent; callers that care check ColorSpec first.
func (p *Params) Color(key string) colors.RGBA {
	s := p.String(key)
	c, err := colors.ToRGBA(s)
	if err != nil {
		return colors.Transparent
	}
	return c
}
