package colors

import (
	"fmt"

	"github.com/gogpu/gplot"
)

// ScalarMappable holds a data array with the norm and colormap that turn it
// into colors. Changed callbacks fire when any of the three is replaced.
type ScalarMappable struct {
	a    []float64
	norm Norm
	cmap *Colormap

	nextID    int
	callbacks map[int]func(*ScalarMappable)
}

// NewScalarMappable returns a mappable with a linear norm and the given
// colormap. A nil cmap selects "jet".
func NewScalarMappable(norm Norm, cmap *Colormap) *ScalarMappable {
	if norm == nil {
		norm = &Normalize{}
	}
	if cmap == nil {
		cmap = MustGet("jet")
	}
	return &ScalarMappable{norm: norm, cmap: cmap}
}

// SetArray replaces the data array.
func (m *ScalarMappable) SetArray(a []float64) {
	m.a = a
	m.Changed()
}

// Array returns the data array.
func (m *ScalarMappable) Array() []float64 { return m.a }

// Norm returns the norm.
func (m *ScalarMappable) Norm() Norm { return m.norm }

// SetNorm replaces the norm. Nil selects an unscaled linear norm.
func (m *ScalarMappable) SetNorm(n Norm) {
	if n == nil {
		n = &Normalize{}
	}
	m.norm = n
	m.Changed()
}

// Cmap returns the colormap.
func (m *ScalarMappable) Cmap() *Colormap { return m.cmap }

// SetCmap replaces the colormap.
func (m *ScalarMappable) SetCmap(c *Colormap) {
	m.cmap = c
	m.Changed()
}

// SetClim sets the norm limits.
func (m *ScalarMappable) SetClim(vmin, vmax float64) error {
	if vmin > vmax {
		return fmt.Errorf("%w: clim vmin %g > vmax %g", gplot.ErrInvalidValue, vmin, vmax)
	}
	m.norm.SetLimits(vmin, vmax)
	m.Changed()
	return nil
}

// Clim returns the norm limits.
func (m *ScalarMappable) Clim() (float64, float64) { return m.norm.Limits() }

// Autoscale sets the norm limits from the array.
func (m *ScalarMappable) Autoscale() {
	m.norm.Autoscale(m.a)
	m.Changed()
}

// AutoscaleNone sets only the unset norm limits from the array.
func (m *ScalarMappable) AutoscaleNone() {
	m.norm.AutoscaleNone(m.a)
}

// ToRGBA maps xs through the norm and colormap.
func (m *ScalarMappable) ToRGBA(xs []float64, alpha float64) []RGBA {
	if !m.norm.Scaled() {
		m.norm.AutoscaleNone(xs)
	}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = m.norm.Call(x)
	}
	return m.cmap.Map(ys, alpha)
}

// Colors maps the stored array.
func (m *ScalarMappable) Colors(alpha float64) []RGBA {
	return m.ToRGBA(m.a, alpha)
}

// AddCallback registers fn and returns its id.
func (m *ScalarMappable) AddCallback(fn func(*ScalarMappable)) int {
	if m.callbacks == nil {
		m.callbacks = make(map[int]func(*ScalarMappable))
	}
	m.nextID++
	m.callbacks[m.nextID] = fn
	return m.nextID
}

// RemoveCallback unregisters id. Unknown ids are ignored.
func (m *ScalarMappable) RemoveCallback(id int) {
	delete(m.callbacks, id)
}

// Changed notifies the callbacks.
func (m *ScalarMappable) Changed() {
	for _, fn := range m.callbacks {
		fn(m)
	}
}
