package artist

import (
	"slices"

	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/transform"
)

// Artist is anything that renders itself.
type Artist interface {
	// Draw renders the artist. The first error aborts the enclosing draw.
	Draw(r backend.Renderer) error
	// ArtistBase returns the shared state.
	ArtistBase() *Base
	// Schema returns the settable properties.
	Schema() *Schema
}

// Figure is what an artist knows about the figure holding it.
type Figure interface {
	DPI() float64
}

// Axes is what an artist knows about the axes holding it.
type Axes interface {
	TransData() *transform.Separable
	TransAxes() *transform.Separable
}

// Extenter is implemented by artists that know their display bounds.
type Extenter interface {
	WindowExtent(r backend.Renderer) (*bbox.Bbox, error)
}

// Base holds the state shared by every artist. The zero value is not
// usable; call Init.
type Base struct {
	self Artist

	trans    transform.Transform
	transSet bool

	visible  bool
	animated bool
	alpha    float64
	alphaSet bool
	zorder   float64
	clipBox  *bbox.Bbox
	clipOn   bool
	label    string

	figure Figure
	axes   Axes

	eventsOn  bool
	observers map[int]func(Artist)
	nextOID   int
}

// Init sets the defaults and records the embedding artist, which
// observers receive.
func (b *Base) Init(self Artist) {
	b.self = self
	b.visible = true
	b.alpha = 1
	b.clipOn = true
	b.eventsOn = true
}

// ArtistBase implements Artist.
func (b *Base) ArtistBase() *Base { return b }

// Transform returns the bound transform, the identity until one is set.
func (b *Base) Transform() transform.Transform {
	if b.trans == nil {
		b.trans = transform.Identity()
	}
	return b.trans
}

// SetTransform binds t and marks the transform as user-set.
func (b *Base) SetTransform(t transform.Transform) {
	b.trans = t
	b.transSet = true
	b.PChanged()
}

// IsTransformSet reports whether SetTransform was called.
func (b *Base) IsTransformSet() bool { return b.transSet }

// Visible reports whether the artist draws.
func (b *Base) Visible() bool { return b.visible }

// SetVisible shows or hides the artist.
func (b *Base) SetVisible(v bool) {
	b.visible = v
	b.PChanged()
}

// Animated reports whether parents skip the artist in full redraws.
func (b *Base) Animated() bool { return b.animated }

// SetAnimated marks the artist for separate blitting.
func (b *Base) SetAnimated(v bool) {
	b.animated = v
	b.PChanged()
}

// Alpha returns the opacity in [0, 1].
func (b *Base) Alpha() float64 { return b.alpha }

// IsAlphaSet reports whether SetAlpha was called.
func (b *Base) IsAlphaSet() bool { return b.alphaSet }

// SetAlpha sets the opacity, clamped to [0, 1].
func (b *Base) SetAlpha(a float64) {
	b.alpha = min(1, max(0, a))
	b.alphaSet = true
	b.PChanged()
}

// ZOrder returns the draw order key.
func (b *Base) ZOrder() float64 { return b.zorder }

// SetZOrder sets the draw order key. Higher values draw on top.
func (b *Base) SetZOrder(z float64) {
	b.zorder = z
	b.PChanged()
}

// ClipBox returns the display-space clip box, or nil.
func (b *Base) ClipBox() *bbox.Bbox { return b.clipBox }

// SetClipBox sets the display-space clip box.
func (b *Base) SetClipBox(c *bbox.Bbox) {
	b.clipBox = c
	b.PChanged()
}

// ClipOn reports whether the clip box applies.
func (b *Base) ClipOn() bool { return b.clipOn }

// SetClipOn enables or disables clipping.
func (b *Base) SetClipOn(v bool) {
	b.clipOn = v
	b.PChanged()
}

// Label returns the legend label.
func (b *Base) Label() string { return b.label }

// SetLabel sets the legend label.
func (b *Base) SetLabel(s string) {
	b.label = s
	b.PChanged()
}

// Figure returns the owning figure, or nil.
func (b *Base) Figure() Figure { return b.figure }

// SetFigure records the owning figure.
func (b *Base) SetFigure(f Figure) { b.figure = f }

// Axes returns the owning axes, or nil.
func (b *Base) Axes() Axes { return b.axes }

// SetAxes records the owning axes.
func (b *Base) SetAxes(a Axes) { b.axes = a }

// EventsOn reports whether observers fire.
func (b *Base) EventsOn() bool { return b.eventsOn }

// SetEventsOn enables or disables observers.
func (b *Base) SetEventsOn(v bool) { b.eventsOn = v }

// AddCallback registers fn to run after every property change and
// returns its id.
func (b *Base) AddCallback(fn func(Artist)) int {
	if b.observers == nil {
		b.observers = make(map[int]func(Artist))
	}
	id := b.nextOID
	b.nextOID++
	b.observers[id] = fn
	return id
}

// RemoveCallback unregisters an observer. Unknown ids are ignored.
func (b *Base) RemoveCallback(id int) { delete(b.observers, id) }

// PChanged notifies the observers, in registration order.
func (b *Base) PChanged() {
	if !b.eventsOn || len(b.observers) == 0 {
		return
	}
	ids := make([]int, 0, len(b.observers))
	for id := range b.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := b.observers[id]; ok {
			fn(b.self)
		}
	}
}

// UpdateFrom copies the shared style of o: visibility, alpha, z-order,
// clipping, label and transform.
func (b *Base) UpdateFrom(o *Base) {
	b.trans, b.transSet = o.trans, o.transSet
	b.visible = o.visible
	b.animated = o.animated
	b.alpha, b.alphaSet = o.alpha, o.alphaSet
	b.zorder = o.zorder
	b.clipBox, b.clipOn = o.clipBox, o.clipOn
	b.label = o.label
	b.PChanged()
}

// NewGC returns a graphics context with the artist alpha and clip box.
func (b *Base) NewGC(r backend.Renderer) *backend.GraphicsContext {
	gc := r.NewGC()
	gc.Alpha = b.alpha
	if b.clipOn && b.clipBox != nil {
		gc.ClipRect = b.clipBox
	}
	return gc
}

// SortByZOrder sorts artists by z-order, keeping insertion order among
// equal keys.
func SortByZOrder(artists []Artist) {
	slices.SortStableFunc(artists, func(a, b Artist) int {
		za, zb := a.ArtistBase().zorder, b.ArtistBase().zorder
		switch {
		case za < zb:
			return -1
		case za > zb:
			return 1
		}
		return 0
	})
}

// DrawAll draws the visible, non-animated artists in z-order.
func DrawAll(r backend.Renderer, artists []Artist) error {
	sorted := slices.Clone(artists)
	SortByZOrder(sorted)
	for _, a := range sorted {
		b := a.ArtistBase()
		if !b.visible || b.animated {
			continue
		}
		if err := a.Draw(r); err != nil {
			return err
		}
	}
	return nil
}
