package artist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/transform"
)

// Property is one settable attribute of an artist.
type Property struct {
	Name    string
	Aliases []string
	// Accepts summarizes the legal values.
	Accepts string
	Get     func(a Artist) any
	Set     func(a Artist, v any) error
}

// Schema is a property table. A schema extends its parent: lookups that
// miss fall through to it.
type Schema struct {
	parent *Schema
	props  map[string]*Property
	alias  map[string]string
}

// NewSchema builds a schema from props on top of parent, which may be
// nil. It panics on duplicate names, since schemas are static tables.
func NewSchema(parent *Schema, props ...Property) *Schema {
	s := &Schema{
		parent: parent,
		props:  make(map[string]*Property, len(props)),
		alias:  make(map[string]string),
	}
	for i := range props {
		p := &props[i]
		if _, dup := s.props[p.Name]; dup {
			panic("artist: duplicate property " + p.Name)
		}
		s.props[p.Name] = p
		for _, a := range p.Aliases {
			s.alias[a] = p.Name
		}
	}
	return s
}

// Lookup resolves name, which may be an alias.
func (s *Schema) Lookup(name string) (*Property, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if full, ok := cur.alias[name]; ok {
			name = full
		}
		if p, ok := cur.props[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// Names returns the full property names, sorted.
func (s *Schema) Names() []string {
	seen := make(map[string]bool)
	for cur := s; cur != nil; cur = cur.parent {
		for n := range cur.props {
			seen[n] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Setp sets properties given as name, value pairs, in order.
func Setp(a Artist, kv ...any) error {
	if len(kv)%2 != 0 {
		return fmt.Errorf("artist: %w: odd number of arguments to Setp", gplot.ErrInvalidValue)
	}
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			return fmt.Errorf("artist: %w: property name %v is not a string", gplot.ErrInvalidValue, kv[i])
		}
		if err := set(a, name, kv[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// Update sets every property in props, in name order.
func Update(a Artist, props map[string]any) error {
	names := make([]string, 0, len(props))
	for n := range props {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		if err := set(a, n, props[n]); err != nil {
			return err
		}
	}
	return nil
}

func set(a Artist, name string, v any) error {
	p, ok := a.Schema().Lookup(name)
	if !ok {
		return fmt.Errorf("artist: %w %q", gplot.ErrUnknownProperty, name)
	}
	if err := p.Set(a, v); err != nil {
		return fmt.Errorf("artist: set %s: %w", p.Name, err)
	}
	return nil
}

// Getp returns the current value of a property.
func Getp(a Artist, name string) (any, error) {
	p, ok := a.Schema().Lookup(name)
	if !ok {
		return nil, fmt.Errorf("artist: %w %q", gplot.ErrUnknownProperty, name)
	}
	return p.Get(a), nil
}

// PropertyInfo describes one property of a particular artist.
type PropertyInfo struct {
	Name    string
	Aliases []string
	Accepts string
	Value   any
}

// String formats the property as "name or alias: accepts (current: v)".
func (pi PropertyInfo) String() string {
	names := append([]string{pi.Name}, pi.Aliases...)
	return fmt.Sprintf("%s: %s (current: %v)", strings.Join(names, " or "), pi.Accepts, pi.Value)
}

// Describe lists every property of a with its current value.
func Describe(a Artist) []PropertyInfo {
	s := a.Schema()
	var out []PropertyInfo
	for _, n := range s.Names() {
		p, _ := s.Lookup(n)
		out = append(out, PropertyInfo{Name: p.Name, Aliases: p.Aliases, Accepts: p.Accepts, Value: p.Get(a)})
	}
	return out
}

// BaseSchema holds the properties every artist has.
var BaseSchema = NewSchema(nil,
	Property{
		Name: "alpha", Accepts: "float in [0, 1]",
		Get: func(a Artist) any { return a.ArtistBase().Alpha() },
		Set: func(a Artist, v any) error {
			f, err := ToFloat(v)
			if err != nil {
				return err
			}
			if f < 0 || f > 1 {
				return fmt.Errorf("%w: alpha %v outside [0, 1]", gplot.ErrInvalidValue, f)
			}
			a.ArtistBase().SetAlpha(f)
			return nil
		},
	},
	Property{
		Name: "animated", Accepts: "bool",
		Get: func(a Artist) any { return a.ArtistBase().Animated() },
		Set: boolSetter(func(a Artist, v bool) { a.ArtistBase().SetAnimated(v) }),
	},
	Property{
		Name: "clip_box", Accepts: "*bbox.Bbox",
		Get: func(a Artist) any { return a.ArtistBase().ClipBox() },
		Set: func(a Artist, v any) error {
			switch b := v.(type) {
			case *bbox.Bbox:
				a.ArtistBase().SetClipBox(b)
			case nil:
				a.ArtistBase().SetClipBox(nil)
			default:
				return fmt.Errorf("%w: clip box %T", gplot.ErrInvalidValue, v)
			}
			return nil
		},
	},
	Property{
		Name: "clip_on", Accepts: "bool",
		Get: func(a Artist) any { return a.ArtistBase().ClipOn() },
		Set: boolSetter(func(a Artist, v bool) { a.ArtistBase().SetClipOn(v) }),
	},
	Property{
		Name: "label", Accepts: "any string",
		Get: func(a Artist) any { return a.ArtistBase().Label() },
		Set: func(a Artist, v any) error {
			a.ArtistBase().SetLabel(fmt.Sprint(v))
			return nil
		},
	},
	Property{
		Name: "transform", Accepts: "transform.Transform",
		Get: func(a Artist) any { return a.ArtistBase().Transform() },
		Set: func(a Artist, v any) error {
			t, ok := v.(transform.Transform)
			if !ok {
				return fmt.Errorf("%w: transform %T", gplot.ErrInvalidValue, v)
			}
			a.ArtistBase().SetTransform(t)
			return nil
		},
	},
	Property{
		Name: "visible", Accepts: "bool",
		Get: func(a Artist) any { return a.ArtistBase().Visible() },
		Set: boolSetter(func(a Artist, v bool) { a.ArtistBase().SetVisible(v) }),
	},
	Property{
		Name: "zorder", Accepts: "any number",
		Get: func(a Artist) any { return a.ArtistBase().ZOrder() },
		Set: floatSetter(func(a Artist, v float64) { a.ArtistBase().SetZOrder(v) }),
	},
)

func boolSetter(fn func(Artist, bool)) func(Artist, any) error {
	return func(a Artist, v any) error {
		b, err := ToBool(v)
		if err != nil {
			return err
		}
		fn(a, b)
		return nil
	}
}

func floatSetter(fn func(Artist, float64)) func(Artist, any) error {
	return func(a Artist, v any) error {
		f, err := ToFloat(v)
		if err != nil {
			return err
		}
		fn(a, f)
		return nil
	}
}

// BoolSetter adapts a typed setter to a Property.Set for package-external
// schemas.
func BoolSetter[T Artist](fn func(T, bool)) func(Artist, any) error {
	return boolSetter(func(a Artist, v bool) { fn(a.(T), v) })
}

// FloatSetter adapts a typed float setter.
func FloatSetter[T Artist](fn func(T, float64)) func(Artist, any) error {
	return floatSetter(func(a Artist, v float64) { fn(a.(T), v) })
}

// StringSetter adapts a typed string setter that may fail.
func StringSetter[T Artist](fn func(T, string) error) func(Artist, any) error {
	return func(a Artist, v any) error {
		s, err := ToString(v)
		if err != nil {
			return err
		}
		return fn(a.(T), s)
	}
}

// AnySetter adapts a typed setter that parses its own value.
func AnySetter[T Artist](fn func(T, any) error) func(Artist, any) error {
	return func(a Artist, v any) error { return fn(a.(T), v) }
}

// Getter adapts a typed getter.
func Getter[T Artist, V any](fn func(T) V) func(Artist) any {
	return func(a Artist) any { return fn(a.(T)) }
}
