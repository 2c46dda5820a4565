package patches

import (
	"github.com/gogpu/gplot/artist"
)

// Schema implements artist.Artist.
func (p *Patch) Schema() *artist.Schema { return patchSchema }

// Schema implements artist.Artist.
func (r *Rectangle) Schema() *artist.Schema { return rectSchema }

// Schema implements artist.Artist.
func (c *Circle) Schema() *artist.Schema { return circleSchema }

func onPatch[V any](fn func(*Patch) V) func(artist.Artist) any {
	return artist.Getter(func(a Artist) V { return fn(a.AsPatch()) })
}

var patchSchema = artist.NewSchema(artist.BaseSchema,
	artist.Property{
		Name: "antialiased", Aliases: []string{"aa"}, Accepts: "bool",
		Get: onPatch((*Patch).Antialiased),
		Set: artist.BoolSetter(func(a Artist, v bool) { a.AsPatch().SetAntialiased(v) }),
	},
	artist.Property{
		Name: "color", Accepts: "any color; sets edge and face",
		Get: onPatch((*Patch).FaceColor),
		Set: artist.AnySetter(func(a Artist, v any) error { return a.AsPatch().SetColor(v) }),
	},
	artist.Property{
		Name: "edgecolor", Aliases: []string{"ec"}, Accepts: "any color",
		Get: onPatch((*Patch).EdgeColor),
		Set: artist.AnySetter(func(a Artist, v any) error { return a.AsPatch().SetEdgeColor(v) }),
	},
	artist.Property{
		Name: "facecolor", Aliases: []string{"fc"}, Accepts: "any color",
		Get: onPatch((*Patch).FaceColor),
		Set: artist.AnySetter(func(a Artist, v any) error { return a.AsPatch().SetFaceColor(v) }),
	},
	artist.Property{
		Name: "fill", Accepts: "bool",
		Get: onPatch((*Patch).Fill),
		Set: artist.BoolSetter(func(a Artist, v bool) { a.AsPatch().SetFill(v) }),
	},
	artist.Property{
		Name: "hatch", Accepts: "a string of / \\ | - + x o O . *",
		Get: onPatch((*Patch).Hatch),
		Set: artist.StringSetter(func(a Artist, v string) error {
			a.AsPatch().SetHatch(v)
			return nil
		}),
	},
	artist.Property{
		Name: "linestyle", Aliases: []string{"ls"}, Accepts: "-, --, -., : or None",
		Get: onPatch((*Patch).LineStyle),
		Set: artist.StringSetter(func(a Artist, v string) error { return a.AsPatch().SetLineStyle(v) }),
	},
	artist.Property{
		Name: "linewidth", Aliases: []string{"lw"}, Accepts: "float in points",
		Get: onPatch((*Patch).LineWidth),
		Set: artist.FloatSetter(func(a Artist, v float64) { a.AsPatch().SetLineWidth(v) }),
	},
)

var rectSchema = artist.NewSchema(patchSchema,
	artist.Property{
		Name: "x", Accepts: "float",
		Get: artist.Getter(func(r *Rectangle) float64 { return r.x }),
		Set: artist.FloatSetter(func(r *Rectangle, v float64) { r.SetXY(v, r.y) }),
	},
	artist.Property{
		Name: "y", Accepts: "float",
		Get: artist.Getter(func(r *Rectangle) float64 { return r.y }),
		Set: artist.FloatSetter(func(r *Rectangle, v float64) { r.SetXY(r.x, v) }),
	},
	artist.Property{
		Name: "width", Accepts: "float",
		Get: artist.Getter((*Rectangle).Width),
		Set: artist.FloatSetter((*Rectangle).SetWidth),
	},
	artist.Property{
		Name: "height", Accepts: "float",
		Get: artist.Getter((*Rectangle).Height),
		Set: artist.FloatSetter((*Rectangle).SetHeight),
	},
)

var circleSchema = artist.NewSchema(patchSchema,
	artist.Property{
		Name: "radius", Accepts: "float",
		Get: artist.Getter((*Circle).Radius),
		Set: artist.FloatSetter((*Circle).SetRadius),
	},
)
