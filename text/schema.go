package text

import (
	"fmt"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/font"
)

// textArtist is satisfied by Text and by types embedding it.
type textArtist interface {
	artist.Artist
	asText() *Text
}

func (t *Text) asText() *Text { return t }

// Schema implements artist.Artist.
func (t *Text) Schema() *artist.Schema { return textSchema }

// Schema implements artist.Artist.
func (t *TextWithDash) Schema() *artist.Schema { return dashSchema }

func get[V any](fn func(*Text) V) func(artist.Artist) any {
	return artist.Getter(func(a textArtist) V { return fn(a.asText()) })
}

func setAny(fn func(*Text, any) error) func(artist.Artist, any) error {
	return artist.AnySetter(func(a textArtist, v any) error { return fn(a.asText(), v) })
}

func setString(fn func(*Text, string) error) func(artist.Artist, any) error {
	return artist.StringSetter(func(a textArtist, v string) error { return fn(a.asText(), v) })
}

func setFloat(fn func(*Text, float64)) func(artist.Artist, any) error {
	return artist.FloatSetter(func(a textArtist, v float64) { fn(a.asText(), v) })
}

var textSchema = artist.NewSchema(artist.BaseSchema,
	artist.Property{
		Name: "bbox", Accepts: "*text.BoxStyle or nil",
		Get: get((*Text).BBox),
		Set: setAny(func(t *Text, v any) error {
			switch b := v.(type) {
			case *BoxStyle:
				t.SetBBox(b)
			case BoxStyle:
				t.SetBBox(&b)
			case nil:
				t.SetBBox(nil)
			default:
				return fmt.Errorf("%w: bbox %T", gplot.ErrInvalidValue, v)
			}
			return nil
		}),
	},
	artist.Property{
		Name: "color", Aliases: []string{"c"}, Accepts: "any color",
		Get: get((*Text).Color),
		Set: setAny((*Text).SetColor),
	},
	artist.Property{
		Name: "fontfamily", Aliases: []string{"family"}, Accepts: "family name or []string",
		Get: get(func(t *Text) []string { return t.props.Family }),
		Set: setAny((*Text).SetFontFamily),
	},
	artist.Property{
		Name: "fontproperties", Accepts: "*font.Properties",
		Get: get((*Text).FontProperties),
		Set: setAny(func(t *Text, v any) error {
			p, ok := v.(*font.Properties)
			if !ok || p == nil {
				return fmt.Errorf("%w: font properties %T", gplot.ErrInvalidValue, v)
			}
			t.SetFontProperties(p)
			return nil
		}),
	},
	artist.Property{
		Name: "fontsize", Aliases: []string{"size"}, Accepts: "points or xx-small ... xx-large",
		Get: get((*Text).FontSize),
		Set: setAny((*Text).SetFontSize),
	},
	artist.Property{
		Name: "fontstyle", Aliases: []string{"style"}, Accepts: "normal, italic or oblique",
		Get: get(func(t *Text) string { return t.props.Style }),
		Set: setString((*Text).SetFontStyle),
	},
	artist.Property{
		Name: "fontvariant", Aliases: []string{"variant"}, Accepts: "normal or small-caps",
		Get: get(func(t *Text) string { return t.props.Variant }),
		Set: setString((*Text).SetFontVariant),
	},
	artist.Property{
		Name: "fontweight", Aliases: []string{"weight"}, Accepts: "weight name or 100-900",
		Get: get(func(t *Text) string { return t.props.Weight }),
		Set: setAny((*Text).SetFontWeight),
	},
	artist.Property{
		Name: "horizontalalignment", Aliases: []string{"ha"}, Accepts: "left, center or right",
		Get: get(func(t *Text) string { return t.ha.String() }),
		Set: setString((*Text).SetHorizontalAlignment),
	},
	artist.Property{
		Name: "multialignment", Aliases: []string{"ma"}, Accepts: "left, center or right",
		Get: get(func(t *Text) string { return t.MultiAlignment().String() }),
		Set: setString((*Text).SetMultiAlignment),
	},
	artist.Property{
		Name: "position", Accepts: "[2]float64",
		Get: get(func(t *Text) [2]float64 { return [2]float64{t.x, t.y} }),
		Set: setAny(func(t *Text, v any) error {
			p, err := artist.ToFloats(v)
			if err != nil || len(p) != 2 {
				return fmt.Errorf("%w: position %v", gplot.ErrInvalidValue, v)
			}
			t.SetPosition(p[0], p[1])
			return nil
		}),
	},
	artist.Property{
		Name: "rotation", Accepts: "degrees, horizontal or vertical",
		Get: get((*Text).Rotation),
		Set: setAny((*Text).SetRotation),
	},
	artist.Property{
		Name: "text", Accepts: "any string",
		Get: get((*Text).Text),
		Set: setAny(func(t *Text, v any) error {
			t.SetText(fmt.Sprint(v))
			return nil
		}),
	},
	artist.Property{
		Name: "usetex", Accepts: "bool",
		Get: get((*Text).UseTex),
		Set: artist.BoolSetter(func(a textArtist, v bool) { a.asText().SetUseTex(v) }),
	},
	artist.Property{
		Name: "verticalalignment", Aliases: []string{"va"}, Accepts: "top, center, bottom or baseline",
		Get: get(func(t *Text) string { return t.va.String() }),
		Set: setString((*Text).SetVerticalAlignment),
	},
	artist.Property{
		Name: "x", Accepts: "float",
		Get: get(func(t *Text) float64 { return t.x }),
		Set: setFloat((*Text).SetX),
	},
	artist.Property{
		Name: "y", Accepts: "float",
		Get: get(func(t *Text) float64 { return t.y }),
		Set: setFloat((*Text).SetY),
	},
)

var dashSchema = artist.NewSchema(textSchema,
	artist.Property{
		Name: "dashdirection", Accepts: "0 (before) or 1 (after)",
		Get: artist.Getter((*TextWithDash).DashDirection),
		Set: artist.FloatSetter(func(t *TextWithDash, v float64) { t.SetDashDirection(int(v)) }),
	},
	artist.Property{
		Name: "dashlength", Accepts: "points",
		Get: artist.Getter((*TextWithDash).DashLength),
		Set: artist.FloatSetter((*TextWithDash).SetDashLength),
	},
	artist.Property{
		Name: "dashpad", Accepts: "points",
		Get: artist.Getter((*TextWithDash).DashPad),
		Set: artist.FloatSetter((*TextWithDash).SetDashPad),
	},
	artist.Property{
		Name: "dashpush", Accepts: "points",
		Get: artist.Getter((*TextWithDash).DashPush),
		Set: artist.FloatSetter((*TextWithDash).SetDashPush),
	},
	artist.Property{
		Name: "dashrotation", Accepts: "degrees",
		Get: artist.Getter((*TextWithDash).DashRotation),
		Set: artist.FloatSetter((*TextWithDash).SetDashRotation),
	},
)
