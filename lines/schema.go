package lines

import (
	"fmt"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
)

// Schema implements artist.Artist.
func (l *Line2D) Schema() *artist.Schema { return lineSchema }

var lineSchema = artist.NewSchema(artist.BaseSchema,
	artist.Property{
		Name: "antialiased", Aliases: []string{"aa"}, Accepts: "bool",
		Get: artist.Getter((*Line2D).Antialiased),
		Set: artist.BoolSetter((*Line2D).SetAntialiased),
	},
	artist.Property{
		Name: "color", Aliases: []string{"c"}, Accepts: "any color",
		Get: artist.Getter((*Line2D).Color),
		Set: artist.AnySetter((*Line2D).SetColor),
	},
	artist.Property{
		Name: "dash_capstyle", Accepts: "butt, round or projecting",
		Get: artist.Getter(func(l *Line2D) string { return l.style.DashCapStyle.String() }),
		Set: artist.StringSetter((*Line2D).SetDashCapStyle),
	},
	artist.Property{
		Name: "dash_joinstyle", Accepts: "miter, round or bevel",
		Get: artist.Getter(func(l *Line2D) string { return l.style.DashJoinStyle.String() }),
		Set: artist.StringSetter((*Line2D).SetDashJoinStyle),
	},
	artist.Property{
		Name: "dashes", Accepts: "sequence of on/off lengths in points",
		Get: artist.Getter((*Line2D).Dashes),
		Set: artist.AnySetter(func(l *Line2D, v any) error {
			seq, err := artist.ToFloats(v)
			if err != nil {
				return err
			}
			l.SetDashes(seq)
			return nil
		}),
	},
	artist.Property{
		Name: "data", Accepts: "[2][]float64{xs, ys}",
		Get: artist.Getter(func(l *Line2D) [2][]float64 { return [2][]float64{l.xs, l.ys} }),
		Set: artist.AnySetter(func(l *Line2D, v any) error {
			d, ok := v.([2][]float64)
			if !ok {
				return fmt.Errorf("%w: data %T", gplot.ErrInvalidValue, v)
			}
			return l.SetData(d[0], d[1])
		}),
	},
	artist.Property{
		Name: "linestyle", Aliases: []string{"ls"}, Accepts: strings.Join(LineStyles(), ", "),
		Get: artist.Getter((*Line2D).LineStyle),
		Set: artist.StringSetter((*Line2D).SetLineStyle),
	},
	artist.Property{
		Name: "linewidth", Aliases: []string{"lw"}, Accepts: "float in points",
		Get: artist.Getter((*Line2D).LineWidth),
		Set: artist.FloatSetter((*Line2D).SetLineWidth),
	},
	artist.Property{
		Name: "marker", Accepts: "a marker code, 0-3 for ticks, or None",
		Get: artist.Getter((*Line2D).Marker),
		Set: artist.AnySetter((*Line2D).SetMarker),
	},
	artist.Property{
		Name: "markeredgecolor", Aliases: []string{"mec"}, Accepts: "any color, auto or none",
		Get: artist.Getter((*Line2D).MarkerEdgeColor),
		Set: artist.AnySetter((*Line2D).SetMarkerEdgeColor),
	},
	artist.Property{
		Name: "markeredgewidth", Aliases: []string{"mew"}, Accepts: "float in points",
		Get: artist.Getter((*Line2D).MarkerEdgeWidth),
		Set: artist.FloatSetter((*Line2D).SetMarkerEdgeWidth),
	},
	artist.Property{
		Name: "markerfacecolor", Aliases: []string{"mfc"}, Accepts: "any color, auto or none",
		Get: artist.Getter((*Line2D).MarkerFaceColor),
		Set: artist.AnySetter((*Line2D).SetMarkerFaceColor),
	},
	artist.Property{
		Name: "markersize", Aliases: []string{"ms"}, Accepts: "float in points",
		Get: artist.Getter((*Line2D).MarkerSize),
		Set: artist.FloatSetter((*Line2D).SetMarkerSize),
	},
	artist.Property{
		Name: "solid_capstyle", Accepts: "butt, round or projecting",
		Get: artist.Getter(func(l *Line2D) string { return l.style.SolidCapStyle.String() }),
		Set: artist.StringSetter((*Line2D).SetSolidCapStyle),
	},
	artist.Property{
		Name: "solid_joinstyle", Accepts: "miter, round or bevel",
		Get: artist.Getter(func(l *Line2D) string { return l.style.SolidJoinStyle.String() }),
		Set: artist.StringSetter((*Line2D).SetSolidJoinStyle),
	},
	artist.Property{
		Name: "xdata", Accepts: "[]float64",
		Get: artist.Getter(func(l *Line2D) []float64 { return l.xs }),
		Set: artist.AnySetter(func(l *Line2D, v any) error {
			xs, err := artist.ToFloats(v)
			if err != nil {
				return err
			}
			return l.SetXData(xs)
		}),
	},
	artist.Property{
		Name: "ydata", Accepts: "[]float64",
		Get: artist.Getter(func(l *Line2D) []float64 { return l.ys }),
		Set: artist.AnySetter(func(l *Line2D, v any) error {
			ys, err := artist.ToFloats(v)
			if err != nil {
				return err
			}
			return l.SetYData(ys)
		}),
	},
)
