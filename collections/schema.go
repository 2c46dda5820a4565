package collections

import (
	"fmt"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
)

// Schema implements artist.Artist.
func (c *Collection) Schema() *artist.Schema { return collectionSchema }

func onColl[V any](fn func(*Collection) V) func(artist.Artist) any {
	return artist.Getter(func(a outliner) V { return fn(a.AsCollection()) })
}

func setColl(fn func(*Collection, any) error) func(artist.Artist, any) error {
	return artist.AnySetter(func(a outliner, v any) error { return fn(a.AsCollection(), v) })
}

var collectionSchema = artist.NewSchema(artist.BaseSchema,
	artist.Property{
		Name: "antialiased", Aliases: []string{"antialiaseds", "aa"}, Accepts: "bool or list of bool",
		Get: onColl(func(c *Collection) []bool { return c.antialiased }),
		Set: setColl(func(c *Collection, v any) error {
			if bs, ok := v.([]bool); ok {
				c.SetAntialiased(bs...)
				return nil
			}
			b, err := artist.ToBool(v)
			if err != nil {
				return err
			}
			c.SetAntialiased(b)
			return nil
		}),
	},
	artist.Property{
		Name: "array", Accepts: "[]float64, one scalar per instance",
		Get: onColl(func(c *Collection) []float64 { return c.sm.Array() }),
		Set: artist.AnySetter(func(a outliner, v any) error {
			xs, err := artist.ToFloats(v)
			if err != nil {
				return err
			}
			if qm, ok := a.(*QuadMesh); ok {
				return qm.SetArray(xs)
			}
			a.AsCollection().SetArray(xs)
			return nil
		}),
	},
	artist.Property{
		Name: "clim", Accepts: "[vmin, vmax]",
		Get: onColl(func(c *Collection) [2]float64 {
			lo, hi := c.sm.Clim()
			return [2]float64{lo, hi}
		}),
		Set: setColl(func(c *Collection, v any) error {
			lim, err := artist.ToFloats(v)
			if err != nil || len(lim) != 2 {
				return fmt.Errorf("%w: clim %v", gplot.ErrInvalidValue, v)
			}
			return c.sm.SetClim(lim[0], lim[1])
		}),
	},
	artist.Property{
		Name: "cmap", Accepts: "colormap name or *colors.Colormap",
		Get: onColl(func(c *Collection) string { return c.sm.Cmap().Name() }),
		Set: setColl((*Collection).SetCmap),
	},
	artist.Property{
		Name: "color", Accepts: "a color or list of colors",
		Get: onColl((*Collection).FaceColors),
		Set: artist.AnySetter(func(a outliner, v any) error {
			if lc, ok := a.(*LineCollection); ok {
				return lc.SetColor(v)
			}
			return a.AsCollection().SetColor(v)
		}),
	},
	artist.Property{
		Name: "edgecolor", Aliases: []string{"edgecolors", "ec"}, Accepts: "a color, list of colors or none",
		Get: onColl((*Collection).EdgeColors),
		Set: setColl((*Collection).SetEdgeColors),
	},
	artist.Property{
		Name: "facecolor", Aliases: []string{"facecolors", "fc"}, Accepts: "a color, list of colors or none",
		Get: onColl((*Collection).FaceColors),
		Set: setColl((*Collection).SetFaceColors),
	},
	artist.Property{
		Name: "hatch", Accepts: "a string of / \\ | - + x o O . *",
		Get: onColl((*Collection).Hatch),
		Set: setColl(func(c *Collection, v any) error {
			s, err := artist.ToString(v)
			if err != nil {
				return err
			}
			c.SetHatch(s)
			return nil
		}),
	},
	artist.Property{
		Name: "linestyle", Aliases: []string{"linestyles", "ls"}, Accepts: "a line style or list of them",
		Get: onColl((*Collection).LineStyles),
		Set: setColl(func(c *Collection, v any) error {
			if ss, ok := v.([]string); ok {
				return c.SetLineStyles(ss...)
			}
			s, err := artist.ToString(v)
			if err != nil {
				return err
			}
			return c.SetLineStyles(s)
		}),
	},
	artist.Property{
		Name: "linewidth", Aliases: []string{"linewidths", "lw"}, Accepts: "float or list of floats in points",
		Get: onColl((*Collection).LineWidths),
		Set: setColl(func(c *Collection, v any) error {
			if w, err := artist.ToFloat(v); err == nil {
				c.SetLineWidths(w)
				return nil
			}
			ws, err := artist.ToFloats(v)
			if err != nil {
				return err
			}
			c.SetLineWidths(ws...)
			return nil
		}),
	},
)
