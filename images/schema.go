package images

import (
	"fmt"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/colors"
)

// Schema implements artist.Artist.
func (im *AxesImage) Schema() *artist.Schema { return imageSchema }

// SetCmap accepts a colormap or the name of a registered one.
func (im *AxesImage) SetCmap(v any) error {
	switch c := v.(type) {
	case *colors.Colormap:
		im.sm.SetCmap(c)
	case string:
		cm, err := colors.Get(c)
		if err != nil {
			return fmt.Errorf("images: %w", err)
		}
		im.sm.SetCmap(cm)
	default:
		return fmt.Errorf("images: %w: colormap %T", gplot.ErrInvalidValue, v)
	}
	return nil
}

var imageSchema = artist.NewSchema(artist.BaseSchema,
	artist.Property{
		Name: "clim", Accepts: "[vmin, vmax]",
		Get: artist.Getter(func(im *AxesImage) [2]float64 {
			lo, hi := im.sm.Clim()
			return [2]float64{lo, hi}
		}),
		Set: artist.AnySetter(func(im *AxesImage, v any) error {
			lim, err := artist.ToFloats(v)
			if err != nil || len(lim) != 2 {
				return fmt.Errorf("%w: clim %v", gplot.ErrInvalidValue, v)
			}
			return im.sm.SetClim(lim[0], lim[1])
		}),
	},
	artist.Property{
		Name: "cmap", Accepts: "colormap name or *colors.Colormap",
		Get: artist.Getter(func(im *AxesImage) string { return im.sm.Cmap().Name() }),
		Set: artist.AnySetter((*AxesImage).SetCmap),
	},
	artist.Property{
		Name: "extent", Accepts: "[left, right, bottom, top]",
		Get: artist.Getter(func(im *AxesImage) [4]float64 {
			l, r, b, t := im.Extent()
			return [4]float64{l, r, b, t}
		}),
		Set: artist.AnySetter(func(im *AxesImage, v any) error {
			e, err := artist.ToFloats(v)
			if err != nil || len(e) != 4 {
				return fmt.Errorf("%w: extent %v", gplot.ErrInvalidValue, v)
			}
			return im.SetExtent(e[0], e[1], e[2], e[3])
		}),
	},
	artist.Property{
		Name: "interpolation", Accepts: "nearest, bilinear, bicubic or catmullrom",
		Get: artist.Getter((*AxesImage).Interpolation),
		Set: artist.StringSetter((*AxesImage).SetInterpolation),
	},
	artist.Property{
		Name: "origin", Accepts: "upper or lower",
		Get: artist.Getter((*AxesImage).Origin),
		Set: artist.StringSetter((*AxesImage).SetOrigin),
	},
)
