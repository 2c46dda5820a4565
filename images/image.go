// Package images draws 2D arrays and pictures inside an axes.
//
// An AxesImage holds either scalar data, colored through a norm and a
// colormap, or an image.Image used as is. At draw time the visible part
// is resampled with golang.org/x/image/draw into a buffer sized for the
// renderer's magnification and blitted with DrawImage.
package images

import (
	"fmt"
	"image"
	"math"
	"slices"
	"sort"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/rcparams"
)

var interpolators = map[string]draw.Interpolator{
	"nearest":    draw.NearestNeighbor,
	"bilinear":   draw.BiLinear,
	"bicubic":    draw.CatmullRom,
	"catmullrom": draw.CatmullRom,
}

// Interpolations returns the accepted resampling names, sorted.
func Interpolations() []string {
	names := make([]string, 0, len(interpolators))
	for n := range interpolators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Origins.
const (
	OriginUpper = "upper"
	OriginLower = "lower"
)

// AxesImage is a raster placed over a data-space extent.
type AxesImage struct {
	artist.Base

	sm   *colors.ScalarMappable
	data [][]float64
	pic  image.Image

	rows, cols int

	// left, right, bottom, top
	extent    [4]float64
	extentSet bool
	origin    string
	interp    string

	// colored source pixels, rebuilt after any data or mapping change
	src      *image.NRGBA
	srcAlpha float64
}

// New returns an empty image with the image.* rc defaults.
func New() *AxesImage {
	rc := rcparams.Default()
	// An unknown rc colormap falls back to jet.
	cmap, _ := colors.Get(rc.String("image.cmap"))
	im := &AxesImage{
		sm:     colors.NewScalarMappable(nil, cmap),
		origin: rc.String("image.origin"),
		interp: rc.String("image.interpolation"),
	}
	im.Init(im)
	im.sm.AddCallback(func(*colors.ScalarMappable) {
		im.src = nil
		im.PChanged()
	})
	return im
}

// Mappable returns the norm and colormap used for scalar data.
func (im *AxesImage) Mappable() *colors.ScalarMappable { return im.sm }

// SetData replaces the image with scalar rows, all of the same length.
func (im *AxesImage) SetData(z [][]float64) error {
	if len(z) == 0 || len(z[0]) == 0 {
		return &gplot.ShapeError{Op: "images: set data", Got: []int{len(z), 0}, Want: []int{1, 1}}
	}
	cols := len(z[0])
	flat := make([]float64, 0, len(z)*cols)
	data := make([][]float64, len(z))
	for i, row := range z {
		if len(row) != cols {
			return &gplot.ShapeError{Op: fmt.Sprintf("images: set data row %d", i), Got: []int{len(row)}, Want: []int{cols}}
		}
		data[i] = slices.Clone(row)
		flat = append(flat, row...)
	}
	im.data, im.pic = data, nil
	im.rows, im.cols = len(z), cols
	im.sm.SetArray(flat)
	im.sm.AutoscaleNone()
	return nil
}

// SetImage replaces the image with a picture drawn without color mapping.
func (im *AxesImage) SetImage(p image.Image) error {
	b := p.Bounds()
	if b.Empty() {
		return &gplot.ShapeError{Op: "images: set image", Got: []int{b.Dy(), b.Dx()}, Want: []int{1, 1}}
	}
	im.pic, im.data = p, nil
	im.rows, im.cols = b.Dy(), b.Dx()
	im.src = nil
	im.PChanged()
	return nil
}

// Size returns the number of rows and columns.
func (im *AxesImage) Size() (rows, cols int) { return im.rows, im.cols }

// Extent returns left, right, bottom and top in data coordinates. Unless
// set, pixel centers fall on integer coordinates and the upper origin
// puts row 0 at the top, so top < bottom.
func (im *AxesImage) Extent() (left, right, bottom, top float64) {
	if im.extentSet {
		return im.extent[0], im.extent[1], im.extent[2], im.extent[3]
	}
	c, r := float64(im.cols)-0.5, float64(im.rows)-0.5
	if im.origin == OriginUpper {
		return -0.5, c, r, -0.5
	}
	return -0.5, c, -0.5, r
}

// SetExtent places the image over [left, right] x [bottom, top].
func (im *AxesImage) SetExtent(left, right, bottom, top float64) error {
	for _, v := range []float64{left, right, bottom, top} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("images: %w: extent %v", gplot.ErrInvalidValue, []float64{left, right, bottom, top})
		}
	}
	im.extent = [4]float64{left, right, bottom, top}
	im.extentSet = true
	im.PChanged()
	return nil
}

// DataBounds returns the extent as x0, y0, x1, y1 with x0 <= x1 and
// y0 <= y1.
func (im *AxesImage) DataBounds() (x0, y0, x1, y1 float64) {
	l, r, b, t := im.Extent()
	return math.Min(l, r), math.Min(b, t), math.Max(l, r), math.Max(b, t)
}

// Origin returns "upper" or "lower".
func (im *AxesImage) Origin() string { return im.origin }

// SetOrigin selects whether row 0 is drawn at the top or the bottom.
func (im *AxesImage) SetOrigin(o string) error {
	if o != OriginUpper && o != OriginLower {
		return fmt.Errorf("images: %w: origin %q", gplot.ErrInvalidValue, o)
	}
	im.origin = o
	im.src = nil
	im.PChanged()
	return nil
}

// Interpolation returns the resampling name.
func (im *AxesImage) Interpolation() string { return im.interp }

// SetInterpolation selects one of Interpolations.
func (im *AxesImage) SetInterpolation(s string) error {
	if _, ok := interpolators[s]; !ok {
		return fmt.Errorf("images: %w: interpolation %q", gplot.ErrInvalidValue, s)
	}
	im.interp = s
	im.PChanged()
	return nil
}

// source returns the colored pixels with row 0 of the picture at the top
// edge of the extent, or nil for an empty image.
func (im *AxesImage) source() *image.NRGBA {
	alpha := im.Alpha()
	if im.src != nil && im.srcAlpha == alpha {
		return im.src
	}
	if im.rows == 0 {
		return nil
	}
	out := image.NewNRGBA(image.Rect(0, 0, im.cols, im.rows))
	row := func(y int) int {
		if im.origin == OriginLower {
			return im.rows - 1 - y
		}
		return y
	}
	if im.data != nil {
		cs := im.sm.Colors(alpha)
		for y := range im.rows {
			r := row(y)
			for x := range im.cols {
				out.SetNRGBA(x, y, cs[r*im.cols+x].NRGBA())
			}
		}
	} else {
		b := im.pic.Bounds()
		for y := range im.rows {
			r := row(y)
			for x := range im.cols {
				c := colors.FromColor(im.pic.At(b.Min.X+x, b.Min.Y+r))
				c.A *= alpha
				out.SetNRGBA(x, y, c.NRGBA())
			}
		}
	}
	im.src, im.srcAlpha = out, alpha
	return out
}

// viewBox is the display area the image may cover: its clip box, or the
// whole canvas.
func (im *AxesImage) viewBox(r backend.Renderer) *bbox.Bbox {
	if im.ClipOn() && im.ClipBox() != nil {
		return im.ClipBox()
	}
	w, h := r.CanvasWidthHeight()
	return bbox.FromExtents(0, 0, w, h)
}

// MakeImage resamples the visible part of the image at magnification
// mag. It returns the pixels and the display position of their lower-left
// corner, or a nil image when nothing is visible. The picture is
// stretched linearly between the mapped corners of the extent.
func (im *AxesImage) MakeImage(r backend.Renderer, mag float64) (*image.RGBA, float64, float64, error) {
	src := im.source()
	if src == nil {
		return nil, 0, 0, nil
	}
	if mag <= 0 {
		return nil, 0, 0, fmt.Errorf("images: %w: magnification %g", gplot.ErrInvalidValue, mag)
	}
	l, rt, b, t := im.Extent()
	tr := im.Transform()
	dl, dt := tr.XY(l, t)
	dr, db := tr.XY(rt, b)
	if !gplot.Pt(dl, dt).IsFinite() || !gplot.Pt(dr, db).IsFinite() {
		return nil, 0, 0, fmt.Errorf("images: %w: extent maps outside the display", gplot.ErrInvalidValue)
	}

	box := bbox.FromExtents(math.Min(dl, dr), math.Min(dt, db), math.Max(dl, dr), math.Max(dt, db))
	vis, ok := bbox.Intersection(box, im.viewBox(r))
	if !ok || vis.Width() <= 0 || vis.Height() <= 0 {
		return nil, 0, 0, nil
	}
	ox0, oy0, ox1, oy1 := vis.Extents()
	w := int(math.Ceil((ox1 - ox0) * mag))
	h := int(math.Ceil((oy1 - oy0) * mag))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	sb := src.Bounds()
	sx := (dr - dl) / float64(sb.Dx())
	sy := (db - dt) / float64(sb.Dy())
	s2d := f64.Aff3{
		sx * mag, 0, (dl - ox0) * mag,
		0, -sy * mag, (oy1 - dt) * mag,
	}
	interpolators[im.interp].Transform(dst, s2d, src, sb, draw.Over, nil)
	return dst, ox0, oy0, nil
}

// Draw implements artist.Artist.
func (im *AxesImage) Draw(r backend.Renderer) error {
	if !im.Visible() {
		return nil
	}
	pix, x, y, err := im.MakeImage(r, r.ImageMagnification())
	if err != nil {
		return err
	}
	if pix == nil {
		return nil
	}
	r.OpenGroup("image")
	defer r.CloseGroup("image")
	var clip *bbox.Bbox
	if im.ClipOn() {
		clip = im.ClipBox()
	}
	r.DrawImage(x, y, pix, clip)
	return nil
}

// Composite draws imgs as one picture covering box: each is resampled at
// the renderer magnification and laid over the previous ones in order.
// Renderers that prefer separate images report OptionImageNocomposite.
func Composite(r backend.Renderer, imgs []*AxesImage, box *bbox.Bbox) error {
	mag := r.ImageMagnification()
	x0, y0, x1, y1 := box.Extents()
	w := int(math.Ceil((x1 - x0) * mag))
	h := int(math.Ceil((y1 - y0) * mag))
	if w <= 0 || h <= 0 {
		return nil
	}
	buf := image.NewRGBA(image.Rect(0, 0, w, h))
	var drawn int
	for _, im := range imgs {
		if !im.Visible() {
			continue
		}
		pix, x, y, err := im.MakeImage(r, mag)
		if err != nil {
			return err
		}
		if pix == nil {
			continue
		}
		left := int(math.Round((x - x0) * mag))
		top := int(math.Round((y1-y)*mag)) - pix.Bounds().Dy()
		draw.Draw(buf, pix.Bounds().Add(image.Pt(left, top)), pix, image.Point{}, draw.Over)
		drawn++
	}
	if drawn == 0 {
		return nil
	}
	gplot.Logger().Debug("images: composited", "count", drawn, "width", w, "height", h)
	r.OpenGroup("image")
	defer r.CloseGroup("image")
	r.DrawImage(x0, y0, buf, box)
	return nil
}

var _ artist.Artist = (*AxesImage)(nil)
