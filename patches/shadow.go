package patches

import (
	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/transform"
)

// Shadow draws a darkened, translucent copy of another patch, offset by
// (dx, dy) in that patch's coordinates. It follows the source as it
// changes.
type Shadow struct {
	Patch
	src    Artist
	dx, dy float64
}

// NewShadow returns a shadow of src placed just beneath it.
func NewShadow(src Artist, dx, dy float64) *Shadow {
	s := &Shadow{src: src, dx: dx, dy: dy}
	s.init(s)
	s.SetZOrder(src.ArtistBase().ZOrder() - 0.1)
	s.sync()
	return s
}

// Source returns the shadowed patch.
func (s *Shadow) Source() Artist { return s.src }

// Offset returns the shift from the source.
func (s *Shadow) Offset() (float64, float64) { return s.dx, s.dy }

func (s *Shadow) sync() {
	sp := s.src.AsPatch()
	s.face = sp.face.Scale(0.3).WithAlpha(0.5)
	s.edge = colors.Transparent
	s.lineWidth = 0
	s.fill = true
}

// Verts implements Shape.
func (s *Shadow) Verts() []gplot.Point {
	v := s.src.Verts()
	out := make([]gplot.Point, len(v))
	for i, p := range v {
		out[i] = gplot.Pt(p.X+s.dx, p.Y+s.dy)
	}
	return out
}

// DataBounds implements Shape.
func (s *Shadow) DataBounds() (x0, y0, x1, y1 float64) {
	x0, y0, x1, y1 = s.src.DataBounds()
	return x0 + s.dx, y0 + s.dy, x1 + s.dx, y1 + s.dy
}

// Draw implements artist.Artist. The shadow is drawn with the source's
// current transform and face.
func (s *Shadow) Draw(r backend.Renderer) error {
	if !s.Visible() {
		return nil
	}
	s.sync()
	t := s.src.ArtistBase().Transform()
	r.OpenGroup("shadow")
	defer r.CloseGroup("shadow")
	gc := s.gc(r)
	r.DrawPolygon(gc, s.faceColor(), t.SeqXYTups(s.Verts()))
	return nil
}

// BboxArtist outlines a display-space box. The box is read at draw time,
// so it tracks a live bbox such as an axes or legend frame.
type BboxArtist struct {
	Patch
	box *bbox.Bbox
}

// NewBboxArtist returns an unfilled outline of box.
func NewBboxArtist(box *bbox.Bbox) *BboxArtist {
	b := &BboxArtist{box: box}
	b.init(b)
	b.fill = false
	b.SetTransform(transform.Identity())
	return b
}

// Box returns the tracked box.
func (b *BboxArtist) Box() *bbox.Bbox { return b.box }

// Verts implements Shape.
func (b *BboxArtist) Verts() []gplot.Point {
	c := b.box.Corners()
	return c[:]
}

// DataBounds implements Shape.
func (b *BboxArtist) DataBounds() (x0, y0, x1, y1 float64) {
	return b.box.XMin(), b.box.YMin(), b.box.XMax(), b.box.YMax()
}

var (
	_ Artist          = (*Rectangle)(nil)
	_ Artist          = (*Circle)(nil)
	_ Artist          = (*Shadow)(nil)
	_ Artist          = (*BboxArtist)(nil)
	_ artist.Artist   = (*Wedge)(nil)
	_ artist.Artist   = (*Arrow)(nil)
	_ artist.Extenter = (*Rectangle)(nil)
)
