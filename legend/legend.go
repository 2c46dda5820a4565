// Package legend draws a boxed key of labelled handles inside an axes or
// a figure.
//
// Layout parameters follow the legend.* rc params. Lengths given as
// fractions (handle length, separations, padding to the parent) are
// fractions of the parent box; the legend is laid out in display units
// at draw time, so it follows the parent as it resizes.
package legend

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/lines"
	"github.com/gogpu/gplot/patches"
	"github.com/gogpu/gplot/rcparams"
	"github.com/gogpu/gplot/text"
	"github.com/gogpu/gplot/transform"
)

// Location codes.
const (
	Best = iota
	UpperRight
	UpperLeft
	LowerLeft
	LowerRight
	Right
	CenterLeft
	CenterRight
	LowerCenter
	UpperCenter
	Center
)

var locNames = []string{
	"best", "upper right", "upper left", "lower left", "lower right", "right",
	"center left", "center right", "lower center", "upper center", "center",
}

// ParseLoc accepts a location name or code.
func ParseLoc(v any) (int, error) {
	switch x := v.(type) {
	case int:
		if x >= Best && x <= Center {
			return x, nil
		}
	case string:
		if i := slices.Index(locNames, strings.ToLower(x)); i >= 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("legend: %w: location %v", gplot.ErrInvalidValue, v)
}

// Obstacles reports what a "best" legend should avoid: display points
// and display boxes of the parent's contents.
type Obstacles func() (pts []gplot.Point, boxes []*bbox.Bbox)

// Legend is a framed list of handles and labels.
type Legend struct {
	artist.Base

	parent  *transform.Separable
	loc     int
	placed  int
	handles []artist.Artist
	texts   []*text.Text
	legend  []artist.Artist
	frame   *patches.Rectangle

	numPoints     int
	pad           float64
	markerScale   float64
	labelSep      float64
	handleLen     float64
	handleTextSep float64
	axesPad       float64
	shadow        bool

	obstacles Obstacles
}

// New returns a legend for handles labelled by labels, placed within the
// unit box of parent (an axes or figure transform). Handles other than
// lines, patches and collections get a label but no key.
func New(parent *transform.Separable, handles []artist.Artist, labels []string, loc any) (*Legend, error) {
	if len(handles) != len(labels) {
		return nil, &gplot.ShapeError{Op: "legend", Got: []int{len(labels)}, Want: []int{len(handles)}}
	}
	code, err := ParseLoc(loc)
	if err != nil {
		return nil, err
	}
	rc := rcparams.Default()
	l := &Legend{
		parent:        parent,
		loc:           code,
		handles:       slices.Clone(handles),
		numPoints:     rc.Int("legend.numpoints"),
		pad:           rc.Float("legend.pad"),
		markerScale:   rc.Float("legend.markerscale"),
		labelSep:      rc.Float("legend.labelsep"),
		handleLen:     rc.Float("legend.handlelen"),
		handleTextSep: rc.Float("legend.handletextsep"),
		axesPad:       rc.Float("legend.axespad"),
		shadow:        rc.Bool("legend.shadow"),
	}
	l.Init(l)
	l.SetZOrder(5)
	for _, s := range labels {
		t := text.New(0, 0, s)
		_ = t.SetFontSize(rc.Float("legend.fontsize"))
		t.SetHAlign(text.Left)
		t.SetVAlign(text.Middle)
		l.texts = append(l.texts, t)
	}
	l.frame = patches.NewRectangle(0, 0, 1, 1)
	_ = l.frame.SetFaceColor(colors.White)
	_ = l.frame.SetEdgeColor(colors.Black)
	return l, nil
}

// SetObstacles sets what a "best" legend avoids.
func (l *Legend) SetObstacles(o Obstacles) { l.obstacles = o }

// SetShadow draws a shadow beneath the frame.
func (l *Legend) SetShadow(v bool) { l.shadow = v }

// SetNumPoints sets how many markers a line key shows.
func (l *Legend) SetNumPoints(n int) { l.numPoints = max(1, n) }

// Loc returns the requested location code.
func (l *Legend) Loc() int { return l.loc }

// PlacedLoc returns the location used by the last draw; for Best it is
// the code that was picked.
func (l *Legend) PlacedLoc() int { return l.placed }

// Texts returns the label texts.
func (l *Legend) Texts() []*text.Text { return l.texts }

// Frame returns the background rectangle.
func (l *Legend) Frame() *patches.Rectangle { return l.frame }

// Keys returns the key artists built by the last draw, one per handle
// that has a key.
func (l *Legend) Keys() []artist.Artist { return l.legend }

// Schema implements artist.Artist.
func (l *Legend) Schema() *artist.Schema { return artist.BaseSchema }

// parentBox returns the display box of the parent.
func (l *Legend) parentBox() (x0, y0, w, h float64) {
	x0, y0 = l.parent.XY(0, 0)
	x1, y1 := l.parent.XY(1, 1)
	return x0, y0, x1 - x0, y1 - y0
}

// layout places the entries with the top left of the first at the origin
// and returns their extent.
func (l *Legend) layout(r backend.Renderer) (*bbox.Bbox, error) {
	_, _, pw, ph := l.parentBox()
	hlen := l.handleLen * pw
	tx := hlen + l.handleTextSep*pw
	sep := l.labelSep * ph

	l.legend = l.legend[:0]
	y := 0.0
	right := tx
	for i, t := range l.texts {
		t.SetPosition(tx, 0)
		ext, err := t.WindowExtent(r)
		if err != nil {
			return nil, fmt.Errorf("legend: %w", err)
		}
		th := ext.Height()
		if th == 0 {
			th = r.PointsToPixels(t.FontSize())
		}
		cy := y - th/2
		t.SetPosition(tx, cy)
		right = math.Max(right, tx+ext.Width())
		if key := l.key(l.handles[i], 0, hlen, cy, th); key != nil {
			l.legend = append(l.legend, key)
		}
		y -= th + sep
	}
	return bbox.FromExtents(0, y+sep, right, 0), nil
}

// key builds the legend key for h spanning x0..x1 at height cy.
func (l *Legend) key(h artist.Artist, x0, x1, cy, th float64) artist.Artist {
	switch src := h.(type) {
	case *lines.Line2D:
		n := max(1, l.numPoints)
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := range xs {
			if n == 1 {
				xs[i] = (x0 + x1) / 2
			} else {
				xs[i] = x0 + (x1-x0)*float64(i)/float64(n-1)
			}
			ys[i] = cy
		}
		line, _ := lines.New(xs, ys)
		line.SetStyle(src.Style())
		line.SetMarkerSize(src.MarkerSize() * l.markerScale)
		return line
	case patches.Artist:
		rect := patches.NewRectangle(x0, cy-0.35*th, x1-x0, 0.7*th)
		rect.UpdateStyleFrom(src.AsPatch())
		return rect
	case interface{ FaceColors() []colors.RGBA }:
		rect := patches.NewRectangle(x0, cy-0.35*th, x1-x0, 0.7*th)
		if fc := src.FaceColors(); len(fc) > 0 {
			_ = rect.SetFaceColor(fc[0])
		}
		return rect
	}
	return nil
}

// candidate returns where a legend of size w x h goes for code.
func (l *Legend) candidate(code int, w, h float64) (x, y float64) {
	px0, py0, pw, ph := l.parentBox()
	padX, padY := l.axesPad*pw, l.axesPad*ph
	left, right := px0+padX, px0+pw-padX-w
	bottom, top := py0+padY, py0+ph-padY-h
	midX, midY := px0+(pw-w)/2, py0+(ph-h)/2
	switch code {
	case UpperRight:
		return right, top
	case UpperLeft:
		return left, top
	case LowerLeft:
		return left, bottom
	case LowerRight:
		return right, bottom
	case Right, CenterRight:
		return right, midY
	case CenterLeft:
		return left, midY
	case LowerCenter:
		return midX, bottom
	case UpperCenter:
		return midX, top
	default:
		return midX, midY
	}
}

// best returns the location overlapping the fewest obstacles, the
// earliest code on ties.
func (l *Legend) best(w, h float64) int {
	if l.obstacles == nil {
		return UpperRight
	}
	pts, boxes := l.obstacles()
	bestCode, bestScore := UpperRight, math.MaxInt
	for code := UpperRight; code <= Center; code++ {
		x, y := l.candidate(code, w, h)
		cand := bbox.FromExtents(x, y, x+w, y+h)
		score := cand.CountContains(pts)
		for _, b := range boxes {
			if cand.Overlaps(b) {
				score++
			}
		}
		if score < bestScore {
			bestCode, bestScore = code, score
		}
	}
	return bestCode
}

// Draw implements artist.Artist.
func (l *Legend) Draw(r backend.Renderer) error {
	if !l.Visible() || len(l.texts) == 0 {
		return nil
	}
	r.OpenGroup("legend")
	defer r.CloseGroup("legend")

	ext, err := l.layout(r)
	if err != nil {
		return err
	}
	// The frame grows by pad times the content size, half on each side.
	w, h := ext.Width()*(1+l.pad), ext.Height()*(1+l.pad)
	l.placed = l.loc
	if l.loc == Best {
		l.placed = l.best(w, h)
	}
	x, y := l.candidate(l.placed, w, h)
	dx := x + (w-ext.Width())/2 - ext.XMin()
	dy := y + (h-ext.Height())/2 - ext.YMin()
	shift := transform.Identity()
	shift.SetOffset(dx, dy, nil)

	l.frame.SetBounds(x, y, w, h)
	if l.shadow {
		pad := r.PointsToPixels(2)
		if err := patches.NewShadow(l.frame, pad, -pad).Draw(r); err != nil {
			return err
		}
	}
	if err := l.frame.Draw(r); err != nil {
		return err
	}
	for _, k := range l.legend {
		k.ArtistBase().SetTransform(shift)
		if err := k.Draw(r); err != nil {
			return err
		}
	}
	for _, t := range l.texts {
		tx, ty := t.Position()
		t.SetPosition(tx+dx, ty+dy)
		if err := t.Draw(r); err != nil {
			return err
		}
	}
	gplot.Logger().Debug("legend drawn", "loc", locNames[l.placed], "entries", len(l.texts))
	return nil
}

// WindowExtent implements artist.Extenter. It is the frame of the last
// draw.
func (l *Legend) WindowExtent(r backend.Renderer) (*bbox.Bbox, error) {
	return l.frame.WindowExtent(r)
}
