package ps

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
)

func printDoc(t *testing.T, r *Renderer) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Print(&buf))
	return buf.String()
}

func TestRegistered(t *testing.T) {
	assert.True(t, backend.IsRegistered("ps"))
	assert.True(t, backend.IsRegistered("eps"))
}

func TestHeaderPortraitLetter(t *testing.T) {
	r, err := New(2, 1, backend.Options{}, false)
	require.NoError(t, err)
	out := printDoc(t, r)
	assert.True(t, strings.HasPrefix(out, "%!PS-Adobe-3.0\n"))
	// 144x72 centered on 612x792.
	assert.Contains(t, out, "%%BoundingBox: 234 360 378 432")
	assert.Contains(t, out, "%%Orientation: Portrait")
	assert.True(t, strings.HasSuffix(out, "showpage\n%%EOF\n"))
}

func TestHeaderEPS(t *testing.T) {
	r, err := New(2, 1, backend.Options{}, true)
	require.NoError(t, err)
	out := printDoc(t, r)
	assert.True(t, strings.HasPrefix(out, "%!PS-Adobe-3.0 EPSF-3.0\n"))
	assert.Contains(t, out, "%%BoundingBox: 0 0 144 72")
}

func TestLandscape(t *testing.T) {
	r, err := New(2, 1, backend.Options{Orientation: "landscape", PaperSize: "auto"}, false)
	require.NoError(t, err)
	out := printDoc(t, r)
	assert.Contains(t, out, "%%BoundingBox: 0 0 72 144")
	assert.Contains(t, out, "72 0 translate 90 rotate")
}

func TestUnknownPaper(t *testing.T) {
	_, err := New(2, 1, backend.Options{PaperSize: "napkin"}, false)
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
}

func TestDrawLinesAndDash(t *testing.T) {
	r, err := New(2, 1, backend.Options{}, true)
	require.NoError(t, err)
	gc := r.NewGC()
	require.NoError(t, gc.SetLineStyle("--"))
	gc.Cap = backend.CapRound
	r.DrawLines(gc, []float64{0, 10}, []float64{0, 5}, nil)
	out := printDoc(t, r)
	assert.Contains(t, out, "[6 6] 0 setdash")
	assert.Contains(t, out, "1 setlinecap")
	assert.Contains(t, out, "0 0 m\n10 5 l\nstroke")
}

func TestDrawRectangleFillAndStroke(t *testing.T) {
	r, err := New(2, 1, backend.Options{}, true)
	require.NoError(t, err)
	face := colors.Red
	r.DrawRectangle(r.NewGC(), &face, 1, 2, 3, 4)
	out := printDoc(t, r)
	assert.Contains(t, out, "gsave 1 0 0 setrgbcolor fill grestore")
	assert.Contains(t, out, "0 0 0 setrgbcolor stroke")
	assert.Contains(t, out, "1 2 m\n4 2 l\n4 6 l\n1 6 l\ncl\n")
}

func TestDrawMarkersDefinesProcedure(t *testing.T) {
	r, err := New(2, 1, backend.Options{}, true)
	require.NoError(t, err)
	p := gplot.NewPath()
	p.Rectangle(-1, -1, 2, 2)
	r.DrawMarkers(r.NewGC(), p, nil, []float64{5, 6}, []float64{7, 8}, nil)
	out := printDoc(t, r)
	assert.Equal(t, 1, strings.Count(out, "/marker {"))
	assert.Contains(t, out, "gsave 5 7 translate marker")
	assert.Contains(t, out, "gsave 6 8 translate marker")
}

func TestDrawImageHex(t *testing.T) {
	r, err := New(2, 1, backend.Options{DPI: 144}, true)
	require.NoError(t, err)
	im := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	im.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	r.DrawImage(0, 0, im, nil)
	out := printDoc(t, r)
	// Image magnification 2 halves the placed size.
	assert.Contains(t, out, "0 0 translate 1 0.5 scale")
	// The transparent pixel is composited over white.
	assert.Contains(t, out, "ff0000ffffff\n>")
}

func TestDrawTextAsOutlines(t *testing.T) {
	r, err := New(2, 1, backend.Options{}, true)
	require.NoError(t, err)
	r.DrawText(r.NewGC(), 10, 20, "x", font.NewProperties(), 90, false)
	out := printDoc(t, r)
	assert.Contains(t, out, "10 20 translate 90 rotate")
	assert.Contains(t, out, "fill\ngrestore")
}
