package svg

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
)

func render(t *testing.T, draw func(r *Renderer)) string {
	t.Helper()
	r, err := New(2, 1, 72)
	require.NoError(t, err)
	draw(r)
	var buf bytes.Buffer
	require.NoError(t, r.Print(&buf))
	return buf.String()
}

func TestDocumentSize(t *testing.T) {
	out := render(t, func(r *Renderer) {
		w, h := r.CanvasWidthHeight()
		assert.Equal(t, 144.0, w)
		assert.Equal(t, 72.0, h)
		assert.False(t, r.FlipY())
	})
	assert.Contains(t, out, `viewBox="0 0 144 72"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestRegistered(t *testing.T) {
	assert.True(t, backend.IsRegistered("svg"))
}

func TestDrawLinesFlipsY(t *testing.T) {
	out := render(t, func(r *Renderer) {
		gc := r.NewGC()
		gc.SetDashes(0, []float64{6, 6})
		r.DrawLines(gc, []float64{0, 10}, []float64{0, 10}, nil)
	})
	assert.Contains(t, out, `d="M0 72L10 62"`)
	assert.Contains(t, out, "stroke-dasharray:6,6")
	assert.Contains(t, out, "fill:none")
}

func TestDrawRectangleWithClip(t *testing.T) {
	out := render(t, func(r *Renderer) {
		gc := r.NewGC()
		gc.ClipRect = bbox.FromExtents(0, 0, 50, 50)
		face := colors.Red
		r.DrawRectangle(gc, &face, 10, 10, 20, 20)
		r.DrawRectangle(gc, &face, 30, 10, 20, 20)
	})
	assert.Contains(t, out, "fill:#ff0000")
	assert.Contains(t, out, `clip-path="url(#c1)"`)
	// Both rectangles share one clip path.
	assert.Equal(t, 1, strings.Count(out, "<clipPath"))
}

func TestDrawMarkersUsesDefs(t *testing.T) {
	out := render(t, func(r *Renderer) {
		p := gplot.NewPath()
		p.Circle(0, 0, 3)
		face := colors.Blue
		r.DrawMarkers(r.NewGC(), p, &face, []float64{10, 20, 30}, []float64{5, 5, 5}, nil)
	})
	assert.Equal(t, 3, strings.Count(out, "<use"))
	assert.Contains(t, out, `id="m1"`)
}

func TestDrawText(t *testing.T) {
	out := render(t, func(r *Renderer) {
		props := font.NewProperties()
		r.DrawText(r.NewGC(), 10, 20, "a<b", props, 90, false)
	})
	assert.Contains(t, out, "rotate(-90)")
	assert.Contains(t, out, "a&lt;b")
}

func TestDrawImage(t *testing.T) {
	out := render(t, func(r *Renderer) {
		r.DrawImage(0, 0, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil)
	})
	assert.Contains(t, out, "data:image/png;base64,")
}

func TestHatch(t *testing.T) {
	out := render(t, func(r *Renderer) {
		gc := r.NewGC()
		gc.Hatch = "/"
		r.DrawRectangle(gc, nil, 10, 10, 40, 40)
	})
	assert.Contains(t, out, "<clipPath")
	assert.Contains(t, out, `clip-path="url(#h1)"`)
}

func TestGroups(t *testing.T) {
	out := render(t, func(r *Renderer) {
		r.OpenGroup("axes 1")
		r.OpenGroup("line2d")
	})
	assert.Contains(t, out, `id="axes_1"`)
	assert.Equal(t, 2, strings.Count(out, "</g>"))
}
