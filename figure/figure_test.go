package figure

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/axes"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/recording"
	"github.com/gogpu/gplot/text"

	_ "github.com/gogpu/gplot/backend/raster"
)

func drawnTexts(rec *recording.Recording) []recording.DrawTextCommand {
	var out []recording.DrawTextCommand
	for _, c := range rec.Filter(recording.CmdDrawText) {
		out = append(out, c.(recording.DrawTextCommand))
	}
	return out
}

func TestNewDefaults(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	w, h := f.SizeInches()
	assert.Equal(t, [2]float64{8, 6}, [2]float64{w, h})
	assert.Equal(t, 80.0, f.DPI())
	assert.InDelta(t, 640, f.Bbox().Width(), 1e-9)
	assert.InDelta(t, 480, f.Bbox().Height(), 1e-9)

	_, err = New(WithSize(0, 3))
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
	_, err = New(WithDPI(-1))
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
	_, err = New(WithFaceColor("nope"))
	assert.ErrorIs(t, err, gplot.ErrColorFormat)
}

func TestResizeMovesAxes(t *testing.T) {
	f, err := New(WithSize(5, 4), WithDPI(100))
	require.NoError(t, err)
	a, err := f.AddAxes([4]float64{0.1, 0.1, 0.8, 0.8})
	require.NoError(t, err)
	assert.InDelta(t, 400, a.Bbox().Width(), 1e-9)

	require.NoError(t, f.SetSizeInches(10, 4))
	assert.InDelta(t, 800, a.Bbox().Width(), 1e-9)
	require.NoError(t, f.SetDPI(50))
	assert.InDelta(t, 400, a.Bbox().Width(), 1e-9)
	assert.InDelta(t, 160, a.Bbox().Height(), 1e-9)

	assert.ErrorIs(t, f.SetSizeInches(-1, 4), gplot.ErrInvalidValue)
	assert.ErrorIs(t, f.SetDPI(0), gplot.ErrInvalidValue)
}

func TestAddAxesReturnsExisting(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	rect := [4]float64{0.1, 0.1, 0.5, 0.5}
	a1, err := f.AddAxes(rect)
	require.NoError(t, err)
	a2, err := f.AddAxes(rect)
	require.NoError(t, err)
	assert.Same(t, a1, a2)
	a3, err := f.AddAxes(rect, axes.WithLabel("inset"))
	require.NoError(t, err)
	assert.NotSame(t, a1, a3)
	assert.Len(t, f.Axes(), 2)
	assert.Same(t, a3, f.CurrentAxes())

	_, err = f.AddAxes([4]float64{0, 0, 0, 1})
	assert.ErrorIs(t, err, gplot.ErrInvalidValue)
}

func TestSubplotGrid(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	require.NoError(t, f.SubplotsAdjust(SubplotParams{Left: 0.1, Right: 0.9, Bottom: 0.1, Top: 0.9, WSpace: 0, HSpace: 0}))

	tl, err := f.AddSubplot(2, 2, 1)
	require.NoError(t, err)
	br, err := f.AddSubplot(2, 2, 4)
	require.NoError(t, err)

	approx := cmpopts.EquateApprox(0, 1e-12)
	if diff := cmp.Diff([4]float64{0.1, 0.5, 0.4, 0.4}, tl.Position(), approx); diff != "" {
		t.Errorf("cell 1 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([4]float64{0.5, 0.1, 0.4, 0.4}, br.Position(), approx); diff != "" {
		t.Errorf("cell 4 (-want +got):\n%s", diff)
	}

	again, err := f.AddSubplot(2, 2, 1)
	require.NoError(t, err)
	assert.Same(t, tl, again)

	for _, bad := range [][3]int{{0, 1, 1}, {2, 2, 5}, {1, 1, 0}} {
		_, err := f.AddSubplot(bad[0], bad[1], bad[2])
		assert.ErrorIs(t, err, gplot.ErrInvalidValue, "%v", bad)
	}
}

func TestSubplotSpacing(t *testing.T) {
	p := SubplotParams{Left: 0, Right: 1, Bottom: 0, Top: 1, WSpace: 0.5, HSpace: 0}
	pos := p.position(1, 2, 2)
	// Two cells of width w with a gap of w/2 fill the width.
	assert.InDelta(t, 0.4, pos[2], 1e-12)
	assert.InDelta(t, 0.6, pos[0], 1e-12)
}

func TestSubplotsAdjust(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	a, err := f.AddSubplot(1, 1, 1)
	require.NoError(t, err)
	def := DefaultSubplotParams()
	assert.InDelta(t, def.Left, a.Position()[0], 1e-12)

	p := f.SubplotParams()
	p.Left = 0.3
	require.NoError(t, f.SubplotsAdjust(p))
	assert.InDelta(t, 0.3, a.Position()[0], 1e-12)
	assert.InDelta(t, 0.3, a.OriginalPosition()[0], 1e-12)

	p.Right = 0.2
	assert.ErrorIs(t, f.SubplotsAdjust(p), gplot.ErrInvalidValue)
	assert.InDelta(t, 0.3, f.SubplotParams().Left, 1e-12)
}

func TestAxObservers(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	n := 0
	id := f.AddAxObserver(func(*Figure) { n++ })
	a, err := f.AddSubplot(1, 2, 1)
	require.NoError(t, err)
	_, err = f.AddSubplot(1, 2, 2)
	require.NoError(t, err)
	f.Delaxes(a)
	assert.Len(t, f.Axes(), 1)
	f.Delaxes(a)
	f.Clf()
	assert.Empty(t, f.Axes())
	assert.Nil(t, f.CurrentAxes())
	f.RemoveAxObserver(id)
	_, err = f.AddSubplot(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

// A 6x4 inch figure at 100 dpi with one axes at [0.1, 0.1, 0.8, 0.8]
// plotting a sine.
func sineFigure(t *testing.T) (*Figure, *axes.Axes) {
	t.Helper()
	f, err := New(WithSize(6, 4), WithDPI(100))
	require.NoError(t, err)
	a, err := f.AddAxes([4]float64{0.1, 0.1, 0.8, 0.8})
	require.NoError(t, err)
	ts := make([]float64, 300)
	ys := make([]float64, 300)
	for i := range ts {
		ts[i] = float64(i) * 0.01
		ys[i] = math.Sin(2 * math.Pi * ts[i])
	}
	_, err = a.Plot(ts, ys, "")
	require.NoError(t, err)
	a.SetXLabel("time")
	a.SetYLabel("voltage")
	a.SetTitle("Sine")
	return f, a
}

func TestSineFigureLayout(t *testing.T) {
	f, _ := sineFigure(t)
	rec := recording.NewRecorder(600, 400, 100)
	require.NoError(t, f.Draw(rec))
	assert.Zero(t, rec.Depth())
	out := rec.Finish()

	var title *recording.DrawTextCommand
	var labels []string
	for _, tc := range drawnTexts(out) {
		if tc.Text == "Sine" {
			title = &tc
		}
		labels = append(labels, tc.Text)
	}
	require.NotNil(t, title)
	assert.InDelta(t, 0.94*400, title.Y, 1)
	assert.Contains(t, labels, "−1.0")
	assert.Contains(t, labels, "time")
	assert.Contains(t, labels, "voltage")

	cmds := out.Commands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, recording.CmdOpenGroup, cmds[0].Type())
	assert.Equal(t, recording.CmdCloseGroup, cmds[len(cmds)-1].Type())
	assert.Equal(t, out.Count(recording.CmdOpenGroup), out.Count(recording.CmdCloseGroup))
}

func TestFigureTextAndLegend(t *testing.T) {
	f, a := sineFigure(t)
	capt, err := f.Text(0.5, 0.02, "caption")
	require.NoError(t, err)
	capt.SetVAlign(text.Baseline)
	_, err = f.Legend(nil, []string{"x"}, "upper right")
	assert.ErrorIs(t, err, gplot.ErrShapeMismatch)
	leg, err := f.Legend([]artist.Artist{a.Lines()[0]}, []string{"sine"}, nil)
	require.NoError(t, err)
	require.Len(t, f.Legends(), 1)
	assert.Same(t, leg, f.Legends()[0])

	rec := recording.NewRecorder(600, 400, 100)
	require.NoError(t, f.Draw(rec))
	var caption *recording.DrawTextCommand
	for _, tc := range drawnTexts(rec.Finish()) {
		if tc.Text == "caption" {
			caption = &tc
		}
	}
	require.NotNil(t, caption)
	assert.InDelta(t, 300, caption.X, 1e-9)
	assert.InDelta(t, 8, caption.Y, 1e-9)
}

func TestSaveFigPNG(t *testing.T) {
	f, _ := sineFigure(t)
	require.NoError(t, f.SetDPI(50))
	face := f.Patch().FaceColor()
	path := filepath.Join(t.TempDir(), "sine.png")
	require.NoError(t, f.SaveFig(path, SaveOptions{DPI: 100}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())

	// Corner pixels show the white savefig.facecolor.
	r, g, b, al := img.At(1, 1).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0xffff, 0xffff, 0xffff}, [4]uint32{r, g, b, al})

	assert.Equal(t, 50.0, f.DPI(), "dpi restored")
	assert.Equal(t, face, f.Patch().FaceColor(), "face color restored")
}

func TestSaveFigErrors(t *testing.T) {
	f, _ := sineFigure(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "out.xyz")
	assert.ErrorIs(t, f.SaveFig(path, SaveOptions{}), gplot.ErrUnknownFormat)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing written")

	assert.ErrorIs(t, f.SaveFig(filepath.Join(dir, "out.png"), SaveOptions{FaceColor: "bogus"}), gplot.ErrColorFormat)
	assert.Error(t, f.SaveFig(filepath.Join(dir, "missing", "out.png"), SaveOptions{}))
	assert.Equal(t, 100.0, f.DPI())
}

func TestPrintToWriter(t *testing.T) {
	f, _ := sineFigure(t)
	var buf bytes.Buffer
	require.NoError(t, f.Print(&buf, SaveOptions{Format: "png", DPI: 20, FaceColor: colors.RGB(1, 0, 0)}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
}

func TestCanvasDrawIdleCoalesces(t *testing.T) {
	f, _ := sineFigure(t)
	rec := recording.NewRecorder(600, 400, 100)
	c := NewCanvas(f, rec)

	require.NoError(t, c.Idle())
	assert.Zero(t, c.Draws())
	for range 5 {
		c.DrawIdle()
	}
	require.NoError(t, c.Idle())
	require.NoError(t, c.Idle())
	assert.Equal(t, 1, c.Draws())
}

func TestCanvasDrawArtist(t *testing.T) {
	f, a := sineFigure(t)
	rec := recording.NewRecorder(600, 400, 100)
	c := NewCanvas(f, rec)

	l, err := a.Plot([]float64{0, 1}, []float64{0, 1}, "k-")
	require.NoError(t, err)
	l.SetAnimated(true)
	assert.ErrorIs(t, c.DrawArtist(l), ErrNoRenderer)

	require.NoError(t, c.Draw())
	full := len(recording.Filter(rec.Commands(), recording.CmdDrawLines))
	require.NoError(t, c.DrawArtist(l))
	assert.Len(t, recording.Filter(rec.Commands(), recording.CmdDrawLines), full+1)

	_, err = c.CopyFromBbox(a.Bbox())
	assert.ErrorIs(t, err, ErrNoRenderer, "the recorder cannot blit")
}
