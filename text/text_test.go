package text

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/recording"
)

const eps = 1e-9

func drawnTexts(rec *recording.Recording) []recording.DrawTextCommand {
	var out []recording.DrawTextCommand
	for _, c := range rec.Filter(recording.CmdDrawText) {
		out = append(out, c.(recording.DrawTextCommand))
	}
	return out
}

func extents(t *testing.T, rec *recording.Recorder, s string, size float64) (w, h, d float64) {
	t.Helper()
	p := font.NewProperties()
	p.Size = size
	w, h, d, err := rec.TextExtents(s, p, false)
	require.NoError(t, err)
	return w, h, d
}

func TestAlignment(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	w, h, d := extents(t, rec, "hello", 12)

	tests := []struct {
		ha           HAlign
		va           VAlign
		wantX, wantY float64
	}{
		{Left, Bottom, 100, 50 + d},
		{Center, Middle, 100 - w/2, 50 - h/2 + d},
		{Right, Top, 100 - w, 50 - (h - d)},
		{Left, Baseline, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.ha.String()+"/"+tt.va.String(), func(t *testing.T) {
			txt := New(100, 50, "hello")
			txt.SetHAlign(tt.ha)
			txt.SetVAlign(tt.va)
			require.NoError(t, txt.Draw(rec))
			got := drawnTexts(rec.Finish())
			require.Len(t, got, 1)
			assert.Equal(t, "hello", got[0].Text)
			assert.InDelta(t, tt.wantX, got[0].X, eps)
			assert.InDelta(t, tt.wantY, got[0].Y, eps)
			assert.False(t, got[0].IsMath)
		})
	}
}

func TestFlipY(t *testing.T) {
	rec := recording.NewRecorder(200, 200, 72, recording.WithFlipY())
	_, _, d := extents(t, rec, "flip", 12)
	require.NoError(t, New(10, 50, "flip").Draw(rec))
	got := drawnTexts(rec.Finish())
	require.Len(t, got, 1)
	assert.InDelta(t, 200-(50+d), got[0].Y, eps)
}

func TestRotation(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	w, h, d := extents(t, rec, "tick", 12)

	txt := New(100, 50, "tick")
	require.NoError(t, txt.SetRotation("vertical"))
	assert.Equal(t, 90.0, txt.Rotation())

	ext, err := txt.WindowExtent(rec)
	require.NoError(t, err)
	assert.InDelta(t, h, ext.Width(), eps)
	assert.InDelta(t, w, ext.Height(), eps)
	assert.InDelta(t, 100, ext.XMin(), eps)
	assert.InDelta(t, 50, ext.YMin(), eps)

	require.NoError(t, txt.Draw(rec))
	got := drawnTexts(rec.Finish())
	require.Len(t, got, 1)
	assert.InDelta(t, 100+(h-d), got[0].X, eps)
	assert.InDelta(t, 50, got[0].Y, eps)
	assert.Equal(t, 90.0, got[0].Angle)
}

func TestMultiline(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	wa, ha, da := extents(t, rec, "a", 12)
	wb, _, _ := extents(t, rec, "bbbb", 12)
	_, refH, _ := extents(t, rec, "lp", 12)
	width := math.Max(wa, wb)

	txt := New(0, 0, "a\nbbbb")
	txt.SetVAlign(Top)
	require.NoError(t, txt.SetMultiAlignment("right"))
	require.NoError(t, txt.Draw(rec))

	got := drawnTexts(rec.Finish())
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "bbbb", got[1].Text)
	assert.InDelta(t, width-wa, got[0].X, eps)
	assert.InDelta(t, width-wb, got[1].X, eps)
	assert.InDelta(t, -(ha - da), got[0].Y, eps)
	assert.InDelta(t, LineSpacing*refH, got[0].Y-got[1].Y, eps)
}

func TestMultiAlignmentFollowsHAlign(t *testing.T) {
	txt := New(0, 0, "x")
	txt.SetHAlign(Right)
	assert.Equal(t, Right, txt.MultiAlignment())
	require.NoError(t, txt.SetMultiAlignment("center"))
	assert.Equal(t, Center, txt.MultiAlignment())
}

func TestSuperscript(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	w10, _, _ := extents(t, rec, "10", 12)

	txt := New(0, 0, "$10^{-3}$")
	txt.SetVAlign(Baseline)
	require.NoError(t, txt.Draw(rec))

	got := drawnTexts(rec.Finish())
	require.Len(t, got, 2)
	assert.Equal(t, "10", got[0].Text)
	assert.Equal(t, "−3", got[1].Text)
	assert.InDelta(t, 0, got[0].Y, eps)
	assert.InDelta(t, w10, got[1].X, eps)
	assert.InDelta(t, supShift*12, got[1].Y, eps)
	assert.InDelta(t, 12*scriptScale, got[1].Props.Size, eps)
	assert.InDelta(t, 12, got[0].Props.Size, eps)
	assert.Positive(t, superscripts.Len())
}

func TestMixedMath(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	require.NoError(t, New(0, 0, `$\alpha^2$ m`).Draw(rec))
	var pieces []string
	for _, c := range drawnTexts(rec.Finish()) {
		pieces = append(pieces, c.Text)
	}
	assert.Equal(t, []string{"α", "2", " m"}, pieces)
}

func TestEscapedDollar(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	require.NoError(t, New(0, 0, `cost \$5`).Draw(rec))
	got := drawnTexts(rec.Finish())
	require.Len(t, got, 1)
	assert.Equal(t, "cost $5", got[0].Text)
}

func TestUnbalancedMath(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	err := New(0, 0, "$x").Draw(rec)
	assert.ErrorIs(t, err, gplot.ErrUnbalancedMathDelimiters)
	assert.Empty(t, rec.Commands())

	_, err = New(0, 0, "a\n$b").WindowExtent(rec)
	assert.ErrorIs(t, err, gplot.ErrUnbalancedMathDelimiters)
}

func TestMathSpansLines(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	_, refH, _ := extents(t, rec, "lp", 12)
	require.NoError(t, New(10, 10, "$a\nb$").Draw(rec))

	got := drawnTexts(rec.Finish())
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
	assert.InDelta(t, LineSpacing*refH, got[0].Y-got[1].Y, eps)
}

func TestUseTex(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	txt := New(10, 10, "$x^2$")
	txt.SetUseTex(true)
	require.NoError(t, txt.Draw(recording.Tex(rec)))

	r := rec.Finish()
	require.Equal(t, 1, r.Count(recording.CmdDrawTex))
	assert.Zero(t, r.Count(recording.CmdDrawText))
	tex := r.Filter(recording.CmdDrawTex)[0].(recording.DrawTexCommand)
	assert.Equal(t, "$x^2$", tex.Text)
}

func TestUseTexFallback(t *testing.T) {
	var buf bytes.Buffer
	orig := gplot.Logger()
	t.Cleanup(func() { gplot.SetLogger(orig) })
	gplot.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	rec := recording.NewRecorder(400, 300, 72)
	txt := New(10, 10, "$x^2$")
	txt.SetUseTex(true)
	require.NoError(t, txt.Draw(rec))

	r := rec.Finish()
	assert.Zero(t, r.Count(recording.CmdDrawTex))
	assert.Equal(t, 2, r.Count(recording.CmdDrawText))
	assert.Contains(t, buf.String(), "no math engine")
}

func TestBackgroundBox(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	w, h, _ := extents(t, rec, "boxed", 12)

	txt := New(10, 20, "boxed")
	txt.SetBBox(&BoxStyle{Face: colors.White, Edge: colors.Black, LineWidth: 1, Pad: 4})
	require.NoError(t, txt.Draw(rec))

	r := rec.Finish()
	polys := r.Filter(recording.CmdDrawPolygon)
	require.Len(t, polys, 1)
	poly := polys[0].(recording.DrawPolygonCommand)
	require.NotNil(t, poly.Face)
	assert.Equal(t, colors.White, *poly.Face)

	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, p := range poly.Points {
		x0, x1 = math.Min(x0, p.X), math.Max(x1, p.X)
		y0, y1 = math.Min(y0, p.Y), math.Max(y1, p.Y)
	}
	assert.InDelta(t, 6, x0, eps)
	assert.InDelta(t, 16, y0, eps)
	assert.InDelta(t, 14+w, x1, eps)
	assert.InDelta(t, 24+h, y1, eps)

	// The box is drawn under the text.
	var order []recording.CommandType
	for _, c := range r.Commands() {
		if c.Type() == recording.CmdDrawPolygon || c.Type() == recording.CmdDrawText {
			order = append(order, c.Type())
		}
	}
	assert.Equal(t, []recording.CommandType{recording.CmdDrawPolygon, recording.CmdDrawText}, order)
}

func TestEmptyText(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	txt := New(30, 40, "")
	ext, err := txt.WindowExtent(rec)
	require.NoError(t, err)
	assert.Zero(t, ext.Width())
	assert.Zero(t, ext.Height())
	assert.InDelta(t, 30, ext.XMin(), eps)
	assert.InDelta(t, 40, ext.YMin(), eps)

	require.NoError(t, txt.Draw(rec))
	assert.Empty(t, rec.Commands())
}

func TestFontChangeInvalidatesLayout(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	txt := New(0, 0, "size")
	require.NoError(t, txt.Draw(rec))
	require.NoError(t, txt.SetFontSize(20))
	require.NoError(t, txt.Draw(rec))

	got := drawnTexts(rec.Finish())
	require.Len(t, got, 2)
	assert.InDelta(t, 12, got[0].Props.Size, eps)
	assert.InDelta(t, 20, got[1].Props.Size, eps)
	assert.Greater(t, got[1].Y, got[0].Y)
}

func TestTextProperties(t *testing.T) {
	txt := New(0, 0, "p")
	require.NoError(t, artist.Setp(txt,
		"ha", "center",
		"va", "top",
		"size", 14,
		"rotation", "vertical",
		"c", "r",
		"weight", "bold",
		"position", []float64{3, 4},
	))
	assert.Equal(t, Center, txt.HAlign())
	assert.Equal(t, Top, txt.VAlign())
	assert.Equal(t, 14.0, txt.FontSize())
	assert.Equal(t, 90.0, txt.Rotation())
	assert.Equal(t, colors.Red, txt.Color())
	assert.Equal(t, "bold", txt.FontProperties().Weight)
	x, y := txt.Position()
	assert.Equal(t, []float64{3, 4}, []float64{x, y})

	v, err := artist.Getp(txt, "horizontalalignment")
	require.NoError(t, err)
	assert.Equal(t, "center", v)

	assert.ErrorIs(t, artist.Setp(txt, "ha", "sideways"), gplot.ErrInvalidValue)
	assert.ErrorIs(t, artist.Setp(txt, "size", "huge-ish"), gplot.ErrInvalidValue)
	assert.ErrorIs(t, artist.Setp(txt, "dashlength", 3), gplot.ErrUnknownProperty)
}

func TestSetterNotifiesObservers(t *testing.T) {
	txt := New(0, 0, "p")
	var n int
	txt.AddCallback(func(artist.Artist) { n++ })
	txt.SetText("q")
	require.NoError(t, txt.SetColor("b"))
	txt.SetPosition(1, 1)
	assert.Equal(t, 3, n)
}

func TestUpdateFrom(t *testing.T) {
	src := New(0, 0, "src")
	require.NoError(t, src.SetColor("g"))
	require.NoError(t, src.SetFontSize(18))
	src.SetHAlign(Right)
	src.SetAlpha(0.5)

	dst := New(5, 6, "dst")
	dst.UpdateFrom(src)
	assert.Equal(t, src.Color(), dst.Color())
	assert.Equal(t, 18.0, dst.FontSize())
	assert.Equal(t, Right, dst.HAlign())
	assert.Equal(t, 0.5, dst.Alpha())
	assert.Equal(t, "dst", dst.Text())

	// The font is copied, not shared.
	require.NoError(t, src.SetFontSize(8))
	assert.Equal(t, 18.0, dst.FontSize())
}

func TestDashAfterVertical(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	w, h, d := extents(t, rec, "dash", 12)

	txt := NewWithDash(100, 100, "dash")
	txt.SetDashLength(10)
	txt.SetDashDirection(DashAfter)
	txt.SetDashRotation(90)
	require.NoError(t, txt.Draw(rec))

	r := rec.Finish()
	ls := r.Filter(recording.CmdDrawLines)
	require.Len(t, ls, 1)
	dash := ls[0].(recording.DrawLinesCommand)
	require.Len(t, dash.Ys, 2)
	assert.InDelta(t, 100, dash.Xs[0], eps)
	assert.InDelta(t, 100, dash.Xs[1], eps)
	assert.InDelta(t, 100, dash.Ys[0], eps)
	assert.InDelta(t, 110, dash.Ys[1], eps)

	// Centered above the dash end, 3 points clear.
	got := drawnTexts(r)
	require.Len(t, got, 1)
	cy := 110 + h/2 + 3
	assert.InDelta(t, 100-w/2, got[0].X, eps)
	assert.InDelta(t, cy-h/2+d, got[0].Y, eps)

	ext, err := txt.WindowExtent(rec)
	require.NoError(t, err)
	assert.InDelta(t, 100, ext.YMin(), eps)
	assert.InDelta(t, cy+h/2, ext.YMax(), eps)
}

func TestDashBefore(t *testing.T) {
	rec := recording.NewRecorder(400, 300, 72)
	w, _, _ := extents(t, rec, "lead", 12)

	txt := NewWithDash(100, 100, "lead")
	txt.SetDashLength(10)
	txt.SetDashPush(2)
	require.NoError(t, txt.Draw(rec))

	r := rec.Finish()
	dash := r.Filter(recording.CmdDrawLines)[0].(recording.DrawLinesCommand)
	assert.InDelta(t, 98, dash.Xs[0], eps)
	assert.InDelta(t, 88, dash.Xs[1], eps)

	got := drawnTexts(r)
	require.Len(t, got, 1)
	assert.InDelta(t, 88-3-w, got[0].X, eps)
}

func TestDashDefaults(t *testing.T) {
	txt := NewWithDash(0, 0, "d")
	assert.Equal(t, 3.0, txt.DashPad())
	assert.Equal(t, DashBefore, txt.DashDirection())
	require.NoError(t, txt.SetRotation(45))
	assert.Equal(t, 45.0, txt.DashRotation())
	txt.SetDashRotation(10)
	assert.Equal(t, 10.0, txt.DashRotation())

	// Without a dash it draws like plain text.
	rec := recording.NewRecorder(100, 100, 72)
	require.NoError(t, txt.Draw(rec))
	r := rec.Finish()
	assert.Zero(t, r.Count(recording.CmdDrawLines))
	assert.Equal(t, 1, r.Count(recording.CmdDrawText))

	require.NoError(t, artist.Setp(txt, "dashlength", 5, "dashdirection", 1, "ha", "right"))
	assert.Equal(t, 5.0, txt.DashLength())
	assert.Equal(t, DashAfter, txt.DashDirection())
	assert.Equal(t, Right, txt.HAlign())
}
