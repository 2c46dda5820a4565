package recording

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
	"github.com/gogpu/gplot/transform"
)

var (
	_ backend.Renderer       = (*Recorder)(nil)
	_ backend.MarkerRenderer = (*Recorder)(nil)
	_ backend.PathRenderer   = (*Recorder)(nil)
)

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		c    CommandType
		want string
	}{
		{CmdOpenGroup, "OpenGroup"},
		{CmdDrawLines, "DrawLines"},
		{CmdDrawTex, "DrawTex"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestRecorderMapsThroughTransform(t *testing.T) {
	rec := NewRecorder(100, 100, 72)
	trans := transform.BboxTransform(bbox.UnitBbox(), bbox.FromExtents(0, 0, 100, 50))
	gc := rec.NewGC()
	rec.DrawLines(gc, []float64{0, 0.5, 1}, []float64{0, 1, 0}, trans)
	gc.LineWidth = 3 // the recorded copy must not change

	got := rec.Finish().Filter(CmdDrawLines)
	if len(got) != 1 {
		t.Fatalf("got %d DrawLines, want 1", len(got))
	}
	c := got[0].(DrawLinesCommand)
	if diff := cmp.Diff([]float64{0, 50, 100}, c.Xs); diff != "" {
		t.Errorf("xs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 50, 0}, c.Ys); diff != "" {
		t.Errorf("ys mismatch (-want +got):\n%s", diff)
	}
	if c.GC.LineWidth != 1 {
		t.Errorf("recorded line width = %v, want 1", c.GC.LineWidth)
	}
}

func TestFinishStartsFresh(t *testing.T) {
	rec := NewRecorder(10, 10, 72)
	rec.OpenGroup("a")
	rec.CloseGroup("a")
	first := rec.Finish()
	rec.DrawLine(rec.NewGC(), 0, 0, 1, 1)
	second := rec.Finish()
	if n := len(first.Commands()); n != 2 {
		t.Errorf("first recording has %d commands, want 2", n)
	}
	if n := second.Count(CmdDrawLine); n != 1 {
		t.Errorf("second recording has %d DrawLine, want 1", n)
	}
	if rec.Depth() != 0 {
		t.Errorf("depth = %d, want 0", rec.Depth())
	}
}

func TestPlaybackFallsBackWithoutMarkers(t *testing.T) {
	src := NewRecorder(100, 100, 72)
	path := gplot.NewPath()
	path.Rectangle(-1, -1, 2, 2)
	path.MoveTo(0, 0)
	path.LineTo(3, 0)
	face := colors.Red
	src.DrawMarkers(src.NewGC(), path, &face, []float64{10, 20}, []float64{10, 20}, nil)

	dst := NewRecorder(100, 100, 72)
	src.Finish().Playback(Plain(dst))
	out := dst.Finish()
	if n := out.Count(CmdDrawPolygon); n != 2 {
		t.Errorf("polygons = %d, want 2", n)
	}
	if n := out.Count(CmdDrawLines); n != 2 {
		t.Errorf("polylines = %d, want 2", n)
	}
	poly := out.Filter(CmdDrawPolygon)[1].(DrawPolygonCommand)
	if poly.Points[0] != gplot.Pt(19, 19) {
		t.Errorf("second marker starts at %v, want (19, 19)", poly.Points[0])
	}
}

func TestPlaybackMirrorsText(t *testing.T) {
	src := NewRecorder(100, 80, 72)
	src.DrawText(src.NewGC(), 5, 30, "hi", font.NewProperties(), 0, false)

	dst := NewRecorder(100, 80, 72, WithFlipY())
	src.Finish().Playback(dst)
	txt := dst.Finish().Filter(CmdDrawText)[0].(DrawTextCommand)
	if txt.Y != 50 {
		t.Errorf("mirrored y = %v, want 50", txt.Y)
	}
}

func TestTexFallsBackToMathText(t *testing.T) {
	src := NewRecorder(100, 80, 72)
	Tex(src).(backend.TexRenderer).DrawTex(src.NewGC(), 1, 2, `$\alpha$`, font.NewProperties(), 0)

	dst := NewRecorder(100, 80, 72)
	src.Finish().Playback(dst)
	txt := dst.Finish().Filter(CmdDrawText)
	if len(txt) != 1 || !txt[0].(DrawTextCommand).IsMath {
		t.Fatalf("tex playback = %#v, want one math DrawText", txt)
	}
}

func TestPlainHidesCapabilities(t *testing.T) {
	r := Plain(NewRecorder(1, 1, 72))
	if _, ok := r.(backend.MarkerRenderer); ok {
		t.Error("plain renderer still draws markers")
	}
	if _, ok := r.(backend.PathRenderer); ok {
		t.Error("plain renderer still draws paths")
	}
}
