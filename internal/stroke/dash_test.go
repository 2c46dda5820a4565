package stroke

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/gplot"
)

func TestNewDasherSolid(t *testing.T) {
	if d := NewDasher(nil); d != nil {
		t.Errorf("NewDasher(nil) = %v, want nil", d)
	}
	var d *Dasher
	pts := []gplot.Point{{X: 0}, {X: 1}}
	if got := d.Split(pts, false); len(got) != 1 || len(got[0]) != 2 {
		t.Errorf("nil dasher Split = %v", got)
	}
}

func TestDasherSplit(t *testing.T) {
	line := []gplot.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	tests := []struct {
		name string
		dash *gplot.Dash
		want [][]gplot.Point
	}{
		{
			name: "even",
			dash: gplot.NewDash(2, 3),
			want: [][]gplot.Point{
				{{X: 0}, {X: 2}},
				{{X: 5}, {X: 7}},
			},
		},
		{
			name: "offset",
			dash: gplot.NewDash(2, 3).WithOffset(1),
			want: [][]gplot.Point{
				{{X: 0}, {X: 1}},
				{{X: 4}, {X: 6}},
				{{X: 9}, {X: 10}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDasher(tt.dash).Split(line, false)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Split mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDasherAcrossCorner(t *testing.T) {
	pts := []gplot.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 10}}
	got := NewDasher(gplot.NewDash(5, 5)).Split(pts, false)
	if len(got) != 2 {
		t.Fatalf("got %d dashes, want 2", len(got))
	}
	// The first dash turns the corner.
	want := []gplot.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}}
	if diff := cmp.Diff(want, got[0], cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("first dash mismatch (-want +got):\n%s", diff)
	}
}

func TestDasherClosed(t *testing.T) {
	sq := []gplot.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	got := NewDasher(gplot.NewDash(2, 2)).Split(sq, true)
	var total float64
	for _, d := range got {
		for i := 1; i < len(d); i++ {
			total += d[i-1].Distance(d[i])
		}
	}
	if math.Abs(total-8) > 1e-9 {
		t.Errorf("dashed length = %v, want 8 (half the perimeter)", total)
	}
}
