package connector

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure/lanes"
)

func TestFromMapping(t *testing.T) {
	m := lanes.Mapping{
		Overview: lanes.Interval{Lo: 398, Hi: 402},
		Lane:     lanes.Interval{Lo: 100, Hi: 200},
	}
	want := Points{Top: 400, Left: 100, Right: 200, Mid: 150}
	if got := FromMapping(m); got != want {
		t.Errorf("FromMapping() = %+v, want %+v", got, want)
	}
}

func TestQuad(t *testing.T) {
	s := canvas.New(800, 100).NewLayer("spacer", canvas.Rect{Y: 40, Width: 800, Height: 20})
	c := New(s, Points{Top: 400, Left: 100, Right: 200, Mid: 150}, "red")

	want := [4]canvas.Point{{X: 400}, {X: 400}, {X: 200, Y: 20}, {X: 100, Y: 20}}
	if diff := cmp.Diff(want, c.Quad()); diff != "" {
		t.Errorf("Quad() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlot(t *testing.T) {
	s := canvas.New(800, 100).NewLayer("spacer", canvas.Rect{Width: 800, Height: 20})
	New(s, Points{Top: 400, Left: 100, Right: 200, Mid: 150}, "red", WithDash("2,2"), WithFillOpacity(0.5)).Plot()

	elems := s.Elements()
	if len(elems) != 4 {
		t.Fatalf("len(Elements()) = %d, want 4", len(elems))
	}
	poly, ok := elems[0].(canvas.Polygon)
	if !ok {
		t.Fatalf("Elements()[0] = %T, want canvas.Polygon", elems[0])
	}
	if poly.Style.Fill != "red" || poly.Style.FillOpacity != 0.5 {
		t.Errorf("polygon style = %+v", poly.Style)
	}
	guide, ok := elems[3].(canvas.Line)
	if !ok {
		t.Fatalf("Elements()[3] = %T, want canvas.Line", elems[3])
	}
	if guide.Style.Dash != "2,2" || guide.X2 != 150 || guide.Y2 != 20 {
		t.Errorf("guide = %+v", guide)
	}
	for _, e := range elems[1:3] {
		if l := e.(canvas.Line); l.Style.Dash != "" {
			t.Errorf("edge dashed: %+v", l)
		}
	}
}
