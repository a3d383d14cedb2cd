package lanes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/spliceplot/pkg/errors"
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func host(w, h float64) *canvas.Surface {
	return canvas.New(1000, 1000, canvas.WithID("t")).NewLayer("host", canvas.Rect{Y: 100, Width: w, Height: h})
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		host      *canvas.Surface
		length    float64
		laneWidth float64
	}{
		{"nil host", nil, 100, 10},
		{"zero length", host(800, 50), 0, 10},
		{"negative lane width", host(800, 50), 100, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.host, tt.length, []int{1}, tt.laneWidth, 0)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("New() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestDonorScenario(t *testing.T) {
	a, err := New(host(800, 50), 1000, []int{100, 500}, 10, 7)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := a.OverviewX(500); got != 400 {
		t.Errorf("OverviewX(500) = %v, want 400", got)
	}
	r, ok := a.LaneRect(1)
	if !ok {
		t.Fatal("LaneRect(1) absent")
	}
	if r.X != 10 {
		t.Errorf("LaneRect(1).X = %v, want 10", r.X)
	}
	m, _ := a.LaneMapping(1)
	if diff := cmp.Diff(400.0, m.Overview.Mid(), approx); diff != "" {
		t.Errorf("overview interval not centred on 400: %s", diff)
	}
	if a.MaxValue() != 7 {
		t.Errorf("MaxValue() = %v, want 7", a.MaxValue())
	}
	if a.Shrunk() {
		t.Error("Shrunk() = true, want false")
	}
}

func TestLanesContiguous(t *testing.T) {
	positions := []int{10, 200, 350, 900}
	a, err := New(host(800, 60), 1000, positions, 100, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	x := 0.0
	for i, l := range a.Lanes() {
		if l.Index != i || l.Position != positions[i] {
			t.Errorf("Lanes()[%d] = {%d %d}, want {%d %d}", i, l.Index, l.Position, i, positions[i])
		}
		if l.Rect.X != x || l.Rect.Width != 100 || l.Rect.Height != 60 {
			t.Errorf("Lanes()[%d].Rect = %+v, want x=%v w=100 h=60", i, l.Rect, x)
		}
		want := Interval{Lo: l.Rect.X, Hi: l.Rect.Right()}
		if l.Mapping.Lane != want {
			t.Errorf("Lanes()[%d].Mapping.Lane = %+v, want %+v", i, l.Mapping.Lane, want)
		}
		x = l.Rect.Right()
	}
}

func TestOverviewRoundTrip(t *testing.T) {
	const length = 9173.0
	positions := []int{0, 1, 17, 4586, 9172}
	a, _ := New(host(777, 40), length, positions, 5, 0)

	for i, pos := range positions {
		m, _ := a.LaneMapping(i)
		got := m.Overview.Mid() / a.Host().Width() * length
		if diff := cmp.Diff(float64(pos), got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("round trip of %d: %s", pos, diff)
		}
		if diff := cmp.Diff(float64(pos), a.Coordinate(a.OverviewX(pos)), cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("Coordinate(OverviewX(%d)): %s", pos, diff)
		}
	}
}

func TestShrinkToFit(t *testing.T) {
	a, _ := New(host(300, 40), 1000, []int{1, 2, 3, 4, 5, 6}, 100, 0)

	if !a.Shrunk() {
		t.Fatal("Shrunk() = false, want true")
	}
	if a.LaneWidth() != 50 {
		t.Errorf("LaneWidth() = %v, want 50", a.LaneWidth())
	}
	last, _ := a.LaneRect(5)
	if last.Right() != 300 {
		t.Errorf("last lane right = %v, want 300", last.Right())
	}
	if a.NominalWidth() != 100 {
		t.Errorf("NominalWidth() = %v, want 100", a.NominalWidth())
	}
}

func TestFocusHalfWidth(t *testing.T) {
	a, _ := New(host(100, 10), 100, []int{50}, 10, 0, WithFocusHalfWidth(5))
	m, _ := a.LaneMapping(0)
	if want := (Interval{Lo: 45, Hi: 55}); m.Overview != want {
		t.Errorf("Overview = %+v, want %+v", m.Overview, want)
	}
}

func TestOutOfRange(t *testing.T) {
	h := host(800, 50)
	a, _ := New(h, 1000, []int{100}, 10, 0)
	before := h.Len()

	for _, i := range []int{-1, 1, 5} {
		if _, ok := a.LaneRect(i); ok {
			t.Errorf("LaneRect(%d) ok = true", i)
		}
		if _, ok := a.LaneSurface(i); ok {
			t.Errorf("LaneSurface(%d) ok = true", i)
		}
		if _, ok := a.Lane(i); ok {
			t.Errorf("Lane(%d) ok = true", i)
		}
	}
	if h.Len() != before {
		t.Errorf("host.Len() = %d, want %d", h.Len(), before)
	}
}

func TestLaneSurfaceMemoisedAboveChrome(t *testing.T) {
	h := host(800, 50)
	a, _ := New(h, 1000, []int{100, 500}, 10, 0)

	s1, ok := a.LaneSurface(1)
	if !ok {
		t.Fatal("LaneSurface(1) absent")
	}
	s2, _ := a.LaneSurface(1)
	if s1 != s2 {
		t.Error("LaneSurface(1) not memoised")
	}
	a.Plot()

	children := h.Children()
	if len(children) != 2 {
		t.Fatalf("len(Children()) = %d, want 2", len(children))
	}
	if children[0].Name() != "lanes-chrome" || children[1] != s1 {
		t.Errorf("children = %s,%s, want chrome below lane", children[0].Name(), children[1].Name())
	}
	if got := children[0].Len(); got != 3 {
		t.Errorf("chrome elements = %d, want 3", got)
	}
	if diff := cmp.Diff(canvas.Rect{X: 10, Y: 100, Width: 10, Height: 50}, s1.Absolute(), approx); diff != "" {
		t.Errorf("Absolute() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyPositions(t *testing.T) {
	a, err := New(host(800, 50), 1000, nil, 10, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a.Plot()
	if a.Len() != 0 || a.Shrunk() {
		t.Errorf("Len() = %d, Shrunk() = %v", a.Len(), a.Shrunk())
	}
}
