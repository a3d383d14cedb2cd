package canvas

import (
	"bytes"
	"strings"
	"testing"
)

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 40, Height: 60}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Right", r.Right(), 50},
		{"Bottom", r.Bottom(), 80},
		{"CenterX", r.CenterX(), 30},
		{"CenterY", r.CenterY(), 50},
		{"Area", r.Area(), 2400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if got := r.Local(); got != (Rect{Width: 40, Height: 60}) {
		t.Errorf("Local() = %+v", got)
	}
	if got := r.Translate(5, -5); got != (Rect{X: 15, Y: 15, Width: 40, Height: 60}) {
		t.Errorf("Translate() = %+v", got)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{Width: 10, Height: 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"touching edge", Rect{X: 10, Width: 10, Height: 10}, false},
		{"overlapping", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"disjoint", Rect{X: 20, Y: 20, Width: 1, Height: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRaise(t *testing.T) {
	c := New(100, 100, WithID("t"))
	a := c.NewLayer("a", c.Bounds())
	b := c.NewLayer("b", c.Bounds())
	d := c.NewLayer("d", c.Bounds())

	if !c.Raise(a) {
		t.Fatal("Raise(a) = false, want true")
	}
	names := layerNames(c)
	if names != "b,d,a" {
		t.Errorf("order after Raise(a) = %s, want b,d,a", names)
	}

	c.Raise(b)
	if names := layerNames(c); names != "d,a,b" {
		t.Errorf("order after Raise(b) = %s, want d,a,b", names)
	}

	orphan := New(10, 10).NewLayer("x", Rect{})
	if c.Raise(orphan) {
		t.Error("Raise(foreign layer) = true, want false")
	}
	if c.Index(orphan) != -1 {
		t.Error("Index(foreign layer) should be -1")
	}
}

func TestSubSurfaceAbsolute(t *testing.T) {
	c := New(200, 200, WithID("t"))
	panel := c.NewLayer("panel", Rect{X: 10, Y: 20, Width: 100, Height: 50})
	lane := panel.Sub("lane", Rect{X: 30, Y: 0, Width: 10, Height: 50})

	if got, want := lane.Absolute(), (Rect{X: 40, Y: 20, Width: 10, Height: 50}); got != want {
		t.Errorf("Absolute() = %+v, want %+v", got, want)
	}
	if lane.Parent() != panel {
		t.Error("Parent() should be the host surface")
	}
	if len(panel.Children()) != 1 || panel.Children()[0] != lane {
		t.Error("Children() should contain the lane")
	}
}

func TestEmpty(t *testing.T) {
	c := New(10, 10, WithID("t"))
	s := c.NewLayer("s", c.Bounds())
	child := s.Sub("child", s.Bounds())
	if !s.Empty() {
		t.Error("surface with only an empty child should be empty")
	}
	child.Line(0, 0, 1, 1, Style{Stroke: "red"})
	if s.Empty() {
		t.Error("surface with a drawing child should not be empty")
	}
	if s.Len() != 1 || len(s.Elements()) != 0 {
		t.Errorf("Len() = %d, Elements() = %d, want 1, 0", s.Len(), len(s.Elements()))
	}
}

func TestWriteSVG(t *testing.T) {
	c := New(100, 50, WithID("fig"), WithBackground("white"))
	s := c.NewLayer("cell-0-0", Rect{X: 10, Y: 5, Width: 80, Height: 40})
	s.Line(0, 0, 80, 0, Style{Stroke: "#F78154", StrokeWidth: 1, Dash: "5,5"})
	s.Box(Rect{Width: 10.256, Height: 4}, Style{Fill: "#5FAD56", FillOpacity: 0.75})
	s.Polygon([]Point{{1, 0}, {1, 0}, {9, 40}, {2, 40}}, Style{Fill: "red"})
	s.Text(5, 5, "a<b", TextStyle{FontSize: 12, Anchor: AnchorMiddle})

	var buf bytes.Buffer
	if err := c.WriteSVG(&buf); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`viewBox="0 0 100 50"`,
		`<clipPath id="clip-fig-1"><rect x="0" y="0" width="80" height="40"/></clipPath>`,
		`<rect x="0" y="0" width="100" height="50" fill="white"/>`,
		`transform="translate(10,5)" clip-path="url(#clip-fig-1)"`,
		`stroke-dasharray="5,5"`,
		`width="10.26"`,
		`fill-opacity="0.75"`,
		`points="1,0 1,0 9,40 2,40"`,
		`>a&lt;b</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q\n%s", want, out)
		}
	}
	if !bytes.Equal(c.SVG(), buf.Bytes()) {
		t.Error("SVG() and WriteSVG() should produce identical output")
	}
}

func TestLayerPaintOrder(t *testing.T) {
	c := New(10, 10, WithID("z"))
	a := c.NewLayer("first", c.Bounds())
	c.NewLayer("second", c.Bounds())
	c.Raise(a)

	out := string(c.SVG())
	if strings.Index(out, `data-name="second"`) > strings.Index(out, `data-name="first"`) {
		t.Error("raised layer should be serialised last")
	}
}

func TestDefaultID(t *testing.T) {
	a, b := New(1, 1), New(1, 1)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("default ids should be unique and non-empty: %q %q", a.ID(), b.ID())
	}
}

func layerNames(c *Canvas) string {
	var names []string
	for _, l := range c.Layers() {
		names = append(names, l.Name())
	}
	return strings.Join(names, ",")
}
