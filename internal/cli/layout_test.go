package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure"
	"github.com/matzehuels/spliceplot/pkg/render/figure/grid"
	"github.com/matzehuels/spliceplot/pkg/render/figure/lanes"
)

func testFigure() *figure.Figure {
	return &figure.Figure{
		Width:  1000,
		Height: 800,
		Panels: []figure.PanelInfo{
			{Cell: grid.Cell{Col: 0, Row: 0}, Role: "annotation", Rect: canvas.Rect{Width: 800, Height: 80}},
			{Cell: grid.Cell{Col: 0, Row: 1}, Role: "schematic", Rect: canvas.Rect{Y: 80, Width: 800, Height: 360}},
		},
		Lanes: []figure.LaneInfo{
			{Kind: figure.KindDonor, Index: 0, Position: 500, Rect: canvas.Rect{X: 100, Width: 100}, Overview: lanes.Interval{Lo: 398, Hi: 402}, MaxValue: 12},
			{Kind: figure.KindAcceptor, Index: 0, Position: 550, Rect: canvas.Rect{X: 500, Width: 100}, Overview: lanes.Interval{Lo: 438, Hi: 442}, MaxValue: 8},
		},
		Skipped: []grid.Cell{{Col: 2, Row: 0}},
	}
}

func TestWriteLayoutTables(t *testing.T) {
	var buf bytes.Buffer
	writeLayoutTables(&buf, testFigure())
	out := buf.String()
	for _, want := range []string{"Panels (1000x800)", "annotation", "schematic", "Lanes", "donor", "acceptor", "398.0", "skipped panel (2,0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteLayoutTablesNoLanes(t *testing.T) {
	fig := testFigure()
	fig.Lanes = nil
	var buf bytes.Buffer
	writeLayoutTables(&buf, fig)
	if !strings.Contains(buf.String(), "no lanes") {
		t.Errorf("output = %q, want no lanes notice", buf.String())
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	out, err := execute(t, "layout", sampleDataset(t), "--json", "--acceptor-lanes=false")
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}
	var fig figure.Figure
	if err := json.Unmarshal([]byte(out), &fig); err != nil {
		t.Fatalf("decode layout: %v\n%s", err, out)
	}
	if len(fig.Lanes) != 2 {
		t.Fatalf("len(Lanes) = %d, want 2", len(fig.Lanes))
	}
	for _, l := range fig.Lanes {
		if l.Kind != figure.KindDonor {
			t.Errorf("lane kind = %q, want donor", l.Kind)
		}
	}
	if fig.Width != 1200 || fig.Height != 900 {
		t.Errorf("canvas = %vx%v, want 1200x900", fig.Width, fig.Height)
	}
}

func TestLayoutCommandTables(t *testing.T) {
	out, err := execute(t, "layout", sampleDataset(t), "--width", "1000", "--height", "800")
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}
	if !strings.Contains(out, "Panels (1000x800)") {
		t.Errorf("output missing panel title:\n%s", out)
	}
}

func TestLayoutModelNavigation(t *testing.T) {
	m := newLayoutModel(testFigure())
	m.Height = 2
	if len(m.Items) != 4 {
		t.Fatalf("len(Items) = %d, want 4", len(m.Items))
	}

	key := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
	step := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(LayoutModel)
	}

	step(key("j"))
	step(key("j"))
	if m.Cursor != 2 || m.Offset != 1 {
		t.Errorf("after j j: cursor=%d offset=%d, want 2 1", m.Cursor, m.Offset)
	}
	step(key("G"))
	if m.Cursor != 3 || m.Offset != 2 {
		t.Errorf("after G: cursor=%d offset=%d, want 3 2", m.Cursor, m.Offset)
	}
	step(tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 3 {
		t.Errorf("down past end: cursor=%d, want 3", m.Cursor)
	}
	step(key("g"))
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("after g: cursor=%d offset=%d, want 0 0", m.Cursor, m.Offset)
	}
	step(tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("up past start: cursor=%d, want 0", m.Cursor)
	}
	step(tea.WindowSizeMsg{Width: 80, Height: 30})
	if m.Height != 20 {
		t.Errorf("Height = %d, want 20", m.Height)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestLayoutModelView(t *testing.T) {
	m := newLayoutModel(testFigure())
	view := m.View()
	for _, want := range []string{"Figure Layout", "annotation (0,0)", "[1/4]", "grid cell (0,0)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	empty := LayoutModel{Height: 5}
	if !strings.Contains(empty.View(), "nothing drawn") {
		t.Error("empty View() should say nothing drawn")
	}
}

func TestPositionBar(t *testing.T) {
	tests := []struct {
		name  string
		rect  canvas.Rect
		width float64
		n     int
		want  string
	}{
		{"left half", canvas.Rect{X: 0, Width: 50}, 100, 10, "[█████·····]"},
		{"right edge", canvas.Rect{X: 95, Width: 5}, 100, 10, "[·········█]"},
		{"thin", canvas.Rect{X: 42, Width: 0.1}, 100, 10, "[····█·····]"},
		{"no canvas", canvas.Rect{Width: 5}, 0, 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := positionBar(tt.rect, tt.width, tt.n); got != tt.want {
				t.Errorf("positionBar() = %q, want %q", got, tt.want)
			}
		})
	}
}
