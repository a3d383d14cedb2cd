package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/spliceplot/pkg/errors"
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func threeColumns() Config {
	return Config{
		Columns:      3,
		ColumnRatios: []float64{0.8, 0.1, 0.1},
		RowRatios:    [][]float64{{0.5, 0.5}, {1}, {1}},
	}
}

func mustGrid(t *testing.T, w, h float64, cfg Config) *Grid {
	t.Helper()
	g, err := New(canvas.New(w, h, canvas.WithID("t")), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", threeColumns(), false},
		{"zero columns", Config{}, true},
		{"ratio count mismatch", Config{Columns: 2, ColumnRatios: []float64{1}, RowRatios: [][]float64{{1}, {1}}}, true},
		{"row list mismatch", Config{Columns: 2, ColumnRatios: []float64{0.5, 0.5}, RowRatios: [][]float64{{1}}}, true},
		{"columns sum short", Config{Columns: 2, ColumnRatios: []float64{0.5, 0.4}, RowRatios: [][]float64{{1}, {1}}}, true},
		{"rows sum short", Config{Columns: 1, ColumnRatios: []float64{1}, RowRatios: [][]float64{{0.5, 0.4}}}, true},
		{"empty rows", Config{Columns: 1, ColumnRatios: []float64{1}, RowRatios: [][]float64{{}}}, true},
		{"negative ratio", Config{Columns: 2, ColumnRatios: []float64{1.5, -0.5}, RowRatios: [][]float64{{1}, {1}}}, true},
		{"within tolerance", Config{Columns: 3, ColumnRatios: []float64{0.3333333, 0.3333333, 0.3333334}, RowRatios: [][]float64{{1}, {1}, {1}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidConfig {
				t.Errorf("GetCode() = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestNewRejectsBadConfigBeforeDrawing(t *testing.T) {
	c := canvas.New(100, 100)
	_, err := New(c, Config{Columns: 1, ColumnRatios: []float64{0.9}, RowRatios: [][]float64{{1}}})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("New() error = %v, want INVALID_CONFIG", err)
	}
	if n := len(c.Layers()); n != 0 {
		t.Errorf("len(Layers()) = %d, want 0", n)
	}
}

func TestCellRect(t *testing.T) {
	g := mustGrid(t, 1000, 500, threeColumns())

	tests := []struct {
		col, row int
		want     canvas.Rect
		ok       bool
	}{
		{0, 0, canvas.Rect{X: 0, Y: 0, Width: 800, Height: 250}, true},
		{0, 1, canvas.Rect{X: 0, Y: 250, Width: 800, Height: 250}, true},
		{1, 0, canvas.Rect{X: 800, Y: 0, Width: 100, Height: 500}, true},
		{2, 0, canvas.Rect{X: 900, Y: 0, Width: 100, Height: 500}, true},
		{5, 5, canvas.Rect{}, false},
		{1, 1, canvas.Rect{}, false},
		{-1, 0, canvas.Rect{}, false},
	}

	for _, tt := range tests {
		got, ok := g.CellRect(tt.col, tt.row)
		if ok != tt.ok {
			t.Errorf("CellRect(%d, %d) ok = %v, want %v", tt.col, tt.row, ok, tt.ok)
			continue
		}
		if diff := cmp.Diff(tt.want, got, approx); diff != "" {
			t.Errorf("CellRect(%d, %d) mismatch (-want +got):\n%s", tt.col, tt.row, diff)
		}
	}
}

func TestCellsTileCanvas(t *testing.T) {
	cfg := Config{
		Columns:      3,
		ColumnRatios: []float64{0.8, 0.1, 0.1},
		RowRatios: [][]float64{
			{0.1, 0.45, 0.025, 0.05, 0.025, 0.15, 0.025, 0.05, 0.025, 0.1},
			{0.2, 0.3, 0.5},
			{1},
		},
	}
	const w, h = 1234.0, 987.0
	g := mustGrid(t, w, h, cfg)

	var area float64
	for col := 0; col < g.Columns(); col++ {
		column, _ := g.ColumnRect(col)
		y := 0.0
		for row := 0; row < g.Rows(col); row++ {
			r, ok := g.CellRect(col, row)
			if !ok {
				t.Fatalf("CellRect(%d, %d) absent", col, row)
			}
			if diff := cmp.Diff(y, r.Y, approx); diff != "" {
				t.Errorf("row (%d,%d) does not start where the previous ended: %s", col, row, diff)
			}
			if diff := cmp.Diff(column.X, r.X, approx); diff != "" {
				t.Errorf("row (%d,%d) x mismatch: %s", col, row, diff)
			}
			want := w * h * cfg.ColumnRatios[col] * cfg.RowRatios[col][row]
			if diff := cmp.Diff(want, r.Area(), approx); diff != "" {
				t.Errorf("Area(%d, %d) mismatch (-want +got):\n%s", col, row, diff)
			}
			y = r.Bottom()
			area += r.Area()
		}
		if diff := cmp.Diff(h, y, approx); diff != "" {
			t.Errorf("column %d rows do not tile its height: %s", col, diff)
		}
	}
	if diff := cmp.Diff(w*h, area, approx); diff != "" {
		t.Errorf("cells do not tile the canvas: %s", diff)
	}
	last, _ := g.ColumnRect(2)
	if diff := cmp.Diff(w, last.Right(), approx); diff != "" {
		t.Errorf("columns do not tile the width: %s", diff)
	}
	if got := len(g.Cells()); got != 14 {
		t.Errorf("len(Cells()) = %d, want 14", got)
	}
}

func TestCellSurfaceMemoised(t *testing.T) {
	g := mustGrid(t, 1000, 500, threeColumns())

	a, ok := g.CellSurface(0, 1)
	if !ok {
		t.Fatal("CellSurface(0, 1) absent")
	}
	b, _ := g.CellSurface(0, 1)
	if a != b {
		t.Error("CellSurface(0, 1) returned a different surface on second call")
	}
	if n := len(g.Canvas().Layers()); n != 1 {
		t.Errorf("len(Layers()) = %d, want 1", n)
	}
	if diff := cmp.Diff(canvas.Rect{X: 0, Y: 250, Width: 800, Height: 250}, a.Rect(), approx); diff != "" {
		t.Errorf("surface rect mismatch (-want +got):\n%s", diff)
	}
	if !g.HasSurface(0, 1) || g.HasSurface(0, 0) {
		t.Error("HasSurface() does not reflect lazy creation")
	}
}

func TestAbsentCellHasNoSideEffects(t *testing.T) {
	g := mustGrid(t, 1000, 500, threeColumns())

	if _, ok := g.CellSurface(5, 5); ok {
		t.Error("CellSurface(5, 5) ok = true, want false")
	}
	if g.SetCellData(5, 5, "x") {
		t.Error("SetCellData(5, 5) = true, want false")
	}
	if _, ok := g.CellData(5, 5); ok {
		t.Error("CellData(5, 5) ok = true, want false")
	}
	if g.Promote(5, 5) {
		t.Error("Promote(5, 5) = true, want false")
	}
	if n := len(g.Canvas().Layers()); n != 0 {
		t.Errorf("len(Layers()) = %d, want 0", n)
	}
}

func TestCellData(t *testing.T) {
	g := mustGrid(t, 1000, 500, threeColumns())

	if _, ok := g.CellData(0, 1); ok {
		t.Error("CellData() before set ok = true")
	}
	g.SetCellData(0, 1, 1)
	g.SetCellData(0, 1, "last")
	got, ok := g.CellData(0, 1)
	if !ok || got != "last" {
		t.Errorf("CellData(0, 1) = %v, %v, want last, true", got, ok)
	}
}

func TestOverlay(t *testing.T) {
	cfg := Config{
		Columns:      2,
		ColumnRatios: []float64{0.5, 0.5},
		RowRatios:    [][]float64{{0.1, 0.2, 0.3, 0.4}, {1}},
	}
	g := mustGrid(t, 200, 1000, cfg)

	tests := []struct {
		name string
		col  int
		rows []int
		want canvas.Rect
		ok   bool
	}{
		{"single row", 0, []int{1}, canvas.Rect{X: 0, Y: 100, Width: 100, Height: 200}, true},
		{"contiguous", 0, []int{0, 1, 2}, canvas.Rect{X: 0, Y: 0, Width: 100, Height: 600}, true},
		{"unordered", 0, []int{2, 1}, canvas.Rect{X: 0, Y: 100, Width: 100, Height: 500}, true},
		{"gap spans", 0, []int{1, 3}, canvas.Rect{X: 0, Y: 100, Width: 100, Height: 900}, true},
		{"second column", 1, []int{0}, canvas.Rect{X: 100, Y: 0, Width: 100, Height: 1000}, true},
		{"empty rows", 0, nil, canvas.Rect{}, false},
		{"bad row", 0, []int{1, 4}, canvas.Rect{}, false},
		{"bad column", 2, []int{0}, canvas.Rect{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := g.Overlay(tt.col, tt.rows)
			if ok != tt.ok {
				t.Fatalf("Overlay() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, s.Rect(), approx); diff != "" {
				t.Errorf("Overlay() rect mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if n := len(g.Overlays()); n != 5 {
		t.Errorf("len(Overlays()) = %d, want 5", n)
	}
}

func TestOverlayStacksAboveExistingPanels(t *testing.T) {
	g := mustGrid(t, 1000, 500, threeColumns())
	c := g.Canvas()

	top, _ := g.CellSurface(0, 0)
	bottom, _ := g.CellSurface(0, 1)
	ov, _ := g.Overlay(0, []int{0, 1})

	if c.Index(ov) != 2 || c.Index(top) != 0 || c.Index(bottom) != 1 {
		t.Errorf("stack = %d,%d,%d, want overlay last", c.Index(top), c.Index(bottom), c.Index(ov))
	}
}

func TestPromote(t *testing.T) {
	g := mustGrid(t, 1000, 500, threeColumns())
	c := g.Canvas()

	a, _ := g.CellSurface(0, 0)
	b, _ := g.CellSurface(0, 1)
	ov, _ := g.Overlay(0, []int{0, 1})

	if !g.Promote(0, 1) {
		t.Fatal("Promote(0, 1) = false")
	}
	if !g.Promote(0, 0) {
		t.Fatal("Promote(0, 0) = false")
	}

	want := []*canvas.Surface{ov, b, a}
	got := c.Layers()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Layers()[%d] = %s, want %s", i, got[i].Name(), want[i].Name())
		}
	}

	if g.Promote(2, 0) {
		t.Error("Promote() of an uncreated panel = true, want false")
	}
	if n := len(c.Layers()); n != 3 {
		t.Errorf("len(Layers()) = %d, want 3", n)
	}
}

func TestNormalize(t *testing.T) {
	rows := []float64{0.1, 0.45, 0.025, 0.05, 0.025, 0.15, 0.025, 0.05, 0.025, 0.15}
	got := Normalize(rows)

	cfg := Config{Columns: 1, ColumnRatios: []float64{1}, RowRatios: [][]float64{got}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() of normalized rows error = %v", err)
	}
	if diff := cmp.Diff(rows[1]/rows[0], got[1]/got[0], approx); diff != "" {
		t.Errorf("Normalize() changed relative sizes: %s", diff)
	}
	if rows[0] != 0.1 {
		t.Error("Normalize() modified its input")
	}
	if got := Normalize([]float64{0, 0}); got[0] != 0 {
		t.Errorf("Normalize(zeros) = %v, want unchanged", got)
	}
}
