package grid

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/spliceplot/pkg/render/canvas"
)

// Cell addresses a panel by column and row.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Col, c.Row) }

// Grid is a validated panel matrix bound to a canvas. A Grid is owned by a
// single render pass and is not safe for concurrent use.
type Grid struct {
	canvas *canvas.Canvas
	cfg    Config

	// colStart[i] is the cumulative width ratio before column i;
	// rowStart[i][j] likewise for row j of column i.
	colStart []float64
	rowStart [][]float64

	surfaces map[Cell]*canvas.Surface
	data     map[Cell]any
	overlays []*canvas.Surface
}

// New validates cfg and binds it to c. Panel rectangles are derived from the
// canvas size.
func New(c *canvas.Canvas, cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	g := &Grid{
		canvas:   c,
		cfg:      cfg,
		colStart: exclusiveCumSum(cfg.ColumnRatios),
		rowStart: make([][]float64, cfg.Columns),
		surfaces: make(map[Cell]*canvas.Surface),
		data:     make(map[Cell]any),
	}
	for col, rows := range cfg.RowRatios {
		g.rowStart[col] = exclusiveCumSum(rows)
	}
	return g, nil
}

// exclusiveCumSum returns s[0..i) sums, i.e. the start offset of each entry.
func exclusiveCumSum(s []float64) []float64 {
	out := make([]float64, len(s))
	if len(s) > 1 {
		floats.CumSum(out[1:], s[:len(s)-1])
	}
	return out
}

// Canvas returns the canvas the grid draws on.
func (g *Grid) Canvas() *canvas.Canvas { return g.canvas }

// Config returns a copy of the grid configuration.
func (g *Grid) Config() Config { return g.cfg.Clone() }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.cfg.Columns }

// Rows returns the number of rows in col, or 0 if col is out of range.
func (g *Grid) Rows(col int) int {
	if col < 0 || col >= g.cfg.Columns {
		return 0
	}
	return len(g.cfg.RowRatios[col])
}

// Contains reports whether (col, row) addresses a configured panel.
func (g *Grid) Contains(col, row int) bool {
	return row >= 0 && row < g.Rows(col)
}

// Cells returns every configured panel, column by column.
func (g *Grid) Cells() []Cell {
	var out []Cell
	for col := 0; col < g.cfg.Columns; col++ {
		for row := range g.cfg.RowRatios[col] {
			out = append(out, Cell{Col: col, Row: row})
		}
	}
	return out
}

// ColumnRect returns the full-height rectangle of col.
func (g *Grid) ColumnRect(col int) (canvas.Rect, bool) {
	if col < 0 || col >= g.cfg.Columns {
		return canvas.Rect{}, false
	}
	w := g.canvas.Width()
	return canvas.Rect{
		X:      w * g.colStart[col],
		Width:  w * g.cfg.ColumnRatios[col],
		Height: g.canvas.Height(),
	}, true
}

// CellRect returns the pixel rectangle of panel (col, row) in canvas
// coordinates. ok is false when the panel is not configured.
func (g *Grid) CellRect(col, row int) (r canvas.Rect, ok bool) {
	if !g.Contains(col, row) {
		return canvas.Rect{}, false
	}
	column, _ := g.ColumnRect(col)
	column.Y = column.Height * g.rowStart[col][row]
	column.Height *= g.cfg.RowRatios[col][row]
	return column, true
}

// CellSurface returns the surface of panel (col, row), creating it as a new
// top layer on first access. Repeated calls return the same surface.
func (g *Grid) CellSurface(col, row int) (*canvas.Surface, bool) {
	cell := Cell{Col: col, Row: row}
	if s, ok := g.surfaces[cell]; ok {
		return s, true
	}
	r, ok := g.CellRect(col, row)
	if !ok {
		return nil, false
	}
	s := g.canvas.NewLayer(fmt.Sprintf("cell-%d-%d", col, row), r)
	g.surfaces[cell] = s
	return s, true
}

// HasSurface reports whether the surface of (col, row) has been created.
func (g *Grid) HasSurface(col, row int) bool {
	_, ok := g.surfaces[Cell{Col: col, Row: row}]
	return ok
}

// SetCellData attaches arbitrary state to panel (col, row). The last write
// wins. It returns false, storing nothing, for an unconfigured panel.
func (g *Grid) SetCellData(col, row int, v any) bool {
	if !g.Contains(col, row) {
		return false
	}
	g.data[Cell{Col: col, Row: row}] = v
	return true
}

// CellData returns the state attached to panel (col, row), if any.
func (g *Grid) CellData(col, row int) (any, bool) {
	v, ok := g.data[Cell{Col: col, Row: row}]
	return v, ok
}

// OverlayRect returns the rectangle an overlay over rows of col would cover:
// the column's width, from the top of the lowest listed row index to the
// bottom of the highest. Rows between the two are always included, so a
// non-contiguous list such as {0, 2} spans rows 0 through 2.
func (g *Grid) OverlayRect(col int, rows []int) (canvas.Rect, bool) {
	if len(rows) == 0 {
		return canvas.Rect{}, false
	}
	for _, row := range rows {
		if !g.Contains(col, row) {
			return canvas.Rect{}, false
		}
	}
	top, _ := g.CellRect(col, slices.Min(rows))
	bottom, _ := g.CellRect(col, slices.Max(rows))
	top.Height = bottom.Bottom() - top.Y
	return top, true
}

// Overlay creates a surface spanning rows of col (see [Grid.OverlayRect]).
// The overlay is appended as a new top layer, above all panel content drawn
// so far. Each call creates a new overlay.
func (g *Grid) Overlay(col int, rows []int) (*canvas.Surface, bool) {
	r, ok := g.OverlayRect(col, rows)
	if !ok {
		return nil, false
	}
	s := g.canvas.NewLayer(fmt.Sprintf("overlay-%d-%d", col, len(g.overlays)), r)
	g.overlays = append(g.overlays, s)
	return s, true
}

// Overlays returns the overlays created so far, in creation order.
func (g *Grid) Overlays() []*canvas.Surface {
	return append([]*canvas.Surface(nil), g.overlays...)
}

// Promote moves the surface of panel (col, row) to the top of the stacking
// order, above overlays and previously promoted panels. It returns false if
// the panel is unconfigured or its surface was never created.
func (g *Grid) Promote(col, row int) bool {
	s, ok := g.surfaces[Cell{Col: col, Row: row}]
	if !ok {
		return false
	}
	return g.canvas.Raise(s)
}
