// Package grid partitions a canvas into independently addressable panels.
//
// # Overview
//
// A [Config] describes a matrix of panels by ratios: one width ratio per
// column and, per column, a list of row height ratios. Columns may have
// different row counts. [New] validates the configuration and binds it to a
// [canvas.Canvas]:
//
//	g, err := grid.New(c, grid.Config{
//	    Columns:      3,
//	    ColumnRatios: []float64{0.8, 0.1, 0.1},
//	    RowRatios:    [][]float64{{0.5, 0.5}, {1}, {1}},
//	})
//	r, ok := g.CellRect(0, 1) // {X:0 Y:250 Width:800 Height:250} on 1000×500
//
// # Surfaces and Stacking
//
// [Grid.CellSurface] returns a memoised surface whose origin is the panel's
// top-left corner, so renderers never handle canvas coordinates. Surfaces are
// created lazily as new top layers. [Grid.Overlay] creates a surface spanning
// several rows of a column, appended above everything drawn so far.
// [Grid.Promote] lifts a panel back to the top of the stack.
//
// # Absent Panels
//
// Out-of-range lookups are not errors: accessors return ok=false and callers
// skip drawing. Only a malformed [Config] is fatal, reported by [New] with
// code INVALID_CONFIG.
package grid
