package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/spliceplot/pkg/errors"
)

// Tolerance is the allowed deviation of a ratio sum from 1.
const Tolerance = 1e-6

// Config describes a panel matrix by width and height ratios.
type Config struct {
	Columns      int         `toml:"columns" json:"columns"`
	ColumnRatios []float64   `toml:"column_ratios" json:"column_ratios"`
	RowRatios    [][]float64 `toml:"row_ratios" json:"row_ratios"`
}

// Validate checks the structural invariants of the configuration: a positive
// column count matching both ratio lists, and every ratio list positive and
// summing to 1 within [Tolerance].
func (c Config) Validate() error {
	if c.Columns <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns must be positive, got %d", c.Columns)
	}
	if len(c.ColumnRatios) != c.Columns {
		return errors.New(errors.ErrCodeInvalidConfig,
			"got %d column ratios for %d columns", len(c.ColumnRatios), c.Columns)
	}
	if len(c.RowRatios) != c.Columns {
		return errors.New(errors.ErrCodeInvalidConfig,
			"got %d row ratio lists for %d columns", len(c.RowRatios), c.Columns)
	}
	if err := errors.ValidateRatios("column_ratios", c.ColumnRatios, Tolerance); err != nil {
		return err
	}
	for col, rows := range c.RowRatios {
		if err := errors.ValidateRatios(fmt.Sprintf("row_ratios[%d]", col), rows, Tolerance); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := Config{
		Columns:      c.Columns,
		ColumnRatios: append([]float64(nil), c.ColumnRatios...),
		RowRatios:    make([][]float64, len(c.RowRatios)),
	}
	for i, rows := range c.RowRatios {
		out.RowRatios[i] = append([]float64(nil), rows...)
	}
	return out
}

// Normalize returns a copy of ratios scaled to sum to 1. Relative sizes are
// preserved. A list with a non-positive sum is returned unchanged so that
// [Config.Validate] reports it.
func Normalize(ratios []float64) []float64 {
	out := append([]float64(nil), ratios...)
	if sum := floats.Sum(out); sum > 0 {
		floats.Scale(1/sum, out)
	}
	return out
}
