package panels

import (
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure/styles"
)

// LegendEntry is one swatch of the legend.
type LegendEntry struct {
	Label string
	Color string
}

// Legend draws a vertical list of color swatches with labels.
type Legend struct {
	Surface    *canvas.Surface
	Dimensions Dimensions
	Entries    []LegendEntry
	TextColor  string
}

// NewLegend returns a legend renderer.
func NewLegend(s *canvas.Surface, d Dimensions, entries []LegendEntry, textColor string) *Legend {
	return &Legend{Surface: s, Dimensions: d, Entries: entries, TextColor: textColor}
}

// Plot draws the legend from the top of the panel.
func (l *Legend) Plot() {
	fs := l.Dimensions.FontSize
	const pad = 4
	step := fs * 1.6
	for i, e := range l.Entries {
		y := pad + float64(i)*step
		l.Surface.Box(canvas.Rect{X: pad, Y: y, Width: fs, Height: fs}, canvas.Style{Fill: e.Color})
		x := pad + fs + pad
		l.Surface.Text(x, y+fs/2, styles.TruncateLabel(e.Label, l.Dimensions.Width-x, fs), canvas.TextStyle{
			Fill:       l.TextColor,
			FontSize:   fs,
			FontFamily: styles.DefaultFontFamily,
			Baseline:   "central",
		})
	}
}
