package panels

import (
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure/styles"
)

// Labels writes gene names next to the schematic, aligned to each gene's
// vertical centre.
type Labels struct {
	Surface    *canvas.Surface
	Dimensions Dimensions
	Genes      []GeneCoord
	Palette    styles.Palette
}

// NewLabels returns a label renderer.
func NewLabels(s *canvas.Surface, d Dimensions, genes []GeneCoord, p styles.Palette) *Labels {
	return &Labels{Surface: s, Dimensions: d, Genes: genes, Palette: p}
}

// Plot draws one label per gene.
func (l *Labels) Plot() {
	const pad = 4
	fs := l.Dimensions.FontSize
	for _, g := range l.Genes {
		l.Surface.Text(pad, g.Y, styles.TruncateLabel(g.Label, l.Dimensions.Width-pad, fs), canvas.TextStyle{
			Fill:       l.Palette.Text,
			FontSize:   fs,
			FontFamily: styles.DefaultFontFamily,
			Baseline:   "central",
		})
	}
}
