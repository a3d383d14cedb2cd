package panels

import (
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure/styles"
	"github.com/matzehuels/spliceplot/pkg/transcriptome"
)

// Annotation draws the genome track: gene spans in the upper half and ORFs,
// one sub-row per reading frame, in the lower half.
type Annotation struct {
	Surface       *canvas.Surface
	Dimensions    Dimensions
	Transcriptome *transcriptome.Transcriptome
	Palette       styles.Palette
}

// NewAnnotation returns an annotation renderer.
func NewAnnotation(s *canvas.Surface, d Dimensions, tr *transcriptome.Transcriptome, p styles.Palette) *Annotation {
	return &Annotation{Surface: s, Dimensions: d, Transcriptome: tr, Palette: p}
}

// Plot draws the track.
func (a *Annotation) Plot() {
	tr := a.Transcriptome
	if tr == nil || tr.End() <= 0 {
		return
	}
	w, h := a.Dimensions.Width, a.Dimensions.Height
	x := NewScale(0, float64(tr.End()), 0, w)

	geneH := h / 2
	a.Surface.Line(0, geneH/2, w, geneH/2, canvas.Style{Stroke: a.Palette.Intron, StrokeWidth: 1})

	fs := styles.FitFontSize(a.Dimensions.FontSize, geneH*0.8)
	for _, g := range tr.Genes {
		x0, x1 := x.Map(float64(g.Start)), x.Map(float64(g.End))
		a.Surface.Box(canvas.Rect{X: x0, Y: geneH * 0.1, Width: x1 - x0, Height: geneH * 0.8}, canvas.Style{
			Fill:   a.Palette.Gene,
			Stroke: a.Palette.Text,
			Class:  "gene",
		})
		label := styles.TruncateLabel(g.Label(), x1-x0, fs)
		if styles.TextWidth(label, fs) <= x1-x0 {
			a.Surface.Text((x0+x1)/2, geneH/2, label, canvas.TextStyle{
				Fill:     a.Palette.Text,
				FontSize: fs,
				Anchor:   canvas.AnchorMiddle,
				Baseline: "central",
			})
		}
	}

	frames := orfFrames(tr.ORFs)
	if len(frames) == 0 {
		return
	}
	rowH := (h - geneH) / float64(len(frames))
	for i, frame := range frames {
		y := geneH + float64(i)*rowH
		for _, o := range tr.ORFs {
			if o.Frame != frame {
				continue
			}
			x0, x1 := x.Map(float64(o.Start)), x.Map(float64(o.End))
			a.Surface.Box(canvas.Rect{X: x0, Y: y + rowH*0.15, Width: x1 - x0, Height: rowH * 0.7}, canvas.Style{
				Fill:  a.Palette.ORF,
				Class: "orf",
			})
		}
	}
}

// orfFrames returns the distinct frames in first-seen order.
func orfFrames(orfs []transcriptome.ORF) []int {
	var out []int
	seen := map[int]bool{}
	for _, o := range orfs {
		if !seen[o.Frame] {
			seen[o.Frame] = true
			out = append(out, o.Frame)
		}
	}
	return out
}
