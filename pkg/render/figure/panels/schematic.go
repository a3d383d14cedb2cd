package panels

import (
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure/styles"
	"github.com/matzehuels/spliceplot/pkg/transcriptome"
)

// Schematic draws every transcript as exon boxes joined by intron hats,
// grouped by gene in gene order. Transcripts of unknown genes follow in a
// final group.
type Schematic struct {
	Surface       *canvas.Surface
	Dimensions    Dimensions
	Transcriptome *transcriptome.Transcriptome
	Palette       styles.Palette
}

// NewSchematic returns a schematic renderer.
func NewSchematic(s *canvas.Surface, d Dimensions, tr *transcriptome.Transcriptome, p styles.Palette) *Schematic {
	return &Schematic{Surface: s, Dimensions: d, Transcriptome: tr, Palette: p}
}

type geneGroup struct {
	id, label   string
	transcripts []transcriptome.Transcript
}

func (s *Schematic) groups() []geneGroup {
	tr := s.Transcriptome
	var out []geneGroup
	known := map[string]bool{}
	for _, g := range tr.Genes {
		known[g.ID] = true
		if ts := tr.TranscriptsOf(g.ID); len(ts) > 0 {
			out = append(out, geneGroup{id: g.ID, label: g.Label(), transcripts: ts})
		}
	}
	var orphans []transcriptome.Transcript
	for _, t := range tr.Transcripts {
		if !known[t.Gene] {
			orphans = append(orphans, t)
		}
	}
	if len(orphans) > 0 {
		out = append(out, geneGroup{id: "", label: "other", transcripts: orphans})
	}
	return out
}

// Plot draws the schematic and returns the placement of each gene group.
func (s *Schematic) Plot() []GeneCoord {
	tr := s.Transcriptome
	if tr == nil || tr.End() <= 0 || len(tr.Transcripts) == 0 {
		return nil
	}
	w, h := s.Dimensions.Width, s.Dimensions.Height
	x := NewScale(0, float64(tr.End()), 0, w)

	groups := s.groups()
	rowH := h / float64(len(tr.Transcripts))
	exonH := rowH * 0.6

	var coords []GeneCoord
	row := 0
	for _, g := range groups {
		top := float64(row) * rowH
		gStart, gEnd := w, 0.0
		for _, t := range g.transcripts {
			mid := float64(row)*rowH + rowH/2
			for _, in := range t.Introns() {
				x0, x1 := x.Map(float64(in.Start())), x.Map(float64(in.End()))
				s.Surface.Polyline([]canvas.Point{
					{X: x0, Y: mid},
					{X: (x0 + x1) / 2, Y: mid - exonH/2},
					{X: x1, Y: mid},
				}, canvas.Style{Stroke: s.Palette.Intron, StrokeWidth: 1, Class: "intron"})
			}
			for _, e := range t.Exons {
				x0, x1 := x.Map(float64(e.Start())), x.Map(float64(e.End()))
				s.Surface.Box(canvas.Rect{X: x0, Y: mid - exonH/2, Width: x1 - x0, Height: exonH}, canvas.Style{
					Fill:  s.Palette.Gene,
					Class: "exon",
				})
			}
			ts, te := t.Span()
			gStart = min(gStart, x.Map(float64(ts)))
			gEnd = max(gEnd, x.Map(float64(te)))
			row++
		}
		bottom := float64(row) * rowH
		coords = append(coords, GeneCoord{
			ID:     g.id,
			Label:  g.label,
			StartX: gStart,
			EndX:   gEnd,
			Y:      (top + bottom) / 2,
		})
	}
	return coords
}
