package panels

import (
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/transcriptome"
)

// Line draws a per-position series as a polyline scaled to a shared maximum.
type Line struct {
	Surface    *canvas.Surface
	Dimensions Dimensions
	Points     []transcriptome.Point
	X          Scale
	MaxValue   float64
	Color      string
}

// NewLine returns a line renderer.
func NewLine(s *canvas.Surface, d Dimensions, pts []transcriptome.Point, x Scale, maxValue float64, color string) *Line {
	return &Line{Surface: s, Dimensions: d, Points: pts, X: x, MaxValue: maxValue, Color: color}
}

// Plot draws the series. Scores above MaxValue are clamped to the top edge.
// Nothing is drawn without points or a positive maximum.
func (l *Line) Plot() {
	if len(l.Points) == 0 || l.MaxValue <= 0 {
		return
	}
	y := NewScale(0, l.MaxValue, l.Dimensions.Height, 0)
	pts := make([]canvas.Point, 0, len(l.Points))
	for _, p := range l.Points {
		pts = append(pts, canvas.Point{X: l.X.Map(float64(p.Position)), Y: y.Map(min(p.Score, l.MaxValue))})
	}
	l.Surface.Polyline(pts, canvas.Style{Stroke: l.Color, StrokeWidth: 1.5, Class: "detail"})
}
