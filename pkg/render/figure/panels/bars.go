package panels

import (
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/transcriptome"
)

// Bars draws a coverage bar per track record, growing up from the panel's
// bottom edge. Bars are at least one pixel wide so single-base records stay
// visible at genome scale.
type Bars struct {
	Surface    *canvas.Surface
	Dimensions Dimensions
	Track      *transcriptome.Track
	X          Scale
	Color      string
	MaxValue   float64 // y-domain maximum; 0 uses the track maximum
}

// NewBars returns a bar renderer.
func NewBars(s *canvas.Surface, d Dimensions, track *transcriptome.Track, x Scale, color string) *Bars {
	return &Bars{Surface: s, Dimensions: d, Track: track, X: x, Color: color}
}

// Plot draws the bars.
func (b *Bars) Plot() {
	maxV := b.MaxValue
	if maxV <= 0 {
		maxV = b.Track.MaxScore()
	}
	if maxV <= 0 {
		return
	}
	h := b.Dimensions.Height
	for _, r := range b.Track.Records() {
		x0, x1 := b.X.Map(float64(r.Start)), b.X.Map(float64(r.End))
		bh := min(r.Score, maxV) / maxV * h
		b.Surface.Box(canvas.Rect{X: x0, Y: h - bh, Width: max(1, x1-x0), Height: bh}, canvas.Style{
			Fill:  b.Color,
			Class: "bar",
		})
	}
}
