package panels

import "github.com/matzehuels/spliceplot/pkg/render/canvas"

// Dimensions describe the panel a renderer draws into.
type Dimensions struct {
	X, Y          float64
	Width, Height float64
	FontSize      float64
}

// DimensionsOf returns the dimensions of r with the given font size.
func DimensionsOf(r canvas.Rect, fontSize float64) Dimensions {
	return Dimensions{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, FontSize: fontSize}
}

// Rect returns the panel rectangle in canvas coordinates.
func (d Dimensions) Rect() canvas.Rect {
	return canvas.Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}
}

// Scale is a linear map from a data domain to a pixel range.
type Scale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewScale returns the scale mapping [d0, d1] onto [r0, r1].
func NewScale(d0, d1, r0, r1 float64) Scale {
	return Scale{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Map returns the pixel position of v. A degenerate domain maps to the
// start of the range.
func (s Scale) Map(v float64) float64 {
	span := s.Domain[1] - s.Domain[0]
	if span == 0 {
		return s.Range[0]
	}
	return s.Range[0] + (v-s.Domain[0])/span*(s.Range[1]-s.Range[0])
}

// Invert returns the domain value at pixel position px.
func (s Scale) Invert(px float64) float64 {
	span := s.Range[1] - s.Range[0]
	if span == 0 {
		return s.Domain[0]
	}
	return s.Domain[0] + (px-s.Range[0])/span*(s.Domain[1]-s.Domain[0])
}

// GeneCoord is the placement of one gene in the transcript schematic.
type GeneCoord struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	StartX float64 `json:"start_x"`
	EndX   float64 `json:"end_x"`
	Y      float64 `json:"y"` // vertical centre of the gene's block, panel-local
}
