// Package connector draws the funnel that links an overview coordinate to
// the full width of its detail lane.
package connector

import (
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure/lanes"
)

// Default presentation values.
const (
	DefaultFillOpacity = 0.2
	DefaultDash        = "5,5"
	DefaultStrokeWidth = 1.0
)

// Points are the four x positions defining a connector. Top is the apex on
// the overview edge (y = 0); Left and Right are the lane bounds on the lane
// edge (y = height); Mid is the lane centre the dashed guide runs to.
type Points struct {
	Top, Left, Right, Mid float64
}

// FromMapping derives connector points from a lane mapping.
func FromMapping(m lanes.Mapping) Points {
	return Points{
		Top:   m.Overview.Mid(),
		Left:  m.Lane.Lo,
		Right: m.Lane.Hi,
		Mid:   m.Lane.Mid(),
	}
}

// Option configures a [Connector].
type Option func(*Connector)

// WithFillOpacity sets the opacity of the filled funnel.
func WithFillOpacity(v float64) Option { return func(c *Connector) { c.fillOpacity = v } }

// WithDash sets the dash pattern of the apex-to-mid guide.
func WithDash(d string) Option { return func(c *Connector) { c.dash = d } }

// WithStrokeWidth sets the width of all connector strokes.
func WithStrokeWidth(w float64) Option { return func(c *Connector) { c.strokeWidth = w } }

// Connector renders one funnel into a surface whose top edge touches the
// overview panel and whose bottom edge touches the lane panel.
type Connector struct {
	surface     *canvas.Surface
	points      Points
	color       string
	fillOpacity float64
	dash        string
	strokeWidth float64
}

// New creates a connector on s. s is typically the spacer panel between the
// overview and the lanes.
func New(s *canvas.Surface, p Points, color string, opts ...Option) *Connector {
	c := &Connector{
		surface:     s,
		points:      p,
		color:       color,
		fillOpacity: DefaultFillOpacity,
		dash:        DefaultDash,
		strokeWidth: DefaultStrokeWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Points returns the connector's defining points.
func (c *Connector) Points() Points { return c.points }

// Quad returns the funnel polygon: the apex twice on the top edge, then the
// right and left lane bounds on the bottom edge.
func (c *Connector) Quad() [4]canvas.Point {
	h := c.surface.Height()
	p := c.points
	return [4]canvas.Point{
		{X: p.Top, Y: 0},
		{X: p.Top, Y: 0},
		{X: p.Right, Y: h},
		{X: p.Left, Y: h},
	}
}

// Plot draws the translucent funnel, its two edges and the dashed guide from
// the apex to the lane centre.
func (c *Connector) Plot() {
	q := c.Quad()
	h := c.surface.Height()
	p := c.points

	c.surface.Polygon(q[:], canvas.Style{
		Fill:        c.color,
		FillOpacity: c.fillOpacity,
		Class:       "connector",
	})
	edge := canvas.Style{Stroke: c.color, StrokeWidth: c.strokeWidth}
	c.surface.Line(p.Top, 0, p.Left, h, edge)
	c.surface.Line(p.Top, 0, p.Right, h, edge)

	guide := edge
	guide.Dash = c.dash
	c.surface.Line(p.Top, 0, p.Mid, h, guide)
}
