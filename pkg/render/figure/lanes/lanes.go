// Package lanes subdivides one panel into equal-width detail lanes, one per
// site of interest, and maps each lane back to its overview coordinate.
//
// Lanes are laid out left to right from x = 0 in the order of the positions
// passed to [New]. When the lanes do not fit the host at their nominal width,
// every lane is shrunk uniformly to hostWidth/N; [Allocator.Shrunk] reports
// this so callers can warn.
package lanes

import (
	"fmt"

	"github.com/matzehuels/spliceplot/pkg/errors"
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
)

// DefaultFocusHalfWidth is the half-width, in pixels, of the overview
// interval a lane is linked to.
const DefaultFocusHalfWidth = 2.0

// Interval is a closed pixel range.
type Interval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Mid returns the midpoint of the interval.
func (iv Interval) Mid() float64 { return (iv.Lo + iv.Hi) / 2 }

// Width returns Hi - Lo.
func (iv Interval) Width() float64 { return iv.Hi - iv.Lo }

// Mapping links a lane to its source coordinate. Overview is the pixel
// interval around the site in the overview track; Lane is the lane's own
// horizontal span. Both are in host-local coordinates.
type Mapping struct {
	Overview Interval
	Lane     Interval
}

// Lane describes one allocated lane.
type Lane struct {
	Index    int
	Position int
	Rect     canvas.Rect
	Mapping  Mapping
}

// Option configures an [Allocator].
type Option func(*Allocator)

// WithFocusHalfWidth sets the half-width of the overview interval.
func WithFocusHalfWidth(px float64) Option {
	return func(a *Allocator) {
		if px >= 0 {
			a.focus = px
		}
	}
}

// WithChromeStyle sets the style of the container chrome drawn by Plot.
func WithChromeStyle(st canvas.Style) Option {
	return func(a *Allocator) { a.chromeStyle = st }
}

// Allocator owns the lanes of one host surface for a single render pass.
type Allocator struct {
	host      *canvas.Surface
	length    float64
	positions []int
	nominal   float64
	width     float64
	maxValue  float64
	focus     float64

	chrome      *canvas.Surface
	chromeStyle canvas.Style
	surfaces    map[int]*canvas.Surface
}

// New allocates one lane per entry of positions inside host. length is the
// size of the coordinate space positions live in, laneWidth the nominal lane
// width in pixels and maxValue the shared y-domain maximum for lane content.
func New(host *canvas.Surface, length float64, positions []int, laneWidth, maxValue float64, opts ...Option) (*Allocator, error) {
	if host == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "lanes: nil host surface")
	}
	if length <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "lanes: coordinate length must be positive, got %g", length)
	}
	if laneWidth <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "lanes: lane width must be positive, got %g", laneWidth)
	}

	a := &Allocator{
		host:      host,
		length:    length,
		positions: append([]int(nil), positions...),
		nominal:   laneWidth,
		width:     laneWidth,
		maxValue:  maxValue,
		focus:     DefaultFocusHalfWidth,
		chromeStyle: canvas.Style{
			Fill:   "none",
			Stroke: "#d0d0d0",
		},
		surfaces: make(map[int]*canvas.Surface),
	}
	for _, opt := range opts {
		opt(a)
	}
	if n := len(a.positions); n > 0 && float64(n)*laneWidth > host.Width() {
		a.width = host.Width() / float64(n)
	}

	// Created before any lane so chrome always paints below lane content.
	a.chrome = host.Sub("lanes-chrome", host.Bounds())
	return a, nil
}

// Host returns the surface the lanes live in.
func (a *Allocator) Host() *canvas.Surface { return a.host }

// Len returns the number of lanes.
func (a *Allocator) Len() int { return len(a.positions) }

// Positions returns a copy of the lane positions in lane order.
func (a *Allocator) Positions() []int { return append([]int(nil), a.positions...) }

// MaxValue returns the shared y-domain maximum.
func (a *Allocator) MaxValue() float64 { return a.maxValue }

// LaneWidth returns the effective lane width after any shrinking.
func (a *Allocator) LaneWidth() float64 { return a.width }

// NominalWidth returns the requested lane width.
func (a *Allocator) NominalWidth() float64 { return a.nominal }

// Shrunk reports whether lanes were narrowed to fit the host.
func (a *Allocator) Shrunk() bool { return a.width < a.nominal }

// OverviewX maps a coordinate to its x position on the host.
func (a *Allocator) OverviewX(pos int) float64 {
	return float64(pos) / a.length * a.host.Width()
}

// Coordinate is the inverse of OverviewX.
func (a *Allocator) Coordinate(x float64) float64 {
	if a.host.Width() == 0 {
		return 0
	}
	return x / a.host.Width() * a.length
}

func (a *Allocator) valid(i int) bool { return i >= 0 && i < len(a.positions) }

// LaneRect returns the rectangle of lane i in host-local coordinates.
func (a *Allocator) LaneRect(i int) (canvas.Rect, bool) {
	if !a.valid(i) {
		return canvas.Rect{}, false
	}
	return canvas.Rect{
		X:      float64(i) * a.width,
		Width:  a.width,
		Height: a.host.Height(),
	}, true
}

// LaneMapping returns the overview/lane interval pair of lane i.
func (a *Allocator) LaneMapping(i int) (Mapping, bool) {
	r, ok := a.LaneRect(i)
	if !ok {
		return Mapping{}, false
	}
	x := a.OverviewX(a.positions[i])
	return Mapping{
		Overview: Interval{Lo: x - a.focus, Hi: x + a.focus},
		Lane:     Interval{Lo: r.X, Hi: r.Right()},
	}, true
}

// Lane returns the full description of lane i.
func (a *Allocator) Lane(i int) (Lane, bool) {
	r, ok := a.LaneRect(i)
	if !ok {
		return Lane{}, false
	}
	m, _ := a.LaneMapping(i)
	return Lane{Index: i, Position: a.positions[i], Rect: r, Mapping: m}, true
}

// Lanes returns every lane in order.
func (a *Allocator) Lanes() []Lane {
	out := make([]Lane, 0, len(a.positions))
	for i := range a.positions {
		l, _ := a.Lane(i)
		out = append(out, l)
	}
	return out
}

// LaneSurface returns the clipped surface of lane i, creating it on first
// access. Repeated calls return the same surface.
func (a *Allocator) LaneSurface(i int) (*canvas.Surface, bool) {
	if s, ok := a.surfaces[i]; ok {
		return s, true
	}
	r, ok := a.LaneRect(i)
	if !ok {
		return nil, false
	}
	s := a.host.Sub(fmt.Sprintf("lane-%d", i), r)
	a.surfaces[i] = s
	return s, true
}

// Plot draws the container chrome: a frame around every lane slot and a
// baseline under the lane strip.
func (a *Allocator) Plot() {
	h := a.host.Height()
	for i := range a.positions {
		r, _ := a.LaneRect(i)
		a.chrome.Box(r, a.chromeStyle)
	}
	if n := len(a.positions); n > 0 {
		line := a.chromeStyle
		line.Fill = ""
		a.chrome.Line(0, h, float64(n)*a.width, h, line)
	}
}
