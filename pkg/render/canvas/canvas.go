package canvas

import (
	"fmt"

	"github.com/google/uuid"
)

// Canvas is a fixed-size drawing area composed of ordered layers.
type Canvas struct {
	id         string
	width      float64
	height     float64
	background string
	layers     []*Surface
	seq        int
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithID sets the identifier used to namespace clip-path ids.
func WithID(id string) Option { return func(c *Canvas) { c.id = id } }

// WithBackground paints the whole canvas with color before any layer.
func WithBackground(color string) Option { return func(c *Canvas) { c.background = color } }

// New creates an empty canvas of the given size.
func New(width, height float64, opts ...Option) *Canvas {
	c := &Canvas{width: width, height: height}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = "sp" + uuid.NewString()[:8]
	}
	return c
}

// ID returns the canvas identifier.
func (c *Canvas) ID() string { return c.id }

// Width returns the canvas width.
func (c *Canvas) Width() float64 { return c.width }

// Height returns the canvas height.
func (c *Canvas) Height() float64 { return c.height }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() Rect { return Rect{Width: c.width, Height: c.height} }

// NewLayer appends a top-level surface at r. The new layer paints above all
// existing layers.
func (c *Canvas) NewLayer(name string, r Rect) *Surface {
	s := &Surface{canvas: c, id: c.nextID(), name: name, rect: r}
	c.layers = append(c.layers, s)
	return s
}

// Raise moves a top-level layer to the top of the stacking order.
// It returns false if s is not a layer of c.
func (c *Canvas) Raise(s *Surface) bool {
	i := c.Index(s)
	if i < 0 {
		return false
	}
	copy(c.layers[i:], c.layers[i+1:])
	c.layers[len(c.layers)-1] = s
	return true
}

// Index returns the stacking position of a top-level layer (0 is the
// bottom), or -1 if s is not a layer of c.
func (c *Canvas) Index(s *Surface) int {
	for i, l := range c.layers {
		if l == s {
			return i
		}
	}
	return -1
}

// Layers returns the top-level surfaces in paint order.
func (c *Canvas) Layers() []*Surface {
	return append([]*Surface(nil), c.layers...)
}

func (c *Canvas) nextID() string {
	c.seq++
	return fmt.Sprintf("%s-%d", c.id, c.seq)
}
