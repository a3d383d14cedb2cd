package canvas

// Surface is a clipped drawing area with a local coordinate system whose
// origin is the surface's top-left corner. Surfaces record primitives and
// nested child surfaces in insertion order; later items paint on top of
// earlier ones.
type Surface struct {
	canvas *Canvas
	parent *Surface
	id     string
	name   string
	rect   Rect
	items  []item
}

type item struct {
	elem  Element
	child *Surface
}

// Name returns the label given when the surface was created.
func (s *Surface) Name() string { return s.name }

// ID returns the canvas-unique identifier of the surface.
func (s *Surface) ID() string { return s.id }

// Rect returns the surface rectangle in its parent's coordinates
// (canvas coordinates for top-level layers).
func (s *Surface) Rect() Rect { return s.rect }

// Width returns the surface width.
func (s *Surface) Width() float64 { return s.rect.Width }

// Height returns the surface height.
func (s *Surface) Height() float64 { return s.rect.Height }

// Bounds returns the surface rectangle in its own coordinates.
func (s *Surface) Bounds() Rect { return s.rect.Local() }

// Parent returns the enclosing surface, or nil for a top-level layer.
func (s *Surface) Parent() *Surface { return s.parent }

// Absolute returns the surface rectangle in canvas coordinates.
func (s *Surface) Absolute() Rect {
	r := s.rect
	for p := s.parent; p != nil; p = p.parent {
		r = r.Translate(p.rect.X, p.rect.Y)
	}
	return r
}

// Add records an arbitrary element.
func (s *Surface) Add(e Element) {
	s.items = append(s.items, item{elem: e})
}

// Line records a straight segment.
func (s *Surface) Line(x1, y1, x2, y2 float64, st Style) {
	s.Add(Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Style: st})
}

// Box records a rectangle.
func (s *Surface) Box(r Rect, st Style) {
	s.Add(Box{Rect: r, Style: st})
}

// Polygon records a closed shape.
func (s *Surface) Polygon(pts []Point, st Style) {
	s.Add(Polygon{Points: append([]Point(nil), pts...), Style: st})
}

// Polyline records an open path.
func (s *Surface) Polyline(pts []Point, st Style) {
	s.Add(Polyline{Points: append([]Point(nil), pts...), Style: st})
}

// Text records a text label.
func (s *Surface) Text(x, y float64, content string, st TextStyle) {
	s.Add(Text{X: x, Y: y, Content: content, Style: st})
}

// Sub creates a nested surface at r, given in this surface's coordinates.
// The child paints above everything recorded on s before the call.
func (s *Surface) Sub(name string, r Rect) *Surface {
	child := &Surface{
		canvas: s.canvas,
		parent: s,
		id:     s.canvas.nextID(),
		name:   name,
		rect:   r,
	}
	s.items = append(s.items, item{child: child})
	return child
}

// Elements returns the primitives recorded directly on s, in paint order.
func (s *Surface) Elements() []Element {
	var out []Element
	for _, it := range s.items {
		if it.elem != nil {
			out = append(out, it.elem)
		}
	}
	return out
}

// Children returns the nested surfaces of s, in paint order.
func (s *Surface) Children() []*Surface {
	var out []*Surface
	for _, it := range s.items {
		if it.child != nil {
			out = append(out, it.child)
		}
	}
	return out
}

// Len returns the number of items (primitives and children) recorded on s.
func (s *Surface) Len() int { return len(s.items) }

// Empty reports whether nothing has been drawn on s or any of its children.
func (s *Surface) Empty() bool {
	for _, it := range s.items {
		if it.elem != nil || !it.child.Empty() {
			return false
		}
	}
	return true
}
