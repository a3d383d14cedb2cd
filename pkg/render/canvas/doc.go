// Package canvas provides the retained drawing model used by spliceplot.
//
// # Overview
//
// A [Canvas] is a fixed-size drawing area holding an ordered list of layers.
// Each layer is a [Surface]: a rectangle with its own local coordinate system
// (origin at the surface's top-left corner) and a clip region equal to its
// bounds. Surfaces can be nested with [Surface.Sub], which is how lane cells
// are carved out of a host panel.
//
// Drawing is retained rather than immediate: primitives ([Line], [Box],
// [Polygon], [Polyline], [Text]) are recorded on the surface and only
// serialised when [Canvas.WriteSVG] is called. This makes the z-order an
// explicit, mutable property of the canvas:
//
//	c := canvas.New(1000, 500)
//	a := c.NewLayer("a", canvas.Rect{Width: 500, Height: 500})
//	b := c.NewLayer("b", canvas.Rect{X: 250, Width: 500, Height: 500})
//	c.Raise(a) // a now paints above b
//
// Layers paint in list order; the last layer is on top.
//
// # Identifiers
//
// Every canvas carries an id used to namespace the clip-path ids emitted in
// the SVG output, so several figures can be inlined into one HTML page. The
// default id is derived from a random UUID; pass [WithID] for reproducible
// output.
package canvas
