// Package panels provides the default renderers that fill the panels of a
// splice figure.
//
// Every renderer is constructed with the [Dimensions] of its panel, the
// surface to draw on and its domain data, and exposes Plot. Renderers draw in
// surface-local coordinates; Dimensions carries the panel's canvas position
// only for callers that need it. [Schematic.Plot] additionally returns one
// [GeneCoord] per gene, consumed by [Labels].
//
// The renderers place marks with a linear [Scale] and nothing more: there is
// no axis or tick engine.
package panels
