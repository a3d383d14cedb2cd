// Package styles holds the palette and text helpers shared by the figure
// renderers.
//
// Colors are validated before they reach SVG output; see [Palette.Validate].
// Text measurement uses a fixed per-character width estimate, which is close
// enough for sans-serif labels and needs no font files.
package styles
