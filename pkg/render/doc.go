// Package render turns spliceplot figures into output files.
//
// # Overview
//
// Figures are assembled in SVG by the subpackages:
//
//   - [canvas]: retained-mode drawing surfaces with named layers
//   - [figure]: the splice-plot orchestrator and its grid, lane, connector
//     and panel components
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg).
//
//	fig, err := figure.Plot(data, 1200, 900)
//	pdf, err := render.ToPDF(ctx, fig.SVG())
//	png, err := render.ToPNG(ctx, fig.SVG(), 2.0) // 2x scale
package render
