// Package pkg provides the core libraries for spliceplot splice-site figures.
//
// # Overview
//
// Spliceplot draws one figure per transcriptome: a gene annotation and a
// transcript schematic over a shared coordinate axis, donor and acceptor
// coverage bars, and one zoomed detail lane per splice site linked back to
// its overview position by a funnel-shaped connector.
//
// # Architecture
//
// The typical data flow:
//
//	Dataset JSON (transcriptome + read tracks)
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [render/figure] package (grid → panels → lanes → connectors)
//	         ↓
//	    [render/canvas] package (layered SVG)
//	         ↓
//	    [render] package (SVG → PNG/PDF)
//
// # Quick Start
//
//	ds, _ := io.ImportJSON("sample.json")
//	fig, _ := figure.Plot(figure.Data{
//	    Transcriptome: &ds.Transcriptome,
//	    Donors:        ds.Tracks.Donors,
//	    Acceptors:     ds.Tracks.Acceptors,
//	}, 1200, 900)
//	os.WriteFile("sample.svg", fig.SVG(), 0o644)
//
// # Main Packages
//
// ## Domain
//
// [transcriptome] - Genes, ORFs, transcripts and the splice sites derived
// from their exon boundaries; per-position read tracks.
//
// [io] - The dataset file format.
//
// ## Visualization
//
// [render/figure] - The figure orchestrator and its components:
//
//   - [render/figure/grid]: ratio-based panel matrix with overlays and promotion
//   - [render/figure/lanes]: detail lane allocation with overview mappings
//   - [render/figure/connector]: funnel geometry between overview and lane
//   - [render/figure/panels]: annotation, schematic, label, bar, line and legend panels
//   - [render/figure/styles]: color palettes
//
// [render/canvas] - Retained-mode drawing surfaces with named, reorderable layers.
//
// [render] - SVG to PDF/PNG conversion.
//
// ## Infrastructure
//
// [pipeline] - Load → plot → render with artifact caching, shared by the CLI
// and the HTTP service.
//
// [cache] - File, SQLite, Redis and null artifact caches keyed by content hash.
//
// [config] - TOML configuration.
//
// [observability] - Pipeline, cache and HTTP hooks.
//
// [errors] - Coded errors and input validation.
//
// [buildinfo] - Version information injected at build time.
package pkg
