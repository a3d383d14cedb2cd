// Package pipeline provides the splice figure pipeline shared by the CLI and
// the HTTP service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate a dataset document
//  2. Plot: Lay out and draw the figure with [figure.Plot]
//  3. Render: Serialise the figure in the requested formats (SVG, PNG, PDF, JSON)
//
// Rendered artifacts are cached by dataset content hash and render options,
// so repeated requests skip the plot and the rsvg-convert round trip.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	ds, err := runner.Load(ctx, "sample.json")
//	result, err := runner.Execute(ctx, pipeline.Options{Formats: []string{"svg", "png"}}, ds)
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spliceplot/pkg/cache"
	"github.com/matzehuels/spliceplot/pkg/errors"
	spio "github.com/matzehuels/spliceplot/pkg/io"
	"github.com/matzehuels/spliceplot/pkg/render/figure"
	"github.com/matzehuels/spliceplot/pkg/render/figure/grid"
	"github.com/matzehuels/spliceplot/pkg/render/figure/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 900.0

	// DefaultPNGScale is the rsvg-convert zoom used for PNG output.
	DefaultPNGScale = 2.0
)

// Upper bounds on request-controlled sizes.
const (
	// MaxCanvasSize bounds the canvas width, height and lane width in pixels.
	MaxCanvasSize = 20000.0

	// MaxZoomRadius bounds the positions shown either side of a site.
	MaxZoomRadius = 10000
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one figure.
// This struct supports JSON serialization for API requests.
type Options struct {
	Width          float64        `json:"width,omitempty"`
	Height         float64        `json:"height,omitempty"`
	FontSize       float64        `json:"font_size,omitempty"`
	LaneWidth      float64        `json:"lane_width,omitempty"`
	ZoomRadius     int            `json:"zoom_radius,omitempty"`
	AcceptorLanes  *bool          `json:"acceptor_lanes,omitempty"` // nil means enabled
	Palette        styles.Palette `json:"palette,omitzero"`
	Grid           *grid.Config   `json:"grid,omitempty"`
	Formats        []string       `json:"formats,omitempty"`
	PNGScale       float64        `json:"png_scale,omitempty"`
	Refresh        bool           `json:"refresh,omitempty"` // bypass cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	TTL    time.Duration `json:"-"` // artifact cache TTL; zero means cache.TTLArtifact

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Figure is the plotted figure. It is nil when every artifact came from
	// the cache.
	Figure *figure.Figure

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Panels     int
	Lanes      int
	Skipped    int
	PlotTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCanvasBounds checks that neither canvas dimension exceeds
// MaxCanvasSize.
func ValidateCanvasBounds(width, height float64) error {
	if width > MaxCanvasSize || height > MaxCanvasSize {
		return errors.New(errors.ErrCodeOutOfRange, "canvas %gx%g exceeds %g pixels", width, height, MaxCanvasSize)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := errors.ValidateCanvas(o.Width, o.Height, o.FontSize); err != nil {
		return err
	}
	if err := ValidateCanvasBounds(o.Width, o.Height); err != nil {
		return err
	}
	if o.LaneWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "lane width cannot be negative, got %g", o.LaneWidth)
	}
	if o.LaneWidth > MaxCanvasSize {
		return errors.New(errors.ErrCodeOutOfRange, "lane width %g exceeds %g pixels", o.LaneWidth, MaxCanvasSize)
	}
	if o.ZoomRadius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "zoom radius cannot be negative, got %d", o.ZoomRadius)
	}
	if o.ZoomRadius > MaxZoomRadius {
		return errors.New(errors.ErrCodeOutOfRange, "zoom radius %d exceeds %d", o.ZoomRadius, MaxZoomRadius)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Palette.Validate(); err != nil {
		return err
	}
	if o.Grid != nil {
		if err := o.Grid.Validate(); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero values with defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.FontSize == 0 {
		o.FontSize = figure.DefaultFontSize
	}
	if o.LaneWidth == 0 {
		o.LaneWidth = figure.DefaultLaneWidth
	}
	if o.ZoomRadius == 0 {
		o.ZoomRadius = figure.DefaultZoomRadius
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.TTL == 0 {
		o.TTL = cache.TTLArtifact
	}
	o.Palette = o.Palette.Merge(styles.DefaultPalette())
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// WantsAcceptorLanes reports whether acceptor lanes are drawn.
func (o *Options) WantsAcceptorLanes() bool {
	return o.AcceptorLanes == nil || *o.AcceptorLanes
}

// FigureOptions translates o into [figure.Option]s. canvasID fixes the SVG
// clip-path namespace.
func (o *Options) FigureOptions(canvasID string) []figure.Option {
	opts := []figure.Option{
		figure.WithFontSize(o.FontSize),
		figure.WithLaneWidth(o.LaneWidth),
		figure.WithZoomRadius(o.ZoomRadius),
		figure.WithAcceptorLanes(o.WantsAcceptorLanes()),
		figure.WithPalette(o.Palette),
		figure.WithLogger(o.Logger),
	}
	if o.Grid != nil {
		opts = append(opts, figure.WithConfig(*o.Grid))
	}
	if canvasID != "" {
		opts = append(opts, figure.WithCanvasID(canvasID))
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	style := struct {
		Palette  styles.Palette `json:"palette"`
		Grid     *grid.Config   `json:"grid"`
		PNGScale float64        `json:"png_scale"`
	}{o.Palette, o.Grid, o.PNGScale}
	styleHash, _ := cache.HashJSON(style)
	return cache.ArtifactKeyOpts{
		Format:        format,
		Width:         o.Width,
		Height:        o.Height,
		FontSize:      o.FontSize,
		LaneWidth:     o.LaneWidth,
		ZoomRadius:    o.ZoomRadius,
		AcceptorLanes: o.WantsAcceptorLanes(),
		StyleHash:     styleHash,
	}
}

// figureData converts a dataset into the figure input.
func figureData(ds *spio.Dataset) figure.Data {
	return figure.Data{
		Transcriptome: &ds.Transcriptome,
		Donors:        ds.Tracks.Donors,
		Acceptors:     ds.Tracks.Acceptors,
	}
}

// sortedFormats returns formats deduplicated in a stable order.
func sortedFormats(formats []string) []string {
	out := slices.Clone(formats)
	slices.Sort(out)
	return slices.Compact(out)
}
